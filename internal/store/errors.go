package store

import "errors"

// Storage failures surface as exactly one of these two kinds: transient
// (retryable by the caller) or corrupt (the round is marked Failed and
// requires operator intervention). Grounded on the teacher's
// badger_client.go error wrapping, generalized into the two-kind
// taxonomy the spec requires.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageCorrupt     = errors.New("storage corrupt")
	ErrRoundNotFound      = errors.New("round not found")
	ErrAddressNotFound    = errors.New("address not found in round")
)
