package trie

import "errors"

// Sentinel errors for the trie core, following the per-package
// sentinel-error convention used throughout this codebase.
var (
	ErrInvalidAddress  = errors.New("invalid address")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrDuplicateAddress = errors.New("duplicate address in entry set")
	ErrNotFound        = errors.New("address not found in trie")
	ErrInvalidProof    = errors.New("malformed proof")
)
