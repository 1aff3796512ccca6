// Package store implements TrieStore: the persistent backing for
// round records, their entries, and trie blobs, on top of Badger —
// the same embedded KV store the teacher uses for merkle snapshots
// (internal/services/merkle/merkleimpl/store.go) and epoch state
// (internal/infra/storage/badger_client.go). This package consolidates
// those two near-duplicate stores into one, generalized from
// vault-scoped snapshots to round-scoped trie records.
package store

import (
	"time"

	"github.com/andrey/trie-core/internal/trie"
)

// RoundState is a round's lifecycle state.
type RoundState int

const (
	RoundEmpty RoundState = iota
	RoundBuilt
	RoundCommitting
	RoundCommitted
	RoundFailed
)

func (s RoundState) String() string {
	switch s {
	case RoundEmpty:
		return "Empty"
	case RoundBuilt:
		return "Built"
	case RoundCommitting:
		return "Committing"
	case RoundCommitted:
		return "Committed"
	case RoundFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// RoundRecord is the persisted metadata for one round.
type RoundRecord struct {
	RoundID      uint32
	RootHash     trie.Hash256
	BlobRef      trie.Hash256 // content address of the persisted trie blob
	EntryCount   int
	State        RoundState
	Ordering     trie.OrderingMode
	EncoderMode  trie.EncoderMode
	CreatedAt    time.Time
	UpdatedAt    time.Time
	OnChainTxHash string // last successful commit's transaction hash, if any
}

// blobPayload is the serialized form of a trie's entries plus the
// (ordering, encoder) pair needed to rebuild it deterministically.
// JSON is used for the same reason the teacher's MerkleSnapshot uses
// it: human-inspectable blobs with no ecosystem serialization library
// in the example corpus beats a hand-rolled binary framing.
type blobPayload struct {
	Ordering trie.OrderingMode  `json:"ordering"`
	Encoder  trie.EncoderMode   `json:"encoder"`
	Entries  []blobEntry        `json:"entries"`
}

type blobEntry struct {
	Address string `json:"address"` // lowercase 0x-prefixed hex
	Amount  string `json:"amount"`  // base-10 decimal string
}
