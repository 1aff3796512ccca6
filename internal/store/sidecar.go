package store

import (
	"context"
	"fmt"

	"github.com/andrey/trie-core/internal/trie"
	badger "github.com/dgraph-io/badger/v4"
)

// Sidecar is an optional, content-addressed secondary store for trie
// blobs and backups, keyed by the blob's own keccak256 under the
// "trie:sidecar:" prefix (UpsertRound's primary blobs use
// "trie:blob:"), so a sidecar can share a single Badger handle rather
// than needing a separate object-storage dependency (none appears
// anywhere in the example corpus). Disabled by default; when enabled
// via Coordinator.WithSidecar, every successful Coordinator.Rebuild
// also puts the round's entries here, in the bare address/amount
// array form used for downloads and calldata.
type Sidecar struct {
	db            *badger.DB
	maxObjectSize int
}

// NewSidecar wraps db (which may be the same handle TrieStore uses,
// or a distinct one) with a max object size limit.
func NewSidecar(db *badger.DB, maxObjectSize int) *Sidecar {
	return &Sidecar{db: db, maxObjectSize: maxObjectSize}
}

func sidecarKey(ref trie.Hash256) []byte {
	return []byte(fmt.Sprintf("trie:sidecar:%x", ref[:]))
}

// Put stores blob under its own content address, rejecting blobs over
// the configured maximum.
func (sc *Sidecar) Put(ctx context.Context, blob []byte) (trie.Hash256, error) {
	if sc.maxObjectSize > 0 && len(blob) > sc.maxObjectSize {
		return trie.Hash256{}, fmt.Errorf("%w: blob of %d bytes exceeds sidecar max object size %d", ErrStorageUnavailable, len(blob), sc.maxObjectSize)
	}
	ref := trie.Keccak256(blob)
	err := sc.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sidecarKey(ref), blob)
	})
	if err != nil {
		return trie.Hash256{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return ref, nil
}

// Get retrieves a blob by its content address, verifying it still
// hashes to ref before returning it.
func (sc *Sidecar) Get(ctx context.Context, ref trie.Hash256) ([]byte, error) {
	var raw []byte
	err := sc.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sidecarKey(ref))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = append([]byte(nil), val...)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrRoundNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if trie.Keccak256(raw) != ref {
		return nil, fmt.Errorf("%w: sidecar blob fails content-address check", ErrStorageCorrupt)
	}
	return raw, nil
}
