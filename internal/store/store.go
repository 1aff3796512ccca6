package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/andrey/trie-core/internal/trie"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/go-pkgz/lgr"
)

// Store is the Badger-backed TrieStore. Grounded on the teacher's
// internal/infra/storage/badger_client.go (options, logger adapter)
// and internal/services/merkle/merkleimpl/store.go (key-prefix
// scheme, JSON snapshot encoding), consolidated into one store scoped
// to rounds instead of vault/epoch pairs.
type Store struct {
	db     *badger.DB
	logger lgr.L
}

// NewStore wraps an already-open Badger handle.
func NewStore(db *badger.DB, logger lgr.L) *Store {
	return &Store{db: db, logger: logger}
}

// Open opens (creating if absent) a Badger database at dbPath, using
// the same badgerLogger adapter pattern as the teacher's
// badger_client.go so Badger's internal logs flow through lgr.
func Open(dbPath string, logger lgr.L) (*Store, error) {
	opts := badger.DefaultOptions(dbPath).WithLogger(&badgerLogger{logger: logger})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: opening badger at %s: %v", ErrStorageUnavailable, dbPath, err)
	}
	return NewStore(db, logger), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func roundKey(roundID uint32) []byte {
	return []byte(fmt.Sprintf("trie:round:%010d", roundID))
}

func roundPrefix() []byte {
	return []byte("trie:round:")
}

func blobKey(ref trie.Hash256) []byte {
	return []byte(fmt.Sprintf("trie:blob:%x", ref[:]))
}

func entryKey(roundID uint32, addr trie.Address) []byte {
	return []byte(fmt.Sprintf("trie:entry:%010d:%x", roundID, addr[:]))
}

func entryPrefix(roundID uint32) []byte {
	return []byte(fmt.Sprintf("trie:entry:%010d:", roundID))
}

type persistedRound struct {
	RoundID       uint32    `json:"roundId"`
	RootHash      string    `json:"rootHash"`
	BlobRef       string    `json:"blobRef"`
	EntryCount    int       `json:"entryCount"`
	State         int       `json:"state"`
	Ordering      int       `json:"ordering"`
	EncoderMode   int       `json:"encoderMode"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	OnChainTxHash string    `json:"onChainTxHash,omitempty"`
}

func toPersisted(r *RoundRecord) persistedRound {
	return persistedRound{
		RoundID:       r.RoundID,
		RootHash:      r.RootHash.Hex(),
		BlobRef:       r.BlobRef.Hex(),
		EntryCount:    r.EntryCount,
		State:         int(r.State),
		Ordering:      int(r.Ordering),
		EncoderMode:   int(r.EncoderMode),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		OnChainTxHash: r.OnChainTxHash,
	}
}

func fromPersisted(p persistedRound) (*RoundRecord, error) {
	root, err := trie.ParseHash256(p.RootHash)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding stored root hash: %v", ErrStorageCorrupt, err)
	}
	blobRef, err := trie.ParseHash256(p.BlobRef)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding stored blob ref: %v", ErrStorageCorrupt, err)
	}
	return &RoundRecord{
		RoundID:       p.RoundID,
		RootHash:      root,
		BlobRef:       blobRef,
		EntryCount:    p.EntryCount,
		State:         RoundState(p.State),
		Ordering:      trie.OrderingMode(p.Ordering),
		EncoderMode:   trie.EncoderMode(p.EncoderMode),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		OnChainTxHash: p.OnChainTxHash,
	}, nil
}

// UpsertRound atomically replaces the round's (root, blob, entry_count)
// triple. On conflict (existing round_id) the prior blob is
// superseded; the swap happens inside one Badger transaction so a
// concurrent reader never observes a mix of old and new state.
func (s *Store) UpsertRound(ctx context.Context, roundID uint32, entries []trie.Entry, ordering trie.OrderingMode, encMode trie.EncoderMode, root trie.Hash256) (*RoundRecord, error) {
	payload := blobPayload{Ordering: ordering, Encoder: encMode, Entries: make([]blobEntry, len(entries))}
	for i, e := range entries {
		payload.Entries[i] = blobEntry{Address: e.Address.Lower(), Amount: trie.AmountToBigInt(e.Amount).String()}
	}
	blobBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding trie blob: %v", ErrStorageCorrupt, err)
	}
	blobRef := trie.Keccak256(blobBytes)

	now := time.Now()
	existing, err := s.GetRound(ctx, roundID)
	createdAt := now
	if err == nil {
		createdAt = existing.CreatedAt
	} else if err != ErrRoundNotFound {
		return nil, err
	}

	record := &RoundRecord{
		RoundID:     roundID,
		RootHash:    root,
		BlobRef:     blobRef,
		EntryCount:  len(entries),
		State:       RoundBuilt,
		Ordering:    ordering,
		EncoderMode: encMode,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}
	metaBytes, err := json.Marshal(toPersisted(record))
	if err != nil {
		return nil, fmt.Errorf("%w: encoding round metadata: %v", ErrStorageCorrupt, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(blobKey(blobRef), blobBytes); err != nil {
			return err
		}
		if err := txn.Set(roundKey(roundID), metaBytes); err != nil {
			return err
		}
		if existing != nil {
			if err := deleteEntriesInTxn(txn, roundID); err != nil {
				return err
			}
		}
		for _, e := range entries {
			if err := txn.Set(entryKey(roundID, e.Address), e.Amount[:]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: upserting round %d: %v", ErrStorageUnavailable, roundID, err)
	}
	return record, nil
}

// GetRound fetches a round's metadata.
func (s *Store) GetRound(ctx context.Context, roundID uint32) (*RoundRecord, error) {
	var record *RoundRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(roundKey(roundID))
		if err == badger.ErrKeyNotFound {
			return ErrRoundNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var p persistedRound
			if err := json.Unmarshal(val, &p); err != nil {
				return fmt.Errorf("%w: %v", ErrStorageCorrupt, err)
			}
			record, err = fromPersisted(p)
			return err
		})
	})
	if err == ErrRoundNotFound {
		return nil, ErrRoundNotFound
	}
	if err != nil {
		return nil, classifyErr(err)
	}
	return record, nil
}

// LoadBlob streams the persisted trie blob for a round and decodes it
// back into entries plus the (ordering, encoder) pair it was built
// with.
func (s *Store) LoadBlob(ctx context.Context, roundID uint32) ([]trie.Entry, trie.OrderingMode, trie.EncoderMode, error) {
	record, err := s.GetRound(ctx, roundID)
	if err != nil {
		return nil, 0, 0, err
	}

	var raw []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blobKey(record.BlobRef))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, 0, 0, classifyErr(err)
	}

	var payload blobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, 0, 0, fmt.Errorf("%w: decoding trie blob for round %d: %v", ErrStorageCorrupt, roundID, err)
	}
	if trie.Keccak256(raw) != record.BlobRef {
		return nil, 0, 0, fmt.Errorf("%w: blob for round %d fails content-address check", ErrStorageCorrupt, roundID)
	}

	entries := make([]trie.Entry, len(payload.Entries))
	for i, be := range payload.Entries {
		addr, err := trie.ParseAddress(be.Address)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("%w: %v", ErrStorageCorrupt, err)
		}
		amount, err := trie.ParseAmount(be.Amount)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("%w: %v", ErrStorageCorrupt, err)
		}
		entries[i] = trie.Entry{Address: addr, Amount: amount}
	}
	return entries, payload.Ordering, payload.Encoder, nil
}

// DeleteRound cascade-deletes a round's metadata and entries.
func (s *Store) DeleteRound(ctx context.Context, roundID uint32) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := deleteEntriesInTxn(txn, roundID); err != nil {
			return err
		}
		if err := txn.Delete(roundKey(roundID)); err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		return nil
	})
	if err != nil {
		return classifyErr(err)
	}
	return nil
}

func deleteEntriesInTxn(txn *badger.Txn, roundID uint32) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	prefix := entryPrefix(roundID)
	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, append([]byte(nil), it.Item().Key()...))
	}
	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// ListRounds returns a summary of every round, sorted by round_id.
func (s *Store) ListRounds(ctx context.Context) ([]*RoundRecord, error) {
	var records []*RoundRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := roundPrefix()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var p persistedRound
				if err := json.Unmarshal(val, &p); err != nil {
					return err
				}
				r, err := fromPersisted(p)
				if err != nil {
					return err
				}
				records = append(records, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, classifyErr(err)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].RoundID < records[j].RoundID })
	return records, nil
}

// GetEntry looks up the persisted amount for (round, address) directly,
// without decoding the whole blob. Coordinator.Verify does not call
// it; verification checks the supplied amount against the proof and
// the stored root.
func (s *Store) GetEntry(ctx context.Context, roundID uint32, addr trie.Address) (trie.Amount, error) {
	var amount trie.Amount
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entryKey(roundID, addr))
		if err == badger.ErrKeyNotFound {
			return ErrAddressNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 32 {
				return fmt.Errorf("%w: entry value has %d bytes, want 32", ErrStorageCorrupt, len(val))
			}
			copy(amount[:], val)
			return nil
		})
	})
	if err == ErrAddressNotFound {
		return amount, ErrAddressNotFound
	}
	if err != nil {
		return amount, classifyErr(err)
	}
	return amount, nil
}

// SetRoundState transitions a round's lifecycle state and, on a
// successful commit, records the transaction hash.
func (s *Store) SetRoundState(ctx context.Context, roundID uint32, state RoundState, txHash string) error {
	record, err := s.GetRound(ctx, roundID)
	if err != nil {
		return err
	}
	record.State = state
	record.UpdatedAt = time.Now()
	if txHash != "" {
		record.OnChainTxHash = txHash
	}
	metaBytes, err := json.Marshal(toPersisted(record))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageCorrupt, err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(roundKey(roundID), metaBytes)
	}); err != nil {
		return classifyErr(err)
	}
	return nil
}

func classifyErr(err error) error {
	if err == nil {
		return nil
	}
	switch err {
	case ErrStorageCorrupt, ErrStorageUnavailable, ErrRoundNotFound, ErrAddressNotFound:
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
}

// badgerLogger adapts lgr.L to badger's internal Logger interface,
// the same shim the teacher defines in badger_client.go.
type badgerLogger struct {
	logger lgr.L
}

func (b *badgerLogger) Errorf(format string, args ...interface{}) {
	b.logger.Logf("ERROR [badger] "+format, args...)
}
func (b *badgerLogger) Warningf(format string, args ...interface{}) {
	b.logger.Logf("WARN [badger] "+format, args...)
}
func (b *badgerLogger) Infof(format string, args ...interface{}) {
	b.logger.Logf("INFO [badger] "+format, args...)
}
func (b *badgerLogger) Debugf(format string, args ...interface{}) {
	b.logger.Logf("DEBUG [badger] "+format, args...)
}
