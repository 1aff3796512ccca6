// Package audit implements the append-only AuditRecord log: one entry
// per round operation (ingest, build, persist, commit, compare,
// delete, cleanup) with its outcome. Entries are never deleted except
// by explicit Cleanup of records older than a configured horizon.
//
// Grounded on the teacher's badger-backed persistence pattern
// (internal/services/merkle/merkleimpl/store.go's key-prefix +
// reverse-iterator scheme); this is new domain logic the teacher has
// no direct analogue for (its logging is transient, not a persisted,
// queryable audit trail).
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Operation names one of the RoundCoordinator's mutating or
// comparison actions.
type Operation string

const (
	OpIngest  Operation = "ingest"
	OpBuild   Operation = "build"
	OpPersist Operation = "persist"
	OpCommit  Operation = "commit"
	OpCompare Operation = "compare"
	OpDelete  Operation = "delete"
	OpCleanup Operation = "cleanup"
)

// Status is an audit record's outcome.
type Status string

const (
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Record is one append-only audit entry.
type Record struct {
	ID              string    `json:"id"`
	RoundID         uint32    `json:"roundId"`
	Operation       Operation `json:"operation"`
	Status          Status    `json:"status"`
	Message         string    `json:"message,omitempty"`
	TransactionHash string    `json:"transactionHash,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Store persists audit records in Badger under a round-scoped,
// time-ordered key so List can page through a round's history in
// completion order without a secondary index.
type Store struct {
	db *badger.DB
}

// NewStore wraps an already-open Badger handle. Audit records may
// share the same handle as TrieStore — they live under a disjoint key
// prefix.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

func recordKey(roundID uint32, timestamp time.Time, id string) []byte {
	return []byte(fmt.Sprintf("audit:round:%010d:%020d:%s", roundID, timestamp.UnixNano(), id))
}

func roundAuditPrefix(roundID uint32) []byte {
	return []byte(fmt.Sprintf("audit:round:%010d:", roundID))
}

// Append writes a new audit record. Callers supply RoundID, Operation,
// Status, and Message; ID and Timestamp are filled in if zero.
func (s *Store) Append(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding audit record: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(rec.RoundID, rec.Timestamp, rec.ID), raw)
	})
}

// List returns a round's audit history in chronological order, newest
// last. limit <= 0 means unbounded.
func (s *Store) List(ctx context.Context, roundID uint32, limit int) ([]Record, error) {
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := roundAuditPrefix(roundID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
			if limit > 0 && len(records) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing audit records for round %d: %w", roundID, err)
	}
	return records, nil
}

// Cleanup deletes every audit record older than olderThan, across all
// rounds, and returns the count removed. This is the only operation
// allowed to delete audit records.
func (s *Store) Cleanup(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	removed := 0
	err := s.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte("audit:round:")
		var stale [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			if rec.Timestamp.Before(cutoff) {
				stale = append(stale, append([]byte(nil), it.Item().Key()...))
			}
		}
		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("cleaning up audit records: %w", err)
	}
	return removed, nil
}
