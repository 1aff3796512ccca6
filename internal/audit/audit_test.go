package audit

import (
	"context"
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditStore(t *testing.T) *Store {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir()).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func TestStore_AppendAndListChronological(t *testing.T) {
	s := newTestAuditStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, Record{RoundID: 1, Operation: OpIngest, Status: StatusStarted}))
	require.NoError(t, s.Append(ctx, Record{RoundID: 1, Operation: OpIngest, Status: StatusCompleted}))
	require.NoError(t, s.Append(ctx, Record{RoundID: 2, Operation: OpIngest, Status: StatusStarted}))

	records, err := s.List(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, StatusStarted, records[0].Status)
	assert.Equal(t, StatusCompleted, records[1].Status)
}

func TestStore_CleanupRemovesOnlyStaleRecords(t *testing.T) {
	s := newTestAuditStore(t)
	ctx := context.Background()

	old := Record{RoundID: 1, Operation: OpIngest, Status: StatusCompleted, Timestamp: time.Now().Add(-48 * time.Hour)}
	fresh := Record{RoundID: 1, Operation: OpCommit, Status: StatusCompleted, Timestamp: time.Now()}
	require.NoError(t, s.Append(ctx, old))
	require.NoError(t, s.Append(ctx, fresh))

	removed, err := s.Cleanup(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	records, err := s.List(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, OpCommit, records[0].Operation)
}
