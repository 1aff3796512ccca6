package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andrey/trie-core/internal/chain"
	"github.com/andrey/trie-core/internal/store"
	"github.com/andrey/trie-core/internal/trie"
	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/require"
)

type fakeCoordinator struct {
	cleanupCalls   int32
	reconcileCalls int32
	records        []*store.RoundRecord
	consistency    chain.Consistency
}

func (f *fakeCoordinator) CleanupAudit(ctx context.Context, olderThan time.Duration) (int, error) {
	atomic.AddInt32(&f.cleanupCalls, 1)
	return 0, nil
}

func (f *fakeCoordinator) ListRounds(ctx context.Context) ([]*store.RoundRecord, error) {
	atomic.AddInt32(&f.reconcileCalls, 1)
	return f.records, nil
}

func (f *fakeCoordinator) ValidateConsistency(ctx context.Context, roundID uint32) (chain.Consistency, trie.Hash256, error) {
	return f.consistency, trie.Hash256{}, nil
}

func TestScheduler_RunsCleanupOnTick(t *testing.T) {
	coord := &fakeCoordinator{}
	s := NewScheduler(coord, 0, 10*time.Millisecond, time.Hour, lgr.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s.Start(ctx)

	require.GreaterOrEqual(t, atomic.LoadInt32(&coord.cleanupCalls), int32(1))
	require.Equal(t, int32(0), atomic.LoadInt32(&coord.reconcileCalls))
}

func TestScheduler_RunsReconcileOnTick(t *testing.T) {
	coord := &fakeCoordinator{
		records: []*store.RoundRecord{
			{RoundID: 1, State: store.RoundCommitted},
			{RoundID: 2, State: store.RoundBuilt},
		},
		consistency: chain.Consistent,
	}
	s := NewScheduler(coord, 10*time.Millisecond, 0, time.Hour, lgr.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s.Start(ctx)

	require.GreaterOrEqual(t, atomic.LoadInt32(&coord.reconcileCalls), int32(1))
	require.Equal(t, int32(0), atomic.LoadInt32(&coord.cleanupCalls))
}

func TestScheduler_DisabledWithNonPositiveIntervals(t *testing.T) {
	coord := &fakeCoordinator{}
	s := NewScheduler(coord, 0, 0, time.Hour, lgr.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s.Start(ctx)

	require.Equal(t, int32(0), atomic.LoadInt32(&coord.cleanupCalls))
	require.Equal(t, int32(0), atomic.LoadInt32(&coord.reconcileCalls))
}
