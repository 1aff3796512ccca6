// Package scheduler runs the round coordinator's periodic maintenance
// jobs. Adapted from the teacher's internal/scheduler.Scheduler (ticker
// loop with ctx-based shutdown, started as a goroutine from main),
// whose own scheduled jobs (epoch start, subsidy distribution) belonged
// to the teacher's lending domain; here the same ticker-loop shape
// drives round/root reconciliation against the on-chain contract and,
// on a second ticker, audit log cleanup.
package scheduler

import (
	"context"
	"time"

	"github.com/andrey/trie-core/internal/chain"
	"github.com/andrey/trie-core/internal/store"
	"github.com/andrey/trie-core/internal/trie"
	"github.com/go-pkgz/lgr"
)

// Reconciler is the subset of Coordinator the scheduler needs to
// revalidate committed rounds against the on-chain contract.
type Reconciler interface {
	ListRounds(ctx context.Context) ([]*store.RoundRecord, error)
	ValidateConsistency(ctx context.Context, roundID uint32) (chain.Consistency, trie.Hash256, error)
}

// Cleaner is the subset of Coordinator the scheduler needs to enforce
// the audit log retention horizon.
type Cleaner interface {
	CleanupAudit(ctx context.Context, olderThan time.Duration) (int, error)
}

// Coordinator is the full surface the scheduler drives; Coordinator
// itself satisfies both Reconciler and Cleaner.
type Coordinator interface {
	Reconciler
	Cleaner
}

// Scheduler runs two independent periodic jobs against a Coordinator:
// reconciliation (validate_consistency on every committed round) and
// audit log cleanup. Either job is disabled by giving it a non-positive
// interval.
type Scheduler struct {
	coord             Coordinator
	logger            lgr.L
	reconcileInterval time.Duration
	cleanupInterval   time.Duration
	auditRetention    time.Duration
}

// NewScheduler builds a Scheduler. reconcileInterval controls how often
// committed rounds are revalidated against the on-chain contract;
// cleanupInterval/auditRetention control the audit log cleanup job. A
// non-positive interval disables its job.
func NewScheduler(coord Coordinator, reconcileInterval, cleanupInterval, auditRetention time.Duration, logger lgr.L) *Scheduler {
	return &Scheduler{
		coord:             coord,
		logger:            logger,
		reconcileInterval: reconcileInterval,
		cleanupInterval:   cleanupInterval,
		auditRetention:    auditRetention,
	}
}

// Start runs both loops until ctx is cancelled. Intended to be launched
// with `go scheduler.Start(ctx)` from main.
func (s *Scheduler) Start(ctx context.Context) {
	done := make(chan struct{}, 2)
	go func() { s.runReconcileLoop(ctx); done <- struct{}{} }()
	go func() { s.runCleanupLoop(ctx); done <- struct{}{} }()
	<-done
	<-done
}

func (s *Scheduler) runReconcileLoop(ctx context.Context) {
	if s.reconcileInterval <= 0 {
		s.logger.Logf("INFO round reconciliation scheduler disabled (no interval configured)")
		return
	}

	ticker := time.NewTicker(s.reconcileInterval)
	defer ticker.Stop()

	s.logger.Logf("INFO round reconciliation scheduler started with interval %v", s.reconcileInterval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Logf("INFO round reconciliation scheduler stopped")
			return
		case <-ticker.C:
			s.runReconcile(ctx)
		}
	}
}

func (s *Scheduler) runReconcile(ctx context.Context) {
	records, err := s.coord.ListRounds(ctx)
	if err != nil {
		s.logger.Logf("ERROR round reconciliation: listing rounds: %v", err)
		return
	}

	for _, rec := range records {
		if rec.State != store.RoundCommitted {
			continue
		}
		status, onChainRoot, err := s.coord.ValidateConsistency(ctx, rec.RoundID)
		if err != nil {
			s.logger.Logf("ERROR round %d reconciliation failed: %v", rec.RoundID, err)
			continue
		}
		if status != chain.Consistent {
			s.logger.Logf("WARN round %d %s: local=%s on_chain=%s", rec.RoundID, status, rec.RootHash.Hex(), onChainRoot.Hex())
			continue
		}
		s.logger.Logf("DEBUG round %d reconciled: consistent (root=%s)", rec.RoundID, rec.RootHash.Hex())
	}
}

func (s *Scheduler) runCleanupLoop(ctx context.Context) {
	if s.cleanupInterval <= 0 {
		s.logger.Logf("INFO audit cleanup scheduler disabled (no interval configured)")
		return
	}

	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	s.logger.Logf("INFO audit cleanup scheduler started with interval %v, retention %v", s.cleanupInterval, s.auditRetention)

	for {
		select {
		case <-ctx.Done():
			s.logger.Logf("INFO audit cleanup scheduler stopped")
			return
		case <-ticker.C:
			s.runCleanup(ctx)
		}
	}
}

func (s *Scheduler) runCleanup(ctx context.Context) {
	removed, err := s.coord.CleanupAudit(ctx, s.auditRetention)
	if err != nil {
		s.logger.Logf("ERROR audit cleanup failed: %v", err)
		return
	}
	s.logger.Logf("INFO audit cleanup removed %d record(s) older than %v", removed, s.auditRetention)
}
