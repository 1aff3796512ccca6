// Package round implements RoundRegistry: process-wide, per-round
// write exclusion. Exactly one mutating operation (ingest, rebuild,
// commit, delete) may hold a round's write token at a time; reads
// never acquire it.
//
// Grounded on the cancellation-safety pattern the teacher applies to
// its blockchain clients (internal/infra/blockchain/subsidizer.go's
// mock-mode nil-guards and context-aware waits) generalized into an
// explicit scoped-lock type, since the teacher itself has no
// equivalent per-round mutex — this is new code built from the §4.5
// contract.
package round

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrRoundBusy is returned by AcquireWrite when another write token
// for the same round is already held (the default fail-fast policy).
var ErrRoundBusy = errors.New("round busy: write token already held")

// Registry maps round_id to an exclusive write token.
type Registry struct {
	mu     sync.Mutex
	locked map[uint32]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{locked: make(map[uint32]struct{})}
}

// Token is a held write lock for one round. It must be released
// exactly once; Release is idempotent and safe to call from a defer.
type Token struct {
	registry *Registry
	roundID  uint32
	released atomic.Bool
}

// AcquireWrite attempts to take the write token for roundID.
// Fail-fast default policy: returns ErrRoundBusy immediately if the
// token is already held, rather than blocking.
func (r *Registry) AcquireWrite(roundID uint32) (*Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.locked[roundID]; busy {
		return nil, ErrRoundBusy
	}
	r.locked[roundID] = struct{}{}
	return &Token{registry: r, roundID: roundID}, nil
}

// Release gives up the write token. Safe to call more than once or
// after the holder was already cancelled — the token is released on
// every exit path, abnormal or not.
func (t *Token) Release() {
	if t == nil || !t.released.CompareAndSwap(false, true) {
		return
	}
	t.registry.mu.Lock()
	delete(t.registry.locked, t.roundID)
	t.registry.mu.Unlock()
}

// RoundID reports which round this token guards.
func (t *Token) RoundID() uint32 { return t.roundID }

// WithWrite acquires roundID's write token, runs fn, and guarantees
// release afterward regardless of how fn returns — including a panic,
// which is allowed to propagate after the token is released. This is
// the registry's "scoped acquisition with guaranteed release" in
// concrete form.
func (r *Registry) WithWrite(ctx context.Context, roundID uint32, fn func(ctx context.Context) error) error {
	token, err := r.AcquireWrite(roundID)
	if err != nil {
		return err
	}
	defer token.Release()
	return fn(ctx)
}

// IsBusy reports whether roundID currently has a held write token.
// For diagnostics only; never use it to gate an acquire (inherently
// racy) — call AcquireWrite and handle ErrRoundBusy instead.
func (r *Registry) IsBusy(roundID uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, busy := r.locked[roundID]
	return busy
}
