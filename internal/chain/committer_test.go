package chain

import (
	"context"
	"sync"
	"testing"

	"github.com/andrey/trie-core/internal/trie"
	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockCommitter(t *testing.T) *Committer {
	t.Helper()
	c, err := New(lgr.Default(), Config{})
	require.NoError(t, err)
	return c
}

func TestNew_MockModeRequiresNoCredentials(t *testing.T) {
	c := newMockCommitter(t)
	assert.Nil(t, c.ethClient)
}

func TestNew_RealModeRequiresPrivateKeyAndContract(t *testing.T) {
	_, err := New(lgr.Default(), Config{RPCURL: "http://localhost:8545"})
	assert.Error(t, err)
}

func TestSubmit_MockModeSucceedsWithoutChain(t *testing.T) {
	c := newMockCommitter(t)
	txHash, err := c.Submit(context.Background(), 1, trie.Hash256{0x01}, []byte("trie-data"))
	require.NoError(t, err)
	assert.Empty(t, txHash)
}

func TestSubmit_RejectsConcurrentCommitForSameRound(t *testing.T) {
	c := newMockCommitter(t)
	require.NoError(t, c.acquire(7))
	defer c.release(7)

	_, err := c.Submit(context.Background(), 7, trie.Hash256{0x02}, nil)
	assert.ErrorIs(t, err, ErrCommitInFlight)
}

func TestSubmit_DisjointRoundsCommitIndependently(t *testing.T) {
	c := newMockCommitter(t)
	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = c.Submit(context.Background(), 1, trie.Hash256{0x01}, nil)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = c.Submit(context.Background(), 2, trie.Hash256{0x02}, nil)
	}()
	wg.Wait()
	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
}

func TestValidateConsistency_MockModeAlwaysConsistent(t *testing.T) {
	c := newMockCommitter(t)
	status, root, err := c.ValidateConsistency(context.Background(), 1, trie.Hash256{0xaa})
	require.NoError(t, err)
	assert.Equal(t, Consistent, status)
	assert.Equal(t, trie.Hash256{0xaa}, root)
}

func TestIsDefinitive_ClassifiesTransactionErrors(t *testing.T) {
	assert.True(t, isDefinitive(errFixture("execution reverted: insufficient balance")))
	assert.True(t, isDefinitive(errFixture("nonce too low")))
	assert.False(t, isDefinitive(errFixture("dial tcp: connection refused")))
}

type errFixture string

func (e errFixture) Error() string { return string(e) }
