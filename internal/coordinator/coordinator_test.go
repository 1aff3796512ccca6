package coordinator

import (
	"context"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/andrey/trie-core/internal/audit"
	"github.com/andrey/trie-core/internal/chain"
	"github.com/andrey/trie-core/internal/fetch"
	"github.com/andrey/trie-core/internal/round"
	"github.com/andrey/trie-core/internal/store"
	"github.com/andrey/trie-core/internal/trie"
	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir()).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := store.NewStore(db, lgr.Default())
	registry := round.NewRegistry()
	auditStore := audit.NewStore(db)
	committer, err := chain.New(lgr.Default(), chain.Config{})
	require.NoError(t, err)
	fetcher := fetch.New(lgr.Default(), fetch.Config{})

	return New(st, registry, auditStore, committer, fetcher, lgr.Default())
}

func addr(t *testing.T, b byte) trie.Address {
	t.Helper()
	var a trie.Address
	a[19] = b
	return a
}

func amount(t *testing.T, v uint64) trie.Amount {
	t.Helper()
	var amt trie.Amount
	amt[31] = byte(v)
	return amt
}

func TestCoordinator_RebuildThenVerify(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := context.Background()

	entries := []trie.Entry{
		{Address: addr(t, 1), Amount: amount(t, 10)},
		{Address: addr(t, 2), Amount: amount(t, 20)},
	}
	record, err := c.Rebuild(ctx, 1, entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)
	require.Equal(t, store.RoundBuilt, record.State)

	proof, matchedAmount, err := c.ProofFor(ctx, 1, addr(t, 1))
	require.NoError(t, err)
	require.Equal(t, amount(t, 10), matchedAmount)

	eligible, err := c.Verify(ctx, 1, addr(t, 1), amount(t, 10), proof, trie.BinaryAddress)
	require.NoError(t, err)
	require.True(t, eligible)

	eligible, err = c.Verify(ctx, 1, addr(t, 1), amount(t, 99), proof, trie.BinaryAddress)
	require.NoError(t, err)
	require.False(t, eligible)
}

func TestCoordinator_RebuildIsIdempotentAcrossReingestion(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := context.Background()

	entries := []trie.Entry{
		{Address: addr(t, 1), Amount: amount(t, 10)},
		{Address: addr(t, 2), Amount: amount(t, 20)},
	}
	first, err := c.Rebuild(ctx, 5, entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)

	second, err := c.Rebuild(ctx, 5, entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)

	require.Equal(t, first.RootHash, second.RootHash)
}

func TestCoordinator_CommitThenMockConsistencyCheck(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := context.Background()

	entries := []trie.Entry{{Address: addr(t, 1), Amount: amount(t, 10)}}
	_, err := c.Rebuild(ctx, 9, entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)

	record, err := c.Commit(ctx, 9)
	require.NoError(t, err)
	require.Equal(t, store.RoundCommitted, record.State)

	status, _, err := c.ValidateConsistency(ctx, 9)
	require.NoError(t, err)
	require.Equal(t, chain.Consistent, status)
}

func TestCoordinator_DeleteRemovesRound(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := context.Background()

	entries := []trie.Entry{{Address: addr(t, 1), Amount: amount(t, 10)}}
	_, err := c.Rebuild(ctx, 3, entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, 3))

	_, err = c.RoundInfo(ctx, 3)
	require.Error(t, err)
}

func TestCoordinator_SidecarMirrorsBlobOnRebuild(t *testing.T) {
	opts := badger.DefaultOptions(t.TempDir()).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := store.NewStore(db, lgr.Default())
	registry := round.NewRegistry()
	auditStore := audit.NewStore(db)
	committer, err := chain.New(lgr.Default(), chain.Config{})
	require.NoError(t, err)
	fetcher := fetch.New(lgr.Default(), fetch.Config{})

	c := New(st, registry, auditStore, committer, fetcher, lgr.Default())
	c.WithSidecar(store.NewSidecar(db, 1<<20))

	ctx := context.Background()
	entries := []trie.Entry{{Address: addr(t, 1), Amount: amount(t, 10)}}
	record, err := c.Rebuild(ctx, 6, entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)

	require.Equal(t, store.RoundBuilt, record.State)

	blob := c.EncodeEntries(entries)
	sidecar := store.NewSidecar(db, 1<<20)
	mirrored, err := sidecar.Get(ctx, trie.Keccak256(blob))
	require.NoError(t, err)
	require.Equal(t, blob, mirrored)
}

func TestCoordinator_CompareUploadedBlobDetectsMatch(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := context.Background()

	entries := []trie.Entry{
		{Address: addr(t, 1), Amount: amount(t, 10)},
		{Address: addr(t, 2), Amount: amount(t, 20)},
	}
	record, err := c.Rebuild(ctx, 4, entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)

	blob := c.EncodeEntries(entries)
	report, err := c.CompareUploadedBlob(ctx, 4, record.RootHash, blob)
	require.NoError(t, err)
	require.True(t, report.RootMatch)
	require.Empty(t, report.MissingInLocal)
	require.Empty(t, report.MissingInReference)
}
