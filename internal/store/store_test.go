package store

import (
	"context"
	"testing"

	"github.com/andrey/trie-core/internal/trie"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir()).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db, lgr.NoOp)
}

func sampleEntries(t *testing.T) []trie.Entry {
	t.Helper()
	a1, err := trie.ParseAddress("0x742C4d97C86bCF0176776C16e073b8c6f9Db4021")
	require.NoError(t, err)
	a2, err := trie.ParseAddress("0x8ba1f109551bD432803012645Ac136c5a2B51Abc")
	require.NoError(t, err)
	amt1, err := trie.ParseAmount("1000000000000000000")
	require.NoError(t, err)
	amt2, err := trie.ParseAmount("500000000000000000")
	require.NoError(t, err)
	return []trie.Entry{{Address: a1, Amount: amt1}, {Address: a2, Amount: amt2}}
}

func TestStore_UpsertAndGetRoundRoundTrips(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	entries := sampleEntries(t)
	tr, err := trie.Build(entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)

	record, err := s.UpsertRound(ctx, 1, entries, trie.SortByLeafBytes, trie.BinaryAddress, tr.Root())
	require.NoError(t, err)
	assert.Equal(t, RoundBuilt, record.State)
	assert.Equal(t, len(entries), record.EntryCount)

	fetched, err := s.GetRound(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, tr.Root(), fetched.RootHash)
	assert.True(t, fetched.UpdatedAt.Equal(fetched.CreatedAt) || !fetched.UpdatedAt.Before(fetched.CreatedAt))
}

func TestStore_GetRound_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetRound(context.Background(), 999)
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

func TestStore_LoadBlobReconstructsEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	entries := sampleEntries(t)
	tr, err := trie.Build(entries, trie.SortByAddressKey, trie.BinaryAddress)
	require.NoError(t, err)

	_, err = s.UpsertRound(ctx, 7, entries, trie.SortByAddressKey, trie.BinaryAddress, tr.Root())
	require.NoError(t, err)

	loaded, ordering, encMode, err := s.LoadBlob(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, trie.SortByAddressKey, ordering)
	assert.Equal(t, trie.BinaryAddress, encMode)
	assert.Len(t, loaded, len(entries))

	rebuilt, err := trie.Build(loaded, ordering, encMode)
	require.NoError(t, err)
	assert.Equal(t, tr.Root(), rebuilt.Root())
}

func TestStore_UpsertRoundReplacesAtomically(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	entries := sampleEntries(t)
	tr1, err := trie.Build(entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)
	_, err = s.UpsertRound(ctx, 2, entries, trie.SortByLeafBytes, trie.BinaryAddress, tr1.Root())
	require.NoError(t, err)

	fewer := entries[:1]
	tr2, err := trie.Build(fewer, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)
	_, err = s.UpsertRound(ctx, 2, fewer, trie.SortByLeafBytes, trie.BinaryAddress, tr2.Root())
	require.NoError(t, err)

	record, err := s.GetRound(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, tr2.Root(), record.RootHash)
	assert.Equal(t, 1, record.EntryCount)

	_, err = s.GetEntry(ctx, 2, entries[1].Address)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestStore_GetEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	entries := sampleEntries(t)
	tr, err := trie.Build(entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)
	_, err = s.UpsertRound(ctx, 3, entries, trie.SortByLeafBytes, trie.BinaryAddress, tr.Root())
	require.NoError(t, err)

	amount, err := s.GetEntry(ctx, 3, entries[0].Address)
	require.NoError(t, err)
	assert.Equal(t, entries[0].Amount, amount)
}

func TestStore_DeleteRoundCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	entries := sampleEntries(t)
	tr, err := trie.Build(entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)
	_, err = s.UpsertRound(ctx, 4, entries, trie.SortByLeafBytes, trie.BinaryAddress, tr.Root())
	require.NoError(t, err)

	require.NoError(t, s.DeleteRound(ctx, 4))

	_, err = s.GetRound(ctx, 4)
	assert.ErrorIs(t, err, ErrRoundNotFound)
	_, err = s.GetEntry(ctx, 4, entries[0].Address)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestStore_ListRoundsSortedByRoundID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	entries := sampleEntries(t)
	tr, err := trie.Build(entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)
	for _, id := range []uint32{5, 2, 9} {
		_, err := s.UpsertRound(ctx, id, entries, trie.SortByLeafBytes, trie.BinaryAddress, tr.Root())
		require.NoError(t, err)
	}

	list, err := s.ListRounds(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uint32{2, 5, 9}, []uint32{list[0].RoundID, list[1].RoundID, list[2].RoundID})
}

func TestStore_SetRoundStateRecordsTxHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	entries := sampleEntries(t)
	tr, err := trie.Build(entries, trie.SortByLeafBytes, trie.BinaryAddress)
	require.NoError(t, err)
	_, err = s.UpsertRound(ctx, 6, entries, trie.SortByLeafBytes, trie.BinaryAddress, tr.Root())
	require.NoError(t, err)

	require.NoError(t, s.SetRoundState(ctx, 6, RoundCommitted, "0xabc123"))

	record, err := s.GetRound(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, RoundCommitted, record.State)
	assert.Equal(t, "0xabc123", record.OnChainTxHash)
}
