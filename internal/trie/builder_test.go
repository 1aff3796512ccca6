package trie

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAddr(t *testing.T, s string) Address {
	t.Helper()
	a, err := ParseAddress(s)
	require.NoError(t, err)
	return a
}

func mustAmount(t *testing.T, wei string) Amount {
	t.Helper()
	v, ok := new(big.Int).SetString(wei, 10)
	require.True(t, ok)
	a, err := AmountFromBigInt(v)
	require.NoError(t, err)
	return a
}

// S1 — canonical viem-compatible root (BinaryAddress, SortByLeafBytes).
func TestBuild_CanonicalRootIsPermutationInvariant(t *testing.T) {
	entries := []Entry{
		{Address: mustAddr(t, "0x742C4d97C86bCF0176776C16e073b8c6f9Db4021"), Amount: mustAmount(t, "1000000000000000000")},
		{Address: mustAddr(t, "0x8ba1f109551bD432803012645Ac136c5a2B51Abc"), Amount: mustAmount(t, "500000000000000000")},
		{Address: mustAddr(t, "0x06a37c563d88894a98438e3b2fe17f365f1d3530"), Amount: mustAmount(t, "990000000000000000")},
	}

	reversed := []Entry{entries[2], entries[1], entries[0]}

	trieA, err := Build(entries, SortByLeafBytes, BinaryAddress)
	require.NoError(t, err)
	trieB, err := Build(reversed, SortByLeafBytes, BinaryAddress)
	require.NoError(t, err)

	assert.Equal(t, trieA.Root(), trieB.Root())
	assert.NotEqual(t, ZeroRoot, trieA.Root())

	for _, e := range entries {
		proof, amount, err := trieA.ProofFor(e.Address)
		require.NoError(t, err)
		assert.Equal(t, e.Amount, amount)
		ok, err := Verify(BinaryAddress, e.Address, amount, proof, trieA.Root())
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestBuild_PreserveInsertionOrderIsNotPermutationInvariant(t *testing.T) {
	entries := []Entry{
		{Address: mustAddr(t, "0x742C4d97C86bCF0176776C16e073b8c6f9Db4021"), Amount: mustAmount(t, "1")},
		{Address: mustAddr(t, "0x8ba1f109551bD432803012645Ac136c5a2B51Abc"), Amount: mustAmount(t, "2")},
	}
	reversed := []Entry{entries[1], entries[0]}

	trieA, err := Build(entries, PreserveInsertionOrder, BinaryAddress)
	require.NoError(t, err)
	trieB, err := Build(reversed, PreserveInsertionOrder, BinaryAddress)
	require.NoError(t, err)

	assert.NotEqual(t, trieA.Root(), trieB.Root())
}

func TestBuild_DuplicateAddressRejected(t *testing.T) {
	addr := mustAddr(t, "0x742C4d97C86bCF0176776C16e073b8c6f9Db4021")
	entries := []Entry{
		{Address: addr, Amount: mustAmount(t, "1")},
		{Address: addr, Amount: mustAmount(t, "2")},
	}
	_, err := Build(entries, SortByLeafBytes, BinaryAddress)
	assert.ErrorIs(t, err, ErrDuplicateAddress)
}

func TestBuild_EmptySetYieldsZeroRootAndNotFound(t *testing.T) {
	trie, err := Build(nil, SortByLeafBytes, BinaryAddress)
	require.NoError(t, err)
	assert.Equal(t, ZeroRoot, trie.Root())

	_, _, err = trie.ProofFor(mustAddr(t, "0x742C4d97C86bCF0176776C16e073b8c6f9Db4021"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuild_SingleEntryRootIsLeafHash(t *testing.T) {
	addr := mustAddr(t, "0x742C4d97C86bCF0176776C16e073b8c6f9Db4021")
	amount := mustAmount(t, "1000000000000000000")
	trie, err := Build([]Entry{{Address: addr, Amount: amount}}, SortByLeafBytes, BinaryAddress)
	require.NoError(t, err)

	enc := NewEncoder(BinaryAddress)
	assert.Equal(t, enc.LeafHash(addr, amount), trie.Root())

	proof, _, err := trie.ProofFor(addr)
	require.NoError(t, err)
	assert.Empty(t, proof)
}

// Odd leaf count: the duplicated last leaf must appear as its own
// sibling at that level.
func TestBuild_OddLeafCountDuplicatesLastNode(t *testing.T) {
	entries := make([]Entry, 0, 3)
	for i := 0; i < 3; i++ {
		entries = append(entries, Entry{
			Address: addrFromIndex(t, i),
			Amount:  mustAmount(t, "1"),
		})
	}
	trie, err := Build(entries, SortByAddressKey, BinaryAddress)
	require.NoError(t, err)

	last := trie.entries[len(trie.entries)-1]
	proof, _, err := trie.ProofFor(last.Address)
	require.NoError(t, err)
	require.Len(t, proof, 2)
	leafLevel := trie.levels[0]
	assert.Equal(t, leafLevel[len(leafLevel)-1], proof[0])
}

func addrFromIndex(t *testing.T, i int) Address {
	t.Helper()
	var a Address
	a[19] = byte(i + 1)
	return a
}

func TestBuild_ProofLengthMatchesLog2PaddedLeafCount(t *testing.T) {
	cases := []struct {
		n            int
		expectedMax  int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
	}
	for _, c := range cases {
		entries := make([]Entry, c.n)
		for i := 0; i < c.n; i++ {
			entries[i] = Entry{Address: addrFromIndex(t, i), Amount: mustAmount(t, "1")}
		}
		trie, err := Build(entries, SortByAddressKey, BinaryAddress)
		require.NoError(t, err)
		proof, _, err := trie.ProofFor(entries[0].Address)
		require.NoError(t, err)
		assert.Equal(t, c.expectedMax, len(proof))
	}
}
