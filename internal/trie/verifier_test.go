package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S2 — proof verification positive and negative.
func TestVerify_PositiveAndAmountTamperNegative(t *testing.T) {
	entries := []Entry{
		{Address: mustAddr(t, "0x742C4d97C86bCF0176776C16e073b8c6f9Db4021"), Amount: mustAmount(t, "1000000000000000000")},
		{Address: mustAddr(t, "0x8ba1f109551bD432803012645Ac136c5a2B51Abc"), Amount: mustAmount(t, "500000000000000000")},
		{Address: mustAddr(t, "0x06a37c563d88894a98438e3b2fe17f365f1d3530"), Amount: mustAmount(t, "990000000000000000")},
	}
	trie, err := Build(entries, SortByLeafBytes, BinaryAddress)
	require.NoError(t, err)

	for _, e := range entries {
		proof, amount, err := trie.ProofFor(e.Address)
		require.NoError(t, err)
		ok, err := Verify(BinaryAddress, e.Address, amount, proof, trie.Root())
		require.NoError(t, err)
		assert.True(t, ok)
	}

	target := entries[0]
	proof, amount, err := trie.ProofFor(target.Address)
	require.NoError(t, err)
	tampered := amount
	tampered[31] ^= 0x01
	ok, err := Verify(BinaryAddress, target.Address, tampered, proof, trie.Root())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseProofHex_RejectsMalformedSiblings(t *testing.T) {
	_, err := ParseProofHex([]string{"0xnot-hex"})
	assert.ErrorIs(t, err, ErrInvalidProof)

	_, err = ParseProofHex([]string{"0x1234"})
	assert.ErrorIs(t, err, ErrInvalidProof)
}

func TestParseProofHex_RoundTripsWithHexStrings(t *testing.T) {
	entries := []Entry{
		{Address: mustAddr(t, "0x742C4d97C86bCF0176776C16e073b8c6f9Db4021"), Amount: mustAmount(t, "1")},
		{Address: mustAddr(t, "0x8ba1f109551bD432803012645Ac136c5a2B51Abc"), Amount: mustAmount(t, "2")},
	}
	trie, err := Build(entries, SortByLeafBytes, BinaryAddress)
	require.NoError(t, err)

	proof, amount, err := trie.ProofFor(entries[0].Address)
	require.NoError(t, err)

	hexes := proof.HexStrings()
	roundTripped, err := ParseProofHex(hexes)
	require.NoError(t, err)
	assert.Equal(t, proof, roundTripped)

	ok, err := Verify(BinaryAddress, entries[0].Address, amount, roundTripped, trie.Root())
	require.NoError(t, err)
	assert.True(t, ok)
}
