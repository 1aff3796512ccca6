package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder_BinaryAddressPacksFixedWidths(t *testing.T) {
	addr := mustAddr(t, "0x742C4d97C86bCF0176776C16e073b8c6f9Db4021")
	amount := mustAmount(t, "1000000000000000000")

	enc := NewEncoder(BinaryAddress)
	packed := enc.Pack(addr, amount)
	require.Len(t, packed, 52)
	assert.Equal(t, addr[:], packed[:20])
	assert.Equal(t, amount[:], packed[20:])
}

func TestEncoder_HexPrefixAddressPacksASCIIForm(t *testing.T) {
	addr := mustAddr(t, "0x742C4d97C86bCF0176776C16e073b8c6f9Db4021")
	amount := mustAmount(t, "1")

	enc := NewEncoder(HexPrefixAddress)
	packed := enc.Pack(addr, amount)
	require.Len(t, packed, 74)
	assert.Equal(t, addr.Lower(), string(packed[:42]))
}

func TestEncoder_ModesProduceDifferentLeaves(t *testing.T) {
	addr := mustAddr(t, "0x742C4d97C86bCF0176776C16e073b8c6f9Db4021")
	amount := mustAmount(t, "1")

	binary := NewEncoder(BinaryAddress).LeafHash(addr, amount)
	hexPrefix := NewEncoder(HexPrefixAddress).LeafHash(addr, amount)
	assert.NotEqual(t, binary, hexPrefix)
}

func TestParseAddress_NormalizesCaseAndPrefix(t *testing.T) {
	lower, err := ParseAddress("0x742c4d97c86bcf0176776c16e073b8c6f9db4021")
	require.NoError(t, err)
	mixed, err := ParseAddress("742C4d97C86bCF0176776C16e073b8c6f9Db4021")
	require.NoError(t, err)
	assert.Equal(t, lower, mixed)
}

func TestParseAddress_RejectsWrongLength(t *testing.T) {
	_, err := ParseAddress("0x1234")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestParseAmount_RejectsNonDecimalAndOverflow(t *testing.T) {
	_, err := ParseAmount("not-a-number")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseAmount("-5")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	tooBig := "1" + stringsRepeat("0", 90)
	_, err = ParseAmount(tooBig)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAddress_ChecksumRoundTrips(t *testing.T) {
	addr := mustAddr(t, "0x742C4d97C86bCF0176776C16e073b8c6f9Db4021")
	checksum := addr.Checksum()
	reparsed, err := ParseAddress(checksum)
	require.NoError(t, err)
	assert.Equal(t, addr, reparsed)
}

func stringsRepeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
