// Package trie implements the deterministic Merkle-trie core: leaf
// encoding, tree construction, and proof verification. It is the
// byte-exact heart of the service — every other component treats its
// output as ground truth.
package trie

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EncoderMode selects how an (address, amount) pair is packed before
// hashing into a leaf.
type EncoderMode int

const (
	// BinaryAddress packs the raw 20 address bytes followed by the
	// 32-byte big-endian amount (52 bytes total). This is the
	// viem/OpenZeppelin-compatible canonical mode.
	BinaryAddress EncoderMode = iota
	// HexPrefixAddress packs the 42-byte ASCII lowercase 0x-prefixed
	// address followed by the 32-byte amount (74 bytes total).
	// Retained for compatibility with a specific historical reference;
	// roots produced in this mode are NOT viem-canonical.
	HexPrefixAddress
)

func (m EncoderMode) String() string {
	switch m {
	case BinaryAddress:
		return "BinaryAddress"
	case HexPrefixAddress:
		return "HexPrefixAddress"
	default:
		return "Unknown"
	}
}

// OrderingMode selects how entries are ordered before leaf hashing and
// tree construction. The mode is a property of the trie and must be
// recorded alongside it for later proof extraction or recomputation.
type OrderingMode int

const (
	// SortByLeafBytes stable-sorts entries by their packed leaf bytes
	// prior to hashing. Default; permutation-invariant.
	SortByLeafBytes OrderingMode = iota
	// SortByAddressKey stable-sorts entries by the raw 20 address
	// bytes ascending. Permutation-invariant.
	SortByAddressKey
	// PreserveInsertionOrder keeps the caller-supplied order as-is.
	// Not permutation-invariant; used only to reproduce an externally
	// dictated trie layout.
	PreserveInsertionOrder
)

func (m OrderingMode) String() string {
	switch m {
	case SortByLeafBytes:
		return "SortByLeafBytes"
	case SortByAddressKey:
		return "SortByAddressKey"
	case PreserveInsertionOrder:
		return "PreserveInsertionOrder"
	default:
		return "Unknown"
	}
}

// Address is a 20-byte Ethereum-style identifier. Equality is always
// computed over the raw bytes; hex/checksum forms are display-only.
type Address [20]byte

// Amount is an unsigned 256-bit integer, stored as a fixed 32-byte
// big-endian sequence.
type Amount [32]byte

// Entry is a single eligibility record: address plus amount.
type Entry struct {
	Address Address
	Amount  Amount
}

// Hash256 is a 32-byte keccak256 digest — a leaf or internal node.
type Hash256 [32]byte

// ZeroRoot is the root of an empty trie.
var ZeroRoot Hash256

func (h Hash256) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

// ParseHash256 decodes a 0x-prefixed (or bare) 32-byte hex string into
// a Hash256.
func ParseHash256(s string) (Hash256, error) {
	var h Hash256
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return h, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	if len(raw) != 32 {
		return h, fmt.Errorf("invalid hash %q: expected 32 bytes, got %d", s, len(raw))
	}
	copy(h[:], raw)
	return h, nil
}

// ParseAddress decodes a hex address (with or without 0x prefix, any
// casing) into its raw 20 bytes. Returns ErrInvalidAddress if the
// decoded length isn't exactly 20 bytes.
func ParseAddress(s string) (Address, error) {
	var a Address
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return a, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) != 20 {
		return a, fmt.Errorf("%w: expected 20 bytes, got %d", ErrInvalidAddress, len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// ParseAmount decodes a base-10 decimal string into a fixed 32-byte
// big-endian amount. Returns ErrInvalidAmount if the string doesn't
// parse or overflows 256 bits.
func ParseAmount(s string) (Amount, error) {
	var amt Amount
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return amt, fmt.Errorf("%w: %q is not a valid decimal integer", ErrInvalidAmount, s)
	}
	if v.Sign() < 0 {
		return amt, fmt.Errorf("%w: negative amount %q", ErrInvalidAmount, s)
	}
	if v.BitLen() > 256 {
		return amt, fmt.Errorf("%w: %q overflows 256 bits", ErrInvalidAmount, s)
	}
	v.FillBytes(amt[:])
	return amt, nil
}

// AmountToBigInt converts a fixed 32-byte amount into a *big.Int.
func AmountToBigInt(a Amount) *big.Int {
	return new(big.Int).SetBytes(a[:])
}

// AmountFromBigInt converts a *big.Int into a fixed 32-byte amount,
// returning ErrInvalidAmount if it doesn't fit.
func AmountFromBigInt(v *big.Int) (Amount, error) {
	var amt Amount
	if v == nil || v.Sign() < 0 || v.BitLen() > 256 {
		return amt, ErrInvalidAmount
	}
	v.FillBytes(amt[:])
	return amt, nil
}

// Checksum renders a as an EIP-55 mixed-case checksummed hex string
// with a leading 0x. It delegates to go-ethereum's common.Address,
// which implements the EIP-55 algorithm this way: capitalize a hex
// digit iff the corresponding nibble of keccak256(lowercase ascii
// address without 0x) is >= 8.
func (a Address) Checksum() string {
	return common.BytesToAddress(a[:]).Hex()
}

// Lower renders a as a lowercase 0x-prefixed hex string, the stable
// map-key form.
func (a Address) Lower() string {
	return "0x" + hex.EncodeToString(a[:])
}

func keccak256(parts ...[]byte) Hash256 {
	return Hash256(crypto.Keccak256Hash(parts...))
}

// Keccak256 hashes arbitrary byte slices with keccak256, concatenating
// them first. Exposed for content-addressing persisted blobs outside
// this package (e.g. TrieStore's blob store).
func Keccak256(parts ...[]byte) Hash256 {
	return keccak256(parts...)
}
