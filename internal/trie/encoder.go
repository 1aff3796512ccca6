package trie

// Encoder turns a decoded (address, amount) pair into the packed
// bytes fed to keccak256, and the resulting 32-byte leaf hash.
//
// Grounded on the teacher's merkleimpl.Service.CreateLeafHash, which
// packs common.Address.Bytes() (20 bytes) with amount.FillBytes(32)
// and keccak256-hashes the concatenation. The HexPrefixAddress mode
// is new: it packs the ASCII hex form instead of the raw bytes for
// compatibility with a reference implementation that hashes the
// string representation.
type Encoder struct {
	mode EncoderMode
}

// NewEncoder returns an Encoder configured for mode.
func NewEncoder(mode EncoderMode) Encoder {
	return Encoder{mode: mode}
}

// Mode reports the encoder's configured mode.
func (e Encoder) Mode() EncoderMode { return e.mode }

// Pack produces the raw bytes hashed into a leaf, without hashing
// them. Exposed mainly for cross-validation against external
// references that expect to see the packed bytes directly.
func (e Encoder) Pack(addr Address, amount Amount) []byte {
	switch e.mode {
	case HexPrefixAddress:
		packed := make([]byte, 0, 74)
		packed = append(packed, []byte(addr.Lower())...)
		packed = append(packed, amount[:]...)
		return packed
	default: // BinaryAddress
		packed := make([]byte, 0, 52)
		packed = append(packed, addr[:]...)
		packed = append(packed, amount[:]...)
		return packed
	}
}

// LeafHash computes the 32-byte keccak256 leaf hash for (addr, amount)
// under the encoder's configured mode.
func (e Encoder) LeafHash(addr Address, amount Amount) Hash256 {
	return keccak256(e.Pack(addr, amount))
}
