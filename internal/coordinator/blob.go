package coordinator

import (
	"encoding/json"
	"fmt"

	"github.com/andrey/trie-core/internal/trie"
)

// wireEntry mirrors the per-entry JSON shape the store package uses
// inside a round's persisted blob. Blobs built here are a bare array
// of these, without the ordering/encoder header the store adds, so
// blobs handed to the chain committer as calldata or round-tripped
// through an external fetch decode consistently.
type wireEntry struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

func encodeBlobForChain(entries []trie.Entry) []byte {
	wire := make([]wireEntry, len(entries))
	for i, e := range entries {
		wire[i] = wireEntry{Address: e.Address.Lower(), Amount: trie.AmountToBigInt(e.Amount).String()}
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		// entries are always well-formed trie.Entry values; only
		// failure mode here is an unmarshalable type, which cannot
		// occur for this fixed struct shape.
		panic(fmt.Sprintf("encoding trie blob: %v", err))
	}
	return raw
}

func decodeBlobEntries(raw []byte) ([]trie.Entry, error) {
	var wire []wireEntry
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decoding trie blob entries: %w", err)
	}
	entries := make([]trie.Entry, len(wire))
	for i, w := range wire {
		addr, err := trie.ParseAddress(w.Address)
		if err != nil {
			return nil, fmt.Errorf("decoding entry %d address: %w", i, err)
		}
		amount, err := trie.ParseAmount(w.Amount)
		if err != nil {
			return nil, fmt.Errorf("decoding entry %d amount: %w", i, err)
		}
		entries[i] = trie.Entry{Address: addr, Amount: amount}
	}
	return entries, nil
}
