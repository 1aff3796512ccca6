// Package compare implements the Comparator: a byte-exact diff between
// a locally stored trie and an external reference, either another full
// trie or a structured JSON payload of claimed (amount, proof) pairs.
//
// The teacher has no analogue for this component (it never compares
// two merkle outputs against each other); it is built fresh from the
// §4.6 contract, reusing the trie package's sorted-pair fold for proof
// comparison.
package compare

import (
	"bytes"
	"sort"

	"github.com/andrey/trie-core/internal/trie"
)

// ReferenceEntry is one address's claimed state in an external
// reference. Proof may be nil when the reference only supplies a
// root and per-address amounts (no proof to check).
type ReferenceEntry struct {
	Amount trie.Amount
	Proof  trie.Proof
}

// Reference is an external trie or eligibility set to compare against:
// a claimed root plus a per-address view of amounts and, optionally,
// proofs.
type Reference struct {
	Root    trie.Hash256
	Entries map[trie.Address]ReferenceEntry
}

// AmountMismatch records one address whose locally stored amount
// disagrees with the reference's claimed amount.
type AmountMismatch struct {
	Address         trie.Address
	LocalAmount     trie.Amount
	ReferenceAmount trie.Amount
}

// Report is the Comparator's structured output.
type Report struct {
	RootMatch            bool
	MissingInLocal        []trie.Address // present in reference, absent locally
	MissingInReference    []trie.Address // present locally, absent in reference
	AmountMismatches      []AmountMismatch
	ProofMismatches       []trie.Address // present in both, but proofs disagree
}

// Compare diffs local against ref. See Report's field comments for
// the semantics of each report field.
func Compare(local *trie.Trie, ref Reference) Report {
	report := Report{RootMatch: local.Root() == ref.Root}

	localAmounts := make(map[trie.Address]trie.Amount, local.EntryCount())
	for _, e := range local.Entries() {
		localAmounts[e.Address] = e.Amount
	}

	for addr, refEntry := range ref.Entries {
		localAmt, ok := localAmounts[addr]
		if !ok {
			report.MissingInLocal = append(report.MissingInLocal, addr)
			continue
		}
		if localAmt != refEntry.Amount {
			report.AmountMismatches = append(report.AmountMismatches, AmountMismatch{
				Address:         addr,
				LocalAmount:     localAmt,
				ReferenceAmount: refEntry.Amount,
			})
		}
		if refEntry.Proof != nil {
			localProof, _, err := local.ProofFor(addr)
			if err != nil || !proofsEqual(localProof, refEntry.Proof) {
				report.ProofMismatches = append(report.ProofMismatches, addr)
			}
		}
	}

	for addr := range localAmounts {
		if _, ok := ref.Entries[addr]; !ok {
			report.MissingInReference = append(report.MissingInReference, addr)
		}
	}

	sortAddresses(report.MissingInLocal)
	sortAddresses(report.MissingInReference)
	sortAddresses(report.ProofMismatches)
	sort.Slice(report.AmountMismatches, func(i, j int) bool {
		return bytes.Compare(report.AmountMismatches[i].Address[:], report.AmountMismatches[j].Address[:]) < 0
	})
	return report
}

// ReferenceFromTrie builds a Reference from another fully-built trie,
// computing a fresh proof for every one of its entries. Used to
// compare two local tries against each other (e.g. before/after a
// rebuild, or a downloaded-then-reuploaded blob per the ingest/
// download/re-ingest idempotence scenario).
func ReferenceFromTrie(other *trie.Trie) (Reference, error) {
	entries := make(map[trie.Address]ReferenceEntry, other.EntryCount())
	for _, e := range other.Entries() {
		proof, amount, err := other.ProofFor(e.Address)
		if err != nil {
			return Reference{}, err
		}
		entries[e.Address] = ReferenceEntry{Amount: amount, Proof: proof}
	}
	return Reference{Root: other.Root(), Entries: entries}, nil
}

func proofsEqual(a, b trie.Proof) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortAddresses(addrs []trie.Address) {
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})
}
