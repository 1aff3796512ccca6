// cmd/compare is the standalone CLI comparator: builds a trie from a
// local eligibility file and checks it against either a CLI-supplied
// expected root or a reference file (root plus per-address amount and
// proof), surfacing root-mismatch and proof-mismatch as distinct exit
// codes rather than folding them into one generic failure.
//
// Flag parsing is jessevdk/go-flags, a dependency the teacher's go.mod
// already declares (for its own peripheral CLI tooling) but never
// actually imports anywhere in its source — this binary is its first
// real use in this codebase.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/andrey/trie-core/internal/compare"
	"github.com/andrey/trie-core/internal/trie"
	flags "github.com/jessevdk/go-flags"
)

type options struct {
	Input        string `short:"i" long:"input" required:"true" description:"path to a JSON eligibility file ([{address,amount}, ...])"`
	Ordering     string `long:"ordering" default:"sort_leaf_bytes" description:"sort_leaf_bytes|sort_address_key|preserve_insertion_order"`
	Encoder      string `long:"encoder" default:"binary_address" description:"binary_address|hex_prefix_address"`
	ExpectedRoot string `long:"expected-root" description:"0x-prefixed 32-byte hex root to compare the built trie against"`
	Reference    string `long:"reference" description:"path to a reference JSON file (root + per-address amount/proof) to compare against"`
}

type wireEntry struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

type referenceEntry struct {
	Address string   `json:"address"`
	Amount  string   `json:"amount"`
	Proof   []string `json:"proof,omitempty"`
}

type referenceFile struct {
	Root    string           `json:"root"`
	Entries []referenceEntry `json:"entries"`
}

const (
	exitSuccess          = 0
	exitRootMismatchCLI  = 1
	exitRootMismatchRef  = 2
	exitProofMismatchRef = 3
	exitUsageOrLoadError = 64
)

func main() {
	os.Exit(run())
}

func run() int {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		return exitUsageOrLoadError
	}

	ordering, err := parseOrdering(opts.Ordering)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageOrLoadError
	}
	encMode, err := parseEncoder(opts.Encoder)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageOrLoadError
	}

	entries, err := loadEligibilityFile(opts.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading input: %v\n", err)
		return exitUsageOrLoadError
	}

	tr, err := trie.Build(entries, ordering, encMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building trie: %v\n", err)
		return exitUsageOrLoadError
	}

	if opts.ExpectedRoot != "" {
		expected, err := trie.ParseHash256(opts.ExpectedRoot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parsing expected root: %v\n", err)
			return exitUsageOrLoadError
		}
		if tr.Root() != expected {
			fmt.Printf("root mismatch: built %s, expected %s\n", tr.Root().Hex(), expected.Hex())
			return exitRootMismatchCLI
		}
		fmt.Printf("root matches expected root %s\n", expected.Hex())
	}

	if opts.Reference == "" {
		fmt.Println("OK")
		return exitSuccess
	}

	ref, err := loadReferenceFile(opts.Reference)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading reference: %v\n", err)
		return exitUsageOrLoadError
	}

	report := compare.Compare(tr, ref)
	printReport(report)

	if !report.RootMatch {
		return exitRootMismatchRef
	}
	if len(report.ProofMismatches) > 0 {
		return exitProofMismatchRef
	}
	return exitSuccess
}

func loadEligibilityFile(path string) ([]trie.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wire []wireEntry
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	entries := make([]trie.Entry, 0, len(wire))
	for _, w := range wire {
		addr, err := trie.ParseAddress(w.Address)
		if err != nil {
			return nil, fmt.Errorf("address %q: %w", w.Address, err)
		}
		amount, err := trie.ParseAmount(w.Amount)
		if err != nil {
			return nil, fmt.Errorf("amount for %q: %w", w.Address, err)
		}
		entries = append(entries, trie.Entry{Address: addr, Amount: amount})
	}
	return entries, nil
}

func loadReferenceFile(path string) (compare.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return compare.Reference{}, err
	}
	var raw referenceFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return compare.Reference{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	root, err := trie.ParseHash256(raw.Root)
	if err != nil {
		return compare.Reference{}, fmt.Errorf("reference root: %w", err)
	}

	entries := make(map[trie.Address]compare.ReferenceEntry, len(raw.Entries))
	for _, e := range raw.Entries {
		addr, err := trie.ParseAddress(e.Address)
		if err != nil {
			return compare.Reference{}, fmt.Errorf("reference address %q: %w", e.Address, err)
		}
		amount, err := trie.ParseAmount(e.Amount)
		if err != nil {
			return compare.Reference{}, fmt.Errorf("reference amount for %q: %w", e.Address, err)
		}
		var proof trie.Proof
		if len(e.Proof) > 0 {
			proof, err = trie.ParseProofHex(e.Proof)
			if err != nil {
				return compare.Reference{}, fmt.Errorf("reference proof for %q: %w", e.Address, err)
			}
		}
		entries[addr] = compare.ReferenceEntry{Amount: amount, Proof: proof}
	}

	return compare.Reference{Root: root, Entries: entries}, nil
}

func printReport(report compare.Report) {
	fmt.Printf("root_match: %v\n", report.RootMatch)
	fmt.Printf("missing_in_local: %d\n", len(report.MissingInLocal))
	fmt.Printf("missing_in_reference: %d\n", len(report.MissingInReference))
	fmt.Printf("amount_mismatches: %d\n", len(report.AmountMismatches))
	fmt.Printf("proof_mismatches: %d\n", len(report.ProofMismatches))
}

func parseOrdering(s string) (trie.OrderingMode, error) {
	switch s {
	case "", "sort_leaf_bytes":
		return trie.SortByLeafBytes, nil
	case "sort_address_key":
		return trie.SortByAddressKey, nil
	case "preserve_insertion_order":
		return trie.PreserveInsertionOrder, nil
	default:
		return 0, fmt.Errorf("unknown ordering mode %q", s)
	}
}

func parseEncoder(s string) (trie.EncoderMode, error) {
	switch s {
	case "", "binary_address":
		return trie.BinaryAddress, nil
	case "hex_prefix_address":
		return trie.HexPrefixAddress, nil
	default:
		return 0, fmt.Errorf("unknown encoder mode %q", s)
	}
}
