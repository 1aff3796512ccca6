// Package fetch implements the ExternalFetcher: pulls a candidate
// eligibility set or trie blob from an external HTTP source so it can
// be built locally and compared against what's already stored.
//
// Grounded on the teacher's internal/services/subgraph/client.go HTTP
// client (http.Client with a fixed timeout, http.NewRequestWithContext,
// json.Decode of the body, explicit status-code check) — generalized
// from a fixed GraphQL endpoint to an arbitrary caller-supplied URL,
// with a response-size cap the teacher's subgraph client doesn't need
// (GraphQL responses are trusted-origin; this fetcher pulls from
// external, untrusted URLs per the round operator's instruction).
package fetch

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andrey/trie-core/internal/trie"
	"github.com/go-pkgz/lgr"
)

// ErrExternalInvalid marks a response that failed validation: bad
// status code, malformed body, or a payload exceeding MaxResponseBytes.
var ErrExternalInvalid = errors.New("external fetch: invalid response")

// Config bounds how much trust a Fetcher extends to an external URL.
type Config struct {
	Timeout          time.Duration
	MaxResponseBytes int64
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = 64 << 20 // 64 MiB
	}
	return c
}

// Fetcher retrieves eligibility sets and trie blobs from external
// HTTP(S) endpoints on behalf of the RoundCoordinator.
type Fetcher struct {
	httpClient *http.Client
	cfg        Config
	logger     lgr.L
}

func New(logger lgr.L, cfg Config) *Fetcher {
	cfg = cfg.withDefaults()
	return &Fetcher{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

// eligibilityPayload is the wire shape expected from an external
// eligibility endpoint: an address -> decimal-amount map.
type eligibilityPayload map[string]string

// FetchEligibility retrieves and decodes a JSON address->amount map
// from url, returning the decoded entries in Go map iteration order,
// which is unspecified and does not follow the source's order —
// callers re-sort per their chosen OrderingMode.
func (f *Fetcher) FetchEligibility(ctx context.Context, url string) ([]trie.Entry, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload eligibilityPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding eligibility payload: %v", ErrExternalInvalid, err)
	}

	entries := make([]trie.Entry, 0, len(payload))
	for addrStr, amountStr := range payload {
		addr, err := trie.ParseAddress(addrStr)
		if err != nil {
			return nil, fmt.Errorf("%w: address %q: %v", ErrExternalInvalid, addrStr, err)
		}
		amount, err := trie.ParseAmount(amountStr)
		if err != nil {
			return nil, fmt.Errorf("%w: amount for %q: %v", ErrExternalInvalid, addrStr, err)
		}
		entries = append(entries, trie.Entry{Address: addr, Amount: amount})
	}
	return entries, nil
}

// trieBlobPayload is the wire shape expected from an external trie
// blob endpoint: a declared root, a declared byte encoding, and the
// encoded blob itself.
type trieBlobPayload struct {
	Root     string `json:"root"`
	Encoding string `json:"encoding"` // "hex" or "base64"
	Data     string `json:"data"`
}

// FetchTrie retrieves a claimed root and opaque blob from url,
// decoding the blob per its declared encoding. The caller is
// responsible for rebuilding a trie from the blob and checking it
// against the claimed root.
func (f *Fetcher) FetchTrie(ctx context.Context, url string) (claimedRoot trie.Hash256, blob []byte, err error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return trie.Hash256{}, nil, err
	}

	var payload trieBlobPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return trie.Hash256{}, nil, fmt.Errorf("%w: decoding trie blob payload: %v", ErrExternalInvalid, err)
	}

	root, err := trie.ParseHash256(payload.Root)
	if err != nil {
		return trie.Hash256{}, nil, fmt.Errorf("%w: claimed root %q: %v", ErrExternalInvalid, payload.Root, err)
	}

	switch payload.Encoding {
	case "hex", "":
		decoded, err := hex.DecodeString(trimHexPrefix(payload.Data))
		if err != nil {
			return trie.Hash256{}, nil, fmt.Errorf("%w: hex-decoding blob: %v", ErrExternalInvalid, err)
		}
		blob = decoded
	case "base64":
		decoded, err := base64.StdEncoding.DecodeString(payload.Data)
		if err != nil {
			return trie.Hash256{}, nil, fmt.Errorf("%w: base64-decoding blob: %v", ErrExternalInvalid, err)
		}
		blob = decoded
	default:
		return trie.Hash256{}, nil, fmt.Errorf("%w: unknown blob encoding %q", ErrExternalInvalid, payload.Encoding)
	}

	return root, blob, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrExternalInvalid, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: executing request: %v", ErrExternalInvalid, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.logger.Logf("WARN failed to close external fetch response body: %v", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d from %s", ErrExternalInvalid, resp.StatusCode, url)
	}

	limited := io.LimitReader(resp.Body, f.cfg.MaxResponseBytes+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrExternalInvalid, err)
	}
	if int64(len(body)) > f.cfg.MaxResponseBytes {
		return nil, fmt.Errorf("%w: response from %s exceeds %d bytes", ErrExternalInvalid, url, f.cfg.MaxResponseBytes)
	}
	return body, nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
