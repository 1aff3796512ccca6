package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andrey/trie-core/internal/trie"
	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher() *Fetcher {
	return New(lgr.Default(), Config{})
}

func TestFetchEligibility_DecodesAddressAmountMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"0x0000000000000000000000000000000000000001": "10",
			"0x0000000000000000000000000000000000000002": "20"
		}`))
	}))
	defer srv.Close()

	entries, err := newTestFetcher().FetchEligibility(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFetchEligibility_RejectsMalformedAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not-an-address": "10"}`))
	}))
	defer srv.Close()

	_, err := newTestFetcher().FetchEligibility(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrExternalInvalid)
}

func TestFetchEligibility_RejectsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestFetcher().FetchEligibility(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrExternalInvalid)
}

func TestFetchTrie_DecodesHexBlobAndRoot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"root": "0x0101010101010101010101010101010101010101010101010101010101010101",
			"encoding": "hex",
			"data": "deadbeef"
		}`))
	}))
	defer srv.Close()

	root, blob, err := newTestFetcher().FetchTrie(context.Background(), srv.URL)
	require.NoError(t, err)
	var want trie.Hash256
	for i := range want {
		want[i] = 0x01
	}
	assert.Equal(t, want, root)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, blob)
}

func TestFetchTrie_DecodesBase64Blob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"root": "0x000000000000000000000000000000000000000000000000000000000000000a",
			"encoding": "base64",
			"data": "3q2+7w=="
		}`))
	}))
	defer srv.Close()

	root, blob, err := newTestFetcher().FetchTrie(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, trie.Hash256{31: 0x0a}, root)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, blob)
}

func TestFetchTrie_RejectsUnknownEncoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"root": "0x000000000000000000000000000000000000000000000000000000000000000a",
			"encoding": "zstd",
			"data": "xxxx"
		}`))
	}))
	defer srv.Close()

	_, _, err := newTestFetcher().FetchTrie(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrExternalInvalid)
}

func TestFetcher_EnforcesMaxResponseBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 1024))
	}))
	defer srv.Close()

	f := New(lgr.Default(), Config{MaxResponseBytes: 16})
	_, err := f.FetchEligibility(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrExternalInvalid)
}
