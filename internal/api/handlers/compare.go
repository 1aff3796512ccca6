package handlers

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/andrey/trie-core/internal/coordinator"
	"github.com/andrey/trie-core/internal/trie"
	"github.com/go-pkgz/lgr"
)

// CompareHandler serves the external-reference comparison surface:
// upload-compare-trie, fetch-external-data, compare-external-trie.
type CompareHandler struct {
	coord  *coordinator.Coordinator
	logger lgr.L
}

func NewCompareHandler(coord *coordinator.Coordinator, logger lgr.L) *CompareHandler {
	return &CompareHandler{coord: coord, logger: logger}
}

// uploadCompareTrieRequest is the body of upload-compare-trie.
type uploadCompareTrieRequest struct {
	Root     string `json:"root"`
	TrieData string `json:"trie_data"`
	Format   string `json:"format"`
}

// HandleUploadCompareTrie diffs a caller-supplied trie blob against
// the round's local trie.
//
// @Summary Compare an uploaded trie blob against a round's stored trie
// @Tags compare
// @Accept json
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 200 {object} compare.Report
// @Failure 400 {object} ErrorResponse
// @Router /upload-compare-trie/{round_id} [post]
func (h *CompareHandler) HandleUploadCompareTrie(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseRoundID(r)
	if err != nil {
		writeErrorResponse(w, err, "invalid round_id")
		return
	}

	var req uploadCompareTrieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, fmt.Errorf("%w: decoding request body: %v", trie.ErrInvalidAddress, err), "invalid request")
		return
	}

	claimedRoot, err := trie.ParseHash256(req.Root)
	if err != nil {
		writeErrorResponse(w, err, "invalid claimed root")
		return
	}

	var blob []byte
	switch req.Format {
	case "hex", "":
		blob, err = hex.DecodeString(req.TrieData)
	case "base64":
		blob, err = base64.StdEncoding.DecodeString(req.TrieData)
	default:
		err = fmt.Errorf("%w: unknown format %q", trie.ErrInvalidAddress, req.Format)
	}
	if err != nil {
		writeErrorResponse(w, fmt.Errorf("%w: decoding trie_data: %v", trie.ErrInvalidAddress, err), "invalid trie_data")
		return
	}

	report, err := h.coord.CompareUploadedBlob(r.Context(), roundID, claimedRoot, blob)
	if err != nil {
		writeErrorResponse(w, err, "failed to compare trie")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// fetchExternalRequest is the body of fetch-external-data.
type fetchExternalRequest struct {
	URL string `json:"url"`
}

// HandleFetchExternalData retrieves an eligibility set from an
// external URL and ingests it as the round's new trie.
//
// @Summary Fetch and ingest an external eligibility set
// @Tags compare
// @Accept json
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 200 {object} store.RoundRecord
// @Router /fetch-external-data/{round_id} [post]
func (h *CompareHandler) HandleFetchExternalData(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseRoundID(r)
	if err != nil {
		writeErrorResponse(w, err, "invalid round_id")
		return
	}
	var req fetchExternalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, fmt.Errorf("%w: decoding request body: %v", trie.ErrInvalidAddress, err), "invalid request")
		return
	}
	record, err := h.coord.Ingest(r.Context(), roundID, req.URL, trie.SortByLeafBytes, trie.BinaryAddress)
	if err != nil {
		writeErrorResponse(w, err, "failed to fetch external data")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// HandleCompareExternalTrie fetches an external trie blob and diffs it
// against the round's stored trie, without mutating the round.
//
// @Summary Fetch an external trie blob and compare against a round
// @Tags compare
// @Accept json
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 200 {object} compare.Report
// @Router /compare-external-trie/{round_id} [post]
func (h *CompareHandler) HandleCompareExternalTrie(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseRoundID(r)
	if err != nil {
		writeErrorResponse(w, err, "invalid round_id")
		return
	}
	var req fetchExternalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, fmt.Errorf("%w: decoding request body: %v", trie.ErrInvalidAddress, err), "invalid request")
		return
	}
	report, err := h.coord.CompareExternal(r.Context(), roundID, req.URL)
	if err != nil {
		writeErrorResponse(w, err, "failed to compare against external trie")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
