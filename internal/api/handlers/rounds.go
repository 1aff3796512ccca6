package handlers

import (
	"encoding/base64"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/andrey/trie-core/internal/coordinator"
	"github.com/andrey/trie-core/internal/store"
	"github.com/andrey/trie-core/internal/trie"
	"github.com/go-pkgz/lgr"
)

// RoundsHandler serves the round lifecycle surface: ingest, rebuild,
// download, submit, metadata, and delete.
type RoundsHandler struct {
	coord  *coordinator.Coordinator
	logger lgr.L
}

func NewRoundsHandler(coord *coordinator.Coordinator, logger lgr.L) *RoundsHandler {
	return &RoundsHandler{coord: coord, logger: logger}
}

func parseRoundID(r *http.Request) (uint32, error) {
	raw := r.PathValue("round_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid round_id %q", trie.ErrInvalidAddress, raw)
	}
	return uint32(id), nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// HandleUploadCSV handles multipart CSV eligibility uploads.
//
// @Summary Upload a CSV eligibility set
// @Description Parses a multipart round_id + csv_file (address,amount header) and ingests it
// @Tags rounds
// @Accept multipart/form-data
// @Produce json
// @Param round_id formData string true "Round ID"
// @Param csv_file formData file true "CSV file with header address,amount"
// @Success 200 {object} store.RoundRecord
// @Failure 400 {object} ErrorResponse
// @Router /upload-csv [post]
func (h *RoundsHandler) HandleUploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeErrorResponse(w, fmt.Errorf("%w: parsing multipart form: %v", trie.ErrInvalidAddress, err), "invalid upload")
		return
	}
	roundID, err := strconv.ParseUint(r.FormValue("round_id"), 10, 32)
	if err != nil {
		writeErrorResponse(w, fmt.Errorf("%w: invalid round_id", trie.ErrInvalidAddress), "invalid upload")
		return
	}

	file, _, err := r.FormFile("csv_file")
	if err != nil {
		writeErrorResponse(w, fmt.Errorf("%w: missing csv_file: %v", trie.ErrInvalidAddress, err), "invalid upload")
		return
	}
	defer file.Close()

	entries, err := parseEligibilityCSV(file)
	if err != nil {
		writeErrorResponse(w, err, "invalid CSV")
		return
	}

	record, err := h.coord.Rebuild(r.Context(), uint32(roundID), entries, trie.SortByLeafBytes, trie.BinaryAddress)
	if err != nil {
		writeErrorResponse(w, err, "failed to ingest round")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func parseEligibilityCSV(r interface{ Read([]byte) (int, error) }) ([]trie.Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV header: %v", trie.ErrInvalidAddress, err)
	}
	if len(header) != 2 || header[0] != "address" || header[1] != "amount" {
		return nil, fmt.Errorf("%w: CSV header must be address,amount", trie.ErrInvalidAddress)
	}

	var entries []trie.Entry
	for {
		row, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("%w: reading CSV row: %v", trie.ErrInvalidAddress, err)
		}
		addr, err := trie.ParseAddress(row[0])
		if err != nil {
			return nil, err
		}
		amount, err := trie.ParseAmount(row[1])
		if err != nil {
			return nil, err
		}
		entries = append(entries, trie.Entry{Address: addr, Amount: amount})
	}
	return entries, nil
}

// jsonEligibilityRequest is the body of upload-json-eligibility.
type jsonEligibilityRequest struct {
	Eligibility map[string]string `json:"eligibility"`
}

// HandleUploadJSONEligibility handles JSON eligibility uploads.
//
// @Summary Upload a JSON eligibility set for a round
// @Tags rounds
// @Accept json
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 200 {object} store.RoundRecord
// @Failure 400 {object} ErrorResponse
// @Router /upload-json-eligibility/{round_id} [post]
func (h *RoundsHandler) HandleUploadJSONEligibility(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseRoundID(r)
	if err != nil {
		writeErrorResponse(w, err, "invalid round_id")
		return
	}

	var req jsonEligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, fmt.Errorf("%w: decoding request body: %v", trie.ErrInvalidAddress, err), "invalid request")
		return
	}

	entries := make([]trie.Entry, 0, len(req.Eligibility))
	for addrStr, amountStr := range req.Eligibility {
		addr, err := trie.ParseAddress(addrStr)
		if err != nil {
			writeErrorResponse(w, err, "invalid address in eligibility set")
			return
		}
		amount, err := trie.ParseAmount(amountStr)
		if err != nil {
			writeErrorResponse(w, err, "invalid amount in eligibility set")
			return
		}
		entries = append(entries, trie.Entry{Address: addr, Amount: amount})
	}

	record, err := h.coord.Rebuild(r.Context(), roundID, entries, trie.SortByLeafBytes, trie.BinaryAddress)
	if err != nil {
		writeErrorResponse(w, err, "failed to ingest round")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// downloadTrieResponse is the body of download-trie-data.
type downloadTrieResponse struct {
	Root       string            `json:"root"`
	Format     string            `json:"format"`
	Data       string            `json:"data"`
	EntryCount int               `json:"entry_count"`
	Proofs     map[string]string `json:"proofs,omitempty"`
}

// HandleDownloadTrieData returns a round's blob and root in the
// requested encoding, along with every address's proof.
//
// @Summary Download a round's trie blob and per-address proofs
// @Tags rounds
// @Produce json
// @Param round_id path string true "Round ID"
// @Param format query string false "json|hex|base64"
// @Success 200 {object} downloadTrieResponse
// @Failure 404 {object} ErrorResponse
// @Router /download-trie-data/{round_id} [get]
func (h *RoundsHandler) HandleDownloadTrieData(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseRoundID(r)
	if err != nil {
		writeErrorResponse(w, err, "invalid round_id")
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	entries, ordering, encMode, err := h.coord.LoadBlobForDownload(r.Context(), roundID)
	if err != nil {
		writeErrorResponse(w, err, "failed to load round")
		return
	}
	tr, err := trie.Build(entries, ordering, encMode)
	if err != nil {
		writeErrorResponse(w, err, "failed to rebuild trie")
		return
	}

	raw := h.coord.EncodeEntries(entries)

	var encoded string
	switch format {
	case "hex":
		encoded = hex.EncodeToString(raw)
	case "base64":
		encoded = base64.StdEncoding.EncodeToString(raw)
	case "json":
		encoded = string(raw)
	default:
		writeErrorResponse(w, fmt.Errorf("%w: unknown format %q", trie.ErrInvalidAddress, format), "invalid format")
		return
	}

	proofs := make(map[string]string, tr.EntryCount())
	for _, e := range tr.Entries() {
		proof, _, perr := tr.ProofFor(e.Address)
		if perr != nil {
			continue
		}
		proofJSON, _ := json.Marshal(proof.HexStrings())
		proofs[e.Address.Checksum()] = string(proofJSON)
	}

	writeJSON(w, http.StatusOK, downloadTrieResponse{
		Root:       tr.Root().Hex(),
		Format:     format,
		Data:       encoded,
		EntryCount: tr.EntryCount(),
		Proofs:     proofs,
	})
}

// HandleSubmitTrie commits the round's current root on-chain.
//
// @Summary Submit a round's root on-chain
// @Tags rounds
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 200 {object} store.RoundRecord
// @Failure 409 {object} ErrorResponse
// @Router /submit-trie/{round_id} [post]
func (h *RoundsHandler) HandleSubmitTrie(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseRoundID(r)
	if err != nil {
		writeErrorResponse(w, err, "invalid round_id")
		return
	}
	record, err := h.coord.Commit(r.Context(), roundID)
	if err != nil {
		writeErrorResponse(w, err, "failed to commit round")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// HandleTrieInfo returns a round's stored metadata.
//
// @Summary Get a round's trie metadata
// @Tags rounds
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 200 {object} store.RoundRecord
// @Failure 404 {object} ErrorResponse
// @Router /trie-info/{round_id} [get]
func (h *RoundsHandler) HandleTrieInfo(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseRoundID(r)
	if err != nil {
		writeErrorResponse(w, err, "invalid round_id")
		return
	}
	record, err := h.coord.RoundInfo(r.Context(), roundID)
	if err != nil {
		writeErrorResponse(w, err, "failed to load round")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// HandleRoundActive reports whether a round is in a writable state.
//
// @Summary Check whether a round is active
// @Tags rounds
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 200 {object} map[string]bool
// @Router /rounds/{round_id}/active [get]
func (h *RoundsHandler) HandleRoundActive(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseRoundID(r)
	if err != nil {
		writeErrorResponse(w, err, "invalid round_id")
		return
	}
	record, err := h.coord.RoundInfo(r.Context(), roundID)
	if err != nil {
		writeErrorResponse(w, err, "failed to load round")
		return
	}
	active := record.State != store.RoundCommitting
	writeJSON(w, http.StatusOK, map[string]interface{}{"round_id": roundID, "active": active, "state": record.State.String()})
}

// HandleRoundMetadata returns the same payload as HandleTrieInfo under
// the /rounds/{round_id}/metadata alias the spec names separately.
func (h *RoundsHandler) HandleRoundMetadata(w http.ResponseWriter, r *http.Request) {
	h.HandleTrieInfo(w, r)
}

// HandleValidateConsistency compares the local root against what's
// on-chain for a round.
//
// @Summary Validate a round's on-chain consistency
// @Tags rounds
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 200 {object} map[string]interface{}
// @Router /rounds/{round_id}/validate-consistency [get]
func (h *RoundsHandler) HandleValidateConsistency(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseRoundID(r)
	if err != nil {
		writeErrorResponse(w, err, "invalid round_id")
		return
	}
	status, onChainRoot, err := h.coord.ValidateConsistency(r.Context(), roundID)
	if err != nil {
		writeErrorResponse(w, err, "failed to validate consistency")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"round_id":      roundID,
		"status":        status.String(),
		"on_chain_root": onChainRoot.Hex(),
	})
}

// HandleRoundsStatistics returns summary counts across every round.
//
// @Summary Round statistics
// @Tags rounds
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /rounds/statistics [get]
func (h *RoundsHandler) HandleRoundsStatistics(w http.ResponseWriter, r *http.Request) {
	records, err := h.coord.ListRounds(r.Context())
	if err != nil {
		writeErrorResponse(w, err, "failed to list rounds")
		return
	}
	byState := map[string]int{}
	totalEntries := 0
	for _, rec := range records {
		byState[rec.State.String()]++
		totalEntries += rec.EntryCount
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"round_count":   len(records),
		"by_state":      byState,
		"total_entries": totalEntries,
	})
}

// HandleProcessingLogs returns the audit history for one round, or,
// with no round_id path value (GET /processing-logs), the audit
// history of every known round.
//
// @Summary Round processing/audit logs
// @Tags rounds
// @Produce json
// @Param round_id path string false "Round ID"
// @Success 200 {array} audit.Record
// @Router /processing-logs/{round_id} [get]
func (h *RoundsHandler) HandleProcessingLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	if r.PathValue("round_id") == "" {
		records, err := h.coord.AllProcessingLogs(r.Context(), limit)
		if err != nil {
			writeErrorResponse(w, err, "failed to load processing logs")
			return
		}
		writeJSON(w, http.StatusOK, records)
		return
	}

	roundID, err := parseRoundID(r)
	if err != nil {
		writeErrorResponse(w, err, "invalid round_id")
		return
	}
	records, err := h.coord.ProcessingLogs(r.Context(), roundID, limit)
	if err != nil {
		writeErrorResponse(w, err, "failed to load processing logs")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// HandleDeleteRound cascade-deletes a round.
//
// @Summary Delete a round
// @Tags rounds
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 204
// @Router /rounds/{round_id} [delete]
func (h *RoundsHandler) HandleDeleteRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseRoundID(r)
	if err != nil {
		writeErrorResponse(w, err, "invalid round_id")
		return
	}
	if err := h.coord.Delete(r.Context(), roundID); err != nil {
		writeErrorResponse(w, err, "failed to delete round")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
