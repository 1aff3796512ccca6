package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/andrey/trie-core/internal/coordinator"
	"github.com/andrey/trie-core/internal/trie"
	"github.com/go-pkgz/lgr"
)

// EligibilityHandler serves the per-address eligibility surface:
// verify-eligibility and get-eligibility.
type EligibilityHandler struct {
	coord  *coordinator.Coordinator
	logger lgr.L
}

func NewEligibilityHandler(coord *coordinator.Coordinator, logger lgr.L) *EligibilityHandler {
	return &EligibilityHandler{coord: coord, logger: logger}
}

// verifyEligibilityRequest is the body of verify-eligibility.
type verifyEligibilityRequest struct {
	RoundID uint32 `json:"round_id"`
	Address string `json:"address"`
	Amount  string `json:"amount"`
	Proof   []string `json:"proof,omitempty"`
}

type verifyEligibilityResponse struct {
	IsEligible bool   `json:"is_eligible"`
	RoundID    uint32 `json:"round_id"`
	Address    string `json:"address"`
	Amount     string `json:"amount"`
}

// HandleVerifyEligibility checks (round_id, address, amount[, proof])
// against a round's stored root. If proof is omitted, the address's
// canonical proof is recomputed from the stored blob.
//
// @Summary Verify eligibility for an address in a round
// @Tags eligibility
// @Accept json
// @Produce json
// @Success 200 {object} verifyEligibilityResponse
// @Failure 400 {object} ErrorResponse
// @Router /verify-eligibility [post]
func (h *EligibilityHandler) HandleVerifyEligibility(w http.ResponseWriter, r *http.Request) {
	var req verifyEligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, fmt.Errorf("%w: decoding request body: %v", trie.ErrInvalidAddress, err), "invalid request")
		return
	}

	addr, err := trie.ParseAddress(req.Address)
	if err != nil {
		writeErrorResponse(w, err, "invalid address")
		return
	}
	amount, err := trie.ParseAmount(req.Amount)
	if err != nil {
		writeErrorResponse(w, err, "invalid amount")
		return
	}

	var proof trie.Proof
	if len(req.Proof) > 0 {
		proof, err = trie.ParseProofHex(req.Proof)
		if err != nil {
			writeErrorResponse(w, err, "invalid proof")
			return
		}
	} else {
		proof, _, err = h.coord.ProofFor(r.Context(), req.RoundID, addr)
		if err != nil {
			writeErrorResponse(w, err, "failed to look up proof")
			return
		}
	}

	eligible, err := h.coord.Verify(r.Context(), req.RoundID, addr, amount, proof, trie.BinaryAddress)
	if err != nil {
		writeErrorResponse(w, err, "failed to verify eligibility")
		return
	}

	writeJSON(w, http.StatusOK, verifyEligibilityResponse{
		IsEligible: eligible,
		RoundID:    req.RoundID,
		Address:    req.Address,
		Amount:     req.Amount,
	})
}

type getEligibilityResponse struct {
	RoundID uint32 `json:"round_id"`
	Address string `json:"address"`
	Amount  string `json:"amount"`
	Proof   []string `json:"proof"`
}

// HandleGetEligibility returns the stored amount and proof for an
// address in a round, if present.
//
// @Summary Get a stored eligibility entry
// @Tags eligibility
// @Produce json
// @Param round_id path string true "Round ID"
// @Param address path string true "Address"
// @Success 200 {object} getEligibilityResponse
// @Failure 404 {object} ErrorResponse
// @Router /get-eligibility/{round_id}/{address} [get]
func (h *EligibilityHandler) HandleGetEligibility(w http.ResponseWriter, r *http.Request) {
	roundID, err := parseRoundID(r)
	if err != nil {
		writeErrorResponse(w, err, "invalid round_id")
		return
	}
	addrStr := r.PathValue("address")
	addr, err := trie.ParseAddress(addrStr)
	if err != nil {
		writeErrorResponse(w, err, "invalid address")
		return
	}

	proof, amount, err := h.coord.ProofFor(r.Context(), roundID, addr)
	if err != nil {
		writeErrorResponse(w, err, "address not found in round")
		return
	}

	writeJSON(w, http.StatusOK, getEligibilityResponse{
		RoundID: roundID,
		Address: addr.Checksum(),
		Amount:  trie.AmountToBigInt(amount).String(),
		Proof:   proof.HexStrings(),
	})
}
