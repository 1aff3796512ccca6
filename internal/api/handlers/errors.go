package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andrey/trie-core/internal/chain"
	"github.com/andrey/trie-core/internal/fetch"
	"github.com/andrey/trie-core/internal/round"
	"github.com/andrey/trie-core/internal/store"
	"github.com/andrey/trie-core/internal/trie"
)

// ErrorResponse represents the structure of error responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Details string `json:"details,omitempty"`
}

// writeErrorResponse writes a structured error response based on the error type
func writeErrorResponse(w http.ResponseWriter, err error, message string) {
	w.Header().Set("Content-Type", "application/json")

	var errResponse ErrorResponse
	errResponse.Error = message
	errResponse.Details = err.Error()

	switch {
	case errors.Is(err, chain.ErrTransactionFailed):
		errResponse.Code = http.StatusBadGateway
	case isInvalidInputError(err):
		errResponse.Code = http.StatusBadRequest
	case isNotFoundError(err):
		errResponse.Code = http.StatusNotFound
	case isBusyError(err):
		errResponse.Code = http.StatusConflict
	case errors.Is(err, fetch.ErrExternalInvalid):
		errResponse.Code = http.StatusUnprocessableEntity
	default:
		errResponse.Code = http.StatusInternalServerError
	}

	w.WriteHeader(errResponse.Code)
	_ = json.NewEncoder(w).Encode(errResponse)
}

func isInvalidInputError(err error) bool {
	return errors.Is(err, trie.ErrInvalidAddress) ||
		errors.Is(err, trie.ErrInvalidAmount) ||
		errors.Is(err, trie.ErrDuplicateAddress) ||
		errors.Is(err, trie.ErrInvalidProof)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, trie.ErrNotFound) ||
		errors.Is(err, store.ErrRoundNotFound) ||
		errors.Is(err, store.ErrAddressNotFound)
}

func isBusyError(err error) bool {
	return errors.Is(err, round.ErrRoundBusy) || errors.Is(err, chain.ErrCommitInFlight)
}
