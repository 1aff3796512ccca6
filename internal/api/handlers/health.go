package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-pkgz/lgr"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	logger lgr.L
	checks []func() error
}

// NewHealthHandler creates a new health handler, running every check
// on each request.
func NewHealthHandler(logger lgr.L, checks ...func() error) *HealthHandler {
	return &HealthHandler{logger: logger, checks: checks}
}

// HandleHealth returns the health status of the service.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	for _, check := range h.checks {
		if err := check(); err != nil {
			h.logger.Logf("ERROR health check failed: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
