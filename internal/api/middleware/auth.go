package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/go-pkgz/lgr"
)

// RequireAPIKey creates a middleware that rejects requests whose
// X-API-Key header doesn't match the configured key. Mounted only when
// the operator sets server.api_key; left unmounted, the service stays
// open exactly as it does for local/dev deployments.
func RequireAPIKey(logger lgr.L, apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-API-Key")
			if got == "" || got != apiKey {
				logger.Logf("WARN unauthorized request from %s", r.RemoteAddr)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"error": "Unauthorized",
					"code":  http.StatusUnauthorized,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}