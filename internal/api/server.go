package api

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/andrey/trie-core/docs"
	"github.com/andrey/trie-core/internal/api/handlers"
	"github.com/andrey/trie-core/internal/api/middleware"
	"github.com/andrey/trie-core/internal/config"
	"github.com/andrey/trie-core/internal/coordinator"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Server represents the HTTP server exposing the round coordinator.
type Server struct {
	coord  *coordinator.Coordinator
	logger lgr.L
	config *config.Config
}

// NewServer creates a new HTTP server.
func NewServer(coord *coordinator.Coordinator, logger lgr.L, cfg *config.Config) *Server {
	return &Server{coord: coord, logger: logger, config: cfg}
}

// SetupRoutes configures all HTTP routes and middleware.
func (s *Server) SetupRoutes() http.Handler {
	healthHandler := handlers.NewHealthHandler(s.logger, s.checkCoordinator)
	roundsHandler := handlers.NewRoundsHandler(s.coord, s.logger)
	compareHandler := handlers.NewCompareHandler(s.coord, s.logger)
	eligibilityHandler := handlers.NewEligibilityHandler(s.coord, s.logger)

	router := routegroup.New(http.NewServeMux())

	router.Use(rest.RealIP)
	router.Use(rest.Trace)
	router.Use(rest.SizeLimit(64 * 1024 * 1024)) // CSV/blob uploads can be large
	router.Use(middleware.Logging(s.logger))
	router.Use(middleware.Recovery(s.logger))
	router.Use(rest.AppInfo("trie-core", "andrey", "1.0.0"))
	router.Use(rest.Ping)
	if s.config.Server.APIKey != "" {
		router.Use(middleware.RequireAPIKey(s.logger, s.config.Server.APIKey))
	}

	router.HandleFunc("GET /health", healthHandler.HandleHealth)
	router.HandleFunc("GET /swagger/*", httpSwagger.Handler())

	router.Group().Mount("/api").Route(func(apiRouter *routegroup.Bundle) {
		apiRouter.HandleFunc("POST /upload-csv", roundsHandler.HandleUploadCSV)
		apiRouter.HandleFunc("POST /upload-json-eligibility/{round_id}", roundsHandler.HandleUploadJSONEligibility)
		apiRouter.HandleFunc("GET /download-trie-data/{round_id}", roundsHandler.HandleDownloadTrieData)
		apiRouter.HandleFunc("POST /upload-compare-trie/{round_id}", compareHandler.HandleUploadCompareTrie)
		apiRouter.HandleFunc("POST /fetch-external-data/{round_id}", compareHandler.HandleFetchExternalData)
		apiRouter.HandleFunc("POST /compare-external-trie/{round_id}", compareHandler.HandleCompareExternalTrie)
		apiRouter.HandleFunc("POST /submit-trie/{round_id}", roundsHandler.HandleSubmitTrie)
		apiRouter.HandleFunc("GET /trie-info/{round_id}", roundsHandler.HandleTrieInfo)
		apiRouter.HandleFunc("GET /rounds/statistics", roundsHandler.HandleRoundsStatistics)
		apiRouter.HandleFunc("GET /rounds/{round_id}/active", roundsHandler.HandleRoundActive)
		apiRouter.HandleFunc("GET /rounds/{round_id}/metadata", roundsHandler.HandleRoundMetadata)
		apiRouter.HandleFunc("GET /rounds/{round_id}/validate-consistency", roundsHandler.HandleValidateConsistency)
		apiRouter.HandleFunc("DELETE /rounds/{round_id}", roundsHandler.HandleDeleteRound)
		apiRouter.HandleFunc("GET /processing-logs", roundsHandler.HandleProcessingLogs)
		apiRouter.HandleFunc("GET /processing-logs/{round_id}", roundsHandler.HandleProcessingLogs)
		apiRouter.HandleFunc("POST /verify-eligibility", eligibilityHandler.HandleVerifyEligibility)
		apiRouter.HandleFunc("GET /get-eligibility/{round_id}/{address}", eligibilityHandler.HandleGetEligibility)
	})

	return router
}

// Start starts the HTTP server with the teacher's fixed security
// timeouts.
func (s *Server) Start() error {
	handler := s.SetupRoutes()
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Logf("INFO starting server on %s", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}

func (s *Server) checkCoordinator() error {
	if s.coord == nil {
		return fmt.Errorf("round coordinator not initialized")
	}
	return nil
}
