// @title Airdrop Eligibility Trie Service API
// @version 1.0
// @description Merkle-trie eligibility generator and round coordinator: builds viem-compatible eligibility tries, commits their roots on-chain, and serves proofs.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @accept json
// @produce json
package main

import (
	"context"
	"flag"
	"log"

	"github.com/andrey/trie-core/internal/api"
	"github.com/andrey/trie-core/internal/audit"
	"github.com/andrey/trie-core/internal/chain"
	"github.com/andrey/trie-core/internal/config"
	"github.com/andrey/trie-core/internal/coordinator"
	"github.com/andrey/trie-core/internal/fetch"
	"github.com/andrey/trie-core/internal/infra/logging"
	"github.com/andrey/trie-core/internal/round"
	"github.com/andrey/trie-core/internal/scheduler"
	"github.com/andrey/trie-core/internal/store"
	badger "github.com/dgraph-io/badger/v4"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the service's YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewWithConfig(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := badger.Open(badger.DefaultOptions(cfg.Store.Path))
	if err != nil {
		log.Fatalf("Failed to open trie store: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Logf("ERROR closing trie store: %v", err)
		}
	}()

	st := store.NewStore(db, logger)
	registry := round.NewRegistry()
	auditStore := audit.NewStore(db)

	committer, err := chain.New(logger, cfg.ChainConfig())
	if err != nil {
		log.Fatalf("Failed to initialize on-chain committer: %v", err)
	}
	fetcher := fetch.New(logger, cfg.FetchConfig())

	coord := coordinator.New(st, registry, auditStore, committer, fetcher, logger)
	if cfg.Sidecar.Enabled {
		coord.WithSidecar(store.NewSidecar(db, cfg.Sidecar.MaxObjectSize))
	}

	ctx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()
	maintenanceScheduler := scheduler.NewScheduler(coord, cfg.Reconciliation.Interval, cfg.Audit.CleanupInterval, cfg.AuditRetention(), logger)
	go maintenanceScheduler.Start(ctx)

	server := api.NewServer(coord, logger, cfg)
	logger.Logf("INFO starting trie-core server")
	if err := server.Start(); err != nil {
		logger.Logf("ERROR server failed to start: %v", err)
		log.Fatalf("server failed to start: %v", err)
	}
}
