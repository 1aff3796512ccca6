// Package config loads the service's YAML configuration file into a
// Config struct, generalizing the teacher's internal/config/config.go
// (Server/Database/Logging/Ethereum/Subgraph/Scheduler sections loaded
// via yaml.Unmarshal) into this service's full ambient + domain
// surface: HTTP server, logging, Badger storage, chain commit, and
// external fetch, plus this spec's trie/audit defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/andrey/trie-core/internal/chain"
	"github.com/andrey/trie-core/internal/fetch"
	"github.com/andrey/trie-core/internal/infra/logging"
	"github.com/andrey/trie-core/internal/trie"
	"gopkg.in/yaml.v3"
)

// Config is the service's complete configuration, loaded from a single
// YAML file. Every setting, the signing private key included, comes
// from that file; neither Load nor cmd/server applies an environment
// overlay.
type Config struct {
	Server struct {
		Host   string `yaml:"host"`
		Port   int    `yaml:"port"`
		APIKey string `yaml:"api_key"`
	} `yaml:"server"`

	Logging logging.Config `yaml:"logging"`

	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`

	Sidecar struct {
		Enabled       bool `yaml:"enabled"`
		MaxObjectSize int  `yaml:"max_object_size"`
	} `yaml:"sidecar"`

	Blockchain struct {
		RPCURL          string `yaml:"rpc_url"`
		PrivateKey      string `yaml:"private_key"`
		ContractAddress string `yaml:"contract_address"`
		GasLimit        uint64 `yaml:"gas_limit"`
		GasPrice        string `yaml:"gas_price"`
		MaxRetries      uint64 `yaml:"max_retries"`
	} `yaml:"blockchain"`

	Fetch struct {
		Timeout          time.Duration `yaml:"timeout"`
		MaxResponseBytes int64         `yaml:"max_response_bytes"`
	} `yaml:"fetch"`

	Audit struct {
		RetentionDays   int           `yaml:"retention_days"`
		CleanupInterval time.Duration `yaml:"cleanup_interval"`
	} `yaml:"audit"`

	Reconciliation struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"reconciliation"`

	Trie struct {
		DefaultOrdering string `yaml:"default_ordering"`
		DefaultEncoder  string `yaml:"default_encoder"`
	} `yaml:"trie"`
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Store.Path == "" {
		c.Store.Path = "./data/trie-core"
	}
	if c.Audit.RetentionDays == 0 {
		c.Audit.RetentionDays = 90
	}
	if c.Audit.CleanupInterval == 0 {
		c.Audit.CleanupInterval = 24 * time.Hour
	}
	if c.Reconciliation.Interval == 0 {
		c.Reconciliation.Interval = time.Hour
	}
	if c.Trie.DefaultOrdering == "" {
		c.Trie.DefaultOrdering = "sort_leaf_bytes"
	}
	if c.Trie.DefaultEncoder == "" {
		c.Trie.DefaultEncoder = "binary_address"
	}
	if c.Sidecar.MaxObjectSize == 0 {
		c.Sidecar.MaxObjectSize = 16 << 20 // 16 MiB
	}
}

// ChainConfig maps the Blockchain section onto internal/chain.Config.
func (c *Config) ChainConfig() chain.Config {
	return chain.Config{
		RPCURL:          c.Blockchain.RPCURL,
		PrivateKey:      c.Blockchain.PrivateKey,
		ContractAddress: c.Blockchain.ContractAddress,
		GasLimit:        c.Blockchain.GasLimit,
		GasPrice:        c.Blockchain.GasPrice,
		MaxRetries:      c.Blockchain.MaxRetries,
	}
}

// FetchConfig maps the Fetch section onto internal/fetch.Config.
func (c *Config) FetchConfig() fetch.Config {
	return fetch.Config{
		Timeout:          c.Fetch.Timeout,
		MaxResponseBytes: c.Fetch.MaxResponseBytes,
	}
}

// AuditRetention returns the configured audit cleanup horizon.
func (c *Config) AuditRetention() time.Duration {
	return time.Duration(c.Audit.RetentionDays) * 24 * time.Hour
}

// DefaultOrdering parses the configured default trie ordering mode.
func (c *Config) DefaultOrdering() trie.OrderingMode {
	switch c.Trie.DefaultOrdering {
	case "sort_address_key":
		return trie.SortByAddressKey
	case "preserve_insertion_order":
		return trie.PreserveInsertionOrder
	default:
		return trie.SortByLeafBytes
	}
}

// DefaultEncoder parses the configured default leaf encoder mode.
func (c *Config) DefaultEncoder() trie.EncoderMode {
	switch c.Trie.DefaultEncoder {
	case "hex_prefix_address":
		return trie.HexPrefixAddress
	default:
		return trie.BinaryAddress
	}
}
