// Package chain implements the OnChainCommitter: submits a round's trie
// root to the eligibility contract and waits for confirmation, or
// checks an already-committed root for consistency.
//
// Grounded on the teacher's internal/infra/blockchain/subsidizer.go
// (SubsidizerClient.UpdateMerkleRoot / UpdateMerkleRootAndWaitForConfirmation):
// same mock-mode nil-guard, bind.NewKeyedTransactorWithChainID +
// bind.WaitMined + receipt.Status shape. Added beyond the teacher: an
// at-most-one-in-flight-per-round guard, an idempotent pre-check that
// skips submission when the on-chain root already matches, and
// cenkalti/backoff retry around transient RPC errors (the teacher
// submits once and gives up on any error).
package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/andrey/trie-core/internal/trie"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/go-pkgz/lgr"

	"github.com/andrey/trie-core/pkg/contracts"
)

// ErrCommitInFlight is returned when a commit is requested for a round
// that already has one in progress.
var ErrCommitInFlight = errors.New("commit already in flight for this round")

// ErrTransactionFailed marks a definitive, non-retryable on-chain
// failure (revert, insufficient funds, and similar).
var ErrTransactionFailed = errors.New("on-chain transaction failed")

// Consistency is the outcome of validating a round's local root against
// what the contract has on record.
type Consistency int

const (
	Consistent Consistency = iota
	NotYetCommitted
	DivergentRoots
)

func (c Consistency) String() string {
	switch c {
	case Consistent:
		return "consistent"
	case NotYetCommitted:
		return "not_yet_committed"
	case DivergentRoots:
		return "divergent_roots"
	default:
		return "unknown"
	}
}

// Config carries everything needed to talk to the eligibility
// contract. An empty RPCURL puts the committer in mock mode; with
// RPCURL set, New returns an error if PrivateKey or ContractAddress is
// empty.
type Config struct {
	RPCURL          string
	PrivateKey      string
	ContractAddress string
	GasLimit        uint64
	GasPrice        string
	MaxRetries      uint64
}

// Committer submits and validates trie roots on-chain, one in-flight
// commit per round at a time.
type Committer struct {
	logger       lgr.L
	cfg          Config
	ethClient    *ethclient.Client
	privateKey   *ecdsa.PrivateKey
	contractAddr common.Address
	registry     *contracts.IEligibilityRegistry

	mu       sync.Mutex
	inFlight map[uint32]struct{}
}

// New constructs a Committer. With an empty RPCURL it runs in mock
// mode: Submit logs and returns success without touching a chain,
// useful for local development and tests.
func New(logger lgr.L, cfg Config) (*Committer, error) {
	c := &Committer{
		logger:   logger,
		cfg:      cfg,
		registry: contracts.NewIEligibilityRegistry(),
		inFlight: make(map[uint32]struct{}),
	}
	if cfg.RPCURL == "" {
		return c, nil
	}
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("private key is required when RPC URL is set")
	}
	if cfg.ContractAddress == "" {
		return nil, fmt.Errorf("eligibility registry contract address is required")
	}

	ethClient, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to ethereum RPC: %w", err)
	}
	c.ethClient = ethClient

	keyHex := strings.TrimPrefix(cfg.PrivateKey, "0x")
	privateKey, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	c.privateKey = privateKey
	c.contractAddr = common.HexToAddress(cfg.ContractAddress)

	return c, nil
}

func (c *Committer) acquire(roundID uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[roundID]; busy {
		return ErrCommitInFlight
	}
	c.inFlight[roundID] = struct{}{}
	return nil
}

func (c *Committer) release(roundID uint32) {
	c.mu.Lock()
	delete(c.inFlight, roundID)
	c.mu.Unlock()
}

// Submit commits root for roundID, embedding trieData as calldata for
// on-chain auditability, and waits for confirmation. If the contract
// already records this exact root for the round, Submit is a no-op
// (idempotent resubmission after a crash or retry).
func (c *Committer) Submit(ctx context.Context, roundID uint32, root trie.Hash256, trieData []byte) (txHash string, err error) {
	if err := c.acquire(roundID); err != nil {
		return "", err
	}
	defer c.release(roundID)

	if c.ethClient == nil {
		c.logger.Logf("INFO [MOCK] committing root %s for round %d", root.Hex(), roundID)
		return "", nil
	}

	existing, err := c.onChainRoot(ctx, roundID)
	if err == nil && existing == root {
		c.logger.Logf("INFO root %s already committed on-chain for round %d, skipping", root.Hex(), roundID)
		return "", nil
	}

	var sentHash string
	op := func() error {
		hash, txErr := c.submitOnce(ctx, roundID, root, trieData)
		if txErr == nil {
			sentHash = hash
			return nil
		}
		if isDefinitive(txErr) {
			return backoff.Permanent(txErr)
		}
		return txErr
	}

	policy := backoff.WithContext(retryPolicy(c.cfg.MaxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		c.logger.Logf("ERROR failed to commit round %d after retries: %v", roundID, err)
		return "", err
	}
	return sentHash, nil
}

func (c *Committer) submitOnce(ctx context.Context, roundID uint32, root trie.Hash256, trieData []byte) (string, error) {
	chainID, err := c.ethClient.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching chain id: %w", err)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(c.privateKey, chainID)
	if err != nil {
		return "", fmt.Errorf("creating transactor: %w", err)
	}
	opts.GasLimit = c.cfg.GasLimit
	if c.cfg.GasPrice != "" {
		if gasPrice, ok := new(big.Int).SetString(c.cfg.GasPrice, 10); ok {
			opts.GasPrice = gasPrice
		}
	}
	opts.Context = ctx

	data := c.registry.PackUpdateTrieRoot(new(big.Int).SetUint64(uint64(roundID)), [32]byte(root), trieData)
	instance := c.registry.Instance(c.ethClient, c.contractAddr)

	tx, err := instance.RawTransact(opts, data)
	if err != nil {
		return "", fmt.Errorf("failed to call updateTrieRoot: %w", err)
	}
	c.logger.Logf("INFO updateTrieRoot submitted for round %d: %s", roundID, tx.Hash().Hex())

	receipt, err := bind.WaitMined(ctx, c.ethClient, tx)
	if err != nil {
		return "", fmt.Errorf("failed to wait for updateTrieRoot transaction: %w", err)
	}
	if receipt.Status == 0 {
		return "", fmt.Errorf("%w: updateTrieRoot reverted, tx %s", ErrTransactionFailed, tx.Hash().Hex())
	}
	c.logger.Logf("INFO round %d root confirmed on-chain (block %d, gas used %d)", roundID, receipt.BlockNumber.Uint64(), receipt.GasUsed)
	return tx.Hash().Hex(), nil
}

// onChainRoot reads the contract's current root for roundID.
func (c *Committer) onChainRoot(ctx context.Context, roundID uint32) (trie.Hash256, error) {
	if c.ethClient == nil {
		return trie.Hash256{}, fmt.Errorf("mock mode has no on-chain state")
	}
	instance := c.registry.Instance(c.ethClient, c.contractAddr)
	callOpts := &bind.CallOpts{Context: ctx}
	var result []interface{}
	err := instance.Call(callOpts, &result, "getTrieRoot", new(big.Int).SetUint64(uint64(roundID)))
	if err != nil {
		return trie.Hash256{}, fmt.Errorf("calling getTrieRoot: %w", err)
	}
	if len(result) == 0 {
		return trie.Hash256{}, fmt.Errorf("no result returned from getTrieRoot")
	}
	raw, ok := result[0].([32]byte)
	if !ok {
		return trie.Hash256{}, fmt.Errorf("unexpected result type from getTrieRoot")
	}
	return trie.Hash256(raw), nil
}

// ValidateConsistency compares a round's locally committed root
// against the on-chain record.
func (c *Committer) ValidateConsistency(ctx context.Context, roundID uint32, localRoot trie.Hash256) (Consistency, trie.Hash256, error) {
	if c.ethClient == nil {
		return Consistent, localRoot, nil
	}
	onChain, err := c.onChainRoot(ctx, roundID)
	if err != nil {
		return NotYetCommitted, trie.Hash256{}, err
	}
	if onChain == (trie.Hash256{}) {
		return NotYetCommitted, onChain, nil
	}
	if onChain != localRoot {
		return DivergentRoots, onChain, nil
	}
	return Consistent, onChain, nil
}

func retryPolicy(maxRetries uint64) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 500 * time.Millisecond
	eb.MaxInterval = 30 * time.Second
	if maxRetries == 0 {
		maxRetries = 5
	}
	return backoff.WithMaxRetries(eb, maxRetries)
}

// isDefinitive reports whether err represents a permanent on-chain
// failure that retrying will not resolve (revert, insufficient funds,
// malformed call), as opposed to a transient RPC/network hiccup.
func isDefinitive(err error) bool {
	if errors.Is(err, ErrTransactionFailed) {
		return true
	}
	msg := err.Error()
	definitive := []string{
		"execution reverted",
		"insufficient funds",
		"revert",
		"invalid opcode",
		"nonce too low",
	}
	for _, s := range definitive {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
