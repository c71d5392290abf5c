package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/core-coin/go-core/v2/accounts/abi"
	"github.com/core-coin/go-core/v2/accounts/abi/bind"
	"github.com/core-coin/go-core/v2/common"
	"github.com/core-coin/go-core/v2/crypto"
	"github.com/core-coin/go-core/v2/xcbclient"

	"github.com/habithero/habitherod/internal/config"
	"github.com/habithero/habitherod/internal/models"
	"github.com/habithero/habitherod/internal/nft"
	"github.com/habithero/habitherod/pkg/logger"
)

const (
	// callTimeout bounds read-only contract calls and receipt polls.
	callTimeout = 10 * time.Second
	// receiptPollInterval is how often WaitConfirmed re-asks for a receipt.
	receiptPollInterval = 2 * time.Second
)

// Gocore talks to the chain through a go-core RPC endpoint: the shared
// registry contract plus the per-user habit NFT contracts.
type Gocore struct {
	logger *logger.Logger
	config *config.Config
	apiURL string
	client *xcbclient.Client

	mu       sync.RWMutex
	registry *bind.BoundContract

	registryABI abi.ABI
	habitABI    abi.ABI

	auth *bind.TransactOpts
}

// NewGocore creates a new Gocore instance.
func NewGocore(apiURL string, logger *logger.Logger, config *config.Config) *Gocore {
	return &Gocore{apiURL: apiURL, logger: logger, config: config}
}

func (g *Gocore) Run() error {
	err := g.ConnectToRPC()
	if err != nil {
		return fmt.Errorf("failed to connect to the core RPC server: %w", err)
	}
	err = g.BuildBindings()
	if err != nil {
		return fmt.Errorf("failed to build bindings: %w", err)
	}
	return nil
}

func (g *Gocore) ConnectToRPC() error {
	client, err := xcbclient.Dial(g.apiURL)
	if err != nil {
		return fmt.Errorf("failed to connect to the core RPC server: %w", err)
	}
	g.client = client
	return nil
}

func (g *Gocore) BuildBindings() error {
	registryAddress, err := common.HexToAddress(g.config.RegistryContractAddress)
	if err != nil {
		return fmt.Errorf("failed to parse registry contract address: %w", err)
	}

	g.registryABI, err = abi.JSON(strings.NewReader(RegistryABI))
	if err != nil {
		return fmt.Errorf("failed to parse registry ABI: %w", err)
	}
	g.habitABI, err = abi.JSON(strings.NewReader(HabitABI))
	if err != nil {
		return fmt.Errorf("failed to parse habit NFT ABI: %w", err)
	}

	g.registry = bind.NewBoundContract(registryAddress, g.registryABI, g.client, g.client, g.client)

	if g.config.SignerKey != "" {
		key, err := crypto.UnmarshalPrivateKeyHex(g.config.SignerKey)
		if err != nil {
			return fmt.Errorf("failed to parse signer key: %w", err)
		}
		auth, err := bind.NewKeyedTransactorWithNetworkID(key, g.config.NetworkID)
		if err != nil {
			return fmt.Errorf("failed to build transactor: %w", err)
		}
		g.auth = auth
	}

	return nil
}

func (g *Gocore) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		g.client.Close()
	}

	return nil
}

// RegistrationStatus looks the address up in the registry. The result
// is three-valued so callers can tell a genuinely unregistered user
// apart from a failed lookup.
func (g *Gocore) RegistrationStatus(ctx context.Context, address string) (models.RegistrationStatus, error) {
	account, err := common.HexToAddress(address)
	if err != nil {
		return models.LookupFailed, fmt.Errorf("failed to parse address: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	results := []interface{}{}
	err = g.registry.Call(&bind.CallOpts{Context: callCtx}, &results, "isRegistered", account)
	if err != nil {
		return models.LookupFailed, fmt.Errorf("failed to query registry: %w", err)
	}
	if len(results) == 0 {
		return models.LookupFailed, fmt.Errorf("empty registry response")
	}
	registered, ok := results[0].(bool)
	if !ok {
		return models.LookupFailed, fmt.Errorf("unexpected registry response type %T", results[0])
	}

	if registered {
		return models.Registered, nil
	}
	return models.NotRegistered, nil
}

// RegisterUser submits the profile under the connected address.
func (g *Gocore) RegisterUser(ctx context.Context, address string, profile *models.UserProfile) (string, error) {
	if g.auth == nil {
		return "", fmt.Errorf("no signer key configured")
	}

	tx, err := g.registry.Transact(g.transactOpts(ctx), "register", profile.Name, profile.Email, profile.Gender)
	if err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	g.logger.Info("Registration transaction submitted ", "address ", address, " tx ", tx.Hash().Hex())
	return tx.Hash().Hex(), nil
}

// DeployCompanion deploys the per-user habit contract. The caller
// passes the user's name as both contract name and symbol.
func (g *Gocore) DeployCompanion(ctx context.Context, name, symbol string) (string, error) {
	if g.auth == nil {
		return "", fmt.Errorf("no signer key configured")
	}
	if g.config.CompanionBytecode == "" {
		return "", fmt.Errorf("companion contract bytecode not configured")
	}

	address, tx, _, err := bind.DeployContract(g.transactOpts(ctx), g.habitABI, common.FromHex(g.config.CompanionBytecode), g.client, name, symbol)
	if err != nil {
		return "", fmt.Errorf("failed to deploy companion contract: %w", err)
	}
	if err := g.WaitConfirmed(ctx, tx.Hash().Hex()); err != nil {
		return "", fmt.Errorf("companion contract deployment not confirmed: %w", err)
	}

	g.logger.Info("Companion contract deployed ", "address ", address.Hex())
	return address.Hex(), nil
}

// Mint mints a habit NFT on the given per-user contract.
func (g *Gocore) Mint(ctx context.Context, contractAddress, cid, description, title string) (string, error) {
	if g.auth == nil {
		return "", fmt.Errorf("no signer key configured")
	}

	contract, err := g.habitContract(contractAddress)
	if err != nil {
		return "", err
	}

	tx, err := contract.Transact(g.transactOpts(ctx), "mint", cid, description, title)
	if err != nil {
		return "", fmt.Errorf("failed to mint habit NFT: %w", err)
	}

	g.logger.Info("Mint transaction submitted ", "contract ", contractAddress, " tx ", tx.Hash().Hex())
	return tx.Hash().Hex(), nil
}

// Grow advances the streak of an existing habit NFT, replacing its CID
// and description with the new badge state.
func (g *Gocore) Grow(ctx context.Context, contractAddress string, tokenID int64, cid, description string) (string, error) {
	if g.auth == nil {
		return "", fmt.Errorf("no signer key configured")
	}

	contract, err := g.habitContract(contractAddress)
	if err != nil {
		return "", err
	}

	tx, err := contract.Transact(g.transactOpts(ctx), "grow", big.NewInt(tokenID), cid, description)
	if err != nil {
		return "", fmt.Errorf("failed to grow habit NFT: %w", err)
	}

	g.logger.Info("Grow transaction submitted ", "contract ", contractAddress, " token ", tokenID, " tx ", tx.Hash().Hex())
	return tx.Hash().Hex(), nil
}

// WaitConfirmed polls for the transaction receipt until the context
// expires. Mint success must not be declared before a receipt exists.
func (g *Gocore) WaitConfirmed(ctx context.Context, txHash string) error {
	hash := common.HexToHash(txHash)
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		receipt, err := g.client.TransactionReceipt(callCtx, hash)
		cancel()
		if err == nil && receipt != nil {
			g.logger.Debug("Transaction confirmed ", "tx ", txHash)
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("transaction %s not confirmed: %w", txHash, ctx.Err())
		case <-ticker.C:
		}
	}
}

// AllNFTs returns the raw fixed-order tuples of every NFT on the given
// contract. The decode lives in the nft package.
func (g *Gocore) AllNFTs(ctx context.Context, contractAddress string) ([][]interface{}, error) {
	contract, err := g.habitContract(contractAddress)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	results := []interface{}{}
	if err := contract.Call(&bind.CallOpts{Context: callCtx}, &results, "getAllNFTs"); err != nil {
		return nil, fmt.Errorf("failed to fetch NFTs: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	rows, err := nft.Rows(results[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read NFT query result: %w", err)
	}
	return rows, nil
}

func (g *Gocore) habitContract(contractAddress string) (*bind.BoundContract, error) {
	address, err := common.HexToAddress(contractAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to parse habit contract address: %w", err)
	}
	return bind.NewBoundContract(address, g.habitABI, g.client, g.client, g.client), nil
}

func (g *Gocore) transactOpts(ctx context.Context) *bind.TransactOpts {
	g.mu.RLock()
	defer g.mu.RUnlock()

	opts := *g.auth
	opts.Context = ctx
	return &opts
}
