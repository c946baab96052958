package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

//go:generate mockgen -destination=../../mocks/mock_wallet_provider.go -package=mocks github.com/opus-finance/opus-api/libs/go/client/wallet Provider

var (
	// ErrNoWallet means no provider is available or it exposes no account.
	ErrNoWallet = errors.New("no wallet")
	// ErrUserRejected means the wallet owner declined the request.
	ErrUserRejected = errors.New("user rejected request")
	// ErrWatchAssetUnsupported means the provider cannot register tokens.
	ErrWatchAssetUnsupported = errors.New("wallet cannot watch assets")
)

// CodeUserRejected is the EIP-1193 error code for a declined request.
const CodeUserRejected = 4001

// Asset describes an ERC-20 token for wallet_watchAsset.
type Asset struct {
	Address  common.Address
	Symbol   string
	Decimals uint8
	Image    string
}

// Provider is the wallet boundary: account access and asset registration.
type Provider interface {
	Name() string
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	WatchAsset(ctx context.Context, asset Asset) (bool, error)
}

// StaticProvider serves a fixed account list. The API and CLI use it when
// the caller supplies the address to read.
type StaticProvider struct {
	accounts []common.Address
}

// NewStaticProvider creates a provider exposing accounts.
func NewStaticProvider(accounts ...common.Address) *StaticProvider {
	return &StaticProvider{accounts: accounts}
}

// Name implements Provider.
func (p *StaticProvider) Name() string { return "static" }

// RequestAccounts implements Provider.
func (p *StaticProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if len(p.accounts) == 0 {
		return nil, ErrNoWallet
	}
	out := make([]common.Address, len(p.accounts))
	copy(out, p.accounts)
	return out, nil
}

// WatchAsset always fails: there is no wallet behind a static account list.
func (p *StaticProvider) WatchAsset(ctx context.Context, asset Asset) (bool, error) {
	return false, ErrWatchAssetUnsupported
}

// RPCProvider talks to a wallet that exposes EIP-1193 methods over JSON-RPC,
// such as a local signer or a bridged browser wallet.
type RPCProvider struct {
	client *gethrpc.Client
}

// DialRPCProvider connects to a wallet JSON-RPC endpoint.
func DialRPCProvider(ctx context.Context, url string) (*RPCProvider, error) {
	client, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to dial wallet: %v", ErrNoWallet, err)
	}
	return NewRPCProvider(client), nil
}

// NewRPCProvider wraps an existing client.
func NewRPCProvider(client *gethrpc.Client) *RPCProvider {
	return &RPCProvider{client: client}
}

// Name implements Provider.
func (p *RPCProvider) Name() string { return "rpc" }

// RequestAccounts calls eth_requestAccounts.
func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, classify(err)
	}
	if len(accounts) == 0 {
		return nil, ErrNoWallet
	}
	return accounts, nil
}

type watchAssetParams struct {
	Type    string            `json:"type"`
	Options watchAssetOptions `json:"options"`
}

type watchAssetOptions struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Image    string `json:"image,omitempty"`
}

// WatchAsset calls wallet_watchAsset for an ERC-20 token.
func (p *RPCProvider) WatchAsset(ctx context.Context, asset Asset) (bool, error) {
	var added bool
	params := watchAssetParams{
		Type: "ERC20",
		Options: watchAssetOptions{
			Address:  asset.Address.Hex(),
			Symbol:   asset.Symbol,
			Decimals: asset.Decimals,
			Image:    asset.Image,
		},
	}
	if err := p.client.CallContext(ctx, &added, "wallet_watchAsset", params); err != nil {
		return false, classify(err)
	}
	return added, nil
}

// Close closes the underlying client.
func (p *RPCProvider) Close() {
	p.client.Close()
}

// classify maps EIP-1193 rejections onto ErrUserRejected.
func classify(err error) error {
	if IsUserRejected(err) {
		return fmt.Errorf("%w: %v", ErrUserRejected, err)
	}
	return err
}

// IsUserRejected reports whether err is a declined wallet request.
func IsUserRejected(err error) bool {
	if errors.Is(err, ErrUserRejected) {
		return true
	}
	var rpcErr gethrpc.Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == CodeUserRejected
}
