package services

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/opus-finance/opus-api/libs/go/client/wallet"
	"github.com/opus-finance/opus-api/libs/go/constants"
	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/helpers"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const defaultQRSize = 256

// TokenService handles reads of the OPUS ERC-20 token
type TokenService struct {
	token   *contracts.Token
	chainID int64
	logger  *zap.Logger
}

// NewTokenService creates a new token service
func NewTokenService(caller contracts.Caller, tokenAddress common.Address, chainID int64) *TokenService {
	if chainID == 0 {
		chainID = constants.DefaultChainID
	}
	return &TokenService{
		token:   contracts.NewToken(tokenAddress, caller),
		chainID: chainID,
		logger:  logger.Log,
	}
}

// TokenAsset describes the OPUS token for wallet_watchAsset.
func TokenAsset(tokenAddress common.Address) wallet.Asset {
	return wallet.Asset{
		Address:  tokenAddress,
		Symbol:   constants.TokenSymbol,
		Decimals: constants.TokenDecimals,
	}
}

// TokenInfo reads name, symbol, decimals and total supply from chain
func (s *TokenService) TokenInfo(ctx context.Context) (*business.TokenInfo, error) {
	name, err := s.token.Name(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read token name: %w", err)
	}
	symbol, err := s.token.Symbol(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read token symbol: %w", err)
	}
	decimals, err := s.token.Decimals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read token decimals: %w", err)
	}
	supply, err := s.token.TotalSupply(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read total supply: %w", err)
	}

	return &business.TokenInfo{
		Address:     s.token.Address().Hex(),
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		TotalSupply: helpers.FormatUnits(supply, int(decimals)),
		ChainID:     s.chainID,
	}, nil
}

// BalanceOf returns the raw token balance of account
func (s *TokenService) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	balance, err := s.token.BalanceOf(ctx, account)
	if err != nil {
		s.logger.Debug("Failed to read token balance",
			zap.String("account", account.Hex()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read token balance: %w", err)
	}
	return balance, nil
}

// TotalSupply returns the raw total supply
func (s *TokenService) TotalSupply(ctx context.Context) (*big.Int, error) {
	supply, err := s.token.TotalSupply(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read total supply: %w", err)
	}
	return supply, nil
}

// AddTokenURI returns an EIP-681 URI pointing at the token contract on the
// configured chain. Wallets scanning it open the token for import.
func (s *TokenService) AddTokenURI() string {
	return fmt.Sprintf("ethereum:%s@%d", s.token.Address().Hex(), s.chainID)
}

// AddTokenQR renders AddTokenURI as a PNG QR code
func (s *TokenService) AddTokenQR(size int) ([]byte, error) {
	if size <= 0 {
		size = defaultQRSize
	}
	png, err := qrcode.Encode(s.AddTokenURI(), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}
