package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/opus-finance/opus-api/libs/go/client/wallet"
	"github.com/opus-finance/opus-api/libs/go/types/business"
)

//go:generate mockgen -destination=../mocks/mock_services.go -package=mocks github.com/opus-finance/opus-api/libs/go/interfaces LockSource,BalanceSource,TokenService,LockProbeService,LockScanner,CapabilityDetector,EventLockIndexer,StatisticsService,ContentService,SessionService

// LockSource supplies the locks of an account to a blockchain context.
type LockSource interface {
	Locks(ctx context.Context, account common.Address) ([]business.Lock, error)
}

// BalanceSource supplies raw wallet and staked balances.
type BalanceSource interface {
	WalletBalance(ctx context.Context, account common.Address) (*big.Int, error)
	StakedBalance(ctx context.Context, account common.Address) (*big.Int, error)
}

// TokenService reads the ERC-20 token.
type TokenService interface {
	TokenInfo(ctx context.Context) (*business.TokenInfo, error)
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
	AddTokenURI() string
	AddTokenQR(size int) ([]byte, error)
}

// LockProbeService discovers locks by trying candidate accessors in order.
type LockProbeService interface {
	Probe(ctx context.Context, account common.Address) (*business.ProbeResult, error)
	PreferredMethod() string
}

// LockScanner enumerates locks by reading sequential mapping indices.
type LockScanner interface {
	Scan(ctx context.Context, account common.Address, cfg business.ScanConfig) (*business.ScanResult, error)
}

// CapabilityDetector inspects staking bytecode for known accessors.
type CapabilityDetector interface {
	Detect(ctx context.Context) (*business.Capabilities, error)
}

// EventLockIndexer rebuilds lock sets from staking events.
type EventLockIndexer interface {
	IndexedLocks(ctx context.Context, account common.Address) (*business.IndexedLocks, error)
}

// StatisticsService aggregates token statistics with fallbacks.
type StatisticsService interface {
	Statistics(ctx context.Context) (*business.TokenStatistics, error)
}

// ContentService serves static pages.
type ContentService interface {
	Page(slug string) (*business.ContentPage, error)
	Slugs() []string
}

// SessionService manages wallet sessions for API clients.
type SessionService interface {
	Connect(ctx context.Context, provider wallet.Provider) (*business.SessionSnapshot, error)
	Get(id uuid.UUID) (*business.SessionSnapshot, error)
	Refresh(ctx context.Context, id uuid.UUID) (*business.SessionSnapshot, error)
	Disconnect(id uuid.UUID) error
	SetLockSource(id uuid.UUID, name string, source LockSource) error
	WatchAsset(ctx context.Context, id uuid.UUID) (bool, error)
}
