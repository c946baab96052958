package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/opus-finance/opus-api/libs/go/client/wallet"
	"github.com/opus-finance/opus-api/libs/go/helpers"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"golang.org/x/sync/errgroup"
)

// BlockchainContextConfig holds the data sources a context reads from.
type BlockchainContextConfig struct {
	Balances       interfaces.BalanceSource
	Locks          interfaces.LockSource
	LockSourceName string
	// Asset is offered to the wallet by WatchAsset.
	Asset wallet.Asset
}

// BlockchainContext is one wallet session: the connected account, its
// provider and the last balance snapshot. It is safe for concurrent use.
type BlockchainContext struct {
	balances interfaces.BalanceSource
	asset    wallet.Asset
	log      *logger.StructuredLogger

	mu             sync.RWMutex
	locks          interfaces.LockSource
	lockSourceName string
	account        common.Address
	provider       wallet.Provider
	connected      bool
	connectedAt    time.Time
	snapshot       business.BalanceSnapshot
	raw            rawBalances
	lastLocks      []business.Lock
}

type rawBalances struct {
	wallet, staked, locked *big.Int
}

// NewBlockchainContext creates a disconnected context.
func NewBlockchainContext(cfg BlockchainContextConfig) *BlockchainContext {
	name := cfg.LockSourceName
	if name == "" && cfg.Locks != nil {
		name = "probe"
	}
	return &BlockchainContext{
		balances:       cfg.Balances,
		asset:          cfg.Asset,
		locks:          cfg.Locks,
		lockSourceName: name,
		snapshot:       business.ZeroBalances(),
		log:            logger.NewStructuredLogger(logger.ComponentSession),
	}
}

// Connect requests accounts from provider and binds the first one.
func (b *BlockchainContext) Connect(ctx context.Context, provider wallet.Provider) (common.Address, error) {
	if provider == nil {
		return common.Address{}, ErrNoWallet
	}

	accounts, err := provider.RequestAccounts(ctx)
	if err != nil {
		if wallet.IsUserRejected(err) {
			b.log.Info("Wallet connection rejected by user")
			return common.Address{}, ErrUserRejected
		}
		if errors.Is(err, ErrNoWallet) {
			return common.Address{}, ErrNoWallet
		}
		return common.Address{}, fmt.Errorf("failed to request accounts: %w", err)
	}
	if len(accounts) == 0 {
		return common.Address{}, ErrNoWallet
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.account = accounts[0]
	b.provider = provider
	b.connected = true
	b.connectedAt = time.Now()
	b.snapshot = business.ZeroBalances()
	b.raw = rawBalances{}
	b.lastLocks = nil

	b.log.WithAccount(b.account.Hex()).WithField("provider", provider.Name()).Info("Wallet connected")
	return b.account, nil
}

// Disconnect clears the account, provider and balances.
func (b *BlockchainContext) Disconnect() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.account = common.Address{}
	b.provider = nil
	b.connected = false
	b.connectedAt = time.Time{}
	b.snapshot = business.ZeroBalances()
	b.raw = rawBalances{}
	b.lastLocks = nil
}

// Account returns the connected account and whether one is connected.
func (b *BlockchainContext) Account() (common.Address, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.account, b.connected
}

// Provider returns the connected wallet provider, or nil.
func (b *BlockchainContext) Provider() wallet.Provider {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.provider
}

// Balances returns a copy of the last balance snapshot.
func (b *BlockchainContext) Balances() business.BalanceSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot
}

// Locks returns the locks seen by the last refresh.
func (b *BlockchainContext) Locks() []business.Lock {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]business.Lock(nil), b.lastLocks...)
}

// SetLockSource replaces the lock data source. Diagnostic tools use it to
// feed scanner output into the session.
func (b *BlockchainContext) SetLockSource(name string, source interfaces.LockSource) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.locks = source
	b.lockSourceName = name
}

// LockSourceName names the active lock source.
func (b *BlockchainContext) LockSourceName() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lockSourceName
}

// RefreshBalances re-reads the wallet, staked and locked balances. The three
// reads are independent: a failing read keeps that field's previous value and
// is only logged. It errors only when no account is connected.
func (b *BlockchainContext) RefreshBalances(ctx context.Context) error {
	b.mu.RLock()
	account, connected := b.account, b.connected
	locks := b.locks
	b.mu.RUnlock()
	if !connected {
		return ErrNotConnected
	}

	log := b.log.WithAccount(account.Hex())

	var (
		walletBal, stakedBal          *big.Int
		lockList                      []business.Lock
		walletErr, stakedErr, lockErr error
		locksQueried                  bool
	)

	var g errgroup.Group
	if b.balances != nil {
		g.Go(func() error {
			walletBal, walletErr = b.balances.WalletBalance(ctx, account)
			return nil
		})
		g.Go(func() error {
			stakedBal, stakedErr = b.balances.StakedBalance(ctx, account)
			return nil
		})
	}
	if locks != nil {
		locksQueried = true
		g.Go(func() error {
			lockList, lockErr = locks.Locks(ctx, account)
			return nil
		})
	}
	_ = g.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.connected || b.account != account {
		// Disconnected or switched account while reading.
		return nil
	}

	if b.balances != nil {
		if walletErr != nil {
			log.Warn("Failed to refresh wallet balance", walletErr)
		} else {
			b.raw.wallet = walletBal
		}
		if stakedErr != nil {
			log.Warn("Failed to refresh staked balance", stakedErr)
		} else {
			b.raw.staked = stakedBal
		}
	}
	if locksQueried {
		switch {
		case lockErr == nil:
			b.lastLocks = lockList
			b.raw.locked = business.SumLockAmounts(lockList)
		case errors.Is(lockErr, ErrNoLockData):
			b.lastLocks = nil
			b.raw.locked = new(big.Int)
		default:
			log.Warn("Failed to refresh locked balance", lockErr)
		}
	}

	b.snapshot = b.raw.snapshot()
	return nil
}

func (r rawBalances) snapshot() business.BalanceSnapshot {
	total := new(big.Int)
	for _, v := range []*big.Int{r.wallet, r.staked, r.locked} {
		if v != nil {
			total.Add(total, v)
		}
	}
	return business.BalanceSnapshot{
		Wallet:    helpers.FormatWei(r.wallet),
		Staked:    helpers.FormatWei(r.staked),
		Locked:    helpers.FormatWei(r.locked),
		Total:     helpers.FormatWei(total),
		UpdatedAt: time.Now(),
	}
}

// Summary renders the balance snapshot as display lines.
func (b *BlockchainContext) Summary() []string {
	s := b.Balances()
	return []string{
		helpers.FormatTokenAmount("Wallet", s.Wallet),
		helpers.FormatTokenAmount("Staked", s.Staked),
		helpers.FormatTokenAmount("Locked", s.Locked),
		helpers.FormatTokenAmount("Total", s.Total),
	}
}

// WatchAsset asks the connected wallet to track the token.
func (b *BlockchainContext) WatchAsset(ctx context.Context) (bool, error) {
	provider := b.Provider()
	if provider == nil {
		return false, ErrNotConnected
	}
	added, err := provider.WatchAsset(ctx, b.asset)
	if err != nil {
		if wallet.IsUserRejected(err) {
			return false, ErrUserRejected
		}
		return false, fmt.Errorf("failed to watch asset: %w", err)
	}
	return added, nil
}

// Snapshot returns the session view of the context without an ID.
func (b *BlockchainContext) Snapshot() business.SessionSnapshot {
	b.mu.RLock()
	snap := business.SessionSnapshot{
		Status:      business.SessionStatusDisconnected,
		ConnectedAt: b.connectedAt,
		Balances:    b.snapshot,
		LockSource:  b.lockSourceName,
		Locks:       append([]business.Lock(nil), b.lastLocks...),
	}
	if b.connected {
		snap.Status = business.SessionStatusConnected
		snap.Account = b.account.Hex()
	}
	if b.provider != nil {
		snap.Provider = b.provider.Name()
	}
	b.mu.RUnlock()

	snap.Summary = b.Summary()
	return snap
}
