package services

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/opus-finance/opus-api/libs/go/cache"
	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/types/business"
)

const (
	defaultLogWindow = 5000
	sourceEvents     = "events"
)

// EventLockIndexerConfig configures an EventLockIndexer.
type EventLockIndexerConfig struct {
	Staking   common.Address
	FromBlock uint64
	// Window is the block span of each eth_getLogs request.
	Window uint64
	Store  cache.Store
	TTL    time.Duration
}

// EventLockIndexer rebuilds per-account lock sets from LockCreated and
// LockReleased logs. Progress is stored per account so later calls only
// fetch blocks not yet seen.
type EventLockIndexer struct {
	chain     interfaces.ChainReader
	staking   common.Address
	fromBlock uint64
	window    uint64
	store     cache.Store
	ttl       time.Duration
	log       *logger.StructuredLogger

	created  common.Hash
	released common.Hash

	mu sync.Mutex
}

// NewEventLockIndexer creates an indexer. A nil store keeps no progress
// between calls.
func NewEventLockIndexer(chain interfaces.ChainReader, cfg EventLockIndexerConfig) *EventLockIndexer {
	window := cfg.Window
	if window == 0 {
		window = defaultLogWindow
	}
	staking := contracts.Staking()
	return &EventLockIndexer{
		chain:     chain,
		staking:   cfg.Staking,
		fromBlock: cfg.FromBlock,
		window:    window,
		store:     cfg.Store,
		ttl:       cfg.TTL,
		log:       logger.NewStructuredLogger(logger.ComponentIndexer).WithContract(cfg.Staking.Hex()),
		created:   staking.Events[contracts.EventLockCreated].ID,
		released:  staking.Events[contracts.EventLockReleased].ID,
	}
}

func (x *EventLockIndexer) cacheKey(account common.Address) string {
	return fmt.Sprintf("locks:events:%s:%s", x.staking.Hex(), account.Hex())
}

// IndexedLocks brings the account's lock set up to the chain head and
// returns it. On a mid-way failure the progress made so far is kept.
func (x *EventLockIndexer) IndexedLocks(ctx context.Context, account common.Address) (*business.IndexedLocks, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	log := x.log.WithAccount(account.Hex())
	state := x.load(ctx, account)

	head, err := x.chain.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read head block: %w", err)
	}

	byID := make(map[string]business.Lock, len(state.Locks))
	for _, l := range state.Locks {
		byID[l.ID.String()] = l
	}

	var indexErr error
	for start := state.NextBlock; start <= head; {
		end := start + x.window - 1
		if end > head {
			end = head
		}
		logs, err := x.chain.FilterLogs(ctx, ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(start),
			ToBlock:   new(big.Int).SetUint64(end),
			Addresses: []common.Address{x.staking},
			Topics: [][]common.Hash{
				{x.created, x.released},
				{common.BytesToHash(account.Bytes())},
			},
		})
		if err != nil {
			indexErr = fmt.Errorf("failed to filter lock events in blocks %d-%d: %w", start, end, err)
			break
		}
		x.apply(byID, logs)
		state.NextBlock = end + 1
		start = end + 1
	}

	state.Locks = sortedLocks(byID)
	x.save(ctx, account, state)

	log.WithFields(map[string]interface{}{
		"next_block": state.NextBlock,
		"locks":      len(state.Locks),
	}).Debug("Lock events indexed")

	if indexErr != nil {
		return state, indexErr
	}
	return state, nil
}

// Locks implements interfaces.LockSource.
func (x *EventLockIndexer) Locks(ctx context.Context, account common.Address) ([]business.Lock, error) {
	state, err := x.IndexedLocks(ctx, account)
	if err != nil {
		return nil, err
	}
	return state.Locks, nil
}

func (x *EventLockIndexer) apply(byID map[string]business.Lock, logs []types.Log) {
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})

	createdEvent := contracts.Staking().Events[contracts.EventLockCreated]
	for _, l := range logs {
		if l.Removed || len(l.Topics) < 3 {
			continue
		}
		id := new(big.Int).SetBytes(l.Topics[2].Bytes())

		switch l.Topics[0] {
		case x.created:
			values, err := createdEvent.Inputs.NonIndexed().Unpack(l.Data)
			if err != nil || len(values) < 3 {
				x.log.WithField("tx", l.TxHash.Hex()).Warn("Skipping undecodable LockCreated log", err)
				continue
			}
			lock := business.Lock{ID: id, Source: sourceEvents}
			lock.Amount, _ = contracts.ToBigInt(values[0])
			if v, ok := contracts.ToBigInt(values[1]); ok && v.IsUint64() {
				lock.StartTime = v.Uint64()
			}
			if v, ok := contracts.ToBigInt(values[2]); ok && v.IsUint64() {
				lock.EndTime = v.Uint64()
			}
			byID[id.String()] = lock
		case x.released:
			delete(byID, id.String())
		}
	}
}

func (x *EventLockIndexer) load(ctx context.Context, account common.Address) *business.IndexedLocks {
	fresh := &business.IndexedLocks{
		Account:   account.Hex(),
		FromBlock: x.fromBlock,
		NextBlock: x.fromBlock,
	}
	if x.store == nil {
		return fresh
	}

	var state business.IndexedLocks
	found, err := cache.GetJSON(ctx, x.store, x.cacheKey(account), &state)
	if err != nil {
		x.log.Warn("Failed to load indexed locks, reindexing", err)
		return fresh
	}
	if !found || state.FromBlock != x.fromBlock {
		return fresh
	}
	return &state
}

func (x *EventLockIndexer) save(ctx context.Context, account common.Address, state *business.IndexedLocks) {
	if x.store == nil {
		return
	}
	if err := cache.SetJSON(ctx, x.store, x.cacheKey(account), state, x.ttl); err != nil {
		x.log.Warn("Failed to store indexed locks", err)
	}
}

func sortedLocks(byID map[string]business.Lock) []business.Lock {
	locks := make([]business.Lock, 0, len(byID))
	for _, l := range byID {
		locks = append(locks, l)
	}
	sort.Slice(locks, func(i, j int) bool {
		return locks[i].ID.Cmp(locks[j].ID) < 0
	})
	return locks
}
