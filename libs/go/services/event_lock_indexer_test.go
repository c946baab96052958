package services_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/opus-finance/opus-api/libs/go/cache"
	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingChain remembers the block ranges requested from FilterLogs.
type recordingChain struct {
	*testutil.StubChain
	ranges [][2]uint64
}

func (r *recordingChain) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	r.ranges = append(r.ranges, [2]uint64{q.FromBlock.Uint64(), q.ToBlock.Uint64()})
	return r.StubChain.FilterLogs(ctx, q)
}

func lockCreatedLog(t *testing.T, block uint64, user common.Address, id, amount int64) types.Log {
	t.Helper()
	event := contracts.Staking().Events[contracts.EventLockCreated]
	data, err := event.Inputs.NonIndexed().Pack(testutil.Tokens(amount), big.NewInt(1000), big.NewInt(2000))
	require.NoError(t, err)
	return types.Log{
		Address:     testutil.StakingAddress,
		BlockNumber: block,
		Topics: []common.Hash{
			event.ID,
			common.BytesToHash(user.Bytes()),
			common.BigToHash(big.NewInt(id)),
		},
		Data: data,
	}
}

func lockReleasedLog(block uint64, user common.Address, id int64) types.Log {
	return types.Log{
		Address:     testutil.StakingAddress,
		BlockNumber: block,
		Topics: []common.Hash{
			contracts.Staking().Events[contracts.EventLockReleased].ID,
			common.BytesToHash(user.Bytes()),
			common.BigToHash(big.NewInt(id)),
		},
	}
}

func TestEventLockIndexer_RebuildsLockSet(t *testing.T) {
	other := common.HexToAddress("0x9999999999999999999999999999999999999999")
	chain := &recordingChain{StubChain: testutil.NewStubChain()}
	chain.AddLogs(
		lockCreatedLog(t, 10, testutil.UserAddress, 1, 100),
		lockCreatedLog(t, 12, other, 5, 999),
		lockCreatedLog(t, 20, testutil.UserAddress, 2, 200),
		lockReleasedLog(30, testutil.UserAddress, 1),
	)

	indexer := services.NewEventLockIndexer(chain, services.EventLockIndexerConfig{
		Staking: testutil.StakingAddress,
		Window:  8,
	})

	state, err := indexer.IndexedLocks(context.Background(), testutil.UserAddress)
	require.NoError(t, err)

	require.Len(t, state.Locks, 1)
	lock := state.Locks[0]
	assert.Equal(t, int64(2), lock.ID.Int64())
	assert.Equal(t, 0, lock.Amount.Cmp(testutil.Tokens(200)))
	assert.Equal(t, uint64(1000), lock.StartTime)
	assert.Equal(t, uint64(2000), lock.EndTime)
	assert.Equal(t, "events", lock.Source)
	assert.Equal(t, uint64(31), state.NextBlock)
	assert.Equal(t, [][2]uint64{{0, 7}, {8, 15}, {16, 23}, {24, 30}}, chain.ranges)
}

func TestEventLockIndexer_ResumesFromStoredProgress(t *testing.T) {
	store, err := cache.NewMemoryStore(context.Background(), 0)
	require.NoError(t, err)
	defer store.Close()

	chain := &recordingChain{StubChain: testutil.NewStubChain()}
	chain.AddLogs(lockCreatedLog(t, 5, testutil.UserAddress, 1, 100))

	cfg := services.EventLockIndexerConfig{Staking: testutil.StakingAddress, Window: 100, Store: store}
	locks, err := services.NewEventLockIndexer(chain, cfg).Locks(context.Background(), testutil.UserAddress)
	require.NoError(t, err)
	require.Len(t, locks, 1)

	chain.AddLogs(lockCreatedLog(t, 40, testutil.UserAddress, 3, 300))
	chain.ranges = nil

	// A new indexer sharing the store only fetches blocks after 5.
	state, err := services.NewEventLockIndexer(chain, cfg).IndexedLocks(context.Background(), testutil.UserAddress)
	require.NoError(t, err)
	assert.Equal(t, [][2]uint64{{6, 40}}, chain.ranges)
	require.Len(t, state.Locks, 2)
	assert.Equal(t, int64(1), state.Locks[0].ID.Int64())
	assert.Equal(t, int64(3), state.Locks[1].ID.Int64())
	assert.Equal(t, uint64(41), state.NextBlock)

	// Nothing new: no log queries.
	chain.ranges = nil
	_, err = services.NewEventLockIndexer(chain, cfg).IndexedLocks(context.Background(), testutil.UserAddress)
	require.NoError(t, err)
	assert.Empty(t, chain.ranges)
}

func TestEventLockIndexer_EmptyHistoryAdvancesProgress(t *testing.T) {
	chain := &recordingChain{StubChain: testutil.NewStubChain()}
	chain.SetHead(50)

	state, err := services.NewEventLockIndexer(chain, services.EventLockIndexerConfig{
		Staking:   testutil.StakingAddress,
		FromBlock: 20,
	}).IndexedLocks(context.Background(), testutil.UserAddress)
	require.NoError(t, err)

	assert.Empty(t, state.Locks)
	assert.Equal(t, uint64(51), state.NextBlock)
	require.Len(t, chain.ranges, 1)
	assert.Equal(t, uint64(20), chain.ranges[0][0])
	assert.Equal(t, uint64(50), chain.ranges[0][1])
}
