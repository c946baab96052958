package services_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/metrics"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/testutil"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slotChain answers mapUserInfoLock with a lock at each index in hits and an
// all-zero record elsewhere.
func slotChain(hits map[int64]bool, onRead func(index int64) error) *testutil.StubChain {
	chain := newStakingChain()
	chain.On(testutil.StakingAddress, contracts.MethodMapUserInfoLock, func(args []interface{}) ([]interface{}, error) {
		index := args[1].(*big.Int).Int64()
		if onRead != nil {
			if err := onRead(index); err != nil {
				return nil, err
			}
		}
		zero := big.NewInt(0)
		if hits[index] {
			return []interface{}{testutil.Tokens(index), big.NewInt(100), big.NewInt(200), zero}, nil
		}
		return []interface{}{zero, zero, zero, zero}, nil
	})
	return chain
}

func lockIDs(locks []business.Lock) []int64 {
	ids := make([]int64, len(locks))
	for i, l := range locks {
		ids[i] = l.ID.Int64()
	}
	return ids
}

func TestLockScanner_StopsAfterEmptyRun(t *testing.T) {
	chain := slotChain(map[int64]bool{2: true, 5: true, 9: true}, nil)
	scanner := services.NewLockScanner(chain, testutil.StakingAddress, metrics.New())

	result, err := scanner.Scan(context.Background(), testutil.UserAddress, business.ScanConfig{Ceiling: 100, EmptyRunLimit: 5})
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 5, 9}, lockIDs(result.Locks))
	assert.Equal(t, business.ScanStoppedEmptyRun, result.StoppedBy)
	assert.Equal(t, 15, result.Reads)
	assert.Equal(t, uint64(14), result.LastIndex)
	assert.Equal(t, 15, chain.CallCount(contracts.MethodMapUserInfoLock))
	for _, l := range result.Locks {
		assert.Equal(t, contracts.MethodMapUserInfoLock, l.Source)
		assert.Equal(t, uint64(200), l.EndTime)
	}
}

func TestLockScanner_StopsAtCeiling(t *testing.T) {
	hits := map[int64]bool{}
	for i := int64(0); i < 20; i++ {
		hits[i] = true
	}
	chain := slotChain(hits, nil)

	result, err := services.NewLockScanner(chain, testutil.StakingAddress, nil).
		Scan(context.Background(), testutil.UserAddress, business.ScanConfig{StartIndex: 3, Ceiling: 10, EmptyRunLimit: 2})
	require.NoError(t, err)
	assert.Equal(t, business.ScanStoppedCeiling, result.StoppedBy)
	assert.Equal(t, 7, result.Reads)
	assert.Equal(t, []int64{3, 4, 5, 6, 7, 8, 9}, lockIDs(result.Locks))
}

func TestLockScanner_ErrorsCountAsEmpty(t *testing.T) {
	chain := slotChain(map[int64]bool{0: true, 3: true}, func(index int64) error {
		if index == 1 || index == 2 {
			return errors.New("node timeout")
		}
		return nil
	})

	result, err := services.NewLockScanner(chain, testutil.StakingAddress, nil).
		Scan(context.Background(), testutil.UserAddress, business.ScanConfig{Ceiling: 100, EmptyRunLimit: 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 3}, lockIDs(result.Locks))
	assert.Equal(t, 2, result.Errors)
	assert.Equal(t, uint64(6), result.LastIndex)
}

func TestLockScanner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	chain := slotChain(map[int64]bool{0: true, 1: true}, func(index int64) error {
		if index == 2 {
			cancel()
		}
		return nil
	})

	result, err := services.NewLockScanner(chain, testutil.StakingAddress, nil).
		Scan(ctx, testutil.UserAddress, business.ScanConfig{Ceiling: 1000, EmptyRunLimit: 20})
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, result)
	assert.Equal(t, business.ScanStoppedCancelled, result.StoppedBy)
	assert.Equal(t, []int64{0, 1}, lockIDs(result.Locks))
	assert.Equal(t, 3, result.Reads)
}

func TestLockScanner_InvalidConfig(t *testing.T) {
	scanner := services.NewLockScanner(newStakingChain(), testutil.StakingAddress, nil)

	_, err := scanner.Scan(context.Background(), testutil.UserAddress, business.ScanConfig{Ceiling: 0, EmptyRunLimit: 5})
	assert.ErrorIs(t, err, services.ErrInvalidScanConfig)
	_, err = scanner.Scan(context.Background(), testutil.UserAddress, business.ScanConfig{Ceiling: 10})
	assert.ErrorIs(t, err, services.ErrInvalidScanConfig)
}

func TestScanPreset(t *testing.T) {
	quick, err := services.ScanPreset("quick")
	require.NoError(t, err)
	assert.Equal(t, business.ScanConfig{Ceiling: 100, EmptyRunLimit: 5}, quick)

	deep, err := services.ScanPreset("deep")
	require.NoError(t, err)
	assert.Equal(t, business.ScanConfig{Ceiling: 1000, EmptyRunLimit: 20}, deep)

	_, err = services.ScanPreset("exhaustive")
	assert.ErrorIs(t, err, services.ErrInvalidScanConfig)
}

func TestLockSources(t *testing.T) {
	chain := slotChain(map[int64]bool{1: true}, nil)
	scanner := services.NewLockScanner(chain, testutil.StakingAddress, nil)

	locks, err := services.NewScannerLockSource(scanner, business.ScanConfig{Ceiling: 10, EmptyRunLimit: 3}).
		Locks(context.Background(), testutil.UserAddress)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, lockIDs(locks))

	static := services.NewStaticLockSource(locks)
	got, err := static.Locks(context.Background(), testutil.UserAddress)
	require.NoError(t, err)
	assert.Equal(t, locks, got)
}
