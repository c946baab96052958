package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/opus-finance/opus-api/libs/go/cache"
	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/mocks"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCapabilityDetector_Detect(t *testing.T) {
	chain := testutil.NewStubChain()
	chain.Deploy(testutil.StakingAddress, contracts.Staking(), "getUserLockInfo", "getLocks", "mapUserInfoLock")

	detector := services.NewCapabilityDetector(chain, testutil.StakingAddress, nil, 0)
	caps, err := detector.Detect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, testutil.StakingAddress.Hex(), caps.Contract)
	assert.True(t, caps.Present["getLocks"])
	assert.True(t, caps.Present["getUserLockInfo"])
	assert.True(t, caps.Present["mapUserInfoLock"])
	assert.False(t, caps.Present["getUserLocks"])
	assert.Equal(t, "getLocks", caps.Preferred, "first present candidate in waterfall order")
	assert.False(t, caps.Proxy)
	assert.False(t, caps.DetectedAt.IsZero())

	preferred, err := detector.Preferred(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "getLocks", preferred)
}

func TestCapabilityDetector_CachesResult(t *testing.T) {
	chain := testutil.NewStubChain()
	chain.Deploy(testutil.StakingAddress, contracts.Staking(), "getUserLocks")
	store, err := cache.NewMemoryStore(context.Background(), 0)
	require.NoError(t, err)
	defer store.Close()

	detector := services.NewCapabilityDetector(chain, testutil.StakingAddress, store, 0)
	first, err := detector.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "getUserLocks", first.Preferred)

	// Redeploying does not change a cached answer.
	chain.Deploy(testutil.StakingAddress, contracts.Staking(), "mapUserLocks")
	again, err := detector.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "getUserLocks", again.Preferred)

	// A second detector shares the stored result.
	shared := services.NewCapabilityDetector(chain, testutil.StakingAddress, store, 0)
	fromStore, err := shared.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "getUserLocks", fromStore.Preferred)

	// Returned maps are copies.
	again.Present["getUserLocks"] = false
	third, err := detector.Detect(context.Background())
	require.NoError(t, err)
	assert.True(t, third.Present["getUserLocks"])

	detector.Reset()
	require.NoError(t, store.Delete(context.Background(), "capabilities:"+testutil.StakingAddress.Hex()))
	fresh, err := detector.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mapUserLocks", fresh.Preferred)
}

func TestCapabilityDetector_NoCode(t *testing.T) {
	chain := testutil.NewStubChain()
	detector := services.NewCapabilityDetector(chain, testutil.StakingAddress, nil, 0)

	_, err := detector.Detect(context.Background())
	assert.True(t, errors.Is(err, contracts.ErrNoCode))
}

func TestCapabilityDetector_Proxy(t *testing.T) {
	chain := testutil.NewStubChain()
	proxy := common.HexToAddress("0x3333333333333333333333333333333333333333")
	// EIP-1167 minimal proxy runtime code.
	chain.SetCode(proxy, common.FromHex("0x363d3d373d3d3d363d73bebebebebebebebebebebebebebebebebebebebe5af43d82803e903d91602b57fd5bf3"))

	caps, err := services.NewCapabilityDetector(chain, proxy, nil, 0).Detect(context.Background())
	require.NoError(t, err)
	assert.True(t, caps.Proxy)
	assert.Empty(t, caps.Preferred)
}

func TestCapabilityDetector_CacheFailuresAreNotFatal(t *testing.T) {
	chain := testutil.NewStubChain()
	chain.Deploy(testutil.StakingAddress, contracts.Staking(), "getUserLocks")

	store := mocks.NewMockStore(gomock.NewController(t))
	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))
	store.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	caps, err := services.NewCapabilityDetector(chain, testutil.StakingAddress, store, 0).Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "getUserLocks", caps.Preferred)
}
