package services_test

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/metrics"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/testutil"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func init() {
	logger.InitLogger("test")
}

type userLockTuple struct {
	Id         *big.Int
	Amount     *big.Int
	StartTime  *big.Int
	EndTime    *big.Int
	RewardDebt *big.Int
}

type lockTuple struct {
	Amount     *big.Int
	StartTime  *big.Int
	EndTime    *big.Int
	LockPeriod *big.Int
}

type mapUserLockTuple struct {
	Amount     *big.Int
	UnlockTime *big.Int
	RewardDebt *big.Int
}

// candidateAnswers returns, per waterfall candidate, outputs decoding to
// one lock of 100 tokens.
func candidateAnswers() map[string][]interface{} {
	amount := testutil.Tokens(100)
	start, end := big.NewInt(1_700_000_000), big.NewInt(1_730_000_000)
	return map[string][]interface{}{
		"getUserLocks": {[]userLockTuple{{Id: big.NewInt(7), Amount: amount, StartTime: start, EndTime: end, RewardDebt: big.NewInt(0)}}},
		"getLockPositions": {
			[]*big.Int{amount},
			[]*big.Int{start},
			[]*big.Int{end},
		},
		"getLocks":        {[]lockTuple{{Amount: amount, StartTime: start, EndTime: end, LockPeriod: big.NewInt(30 * 86400)}}},
		"mapUserLocks":    {[]mapUserLockTuple{{Amount: amount, UnlockTime: end, RewardDebt: big.NewInt(1)}}},
		"getUserLockInfo": {amount, start, end, big.NewInt(30 * 86400)},
	}
}

func newStakingChain() *testutil.StubChain {
	chain := testutil.NewStubChain()
	chain.Deploy(testutil.StakingAddress, contracts.Staking())
	return chain
}

func newProbe(chain *testutil.StubChain, cfg services.LockProbeConfig) *services.LockProbeService {
	cfg.Staking = testutil.StakingAddress
	return services.NewLockProbeService(chain, cfg)
}

func TestLockProbeService_WaterfallStopsAtFirstHit(t *testing.T) {
	answers := candidateAnswers()

	for k, winner := range contracts.LockMethodCandidates {
		t.Run(winner, func(t *testing.T) {
			chain := newStakingChain()
			chain.Returns(testutil.StakingAddress, winner, answers[winner]...)
			probe := newProbe(chain, services.LockProbeConfig{})

			result, err := probe.Probe(context.Background(), testutil.UserAddress)
			require.NoError(t, err)

			assert.Equal(t, winner, result.Method)
			require.Len(t, result.Locks, 1)
			assert.Equal(t, 0, result.Locks[0].Amount.Cmp(testutil.Tokens(100)))
			assert.Equal(t, winner, result.Locks[0].Source)

			// Candidates 1..k are called once each, in order; none after.
			assert.Equal(t, contracts.LockMethodCandidates[:k+1], chain.Calls())
			for _, later := range contracts.LockMethodCandidates[k+1:] {
				assert.Zero(t, chain.CallCount(later), "candidate %s must not be called", later)
			}
			require.Len(t, result.Attempts, k+1)
			assert.Equal(t, business.ProbeOutcomeFound, result.Attempts[k].Outcome)
			for _, a := range result.Attempts[:k] {
				assert.Equal(t, business.ProbeOutcomeUnavailable, a.Outcome)
			}
		})
	}
}

func TestLockProbeService_EmptyAnswerFallsThrough(t *testing.T) {
	chain := newStakingChain()
	chain.Returns(testutil.StakingAddress, "getUserLocks", []userLockTuple{})
	chain.Returns(testutil.StakingAddress, "getLocks", candidateAnswers()["getLocks"]...)

	result, err := newProbe(chain, services.LockProbeConfig{}).Probe(context.Background(), testutil.UserAddress)
	require.NoError(t, err)
	assert.Equal(t, "getLocks", result.Method)
	assert.Equal(t, business.ProbeOutcomeEmpty, result.Attempts[0].Outcome)
	assert.Equal(t, uint64(30*86400), result.Locks[0].LockPeriod)
}

func TestLockProbeService_LookupByIDs(t *testing.T) {
	defer goleak.VerifyNone(t)

	chain := newStakingChain()
	other := common.HexToAddress("0x9999999999999999999999999999999999999999")
	chain.Returns(testutil.StakingAddress, contracts.MethodGetUserLockIds,
		[]*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4)})
	chain.On(testutil.StakingAddress, contracts.MethodGetLockInfo, func(args []interface{}) ([]interface{}, error) {
		id := args[0].(*big.Int).Int64()
		owner := testutil.UserAddress
		switch id {
		case 2:
			return nil, errors.New("lock burned")
		case 3:
			owner = other
		}
		return []interface{}{owner, testutil.Tokens(id), big.NewInt(10), big.NewInt(20), big.NewInt(0)}, nil
	})

	m := metrics.New()
	result, err := newProbe(chain, services.LockProbeConfig{LookupParallelism: 2, Metrics: m}).
		Probe(context.Background(), testutil.UserAddress)
	require.NoError(t, err)

	assert.Equal(t, contracts.MethodGetUserLockIds, result.Method)
	require.Len(t, result.Locks, 2)
	assert.Equal(t, int64(1), result.Locks[0].ID.Int64())
	assert.Equal(t, int64(4), result.Locks[1].ID.Int64())
	assert.Equal(t, 4, chain.CallCount(contracts.MethodGetLockInfo))
}

func TestLockProbeService_RawFallback(t *testing.T) {
	chain := newStakingChain()
	selector, err := contracts.Selector("getUserLocks")
	require.NoError(t, err)
	junk := []byte{0xde, 0xad, 0xbe}
	chain.OnRaw(testutil.StakingAddress, func(data []byte) ([]byte, bool, error) {
		if bytes.Equal(data[:4], selector) {
			return junk, true, nil
		}
		return nil, false, nil
	})

	result, err := newProbe(chain, services.LockProbeConfig{}).Probe(context.Background(), testutil.UserAddress)
	require.NoError(t, err)

	assert.Equal(t, services.ProbeMethodRaw, result.Method)
	assert.Equal(t, junk, result.Raw)
	assert.Empty(t, result.Locks)
	assert.Len(t, result.Attempts, len(services.ProbeStrategies())+1)
}

func TestLockProbeService_NoLockData(t *testing.T) {
	chain := newStakingChain()
	probe := newProbe(chain, services.LockProbeConfig{})

	result, err := probe.Probe(context.Background(), testutil.UserAddress)
	assert.True(t, errors.Is(err, services.ErrNoLockData))
	require.NotNil(t, result)
	assert.Len(t, result.Attempts, len(services.ProbeStrategies())+1)

	locks, err := probe.Locks(context.Background(), testutil.UserAddress)
	assert.Nil(t, locks)
	assert.True(t, errors.Is(err, services.ErrNoLockData))
	assert.Equal(t, "", probe.PreferredMethod())
}

func TestLockProbeService_RemembersWinner(t *testing.T) {
	chain := newStakingChain()
	chain.Returns(testutil.StakingAddress, "mapUserLocks", candidateAnswers()["mapUserLocks"]...)
	probe := newProbe(chain, services.LockProbeConfig{})

	_, err := probe.Probe(context.Background(), testutil.UserAddress)
	require.NoError(t, err)
	assert.Equal(t, "mapUserLocks", probe.PreferredMethod())

	chain.ResetCalls()
	result, err := probe.Probe(context.Background(), testutil.UserAddress)
	require.NoError(t, err)
	assert.Equal(t, []string{"mapUserLocks"}, chain.Calls())
	assert.Len(t, result.Attempts, 1)
}

func TestLockProbeService_PinnedMethod(t *testing.T) {
	t.Run("pinned answers", func(t *testing.T) {
		chain := newStakingChain()
		chain.Returns(testutil.StakingAddress, "getUserLocks", candidateAnswers()["getUserLocks"]...)
		chain.Returns(testutil.StakingAddress, "getUserLockInfo", candidateAnswers()["getUserLockInfo"]...)
		probe := newProbe(chain, services.LockProbeConfig{PinnedMethod: "getUserLockInfo"})

		result, err := probe.Probe(context.Background(), testutil.UserAddress)
		require.NoError(t, err)
		assert.Equal(t, "getUserLockInfo", result.Method)
		assert.Equal(t, []string{"getUserLockInfo"}, chain.Calls())
	})

	t.Run("pinned absent runs nothing else", func(t *testing.T) {
		chain := newStakingChain()
		chain.Returns(testutil.StakingAddress, "getLocks", candidateAnswers()["getLocks"]...)
		probe := newProbe(chain, services.LockProbeConfig{PinnedMethod: "getUserLockInfo"})

		result, err := probe.Probe(context.Background(), testutil.UserAddress)
		assert.True(t, errors.Is(err, services.ErrNoLockData))
		assert.Equal(t, []string{"getUserLockInfo"}, chain.Calls())
		require.Len(t, result.Attempts, 1)
		assert.Equal(t, business.ProbeOutcomeUnavailable, result.Attempts[0].Outcome)
	})

	t.Run("pinned answers empty", func(t *testing.T) {
		chain := newStakingChain()
		chain.Returns(testutil.StakingAddress, "getUserLocks", []userLockTuple{})
		chain.Returns(testutil.StakingAddress, "getLocks", candidateAnswers()["getLocks"]...)
		probe := newProbe(chain, services.LockProbeConfig{PinnedMethod: "getUserLocks"})

		_, err := probe.Probe(context.Background(), testutil.UserAddress)
		assert.True(t, errors.Is(err, services.ErrNoLockData))
		assert.Equal(t, []string{"getUserLocks"}, chain.Calls())
	})

	t.Run("unknown pinned name", func(t *testing.T) {
		chain := newStakingChain()
		chain.Returns(testutil.StakingAddress, "getUserLocks", candidateAnswers()["getUserLocks"]...)
		probe := newProbe(chain, services.LockProbeConfig{PinnedMethod: "getUserLock"})

		result, err := probe.Probe(context.Background(), testutil.UserAddress)
		assert.True(t, errors.Is(err, services.ErrNoLockData))
		assert.Empty(t, chain.Calls())
		require.Len(t, result.Attempts, 1)
		assert.Contains(t, result.Attempts[0].Error, "not in staking ABI")
	})
}

func TestLockProbeService_EmptyAccountIsNoData(t *testing.T) {
	chain := newStakingChain()
	chain.Returns(testutil.StakingAddress, "getUserLocks", []userLockTuple{})

	result, err := newProbe(chain, services.LockProbeConfig{}).Probe(context.Background(), testutil.UserAddress)
	assert.True(t, errors.Is(err, services.ErrNoLockData))
	assert.Empty(t, result.Raw)
	assert.Len(t, result.Attempts, len(services.ProbeStrategies()))
	for _, a := range result.Attempts {
		assert.NotEqual(t, services.ProbeMethodRaw, a.Method)
	}
	assert.Equal(t, 1, chain.CallCount("getUserLocks"))
}

func TestLockProbeService_DetectorSeedsOrder(t *testing.T) {
	chain := testutil.NewStubChain()
	chain.Deploy(testutil.StakingAddress, contracts.Staking(), "getLocks")
	chain.Returns(testutil.StakingAddress, "getLocks", candidateAnswers()["getLocks"]...)

	detector := services.NewCapabilityDetector(chain, testutil.StakingAddress, nil, 0)
	probe := newProbe(chain, services.LockProbeConfig{Detector: detector})

	result, err := probe.Probe(context.Background(), testutil.UserAddress)
	require.NoError(t, err)
	assert.Equal(t, "getLocks", result.Method)
	assert.Equal(t, []string{"getLocks"}, chain.Calls())
}

func TestLockProbeService_Cancelled(t *testing.T) {
	chain := newStakingChain()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newProbe(chain, services.LockProbeConfig{}).Probe(ctx, testutil.UserAddress)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, chain.Calls())
}
