package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/opus-finance/opus-api/libs/go/config"
	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/testutil"
	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLockTuple struct {
	Amount     *big.Int
	UnlockTime *big.Int
	RewardDebt *big.Int
}

// stubFactory wires the CLI to an in-process chain: 250 wallet tokens, 1000
// staked and one mapUserLocks lock of 40 tokens for testutil.UserAddress.
func stubFactory(t *testing.T) (containerFactory, *testutil.StubChain) {
	t.Helper()
	testutil.SetupTestEnvironment(t)

	chain := testutil.NewStubChain()
	chain.Deploy(testutil.TokenAddress, contracts.ERC20())
	chain.Deploy(testutil.StakingAddress, contracts.Staking(), "mapUserLocks")
	chain.Returns(testutil.TokenAddress, "balanceOf", testutil.Tokens(250))
	chain.Returns(testutil.TokenAddress, "totalSupply", testutil.Tokens(1_000_000))
	chain.Returns(testutil.StakingAddress, "stakedBalance", testutil.Tokens(1000))
	chain.Returns(testutil.StakingAddress, "mapUserLocks",
		[]mapLockTuple{{Amount: testutil.Tokens(40), UnlockTime: big.NewInt(1_800_000_000), RewardDebt: big.NewInt(0)}})

	factory := func(ctx context.Context, cfg *config.Config) (*services.Container, error) {
		cfg.Stats.ExplorerURL = ""
		cfg.Stats.SubgraphURL = ""
		return services.NewContainer(ctx, cfg, services.ContainerOptions{Chain: chain})
	}
	return factory, chain
}

func run(t *testing.T, factory containerFactory, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr, factory)
	return stdout.String(), stderr.String(), code
}

func TestBalances(t *testing.T) {
	factory, _ := stubFactory(t)

	out, errOut, code := run(t, factory, "balances", testutil.UserAddress.Hex())
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Wallet: 250 OPUS")
	assert.Contains(t, out, "Staked: 1,000 OPUS")
	assert.Contains(t, out, "Locked: 40 OPUS")
	assert.Contains(t, out, "Total: 1,290 OPUS")
}

func TestBalancesRejectsBadAddress(t *testing.T) {
	factory, _ := stubFactory(t)

	_, errOut, code := run(t, factory, "balances", "0x12")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error:")
}

type walletEth struct{ account common.Address }

func (w *walletEth) RequestAccounts() []common.Address { return []common.Address{w.account} }

func TestBalancesFromWalletRPC(t *testing.T) {
	factory, _ := stubFactory(t)

	server := gethrpc.NewServer()
	require.NoError(t, server.RegisterName("eth", &walletEth{account: testutil.UserAddress}))
	t.Cleanup(server.Stop)
	srv := httptest.NewServer(server)
	t.Cleanup(srv.Close)

	out, errOut, code := run(t, factory, "balances", "--wallet-rpc", srv.URL)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, testutil.UserAddress.Hex())
	assert.Contains(t, out, "Total: 1,290 OPUS")
}

func TestBalancesWithoutWallet(t *testing.T) {
	factory, _ := stubFactory(t)

	_, errOut, code := run(t, factory, "balances")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no wallet")
}

func TestLocksProbeJSON(t *testing.T) {
	factory, _ := stubFactory(t)

	out, errOut, code := run(t, factory, "--json", "locks", "probe", testutil.UserAddress.Hex())
	require.Equal(t, 0, code, errOut)

	var resp responses.LockProbeResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "mapUserLocks", resp.Method)
	assert.Equal(t, "40", resp.TotalLocked)
}

func TestLocksProbeNoData(t *testing.T) {
	_, _ = stubFactory(t)

	// A staking contract that answers no lock accessor.
	bare := testutil.NewStubChain()
	bare.Deploy(testutil.StakingAddress, contracts.Staking())
	factory := func(ctx context.Context, cfg *config.Config) (*services.Container, error) {
		return services.NewContainer(ctx, cfg, services.ContainerOptions{Chain: bare})
	}

	_, errOut, code := run(t, factory, "locks", "probe", testutil.UserAddress.Hex())
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no data found")
	assert.Contains(t, errOut, "unavailable")
}

func TestLocksScanFlags(t *testing.T) {
	factory, chain := stubFactory(t)

	out, errOut, code := run(t, factory, "locks", "scan", testutil.UserAddress.Hex(), "--ceiling", "20", "--empty-run", "4")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Read 4 slots (4 errors)")
	assert.Contains(t, out, "stopped by empty_run")
	assert.Equal(t, 4, chain.CallCount(contracts.MethodMapUserInfoLock))
}

func TestLocksScanUnknownPreset(t *testing.T) {
	factory, _ := stubFactory(t)

	_, errOut, code := run(t, factory, "locks", "scan", testutil.UserAddress.Hex(), "--preset", "forever")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid scan config")
}

func TestCapabilities(t *testing.T) {
	factory, _ := stubFactory(t)

	out, errOut, code := run(t, factory, "capabilities")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Preferred: mapUserLocks")
}

func TestStats(t *testing.T) {
	factory, _ := stubFactory(t)

	out, errOut, code := run(t, factory, "stats")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Total supply")
	assert.Contains(t, out, "estimate")
}

func TestContent(t *testing.T) {
	factory, _ := stubFactory(t)

	out, _, code := run(t, factory, "content")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "tokenomics")

	out, _, code = run(t, factory, "content", "tiers")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "## ")

	_, errOut, code := run(t, factory, "content", "roadmap")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "page not found")
}

func TestRPCFlagOverridesConfig(t *testing.T) {
	factory, _ := stubFactory(t)

	var seen []string
	capture := func(ctx context.Context, cfg *config.Config) (*services.Container, error) {
		seen = cfg.Chain.RPCURLs
		return factory(ctx, cfg)
	}
	_, errOut, code := run(t, capture, "--rpc", "https://a.example, https://b.example", "content")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, seen)
}
