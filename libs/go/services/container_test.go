package services_test

import (
	"context"
	"testing"

	"github.com/opus-finance/opus-api/libs/go/client/wallet"
	"github.com/opus-finance/opus-api/libs/go/config"
	"github.com/opus-finance/opus-api/libs/go/constants"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containerConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Contracts.TokenAddress = testutil.TokenAddress.Hex()
	cfg.Contracts.StakingAddress = testutil.StakingAddress.Hex()
	cfg.Stats.ExplorerURL = ""
	return cfg
}

func TestContainer_WiresServices(t *testing.T) {
	chain := dashboardChain(250, 1000)
	chain.Returns(testutil.TokenAddress, "totalSupply", testutil.Tokens(1_000_000))

	c, err := services.NewContainer(context.Background(), containerConfig(), services.ContainerOptions{Chain: chain})
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Pool)
	require.NotNil(t, c.Metrics)

	snap, err := c.Sessions.Connect(context.Background(), wallet.NewStaticProvider(testutil.UserAddress))
	require.NoError(t, err)
	assert.Equal(t, "Total: 1,250 OPUS", snap.Summary[3])

	stats, err := c.Stats.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, constants.StatSourceEstimate, stats.TotalSupply.Source)

	page, err := c.Content.Page(services.PageTiers)
	require.NoError(t, err)
	assert.Len(t, page.Sections[0].Items, len(services.StakingTiers))
}

func TestContainer_ScanConfig(t *testing.T) {
	cfg := containerConfig()
	cfg.Scanner.Preset = constants.ScanPresetDeep
	cfg.Scanner.EmptyRunLimit = 7

	c, err := services.NewContainer(context.Background(), cfg, services.ContainerOptions{Chain: testutil.NewStubChain()})
	require.NoError(t, err)
	defer c.Close()

	scan, err := c.ScanConfig()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), scan.Ceiling)
	assert.Equal(t, 7, scan.EmptyRunLimit)
}

func TestContainer_RequiresConfig(t *testing.T) {
	_, err := services.NewContainer(context.Background(), nil, services.ContainerOptions{})
	assert.Error(t, err)
}

func TestContainer_BuildsRPCPool(t *testing.T) {
	c, err := services.NewContainer(context.Background(), containerConfig(), services.ContainerOptions{})
	require.NoError(t, err)
	defer c.Close()
	assert.NotNil(t, c.Pool)
}
