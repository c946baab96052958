package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/opus-finance/opus-api/libs/go/cache"
	awsclient "github.com/opus-finance/opus-api/libs/go/client/aws"
	"github.com/opus-finance/opus-api/libs/go/client/explorer"
	httpClient "github.com/opus-finance/opus-api/libs/go/client/http"
	"github.com/opus-finance/opus-api/libs/go/client/rpc"
	"github.com/opus-finance/opus-api/libs/go/client/subgraph"
	"github.com/opus-finance/opus-api/libs/go/config"
	"github.com/opus-finance/opus-api/libs/go/constants"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/metrics"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"go.uber.org/zap"
)

// Container holds the services built from one configuration. The HTTP
// server and the CLI share it.
type Container struct {
	Config  *config.Config
	Pool    *rpc.Pool
	Cache   cache.Store
	Metrics *metrics.Metrics

	Token      *TokenService
	Balances   *ChainBalanceSource
	Detector   *CapabilityDetector
	Probe      *LockProbeService
	Scanner    *LockScanner
	Indexer    *EventLockIndexer
	Stats      *StatisticsService
	Content    *ContentService
	Sessions   *SessionService
	ScanPreset string
}

// ContainerOptions overrides parts of the wiring, mainly for tests.
type ContainerOptions struct {
	// Chain replaces the RPC pool as the contract backend.
	Chain interfaces.ChainReader
	// Secrets resolves RPC_API_KEY_ARN; nil skips the lookup.
	Secrets *awsclient.SecretsManagerClient
	Metrics *metrics.Metrics
}

// NewContainer wires every service from cfg. Nothing is dialled here; the
// RPC pool connects on first use.
func NewContainer(ctx context.Context, cfg *config.Config, opts ContainerOptions) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	c := &Container{Config: cfg, Metrics: opts.Metrics}
	if c.Metrics == nil {
		c.Metrics = metrics.New()
	}

	chain := opts.Chain
	if chain == nil {
		apiKey := cfg.Chain.RPCAPIKey
		if cfg.Chain.RPCAPIKeyARN != "" && opts.Secrets != nil {
			key, err := opts.Secrets.ResolveSecret(ctx, cfg.Chain.RPCAPIKeyARN, apiKey)
			if err != nil {
				logger.Warn("RPC API key unavailable, using URLs as configured", zap.Error(err))
			} else {
				apiKey = key
			}
		}
		pool, err := rpc.NewPool(cfg.Chain.RPCURLs,
			rpc.WithChainID(cfg.Chain.ChainID),
			rpc.WithDialTimeout(cfg.Chain.DialTimeout),
			rpc.WithAPIKey(apiKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create RPC pool: %w", err)
		}
		c.Pool = pool
		chain = pool
	}

	store, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	c.Cache = store

	token, staking := cfg.TokenAddress(), cfg.StakingAddress()

	c.Token = NewTokenService(chain, token, cfg.Chain.ChainID)
	c.Balances = NewChainBalanceSource(chain, token, staking)
	c.Detector = NewCapabilityDetector(chain, staking, store, cfg.Cache.DefaultTTL)
	c.Probe = NewLockProbeService(chain, LockProbeConfig{
		Staking:      staking,
		PinnedMethod: cfg.Contracts.StakingLockMethod,
		Detector:     c.Detector,
		Metrics:      c.Metrics,
	})
	c.Scanner = NewLockScanner(chain, staking, c.Metrics)
	c.ScanPreset = cfg.Scanner.Preset
	c.Indexer = NewEventLockIndexer(chain, EventLockIndexerConfig{
		Staking:   staking,
		FromBlock: cfg.Contracts.LockEventsFromBlock,
		Store:     store,
		TTL:       cfg.Cache.DefaultTTL,
	})

	statsCfg := StatisticsConfig{
		Token:    token,
		Staking:  staking,
		Decimals: constants.TokenDecimals,
		Chain:    chain,
		Cache:    store,
		CacheTTL: cfg.Stats.CacheTTL,
		Metrics:  c.Metrics,
	}
	upstreamOpts := func(name string) []httpClient.ClientOption {
		opts := []httpClient.ClientOption{
			httpClient.WithTimeout(cfg.Stats.Timeout),
			httpClient.WithDefaultHeader("User-Agent", constants.UserAgent),
			httpClient.WithMetricsCollector(c.Metrics.HTTPClientCollector(name)),
		}
		if cfg.LogLevel == "debug" {
			opts = append(opts, httpClient.WithMiddleware(httpClient.LoggingMiddleware()))
		}
		return opts
	}
	if cfg.Stats.ExplorerURL != "" {
		statsCfg.Explorer = explorer.NewClient(cfg.Stats.ExplorerURL, upstreamOpts("explorer")...).
			WithAPIKey(cfg.Stats.ExplorerAPIKey)
	}
	if cfg.Stats.SubgraphURL != "" {
		statsCfg.Subgraph = subgraph.NewClient(cfg.Stats.SubgraphURL, upstreamOpts("subgraph")...).
			WithAPIKey(cfg.Stats.SubgraphAPIKey)
	}
	c.Stats = NewStatisticsService(statsCfg)

	c.Content = NewContentService()
	c.Sessions = NewSessionService(BlockchainContextConfig{
		Balances: c.Balances,
		Locks:    c.Probe,
		Asset:    TokenAsset(token),
	})

	return c, nil
}

// ScanConfig resolves the configured scanner bounds: the preset, with any
// explicit ceiling or empty run limit applied on top.
func (c *Container) ScanConfig() (business.ScanConfig, error) {
	scan, err := ScanPreset(c.ScanPreset)
	if err != nil {
		return scan, err
	}
	if n := c.Config.Scanner.Ceiling; n > 0 {
		scan.Ceiling = uint64(n)
	}
	if n := c.Config.Scanner.EmptyRunLimit; n > 0 {
		scan.EmptyRunLimit = n
	}
	return scan, nil
}

// Close releases the RPC connection and the cache.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Warn("Failed to close cache", zap.Error(err))
		}
	}
}
