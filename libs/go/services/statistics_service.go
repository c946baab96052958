package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/opus-finance/opus-api/libs/go/cache"
	"github.com/opus-finance/opus-api/libs/go/client/explorer"
	"github.com/opus-finance/opus-api/libs/go/client/subgraph"
	"github.com/opus-finance/opus-api/libs/go/constants"
	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/helpers"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/metrics"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"golang.org/x/sync/errgroup"
)

// Heuristic ratios for the on-chain estimates. They are rough and carry no
// error bounds.
const (
	holdersPerSqrtSupply = 0.5
	stakersPerHolder     = 0.27
)

var errImplausible = errors.New("implausible value")

// StatisticsConfig configures a StatisticsService. Explorer, Subgraph,
// Chain and Cache are all optional.
type StatisticsConfig struct {
	Token    common.Address
	Staking  common.Address
	Decimals int
	Explorer interfaces.ExplorerClient
	Subgraph interfaces.SubgraphClient
	Chain    contracts.Caller
	Cache    cache.Store
	CacheTTL time.Duration
	Metrics  *metrics.Metrics
}

// StatisticsService aggregates token statistics. Each figure is resolved
// through explorer, subgraph, on-chain estimate and finally a documented
// constant; the first plausible value wins and failures are logged only.
type StatisticsService struct {
	cfg   StatisticsConfig
	token *contracts.Token
	log   *logger.StructuredLogger
	now   func() time.Time
}

// NewStatisticsService creates a statistics service
func NewStatisticsService(cfg StatisticsConfig) *StatisticsService {
	if cfg.Decimals == 0 {
		cfg.Decimals = constants.TokenDecimals
	}
	s := &StatisticsService{
		cfg: cfg,
		log: logger.NewStructuredLogger(logger.ComponentStats).WithContract(cfg.Token.Hex()),
		now: time.Now,
	}
	if cfg.Chain != nil {
		s.token = contracts.NewToken(cfg.Token, cfg.Chain)
	}
	return s
}

func (s *StatisticsService) cacheKey() string {
	return "stats:" + s.cfg.Token.Hex()
}

// stage is one rung of a metric's fallback ladder.
type stage struct {
	source string
	fetch  func(ctx context.Context) (float64, error)
}

// upstreams memoizes each upstream call for the duration of one Statistics
// call so metrics sharing a source hit it once.
type upstreams struct {
	details  func() (*explorer.TokenDetails, error)
	stakedEx func() (*big.Int, error)
	holders  func() (int64, error)
	graph    func() (*subgraph.TokenStats, error)
	supply   func() (*big.Int, error)
	staked   func() (*big.Int, error)
}

func (s *StatisticsService) upstreams(ctx context.Context) *upstreams {
	notConfigured := func(name string) error { return fmt.Errorf("%s not configured", name) }
	return &upstreams{
		details: sync.OnceValues(func() (*explorer.TokenDetails, error) {
			if s.cfg.Explorer == nil {
				return nil, notConfigured("explorer")
			}
			return s.cfg.Explorer.TokenDetails(ctx, s.cfg.Token)
		}),
		stakedEx: sync.OnceValues(func() (*big.Int, error) {
			if s.cfg.Explorer == nil {
				return nil, notConfigured("explorer")
			}
			return s.cfg.Explorer.TokenBalance(ctx, s.cfg.Staking, s.cfg.Token)
		}),
		holders: sync.OnceValues(func() (int64, error) {
			if s.cfg.Explorer == nil {
				return 0, notConfigured("explorer")
			}
			return s.cfg.Explorer.HolderCount(ctx, s.cfg.Token)
		}),
		graph: sync.OnceValues(func() (*subgraph.TokenStats, error) {
			if s.cfg.Subgraph == nil {
				return nil, notConfigured("subgraph")
			}
			return s.cfg.Subgraph.TokenStats(ctx, s.cfg.Token)
		}),
		supply: sync.OnceValues(func() (*big.Int, error) {
			if s.token == nil {
				return nil, notConfigured("chain")
			}
			return s.token.TotalSupply(ctx)
		}),
		staked: sync.OnceValues(func() (*big.Int, error) {
			if s.token == nil {
				return nil, notConfigured("chain")
			}
			return s.token.BalanceOf(ctx, s.cfg.Staking)
		}),
	}
}

// Statistics returns the token statistics, from cache when fresh.
func (s *StatisticsService) Statistics(ctx context.Context) (*business.TokenStatistics, error) {
	if s.cfg.Cache != nil {
		var cached business.TokenStatistics
		found, err := cache.GetJSON(ctx, s.cfg.Cache, s.cacheKey(), &cached)
		if err != nil {
			s.log.Warn("Failed to read cached statistics", err)
		} else if found {
			return &cached, nil
		}
	}

	up := s.upstreams(ctx)
	stats := &business.TokenStatistics{}

	var g errgroup.Group
	g.Go(func() error {
		stats.TotalSupply = s.resolve(ctx, constants.StatTotalSupply, s.supplyStages(up), constants.FallbackTotalSupply, false)
		return nil
	})
	g.Go(func() error {
		stats.TotalStaked = s.resolve(ctx, constants.StatTotalStaked, s.stakedStages(up), constants.FallbackTotalStaked, false)
		return nil
	})
	g.Go(func() error {
		stats.CirculatingSupply = s.resolve(ctx, constants.StatCirculatingSupply, s.circulatingStages(up), constants.FallbackCirculatingSupply, false)
		return nil
	})
	g.Go(func() error {
		stats.Holders = s.resolve(ctx, constants.StatHolders, s.holderStages(up), constants.FallbackHolders, true)
		return nil
	})
	_ = g.Wait()

	// The stakers estimate derives from the holder count, so it runs last.
	stats.Stakers = s.resolve(ctx, constants.StatStakers, s.stakerStages(up, stats.Holders), constants.FallbackStakers, true)

	if s.cfg.Cache != nil {
		if err := cache.SetJSON(ctx, s.cfg.Cache, s.cacheKey(), stats, s.cfg.CacheTTL); err != nil {
			s.log.Warn("Failed to cache statistics", err)
		}
	}
	return stats, nil
}

func (s *StatisticsService) resolve(ctx context.Context, metric string, stages []stage, fallback float64, count bool) business.StatValue {
	for _, st := range stages {
		if ctx.Err() != nil {
			break
		}
		v, err := st.fetch(ctx)
		if err == nil && !plausible(v, count) {
			err = fmt.Errorf("%w: %v", errImplausible, v)
		}
		if err != nil {
			s.log.LogStatSource(metric, st.source, err)
			continue
		}
		if count {
			v = math.Floor(v)
		}
		s.log.LogStatSource(metric, st.source, nil)
		s.cfg.Metrics.ObserveStatSource(metric, st.source)
		return business.StatValue{Value: v, Source: st.source, UpdatedAt: s.now()}
	}

	s.cfg.Metrics.ObserveStatSource(metric, constants.StatSourceFallback)
	return business.StatValue{Value: fallback, Source: constants.StatSourceFallback, UpdatedAt: s.now()}
}

// plausible rejects NaN, infinities and negatives, and zero for counts.
func plausible(v float64, count bool) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return false
	}
	return !count || v > 0
}

func (s *StatisticsService) tokens(v *big.Int) float64 {
	return helpers.WeiToFloat(v, s.cfg.Decimals)
}

func explorerSupply(s *StatisticsService, up *upstreams) (float64, error) {
	d, err := up.details()
	if err != nil {
		return 0, err
	}
	v, ok := d.TotalSupply.Int()
	if !ok {
		return 0, explorer.ErrNoValue
	}
	return s.tokens(v), nil
}

func subgraphValue(up *upstreams, pick func(*subgraph.TokenStats) explorer.Number) (float64, error) {
	stats, err := up.graph()
	if err != nil {
		return 0, err
	}
	v, ok := pick(stats).Float()
	if !ok {
		return 0, fmt.Errorf("subgraph returned no value")
	}
	return v, nil
}

func (s *StatisticsService) supplyStages(up *upstreams) []stage {
	return []stage{
		{constants.StatSourceAPI, func(context.Context) (float64, error) { return explorerSupply(s, up) }},
		{constants.StatSourceSubgraph, func(context.Context) (float64, error) {
			return subgraphValue(up, func(t *subgraph.TokenStats) explorer.Number { return t.TotalSupply })
		}},
		{constants.StatSourceEstimate, func(context.Context) (float64, error) {
			v, err := up.supply()
			if err != nil {
				return 0, err
			}
			return s.tokens(v), nil
		}},
	}
}

func (s *StatisticsService) stakedStages(up *upstreams) []stage {
	return []stage{
		{constants.StatSourceAPI, func(context.Context) (float64, error) {
			v, err := up.stakedEx()
			if err != nil {
				return 0, err
			}
			return s.tokens(v), nil
		}},
		{constants.StatSourceSubgraph, func(context.Context) (float64, error) {
			return subgraphValue(up, func(t *subgraph.TokenStats) explorer.Number { return t.TotalStaked })
		}},
		{constants.StatSourceEstimate, func(context.Context) (float64, error) {
			v, err := up.staked()
			if err != nil {
				return 0, err
			}
			return s.tokens(v), nil
		}},
	}
}

// circulatingStages compute supply minus staked within each source, never
// mixing figures from different sources.
func (s *StatisticsService) circulatingStages(up *upstreams) []stage {
	diff := func(supply, staked float64) (float64, error) {
		if staked > supply {
			return 0, fmt.Errorf("staked %v exceeds supply %v", staked, supply)
		}
		return supply - staked, nil
	}
	return []stage{
		{constants.StatSourceAPI, func(context.Context) (float64, error) {
			supply, err := explorerSupply(s, up)
			if err != nil {
				return 0, err
			}
			staked, err := up.stakedEx()
			if err != nil {
				return 0, err
			}
			return diff(supply, s.tokens(staked))
		}},
		{constants.StatSourceSubgraph, func(context.Context) (float64, error) {
			supply, err := subgraphValue(up, func(t *subgraph.TokenStats) explorer.Number { return t.TotalSupply })
			if err != nil {
				return 0, err
			}
			staked, err := subgraphValue(up, func(t *subgraph.TokenStats) explorer.Number { return t.TotalStaked })
			if err != nil {
				return 0, err
			}
			return diff(supply, staked)
		}},
		{constants.StatSourceEstimate, func(context.Context) (float64, error) {
			supply, err := up.supply()
			if err != nil {
				return 0, err
			}
			staked, err := up.staked()
			if err != nil {
				return 0, err
			}
			return diff(s.tokens(supply), s.tokens(staked))
		}},
	}
}

func (s *StatisticsService) holderStages(up *upstreams) []stage {
	return []stage{
		{constants.StatSourceAPI, func(context.Context) (float64, error) {
			n, err := up.holders()
			if err == nil && n > 0 {
				return float64(n), nil
			}
			// Older explorers only report holders on the token itself.
			d, derr := up.details()
			if derr != nil {
				return 0, errors.Join(err, derr)
			}
			for _, field := range []explorer.Number{d.HoldersCount, d.Holders} {
				if v, ok := field.Int64(); ok {
					return float64(v), nil
				}
			}
			return 0, errors.Join(err, explorer.ErrNoValue)
		}},
		{constants.StatSourceSubgraph, func(context.Context) (float64, error) {
			return subgraphValue(up, func(t *subgraph.TokenStats) explorer.Number { return t.HolderCount })
		}},
		{constants.StatSourceEstimate, func(context.Context) (float64, error) {
			v, err := up.supply()
			if err != nil {
				return 0, err
			}
			return math.Max(1, math.Floor(math.Sqrt(s.tokens(v))*holdersPerSqrtSupply)), nil
		}},
	}
}

func (s *StatisticsService) stakerStages(up *upstreams, holders business.StatValue) []stage {
	return []stage{
		{constants.StatSourceSubgraph, func(context.Context) (float64, error) {
			return subgraphValue(up, func(t *subgraph.TokenStats) explorer.Number { return t.StakerCount })
		}},
		{constants.StatSourceEstimate, func(context.Context) (float64, error) {
			if holders.Source == constants.StatSourceFallback {
				return 0, errors.New("holder count unavailable")
			}
			return math.Floor(holders.Value * stakersPerHolder), nil
		}},
	}
}
