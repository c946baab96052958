package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/opus-finance/opus-api/libs/go/cache"
	"github.com/opus-finance/opus-api/libs/go/constants"
	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/helpers"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration of the API and the CLI.
type Config struct {
	Stage    string `yaml:"stage"`
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	Chain     ChainConfig     `yaml:"chain"`
	Contracts ContractsConfig `yaml:"contracts"`
	Stats     StatsConfig     `yaml:"stats"`
	Cache     cache.Config    `yaml:"cache"`
	Scanner   ScannerConfig   `yaml:"scanner"`
}

// ChainConfig configures RPC access.
type ChainConfig struct {
	// RPCURLs are tried in order; the first reachable one is used.
	RPCURLs      []string      `yaml:"rpc_urls"`
	RPCAPIKey    string        `yaml:"rpc_api_key"`
	RPCAPIKeyARN string        `yaml:"rpc_api_key_arn"`
	ChainID      int64         `yaml:"chain_id"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
}

// ContractsConfig holds the token and staking contract addresses.
type ContractsConfig struct {
	TokenAddress   string `yaml:"token_address"`
	StakingAddress string `yaml:"staking_address"`
	// StakingLockMethod pins the lock accessor when it is already known.
	StakingLockMethod   string `yaml:"staking_lock_method"`
	LockEventsFromBlock uint64 `yaml:"lock_events_from_block"`
}

// StatsConfig configures the statistics upstreams.
type StatsConfig struct {
	ExplorerURL    string        `yaml:"explorer_url"`
	ExplorerAPIKey string        `yaml:"explorer_api_key"`
	SubgraphURL    string        `yaml:"subgraph_url"`
	SubgraphAPIKey string        `yaml:"subgraph_api_key"`
	Timeout        time.Duration `yaml:"timeout"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
}

// ScannerConfig selects the lock scanner bounds.
type ScannerConfig struct {
	Preset        string `yaml:"preset"`
	Ceiling       int    `yaml:"ceiling"`
	EmptyRunLimit int    `yaml:"empty_run_limit"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Stage:    helpers.StageLocal,
		Port:     "8000",
		LogLevel: "info",
		Chain: ChainConfig{
			RPCURLs:     []string{"https://rpc.pulsechain.com"},
			ChainID:     constants.DefaultChainID,
			DialTimeout: 10 * time.Second,
		},
		Stats: StatsConfig{
			ExplorerURL: "https://api.scan.pulsechain.com",
			Timeout:     10 * time.Second,
			CacheTTL:    5 * time.Minute,
		},
		Cache: cache.Config{
			Backend:    constants.CacheBackendMemory,
			DefaultTTL: time.Hour,
		},
		Scanner: ScannerConfig{
			Preset: constants.ScanPresetQuick,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (or
// CONFIG_FILE when path is empty), then environment variables. A .env file
// in the working directory is loaded first without overriding the process
// environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.Stage, "STAGE")
	setString(&c.Port, "PORT")
	setString(&c.LogLevel, "LOG_LEVEL")

	if urls := os.Getenv("RPC_URLS"); urls != "" {
		c.Chain.RPCURLs = splitList(urls)
	}
	setString(&c.Chain.RPCAPIKey, "RPC_API_KEY")
	setString(&c.Chain.RPCAPIKeyARN, "RPC_API_KEY_ARN")
	if err := setInt64(&c.Chain.ChainID, "CHAIN_ID"); err != nil {
		return err
	}

	setString(&c.Contracts.TokenAddress, "TOKEN_ADDRESS")
	setString(&c.Contracts.StakingAddress, "STAKING_ADDRESS")
	setString(&c.Contracts.StakingLockMethod, "STAKING_LOCK_METHOD")
	if v := os.Getenv("LOCK_EVENTS_FROM_BLOCK"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid LOCK_EVENTS_FROM_BLOCK %q: %w", v, err)
		}
		c.Contracts.LockEventsFromBlock = n
	}

	setString(&c.Stats.ExplorerURL, "EXPLORER_URL")
	setString(&c.Stats.SubgraphURL, "SUBGRAPH_URL")
	setString(&c.Stats.ExplorerAPIKey, "EXPLORER_API_KEY")
	setString(&c.Stats.SubgraphAPIKey, "SUBGRAPH_API_KEY")
	if err := setDuration(&c.Stats.CacheTTL, "CACHE_TTL"); err != nil {
		return err
	}

	setString(&c.Cache.Backend, "CACHE_BACKEND")
	setString(&c.Cache.RedisAddr, "REDIS_ADDR")

	setString(&c.Scanner.Preset, "SCAN_PRESET")
	return nil
}

// Validate checks the configuration for values the services cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if !helpers.IsValidStage(c.Stage) {
		errs = append(errs, fmt.Errorf("invalid stage %q", c.Stage))
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
	}
	if len(c.Chain.RPCURLs) == 0 {
		errs = append(errs, errors.New("at least one RPC URL is required"))
	}
	if !helpers.IsAddressValid(c.Contracts.TokenAddress) || helpers.IsZeroAddress(c.TokenAddress()) {
		errs = append(errs, fmt.Errorf("invalid token address %q", c.Contracts.TokenAddress))
	}
	if !helpers.IsAddressValid(c.Contracts.StakingAddress) || helpers.IsZeroAddress(c.StakingAddress()) {
		errs = append(errs, fmt.Errorf("invalid staking address %q", c.Contracts.StakingAddress))
	}
	if m := c.Contracts.StakingLockMethod; m != "" &&
		!slices.Contains(contracts.LockMethodCandidates, m) && m != contracts.MethodGetUserLockIds {
		errs = append(errs, fmt.Errorf("invalid staking lock method %q", m))
	}
	switch c.Cache.Backend {
	case constants.CacheBackendMemory:
	case constants.CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			errs = append(errs, errors.New("redis cache backend requires REDIS_ADDR"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid cache backend %q", c.Cache.Backend))
	}
	switch c.Scanner.Preset {
	case constants.ScanPresetQuick, constants.ScanPresetDeep:
	default:
		errs = append(errs, fmt.Errorf("invalid scan preset %q", c.Scanner.Preset))
	}
	if c.Stats.CacheTTL < 0 {
		errs = append(errs, errors.New("cache TTL must not be negative"))
	}

	return errors.Join(errs...)
}

// TokenAddress returns the parsed token contract address.
func (c *Config) TokenAddress() common.Address {
	return common.HexToAddress(c.Contracts.TokenAddress)
}

// StakingAddress returns the parsed staking contract address.
func (c *Config) StakingAddress() common.Address {
	return common.HexToAddress(c.Contracts.StakingAddress)
}

// IsProduction reports whether the stage is prod.
func (c *Config) IsProduction() bool {
	return c.Stage == constants.ProdEnvironment
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt64(dst *int64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
