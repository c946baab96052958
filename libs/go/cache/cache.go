package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/opus-finance/opus-api/libs/go/constants"
)

//go:generate mockgen -destination=../mocks/mock_cache.go -package=mocks github.com/opus-finance/opus-api/libs/go/cache Store

// Store is a byte cache with per-entry expiry. A miss is reported as
// found=false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Config selects and configures the cache backend.
type Config struct {
	Backend    string        `yaml:"backend"`
	RedisAddr  string        `yaml:"redis_addr"`
	RedisDB    int           `yaml:"redis_db"`
	KeyPrefix  string        `yaml:"key_prefix"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// New builds the configured backend.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", constants.CacheBackendMemory:
		return NewMemoryStore(ctx, cfg.DefaultTTL)
	case constants.CacheBackendRedis:
		return NewRedisStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// GetJSON reads and decodes a cached JSON value.
func GetJSON(ctx context.Context, s Store, key string, target interface{}) (bool, error) {
	raw, found, err := s.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes and caches a value.
func SetJSON(ctx context.Context, s Store, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s for cache: %w", key, err)
	}
	return s.Set(ctx, key, raw, ttl)
}
