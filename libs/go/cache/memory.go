package cache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
)

// bigcache only has a global life window, so each entry carries its own
// expiry as an 8-byte unix-nano prefix.
const expiryHeaderSize = 8

// MemoryStore is an in-process Store backed by bigcache.
type MemoryStore struct {
	cache *bigcache.BigCache
	now   func() time.Time
}

// NewMemoryStore creates a bigcache-backed store. lifeWindow bounds how long
// any entry can live regardless of its own TTL.
func NewMemoryStore(ctx context.Context, lifeWindow time.Duration) (*MemoryStore, error) {
	if lifeWindow <= 0 {
		lifeWindow = time.Hour
	}
	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.Shards = 64
	cfg.CleanWindow = time.Minute
	cfg.Verbose = false

	c, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return &MemoryStore{cache: c, now: time.Now}, nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.cache.Get(key)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s from memory cache: %w", key, err)
	}
	if len(raw) < expiryHeaderSize {
		return nil, false, nil
	}
	expiry := int64(binary.BigEndian.Uint64(raw[:expiryHeaderSize]))
	if expiry != 0 && s.now().UnixNano() >= expiry {
		_ = s.cache.Delete(key)
		return nil, false, nil
	}
	value := make([]byte, len(raw)-expiryHeaderSize)
	copy(value, raw[expiryHeaderSize:])
	return value, true, nil
}

// Set implements Store. A zero ttl keeps the entry for the life window.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiry int64
	if ttl > 0 {
		expiry = s.now().Add(ttl).UnixNano()
	}
	entry := make([]byte, expiryHeaderSize+len(value))
	binary.BigEndian.PutUint64(entry[:expiryHeaderSize], uint64(expiry))
	copy(entry[expiryHeaderSize:], value)
	if err := s.cache.Set(key, entry); err != nil {
		return fmt.Errorf("failed to write %s to memory cache: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := s.cache.Delete(key); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return fmt.Errorf("failed to delete %s from memory cache: %w", key, err)
	}
	return nil
}

// Close stops bigcache's cleanup goroutine.
func (s *MemoryStore) Close() error {
	return s.cache.Close()
}
