package rpc

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"go.uber.org/zap"
)

// ErrAllEndpointsFailed is returned when no configured RPC URL answers.
var ErrAllEndpointsFailed = errors.New("RPC endpoint unreachable")

// APIKeyPlaceholder in an RPC URL is replaced with the configured API key.
const APIKeyPlaceholder = "{api_key}"

// Backend is the chain surface the pool hands out. *ethclient.Client
// satisfies it.
type Backend interface {
	CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	BlockNumber(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// Dialer opens a backend for a URL.
type Dialer func(ctx context.Context, url string) (Backend, error)

// DialEthClient is the production Dialer.
func DialEthClient(ctx context.Context, url string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithDialer replaces the dialer, mainly for tests.
func WithDialer(d Dialer) PoolOption {
	return func(p *Pool) { p.dial = d }
}

// WithChainID makes the pool reject endpoints serving another chain.
func WithChainID(id int64) PoolOption {
	return func(p *Pool) { p.chainID = id }
}

// WithDialTimeout bounds each dial plus chain id check.
func WithDialTimeout(d time.Duration) PoolOption {
	return func(p *Pool) { p.dialTimeout = d }
}

// WithAPIKey substitutes the key into URLs carrying APIKeyPlaceholder.
func WithAPIKey(key string) PoolOption {
	return func(p *Pool) { p.apiKey = key }
}

// Pool holds an ordered list of RPC URLs and a connection to the first one
// that answered. Transport failures move the pool to the next URL.
type Pool struct {
	urls        []string
	apiKey      string
	dial        Dialer
	chainID     int64
	dialTimeout time.Duration
	logger      *zap.Logger

	mu      sync.RWMutex
	current Backend
	index   int
}

// NewPool creates a pool. It does not dial until first use or Dial.
func NewPool(urls []string, opts ...PoolOption) (*Pool, error) {
	if len(urls) == 0 {
		return nil, errors.New("at least one RPC URL is required")
	}
	p := &Pool{
		urls:        append([]string(nil), urls...),
		dial:        DialEthClient,
		dialTimeout: 10 * time.Second,
		logger:      logger.Log.With(zap.String("component", "rpc")),
		index:       -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// URL returns the endpoint URL at i with the API key applied.
func (p *Pool) URL(i int) string {
	u := p.urls[i]
	if p.apiKey != "" {
		u = strings.ReplaceAll(u, APIKeyPlaceholder, p.apiKey)
	}
	return u
}

// Dial connects to the first reachable endpoint in order.
func (p *Pool) Dial(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connectFrom(ctx, 0, -1)
}

// connectFrom tries every URL starting at start, skipping skip. Caller holds mu.
func (p *Pool) connectFrom(ctx context.Context, start, skip int) error {
	var lastErr error
	for n := 0; n < len(p.urls); n++ {
		i := (start + n) % len(p.urls)
		if i == skip {
			continue
		}
		backend, err := p.tryEndpoint(ctx, i)
		if err != nil {
			lastErr = err
			p.logger.Warn("RPC endpoint unreachable",
				zap.Int("endpoint", i),
				zap.String("host", redact(p.urls[i])),
				zap.Error(err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if p.current != nil {
			p.current.Close()
		}
		p.current = backend
		p.index = i
		p.logger.Info("Connected to RPC endpoint",
			zap.Int("endpoint", i),
			zap.String("host", redact(p.urls[i])))
		return nil
	}
	if lastErr == nil {
		lastErr = errors.New("no alternative endpoint")
	}
	return fmt.Errorf("%w: %v", ErrAllEndpointsFailed, lastErr)
}

func (p *Pool) tryEndpoint(ctx context.Context, i int) (Backend, error) {
	dialCtx, cancel := context.WithTimeout(ctx, p.dialTimeout)
	defer cancel()

	backend, err := p.dial(dialCtx, p.URL(i))
	if err != nil {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}
	id, err := backend.ChainID(dialCtx)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}
	if p.chainID != 0 && id.Int64() != p.chainID {
		backend.Close()
		return nil, fmt.Errorf("endpoint serves chain %s, want %d", id, p.chainID)
	}
	return backend, nil
}

// Current returns the connected backend, dialing if needed.
func (p *Pool) Current(ctx context.Context) (Backend, error) {
	p.mu.RLock()
	b := p.current
	p.mu.RUnlock()
	if b != nil {
		return b, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		if err := p.connectFrom(ctx, 0, -1); err != nil {
			return nil, err
		}
	}
	return p.current, nil
}

// Endpoint returns the index of the connected URL, or -1.
func (p *Pool) Endpoint() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.index
}

// failover moves to the next endpoint unless another caller already did.
func (p *Pool) failover(ctx context.Context, failed Backend) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != failed {
		return nil
	}
	return p.connectFrom(ctx, p.index+1, p.index)
}

// Close releases the current connection.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		p.current.Close()
		p.current = nil
		p.index = -1
	}
}

func do[T any](ctx context.Context, p *Pool, fn func(Backend) (T, error)) (T, error) {
	var zero T
	backend, err := p.Current(ctx)
	if err != nil {
		return zero, err
	}
	v, err := fn(backend)
	if err == nil || !isTransportError(ctx, err) {
		return v, err
	}

	p.logger.Warn("RPC call failed at transport level, failing over", zap.Error(err))
	if ferr := p.failover(ctx, backend); ferr != nil {
		return zero, ferr
	}
	backend, err = p.Current(ctx)
	if err != nil {
		return zero, err
	}
	return fn(backend)
}

// isTransportError separates unreachable endpoints from answers the node
// gave, such as reverts, which must not trigger a failover.
func isTransportError(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var rpcErr gethrpc.Error
	if errors.As(err, &rpcErr) {
		return false
	}
	var httpErr gethrpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500 || httpErr.StatusCode == 429
	}
	return true
}

// CodeAt implements contracts.Caller with failover.
func (p *Pool) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return do(ctx, p, func(b Backend) ([]byte, error) { return b.CodeAt(ctx, contract, blockNumber) })
}

// CallContract implements contracts.Caller with failover.
func (p *Pool) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return do(ctx, p, func(b Backend) ([]byte, error) { return b.CallContract(ctx, call, blockNumber) })
}

// FilterLogs runs an eth_getLogs query with failover.
func (p *Pool) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	return do(ctx, p, func(b Backend) ([]types.Log, error) { return b.FilterLogs(ctx, q) })
}

// BlockNumber returns the head block with failover.
func (p *Pool) BlockNumber(ctx context.Context) (uint64, error) {
	return do(ctx, p, func(b Backend) (uint64, error) { return b.BlockNumber(ctx) })
}

// ChainID returns the connected chain id.
func (p *Pool) ChainID(ctx context.Context) (*big.Int, error) {
	return do(ctx, p, func(b Backend) (*big.Int, error) { return b.ChainID(ctx) })
}

// redact keeps the host part of a URL for logs; paths often carry keys.
func redact(url string) string {
	rest := url
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.IndexAny(rest, "/?"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
