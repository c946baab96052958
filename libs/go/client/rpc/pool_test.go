package rpc

import (
	"context"
	"errors"
	"math/big"
	"net"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revertError struct{}

func (revertError) Error() string  { return "execution reverted" }
func (revertError) ErrorCode() int { return 3 }

type fakeBackend struct {
	url     string
	chainID int64
	callErr error
	closed  bool
	calls   int
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
	f.calls++
	if f.callErr != nil {
		return nil, f.callErr
	}
	return []byte(f.url), nil
}

func (f *fakeBackend) FilterLogs(context.Context, ethereum.FilterQuery) ([]types.Log, error) {
	return nil, nil
}

func (f *fakeBackend) BlockNumber(context.Context) (uint64, error) { return 1, nil }

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return big.NewInt(f.chainID), nil
}

func (f *fakeBackend) Close() { f.closed = true }

func fakeDialer(backends map[string]*fakeBackend, dialed *[]string) Dialer {
	return func(ctx context.Context, url string) (Backend, error) {
		*dialed = append(*dialed, url)
		b, ok := backends[url]
		if !ok {
			return nil, &net.OpError{Op: "dial", Err: errors.New("connection refused")}
		}
		return b, nil
	}
}

func TestPool_DialsFirstReachableInOrder(t *testing.T) {
	var dialed []string
	backends := map[string]*fakeBackend{
		"http://b": {url: "b", chainID: 369},
		"http://c": {url: "c", chainID: 369},
	}
	pool, err := NewPool([]string{"http://a", "http://b", "http://c"}, WithDialer(fakeDialer(backends, &dialed)))
	require.NoError(t, err)

	require.NoError(t, pool.Dial(context.Background()))
	assert.Equal(t, []string{"http://a", "http://b"}, dialed)
	assert.Equal(t, 1, pool.Endpoint())
}

func TestPool_AllEndpointsFail(t *testing.T) {
	var dialed []string
	pool, err := NewPool([]string{"http://a", "http://b"}, WithDialer(fakeDialer(nil, &dialed)))
	require.NoError(t, err)

	_, err = pool.CallContract(context.Background(), ethereum.CallMsg{}, nil)
	assert.True(t, errors.Is(err, ErrAllEndpointsFailed))
	assert.Len(t, dialed, 2)
}

func TestPool_RejectsWrongChain(t *testing.T) {
	var dialed []string
	wrong := &fakeBackend{url: "a", chainID: 1}
	backends := map[string]*fakeBackend{
		"http://a": wrong,
		"http://b": {url: "b", chainID: 369},
	}
	pool, err := NewPool([]string{"http://a", "http://b"}, WithChainID(369), WithDialer(fakeDialer(backends, &dialed)))
	require.NoError(t, err)

	out, err := pool.CallContract(context.Background(), ethereum.CallMsg{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "b", string(out))
	assert.True(t, wrong.closed)
}

func TestPool_FailoverOnTransportErrorOnly(t *testing.T) {
	var dialed []string
	first := &fakeBackend{url: "a", chainID: 369, callErr: &net.OpError{Op: "read", Err: errors.New("reset")}}
	second := &fakeBackend{url: "b", chainID: 369}
	pool, err := NewPool([]string{"http://a", "http://b"}, WithDialer(fakeDialer(map[string]*fakeBackend{
		"http://a": first,
		"http://b": second,
	}, &dialed)))
	require.NoError(t, err)

	out, err := pool.CallContract(context.Background(), ethereum.CallMsg{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "b", string(out))
	assert.Equal(t, 1, pool.Endpoint())
	assert.True(t, first.closed)

	second.callErr = revertError{}
	_, err = pool.CallContract(context.Background(), ethereum.CallMsg{}, nil)
	assert.ErrorContains(t, err, "execution reverted")
	assert.Equal(t, 1, pool.Endpoint(), "a revert must not move the pool")
}

func TestPool_URLAndRedact(t *testing.T) {
	pool, err := NewPool([]string{"https://rpc.example/v3/{api_key}"}, WithAPIKey("secret"))
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example/v3/secret", pool.URL(0))
	assert.Equal(t, "rpc.example", redact(pool.URL(0)))

	_, err = NewPool(nil)
	assert.Error(t, err)
}
