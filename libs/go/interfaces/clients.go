package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/opus-finance/opus-api/libs/go/client/explorer"
	"github.com/opus-finance/opus-api/libs/go/client/subgraph"
	"github.com/opus-finance/opus-api/libs/go/contracts"
)

//go:generate mockgen -destination=../mocks/mock_clients.go -package=mocks github.com/opus-finance/opus-api/libs/go/interfaces ChainReader,ExplorerClient,SubgraphClient

// ChainReader is the read-only chain access used by services. The RPC pool
// and the test stub chain both satisfy it.
type ChainReader interface {
	contracts.Caller
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// ExplorerClient reads token aggregates from the block explorer.
type ExplorerClient interface {
	HolderCount(ctx context.Context, token common.Address) (int64, error)
	TokenDetails(ctx context.Context, token common.Address) (*explorer.TokenDetails, error)
	TokenBalance(ctx context.Context, holder, token common.Address) (*big.Int, error)
}

// SubgraphClient reads token and staking aggregates from the subgraph.
type SubgraphClient interface {
	TokenStats(ctx context.Context, token common.Address) (*subgraph.TokenStats, error)
}
