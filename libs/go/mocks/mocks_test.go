package mocks

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/opus-finance/opus-api/libs/go/client/wallet"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestMockProviderWithHelper(t *testing.T) {
	provider := NewMockProviderForTest(t)
	account := common.HexToAddress("0x742d35Cc6634C0532925a3b8D12c67d8B12b9873")

	provider.EXPECT().
		RequestAccounts(gomock.Any()).
		Return([]common.Address{account}, nil).
		Times(1)
	provider.EXPECT().
		WatchAsset(gomock.Any(), gomock.Any()).
		Return(false, wallet.ErrUserRejected)

	ctx := context.Background()
	accounts, err := provider.RequestAccounts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []common.Address{account}, accounts)

	added, err := provider.WatchAsset(ctx, wallet.Asset{Symbol: "OPUS"})
	assert.False(t, added)
	assert.True(t, errors.Is(err, wallet.ErrUserRejected))
}

func TestMockBalanceSourceWithHelper(t *testing.T) {
	source := NewMockBalanceSourceForTest(t)
	account := common.HexToAddress("0x01")

	source.EXPECT().WalletBalance(gomock.Any(), account).Return(big.NewInt(5), nil)
	source.EXPECT().StakedBalance(gomock.Any(), account).Return(nil, errors.New("reverted"))

	balance, err := source.WalletBalance(context.Background(), account)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), balance.Int64())

	_, err = source.StakedBalance(context.Background(), account)
	assert.Error(t, err)
}
