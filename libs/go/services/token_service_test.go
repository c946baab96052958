package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/opus-finance/opus-api/libs/go/contracts"
	"github.com/opus-finance/opus-api/libs/go/mocks"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTokenService_TokenInfo(t *testing.T) {
	chain := testutil.NewStubChain()
	chain.Deploy(testutil.TokenAddress, contracts.ERC20())
	chain.Returns(testutil.TokenAddress, "name", "Opus")
	chain.Returns(testutil.TokenAddress, "symbol", "OPUS")
	chain.Returns(testutil.TokenAddress, "decimals", uint8(18))
	chain.Returns(testutil.TokenAddress, "totalSupply", testutil.Tokens(1_000_000_000))
	chain.Returns(testutil.TokenAddress, "balanceOf", testutil.Tokens(12))

	svc := services.NewTokenService(chain, testutil.TokenAddress, 0)

	info, err := svc.TokenInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Opus", info.Name)
	assert.Equal(t, "OPUS", info.Symbol)
	assert.Equal(t, uint8(18), info.Decimals)
	assert.Equal(t, "1000000000", info.TotalSupply)
	assert.Equal(t, int64(369), info.ChainID)

	balance, err := svc.BalanceOf(context.Background(), testutil.UserAddress)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Cmp(testutil.Tokens(12)))
}

func TestTokenService_ReadFailure(t *testing.T) {
	chain := testutil.NewStubChain()
	chain.Deploy(testutil.TokenAddress, contracts.ERC20())

	svc := services.NewTokenService(chain, testutil.TokenAddress, 369)
	_, err := svc.TokenInfo(context.Background())
	assert.ErrorIs(t, err, testutil.ErrReverted)
	_, err = svc.BalanceOf(context.Background(), testutil.UserAddress)
	assert.Error(t, err)
}

func TestTokenService_AddTokenQR(t *testing.T) {
	svc := services.NewTokenService(testutil.NewStubChain(), testutil.TokenAddress, 369)

	assert.Equal(t, "ethereum:"+testutil.TokenAddress.Hex()+"@369", svc.AddTokenURI())

	png, err := svc.AddTokenQR(0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestTokenService_CallFailure(t *testing.T) {
	caller := mocks.NewMockCaller(gomock.NewController(t))
	caller.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused")).AnyTimes()

	svc := services.NewTokenService(caller, testutil.TokenAddress, 0)

	_, err := svc.TokenInfo(context.Background())
	assert.ErrorContains(t, err, "connection refused")

	_, err = svc.BalanceOf(context.Background(), testutil.UserAddress)
	assert.Error(t, err)
}
