package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/opus-finance/opus-api/libs/go/mocks"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/testutil"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestTokenHandler_GetToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokenService := mocks.NewMockTokenService(ctrl)
	handler := NewTokenHandler(NewCommonServices(nil), tokenService)

	t.Run("reads token info", func(t *testing.T) {
		tokenService.EXPECT().TokenInfo(gomock.Any()).Return(&business.TokenInfo{
			Address:     testutil.TokenAddress.Hex(),
			Name:        "Opus",
			Symbol:      "OPUS",
			Decimals:    18,
			TotalSupply: "1000000000",
			ChainID:     369,
		}, nil)
		tokenService.EXPECT().AddTokenURI().Return("ethereum:" + testutil.TokenAddress.Hex() + "@369")

		w, c := newTestContext(http.MethodGet, "/api/v1/token", nil)
		handler.GetToken(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[TokenResponse](t, w)
		assert.Equal(t, "token", resp.Object)
		assert.Equal(t, "OPUS", resp.Symbol)
		assert.Equal(t, int64(369), resp.ChainID)
		assert.Contains(t, resp.AddTokenURI, "@369")
	})

	t.Run("rpc unreachable", func(t *testing.T) {
		tokenService.EXPECT().TokenInfo(gomock.Any()).
			Return(nil, fmt.Errorf("failed to read name: %w", services.ErrAllEndpointsFailed))

		w, c := newTestContext(http.MethodGet, "/api/v1/token", nil)
		handler.GetToken(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("unexpected failure", func(t *testing.T) {
		tokenService.EXPECT().TokenInfo(gomock.Any()).Return(nil, errors.New("boom"))

		w, c := newTestContext(http.MethodGet, "/api/v1/token", nil)
		handler.GetToken(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to read token", decodeError(t, w).Error)
	})
}

func TestTokenHandler_GetTokenQR(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokenService := mocks.NewMockTokenService(ctrl)
	handler := NewTokenHandler(NewCommonServices(nil), tokenService)
	png := []byte{0x89, 'P', 'N', 'G'}

	tests := []struct {
		name       string
		query      string
		wantSize   int
		wantStatus int
	}{
		{name: "default size", query: "", wantSize: 0, wantStatus: http.StatusOK},
		{name: "explicit size", query: "?size=512", wantSize: 512, wantStatus: http.StatusOK},
		{name: "too small", query: "?size=8", wantStatus: http.StatusBadRequest},
		{name: "not a number", query: "?size=big", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantStatus == http.StatusOK {
				tokenService.EXPECT().AddTokenQR(tt.wantSize).Return(png, nil)
			}

			w, c := newTestContext(http.MethodGet, "/api/v1/token/qr"+tt.query, nil)
			handler.GetTokenQR(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
				assert.Equal(t, png, w.Body.Bytes())
			}
		})
	}
}
