package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/opus-finance/opus-api/libs/go/constants"
	"github.com/opus-finance/opus-api/libs/go/mocks"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestStatisticsHandler_GetStatistics(t *testing.T) {
	ctrl := gomock.NewController(t)
	statsService := mocks.NewMockStatisticsService(ctrl)
	now := time.Now()

	statsService.EXPECT().Statistics(gomock.Any()).Return(&business.TokenStatistics{
		TotalSupply:       business.StatValue{Value: 1_000_000, Source: constants.StatSourceAPI, UpdatedAt: now},
		CirculatingSupply: business.StatValue{Value: 600_000, Source: constants.StatSourceAPI, UpdatedAt: now},
		Holders:           business.StatValue{Value: 2_000, Source: constants.StatSourceAPI, UpdatedAt: now},
		Stakers:           business.StatValue{Value: 540, Source: constants.StatSourceEstimate, UpdatedAt: now},
		TotalStaked:       business.StatValue{Value: constants.FallbackTotalStaked, Source: constants.StatSourceFallback, UpdatedAt: now},
	}, nil)

	w, c := newTestContext(http.MethodGet, "/api/v1/stats", nil)
	NewStatisticsHandler(NewCommonServices(nil), statsService).GetStatistics(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[StatisticsResponse](t, w)
	assert.Equal(t, "statistics", resp.Object)
	assert.Equal(t, "2,000", resp.Holders.Display)
	assert.Equal(t, constants.StatSourceEstimate, resp.Stakers.Source)
	assert.Equal(t, constants.StatSourceFallback, resp.TotalStaked.Source)
}
