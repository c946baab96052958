package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opus-finance/opus-api/libs/go/helpers"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
)

// StatisticsHandler serves aggregate token statistics
type StatisticsHandler struct {
	common            *CommonServices
	statisticsService interfaces.StatisticsService
}

// Use types from the centralized packages
type StatisticsResponse = responses.StatisticsResponse

// NewStatisticsHandler creates a statistics handler
func NewStatisticsHandler(common *CommonServices, statisticsService interfaces.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{
		common:            common,
		statisticsService: statisticsService,
	}
}

// GetStatistics godoc
// @Summary Get token statistics
// @Description Total and circulating supply, holders, stakers and total staked. Each figure names its source (api, subgraph, estimate or fallback); upstream failures never fail the request.
// @Tags stats
// @Produce json
// @Success 200 {object} StatisticsResponse
// @Router /stats [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	stats, err := h.statisticsService.Statistics(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to load statistics")
		return
	}
	sendSuccess(c, http.StatusOK, helpers.ToStatisticsResponse(*stats))
}
