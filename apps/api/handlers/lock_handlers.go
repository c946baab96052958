package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opus-finance/opus-api/apps/api/constants"
	"github.com/opus-finance/opus-api/libs/go/helpers"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
)

// LockHandler exposes the lock readers for an account
type LockHandler struct {
	common       *CommonServices
	probeService interfaces.LockProbeService
	indexer      interfaces.EventLockIndexer
}

// Use types from the centralized packages
type LockProbeResponse = responses.LockProbeResponse
type IndexedLocksResponse = responses.IndexedLocksResponse

// NewLockHandler creates a lock handler. indexer may be nil when event
// indexing is not configured.
func NewLockHandler(common *CommonServices, probeService interfaces.LockProbeService, indexer interfaces.EventLockIndexer) *LockHandler {
	return &LockHandler{
		common:       common,
		probeService: probeService,
		indexer:      indexer,
	}
}

// GetLocks godoc
// @Summary Probe an account's locks
// @Description Tries each known lock accessor on the staking contract in order and returns the first non-empty answer with every attempt made. Responds 404 "no data found" when nothing answers.
// @Tags locks
// @Produce json
// @Param address path string true "Account address"
// @Success 200 {object} LockProbeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /accounts/{address}/locks [get]
func (h *LockHandler) GetLocks(c *gin.Context) {
	account, ok := parseAddressParam(c, "address")
	if !ok {
		return
	}

	result, err := h.probeService.Probe(c.Request.Context(), account)
	if err != nil {
		handleServiceError(c, err, "Failed to probe locks")
		return
	}
	sendSuccess(c, http.StatusOK, helpers.ToLockProbeResponse(account.Hex(), *result))
}

// GetEventLocks godoc
// @Summary Event-indexed locks
// @Description Rebuilds the account's open locks from LockCreated and LockReleased logs, resuming from stored progress
// @Tags locks
// @Produce json
// @Param address path string true "Account address"
// @Success 200 {object} IndexedLocksResponse
// @Failure 400 {object} ErrorResponse
// @Failure 501 {object} ErrorResponse
// @Router /accounts/{address}/locks/events [get]
func (h *LockHandler) GetEventLocks(c *gin.Context) {
	if h.indexer == nil {
		sendError(c, http.StatusNotImplemented, constants.FeatureUnavailable, errors.New("event indexer not configured"))
		return
	}
	account, ok := parseAddressParam(c, "address")
	if !ok {
		return
	}

	state, err := h.indexer.IndexedLocks(c.Request.Context(), account)
	if err != nil {
		handleServiceError(c, err, "Failed to index lock events")
		return
	}
	sendSuccess(c, http.StatusOK, helpers.ToIndexedLocksResponse(*state))
}
