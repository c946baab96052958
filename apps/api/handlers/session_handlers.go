package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opus-finance/opus-api/apps/api/constants"
	"github.com/opus-finance/opus-api/libs/go/client/wallet"
	"github.com/opus-finance/opus-api/libs/go/helpers"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/types/api/requests"
	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
)

// SessionHandler manages read-only wallet sessions
type SessionHandler struct {
	common         *CommonServices
	sessionService interfaces.SessionService
}

// Use types from the centralized packages
type ConnectSessionRequest = requests.ConnectSessionRequest
type SessionResponse = responses.SessionResponse

// NewSessionHandler creates a session handler
func NewSessionHandler(common *CommonServices, sessionService interfaces.SessionService) *SessionHandler {
	return &SessionHandler{
		common:         common,
		sessionService: sessionService,
	}
}

// CreateSession godoc
// @Summary Connect a wallet session
// @Description Opens a session for an address and loads its wallet, staked and locked balances
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body ConnectSessionRequest true "Address to connect"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req ConnectSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}
	account, err := helpers.ParseAddress(req.Address)
	if err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidAddress, err)
		return
	}

	snap, err := h.sessionService.Connect(c.Request.Context(), wallet.NewStaticProvider(account))
	if err != nil {
		handleServiceError(c, err, "Failed to connect session")
		return
	}
	sendSuccess(c, http.StatusCreated, helpers.ToSessionResponse(*snap))
}

// GetSession godoc
// @Summary Get a wallet session
// @Description Returns the session with its last balance snapshot and summary lines
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	snap, err := h.sessionService.Get(id)
	if err != nil {
		handleServiceError(c, err, "Failed to load session")
		return
	}
	sendSuccess(c, http.StatusOK, helpers.ToSessionResponse(*snap))
}

// RefreshSession godoc
// @Summary Refresh session balances
// @Description Re-reads wallet, staked and locked balances. A failing read keeps its previous value.
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id}/refresh [post]
func (h *SessionHandler) RefreshSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	snap, err := h.sessionService.Refresh(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to refresh session")
		return
	}
	sendSuccess(c, http.StatusOK, helpers.ToSessionResponse(*snap))
}

// WatchAsset godoc
// @Summary Register the token with the wallet
// @Description Asks the session's wallet to track the OPUS token
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} ErrorResponse
// @Failure 501 {object} ErrorResponse
// @Router /sessions/{session_id}/watch-asset [post]
func (h *SessionHandler) WatchAsset(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	added, err := h.sessionService.WatchAsset(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Failed to register token")
		return
	}
	sendSuccess(c, http.StatusOK, gin.H{"added": added})
}

// DeleteSession godoc
// @Summary Disconnect a wallet session
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	if err := h.sessionService.Disconnect(id); err != nil {
		handleServiceError(c, err, "Failed to disconnect session")
		return
	}
	sendSuccessMessage(c, http.StatusOK, "session disconnected")
}
