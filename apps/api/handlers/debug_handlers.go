package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opus-finance/opus-api/apps/api/constants"
	"github.com/opus-finance/opus-api/libs/go/helpers"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/types/api/requests"
	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
	"github.com/opus-finance/opus-api/libs/go/types/business"
)

// ScanLockSourceName names the lock source a debug scan installs on a session.
const ScanLockSourceName = "scan"

// DebugHandler exposes contract introspection and the lock index scanner
type DebugHandler struct {
	common         *CommonServices
	detector       interfaces.CapabilityDetector
	scanner        interfaces.LockScanner
	sessionService interfaces.SessionService
	defaultScan    business.ScanConfig
}

// Use types from the centralized packages
type ScanLocksRequest = requests.ScanLocksRequest
type LockScanResponse = responses.LockScanResponse
type CapabilitiesResponse = responses.CapabilitiesResponse

// NewDebugHandler creates a debug handler. defaultScan bounds scans that
// name no preset.
func NewDebugHandler(
	common *CommonServices,
	detector interfaces.CapabilityDetector,
	scanner interfaces.LockScanner,
	sessionService interfaces.SessionService,
	defaultScan business.ScanConfig,
) *DebugHandler {
	return &DebugHandler{
		common:         common,
		detector:       detector,
		scanner:        scanner,
		sessionService: sessionService,
		defaultScan:    defaultScan,
	}
}

// GetCapabilities godoc
// @Summary Detect staking capabilities
// @Description Inspects the staking contract bytecode for the known lock accessors
// @Tags debug
// @Produce json
// @Success 200 {object} CapabilitiesResponse
// @Failure 503 {object} ErrorResponse
// @Router /debug/capabilities [get]
func (h *DebugHandler) GetCapabilities(c *gin.Context) {
	caps, err := h.detector.Detect(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to detect capabilities")
		return
	}
	sendSuccess(c, http.StatusOK, helpers.ToCapabilitiesResponse(*caps))
}

// ScanLocks godoc
// @Summary Scan lock indices
// @Description Reads mapUserInfoLock(address, i) for increasing i within the preset or explicit bounds. With session_id, the found locks become that session's lock source.
// @Tags debug
// @Accept json
// @Produce json
// @Param request body ScanLocksRequest true "Scan bounds"
// @Success 200 {object} LockScanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /debug/scan [post]
func (h *DebugHandler) ScanLocks(c *gin.Context) {
	var req ScanLocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}
	account, err := helpers.ParseAddress(req.Address)
	if err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidAddress, err)
		return
	}

	var sessionID uuid.UUID
	if req.SessionID != "" {
		if sessionID, err = uuid.Parse(req.SessionID); err != nil {
			sendError(c, http.StatusBadRequest, constants.InvalidSessionID, err)
			return
		}
		// Fail before scanning when the session is gone.
		if _, err := h.sessionService.Get(sessionID); err != nil {
			handleServiceError(c, err, "Failed to load session")
			return
		}
	}

	cfg, err := h.scanConfig(req)
	if err != nil {
		handleServiceError(c, err, constants.InvalidScanConfig)
		return
	}

	result, err := h.scanner.Scan(c.Request.Context(), account, cfg)
	if err != nil && (result == nil || !errors.Is(err, context.Canceled)) {
		handleServiceError(c, err, "Failed to scan locks")
		return
	}

	resp := helpers.ToLockScanResponse(account.Hex(), *result)
	// A cancelled scan is partial and must not replace the session's locks.
	if sessionID != uuid.Nil && result.StoppedBy != business.ScanStoppedCancelled {
		err := h.sessionService.SetLockSource(sessionID, ScanLockSourceName, services.NewStaticLockSource(result.Locks))
		if err != nil {
			handleServiceError(c, err, "Failed to install scan results")
			return
		}
		if _, err := h.sessionService.Refresh(c.Request.Context(), sessionID); err != nil {
			h.common.GetLogger().Sugar().Warnw("Session refresh after scan failed",
				"session_id", sessionID.String(), "error", err)
		}
		resp.SessionID = sessionID.String()
	}
	sendSuccess(c, http.StatusOK, resp)
}

// scanConfig resolves the request's bounds: the named preset or the
// handler default, with explicit fields applied on top.
func (h *DebugHandler) scanConfig(req ScanLocksRequest) (business.ScanConfig, error) {
	cfg := h.defaultScan
	if req.Preset != "" {
		preset, err := services.ScanPreset(req.Preset)
		if err != nil {
			return cfg, err
		}
		cfg = preset
	}
	cfg.StartIndex = req.StartIndex
	if req.Ceiling > 0 {
		cfg.Ceiling = req.Ceiling
	}
	if req.EmptyRunLimit > 0 {
		cfg.EmptyRunLimit = req.EmptyRunLimit
	}
	return cfg, nil
}
