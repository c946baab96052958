package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opus-finance/opus-api/apps/api/constants"
	"github.com/opus-finance/opus-api/libs/go/helpers"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/middleware"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// CommonServices holds dependencies shared by all handlers
type CommonServices struct {
	logger *zap.Logger
}

// Use types from the centralized packages
type ErrorResponse = responses.ErrorResponse
type SuccessResponse = responses.SuccessResponse

// NewCommonServices creates the shared handler dependencies
func NewCommonServices(log *zap.Logger) *CommonServices {
	if log == nil {
		log = logger.Log
	}
	return &CommonServices{logger: log}
}

// GetLogger returns the logger
func (s *CommonServices) GetLogger() *zap.Logger {
	return s.logger
}

// sendError logs the failure and sends a JSON error response carrying the
// request's correlation ID
func sendError(c *gin.Context, statusCode int, message string, err error) {
	correlationID := middleware.GetCorrelationID(c)

	fields := []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", correlationID),
		zap.Int("status", statusCode),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Debug(message, fields...)
	}

	c.JSON(statusCode, ErrorResponse{
		Error:         message,
		CorrelationID: correlationID,
	})
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// sendSuccessMessage is a helper function that sends a success message
func sendSuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, SuccessResponse{Message: message})
}

// sendList sends a list response
func sendList(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, responses.ListResponse{Object: "list", Data: items})
}

// handleServiceError maps service sentinel errors onto HTTP statuses.
// Anything unrecognised is a 500 with the given message.
func handleServiceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, services.ErrNoWallet):
		sendError(c, http.StatusBadRequest, constants.NoWallet, err)
	case errors.Is(err, services.ErrUserRejected):
		sendError(c, http.StatusForbidden, constants.UserRejected, err)
	case errors.Is(err, services.ErrSessionNotFound):
		sendError(c, http.StatusNotFound, constants.SessionNotFound, err)
	case errors.Is(err, services.ErrPageNotFound):
		sendError(c, http.StatusNotFound, constants.PageNotFound, err)
	case errors.Is(err, services.ErrNoLockData):
		sendError(c, http.StatusNotFound, constants.NoLockData, err)
	case errors.Is(err, services.ErrWatchAssetUnsupported):
		sendError(c, http.StatusNotImplemented, constants.WatchAssetUnsupported, err)
	case errors.Is(err, services.ErrInvalidScanConfig):
		sendError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, services.ErrAllEndpointsFailed):
		sendError(c, http.StatusServiceUnavailable, constants.RPCUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		sendError(c, http.StatusGatewayTimeout, constants.RequestTimedOut, err)
	default:
		sendError(c, http.StatusInternalServerError, message, pkgerrors.WithStack(err))
	}
}

// parseAddressParam reads and validates an address path parameter,
// responding with 400 when it is malformed.
func parseAddressParam(c *gin.Context, name string) (common.Address, bool) {
	addr, err := helpers.ParseAddress(c.Param(name))
	if err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidAddress, err)
		return common.Address{}, false
	}
	return addr, true
}

// parseSessionID reads the session_id path parameter.
func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidSessionID, err)
		return uuid.Nil, false
	}
	return id, true
}
