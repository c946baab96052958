package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/opus-finance/opus-api/libs/go/helpers"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
)

const maxQRSize = 1024

// TokenHandler serves on-chain token information
type TokenHandler struct {
	common       *CommonServices
	tokenService interfaces.TokenService
}

// Use types from the centralized packages
type TokenResponse = responses.TokenResponse

// NewTokenHandler creates a handler with interface dependencies
func NewTokenHandler(common *CommonServices, tokenService interfaces.TokenService) *TokenHandler {
	return &TokenHandler{
		common:       common,
		tokenService: tokenService,
	}
}

// GetToken godoc
// @Summary Get token info
// @Description Reads name, symbol, decimals and total supply of the OPUS token from chain
// @Tags token
// @Produce json
// @Success 200 {object} TokenResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /token [get]
func (h *TokenHandler) GetToken(c *gin.Context) {
	info, err := h.tokenService.TokenInfo(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to read token")
		return
	}

	sendSuccess(c, http.StatusOK, helpers.ToTokenResponse(*info, h.tokenService.AddTokenURI()))
}

// GetTokenQR godoc
// @Summary Add-token QR code
// @Description PNG QR code of the EIP-681 URI that adds OPUS to a mobile wallet
// @Tags token
// @Produce png
// @Param size query int false "Image size in pixels (64-1024)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Router /token/qr [get]
func (h *TokenHandler) GetTokenQR(c *gin.Context) {
	size := 0
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > maxQRSize {
			sendError(c, http.StatusBadRequest, "size must be between 64 and 1024", err)
			return
		}
		size = n
	}

	png, err := h.tokenService.AddTokenQR(size)
	if err != nil {
		handleServiceError(c, err, "Failed to render QR code")
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}
