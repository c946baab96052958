package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/types/business"
)

// ContentHandler serves the static informational pages
type ContentHandler struct {
	common         *CommonServices
	contentService interfaces.ContentService
}

// Use types from the centralized packages
type ContentPage = business.ContentPage

// NewContentHandler creates a content handler
func NewContentHandler(common *CommonServices, contentService interfaces.ContentService) *ContentHandler {
	return &ContentHandler{
		common:         common,
		contentService: contentService,
	}
}

// ListPages godoc
// @Summary List content pages
// @Description Returns the slugs of the available pages
// @Tags content
// @Produce json
// @Success 200 {object} responses.ListResponse
// @Router /content [get]
func (h *ContentHandler) ListPages(c *gin.Context) {
	sendList(c, h.contentService.Slugs())
}

// GetPage godoc
// @Summary Get content page
// @Description Returns a static page: home, tokenomics, tiers, purple-paper or logos
// @Tags content
// @Produce json
// @Param page path string true "Page slug"
// @Success 200 {object} ContentPage
// @Failure 404 {object} ErrorResponse
// @Router /content/{page} [get]
func (h *ContentHandler) GetPage(c *gin.Context) {
	page, err := h.contentService.Page(c.Param("page"))
	if err != nil {
		handleServiceError(c, err, "Failed to load page")
		return
	}
	sendSuccess(c, http.StatusOK, page)
}
