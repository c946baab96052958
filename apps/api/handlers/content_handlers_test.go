package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/opus-finance/opus-api/libs/go/mocks"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestContentHandler(t *testing.T) {
	handler := NewContentHandler(NewCommonServices(nil), services.NewContentService())

	t.Run("lists pages", func(t *testing.T) {
		w, c := newTestContext(http.MethodGet, "/api/v1/content", nil)
		handler.ListPages(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[responses.ListResponse](t, w)
		assert.Equal(t, "list", resp.Object)
		assert.ElementsMatch(t, []interface{}{"home", "logos", "purple-paper", "tiers", "tokenomics"}, resp.Data)
	})

	t.Run("known page", func(t *testing.T) {
		w, c := newTestContext(http.MethodGet, "/api/v1/content/tiers", nil, gin.Param{Key: "page", Value: "tiers"})
		handler.GetPage(c)

		require.Equal(t, http.StatusOK, w.Code)
		page := decodeBody[ContentPage](t, w)
		assert.Equal(t, "tiers", page.Slug)
		assert.NotEmpty(t, page.Sections)
	})

	t.Run("unknown page", func(t *testing.T) {
		w, c := newTestContext(http.MethodGet, "/api/v1/content/roadmap", nil, gin.Param{Key: "page", Value: "roadmap"})
		handler.GetPage(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestContentHandler_ServiceFailure(t *testing.T) {
	content := mocks.NewMockContentService(gomock.NewController(t))
	content.EXPECT().Page("home").Return(nil, errors.New("template broken"))

	w, c := newTestContext(http.MethodGet, "/api/v1/content/home", nil, gin.Param{Key: "page", Value: "home"})
	NewContentHandler(NewCommonServices(nil), content).GetPage(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to load page", decodeError(t, w).Error)
}
