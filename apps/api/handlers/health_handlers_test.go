package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Health(t *testing.T) {
	handler := NewHealthHandler()

	tests := []struct {
		name string
		path string
	}{
		{name: "root health", path: "/health"},
		{name: "staged health", path: "/dev/health"},
	}

	router := gin.New()
	router.GET("/health", handler.Health)
	router.GET("/:stage/health", handler.Health)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			var response HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "ok", response.Status)
		})
	}
}

func TestHealthHandler_ResponseFormat(t *testing.T) {
	w, c := newTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler().Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func BenchmarkHealthHandler_Health(b *testing.B) {
	handler := NewHealthHandler()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
		handler.Health(c)
	}
}
