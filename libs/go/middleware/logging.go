package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"go.uber.org/zap"
)

// Request bodies larger than this are not echoed into development logs.
const maxLoggedBody = 16 << 10

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	if w.body.Len() < maxLoggedBody {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// EnhancedLoggingMiddleware logs request and response bodies in development.
// Only JSON bodies are decoded; the QR endpoint's PNG is logged by size.
func EnhancedLoggingMiddleware(isDevelopment bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isDevelopment || logger.Log == nil {
			c.Next()
			return
		}

		start := time.Now()
		log := logger.Log.With(
			zap.String("component", string(logger.ComponentMiddleware)),
			zap.String("correlation_id", GetCorrelationID(c)),
		)

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBody+1))
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		var requestJSON interface{}
		if strings.HasPrefix(c.GetHeader("Content-Type"), "application/json") && len(requestBody) > 0 && len(requestBody) <= maxLoggedBody {
			_ = json.Unmarshal(requestBody, &requestJSON)
		}

		log.Debug("Detailed request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Any("body", requestJSON),
			zap.Int("body_size", len(requestBody)),
		)

		blw := &bodyLogWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		var responseJSON interface{}
		if strings.HasPrefix(c.Writer.Header().Get("Content-Type"), "application/json") && blw.body.Len() > 0 {
			if err := json.Unmarshal(blw.body.Bytes(), &responseJSON); err != nil {
				responseJSON = blw.body.String()
			}
		}

		log.Debug("Detailed response",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.Any("body", responseJSON),
			zap.Int("body_size", c.Writer.Size()),
		)

		for _, err := range c.Errors {
			log.Error("Request error", zap.Error(err.Err), zap.Any("meta", err.Meta))
		}
	}
}

// RequestLoggingMiddleware logs one line per completed request
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if logger.Log == nil {
			return
		}
		fields := []zap.Field{
			zap.String("correlation_id", GetCorrelationID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		switch {
		case c.Writer.Status() >= 500:
			logger.Log.Error("Request completed", fields...)
		case c.Writer.Status() >= 400:
			logger.Log.Warn("Request completed", fields...)
		default:
			logger.Log.Info("Request completed", fields...)
		}
	}
}
