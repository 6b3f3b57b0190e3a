package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cover-merge/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	OutputFileKey = "outputFile"
	PageCountKey  = "pageCount"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		outputFile, _ := c.Get(OutputFileKey)
		pageCount, _ := c.Get(PageCountKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"bytes_out":   c.Writer.Size(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"output_file": outputFile,
			"page_count":  pageCount,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
