package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kitchenpos/backend/internal/infrastructure/telemetry"
)

// HTTPMetrics records a request count and latency per route template.
// A nil recorder yields a pass-through handler.
func HTTPMetrics(recorder *telemetry.HTTPMetrics) gin.HandlerFunc {
	if recorder == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		recorder.Record(c.Request.Context(), c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
