package middleware

import (
	"time"

	"reddit-insight-backend/internal/telemetry"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request count and duration per route.
func MetricsMiddleware(metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(c.Request.Context(), route, c.Writer.Status(), time.Since(start).Seconds())
	}
}
