package middleware

import (
	"strconv"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/observability"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request latency by route template, so path
// parameters do not explode the label set. Unmatched routes share one label.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observability.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
