package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"coursehub/internal/metrics"
)

// RequestMetrics records count and latency of every request by route
// template, so path parameters do not explode label cardinality.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
