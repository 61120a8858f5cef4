package middleware

import (
	"strconv"
	"time"

	"github.com/abim/abim-backend/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latencies under the matched route
// template, so /api/courses/1 and /api/courses/2 share one series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		metrics.RequestStarted()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestFinished(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
