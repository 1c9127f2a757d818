package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/netzone/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records latency and count per route template, so /domain/:name
// stays one series however many names are requested.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		metrics.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	}
}
