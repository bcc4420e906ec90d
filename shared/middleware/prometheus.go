package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/like-mike/fastgpt-gateway/metrics"
)

// fallbackRoute labels requests served by the catch-all handler so arbitrary
// inbound paths do not become metric labels.
const fallbackRoute = "fallback"

// PrometheusMiddleware records request count and latency per matched route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = fallbackRoute
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.HttpRequestsTotal.WithLabelValues(status, route).Inc()
		metrics.HttpRequestDurationSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler exposes Prometheus metrics.
func MetricsHandler(c *gin.Context) {
	c.Status(http.StatusOK)
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}
