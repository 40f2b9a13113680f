package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/nouhaa3/invisithreat/internal/app/observability/metrics"
)

// ObservabilityMiddleware records request counters and latency histograms.
// Tracing is handled separately by the otelgin middleware.
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m := metrics.Get()
		ctx := c.Request.Context()

		m.HTTPRequestsTotal.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("method", c.Request.Method),
				attribute.String("path", path),
				attribute.String("status", strconv.Itoa(statusCode)),
			))

		m.HTTPRequestDuration.Record(ctx, duration,
			metric.WithAttributes(
				attribute.String("method", c.Request.Method),
				attribute.String("path", path),
			))

		if path == "/auth/login" || path == "/auth/signup" {
			m.AuthRequestsTotal.Add(ctx, 1,
				metric.WithAttributes(
					attribute.String("endpoint", path),
					attribute.String("status", strconv.Itoa(statusCode)),
				))
		}
	}
}
