package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/institute/backend/internal/infrastructure/logger"
	"github.com/institute/backend/internal/infrastructure/telemetry"
)

// httpDurationBuckets are latency boundaries in seconds
var httpDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(meter,
		"http_server_request_total", "Total number of HTTP requests", "{request}")
	if err != nil {
		return nil, err
	}
	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  httpDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	activeRequests, err := meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}
	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics records request count, latency and in-flight requests per
// route. A nil meter or an instrument error yields a pass-through.
func HTTPMetrics(meter metric.Meter) gin.HandlerFunc {
	if meter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	m, err := newHTTPMetrics(meter)
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		routeAttrs := []attribute.KeyValue{
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
		}

		m.activeRequests.Add(ctx, 1, metric.WithAttributes(routeAttrs...))
		c.Next()
		m.activeRequests.Add(ctx, -1, metric.WithAttributes(routeAttrs...))

		recordHTTPMetrics(ctx, m, c, routeAttrs, time.Since(start))
	}
}

func recordHTTPMetrics(ctx context.Context, m *httpMetrics, c *gin.Context, routeAttrs []attribute.KeyValue, elapsed time.Duration) {
	status := c.Writer.Status()
	attrs := append([]attribute.KeyValue{
		attribute.String("http.status_code", strconv.Itoa(status)),
		attribute.String("http.status_group", StatusGroup(status)),
	}, routeAttrs...)
	if centerID := c.GetString(logger.GinCenterIDKey); centerID != "" {
		attrs = append(attrs, telemetry.AttrCenterID.String(centerID))
	}

	m.requestTotal.Inc(ctx, attrs...)
	m.requestDuration.Record(ctx, elapsed.Seconds(), routeAttrs...)
}

// StatusGroup buckets a status code into 2xx, 3xx, 4xx or 5xx
func StatusGroup(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
