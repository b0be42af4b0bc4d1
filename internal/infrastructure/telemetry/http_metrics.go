package telemetry

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetrics counts requests and their latency per route.
type HTTPMetrics struct {
	requests *Counter
	duration *Histogram
}

// NewHTTPMetrics creates the HTTP server instruments.
func NewHTTPMetrics(meter metric.Meter) (*HTTPMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	requests, err := NewCounter(meter, "http_server_requests_total", "HTTP requests served", "{request}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, "http_server_request_duration_seconds",
		"HTTP request latency distribution", "s", HTTPDurationBuckets)
	if err != nil {
		return nil, err
	}
	return &HTTPMetrics{requests: requests, duration: duration}, nil
}

// Record registers one served request. route is the gin route template,
// never the raw path, to bound cardinality.
func (m *HTTPMetrics) Record(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	attrs := []attribute.KeyValue{
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
		AttrHTTPStatusCode.String(strconv.Itoa(status)),
	}
	m.requests.Inc(ctx, attrs...)
	m.duration.RecordDuration(ctx, elapsed, attrs...)
}
