package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names reported by the OpenTelemetry recorder.
const (
	MetricRequests        = "tba.client.requests"
	MetricRequestDuration = "tba.client.request.duration"
	MetricRetries         = "tba.client.retries"
	MetricRateLimitWait   = "tba.client.rate_limit.wait"
	MetricCacheLookups    = "tba.client.cache.lookups"
	MetricErrors          = "tba.client.errors"
)

type otelRecorder struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	retries  metric.Int64Counter
	rateWait metric.Float64Histogram
	cache    metric.Int64Counter
	errors   metric.Int64Counter
}

// NewOTelMetrics returns a MetricsRecorder that reports through meter.
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NewOTelMetrics(meter metric.Meter) (MetricsRecorder, error) {
	var (
		r   otelRecorder
		err error
	)

	if r.requests, err = meter.Int64Counter(MetricRequests,
		metric.WithDescription("Completed HTTP round trips")); err != nil {
		return nil, errors.Wrap(err, MetricRequests)
	}
	if r.duration, err = meter.Float64Histogram(MetricRequestDuration,
		metric.WithDescription("HTTP round trip time"), metric.WithUnit("s")); err != nil {
		return nil, errors.Wrap(err, MetricRequestDuration)
	}
	if r.retries, err = meter.Int64Counter(MetricRetries,
		metric.WithDescription("Retried requests")); err != nil {
		return nil, errors.Wrap(err, MetricRetries)
	}
	if r.rateWait, err = meter.Float64Histogram(MetricRateLimitWait,
		metric.WithDescription("Time spent waiting for the local rate limiter"), metric.WithUnit("s")); err != nil {
		return nil, errors.Wrap(err, MetricRateLimitWait)
	}
	if r.cache, err = meter.Int64Counter(MetricCacheLookups,
		metric.WithDescription("Response cache lookups by outcome")); err != nil {
		return nil, errors.Wrap(err, MetricCacheLookups)
	}
	if r.errors, err = meter.Int64Counter(MetricErrors,
		metric.WithDescription("Client errors by operation and type")); err != nil {
		return nil, errors.Wrap(err, MetricErrors)
	}

	return &r, nil
}

// The recorder interface carries no context; measurements are not tied to spans.

func (r *otelRecorder) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.String("http.status_code", strconv.Itoa(statusCode)),
	)
	r.requests.Add(context.Background(), 1, attrs)
	r.duration.Record(context.Background(), duration.Seconds(), attrs)
}

func (r *otelRecorder) RecordRetry(attempt int, endpoint string) {
	r.retries.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("http.route", endpoint),
		attribute.Int("attempt", attempt),
	))
}

func (r *otelRecorder) RecordRateLimit(endpoint string, wait time.Duration) {
	r.rateWait.Record(context.Background(), wait.Seconds(), metric.WithAttributes(
		attribute.String("http.route", endpoint),
	))
}

func (r *otelRecorder) RecordCache(endpoint string, hit bool) {
	r.cache.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("http.route", endpoint),
		attribute.Bool("hit", hit),
	))
}

func (r *otelRecorder) RecordError(operation, errorType string) {
	r.errors.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("error.type", errorType),
	))
}
