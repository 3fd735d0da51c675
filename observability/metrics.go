package observability

import "time"

// MetricsRecorder receives client-side measurements. Paths are normalised so
// team, event and match keys do not explode label cardinality.
type MetricsRecorder interface {
	// RecordHTTPRequest records one completed round trip.
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)

	// RecordRetry records a retry attempt for an endpoint.
	RecordRetry(attempt int, endpoint string)

	// RecordRateLimit records time spent waiting for the local rate limiter.
	RecordRateLimit(endpoint string, wait time.Duration)

	// RecordCache records whether a GET was answered from the response cache.
	RecordCache(endpoint string, hit bool)

	// RecordError records an error occurrence.
	RecordError(operation, errorType string)
}

type noopMetricsRecorder struct{}

// NoopMetricsRecorder returns a recorder that does nothing. It is the default.
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NoopMetricsRecorder() MetricsRecorder {
	return noopMetricsRecorder{}
}

func (noopMetricsRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}
func (noopMetricsRecorder) RecordRetry(int, string)                              {}
func (noopMetricsRecorder) RecordRateLimit(string, time.Duration)                {}
func (noopMetricsRecorder) RecordCache(string, bool)                             {}
func (noopMetricsRecorder) RecordError(string, string)                           {}
