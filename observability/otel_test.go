package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s is not an int64 sum", m.Name)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestOTelMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	recorder, err := NewOTelMetrics(provider.Meter("go-tba-test"))
	require.NoError(t, err)

	recorder.RecordHTTPRequest("GET", "/api/v3/team/:team", 200, 120*time.Millisecond)
	recorder.RecordHTTPRequest("GET", "/api/v3/team/:team", 304, 40*time.Millisecond)
	recorder.RecordRetry(1, "/api/v3/status")
	recorder.RecordRateLimit("/api/v3/status", 250*time.Millisecond)
	recorder.RecordCache("/api/v3/status", true)
	recorder.RecordCache("/api/v3/status", false)
	recorder.RecordError("http_request", "NetworkError")

	metrics := collect(t, reader)

	assert.Equal(t, int64(2), sumOf(t, metrics[MetricRequests]))
	assert.Equal(t, int64(1), sumOf(t, metrics[MetricRetries]))
	assert.Equal(t, int64(2), sumOf(t, metrics[MetricCacheLookups]))
	assert.Equal(t, int64(1), sumOf(t, metrics[MetricErrors]))

	hist, ok := metrics[MetricRequestDuration].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)

	// Status codes split the request series.
	requests, ok := metrics[MetricRequests].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, requests.DataPoints, 2)

	cache, ok := metrics[MetricCacheLookups].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	for _, dp := range cache.DataPoints {
		hit, found := dp.Attributes.Value(attribute.Key("hit"))
		require.True(t, found)
		assert.Equal(t, attribute.BOOL, hit.Type())
	}
}
