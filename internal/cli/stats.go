package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/frc1418/go-tba/observability"
)

const meterName = "github.com/frc1418/go-tba/cli"

// newStats returns a recorder backed by an in-process meter and the reader
// that collects from it.
func newStats() (observability.MetricsRecorder, *sdkmetric.ManualReader, error) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	recorder, err := observability.NewOTelMetrics(provider.Meter(meterName))
	if err != nil {
		return nil, nil, errors.Wrap(err, "create metrics")
	}
	return recorder, reader, nil
}

// requestStats is the summary printed by --stats.
type requestStats struct {
	requests  int64
	cacheHits int64
	retries   int64
	errors    int64
	seconds   float64
}

func collectStats(ctx context.Context, reader *sdkmetric.ManualReader) (requestStats, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return requestStats{}, errors.Wrap(err, "collect metrics")
	}

	var s requestStats
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					switch m.Name {
					case observability.MetricRequests:
						s.requests += dp.Value
					case observability.MetricRetries:
						s.retries += dp.Value
					case observability.MetricErrors:
						s.errors += dp.Value
					case observability.MetricCacheLookups:
						if hit, ok := dp.Attributes.Value(attribute.Key("hit")); ok && hit.AsBool() {
							s.cacheHits += dp.Value
						}
					}
				}
			case metricdata.Histogram[float64]:
				if m.Name == observability.MetricRequestDuration {
					for _, dp := range data.DataPoints {
						s.seconds += dp.Sum
					}
				}
			}
		}
	}

	return s, nil
}

func (s requestStats) print(w io.Writer) {
	fmt.Fprintf(w, "requests: %d, cache hits: %d, retries: %d, errors: %d, time: %.3fs\n",
		s.requests, s.cacheHits, s.retries, s.errors, s.seconds)
}
