package observability_test

import (
	"testing"
	"time"

	"github.com/frc1418/go-tba/observability"
)

func TestNoopMetricsRecorder(t *testing.T) {
	t.Parallel()

	recorder := observability.NoopMetricsRecorder()

	recorder.RecordHTTPRequest("GET", "/api/v3/team/:team", 200, time.Second)
	recorder.RecordRetry(1, "/api/v3/status")
	recorder.RecordRateLimit("/api/v3/status", time.Millisecond*100)
	recorder.RecordCache("/api/v3/status", true)
	recorder.RecordError("http_request", "NetworkError")
}

func BenchmarkNoopMetricsRecorder(b *testing.B) {
	recorder := observability.NoopMetricsRecorder()

	b.Run("RecordHTTPRequest", func(b *testing.B) {
		for range b.N {
			recorder.RecordHTTPRequest("GET", "/test", 200, time.Second)
		}
	})

	b.Run("RecordCache", func(b *testing.B) {
		for range b.N {
			recorder.RecordCache("/endpoint", false)
		}
	})
}
