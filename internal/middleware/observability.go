package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/frc1418/go-tba/observability"
)

// Observability returns a middleware that logs and records metrics for HTTP requests.
func Observability(logger observability.Logger, metrics observability.MetricsRecorder) func(http.RoundTripper) http.RoundTripper {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &observabilityTransport{
			next:    next,
			logger:  logger,
			metrics: metrics,
		}
	}
}

type observabilityTransport struct {
	next    http.RoundTripper
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

func (t *observabilityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	path := req.URL.Path
	// request_id ties the started and completed entries of one round trip.
	logger := t.logger.With(observability.Field{Key: "request_id", Value: uuid.NewString()})

	logger.Debug("http request started",
		observability.Field{Key: "method", Value: req.Method},
		observability.Field{Key: "path", Value: path},
		observability.Field{Key: "conditional", Value: req.Header.Get("If-Modified-Since") != ""},
	)

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Error("http request failed",
			observability.Field{Key: "method", Value: req.Method},
			observability.Field{Key: "path", Value: path},
			observability.Field{Key: "duration", Value: duration},
			observability.Field{Key: "error", Value: err.Error()},
		)

		t.metrics.RecordError("http_request", "NetworkError")

		//nolint:wrapcheck // Observability middleware logs error but passes it through unchanged
		return nil, err
	}

	fields := []observability.Field{
		{Key: "method", Value: req.Method},
		{Key: "path", Value: path},
		{Key: "status", Value: resp.StatusCode},
		{Key: "duration", Value: duration},
	}
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		fields = append(fields, observability.Field{Key: "last_modified", Value: lm})
	}
	if resp.Header.Get(CacheStatusHeader) != "" {
		fields = append(fields, observability.Field{Key: "cache", Value: resp.Header.Get(CacheStatusHeader)})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Warn("http request completed with error", fields...)
	} else {
		logger.Debug("http request completed", fields...)
	}

	t.metrics.RecordHTTPRequest(req.Method, normalizePath(path), resp.StatusCode, duration)

	return resp, nil
}

var (
	teamKeyPattern  = regexp.MustCompile(`^frc\d+$`)
	matchKeyPattern = regexp.MustCompile(`^\d{4}[a-z0-9]+_(?:qm|ef|qf|sf|f)\d+(?:m\d+)?$`)
	// Event and district keys share one shape: season followed by a code.
	seasonKeyPattern = regexp.MustCompile(`^\d{4}[a-z][a-z0-9]*$`)
	numberPattern    = regexp.MustCompile(`^\d+$`)

	normalizedPathCache sync.Map
)

// normalizePath replaces team, match, event and district keys and bare
// numbers (seasons, pages) with placeholders so metric labels stay bounded.
//
//	/api/v3/team/frc254/events/2019/simple -> /api/v3/team/:team/events/:n/simple
//	/api/v3/match/2019casj_qf1m2           -> /api/v3/match/:match
//	/api/trusted/v1/event/2019casj/info/update -> /api/trusted/v1/event/:key/info/update
func normalizePath(path string) string {
	if cached, ok := normalizedPathCache.Load(path); ok {
		//nolint:forcetypeassert // Cache only stores strings, type assertion is safe
		return cached.(string)
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		switch {
		case seg == "":
		case teamKeyPattern.MatchString(seg):
			segments[i] = ":team"
		case matchKeyPattern.MatchString(seg):
			segments[i] = ":match"
		case seasonKeyPattern.MatchString(seg):
			segments[i] = ":key"
		case numberPattern.MatchString(seg):
			segments[i] = ":n"
		}
	}

	normalized := strings.Join(segments, "/")
	normalizedPathCache.Store(path, normalized)

	return normalized
}
