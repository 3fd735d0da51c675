package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/frc1418/go-tba/observability"
)

// RateLimiterSelector chooses the limiter for a request and names it for logs.
// A nil limiter lets the request through.
type RateLimiterSelector func(*http.Request) (*rate.Limiter, string)

// RateLimitConfig configures the rate limit middleware.
type RateLimitConfig struct {
	Limiter  *rate.Limiter       // used when Selector is nil
	Selector RateLimiterSelector // optional per-request choice
	Logger   observability.Logger
	Metrics  observability.MetricsRecorder
}

// PrefixSelector sends requests whose path starts with prefix to matched and
// everything else to other. The client uses it to give trusted writes their
// own budget.
func PrefixSelector(prefix string, matched, other *rate.Limiter) RateLimiterSelector {
	return func(req *http.Request) (*rate.Limiter, string) {
		if strings.HasPrefix(req.URL.Path, prefix) {
			return matched, "trusted"
		}
		return other, "read"
	}
}

// RateLimit returns a middleware that waits for a token before each request.
func RateLimit(cfg RateLimitConfig) func(http.RoundTripper) http.RoundTripper {
	if cfg.Logger == nil {
		cfg.Logger = observability.NoopLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		if cfg.Limiter == nil && cfg.Selector == nil {
			return next
		}
		return &rateLimitTransport{
			next: next,
			cfg:  cfg,
		}
	}
}

type rateLimitTransport struct {
	next http.RoundTripper
	cfg  RateLimitConfig
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	limiter := t.cfg.Limiter
	endpoint := "default"

	if t.cfg.Selector != nil {
		limiter, endpoint = t.cfg.Selector(req)
	}

	if limiter != nil {
		if err := t.wait(req.Context(), limiter, endpoint, req.URL.Path); err != nil {
			return nil, err
		}
	}

	//nolint:wrapcheck // Middleware passes through errors from next handler in chain
	return t.next.RoundTrip(req)
}

func (t *rateLimitTransport) wait(ctx context.Context, limiter *rate.Limiter, endpoint, path string) error {
	reservation := limiter.Reserve()
	if !reservation.OK() {
		return errors.New("rate limit reservation failed")
	}

	delay := reservation.Delay()
	if delay <= 0 {
		return nil
	}

	t.cfg.Logger.Debug("rate limit delay",
		observability.Field{Key: "limiter", Value: endpoint},
		observability.Field{Key: "delay", Value: delay},
		observability.Field{Key: "path", Value: path},
	)

	t.cfg.Metrics.RecordRateLimit(normalizePath(path), delay)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		reservation.Cancel()
		return errors.Wrap(ctx.Err(), "context canceled during rate limit wait")
	}
}
