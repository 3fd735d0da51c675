// Package middleware provides the http.RoundTripper layers of the API client.
package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/frc1418/go-tba/internal/retry"
	"github.com/frc1418/go-tba/observability"
)

// RetryConfig configures the retry middleware. A zero MaxRetries disables it.
type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	// RetryWrites also repeats POST requests. Trusted writes replace state
	// wholesale, so repeating one is safe, but it stays opt-in.
	RetryWrites bool
	Logger      observability.Logger
	Metrics     observability.MetricsRecorder
}

// Retry returns a middleware that retries network errors, 5xx and 429
// responses with exponential backoff. A 429 with Retry-After waits as asked.
// Other statuses, 304 included, are returned on the first attempt.
func Retry(cfg RetryConfig) func(http.RoundTripper) http.RoundTripper {
	if cfg.Logger == nil {
		cfg.Logger = observability.NoopLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		if cfg.MaxRetries <= 0 {
			return next
		}
		return &retryTransport{
			next: next,
			cfg:  cfg,
		}
	}
}

type retryTransport struct {
	next http.RoundTripper
	cfg  RetryConfig
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet && !(t.cfg.RetryWrites && req.Method == http.MethodPost) {
		//nolint:wrapcheck // Middleware passes through errors from next handler in chain
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()

	// The signature covers these exact bytes, so every attempt must resend them.
	var bodyBytes []byte
	if req.Body != nil && req.Body != http.NoBody {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, errors.Wrap(err, "failed to read request body")
		}
	}

	var lastErr error
	var lastResp *http.Response

	for attempt := 0; attempt <= t.cfg.MaxRetries; attempt++ {
		if bodyBytes != nil {
			req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		resp, err := t.next.RoundTrip(req)

		if err == nil && !retry.ShouldRetry(resp.StatusCode) {
			return resp, nil
		}

		lastErr = err
		lastResp = resp

		if attempt == t.cfg.MaxRetries {
			break
		}

		t.cfg.Logger.Warn("retrying request",
			observability.Field{Key: "attempt", Value: attempt + 1},
			observability.Field{Key: "max_retries", Value: t.cfg.MaxRetries},
			observability.Field{Key: "path", Value: req.URL.Path},
			observability.Field{Key: "method", Value: req.Method},
		)

		t.cfg.Metrics.RecordRetry(attempt+1, normalizePath(req.URL.Path))

		waitTime := t.calculateWait(attempt, resp)

		if resp != nil {
			resp.Body.Close()
		}

		timer := time.NewTimer(waitTime)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Wrap(ctx.Err(), "context canceled during retry wait")
		}
	}

	if lastResp != nil {
		return lastResp, nil
	}

	return nil, errors.Wrapf(lastErr, "request failed after %d retries", t.cfg.MaxRetries)
}

// calculateWait uses Retry-After on 429 responses and initialWait * 2^attempt otherwise.
func (t *retryTransport) calculateWait(attempt int, resp *http.Response) time.Duration {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if wait := retry.ParseRetryAfter(retryAfter); wait > 0 {
				t.cfg.Logger.Debug("using Retry-After header",
					observability.Field{Key: "retry_after", Value: retryAfter},
					observability.Field{Key: "wait", Value: wait},
				)
				return wait
			}
		}
	}

	return t.cfg.InitialWait * time.Duration(1<<attempt)
}
