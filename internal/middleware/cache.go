package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/frc1418/go-tba/observability"
)

// CacheStatusHeader is added to responses that passed through the cache, with
// the value "hit", "revalidated" or "miss".
const CacheStatusHeader = "X-Tba-Client-Cache"

type bypassKey struct{}

// WithoutCache marks ctx so the cache middleware neither serves nor stores
// the request. It scopes the override to one call.
func WithoutCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassKey{}, true)
}

func cacheBypassed(ctx context.Context) bool {
	v, _ := ctx.Value(bypassKey{}).(bool)
	return v
}

// ResponseCache is a bounded in-memory store of successful GET responses.
type ResponseCache struct {
	entries *lru.Cache[string, *cachedResponse]
}

type cachedResponse struct {
	statusCode   int
	header       http.Header
	body         []byte
	expires      time.Time
	lastModified string
}

// NewResponseCache creates a cache that keeps at most size responses.
func NewResponseCache(size int) (*ResponseCache, error) {
	entries, err := lru.New[string, *cachedResponse](size)
	if err != nil {
		return nil, errors.Wrapf(err, "create response cache of size %d", size)
	}
	return &ResponseCache{entries: entries}, nil
}

// Len returns the number of stored responses.
func (c *ResponseCache) Len() int {
	return c.entries.Len()
}

// Purge drops every stored response.
func (c *ResponseCache) Purge() {
	c.entries.Purge()
}

// CacheConfig configures the cache middleware.
type CacheConfig struct {
	Store *ResponseCache
	// DefaultTTL applies when the server sends no max-age.
	DefaultTTL time.Duration
	// Enabled is consulted per request. Nil means always enabled.
	Enabled func() bool
	Logger  observability.Logger
	Metrics observability.MetricsRecorder
	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

// Cache returns a middleware that answers repeated GETs from Store while they
// are fresh. Stale entries carrying Last-Modified are revalidated with
// If-Modified-Since and a 304 refreshes them. Requests that already carry
// If-Modified-Since, or whose context went through WithoutCache, skip the
// cache entirely.
func Cache(cfg CacheConfig) func(http.RoundTripper) http.RoundTripper {
	if cfg.Logger == nil {
		cfg.Logger = observability.NoopLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetricsRecorder()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return func(next http.RoundTripper) http.RoundTripper {
		if cfg.Store == nil {
			return next
		}
		return &cacheTransport{
			next: next,
			cfg:  cfg,
		}
	}
}

type cacheTransport struct {
	next http.RoundTripper
	cfg  CacheConfig
}

func (t *cacheTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.cacheable(req) {
		//nolint:wrapcheck // Middleware passes through errors from next handler in chain
		return t.next.RoundTrip(req)
	}

	key := req.URL.String()
	path := normalizePath(req.URL.Path)
	now := t.cfg.Now()

	entry, found := t.cfg.Store.entries.Get(key)
	if found && now.Before(entry.expires) {
		t.cfg.Metrics.RecordCache(path, true)
		t.cfg.Logger.Debug("response cache hit", observability.Field{Key: "path", Value: req.URL.Path})
		return entry.response(req, "hit"), nil
	}

	outgoing := req
	if found && entry.lastModified != "" {
		outgoing = cloneRequest(req)
		outgoing.Header.Set("If-Modified-Since", entry.lastModified)
	}

	resp, err := t.next.RoundTrip(outgoing)
	if err != nil {
		//nolint:wrapcheck // Middleware passes through errors from next handler in chain
		return nil, err
	}

	if found && resp.StatusCode == http.StatusNotModified && outgoing != req {
		drain(resp)

		refreshed := *entry
		refreshed.expires = now.Add(t.ttl(resp.Header))
		t.cfg.Store.entries.Add(key, &refreshed)

		t.cfg.Metrics.RecordCache(path, true)
		t.cfg.Logger.Debug("response cache revalidated", observability.Field{Key: "path", Value: req.URL.Path})
		return refreshed.response(req, "revalidated"), nil
	}

	t.cfg.Metrics.RecordCache(path, false)

	if resp.StatusCode != http.StatusOK || noStore(resp.Header) {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, errors.Wrap(err, "read response for cache")
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	fresh := &cachedResponse{
		statusCode:   resp.StatusCode,
		header:       resp.Header.Clone(),
		body:         body,
		expires:      now.Add(t.ttl(resp.Header)),
		lastModified: resp.Header.Get("Last-Modified"),
	}
	if fresh.expires.After(now) || fresh.lastModified != "" {
		t.cfg.Store.entries.Add(key, fresh)
	}

	resp.Header.Set(CacheStatusHeader, "miss")

	return resp, nil
}

func (t *cacheTransport) cacheable(req *http.Request) bool {
	if req.Method != http.MethodGet {
		return false
	}
	if req.Header.Get("If-Modified-Since") != "" || cacheBypassed(req.Context()) {
		return false
	}
	return t.cfg.Enabled == nil || t.cfg.Enabled()
}

// ttl reads max-age from Cache-Control. no-cache forces revalidation on
// every use.
func (t *cacheTransport) ttl(h http.Header) time.Duration {
	for _, directive := range cacheDirectives(h) {
		switch {
		case directive == "no-cache":
			return 0
		case strings.HasPrefix(directive, "max-age="):
			if seconds, err := strconv.Atoi(strings.TrimPrefix(directive, "max-age=")); err == nil && seconds >= 0 {
				return time.Duration(seconds) * time.Second
			}
		}
	}
	return t.cfg.DefaultTTL
}

func noStore(h http.Header) bool {
	for _, directive := range cacheDirectives(h) {
		if directive == "no-store" {
			return true
		}
	}
	return false
}

func cacheDirectives(h http.Header) []string {
	var out []string
	for _, line := range h.Values("Cache-Control") {
		for _, part := range strings.Split(line, ",") {
			if d := strings.ToLower(strings.TrimSpace(part)); d != "" {
				out = append(out, d)
			}
		}
	}
	return out
}

func (e *cachedResponse) response(req *http.Request, status string) *http.Response {
	header := e.header.Clone()
	header.Set(CacheStatusHeader, status)

	return &http.Response{
		Status:        strconv.Itoa(e.statusCode) + " " + http.StatusText(e.statusCode),
		StatusCode:    e.statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(e.body)),
		ContentLength: int64(len(e.body)),
		Request:       req,
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
