package middleware_test

import (
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frc1418/go-tba/internal/middleware"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func get(t *testing.T, transport http.RoundTripper, ctx context.Context, url string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

const lastModified = "Sat, 02 Mar 2019 10:00:00 GMT"

func newCacheTransport(t *testing.T, clock *fakeClock, enabled *atomic.Bool, metrics *recordingMetrics) (http.RoundTripper, *middleware.ResponseCache) {
	t.Helper()

	store, err := middleware.NewResponseCache(16)
	require.NoError(t, err)

	cfg := middleware.CacheConfig{
		Store:      store,
		DefaultTTL: time.Minute,
		Now:        clock.Now,
		Metrics:    metrics,
	}
	if enabled != nil {
		cfg.Enabled = enabled.Load
	}

	return middleware.Cache(cfg)(http.DefaultTransport), store
}

func TestCacheServesFreshResponses(t *testing.T) {
	t.Parallel()

	server, hits := countingServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=60")
		_, _ = w.Write([]byte(`{"key":"frc254"}`))
	})

	clock := &fakeClock{now: time.Date(2019, 3, 2, 10, 0, 0, 0, time.UTC)}
	metrics := &recordingMetrics{}
	transport, store := newCacheTransport(t, clock, nil, metrics)

	resp, body := get(t, transport, context.Background(), server.URL+"/api/v3/team/frc254")
	assert.Equal(t, "miss", resp.Header.Get(middleware.CacheStatusHeader))
	assert.JSONEq(t, `{"key":"frc254"}`, body)

	resp, body = get(t, transport, context.Background(), server.URL+"/api/v3/team/frc254")
	assert.Equal(t, "hit", resp.Header.Get(middleware.CacheStatusHeader))
	assert.JSONEq(t, `{"key":"frc254"}`, body)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, metrics.cacheHits)
	assert.Equal(t, 1, metrics.cacheMiss)

	clock.Advance(61 * time.Second)

	get(t, transport, context.Background(), server.URL+"/api/v3/team/frc254")
	assert.Equal(t, int32(2), hits.Load())
}

func TestCacheRevalidatesStaleEntries(t *testing.T) {
	t.Parallel()

	server, hits := countingServer(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "max-age=10")
		if r.Header.Get("If-Modified-Since") == lastModified {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Last-Modified", lastModified)
		_, _ = w.Write([]byte(`{"is_datafeed_down":false}`))
	})

	clock := &fakeClock{now: time.Date(2019, 3, 2, 10, 0, 0, 0, time.UTC)}
	transport, _ := newCacheTransport(t, clock, nil, &recordingMetrics{})

	get(t, transport, context.Background(), server.URL+"/api/v3/status")
	clock.Advance(11 * time.Second)

	resp, body := get(t, transport, context.Background(), server.URL+"/api/v3/status")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "revalidated", resp.Header.Get(middleware.CacheStatusHeader))
	assert.Equal(t, lastModified, resp.Header.Get("Last-Modified"))
	assert.JSONEq(t, `{"is_datafeed_down":false}`, body)

	resp, _ = get(t, transport, context.Background(), server.URL+"/api/v3/status")
	assert.Equal(t, "hit", resp.Header.Get(middleware.CacheStatusHeader))

	assert.Equal(t, int32(2), hits.Load())
}

func TestCacheBypass(t *testing.T) {
	t.Parallel()

	server, hits := countingServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	clock := &fakeClock{now: time.Now()}
	enabled := &atomic.Bool{}
	enabled.Store(true)
	transport, store := newCacheTransport(t, clock, enabled, &recordingMetrics{})

	url := server.URL + "/api/v3/events/2019"

	get(t, transport, context.Background(), url)
	get(t, transport, middleware.WithoutCache(context.Background()), url)
	assert.Equal(t, int32(2), hits.Load(), "WithoutCache must reach the server")

	get(t, transport, context.Background(), url)
	assert.Equal(t, int32(2), hits.Load(), "bypass must not evict the entry")

	enabled.Store(false)
	get(t, transport, context.Background(), url)
	assert.Equal(t, int32(3), hits.Load())

	enabled.Store(true)
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	require.NoError(t, err)
	req.Header.Set("If-Modified-Since", lastModified)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, int32(4), hits.Load(), "conditional requests skip the cache")

	store.Purge()
	assert.Equal(t, 0, store.Len())
}

func TestCacheDoesNotStore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		method  string
		status  int
		control string
	}{
		{name: "no-store", method: http.MethodGet, status: http.StatusOK, control: "no-store"},
		{name: "error status", method: http.MethodGet, status: http.StatusNotFound},
		{name: "post", method: http.MethodPost, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server, hits := countingServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
				if tt.control != "" {
					w.Header().Set("Cache-Control", tt.control)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{}`))
			})

			transport, store := newCacheTransport(t, &fakeClock{now: time.Now()}, nil, &recordingMetrics{})

			for range 2 {
				req, err := http.NewRequest(tt.method, server.URL, http.NoBody)
				require.NoError(t, err)
				resp, err := transport.RoundTrip(req)
				require.NoError(t, err)
				resp.Body.Close()
			}

			assert.Equal(t, int32(2), hits.Load())
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestNewResponseCacheInvalidSize(t *testing.T) {
	t.Parallel()

	_, err := middleware.NewResponseCache(0)
	require.Error(t, err)
}
