// Package testutil provides httptest helpers shared by package tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AuthKeyHeader is the read API key header checked by NewMockServer.
const AuthKeyHeader = "X-TBA-Auth-Key"

// Response is one canned reply.
type Response struct {
	Body       string
	StatusCode int
	Header     http.Header
}

func (r Response) write(t *testing.T, w http.ResponseWriter) {
	t.Helper()

	for name, values := range r.Header {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	if r.Body != "" && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}

	status := r.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if r.Body != "" && status != http.StatusNotModified {
		_, err := w.Write([]byte(r.Body))
		assert.NoError(t, err, "Failed to write response body")
	}
}

// NewMockServer serves one response for expectedPath and checks the read key
// when authKey is not empty. The server is closed when the test ends.
func NewMockServer(t *testing.T, expectedPath, authKey, responseBody string, statusCode int) *httptest.Server {
	t.Helper()

	return NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, expectedPath, r.URL.Path, "Request path should match expected")

		if authKey != "" {
			assert.Equal(t, authKey, r.Header.Get(AuthKeyHeader), "%s header should be set", AuthKeyHeader)
		}

		Response{Body: responseBody, StatusCode: statusCode}.write(t, w)
	})
}

// NewMockServerWithHandler wraps handler in a server closed at test end.
func NewMockServerWithHandler(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

// NewMockServerMulti routes by URL path; unknown paths fail the test.
func NewMockServerMulti(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	return NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("Unexpected request path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	})
}

// Recorder collects the requests a sequence server received.
type Recorder struct {
	mu       sync.Mutex
	requests []*http.Request
}

// Requests returns the received requests in order.
func (r *Recorder) Requests() []*http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*http.Request(nil), r.requests...)
}

// Paths returns the URL paths of the received requests in order.
func (r *Recorder) Paths() []string {
	reqs := r.Requests()
	out := make([]string, len(reqs))
	for i, req := range reqs {
		out[i] = req.URL.Path
	}
	return out
}

// NewMockServerSequence answers the n-th request with responses[n].
// Requests beyond the list fail the test. Useful for pagination and retries.
func NewMockServerSequence(t *testing.T, responses []Response) (*httptest.Server, *Recorder) {
	t.Helper()

	rec := &Recorder{}

	server := NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		n := len(rec.requests)
		rec.requests = append(rec.requests, r.Clone(r.Context()))
		rec.mu.Unlock()

		if n >= len(responses) {
			t.Errorf("More requests than configured responses (got %d requests, have %d responses)",
				n+1, len(responses))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		responses[n].write(t, w)
	})

	return server, rec
}
