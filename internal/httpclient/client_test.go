package httpclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frc1418/go-tba/internal/httpclient"
)

// roundTripperFunc is an adapter to use functions as http.RoundTripper
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	client := httpclient.New()
	require.NotNil(t, client.HTTPClient())
	assert.Zero(t, client.HTTPClient().Timeout)
	assert.Nil(t, client.HTTPClient().Transport)
	assert.Empty(t, client.BaseURL())
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10*time.Second, httpclient.New(httpclient.WithTimeout(10*time.Second)).HTTPClient().Timeout)
	assert.Zero(t, httpclient.New(httpclient.WithTimeout(0)).HTTPClient().Timeout)
}

func TestWithHTTPClientIsCopied(t *testing.T) {
	t.Parallel()

	inner := &http.Transport{}
	customClient := &http.Client{
		Timeout:   5 * time.Second,
		Transport: inner,
	}

	noop := func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(next.RoundTrip)
	}

	client := httpclient.New(
		httpclient.WithHTTPClient(customClient),
		httpclient.WithMiddleware(noop),
	)

	assert.NotSame(t, customClient, client.HTTPClient())
	assert.Equal(t, 5*time.Second, client.HTTPClient().Timeout)
	assert.Same(t, inner, customClient.Transport, "caller's client must keep its transport")
}

func TestWithTransport(t *testing.T) {
	t.Parallel()

	customTransport := &http.Transport{}
	client := httpclient.New(httpclient.WithTransport(customTransport))

	assert.Same(t, customTransport, client.HTTPClient().Transport)
}

func TestMiddlewareChaining(t *testing.T) {
	t.Parallel()

	var order []string

	record := func(name string) httpclient.Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
				order = append(order, name+"-before")
				resp, err := next.RoundTrip(req)
				order = append(order, name+"-after")
				return resp, err
			})
		}
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "server")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := httpclient.New(httpclient.WithMiddleware(record("headers"), record("cache")))

	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, []string{
		"headers-before",
		"cache-before",
		"server",
		"cache-after",
		"headers-after",
	}, order)
}

func TestDo(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"current_season":2019}`))
	}))
	defer server.Close()

	client := httpclient.New(httpclient.WithBaseURL(server.URL + "/"))
	req, err := client.NewRequest(context.Background(), http.MethodGet, "/api/v3/status", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"current_season":2019}`, string(body))
}

func TestNewRequest(t *testing.T) {
	t.Parallel()

	client := httpclient.New(httpclient.WithBaseURL("https://www.thebluealliance.com/"))
	assert.Equal(t, "https://www.thebluealliance.com", client.BaseURL())

	tests := []struct {
		name            string
		method          string
		path            string
		body            []byte
		wantURL         string
		wantContentType string
		wantBody        string
	}{
		{
			name:    "read without body",
			method:  http.MethodGet,
			path:    "/api/v3/team/frc1418",
			wantURL: "https://www.thebluealliance.com/api/v3/team/frc1418",
		},
		{
			name:            "write with json body",
			method:          http.MethodPost,
			path:            "/api/trusted/v1/event/2019vahay/team_list/update",
			body:            []byte(`["frc1418"]`),
			wantURL:         "https://www.thebluealliance.com/api/trusted/v1/event/2019vahay/team_list/update",
			wantContentType: "application/json",
			wantBody:        `["frc1418"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := client.NewRequest(context.Background(), tt.method, tt.path, tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.wantURL, req.URL.String())
			assert.Equal(t, tt.wantContentType, req.Header.Get("Content-Type"))

			body, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestDoWrapsTransportErrors(t *testing.T) {
	t.Parallel()

	failing := errors.New("connection refused")
	client := httpclient.New(
		httpclient.WithBaseURL("http://tba.invalid"),
		httpclient.WithTransport(roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, failing
		})),
	)

	req, err := client.NewRequest(context.Background(), http.MethodGet, "/api/v3/status", nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	require.ErrorIs(t, err, failing)
	assert.Contains(t, err.Error(), "GET /api/v3/status")
}
