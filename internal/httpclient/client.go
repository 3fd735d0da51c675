// Package httpclient sends requests to one Blue Alliance host through a
// middleware chain. Paths are resolved against the host given with
// WithBaseURL, so callers only deal in API paths such as
// "/api/v3/team/frc254".
package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// Client resolves API paths against a base URL and sends them through the
// installed middleware.
type Client struct {
	base       *http.Client
	baseURL    string
	middleware []Middleware
}

// Middleware wraps an http.RoundTripper to add behavior.
// The first middleware given is the outermost.
type Middleware func(http.RoundTripper) http.RoundTripper

// New creates a client. Without WithTimeout requests are bounded only by
// their context.
func New(opts ...Option) *Client {
	c := &Client{base: &http.Client{}}

	for _, opt := range opts {
		opt(c)
	}

	if len(c.middleware) > 0 {
		transport := c.base.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		for i := len(c.middleware) - 1; i >= 0; i-- {
			transport = c.middleware[i](transport)
		}
		c.base.Transport = transport
	}

	return c
}

// BaseURL returns the scheme and host paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewRequest builds a request for path. A nil body sends none; any other
// body is sent as JSON.
func (c *Client) NewRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Do sends req through the middleware chain. Transport failures are
// wrapped with the method and path.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.base.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	return resp, nil
}

// HTTPClient returns the underlying http.Client with the chain installed.
func (c *Client) HTTPClient() *http.Client {
	return c.base
}

func trimBaseURL(u string) string {
	return strings.TrimRight(u, "/")
}
