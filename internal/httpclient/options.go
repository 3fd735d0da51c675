package httpclient

import (
	"net/http"
	"time"
)

// Option is a functional option for configuring the HTTP client.
type Option func(*Client)

// WithHTTPClient starts from a copy of client, so the caller's value is never
// modified when the middleware chain is installed. Its Transport, Jar,
// CheckRedirect and Timeout carry over.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			copied := *client
			c.base = &copied
		}
	}
}

// WithBaseURL sets the scheme and host, such as
// "https://www.thebluealliance.com". A trailing slash is dropped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = trimBaseURL(baseURL)
	}
}

// WithTimeout sets the request timeout. Zero keeps the current value.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.base.Timeout = timeout
		}
	}
}

// WithTransport sets the innermost transport the middleware wraps.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.base.Transport = transport
	}
}

// WithMiddleware appends middleware to the chain.
//
//	WithMiddleware(A, B, C) creates chain: A(B(C(transport)))
//	Request flow: A -> B -> C -> transport -> server
//
// Put outer concerns (logging, headers) first and inner ones (rate limiting,
// retries, TLS) last.
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}
