package middleware

import (
	"maps"
	"net/http"
)

// Auth returns a middleware that sets one static header on every request,
// such as X-TBA-Auth-Key for the read API.
func Auth(headerName, headerValue string) func(http.RoundTripper) http.RoundTripper {
	h := make(http.Header, 1)
	h.Set(headerName, headerValue)
	return Headers(h)
}

// Headers returns a middleware that sets every header in static on each
// request. Values are fixed at construction and never recomputed. Empty
// values are skipped.
func Headers(static http.Header) func(http.RoundTripper) http.RoundTripper {
	fixed := static.Clone()
	for name, values := range fixed {
		if len(values) == 0 || values[0] == "" {
			delete(fixed, name)
		}
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			next:    next,
			headers: fixed,
		}
	}
}

type headerTransport struct {
	next    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = cloneRequest(req)

	for name, values := range t.headers {
		req.Header[name] = values
	}

	//nolint:wrapcheck // Middleware passes through errors from next handler in chain
	return t.next.RoundTrip(req)
}

// cloneRequest creates a shallow copy of the request with a cloned header map.
func cloneRequest(req *http.Request) *http.Request {
	r := new(http.Request)
	*r = *req
	r.Header = make(http.Header, len(req.Header))
	maps.Copy(r.Header, req.Header)
	return r
}
