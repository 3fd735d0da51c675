package middleware

import (
	"crypto/tls"
	"net/http"
)

// TLSConfig returns a middleware that installs config on the innermost
// transport. It must be the last middleware in the chain. A nil config leaves
// the transport untouched.
func TLSConfig(config *tls.Config) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		if config == nil {
			return next
		}

		transport, ok := next.(*http.Transport)
		if !ok {
			defaultTransport, ok := http.DefaultTransport.(*http.Transport)
			if !ok {
				return next
			}
			transport = defaultTransport
		}

		transport = transport.Clone()
		transport.ForceAttemptHTTP2 = true
		transport.TLSClientConfig = config.Clone()

		return transport
	}
}
