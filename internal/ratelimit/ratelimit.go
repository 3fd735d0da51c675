// Package ratelimit builds the client-side token bucket for API calls.
package ratelimit

import "golang.org/x/time/rate"

// NewRateLimiter returns a token bucket refilled at requestsPerMinute/60 per
// second with a burst of requestsPerMinute. A non-positive rate means no
// limiting and returns nil, which the middleware treats as pass-through.
func NewRateLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute)
}
