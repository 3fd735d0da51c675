// Package retry classifies responses worth repeating and reads Retry-After.
package retry

import (
	"net/http"
	"strconv"
	"time"
)

// ShouldRetry reports whether statusCode is transient: 429 or any 5xx.
// A 304 from a conditional fetch is an answer, not a failure.
func ShouldRetry(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError || statusCode == http.StatusTooManyRequests
}

// ParseRetryAfter returns how long a Retry-After header asks the client to wait.
// Both the delay-seconds and the HTTP-date forms are accepted. Unparseable
// values and dates in the past yield 0.
func ParseRetryAfter(retryAfterHeader string) time.Duration {
	return parseRetryAfterAt(retryAfterHeader, time.Now())
}

func parseRetryAfterAt(header string, now time.Time) time.Duration {
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}

	at, err := http.ParseTime(header)
	if err != nil {
		return 0
	}

	if wait := at.Sub(now); wait > 0 {
		return wait
	}
	return 0
}
