package tba

import (
	"net/http"
	"time"
)

// LastModified is a server Last-Modified value. Raw is the header as sent,
// Time its parsed form (zero when the header did not parse).
type LastModified struct {
	Raw  string
	Time time.Time
}

// IsZero reports whether no timestamp was received.
func (l LastModified) IsZero() bool {
	return l.Raw == "" && l.Time.IsZero()
}

func (l LastModified) String() string {
	if l.Raw != "" {
		return l.Raw
	}
	if l.Time.IsZero() {
		return ""
	}
	return l.Time.UTC().Format(http.TimeFormat)
}

func parseLastModified(raw string) LastModified {
	lm := LastModified{Raw: raw}
	if t, err := http.ParseTime(raw); err == nil {
		lm.Time = t
	}
	return lm
}

// ResponseMeta describes how a read call was answered.
type ResponseMeta struct {
	// StatusCode is the final HTTP status, 304 included.
	StatusCode int
	// NotModified is set when the server answered 304 and the call returned
	// the zero value without error.
	NotModified bool
	// LastModified is the server timestamp, or for a 304 without one, the
	// If-Modified-Since value that was sent.
	LastModified LastModified
	// Cache is "hit", "revalidated" or "miss" when the response cache saw the
	// request, and empty otherwise.
	Cache string
}

// RequestOption adjusts a single read call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	ifModifiedSince time.Time
	lastModified    *LastModified
	meta            *ResponseMeta
	strict          bool

	// observe sees every answer, for helpers that issue several requests.
	observe func(path string, meta ResponseMeta)
}

func collectOptions(opts []RequestOption) requestOptions {
	var o requestOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// conditional reports whether the call must bypass the response cache.
func (o *requestOptions) conditional() bool {
	return !o.ifModifiedSince.IsZero() || o.lastModified != nil
}

// IfModifiedSince sends If-Modified-Since with t. An unchanged resource is
// answered with 304 and, unless FailOnNotModified is also given, the call
// returns the zero value and a nil error. A zero value is also what a JSON
// null body decodes to, so pass WithResponseMeta to tell the two apart and
// to read the timestamp of a 304.
func IfModifiedSince(t time.Time) RequestOption {
	return func(o *requestOptions) {
		o.ifModifiedSince = t
	}
}

// WithLastModified stores the response's Last-Modified header in dst.
// dst is left untouched when the server sends none.
func WithLastModified(dst *LastModified) RequestOption {
	return func(o *requestOptions) {
		o.lastModified = dst
	}
}

// WithResponseMeta fills dst once the call completes, including 304 answers.
// Unlike the conditional options it does not bypass the response cache;
// dst.Cache reports whether the cache answered.
func WithResponseMeta(dst *ResponseMeta) RequestOption {
	return func(o *requestOptions) {
		o.meta = dst
	}
}

// FailOnNotModified turns a 304 answer into a *NotModifiedError.
func FailOnNotModified() RequestOption {
	return func(o *requestOptions) {
		o.strict = true
	}
}
