package tba

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/frc1418/go-tba/internal/httpclient"
	"github.com/frc1418/go-tba/internal/middleware"
	"github.com/frc1418/go-tba/internal/paths"
	"github.com/frc1418/go-tba/internal/ratelimit"
	"github.com/frc1418/go-tba/internal/signing"
	"github.com/frc1418/go-tba/observability"
)

const (
	// DefaultBaseURL is the public Blue Alliance host.
	DefaultBaseURL = "https://www.thebluealliance.com"

	// ReadPrefix is prepended to every read path.
	ReadPrefix = "/api/v3/"
	// TrustedPrefix is prepended to every write path and is part of the signed text.
	TrustedPrefix = paths.TrustedPrefix

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultRetryWaitTime is the first backoff step when retries are enabled.
	DefaultRetryWaitTime = 1 * time.Second
	// DefaultCacheSize is the number of responses kept by the response cache.
	DefaultCacheSize = 512
	// DefaultUserAgent identifies the library to the server.
	DefaultUserAgent = "go-tba"

	headerAuthKey = "X-TBA-Auth-Key"
	headerAuthID  = "X-TBA-Auth-Id"
	headerAuthSig = "X-TBA-Auth-Sig"
)

// Client talks to the read API and, once trusted credentials are set, the
// write API. It is safe for concurrent use.
type Client struct {
	http   *httpclient.Client
	cache  *middleware.ResponseCache
	signer signing.Signer

	cacheEnabled atomic.Bool

	mu      sync.RWMutex
	trusted trustedAuth
}

type trustedAuth struct {
	id       string
	secret   string
	eventKey string
}

// Compile-time check to ensure Client implements API.
var _ API = (*Client)(nil)

// ClientConfig holds configuration for the API client.
type ClientConfig struct {
	// AuthKey is the read API key sent as X-TBA-Auth-Key (required)
	AuthKey string

	// AuthID, AuthSecret and EventKey enable trusted writes for one event (optional)
	AuthID     string
	AuthSecret string
	EventKey   string

	// BaseURL is the API host (defaults to https://www.thebluealliance.com)
	BaseURL string

	// HTTPClient is the HTTP client to start from (optional). It is copied,
	// never modified.
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout (defaults to 30s)
	Timeout time.Duration

	// RateLimitPerMinute caps requests per minute. Reads and writes get
	// separate buckets of this size. Zero means unlimited.
	RateLimitPerMinute int

	// MaxRetries enables retries of 429 and 5xx answers. Zero disables them.
	MaxRetries int

	// RetryWaitTime is the first backoff step (defaults to 1s)
	RetryWaitTime time.Duration

	// CacheSize is the number of cached GET responses (defaults to 512)
	CacheSize int

	// CacheTTL applies when the server sends no Cache-Control max-age. Zero
	// keeps only entries that can be revalidated with Last-Modified.
	CacheTTL time.Duration

	// DisableCache starts the client with the response cache switched off.
	DisableCache bool

	// TLSConfig customises TLS for the underlying transport (optional)
	TLSConfig *tls.Config

	// UserAgent is sent with every request (defaults to "go-tba")
	UserAgent string

	// Logger for observability (optional, uses noop logger if nil)
	Logger observability.Logger

	// Metrics recorder for observability (optional, uses noop recorder if nil)
	Metrics observability.MetricsRecorder
}

// New creates a client with default settings. Use NewWithConfig for trusted
// writes or to tune the transport.
//
// Example:
//
//	client, err := tba.New("your-read-key")
func New(authKey string) (*Client, error) {
	return NewWithConfig(&ClientConfig{
		AuthKey: authKey,
	})
}

// NewWithConfig creates a client from cfg. cfg is not modified.
//
// The transport chain, outermost first, is observability, static headers,
// response cache, rate limit, retry and TLS.
//
// Example:
//
//	client, err := tba.NewWithConfig(&tba.ClientConfig{
//	    AuthKey:            "your-read-key",
//	    RateLimitPerMinute: 600,
//	    Logger:             observability.NewZerolog(log.Logger),
//	})
func NewWithConfig(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.AuthKey == "" {
		return nil, errors.New("auth key is required")
	}

	conf := *cfg
	if conf.BaseURL == "" {
		conf.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(conf.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.Wrapf(ErrInvalidArgument, "base URL %q must be absolute", conf.BaseURL)
	}
	if conf.HTTPClient == nil && conf.Timeout == 0 {
		conf.Timeout = DefaultTimeout
	}
	if conf.RetryWaitTime == 0 {
		conf.RetryWaitTime = DefaultRetryWaitTime
	}
	if conf.CacheSize == 0 {
		conf.CacheSize = DefaultCacheSize
	}
	if conf.UserAgent == "" {
		conf.UserAgent = DefaultUserAgent
	}
	if conf.Logger == nil {
		conf.Logger = observability.NoopLogger()
	}
	if conf.Metrics == nil {
		conf.Metrics = observability.NoopMetricsRecorder()
	}

	store, err := middleware.NewResponseCache(conf.CacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create response cache")
	}

	c := &Client{
		cache:   store,
		signer:  signing.New(nil),
		trusted: trustedAuth{
			id:       conf.AuthID,
			secret:   conf.AuthSecret,
			eventKey: conf.EventKey,
		},
	}
	c.cacheEnabled.Store(!conf.DisableCache)

	headers := make(http.Header, 3)
	headers.Set(headerAuthKey, conf.AuthKey)
	headers.Set("User-Agent", conf.UserAgent)
	headers.Set("Accept", "application/json")

	// Writes get their own bucket so bulk reads never starve them.
	limiterSelector := middleware.PrefixSelector(
		TrustedPrefix,
		ratelimit.NewRateLimiter(conf.RateLimitPerMinute),
		ratelimit.NewRateLimiter(conf.RateLimitPerMinute),
	)

	// Build middleware chain (applied in reverse order: last = innermost)
	c.http = httpclient.New(
		httpclient.WithHTTPClient(conf.HTTPClient),
		httpclient.WithBaseURL(conf.BaseURL),
		httpclient.WithTimeout(conf.Timeout),
		httpclient.WithMiddleware(
			middleware.Observability(conf.Logger, conf.Metrics),
			middleware.Headers(headers),
			middleware.Cache(middleware.CacheConfig{
				Store:      store,
				DefaultTTL: conf.CacheTTL,
				Enabled:    c.cacheEnabled.Load,
				Logger:     conf.Logger,
				Metrics:    conf.Metrics,
			}),
			middleware.RateLimit(middleware.RateLimitConfig{
				Selector: limiterSelector,
				Logger:   conf.Logger,
				Metrics:  conf.Metrics,
			}),
			middleware.Retry(middleware.RetryConfig{
				MaxRetries:  conf.MaxRetries,
				InitialWait: conf.RetryWaitTime,
				Logger:      conf.Logger,
				Metrics:     conf.Metrics,
			}),
			middleware.TLSConfig(conf.TLSConfig),
		),
	)

	return c, nil
}

// SetTrusted replaces the write credentials and the event they apply to.
func (c *Client) SetTrusted(authID, authSecret, eventKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.trusted = trustedAuth{id: authID, secret: authSecret, eventKey: eventKey}
}

// EventKey returns the event trusted writes currently target.
func (c *Client) EventKey() string {
	return c.trustedAuth().eventKey
}

func (c *Client) trustedAuth() trustedAuth {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.trusted
}

// CacheEnabled reports whether plain reads may be answered from the cache.
func (c *Client) CacheEnabled() bool {
	return c.cacheEnabled.Load()
}

// SetCacheEnabled switches the response cache for every later call.
// Conditional calls bypass the cache regardless.
func (c *Client) SetCacheEnabled(on bool) {
	c.cacheEnabled.Store(on)
}

// PurgeCache drops every cached response.
func (c *Client) PurgeCache() {
	c.cache.Purge()
}
