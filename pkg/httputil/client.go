package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/butterfly/pkg/cache"
	"github.com/matzehuels/butterfly/pkg/errors"
	"github.com/matzehuels/butterfly/pkg/observability"
)

// Client defaults.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultTTL      = time.Hour
	DefaultAttempts = 3
	DefaultDelay    = time.Second
	// DefaultMaxBytes caps a response body at 10 MiB.
	DefaultMaxBytes = 10 << 20
)

// Client fetches documents over HTTP, caching response bodies and retrying
// transient failures.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration
	attempts  int
	delay     time.Duration
	maxBytes  int64
	userAgent string
}

// ClientOption configures a [Client].
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTTL sets how long fetched bodies stay cached. Zero disables caching.
func WithTTL(ttl time.Duration) ClientOption { return func(c *Client) { c.ttl = ttl } }

// WithRetry sets the attempt count and initial backoff delay.
func WithRetry(attempts int, delay time.Duration) ClientOption {
	return func(c *Client) { c.attempts, c.delay = attempts, delay }
}

// WithNamespace sets the cache key namespace. Defaults to "source".
func WithNamespace(ns string) ClientOption { return func(c *Client) { c.namespace = ns } }

// WithKeyer replaces the cache keyer.
func WithKeyer(k cache.Keyer) ClientOption {
	return func(c *Client) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithMaxBytes caps the response body size.
func WithMaxBytes(n int64) ClientOption { return func(c *Client) { c.maxBytes = n } }

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption { return func(c *Client) { c.userAgent = ua } }

// NewClient creates a client backed by store. A nil store disables caching.
func NewClient(store cache.Cache, opts ...ClientOption) *Client {
	if store == nil {
		store = cache.NewNullCache()
	}
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		cache:     store,
		keyer:     cache.NewDefaultKeyer(),
		namespace: "source",
		ttl:       DefaultTTL,
		attempts:  DefaultAttempts,
		delay:     DefaultDelay,
		maxBytes:  DefaultMaxBytes,
		userAgent: "butterfly",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the body at rawURL. A cached body is returned without a
// request. Only 2xx responses are cached.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	key := c.keyer.HTTPKey(c.namespace, rawURL)
	if c.ttl > 0 {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, c.namespace)
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, c.namespace)
	}

	var body []byte
	err := Retry(ctx, c.attempts, c.delay, func() error {
		var err error
		body, err = c.fetch(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	if c.ttl > 0 {
		if err := c.cache.Set(ctx, key, body, c.ttl); err == nil {
			observability.Cache().OnCacheSet(ctx, c.namespace, len(body))
		}
	}
	return body, nil
}

// Invalidate drops the cached body for rawURL.
func (c *Client) Invalidate(ctx context.Context, rawURL string) error {
	return c.cache.Delete(ctx, c.keyer.HTTPKey(c.namespace, rawURL))
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/csv, text/tab-separated-values, text/plain;q=0.9, */*;q=0.5")

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", redact(rawURL))}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp, rawURL); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", redact(rawURL))}
	}
	if int64(len(body)) > c.maxBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "response from %s exceeds %d bytes", redact(rawURL), c.maxBytes)
	}
	return body, nil
}

// checkStatus classifies a response status. 5xx and 429 are retryable.
func checkStatus(resp *http.Response, rawURL string) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return errors.New(errors.ErrCodeNotFound, "%s: %s", redact(rawURL), resp.Status)
	case code == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &RetryableError{Err: errors.Wrap(errors.ErrCodeRateLimited,
			&errors.RateLimitedError{RetryAfter: retryAfter}, "%s", redact(rawURL))}
	case code >= 500:
		return &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "%s: %s", redact(rawURL), resp.Status)}
	default:
		return errors.New(errors.ErrCodeNetwork, "%s: %s", redact(rawURL), resp.Status)
	}
}

// redact drops the query string and credentials so tokens in published
// spreadsheet links do not end up in logs.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Sprintf("<invalid url %d bytes>", len(rawURL))
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
