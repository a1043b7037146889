// Package httputil fetches remote sources over HTTP.
//
// # Overview
//
//   - [Client]: GET with response caching and retry
//   - [Retry]: automatic retry with exponential backoff
//
// # Client
//
// [Client.Get] is used for spreadsheet exports published at a URL. Response
// bodies are stored in a [cache.Cache] under a key from [cache.Keyer], so a
// repeated run reads the cached body instead of the network:
//
//	c := httputil.NewClient(store, httputil.WithTTL(time.Hour))
//	body, err := c.Get(ctx, "https://example.com/sheet.csv")
//
// Errors carry codes from package errors: NOT_FOUND for 404 and 410,
// RATE_LIMITED for 429, NETWORK_ERROR otherwise.
//
// # Retry
//
// [Retry] wraps an operation with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Only errors wrapped in [RetryableError] are retried; everything else is
// returned at once.
//
// # Configuration
//
// Default settings:
//
//   - Timeout: 30 seconds
//   - Cache TTL: 1 hour
//   - Attempts: 3
//   - Base backoff: 1 second, doubling
package httputil
