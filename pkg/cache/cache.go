// Package cache stores fetched source text between runs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for servers running side by side
//   - [NullCache]: stores nothing
//
// [Open] picks a backend from a [Config].
//
// # Keys
//
// Keys come from a [Keyer] so every caller namespaces them the same way:
//
//	key := cache.NewDefaultKeyer().HTTPKey("source", url)
//
// Only raw inputs are cached. Parsed records and layouts are recomputed on
// every call.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey returns the key for a response fetched from key (usually a
	// URL) within namespace.
	HTTPKey(namespace, key string) string
}

// DefaultKeyer hashes the variable part of every key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<sha256(key)>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return hashKey("http:"+namespace, key)
}
