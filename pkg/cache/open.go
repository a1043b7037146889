package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	// Backend is one of "file" (default), "redis" or "none".
	Backend string
	// Dir is the file cache directory. Defaults to [DefaultDir].
	Dir   string
	Redis RedisConfig
}

// Open creates the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be one of: file, redis, none)", ErrUnknownBackend, cfg.Backend)
	}
}

// DefaultDir returns the user cache directory for butterfly, for example
// ~/.cache/butterfly on Linux.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(base, "butterfly"), nil
}

// Clearer is implemented by backends that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Clear empties c if its backend supports it. It returns the number of
// removed entries.
func Clear(ctx context.Context, c Cache) (int, error) {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return 0, nil
}
