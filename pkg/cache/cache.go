// Package cache stores rendered documents so identical render requests can
// skip the remote service.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything (the default; rendering is uncached)
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared storage for the relay server and multiple hosts
//
// Keys come from [RenderKey], which hashes the request target and body so
// credentials never appear in a key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the stored value and true on a hit. A miss, including an
	// expired entry, is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// BackendName returns a short label for c's backend, used in logs and
// metrics.
func BackendName(c Cache) string {
	switch c.(type) {
	case nil, NullCache, *NullCache:
		return "none"
	case *FileCache:
		return "file"
	case *RedisCache:
		return "redis"
	default:
		return "custom"
	}
}
