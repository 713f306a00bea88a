// Package cache stores rendered frames so repeated renders of an unchanged
// scene skip rasterisation.
//
// Keys come from a [Keyer] and are derived from a hash of the frame's
// primitives plus the output options, so identical frames within a scene
// (every frame of a Wait, for instance) share a single entry.
//
// Three backends are provided: [FileCache] for the CLI, [RedisCache] for a
// shared server and [NullCache] when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Clearer is implemented by caches that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}

// DefaultTTL is how long rendered frames are kept.
const DefaultTTL = 7 * 24 * time.Hour
