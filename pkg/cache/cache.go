// Package cache stores computed word lists, layouts and rendered artifacts.
//
// All backends implement [Cache], a byte-oriented key/value store with
// per-entry TTLs. Keys are produced by a [Keyer] from content hashes and the
// options that influence the cached value, so a change to any layout option
// yields a new key instead of a stale hit.
//
// Backends:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [MemoryCache]: process-local map, used by the API server by default
//   - [RedisCache]: shared cache for API server replicas
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached value type.
const (
	// TTLWords applies to word lists extracted from text sources.
	TTLWords = 24 * time.Hour

	// TTLLayout applies to computed layouts. Layouts are deterministic, so
	// the TTL only bounds disk usage.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered SVG, PNG and JSON output.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value store for serialized pipeline results.
//
// Get reports a miss with hit == false and a nil error. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
