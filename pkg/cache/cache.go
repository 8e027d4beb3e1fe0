// Package cache stores processed networks keyed by their source content.
//
// A cache entry holds the JSON of one processed network plus the anomalies
// found while processing it, so a rerun over unchanged files skips the
// pipeline and still reports every anomaly. Keys come from a [Keyer] and
// include the pipeline version, so a new release never reads stale
// entries.
//
// Backends:
//   - [FileCache]: one JSON file per entry under the XDG cache directory
//   - [RedisCache]: shared cache for several machines
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Keyer derives cache keys.
type Keyer interface {
	// NetworkKey returns the key of the processed network of one file.
	NetworkKey(name string, content []byte, opts NetworkKeyOpts) string
}

// NetworkKeyOpts holds everything besides the file that affects the
// processed result.
type NetworkKeyOpts struct {
	// Version is the pipeline version.
	Version string `json:"version"`
}

// DefaultKeyer builds keys of the form "network:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// NetworkKey hashes the file name, the file content and opts.
func (DefaultKeyer) NetworkKey(name string, content []byte, opts NetworkKeyOpts) string {
	return hashKey("network", name, Hash(content), opts)
}
