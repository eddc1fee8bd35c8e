// Package cache stores finished analyses keyed by the content of their input.
//
// Three backends implement [Cache]:
//   - [FileCache] keeps entries as files under the user cache directory (CLI)
//   - [RedisCache] shares entries between server instances
//   - [NullCache] never stores anything (--no-cache)
//
// Keys come from a [Keyer] so that deployments can namespace them with
// [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Default time-to-live for cached analyses. Results depend only on the input
// bytes, so entries stay valid until the search code changes.
const TTLAnalysis = 30 * 24 * time.Hour

// Cache is a byte store with per-entry expiry. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the cache.
	Close() error
}

// AnalysisKeyOpts holds the options that change the outcome or the shape of
// a stored analysis.
type AnalysisKeyOpts struct {
	Registry string
	Version  string
}

// Keyer builds cache keys.
type Keyer interface {
	// AnalysisKey returns the key of the analysis of the input with the
	// given content hash.
	AnalysisKey(inputHash string, opts AnalysisKeyOpts) string
}

// DefaultKeyer produces "analysis:<registry>:<version>:<input hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// AnalysisKey implements Keyer.
func (DefaultKeyer) AnalysisKey(inputHash string, opts AnalysisKeyOpts) string {
	return analysisKey(inputHash, opts)
}
