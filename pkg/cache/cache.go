// Package cache provides caching for computed imposition plans and rendered
// artifacts.
//
// The Cache interface abstracts over storage backends:
//   - FileCache: directory-based storage for CLI usage
//   - RedisCache: shared storage for server deployments
//   - NullCache: no-op cache for tests and --no-cache runs
//
// Cache keys are produced by a Keyer so that every input influencing a result
// (page count, N-up value, target ratio, render options) is part of the key.
package cache

import (
	"context"
	"time"
)

// TTLs for the different cached value kinds. Plans and artifacts are pure
// functions of their keys, so long TTLs are safe; page counts are keyed by
// document hash and equally stable.
const (
	TTLPlan     = 30 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
	TTLCount    = 30 * 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry;
	// a negative TTL marks the value as already expired.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PlanKeyOpts are the inputs that determine an imposition plan.
type PlanKeyOpts struct {
	InputPages   int
	PagesPerSide int
	TargetRatio  float64
}

// ArtifactKeyOpts are the render options that determine an artifact.
type ArtifactKeyOpts struct {
	Format      string
	ShowNumbers bool
	CutLines    bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// PlanKey generates a key for a computed imposition plan.
	PlanKey(opts PlanKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, derived from the
	// plan content hash and the render options.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string

	// CountKey generates a key for a document page count, derived from the
	// document content hash.
	CountKey(docHash string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey generates a key for a computed imposition plan.
func (k *DefaultKeyer) PlanKey(opts PlanKeyOpts) string {
	return hashKey("plan", opts.InputPages, opts.PagesPerSide, opts.TargetRatio)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts.Format, opts.ShowNumbers, opts.CutLines)
}

// CountKey generates a key for a document page count.
func (k *DefaultKeyer) CountKey(docHash string) string {
	return hashKey("count", docHash)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// ScopedKeyer prefixes every key with a namespace so that multiple consumers
// can share one backend (a Redis instance serving several API versions, say)
// without key collisions.
type ScopedKeyer struct {
	scope string
	inner Keyer
}

// NewScopedKeyer wraps inner (the default keyer when nil) with a scope prefix.
func NewScopedKeyer(scope string, inner Keyer) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{scope: scope, inner: inner}
}

// PlanKey generates a scoped key for a computed imposition plan.
func (k *ScopedKeyer) PlanKey(opts PlanKeyOpts) string {
	return k.scope + ":" + k.inner.PlanKey(opts)
}

// ArtifactKey generates a scoped key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return k.scope + ":" + k.inner.ArtifactKey(planHash, opts)
}

// CountKey generates a scoped key for a document page count.
func (k *ScopedKeyer) CountKey(docHash string) string {
	return k.scope + ":" + k.inner.CountKey(docHash)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
