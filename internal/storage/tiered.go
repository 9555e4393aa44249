// Package storage implements the dual-tier object store: a local directory
// tree and an S3-compatible bucket, chosen once per process.
package storage

import (
	"context"

	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/domain/repositories"
)

// Select returns remote when the remote tier is configured, else local.
// Every store in the process uses the same switch; there is no per-call
// choice and no replication between tiers.
func Select[T any](remoteConfigured bool, remote, local T) T {
	if remoteConfigured {
		return remote
	}
	return local
}

// BackendName maps the process-wide switch to domain.BackendRemote or
// domain.BackendLocal.
func BackendName(remoteConfigured bool) string {
	return Select(remoteConfigured, domain.BackendRemote, domain.BackendLocal)
}

// Tiered routes every call to exactly one backend and validates keys
// before either backend sees them.
type Tiered struct {
	active repositories.ObjectStore
	remote bool
}

// NewTiered fixes the active backend. remote may be nil when
// remoteConfigured is false.
func NewTiered(remoteConfigured bool, remote, local repositories.ObjectStore) *Tiered {
	return &Tiered{
		active: Select(remoteConfigured, remote, local),
		remote: remoteConfigured,
	}
}

// RemoteConfigured reports which tier is active.
func (t *Tiered) RemoteConfigured() bool {
	return t.remote
}

// Backend names the active tier (domain.BackendRemote or domain.BackendLocal).
func (t *Tiered) Backend() string {
	return BackendName(t.remote)
}

// Put creates or replaces the object under key.
func (t *Tiered) Put(ctx context.Context, key string, data []byte, meta models.ObjectMetadata) error {
	key, err := CleanKey(key)
	if err != nil {
		return err
	}
	return t.active.Put(ctx, key, data, meta)
}

// Get returns the object under key, or nil, nil when absent.
func (t *Tiered) Get(ctx context.Context, key string) (*models.Object, error) {
	key, err := CleanKey(key)
	if err != nil {
		return nil, err
	}
	return t.active.Get(ctx, key)
}
