package repositories

import (
	"context"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// SiteConfigRepository stores the current site configuration document.
// Implemented by the remote table tier and the local file tier.
type SiteConfigRepository interface {
	// Load returns the stored document.
	// Returns nil, nil if no document exists yet.
	// Returns an error matching domain.ErrCorrupt when a document exists but cannot be decoded.
	Load(ctx context.Context) (models.SiteConfiguration, error)

	// Save replaces the stored document (create-or-replace).
	Save(ctx context.Context, doc models.SiteConfiguration) error
}

// ConfigVersionRepository is the append-only snapshot history (remote tier only).
type ConfigVersionRepository interface {
	// Append stores a new snapshot. Snapshots are never updated or deleted.
	Append(ctx context.Context, version *models.ConfigVersion) error

	// List returns at most limit snapshots, newest first.
	List(ctx context.Context, limit int) ([]models.ConfigVersion, error)

	// Get returns the snapshot with the given id, or nil, nil if absent.
	Get(ctx context.Context, id string) (*models.ConfigVersion, error)
}
