package services

import (
	"context"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// SiteConfigService owns the site configuration document
type SiteConfigService interface {
	// Read returns the current document with defaults merged in.
	// An absent or corrupt stored document is replaced by the defaults,
	// which are persisted and returned.
	Read(ctx context.Context) (models.SiteConfiguration, error)

	// Write merges doc over the defaults and persists the result as the
	// current document. Partial documents are allowed.
	Write(ctx context.Context, doc models.SiteConfiguration) (*models.WriteResult, error)

	// ListVersions returns the newest snapshots first.
	// Fails with domain.ErrNotConfigured on the local backend.
	ListVersions(ctx context.Context, limit int) ([]models.ConfigVersion, error)

	// Rollback writes the named snapshot as a new current document.
	// Fails with domain.ErrNotConfigured on the local backend.
	Rollback(ctx context.Context, versionID string) (*models.WriteResult, error)
}
