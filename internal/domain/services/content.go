package services

import (
	"context"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// ContentService serves posts and videos with remote entries shadowing
// local files of the same slug
type ContentService interface {
	// List returns every entry of a type, newest date first.
	List(ctx context.Context, contentType models.ContentType) ([]models.ContentSummary, error)

	// GetBySlug returns one entry or a domain.ErrNotFound error.
	GetBySlug(ctx context.Context, contentType models.ContentType, slug string) (*models.ContentEntry, error)

	// Create stores a new entry. An existing slug is a *domain.ConflictError.
	Create(ctx context.Context, contentType models.ContentType, slug, body string) (*models.SaveResult, error)

	// Update stores body for slug, creating the entry when needed.
	Update(ctx context.Context, contentType models.ContentType, slug, body string) (*models.SaveResult, error)
}
