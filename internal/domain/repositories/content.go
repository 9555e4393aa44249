package repositories

import (
	"context"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// ContentRepository stores slug-keyed markdown entries per content type.
type ContentRepository interface {
	// Get returns the entry, or nil, nil if no entry exists for slug.
	Get(ctx context.Context, contentType models.ContentType, slug string) (*models.ContentEntry, error)

	// List returns every entry of a type in no particular order.
	List(ctx context.Context, contentType models.ContentType) ([]models.ContentEntry, error)

	// Exists reports whether an entry is stored for slug.
	Exists(ctx context.Context, contentType models.ContentType, slug string) (bool, error)

	// Insert stores a new entry.
	Insert(ctx context.Context, entry *models.ContentEntry) error

	// Update replaces the body of an entry.
	Update(ctx context.Context, entry *models.ContentEntry) error
}
