package repositories

import (
	"context"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// ObjectStore is a key-addressed binary store.
type ObjectStore interface {
	// Put creates or replaces the object stored under key.
	Put(ctx context.Context, key string, data []byte, meta models.ObjectMetadata) error

	// Get returns the object, or nil, nil if nothing is stored under key.
	Get(ctx context.Context, key string) (*models.Object, error)
}
