package services

import (
	"context"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// AssetService stores uploaded files in the active storage tier
type AssetService interface {
	// Upload stores data under a generated key derived from filename.
	Upload(ctx context.Context, filename string, data []byte, contentType string) (*models.UploadResult, error)

	// Fetch returns the object or a domain.ErrNotFound error.
	Fetch(ctx context.Context, key string) (*models.Object, error)
}
