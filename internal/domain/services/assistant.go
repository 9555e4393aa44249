package services

import (
	"context"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// AssistantService applies free-text instructions to the site configuration
type AssistantService interface {
	// Apply edits the current document. The result is persisted only
	// when save is true and at least one rule matched.
	Apply(ctx context.Context, instruction string, save bool) (*models.AssistantResult, error)
}
