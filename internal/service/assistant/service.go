package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	domainservices "github.com/huntrbrooks/Money-sub001/internal/domain/services"
)

// MaxInstructionLength bounds one instruction.
const MaxInstructionLength = 2000

// Service implements the AssistantService interface
type Service struct {
	mutator *Mutator
	configs domainservices.SiteConfigService
	logger  *slog.Logger
}

// NewService creates a new assistant service
func NewService(mutator *Mutator, configs domainservices.SiteConfigService, logger *slog.Logger) *Service {
	return &Service{mutator: mutator, configs: configs, logger: logger}
}

var _ domainservices.AssistantService = (*Service)(nil)

// Apply reads the current document, applies instruction and optionally
// writes the result through the configuration store
func (s *Service) Apply(ctx context.Context, instruction string, save bool) (*models.AssistantResult, error) {
	instruction = strings.TrimSpace(instruction)
	err := validation.Validate(instruction,
		validation.Required,
		validation.RuneLength(1, MaxInstructionLength),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: instruction: %v", domain.ErrValidation, err)
	}

	current, err := s.configs.Read(ctx)
	if err != nil {
		return nil, err
	}

	updated, changes, err := s.mutator.Apply(instruction, current)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	result := &models.AssistantResult{Config: updated, Changes: changes}
	if !save || len(changes) == 0 {
		return result, nil
	}

	written, err := s.configs.Write(ctx, updated)
	if err != nil {
		return nil, err
	}
	result.Saved = true
	result.Version = written.Version
	result.UpdatedAt = &written.UpdatedAt

	s.logger.Info("assistant instruction saved",
		"changes", len(changes),
		"version", written.Version,
	)

	return result, nil
}
