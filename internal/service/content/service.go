// Package content implements the content override store: markdown posts
// and videos kept as local seed files and, when configured, remote rows
// that shadow them slug by slug.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/huntrbrooks/Money-sub001/internal/config"
	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/domain/repositories"
	"github.com/huntrbrooks/Money-sub001/internal/domain/services"
	"github.com/huntrbrooks/Money-sub001/internal/obs"
	"github.com/huntrbrooks/Money-sub001/internal/utils"
)

// Deps wires the service. Remote is nil when the remote tier is not
// configured; Local is always set because it holds the seed content.
type Deps struct {
	Local  repositories.ContentRepository
	Remote repositories.ContentRepository
	Logger *slog.Logger
	Now    func() time.Time
}

// Service implements the ContentService interface
type Service struct {
	local  repositories.ContentRepository
	remote repositories.ContentRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new content service
func NewService(deps Deps) *Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		local:  deps.Local,
		remote: deps.Remote,
		logger: deps.Logger,
		now:    now,
	}
}

var _ services.ContentService = (*Service)(nil)

// authoritative returns the tier that owns writes and its name.
func (s *Service) authoritative() (repositories.ContentRepository, string) {
	if s.remote != nil {
		return s.remote, domain.BackendRemote
	}
	return s.local, domain.BackendLocal
}

type saveRequest struct {
	Type models.ContentType
	Slug string
	Body string
}

func (s *Service) validate(req *saveRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Type, validation.Required, validation.In(toAny(models.ContentTypes)...)),
		validation.Field(&req.Slug,
			validation.Required,
			validation.Length(1, utils.MaxSlugLength),
			validation.By(validateSlug),
		),
		validation.Field(&req.Body, validation.Length(0, config.MaxContentBodyBytes)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

func validateType(contentType models.ContentType) error {
	err := validation.Validate(contentType, validation.Required, validation.In(toAny(models.ContentTypes)...))
	if err != nil {
		return fmt.Errorf("%w: type: %v", domain.ErrValidation, err)
	}
	return nil
}

func validateSlug(value interface{}) error {
	slug, ok := value.(string)
	if !ok {
		return fmt.Errorf("slug must be a string")
	}
	return utils.ValidateSlug(slug)
}

func toAny(types []models.ContentType) []interface{} {
	out := make([]interface{}, len(types))
	for i, t := range types {
		out[i] = t
	}
	return out
}

// GetBySlug returns the remote entry when one exists, else the local file
func (s *Service) GetBySlug(ctx context.Context, contentType models.ContentType, slug string) (*models.ContentEntry, error) {
	if err := s.validate(&saveRequest{Type: contentType, Slug: slug}); err != nil {
		return nil, err
	}

	if s.remote != nil {
		entry, err := s.remote.Get(ctx, contentType, slug)
		if err != nil {
			return nil, fmt.Errorf("get remote %s: %w", contentType.Singular(), err)
		}
		if entry != nil {
			return s.withFrontmatter(entry), nil
		}
	}

	entry, err := s.local.Get(ctx, contentType, slug)
	if err != nil {
		return nil, fmt.Errorf("get local %s: %w", contentType.Singular(), err)
	}
	if entry == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("%s %q not found", contentType.Singular(), slug)}
	}
	return s.withFrontmatter(entry), nil
}

// withFrontmatter fills Metadata and Content. A malformed block leaves
// both empty; the raw body is still served.
func (s *Service) withFrontmatter(entry *models.ContentEntry) *models.ContentEntry {
	meta, body, err := utils.ParseFrontmatter([]byte(entry.Body))
	if err != nil {
		s.logger.Warn("malformed front matter",
			"type", entry.Type,
			"slug", entry.Slug,
			"source", entry.Source,
			"error", err,
		)
		return entry
	}
	entry.Metadata = meta
	entry.Content = body
	return entry
}

// Create stores a new entry in the authoritative tier
func (s *Service) Create(ctx context.Context, contentType models.ContentType, slug, body string) (*models.SaveResult, error) {
	if err := s.validate(&saveRequest{Type: contentType, Slug: slug, Body: body}); err != nil {
		return nil, err
	}

	if strings.TrimSpace(body) == "" {
		scaffold, err := s.scaffold(slug)
		if err != nil {
			return nil, err
		}
		body = scaffold
	}

	repo, backend := s.authoritative()

	// Not atomic with the insert; the insert itself still rejects duplicates
	exists, err := repo.Exists(ctx, contentType, slug)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", contentType.Singular(), err)
	}
	if exists {
		return nil, domain.NewSlugConflict(contentType.Singular(), slug)
	}

	entry := &models.ContentEntry{Type: contentType, Slug: slug, Body: body, Source: backend}
	if err := repo.Insert(ctx, entry); err != nil {
		return nil, err
	}

	obs.RecordContentSave(string(contentType), backend, "create")
	s.logger.Info("content created", "type", contentType, "slug", slug, "backend", backend)

	return &models.SaveResult{OK: true, SavedTo: backend}, nil
}

// scaffold is the body of an entry created without one.
func (s *Service) scaffold(slug string) (string, error) {
	title := strings.ReplaceAll(slug, "-", " ")
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	return utils.RenderFrontmatter(map[string]interface{}{
		"title": title,
		"date":  s.now().Format(time.DateOnly),
		"draft": true,
	}, "\n")
}

// Update writes body to the authoritative tier. On the remote tier a
// missing row is inserted first; on the local tier the file is simply
// written.
func (s *Service) Update(ctx context.Context, contentType models.ContentType, slug, body string) (*models.SaveResult, error) {
	if err := s.validate(&saveRequest{Type: contentType, Slug: slug, Body: body}); err != nil {
		return nil, err
	}

	repo, backend := s.authoritative()
	entry := &models.ContentEntry{Type: contentType, Slug: slug, Body: body, Source: backend}

	if s.remote != nil {
		exists, err := repo.Exists(ctx, contentType, slug)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", contentType.Singular(), err)
		}
		if !exists {
			// a concurrent insert of the same slug is fine, the update below wins
			if err := repo.Insert(ctx, entry); err != nil && !domain.IsConflict(err) {
				return nil, err
			}
		}
	}

	if err := repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	obs.RecordContentSave(string(contentType), backend, "update")
	s.logger.Info("content updated", "type", contentType, "slug", slug, "backend", backend)

	return &models.SaveResult{OK: true, SavedTo: backend}, nil
}
