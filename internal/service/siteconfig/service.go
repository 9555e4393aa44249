// Package siteconfig implements the site configuration store: defaults,
// section-by-section merging, persistence and version history.
package siteconfig

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/huntrbrooks/Money-sub001/internal/config"
	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/domain/repositories"
	"github.com/huntrbrooks/Money-sub001/internal/domain/services"
	"github.com/huntrbrooks/Money-sub001/internal/ids"
	"github.com/huntrbrooks/Money-sub001/internal/obs"
)

// Deps wires the service to one storage tier. Versions and Tx are set
// only for the remote tier; leaving Versions nil selects local behavior.
type Deps struct {
	Repo     repositories.SiteConfigRepository
	Versions repositories.ConfigVersionRepository
	Tx       repositories.TransactionManager
	Logger   *slog.Logger

	// Optional; default to time.Now and ids.NewAt
	Now   func() time.Time
	NewID func(time.Time) string
}

// Service implements the SiteConfigService interface
type Service struct {
	repo     repositories.SiteConfigRepository
	versions repositories.ConfigVersionRepository
	tx       repositories.TransactionManager
	logger   *slog.Logger
	now      func() time.Time
	newID    func(time.Time) string
}

// NewService creates a new site configuration service
func NewService(deps Deps) *Service {
	s := &Service{
		repo:     deps.Repo,
		versions: deps.Versions,
		tx:       deps.Tx,
		logger:   deps.Logger,
		now:      deps.Now,
		newID:    deps.NewID,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = ids.NewAt
	}
	return s
}

var _ services.SiteConfigService = (*Service)(nil)

func (s *Service) remote() bool {
	return s.versions != nil
}

func (s *Service) backend() string {
	if s.remote() {
		return domain.BackendRemote
	}
	return domain.BackendLocal
}

// Read loads the document and merges defaults into it
func (s *Service) Read(ctx context.Context) (models.SiteConfiguration, error) {
	doc, err := s.repo.Load(ctx)

	var reason string
	switch {
	case err == nil && doc != nil:
		return Merge(Defaults(), doc), nil
	case err == nil:
		reason = "absent"
		s.logger.Debug("no site config stored, writing defaults", "backend", s.backend())
	case errors.Is(err, domain.ErrCorrupt):
		reason = "corrupt"
		s.logger.Warn("stored site config is corrupt, replacing with defaults",
			"backend", s.backend(),
			"error", err,
		)
	default:
		// transport failures are not a first run; overwriting could destroy live data
		return nil, fmt.Errorf("read site config: %w", err)
	}

	defaults := Defaults()
	if err := s.repo.Save(ctx, defaults); err != nil {
		return nil, fmt.Errorf("bootstrap site config: %w", err)
	}
	obs.RecordSelfHeal(reason)

	return Defaults(), nil
}

// Write merges doc over the defaults and persists it. On the remote tier
// the document and its snapshot are written in one transaction.
func (s *Service) Write(ctx context.Context, doc models.SiteConfiguration) (*models.WriteResult, error) {
	if doc == nil {
		return nil, &domain.ValidationError{Message: "site config must be a JSON object"}
	}

	now := s.now().UTC()
	result := &models.WriteResult{UpdatedAt: now}
	meta := models.ConfigMeta{UpdatedAt: now.Format(time.RFC3339)}
	if s.remote() {
		result.Version = s.newID(now)
		meta.Version = result.Version
	}

	merged := Merge(Defaults(), doc.WithoutMeta()).WithMeta(meta)

	if s.remote() {
		err := s.tx.ExecTx(ctx, func(txCtx context.Context) error {
			if err := s.repo.Save(txCtx, merged); err != nil {
				return err
			}
			return s.versions.Append(txCtx, &models.ConfigVersion{
				ID:        result.Version,
				CreatedAt: now,
				Data:      merged,
			})
		})
		if err != nil {
			return nil, fmt.Errorf("write site config: %w", err)
		}
	} else if err := s.repo.Save(ctx, merged); err != nil {
		return nil, fmt.Errorf("write site config: %w", err)
	}

	obs.RecordConfigWrite(s.backend())
	s.logger.Info("site config written",
		"backend", s.backend(),
		"version", result.Version,
		"sections", len(doc),
	)

	return result, nil
}

// ListVersions returns snapshots newest first. limit <= 0 selects the default.
func (s *Service) ListVersions(ctx context.Context, limit int) ([]models.ConfigVersion, error) {
	if !s.remote() {
		return nil, &domain.NotConfiguredError{Operation: "listing config versions"}
	}

	switch {
	case limit <= 0:
		limit = config.DefaultVersionListLimit
	case limit > config.MaxVersionListLimit:
		limit = config.MaxVersionListLimit
	}

	versions, err := s.versions.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list config versions: %w", err)
	}
	return versions, nil
}

// Rollback re-writes a snapshot. The rollback itself becomes a new version.
func (s *Service) Rollback(ctx context.Context, versionID string) (*models.WriteResult, error) {
	if !s.remote() {
		return nil, &domain.NotConfiguredError{Operation: "rollback"}
	}
	if versionID == "" {
		return nil, &domain.ValidationError{Message: "versionId is required"}
	}

	version, err := s.versions.Get(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("get config version: %w", err)
	}
	if version == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("config version %q not found", versionID)}
	}

	s.logger.Info("rolling back site config", "from_version", versionID)
	return s.Write(ctx, version.Data.WithoutMeta())
}
