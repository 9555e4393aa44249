package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/domain/repositories"
)

// SiteConfigRowID is the fixed primary key of the single configuration row.
const SiteConfigRowID = "site"

// PostgresSiteConfigRepository implements the SiteConfigRepository interface
type PostgresSiteConfigRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewSiteConfigRepository creates a new PostgresSiteConfigRepository
func NewSiteConfigRepository(config *RepositoryConfig) *PostgresSiteConfigRepository {
	return &PostgresSiteConfigRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Load retrieves the current document
func (r *PostgresSiteConfigRepository) Load(ctx context.Context) (models.SiteConfiguration, error) {
	query := fmt.Sprintf(`
		SELECT data::text
		FROM %s
		WHERE id = $1
	`, r.tables.SiteConfig)

	var raw string
	err := GetExecutor(ctx, r.db).QueryRow(ctx, query, SiteConfigRowID).Scan(&raw)
	if err != nil {
		if IsPgNoRowsError(err) {
			// Not bootstrapped yet - return nil (not an error)
			return nil, nil
		}
		return nil, transportError("load site config", err)
	}

	return decodeDocument(raw)
}

// Save upserts the single row
func (r *PostgresSiteConfigRepository) Save(ctx context.Context, doc models.SiteConfiguration) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode site config: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, data, updated_at)
		VALUES ($1, $2::jsonb, $3)
		ON CONFLICT (id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`, r.tables.SiteConfig)

	if _, err := GetExecutor(ctx, r.db).Exec(ctx, query, SiteConfigRowID, string(data), time.Now().UTC()); err != nil {
		return transportError("save site config", err)
	}

	r.logger.Debug("site config saved", "backend", domain.BackendRemote, "table", r.tables.SiteConfig)
	return nil
}

// decodeDocument parses a JSONB value. Anything that is not a JSON object
// is reported as corrupt.
func decodeDocument(raw string) (models.SiteConfiguration, error) {
	var doc models.SiteConfiguration
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorrupt, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", domain.ErrCorrupt)
	}
	return doc, nil
}
