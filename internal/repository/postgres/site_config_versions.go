package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/domain/repositories"
)

// PostgresConfigVersionRepository implements the ConfigVersionRepository interface
type PostgresConfigVersionRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewConfigVersionRepository creates a new PostgresConfigVersionRepository
func NewConfigVersionRepository(config *RepositoryConfig) *PostgresConfigVersionRepository {
	return &PostgresConfigVersionRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Append inserts a snapshot
func (r *PostgresConfigVersionRepository) Append(ctx context.Context, version *models.ConfigVersion) error {
	data, err := json.Marshal(version.Data)
	if err != nil {
		return fmt.Errorf("encode config version: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, data, created_at)
		VALUES ($1, $2::jsonb, $3)
	`, r.tables.SiteConfigVersions)

	if _, err := GetExecutor(ctx, r.db).Exec(ctx, query, version.ID, string(data), version.CreatedAt); err != nil {
		return transportError("append config version", err)
	}
	return nil
}

// List returns the newest snapshots first
func (r *PostgresConfigVersionRepository) List(ctx context.Context, limit int) ([]models.ConfigVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, data::text, created_at
		FROM %s
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, r.tables.SiteConfigVersions)

	rows, err := GetExecutor(ctx, r.db).Query(ctx, query, limit)
	if err != nil {
		return nil, transportError("list config versions", err)
	}
	defer rows.Close()

	versions := []models.ConfigVersion{}
	for rows.Next() {
		var (
			v   models.ConfigVersion
			raw string
		)
		if err := rows.Scan(&v.ID, &raw, &v.CreatedAt); err != nil {
			return nil, transportError("scan config version", err)
		}
		if v.Data, err = decodeDocument(raw); err != nil {
			return nil, fmt.Errorf("config version %s: %w", v.ID, err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, transportError("list config versions", err)
	}

	return versions, nil
}

// Get retrieves a snapshot by id
func (r *PostgresConfigVersionRepository) Get(ctx context.Context, id string) (*models.ConfigVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, data::text, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.SiteConfigVersions)

	var (
		v   models.ConfigVersion
		raw string
	)
	err := GetExecutor(ctx, r.db).QueryRow(ctx, query, id).Scan(&v.ID, &raw, &v.CreatedAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, transportError("get config version", err)
	}

	if v.Data, err = decodeDocument(raw); err != nil {
		return nil, fmt.Errorf("config version %s: %w", id, err)
	}
	return &v, nil
}
