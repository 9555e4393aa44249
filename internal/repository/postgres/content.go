package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/domain/repositories"
)

// PostgresContentRepository implements the ContentRepository interface
type PostgresContentRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewContentRepository creates a new PostgresContentRepository
func NewContentRepository(config *RepositoryConfig) *PostgresContentRepository {
	return &PostgresContentRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Get retrieves one entry
func (r *PostgresContentRepository) Get(ctx context.Context, contentType models.ContentType, slug string) (*models.ContentEntry, error) {
	query := fmt.Sprintf(`
		SELECT slug, body, updated_at
		FROM %s
		WHERE type = $1 AND slug = $2
	`, r.tables.ContentEntries)

	var (
		entry     = models.ContentEntry{Type: contentType, Source: domain.BackendRemote}
		updatedAt time.Time
	)
	err := GetExecutor(ctx, r.db).QueryRow(ctx, query, string(contentType), slug).Scan(
		&entry.Slug,
		&entry.Body,
		&updatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, transportError("get content entry", err)
	}

	entry.UpdatedAt = &updatedAt
	return &entry, nil
}

// List retrieves every entry of a type
func (r *PostgresContentRepository) List(ctx context.Context, contentType models.ContentType) ([]models.ContentEntry, error) {
	query := fmt.Sprintf(`
		SELECT slug, body, updated_at
		FROM %s
		WHERE type = $1
	`, r.tables.ContentEntries)

	rows, err := GetExecutor(ctx, r.db).Query(ctx, query, string(contentType))
	if err != nil {
		return nil, transportError("list content entries", err)
	}
	defer rows.Close()

	entries := []models.ContentEntry{}
	for rows.Next() {
		var (
			entry     = models.ContentEntry{Type: contentType, Source: domain.BackendRemote}
			updatedAt time.Time
		)
		if err := rows.Scan(&entry.Slug, &entry.Body, &updatedAt); err != nil {
			return nil, transportError("scan content entry", err)
		}
		entry.UpdatedAt = &updatedAt
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, transportError("list content entries", err)
	}

	return entries, nil
}

// Exists checks for a row without reading the body
func (r *PostgresContentRepository) Exists(ctx context.Context, contentType models.ContentType, slug string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(SELECT 1 FROM %s WHERE type = $1 AND slug = $2)
	`, r.tables.ContentEntries)

	var exists bool
	if err := GetExecutor(ctx, r.db).QueryRow(ctx, query, string(contentType), slug).Scan(&exists); err != nil {
		return false, transportError("check content entry", err)
	}
	return exists, nil
}

// Insert creates a new row. A duplicate (type, slug) is a conflict.
func (r *PostgresContentRepository) Insert(ctx context.Context, entry *models.ContentEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (type, slug, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`, r.tables.ContentEntries)

	now := time.Now().UTC()
	if _, err := GetExecutor(ctx, r.db).Exec(ctx, query, string(entry.Type), entry.Slug, entry.Body, now); err != nil {
		if IsPgDuplicateError(err) {
			return domain.NewSlugConflict(entry.Type.Singular(), entry.Slug)
		}
		return transportError("insert content entry", err)
	}

	entry.UpdatedAt = &now
	r.logger.Debug("content row inserted", "type", entry.Type, "slug", entry.Slug)
	return nil
}

// Update replaces the body of an existing row
func (r *PostgresContentRepository) Update(ctx context.Context, entry *models.ContentEntry) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET body = $3, updated_at = $4
		WHERE type = $1 AND slug = $2
	`, r.tables.ContentEntries)

	now := time.Now().UTC()
	tag, err := GetExecutor(ctx, r.db).Exec(ctx, query, string(entry.Type), entry.Slug, entry.Body, now)
	if err != nil {
		return transportError("update content entry", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("%s %q not found", entry.Type.Singular(), entry.Slug)}
	}

	entry.UpdatedAt = &now
	r.logger.Debug("content row updated", "type", entry.Type, "slug", entry.Slug)
	return nil
}
