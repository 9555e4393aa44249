package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huntrbrooks/Money-sub001/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	DB     repositories.DBTX // *pgxpool.Pool in production
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	SiteConfig         string
	SiteConfigVersions string
	ContentEntries     string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		SiteConfig:         fmt.Sprintf("%ssite_config", prefix),
		SiteConfigVersions: fmt.Sprintf("%ssite_config_versions", prefix),
		ContentEntries:     fmt.Sprintf("%scontent_entries", prefix),
	}
}

// CreateConnectionPool creates a pgx pool for the Supabase database.
//
// Port 6543 is Supabase's transaction pooler (PgBouncer), which rejects
// prepared statements. On that port the pool switches to
// QueryExecModeCacheDescribe: extended protocol with cached descriptions
// only, so JSONB parameters still get type information. A
// default_query_exec_mode parameter in the URL takes precedence.
//
// Table names are interpolated with fmt.Sprintf before the SQL reaches the
// server, so each prefix gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// one admin and public reads; a small pool is plenty
	config.MaxConns = 10
	config.MinConns = 1

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in ctx, or db when there is none.
// Repositories call it on every query so they join an ExecTx transaction
// automatically.
func GetExecutor(ctx context.Context, db repositories.DBTX) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return db
}
