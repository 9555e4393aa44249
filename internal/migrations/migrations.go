// Package migrations holds the remote schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var Migrations embed.FS

// PrefixEnv is the variable the SQL files read their table prefix from
// (goose ENVSUB).
const PrefixEnv = "TABLE_PREFIX"

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Open connects through the pgx database/sql driver, which goose needs.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Up applies all pending migrations for the given table prefix. Each
// prefix keeps its own goose version table.
func Up(ctx context.Context, db *sql.DB, prefix string) error {
	// ENVSUB only reads the process environment
	if err := os.Setenv(PrefixEnv, prefix); err != nil {
		return fmt.Errorf("set %s: %w", PrefixEnv, err)
	}

	goose.SetBaseFS(Migrations)
	goose.SetTableName(prefix + "goose_db_version")
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, "sql"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
