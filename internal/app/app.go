// Package app wires configuration into the stores and services shared by
// the server and the operator CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	tokenauth "github.com/huntrbrooks/Money-sub001/internal/auth"
	"github.com/huntrbrooks/Money-sub001/internal/config"
	"github.com/huntrbrooks/Money-sub001/internal/domain/repositories"
	"github.com/huntrbrooks/Money-sub001/internal/ids"
	"github.com/huntrbrooks/Money-sub001/internal/migrations"
	"github.com/huntrbrooks/Money-sub001/internal/repository/filesystem"
	"github.com/huntrbrooks/Money-sub001/internal/repository/postgres"
	"github.com/huntrbrooks/Money-sub001/internal/service/assets"
	"github.com/huntrbrooks/Money-sub001/internal/service/assistant"
	"github.com/huntrbrooks/Money-sub001/internal/service/auth"
	"github.com/huntrbrooks/Money-sub001/internal/service/content"
	"github.com/huntrbrooks/Money-sub001/internal/service/siteconfig"
	"github.com/huntrbrooks/Money-sub001/internal/storage"
)

// App holds the services for one process. Close releases the database pool.
type App struct {
	Config     *config.Config
	Codec      *tokenauth.HMACCodec
	SiteConfig *siteconfig.Service
	Assistant  *assistant.Service
	Content    *content.Service
	Auth       *auth.Service
	Assets     *assets.Service
	Objects    *storage.Tiered

	pool *pgxpool.Pool
}

// New builds every service on the tier selected by cfg.RemoteConfigured().
// The remote tier needs a reachable database; the local tier touches
// nothing until the first call.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	codec, err := tokenauth.NewHMACCodec([]byte(cfg.AuthSecret))
	if err != nil {
		return nil, fmt.Errorf("create token codec: %w", err)
	}

	a := &App{Config: cfg, Codec: codec}

	localContent := filesystem.NewContentFiles(cfg.ContentDir, logger)
	localObjects := storage.NewFileStore(cfg.UploadsDir, logger)

	configDeps := siteconfig.Deps{
		Repo:   filesystem.NewSiteConfigFile(cfg.DataDir, logger),
		Logger: logger,
	}
	contentDeps := content.Deps{Local: localContent, Logger: logger}
	var remoteObjects repositories.ObjectStore

	if cfg.RemoteConfigured() {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
		if err != nil {
			return nil, fmt.Errorf("connect remote database: %w", err)
		}
		a.pool = pool

		if cfg.RunMigrations {
			if err := Migrate(ctx, cfg, logger); err != nil {
				pool.Close()
				return nil, err
			}
		}

		repoConfig := &postgres.RepositoryConfig{
			DB:     pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		configDeps.Repo = postgres.NewSiteConfigRepository(repoConfig)
		configDeps.Versions = postgres.NewConfigVersionRepository(repoConfig)
		configDeps.Tx = postgres.NewTransactionManager(pool, logger)
		contentDeps.Remote = postgres.NewContentRepository(repoConfig)

		client, err := storage.NewS3Client(ctx, S3Options(cfg))
		if err != nil {
			pool.Close()
			return nil, err
		}
		remoteObjects = storage.NewS3Store(client, cfg.StorageBucket, logger)
	}

	a.Objects = storage.NewTiered(cfg.RemoteConfigured(), remoteObjects, localObjects)
	a.SiteConfig = siteconfig.NewService(configDeps)
	a.Assistant = assistant.NewService(assistant.NewMutator(logger), a.SiteConfig, logger)
	a.Content = content.NewService(contentDeps)
	a.Assets = assets.NewService(a.Objects, ids.NewAt, logger)
	a.Auth = auth.NewService(auth.Deps{
		Codec:       codec,
		Credentials: cfg.AdminCredentials,
		TTL:         cfg.SessionTTL,
		Logger:      logger,
	})

	if len(cfg.AdminCredentials) == 0 {
		logger.Warn("ADMIN_CREDENTIALS is empty; admin login is disabled")
	}

	logger.Info("storage tier selected",
		"backend", a.Objects.Backend(),
		"data_dir", filepath.Clean(cfg.DataDir),
		"content_dir", filepath.Clean(cfg.ContentDir),
		"objects", describe(remoteObjects, localObjects, cfg),
	)

	return a, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// Migrate applies the goose migrations for cfg.TablePrefix.
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.SupabaseDBURL == "" {
		return fmt.Errorf("SUPABASE_DB_URL is required to run migrations")
	}

	db, err := migrations.Open(cfg.SupabaseDBURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(ctx, db, cfg.TablePrefix); err != nil {
		return err
	}
	logger.Info("migrations applied", "table_prefix", cfg.TablePrefix)
	return nil
}

// S3Options derives storage credentials. Without explicit S3 keys the
// service role key is used as a session token, with the project ref as
// access key id, which Supabase Storage accepts.
func S3Options(cfg *config.Config) storage.S3Options {
	opts := storage.S3Options{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	}
	if opts.AccessKeyID == "" {
		opts.AccessKeyID = projectRef(cfg.SupabaseURL)
		opts.SecretAccessKey = cfg.SupabaseServiceKey
		opts.SessionToken = cfg.SupabaseServiceKey
	}
	return opts
}

// projectRef returns "abc" for https://abc.supabase.co.
func projectRef(supabaseURL string) string {
	u, err := url.Parse(supabaseURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	ref, _, _ := strings.Cut(u.Hostname(), ".")
	return ref
}

func describe(remote repositories.ObjectStore, local *storage.FileStore, cfg *config.Config) string {
	if remote != nil {
		return fmt.Sprintf("s3://%s (%s)", cfg.StorageBucket, cfg.S3Endpoint)
	}
	return local.String()
}
