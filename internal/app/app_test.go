package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huntrbrooks/Money-sub001/internal/config"
	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/storage"
)

func TestProjectRef(t *testing.T) {
	assert.Equal(t, "abc", projectRef("https://abc.supabase.co"))
	assert.Equal(t, "localhost", projectRef("http://localhost:54321"))
	assert.Equal(t, "", projectRef(""))
}

func TestS3Options(t *testing.T) {
	cfg := &config.Config{
		SupabaseURL:        "https://abc.supabase.co",
		SupabaseServiceKey: "service-key",
		S3Endpoint:         "https://abc.supabase.co/storage/v1/s3",
		S3Region:           "us-east-1",
	}

	assert.Equal(t, storage.S3Options{
		Endpoint:        "https://abc.supabase.co/storage/v1/s3",
		Region:          "us-east-1",
		AccessKeyID:     "abc",
		SecretAccessKey: "service-key",
		SessionToken:    "service-key",
	}, S3Options(cfg))

	cfg.S3AccessKeyID = "key"
	cfg.S3SecretAccessKey = "secret"
	assert.Equal(t, storage.S3Options{
		Endpoint:        "https://abc.supabase.co/storage/v1/s3",
		Region:          "us-east-1",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	}, S3Options(cfg))
}

func TestNew_LocalTier(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		DataDir:          filepath.Join(dir, "data"),
		ContentDir:       filepath.Join(dir, "content"),
		UploadsDir:       filepath.Join(dir, "uploads"),
		AuthSecret:       "secret",
		AdminCredentials: map[string]string{"admin": "pw"},
		SessionTTL:       config.DefaultSessionTTL,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	a, err := New(ctx, cfg, logger)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, domain.BackendLocal, a.Objects.Backend())

	doc, err := a.SiteConfig.Read(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.String(models.SectionTheme, "primary"))
	_, err = os.Stat(filepath.Join(cfg.DataDir, "site.json"))
	assert.NoError(t, err, "read self-heals the local file")

	_, err = a.SiteConfig.ListVersions(ctx, 10)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	res, err := a.Content.Create(ctx, models.ContentVideos, "intro", "")
	require.NoError(t, err)
	assert.Equal(t, domain.BackendLocal, res.SavedTo)

	token, _, err := a.Auth.Login(ctx, "admin", "pw")
	require.NoError(t, err)
	cred, err := a.Codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", cred.Username)
}

func TestNew_EmptySecret(t *testing.T) {
	_, err := New(context.Background(), &config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestMigrate_RequiresURL(t *testing.T) {
	err := Migrate(context.Background(), &config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
