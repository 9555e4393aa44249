package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "TABLE_PREFIX", "SUPABASE_URL", "SUPABASE_SERVICE_ROLE_KEY",
		"SUPABASE_DB_URL", "SUPABASE_S3_ENDPOINT", "ADMIN_AUTH_SECRET", "ADMIN_CREDENTIALS",
		"SESSION_TTL", "DATA_DIR", "CONTENT_DIR", "UPLOADS_DIR", "RUN_MIGRATIONS",
		"CORS_ORIGINS", "SUPABASE_STORAGE_BUCKET", "SUPABASE_S3_REGION", "SUPABASE_S3_ACCESS_KEY_ID",
		"SUPABASE_S3_SECRET_ACCESS_KEY", "LOGIN_RATE_PER_MINUTE", "LOG_DIR", "LOG_MAX_FILES",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	c := Load()

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "dev", c.Environment)
	assert.Equal(t, "dev_", c.TablePrefix)
	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, "content", c.ContentDir)
	assert.Equal(t, "public/uploads", c.UploadsDir)
	assert.Equal(t, DefaultSessionTTL, c.SessionTTL)
	assert.Equal(t, "dev-only-admin-secret", c.AuthSecret)
	assert.False(t, c.RemoteConfigured())
	assert.Empty(t, c.S3Endpoint)
	assert.NoError(t, c.Validate())
}

func TestLoad_RemoteConfiguredNeedsBothCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co/")

	c := Load()
	assert.False(t, c.RemoteConfigured(), "endpoint alone is not enough")
	assert.Equal(t, "https://abc.supabase.co/storage/v1/s3", c.S3Endpoint)

	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
	c = Load()
	assert.True(t, c.RemoteConfigured())

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_DB_URL")

	t.Setenv("SUPABASE_DB_URL", "postgres://localhost:5432/site")
	assert.NoError(t, Load().Validate())
}

func TestLoad_ProdRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "prod")

	c := Load()
	assert.Equal(t, "", c.TablePrefix)
	assert.Empty(t, c.AuthSecret)
	assert.Error(t, c.Validate())
}

func TestLoad_TablePrefixOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("TABLE_PREFIX", "site_")

	assert.Equal(t, "site_", Load().TablePrefix)
}

func TestLoad_SessionTTLAndCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ADMIN_CREDENTIALS", "alice:pw1, bob:$2a$10$abc ,broken,:nouser")

	c := Load()
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
	assert.Equal(t, map[string]string{"alice": "pw1", "bob": "$2a$10$abc"}, c.AdminCredentials)
}

func TestLogOutput(t *testing.T) {
	w, closeFn, err := LogOutput("", 3)
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, w)
	assert.NoError(t, closeFn())

	dir := t.TempDir()
	for _, name := range []string{"site-2020-01-01T00-00-00.log", "site-2020-01-02T00-00-00.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	_, closeFn, err = LogOutput(dir, 2)
	require.NoError(t, err)
	defer closeFn()

	files, err := filepath.Glob(filepath.Join(dir, "site-*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.NotContains(t, files, filepath.Join(dir, "site-2020-01-01T00-00-00.log"))
}
