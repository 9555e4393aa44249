package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	TablePrefix string

	// Local tier
	DataDir    string // holds site.json
	ContentDir string // holds posts/ and videos/
	UploadsDir string // root for uploaded assets

	// Remote tier (Supabase)
	SupabaseURL        string
	SupabaseServiceKey string // server-only secret, never sent to browsers
	SupabaseDBURL      string
	StorageBucket      string
	S3Endpoint         string // Constructed from SupabaseURL + /storage/v1/s3 unless set
	S3Region           string
	S3AccessKeyID      string
	S3SecretAccessKey  string
	RunMigrations      bool

	// Admin auth
	AuthSecret         string
	AdminCredentials   map[string]string // username -> password or bcrypt hash
	SessionTTL         time.Duration
	LoginRatePerMinute int

	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := strings.TrimRight(getEnv("SUPABASE_URL", ""), "/")

	s3Endpoint := getEnv("SUPABASE_S3_ENDPOINT", "")
	if s3Endpoint == "" && supabaseURL != "" {
		s3Endpoint = supabaseURL + "/storage/v1/s3"
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),

		DataDir:    getEnv("DATA_DIR", "data"),
		ContentDir: getEnv("CONTENT_DIR", "content"),
		UploadsDir: getEnv("UPLOADS_DIR", "public/uploads"),

		SupabaseURL:        supabaseURL,
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseDBURL:      getEnv("SUPABASE_DB_URL", ""),
		StorageBucket:      getEnv("SUPABASE_STORAGE_BUCKET", "site-assets"),
		S3Endpoint:         s3Endpoint,
		S3Region:           getEnv("SUPABASE_S3_REGION", "us-east-1"),
		S3AccessKeyID:      getEnv("SUPABASE_S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:  getEnv("SUPABASE_S3_SECRET_ACCESS_KEY", ""),
		RunMigrations:      getEnv("RUN_MIGRATIONS", "false") == "true",

		AuthSecret:         getEnv("ADMIN_AUTH_SECRET", getDefaultAuthSecret(env)),
		AdminCredentials:   parseCredentials(getEnv("ADMIN_CREDENTIALS", "")),
		SessionTTL:         getDuration("SESSION_TTL", DefaultSessionTTL),
		LoginRatePerMinute: getInt("LOGIN_RATE_PER_MINUTE", 10),

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getInt("LOG_MAX_FILES", 10),
	}
}

// RemoteConfigured reports whether the remote tier is active. It depends only
// on the endpoint and the secret key, so it is fixed for the process lifetime.
func (c *Config) RemoteConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.RemoteConfigured() && c.SupabaseDBURL == "" {
		errs = append(errs, errors.New("SUPABASE_DB_URL is required when SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are set"))
	}
	if c.AuthSecret == "" {
		errs = append(errs, errors.New("ADMIN_AUTH_SECRET is required outside dev"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// IsDev reports whether the process runs in the dev environment
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// getDefaultAuthSecret only provides a secret for local development
func getDefaultAuthSecret(env string) string {
	if env == "dev" || env == "test" {
		return "dev-only-admin-secret"
	}
	return ""
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix, ok := os.LookupEnv("TABLE_PREFIX"); ok {
		return prefix
	}

	switch env {
	case "prod":
		return ""
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

// parseCredentials reads "user:secret,user2:secret2". Secrets may be plain
// text or bcrypt hashes; entries without a colon are ignored.
func parseCredentials(raw string) map[string]string {
	creds := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		user, secret, ok := strings.Cut(pair, ":")
		if !ok || user == "" || secret == "" {
			continue
		}
		creds[strings.TrimSpace(user)] = strings.TrimSpace(secret)
	}
	return creds
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}
