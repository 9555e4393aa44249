package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	tokenauth "github.com/huntrbrooks/Money-sub001/internal/auth"
	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, clock *time.Time) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pw"), bcrypt.MinCost)
	require.NoError(t, err)

	now := func() time.Time { return *clock }
	codec, err := tokenauth.NewHMACCodec([]byte("test-secret"), tokenauth.WithClock(now))
	require.NoError(t, err)

	return NewService(Deps{
		Codec: codec,
		Credentials: map[string]string{
			"alice": "plain-pw",
			"bob":   string(hash),
		},
		TTL:    7 * 24 * time.Hour,
		Now:    now,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestLogin(t *testing.T) {
	clock := testNow
	svc := newTestService(t, &clock)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		ok       bool
	}{
		{"plain password", "alice", "plain-pw", true},
		{"bcrypt password", "bob", "hashed-pw", true},
		{"username is trimmed", "  alice ", "plain-pw", true},
		{"wrong plain password", "alice", "nope", false},
		{"wrong bcrypt password", "bob", "nope", false},
		{"hash is not a password", "bob", "", false},
		{"unknown user", "mallory", "plain-pw", false},
		{"empty user", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, cred, err := svc.Login(ctx, tt.username, tt.password)
			if !tt.ok {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, testNow.Add(7*24*time.Hour).Unix(), cred.ExpiresAt)
		})
	}
}

func TestSession(t *testing.T) {
	clock := testNow
	svc := newTestService(t, &clock)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "alice", "plain-pw")
	require.NoError(t, err)

	assert.Equal(t, models.Session{Authenticated: true, Username: "alice"}, svc.Session(ctx, token))
	assert.Equal(t, models.Session{}, svc.Session(ctx, ""))
	assert.Equal(t, models.Session{}, svc.Session(ctx, token+"x"))

	clock = testNow.Add(7*24*time.Hour - time.Second)
	assert.True(t, svc.Session(ctx, token).Authenticated)

	clock = testNow.Add(7 * 24 * time.Hour)
	assert.False(t, svc.Session(ctx, token).Authenticated)
}

func TestAuthenticate_RevokedUser(t *testing.T) {
	clock := testNow
	svc := newTestService(t, &clock)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "alice", "plain-pw")
	require.NoError(t, err)

	delete(svc.credentials, "alice")
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestHashPassword(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, passwordMatches(hash, "s3cret"))
	assert.False(t, passwordMatches(hash, "other"))
}
