// Package auth checks admin credentials against the configured allow-list
// and manages session tokens.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	tokenauth "github.com/huntrbrooks/Money-sub001/internal/auth"
	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/domain/services"
)

// bcrypt hashes start with $2a$, $2b$ or $2y$
const bcryptPrefix = "$2"

// dummyHash is compared against when the username is unknown so the
// response time does not reveal which usernames exist.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("unknown-user"), bcrypt.MinCost)

// Service implements the AuthService interface
type Service struct {
	codec       tokenauth.TokenCodec
	credentials map[string]string
	ttl         time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// Deps holds the collaborators of Service. Now defaults to time.Now.
type Deps struct {
	Codec       tokenauth.TokenCodec
	Credentials map[string]string // username -> password or bcrypt hash
	TTL         time.Duration
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewService creates a new auth service
func NewService(deps Deps) *Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		codec:       deps.Codec,
		credentials: deps.Credentials,
		ttl:         deps.TTL,
		now:         now,
		logger:      deps.Logger,
	}
}

var _ services.AuthService = (*Service)(nil)

// Login issues a session token valid for the configured TTL.
func (s *Service) Login(ctx context.Context, username, password string) (string, models.AuthCredential, error) {
	username = strings.TrimSpace(username)
	stored, known := s.credentials[username]

	if !known || username == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		s.logger.Info("admin login rejected", "reason", "unknown user")
		return "", models.AuthCredential{}, domain.ErrUnauthorized
	}
	if !passwordMatches(stored, password) {
		s.logger.Info("admin login rejected", "username", username, "reason", "bad password")
		return "", models.AuthCredential{}, domain.ErrUnauthorized
	}

	cred := tokenauth.NewCredential(username, s.ttl, s.now())
	token, err := s.codec.Issue(cred)
	if err != nil {
		return "", models.AuthCredential{}, err
	}

	s.logger.Info("admin logged in", "username", username)
	return token, cred, nil
}

// Session never fails; an invalid token is an unauthenticated session.
func (s *Service) Session(ctx context.Context, token string) models.Session {
	cred, err := s.Authenticate(ctx, token)
	if err != nil {
		return models.Session{}
	}
	return models.Session{Authenticated: true, Username: cred.Username}
}

// Authenticate verifies token and checks that its user is still allowed.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.AuthCredential, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	cred, err := s.codec.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if _, ok := s.credentials[cred.Username]; !ok {
		return nil, domain.ErrUnauthorized
	}
	return cred, nil
}

func passwordMatches(stored, password string) bool {
	if strings.HasPrefix(stored, bcryptPrefix) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// HashPassword produces a bcrypt hash suitable for ADMIN_CREDENTIALS.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
