package services

import (
	"context"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// AuthService checks admin credentials and session tokens.
// Every failure is domain.ErrUnauthorized without further detail.
type AuthService interface {
	// Login issues a session token for an allow-listed username/password pair.
	Login(ctx context.Context, username, password string) (token string, cred models.AuthCredential, err error)

	// Session reports whether token is currently valid.
	Session(ctx context.Context, token string) models.Session

	// Authenticate returns the credential embedded in a valid token.
	Authenticate(ctx context.Context, token string) (*models.AuthCredential, error)
}
