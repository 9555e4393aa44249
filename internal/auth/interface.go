package auth

import "github.com/huntrbrooks/Money-sub001/internal/domain/models"

// TokenCodec signs and verifies admin session tokens.
type TokenCodec interface {
	// Issue signs the credential. Identical inputs yield identical tokens.
	Issue(cred models.AuthCredential) (string, error)

	// Verify returns the embedded credential when the token is well formed,
	// correctly signed and not expired. Every failure is domain.ErrUnauthorized.
	Verify(token string) (*models.AuthCredential, error)
}
