package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// sessionClaims is the signed payload: {"username": ..., "exp": ...}
type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// HMACCodec signs tokens as header.payload.signature, each segment base64url
// without padding, signature HMAC-SHA256 over "header.payload".
type HMACCodec struct {
	secret []byte
	now    func() time.Time
}

// Option configures an HMACCodec.
type Option func(*HMACCodec)

// WithClock replaces time.Now, used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *HMACCodec) { c.now = now }
}

// NewHMACCodec creates a codec for the given symmetric secret.
func NewHMACCodec(secret []byte, opts ...Option) (*HMACCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret cannot be empty")
	}
	c := &HMACCodec{secret: secret, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewCredential builds a credential for username that dies after ttl.
func NewCredential(username string, ttl time.Duration, now time.Time) models.AuthCredential {
	return models.AuthCredential{
		Username:  username,
		ExpiresAt: now.Add(ttl).Unix(),
	}
}

// Issue signs cred. The result depends only on cred and the secret.
func (c *HMACCodec) Issue(cred models.AuthCredential) (string, error) {
	if cred.Username == "" {
		return "", errors.New("credential username cannot be empty")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Username: cred.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Unix(cred.ExpiresAt, 0)),
		},
	})

	return token.SignedString(c.secret)
}

// Verify checks format, signature and expiry. Callers cannot tell which
// check failed; all of them yield domain.ErrUnauthorized.
func (c *HMACCodec) Verify(tokenString string) (*models.AuthCredential, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		// Prevent algorithm confusion - only the algorithm we issue
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	if claims.Username == "" || claims.ExpiresAt == nil {
		return nil, domain.ErrUnauthorized
	}

	return &models.AuthCredential{
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}
