package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func newTestCodec(t *testing.T, secret string) *HMACCodec {
	t.Helper()
	c, err := NewHMACCodec([]byte(secret), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return c
}

func TestNewHMACCodec_EmptySecret(t *testing.T) {
	_, err := NewHMACCodec(nil)
	assert.Error(t, err)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	c := newTestCodec(t, "s3cret")
	cred := NewCredential("admin", time.Hour, fixedNow)

	token, err := c.Issue(cred)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)
	assert.NotContains(t, token, "=")

	got, err := c.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, cred, *got)
}

func TestIssue_PayloadShape(t *testing.T) {
	c := newTestCodec(t, "s3cret")
	token, err := c.Issue(models.AuthCredential{Username: "admin", ExpiresAt: 1_700_003_600})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, map[string]interface{}{"username": "admin", "exp": float64(1_700_003_600)}, payload)
}

func TestIssue_Deterministic(t *testing.T) {
	c := newTestCodec(t, "s3cret")
	cred := NewCredential("admin", time.Hour, fixedNow)

	a, err := c.Issue(cred)
	require.NoError(t, err)
	b, err := c.Issue(cred)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestIssue_EmptyUsername(t *testing.T) {
	c := newTestCodec(t, "s3cret")
	_, err := c.Issue(models.AuthCredential{ExpiresAt: fixedNow.Unix() + 60})
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := newTestCodec(t, "one").Issue(NewCredential("admin", time.Hour, fixedNow))
	require.NoError(t, err)

	_, err = newTestCodec(t, "two").Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_TamperedPayload(t *testing.T) {
	c := newTestCodec(t, "s3cret")
	token, err := c.Issue(NewCredential("admin", time.Hour, fixedNow))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	for i := range payload {
		mutated := append([]byte(nil), payload...)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		tampered := parts[0] + "." + string(mutated) + "." + parts[2]

		_, err := c.Verify(tampered)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, "payload index %d", i)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	c := newTestCodec(t, "s3cret")
	token, err := c.Issue(NewCredential("admin", time.Hour, fixedNow))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}

	_, err = c.Verify(parts[0] + "." + parts[1] + "." + string(sig))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	c := newTestCodec(t, "s3cret")

	tests := []struct {
		name  string
		exp   int64
		valid bool
	}{
		{"one second left", fixedNow.Unix() + 1, true},
		{"expires now", fixedNow.Unix(), false},
		{"expired one second ago", fixedNow.Unix() - 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := models.AuthCredential{Username: "admin", ExpiresAt: tt.exp}
			token, err := c.Issue(cred)
			require.NoError(t, err)

			got, err := c.Verify(token)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, cred, *got)
				assert.False(t, cred.Expired(fixedNow))
			} else {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				assert.True(t, cred.Expired(fixedNow))
			}
		})
	}
}

func TestVerify_Malformed(t *testing.T) {
	c := newTestCodec(t, "s3cret")

	for _, token := range []string{
		"",
		"abc",
		"a.b",
		"a.b.c.d",
		"!!!.???.***",
		// alg "none" with an empty signature
		"eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJ1c2VybmFtZSI6ImFkbWluIiwiZXhwIjo0MTAyNDQ0ODAwfQ.",
	} {
		_, err := c.Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, "token %q", token)
	}
}
