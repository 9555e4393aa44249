package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/httputil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubAuth struct{ valid string }

func (s stubAuth) Login(ctx context.Context, username, password string) (string, models.AuthCredential, error) {
	return "", models.AuthCredential{}, domain.ErrUnauthorized
}

func (s stubAuth) Session(ctx context.Context, token string) models.Session {
	return models.Session{}
}

func (s stubAuth) Authenticate(ctx context.Context, token string) (*models.AuthCredential, error) {
	if token == "" || token != s.valid {
		return nil, domain.ErrUnauthorized
	}
	return &models.AuthCredential{Username: "admin"}, nil
}

func TestRecovery(t *testing.T) {
	h := Recovery(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httputil.GetRequestID(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, given, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not a uuid\n")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "not a uuid\n", seen)
}

func TestRequireSession(t *testing.T) {
	var user string
	h := RequireSession(stubAuth{valid: "good"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user = httputil.GetUsername(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, token := range []string{"", "bad"} {
		req := httptest.NewRequest(http.MethodPut, "/api/admin/site-config", nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: httputil.SessionCookieName, Value: token})
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"detail":"unauthorized"`)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/admin/site-config", nil)
	req.AddCookie(&http.Cookie{Name: httputil.SessionCookieName, Value: "good"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "admin", user)
}

func TestRateLimit(t *testing.T) {
	pool := NewLimiterPool(2, time.Minute)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pool.now = func() time.Time { return clock }

	h := RateLimit(pool)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2"), "buckets are per IP")

	clock = clock.Add(30 * time.Second)
	assert.Equal(t, http.StatusOK, do("10.0.0.1"), "one token refills every 30s")

	assert.Equal(t, 2, pool.Len())
	clock = clock.Add(2 * time.Minute)
	pool.Sweep()
	assert.Equal(t, 0, pool.Len())
}
