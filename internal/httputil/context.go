package httputil

import (
	"context"
	"log/slog"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	usernameKey  contextKey = "username"
	requestIDKey contextKey = "requestID"
	loggerKey    contextKey = "logger"
)

// WithUsername adds the authenticated admin to the request context
func WithUsername(r *http.Request, username string) *http.Request {
	ctx := context.WithValue(r.Context(), usernameKey, username)
	return r.WithContext(ctx)
}

// GetUsername retrieves the admin username, returns empty string if not found
func GetUsername(r *http.Request) string {
	username, _ := r.Context().Value(usernameKey).(string)
	return username
}

// WithRequestID stores the request id and a logger carrying it.
func WithRequestID(r *http.Request, requestID string, logger *slog.Logger) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDKey, requestID)
	ctx = context.WithValue(ctx, loggerKey, logger.With("request_id", requestID))
	return r.WithContext(ctx)
}

// GetRequestID returns the request id, or "" outside the middleware.
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

// Logger returns the request-scoped logger, falling back to fallback.
func Logger(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if l, ok := r.Context().Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return fallback
}
