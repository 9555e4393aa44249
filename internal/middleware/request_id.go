package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/huntrbrooks/Money-sub001/internal/httputil"
)

// RequestIDHeader is echoed on every response.
const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an id (the caller's, when it is a valid
// UUID) and a logger carrying it.
func RequestID(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, httputil.WithRequestID(r, id, logger))
		})
	}
}
