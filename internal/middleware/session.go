package middleware

import (
	"net/http"

	"github.com/huntrbrooks/Money-sub001/internal/domain/services"
	"github.com/huntrbrooks/Money-sub001/internal/httputil"
)

// RequireSession rejects requests without a valid admin_session cookie.
// The response never says why the session was rejected.
func RequireSession(auth services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cred, err := auth.Authenticate(r.Context(), httputil.SessionToken(r))
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, httputil.WithUsername(r, cred.Username))
		})
	}
}
