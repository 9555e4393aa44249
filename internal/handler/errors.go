package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Unexpected and
// transport failures are logged; their detail never reaches the client.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		conflictErr  *domain.ConflictError
		transportErr *domain.TransportError
		httpErr      domain.HTTPError
	)

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"slug": conflictErr.ResourceID,
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotConfigured):
		httputil.RespondError(w, http.StatusNotImplemented, err.Error())
	case errors.As(err, &transportErr):
		httputil.Logger(r, logger).Error("storage backend failed",
			"op", transportErr.Op,
			"backend", transportErr.Backend,
			"status", transportErr.StatusCode,
			"error", transportErr.Err,
			"path", r.URL.Path,
		)
		status := http.StatusInternalServerError
		if transportErr.Backend == domain.BackendRemote {
			status = http.StatusBadGateway
		}
		httputil.RespondError(w, status, "storage backend unavailable")
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
	default:
		httputil.Logger(r, logger).Error("request failed", "error", err, "path", r.URL.Path)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
