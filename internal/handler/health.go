package handler

import (
	"net/http"

	"github.com/huntrbrooks/Money-sub001/internal/httputil"
)

// HealthHandler reports liveness and the active storage tier
type HealthHandler struct {
	backend string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(backend string) *HealthHandler {
	return &HealthHandler{backend: backend}
}

// HealthCheck returns server health status
// GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": h.backend,
	})
}
