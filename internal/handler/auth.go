package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/huntrbrooks/Money-sub001/internal/domain/services"
	"github.com/huntrbrooks/Money-sub001/internal/httputil"
)

// AuthHandler handles admin login, logout and session checks
type AuthHandler struct {
	auth          services.AuthService
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler creates a new auth handler. secureCookies should be true
// whenever the site is served over HTTPS.
func NewAuthHandler(auth services.AuthService, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookies: secureCookies, logger: logger}
}

// LoginRequest is the body of a login call
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login issues the admin_session cookie
// POST /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, cred, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.SetSessionCookie(w, token, time.Unix(cred.ExpiresAt, 0), h.secureCookies)
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"username":  cred.Username,
		"expiresAt": time.Unix(cred.ExpiresAt, 0).UTC(),
	})
}

// Logout clears the cookie. It succeeds with or without a session.
// POST /api/admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	httputil.ClearSessionCookie(w, h.secureCookies)
	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Session reports whether the caller holds a valid cookie
// GET /api/admin/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.auth.Session(r.Context(), httputil.SessionToken(r)))
}
