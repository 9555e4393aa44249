package handler

import (
	"log/slog"
	"net/http"

	"github.com/huntrbrooks/Money-sub001/internal/config"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/domain/services"
	"github.com/huntrbrooks/Money-sub001/internal/httputil"
)

// SiteConfigHandler handles site configuration HTTP requests
type SiteConfigHandler struct {
	configs   services.SiteConfigService
	assistant services.AssistantService
	logger    *slog.Logger
}

// NewSiteConfigHandler creates a new site configuration handler
func NewSiteConfigHandler(configs services.SiteConfigService, assistant services.AssistantService, logger *slog.Logger) *SiteConfigHandler {
	return &SiteConfigHandler{
		configs:   configs,
		assistant: assistant,
		logger:    logger,
	}
}

// RollbackRequest is the body of a rollback call
type RollbackRequest struct {
	VersionID string `json:"versionId"`
}

// AssistantRequest is the body of an assistant call
type AssistantRequest struct {
	Instruction string `json:"instruction"`
	Save        bool   `json:"save"`
}

// GetSiteConfig returns the current document with defaults merged in
// GET /api/site-config
func (h *SiteConfigHandler) GetSiteConfig(w http.ResponseWriter, r *http.Request) {
	doc, err := h.configs.Read(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// PutSiteConfig replaces the document; partial documents are merged over
// the defaults
// PUT /api/admin/site-config
func (h *SiteConfigHandler) PutSiteConfig(w http.ResponseWriter, r *http.Request) {
	var doc models.SiteConfiguration
	if err := httputil.ParseJSON(w, r, &doc); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if doc == nil {
		httputil.RespondError(w, http.StatusBadRequest, "site configuration must be a JSON object")
		return
	}

	res, err := h.configs.Write(r.Context(), doc)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.Logger(r, h.logger).Info("site config saved",
		"username", httputil.GetUsername(r),
		"version", res.Version,
	)
	httputil.RespondJSON(w, http.StatusOK, res)
}

// ListVersions returns past snapshots, newest first
// GET /api/admin/site-config/versions?limit=
func (h *SiteConfigHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.QueryInt(r, "limit", config.DefaultVersionListLimit)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	versions, err := h.configs.ListVersions(r.Context(), limit)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, versions)
}

// Rollback writes a past snapshot as a new version
// POST /api/admin/site-config/rollback
func (h *SiteConfigHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	var req RollbackRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.configs.Rollback(r.Context(), req.VersionID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.Logger(r, h.logger).Info("site config rolled back",
		"username", httputil.GetUsername(r),
		"from_version", req.VersionID,
		"version", res.Version,
	)
	httputil.RespondJSON(w, http.StatusOK, res)
}

// Assistant applies a free-text instruction, saving only when asked
// POST /api/admin/site-config/assistant
func (h *SiteConfigHandler) Assistant(w http.ResponseWriter, r *http.Request) {
	var req AssistantRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.assistant.Apply(r.Context(), req.Instruction, req.Save)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, res)
}
