package handler

import (
	"log/slog"
	"net/http"

	"github.com/huntrbrooks/Money-sub001/internal/config"
	"github.com/huntrbrooks/Money-sub001/internal/domain/services"
	"github.com/huntrbrooks/Money-sub001/internal/httputil"
)

// ContentHandler handles post and video HTTP requests
type ContentHandler struct {
	content services.ContentService
	logger  *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(content services.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{content: content, logger: logger}
}

// CreateContentRequest is the body of a create call
type CreateContentRequest struct {
	Slug string `json:"slug"`
	Body string `json:"body"`
}

// UpdateContentRequest is the body of an update call
type UpdateContentRequest struct {
	Body string `json:"body"`
}

// bodyLimit leaves room for JSON escaping around a maximal entry.
const bodyLimit = 2*config.MaxContentBodyBytes + 4096

// ListContent lists entries of a type, newest first
// GET /api/content/{type}
func (h *ContentHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	contentType, ok := contentTypeParam(w, r)
	if !ok {
		return
	}

	entries, err := h.content.List(r.Context(), contentType)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

// GetContent returns one entry
// GET /api/content/{type}/{slug}
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	contentType, ok := contentTypeParam(w, r)
	if !ok {
		return
	}
	slug, ok := PathParam(w, r, "slug", "Slug")
	if !ok {
		return
	}

	entry, err := h.content.GetBySlug(r.Context(), contentType, slug)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entry)
}

// CreateContent creates a new entry
// POST /api/admin/content/{type}
// Returns 201 if created, 409 naming the slug if it is taken
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	contentType, ok := contentTypeParam(w, r)
	if !ok {
		return
	}

	var req CreateContentRequest
	if err := httputil.ParseJSONLimit(w, r, &req, bodyLimit); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.content.Create(r.Context(), contentType, req.Slug, req.Body)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.Logger(r, h.logger).Info("content created",
		"type", contentType,
		"slug", req.Slug,
		"saved_to", res.SavedTo,
		"username", httputil.GetUsername(r),
	)
	httputil.RespondJSON(w, http.StatusCreated, res)
}

// UpdateContent stores a new body, creating the entry if needed
// PUT /api/admin/content/{type}/{slug}
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	contentType, ok := contentTypeParam(w, r)
	if !ok {
		return
	}
	slug, ok := PathParam(w, r, "slug", "Slug")
	if !ok {
		return
	}

	var req UpdateContentRequest
	if err := httputil.ParseJSONLimit(w, r, &req, bodyLimit); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.content.Update(r.Context(), contentType, slug, req.Body)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, res)
}
