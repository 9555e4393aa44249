package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/huntrbrooks/Money-sub001/internal/config"
	"github.com/huntrbrooks/Money-sub001/internal/domain/services"
	"github.com/huntrbrooks/Money-sub001/internal/httputil"
)

// AssetHandler handles uploads and the media proxy
type AssetHandler struct {
	assets services.AssetService
	logger *slog.Logger
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assets services.AssetService, logger *slog.Logger) *AssetHandler {
	return &AssetHandler{assets: assets, logger: logger}
}

// Upload stores the multipart "file" field
// POST /api/admin/uploads
func (h *AssetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", config.MaxUploadBytes))
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, config.MaxUploadBytes+1))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	res, err := h.assets.Upload(r.Context(), header.Filename, data, header.Header.Get("Content-Type"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, res)
}

// Media streams a stored object from the active tier
// GET /media/{key...}
func (h *AssetHandler) Media(w http.ResponseWriter, r *http.Request) {
	key, ok := PathParam(w, r, "key", "Object key")
	if !ok {
		return
	}

	obj, err := h.assets.Fetch(r.Context(), key)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	contentType := obj.Metadata.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(obj.Data)
	}
	cacheControl := obj.Metadata.CacheControl
	if cacheControl == "" {
		cacheControl = "public, max-age=3600"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(obj.Data)
	}
}
