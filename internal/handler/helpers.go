package handler

import (
	"net/http"

	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/httputil"
)

// PathParam extracts a required path value, writing a 400 when it is empty.
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return value, true
}

// contentTypeParam reads {type} and rejects unknown content types with 404.
func contentTypeParam(w http.ResponseWriter, r *http.Request) (models.ContentType, bool) {
	raw, ok := PathParam(w, r, "type", "Content type")
	if !ok {
		return "", false
	}
	contentType, err := models.ParseContentType(raw)
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return contentType, true
}
