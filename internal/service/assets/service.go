// Package assets stores admin uploads in the active storage tier and serves
// them back through the media proxy.
package assets

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/huntrbrooks/Money-sub001/internal/config"
	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/domain/services"
	"github.com/huntrbrooks/Money-sub001/internal/utils"
)

// MediaPrefix is the public path uploads are served under.
const MediaPrefix = "/media/"

// maxNameLength bounds the readable part of a generated key.
const maxNameLength = 60

var allowedTypePrefixes = []string{"image/", "video/", "audio/", "application/pdf"}

// Store is the subset of storage.Tiered the service needs.
type Store interface {
	Put(ctx context.Context, key string, data []byte, meta models.ObjectMetadata) error
	Get(ctx context.Context, key string) (*models.Object, error)
	Backend() string
}

// Service implements the AssetService interface
type Service struct {
	store  Store
	newID  func(time.Time) string
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates a new asset service. newID generates the unique part
// of every key.
func NewService(store Store, newID func(time.Time) string, logger *slog.Logger) *Service {
	return &Service{store: store, newID: newID, now: time.Now, logger: logger}
}

var _ services.AssetService = (*Service)(nil)

// Upload stores data under "<id>-<slugified name><ext>".
func (s *Service) Upload(ctx context.Context, filename string, data []byte, contentType string) (*models.UploadResult, error) {
	if len(data) == 0 {
		return nil, &domain.ValidationError{Message: "file is empty"}
	}
	if len(data) > config.MaxUploadBytes {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("file exceeds %d bytes", config.MaxUploadBytes),
		}
	}

	contentType = resolveContentType(filename, data, contentType)
	if !allowedType(contentType) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("content type %q is not allowed", contentType)}
	}

	key := s.keyFor(filename)
	meta := models.ObjectMetadata{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
		Extra:        map[string]string{"original-name": path.Base(filename)},
	}
	if err := s.store.Put(ctx, key, data, meta); err != nil {
		return nil, err
	}

	s.logger.Info("asset uploaded",
		"key", key,
		"size", len(data),
		"content_type", contentType,
		"backend", s.store.Backend(),
	)

	return &models.UploadResult{
		Key:         key,
		URL:         MediaPrefix + key,
		Size:        len(data),
		ContentType: contentType,
	}, nil
}

// Fetch returns the stored object.
func (s *Service) Fetch(ctx context.Context, key string) (*models.Object, error) {
	obj, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("asset %q not found", key)}
	}
	return obj, nil
}

func (s *Service) keyFor(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	name := utils.Slugify(strings.TrimSuffix(base, path.Ext(base)))
	if len(name) > maxNameLength {
		name = strings.Trim(name[:maxNameLength], "-")
	}
	if name == "" {
		name = "file"
	}
	return s.newID(s.now()) + "-" + name + ext
}

// resolveContentType prefers the extension, then the declared type, then
// sniffing.
func resolveContentType(filename string, data []byte, declared string) string {
	if byExt := mime.TypeByExtension(strings.ToLower(path.Ext(filename))); byExt != "" {
		return stripParams(byExt)
	}
	if declared != "" && declared != "application/octet-stream" {
		return stripParams(declared)
	}
	return stripParams(http.DetectContentType(data))
}

func stripParams(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.TrimSpace(contentType)
	}
	return mediaType
}

func allowedType(contentType string) bool {
	for _, prefix := range allowedTypePrefixes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}
