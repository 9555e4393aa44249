package filesystem

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
	"github.com/huntrbrooks/Money-sub001/internal/utils"
)

// ContentExt is the extension of every content file.
const ContentExt = ".mdx"

// test seam
var writeContent = func(w io.Writer, body string) error {
	_, err := io.WriteString(w, body)
	return err
}

// ContentFiles implements repositories.ContentRepository on
// <root>/<type>/<slug>.mdx files.
type ContentFiles struct {
	root   string
	logger *slog.Logger
}

// NewContentFiles creates a repository over root.
func NewContentFiles(root string, logger *slog.Logger) *ContentFiles {
	return &ContentFiles{root: root, logger: logger}
}

func (r *ContentFiles) dir(contentType models.ContentType) string {
	return filepath.Join(r.root, string(contentType))
}

func (r *ContentFiles) path(contentType models.ContentType, slug string) (string, error) {
	if err := utils.ValidateSlug(slug); err != nil {
		return "", &domain.ValidationError{Message: err.Error()}
	}
	return filepath.Join(r.dir(contentType), slug+ContentExt), nil
}

// Get reads one file. Returns nil, nil if it does not exist.
func (r *ContentFiles) Get(ctx context.Context, contentType models.ContentType, slug string) (*models.ContentEntry, error) {
	p, err := r.path(contentType, slug)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.NewTransportError("read content file", domain.BackendLocal, err)
	}

	return &models.ContentEntry{
		Type:   contentType,
		Slug:   slug,
		Body:   string(data),
		Source: domain.BackendLocal,
	}, nil
}

// List reads every content file of a type. A missing directory is empty.
func (r *ContentFiles) List(ctx context.Context, contentType models.ContentType) ([]models.ContentEntry, error) {
	dirEntries, err := os.ReadDir(r.dir(contentType))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.ContentEntry{}, nil
		}
		return nil, domain.NewTransportError("list content directory", domain.BackendLocal, err)
	}

	entries := make([]models.ContentEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if de.IsDir() || !strings.HasSuffix(de.Name(), ContentExt) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(r.dir(contentType), de.Name()))
		if err != nil {
			return nil, domain.NewTransportError("read content file", domain.BackendLocal, err)
		}
		entries = append(entries, models.ContentEntry{
			Type:   contentType,
			Slug:   strings.TrimSuffix(de.Name(), ContentExt),
			Body:   string(data),
			Source: domain.BackendLocal,
		})
	}
	return entries, nil
}

// Exists reports whether the slug's file exists.
func (r *ContentFiles) Exists(ctx context.Context, contentType models.ContentType, slug string) (bool, error) {
	p, err := r.path(contentType, slug)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, domain.NewTransportError("stat content file", domain.BackendLocal, err)
	}
	return true, nil
}

// Insert creates a new file and fails with a conflict if one exists.
// The existence check and the create are a single O_EXCL open.
func (r *ContentFiles) Insert(ctx context.Context, entry *models.ContentEntry) error {
	p, err := r.path(entry.Type, entry.Slug)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return domain.NewTransportError("create content directory", domain.BackendLocal, err)
	}

	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return domain.NewSlugConflict(entry.Type.Singular(), entry.Slug)
		}
		return domain.NewTransportError("create content file", domain.BackendLocal, err)
	}

	err = writeContent(f, entry.Body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// a failed insert must not leave the slug taken
		if rmErr := os.Remove(p); rmErr != nil {
			r.logger.Warn("failed to remove partial content file", "path", p, "error", rmErr)
		}
		return domain.NewTransportError("write content file", domain.BackendLocal, err)
	}

	r.logger.Debug("content file created", "type", entry.Type, "slug", entry.Slug)
	return nil
}

// Update writes the body, creating the directory and file if needed.
func (r *ContentFiles) Update(ctx context.Context, entry *models.ContentEntry) error {
	p, err := r.path(entry.Type, entry.Slug)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return domain.NewTransportError("create content directory", domain.BackendLocal, err)
	}
	if err := os.WriteFile(p, []byte(entry.Body), 0o644); err != nil {
		return domain.NewTransportError("write content file", domain.BackendLocal, err)
	}

	r.logger.Debug("content file written", "type", entry.Type, "slug", entry.Slug)
	return nil
}
