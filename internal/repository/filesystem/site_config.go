// Package filesystem implements the local storage tier: the site
// configuration as a pretty-printed JSON file and content entries as one
// markdown file per slug.
package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// SiteConfigFileName is the document's file name inside the data directory.
const SiteConfigFileName = "site.json"

// SiteConfigFile implements repositories.SiteConfigRepository on a JSON file.
type SiteConfigFile struct {
	path   string
	logger *slog.Logger
}

// NewSiteConfigFile stores the document at <dataDir>/site.json.
func NewSiteConfigFile(dataDir string, logger *slog.Logger) *SiteConfigFile {
	return &SiteConfigFile{
		path:   filepath.Join(dataDir, SiteConfigFileName),
		logger: logger,
	}
}

// Path returns the file location.
func (r *SiteConfigFile) Path() string {
	return r.path
}

// Load reads and decodes the file.
// Returns nil, nil when the file does not exist.
func (r *SiteConfigFile) Load(ctx context.Context) (models.SiteConfiguration, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.NewTransportError("load site config", domain.BackendLocal, err)
	}

	var doc models.SiteConfiguration
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorrupt, r.path, err)
	}
	if doc == nil {
		// "null" decodes without error
		return nil, fmt.Errorf("%w: %s: document is null", domain.ErrCorrupt, r.path)
	}
	return doc, nil
}

// Save replaces the file. The document is written to a temporary file in
// the same directory and renamed over the old one.
func (r *SiteConfigFile) Save(ctx context.Context, doc models.SiteConfiguration) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode site config: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewTransportError("create data directory", domain.BackendLocal, err)
	}

	tmp, err := os.CreateTemp(dir, ".site-*.json")
	if err != nil {
		return domain.NewTransportError("save site config", domain.BackendLocal, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return domain.NewTransportError("save site config", domain.BackendLocal, err)
	}
	if err := tmp.Close(); err != nil {
		return domain.NewTransportError("save site config", domain.BackendLocal, err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return domain.NewTransportError("save site config", domain.BackendLocal, err)
	}

	r.logger.Debug("site config saved", "backend", domain.BackendLocal, "path", r.path)
	return nil
}
