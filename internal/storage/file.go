package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/huntrbrooks/Money-sub001/internal/domain"
	"github.com/huntrbrooks/Money-sub001/internal/domain/models"
)

// FileStore keeps objects as plain files under a root directory, one file
// per key, mirroring the key's relative path.
type FileStore struct {
	root   string
	logger *slog.Logger
}

// NewFileStore creates a store rooted at dir. The directory is created lazily.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	return &FileStore{root: dir, logger: logger}
}

func (s *FileStore) path(key string) (string, error) {
	key, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// Put writes data to the key's path, creating parent directories and
// overwriting any existing file. Metadata is not persisted locally.
func (s *FileStore) Put(ctx context.Context, key string, data []byte, meta models.ObjectMetadata) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return domain.NewTransportError("create object directory", domain.BackendLocal, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return domain.NewTransportError("write object", domain.BackendLocal, err)
	}

	s.logger.Debug("object stored", "backend", domain.BackendLocal, "key", key, "bytes", len(data))
	return nil
}

// Get reads the key's file. Returns nil, nil when it does not exist.
func (s *FileStore) Get(ctx context.Context, key string) (*models.Object, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.NewTransportError("read object", domain.BackendLocal, err)
	}

	cleaned, _ := CleanKey(key)
	return &models.Object{
		Key:  cleaned,
		Data: data,
		Metadata: models.ObjectMetadata{
			ContentType: detectContentType(p, data),
		},
	}, nil
}

func detectContentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

// String is used in startup logs.
func (s *FileStore) String() string {
	return fmt.Sprintf("file://%s", s.root)
}
