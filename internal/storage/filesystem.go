// Package storage abstracts the external asset store that holds story
// images. The core only ever persists the returned retrieval URL, never
// image bytes.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AssetStore accepts binary uploads and returns a stable retrieval URL.
type AssetStore interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

// FileStore persists assets onto the local filesystem and serves them
// under a configured base URL. It stands in for an object storage
// service in development and tests.
type FileStore struct {
	basePath string
	baseURL  string
}

func NewFileStore(basePath, baseURL string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	return s.basePath
}

// Save writes data under a collision-free key derived from filename and
// returns its retrieval URL. Filenames are sanitized so a crafted name
// cannot escape the storage root.
func (s *FileStore) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := sanitizeName(filename)
	if err != nil {
		return "", err
	}

	key := uuid.New().String() + "-" + clean
	fullPath := filepath.Join(s.basePath, key)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// sanitizeName strips path components and rejects empty or traversal
// names.
func sanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("storage: filename is required")
	}
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		return "", errors.New("storage: invalid filename")
	}
	return name, nil
}
