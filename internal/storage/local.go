package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements ArtifactStorage on the local filesystem. Used
// for development and single-node deployments without object storage.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates a filesystem-backed artifact store rooted at dir.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// path resolves a storage key inside the root directory, rejecting keys
// that would escape it.
func (s *LocalStorage) path(key string) (string, error) {
	cleaned := filepath.Clean(filepath.Join(s.dir, filepath.FromSlash(key)))
	if !isWithin(s.dir, cleaned) {
		return "", fmt.Errorf("invalid artifact key: %s", key)
	}
	return cleaned, nil
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Upload stores an artifact under the given key.
func (s *LocalStorage) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return fmt.Errorf("failed to write artifact file: %w", err)
	}
	return nil
}

// Download retrieves an artifact from the filesystem.
func (s *LocalStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	target, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	return f, nil
}

// GetURL returns the local path of an artifact.
func (s *LocalStorage) GetURL(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key))
}

// Delete removes an artifact from the filesystem.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	return nil
}

// Exists checks if an artifact exists on the filesystem.
func (s *LocalStorage) Exists(_ context.Context, key string) (bool, error) {
	target, err := s.path(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
