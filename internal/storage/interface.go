package storage

import (
	"context"
	"io"
)

// ArtifactStorage defines the interface for storing and retrieving export
// artifacts (generated spreadsheets).
type ArtifactStorage interface {
	// Upload stores an artifact under the given key
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download retrieves an artifact from storage
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetURL returns the URL for accessing an artifact
	GetURL(key string) string

	// Delete removes an artifact from storage
	Delete(ctx context.Context, key string) error

	// Exists checks if an artifact exists
	Exists(ctx context.Context, key string) (bool, error)
}
