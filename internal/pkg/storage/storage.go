package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidPath = errors.New("invalid file path")

// FileStorage keeps proof photos and resolves their public URLs.
type FileStorage interface {
	// Upload writes file under path and returns the cleaned storage key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// URL returns the public URL of a stored key
	URL(path string) string
}
