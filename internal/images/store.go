// Package images stores complaint evidence images on local disk under
// generated names, serving them back by URL path.
package images

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/openseva/grievance/internal/config"
)

var (
	// ErrTooLarge is returned when an upload exceeds the configured size limit.
	ErrTooLarge = errors.New("image exceeds size limit")

	// ErrUnsupportedType is returned for file extensions outside the allow list.
	ErrUnsupportedType = errors.New("unsupported image type")
)

// allowedExtensions lists the accepted image file extensions, lowercase.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Store writes uploaded images to a local directory.
type Store struct {
	dir      string
	baseURL  string
	maxBytes int64
}

// NewStore creates the storage directory if needed and returns a store.
func NewStore(cfg config.ImagesConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	return &Store{
		dir:      cfg.Dir,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		maxBytes: cfg.MaxBytes,
	}, nil
}

// Dir returns the storage directory, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}

// Save persists an uploaded image under a generated name and returns its
// public URL path. The original filename contributes only its extension.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	// Read one byte past the limit to detect oversized uploads.
	written, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if written > s.maxBytes {
		os.Remove(path)
		return "", ErrTooLarge
	}

	return s.baseURL + "/uploads/" + name, nil
}

// Remove deletes a previously stored image by its URL path. Unknown paths
// are ignored.
func (s *Store) Remove(url string) error {
	name := filepath.Base(url)
	if name == "." || name == "/" || name == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}
