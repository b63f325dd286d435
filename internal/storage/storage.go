// Package storage persists uploaded resume files. The rest of the system
// depends only on the FileStore interface; the bytes themselves are an
// external concern.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists uploaded file bytes and returns an opaque reference
// that the profile record keeps.
type FileStore interface {
	// Save writes the file and returns its stored reference.
	Save(userID uuid.UUID, filename string, data []byte) (string, error)
	// Remove deletes a file by the reference Save returned. Removing a
	// reference that no longer exists is not an error.
	Remove(ref string) error
}

// DiskStore writes uploads under a base directory, one subdirectory per
// user, keeping the original filename.
type DiskStore struct {
	baseDir string
}

// NewDiskStore creates a DiskStore rooted at baseDir.
func NewDiskStore(baseDir string) *DiskStore {
	return &DiskStore{baseDir: baseDir}
}

// Save writes data to <base>/<user-id>/<filename> and returns the path
// relative to the base directory.
func (s *DiskStore) Save(userID uuid.UUID, filename string, data []byte) (string, error) {
	// Never trust a client-supplied path.
	filename = filepath.Base(filename)
	if filename == "." || filename == string(filepath.Separator) || filename == "" {
		return "", fmt.Errorf("invalid filename")
	}

	dir := filepath.Join(s.baseDir, userID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return filepath.Join(userID.String(), filename), nil
}

// Remove deletes a stored upload. Only references under the base
// directory are honored.
func (s *DiskStore) Remove(ref string) error {
	path := filepath.Join(s.baseDir, ref)
	base := filepath.Clean(s.baseDir) + string(filepath.Separator)
	if !strings.HasPrefix(path, base) {
		return fmt.Errorf("invalid file reference")
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}
