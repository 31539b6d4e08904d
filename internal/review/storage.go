package review

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage defines the interface for keeping uploaded receipt images so a
// reviewer can see what a draft was extracted from.
type Storage interface {
	// Save stores an image and returns the path it was stored under.
	Save(filename string, data []byte) (string, error)

	// Get retrieves an image by path.
	Get(path string) ([]byte, error)

	// Delete removes an image.
	Delete(path string) error
}

// DiskStorage implements Storage on the local filesystem.
type DiskStorage struct {
	basePath string
}

// NewDiskStorage creates the storage directory if needed.
func NewDiskStorage(basePath string) (*DiskStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &DiskStorage{basePath: basePath}, nil
}

// Save writes an image under the storage directory.
func (d *DiskStorage) Save(filename string, data []byte) (string, error) {
	if err := os.WriteFile(filepath.Join(d.basePath, filename), data, 0644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	return filename, nil
}

// Get reads an image back.
func (d *DiskStorage) Get(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.basePath, path))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return data, nil
}

// Delete removes an image.
func (d *DiskStorage) Delete(path string) error {
	if err := os.Remove(filepath.Join(d.basePath, path)); err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}
	return nil
}
