// Package file provides a storage.Slot that keeps one JSON file per key in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmynk/zeipilote/internal/storage"
)

var _ storage.Slot = (*Slot)(nil)

// Slot stores each key as <dir>/<key>.json.
type Slot struct {
	dir string
}

// New creates a Slot rooted at dir, creating the directory if needed.
func New(dir string) (*Slot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Slot{dir: dir}, nil
}

func (s *Slot) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get reads the file for key.
func (s *Slot) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, storage.ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	return data, nil
}

// Set writes value to a temporary file and renames it over the previous one,
// so readers never observe a partial snapshot.
func (s *Slot) Set(_ context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	// Each writer gets its own temp file so concurrent processes never rename a partial one.
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp data file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp data file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp data file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set data file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *Slot) Close() error { return nil }
