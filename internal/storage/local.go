package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidPath is returned for paths that escape the storage root
var ErrInvalidPath = errors.New("invalid storage path")

// LocalStorage keeps generated payroll files on the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// ArchiveDir returns the directory of a period's files, e.g. "exports/lre/2025/06"
func ArchiveDir(kind string, year, month int) string {
	return filepath.Join("exports", kind, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
}

// Archive stores a generated file under its period directory and returns the relative path.
// Earlier copies are kept; every call gets its own id prefix.
func (s *LocalStorage) Archive(kind string, year, month int, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.basePath, ArchiveDir(kind, year, month))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(filename))
	filePath := filepath.Join(dir, name)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	relPath, err := filepath.Rel(s.basePath, filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve relative path: %w", err)
	}
	return relPath, nil
}

// List returns the archived files of a period, oldest name first
func (s *LocalStorage) List(kind string, year, month int) ([]string, error) {
	rel := ArchiveDir(kind, year, month)
	entries, err := os.ReadDir(filepath.Join(s.basePath, rel))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(rel, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Read returns the content of an archived file
func (s *LocalStorage) Read(relativePath string) ([]byte, error) {
	full, err := s.GetFullPath(relativePath)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

// Delete removes a file
func (s *LocalStorage) Delete(relativePath string) error {
	full, err := s.GetFullPath(relativePath)
	if err != nil {
		return err
	}
	return os.Remove(full)
}

// Exists checks if a file exists
func (s *LocalStorage) Exists(relativePath string) bool {
	full, err := s.GetFullPath(relativePath)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}

// GetFullPath returns the absolute path for serving files
func (s *LocalStorage) GetFullPath(relativePath string) (string, error) {
	clean := filepath.Clean(relativePath)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.basePath, clean), nil
}
