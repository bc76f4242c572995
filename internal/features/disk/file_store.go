package disk

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrFileTooLarge = errors.New("file too large")

// LocalFileStore writes files to <root>/<projectID>/<assetID>_<fileName>.
// Paths it returns are relative to the root and are what callers persist.
type LocalFileStore struct {
	root string
}

func NewLocalFileStore(root string) *LocalFileStore {
	return &LocalFileStore{root: root}
}

func (s *LocalFileStore) Root() string {
	return s.root
}

// Save copies at most maxBytes from content. Larger content is removed and
// reported as ErrFileTooLarge.
func (s *LocalFileStore) Save(
	projectID, assetID uuid.UUID,
	fileName string,
	content io.Reader,
	maxBytes int64,
) (string, int64, error) {
	relativePath := filepath.Join(projectID.String(), assetID.String()+"_"+SanitizeFileName(fileName))
	fullPath := filepath.Join(s.root, relativePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create asset directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create asset file: %w", err)
	}

	written, copyErr := io.Copy(file, io.LimitReader(content, maxBytes+1))
	closeErr := file.Close()

	if copyErr == nil && written > maxBytes {
		copyErr = ErrFileTooLarge
	}
	if copyErr == nil {
		copyErr = closeErr
	}

	if copyErr != nil {
		_ = os.Remove(fullPath)
		return "", 0, copyErr
	}

	return filepath.ToSlash(relativePath), written, nil
}

func (s *LocalFileStore) Open(path string) (*os.File, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	return os.Open(fullPath)
}

// Delete removes the file at path. A missing file is not an error.
func (s *LocalFileStore) Delete(path string) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

func (s *LocalFileStore) DeleteProject(projectID uuid.UUID) error {
	return os.RemoveAll(filepath.Join(s.root, projectID.String()))
}

func (s *LocalFileStore) resolve(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the file store", path)
	}

	return filepath.Join(s.root, cleaned), nil
}

// SanitizeFileName keeps the base name and replaces characters outside
// letters, digits, dot, dash and underscore.
func SanitizeFileName(fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "file"
	}

	var builder strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			builder.WriteRune(r)
		default:
			builder.WriteRune('_')
		}
	}

	return builder.String()
}
