package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrEmptyFilename is returned when a sanitized filename has nothing left.
var ErrEmptyFilename = errors.New("empty or invalid filename")

// UploadStore writes uploaded files into a single shared directory keyed
// by sanitized filename. Concurrent uploads of identically named files
// overwrite one another: last writer wins.
type UploadStore struct {
	dir string
}

// NewUploadStore creates the uploads directory if needed.
func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &UploadStore{dir: dir}, nil
}

// Dir returns the directory files are stored in.
func (s *UploadStore) Dir() string {
	return s.dir
}

// Save writes the reader's contents under the sanitized filename and
// returns the name the file was stored as.
func (s *UploadStore) Save(filename string, r io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return "", ErrEmptyFilename
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return name, nil
}

// SanitizeFilename strips any path components and reduces the name to a
// safe character set, so a client-supplied filename can never escape the
// uploads directory.
func SanitizeFilename(filename string) string {
	// Drop directory components, including Windows-style ones.
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = path.Base(filename)

	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	name := strings.Trim(b.String(), "._")
	if name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}
