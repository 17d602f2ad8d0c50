// Package posters stores uploaded poster images on disk.
package posters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes poster uploads into a directory served under urlPrefix.
type Store struct {
	dir       string
	urlPrefix string
}

// NewStore creates a poster store rooted at dir. Files saved there are
// reachable under urlPrefix (e.g. "/static/posters").
func NewStore(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create poster dir: %w", err)
	}
	return &Store{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Save persists an upload under a generated unique filename
// (original base name + uuid + original extension) and returns the
// URL path to record on the media item.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	unique := fmt.Sprintf("%s_%s%s", base, uuid.NewString(), ext)

	f, err := os.Create(filepath.Join(s.dir, unique))
	if err != nil {
		return "", fmt.Errorf("create poster file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write poster file: %w", err)
	}

	return s.urlPrefix + "/" + unique, nil
}

// Dir returns the directory posters are stored in, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}
