package localblob

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"viralfeed/domain"
)

// Store keeps published documents as files under a single directory. Writes
// go through a temp file and rename so a reader never sees a partial feed.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

var _ domain.BlobStore = (*Store)(nil)

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotExist
	}
	return data, err
}

func (s *Store) Put(_ context.Context, key string, body []byte, _ string) error {
	path := filepath.Join(s.dir, key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
