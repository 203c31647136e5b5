package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	errors "github.com/Laisky/errors/v2"
)

// FileStore keeps every record as <dir>/<key>.json.
type FileStore struct {
	dir string
}

// NewFileStore constructs a file-backed store rooted at dir.
// The directory is created lazily on the first Put.
func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("store dir is required")
	}

	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the records.
func (s *FileStore) Dir() string {
	return s.dir
}

// Put writes value atomically by renaming a temp file over the target.
// ttl is ignored; record owners enforce their own expiry.
func (s *FileStore) Put(_ context.Context, key string, value []byte, _ time.Duration) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errors.Wrapf(err, "create store dir %q", s.dir)
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp record")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // nolint: errcheck

	if _, err = tmp.Write(value); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write temp record")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp record")
	}
	if err = os.Chmod(tmpName, 0o600); err != nil {
		return errors.Wrap(err, "chmod temp record")
	}
	if err = os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "replace record %q", path)
	}

	return nil
}

// Get reads the record stored under key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "read record %q", path)
	}

	return data, nil
}

// Delete removes the record under key; a missing record is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove record %q", path)
	}

	return nil
}

func (s *FileStore) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", errors.Errorf("invalid record key %q", key)
	}

	return filepath.Join(s.dir, key+".json"), nil
}
