package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStorage writes objects below a directory that the HTTP server
// exposes at baseURL.
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create upload dir %s", dir)
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir is the root directory served as static files.
func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Save(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create object dir")
	}

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to create object")
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		_ = os.Remove(path)
		return "", errors.Wrap(err, "failed to write object")
	}
	return s.baseURL + "/" + filepath.ToSlash(key), nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to delete object")
	}
	return nil
}

// pathFor maps a key to a file path, refusing keys that escape the root.
func (s *LocalStorage) pathFor(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", errors.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.dir, clean), nil
}
