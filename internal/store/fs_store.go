package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,128}$`)

// FSStore keeps one file per key under a base directory.
// Writes go through a temp file and a rename so readers never see a partial value.
type FSStore struct {
	fs       afero.Fs
	basePath string
}

// NewFSStore constructs a store rooted at basePath on the OS filesystem.
func NewFSStore(basePath string) *FSStore {
	return NewFSStoreWithFs(afero.NewOsFs(), basePath)
}

// NewFSStoreWithFs constructs a store over an arbitrary afero filesystem.
func NewFSStoreWithFs(fs afero.Fs, basePath string) *FSStore {
	return &FSStore{fs: fs, basePath: basePath}
}

// Get reads the value stored under key.
func (s *FSStore) Get(ctx context.Context, key string) (string, error) {
	path, err := s.path(ctx, key)
	if err != nil {
		return "", err
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// Set writes value under key with owner-only permissions.
func (s *FSStore) Set(ctx context.Context, key, value string) error {
	path, err := s.path(ctx, key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.basePath, 0o700); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, []byte(value), 0o600); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Delete removes the file for key. Missing files are ignored.
func (s *FSStore) Delete(ctx context.Context, key string) error {
	path, err := s.path(ctx, key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *FSStore) path(ctx context.Context, key string) (string, error) {
	if s == nil {
		return "", errors.New("store not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid store key %q", key)
	}
	return filepath.Join(s.basePath, key), nil
}
