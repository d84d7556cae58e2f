package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"catalogstore/internal/serviceerrors"
)

// DiskStore keeps assets as plain files in a single directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Save writes the content to a temporary file in the upload directory and
// renames it to the generated asset name. The directory is created on first
// use.
func (s *DiskStore) Save(ctx context.Context, reader io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", serviceerrors.NewStorageError("failed to create upload directory", err)
	}

	name := generateName(originalName)
	tmpPath := filepath.Join(s.dir, fmt.Sprintf(".tmp-%s", uuid.New().String()))

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", serviceerrors.NewStorageError("failed to create asset file", err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", serviceerrors.NewStorageError("failed to write asset content", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", serviceerrors.NewStorageError("failed to flush asset content", err)
	}

	if err := os.Rename(tmpPath, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpPath)
		return "", serviceerrors.NewStorageError("failed to place asset file", err)
	}
	return name, nil
}

func (s *DiskStore) Delete(ctx context.Context, name string) error {
	if err := os.Remove(filepath.Join(s.dir, sanitizeBaseName(name))); err != nil {
		return serviceerrors.NewStorageError(fmt.Sprintf("failed to delete asset %s", name), err)
	}
	return nil
}

func (s *DiskStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, sanitizeBaseName(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, serviceerrors.NewStorageError(fmt.Sprintf("failed to stat asset %s", name), err)
	}
	return true, nil
}

func (s *DiskStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, sanitizeBaseName(name)))
	if err != nil {
		return nil, serviceerrors.NewStorageError(fmt.Sprintf("failed to open asset %s", name), err)
	}
	return f, nil
}

// List returns the names of all stored assets, skipping in-flight temporary
// files.
func (s *DiskStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, serviceerrors.NewStorageError("failed to list upload directory", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".tmp-") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
