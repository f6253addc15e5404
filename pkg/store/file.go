package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/meshio"
)

// FileStore persists snapshots as JSON files in a directory, one file per
// name. Suitable for CLI usage and single-node deployments.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory is created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Put stores a snapshot under name.
func (s *FileStore) Put(ctx context.Context, name string, doc meshio.Document) error {
	if err := errors.ValidateMeshName(name); err != nil {
		return err
	}
	data, err := meshio.Marshal(doc)
	if err != nil {
		return err
	}
	// Write-then-rename so a concurrent Get never sees a partial file.
	path := s.path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write snapshot %q", name)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeStore, err, "store snapshot %q", name)
	}
	return nil
}

// Get retrieves the snapshot stored under name.
func (s *FileStore) Get(ctx context.Context, name string) (meshio.Document, error) {
	if err := errors.ValidateMeshName(name); err != nil {
		return meshio.Document{}, err
	}
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return meshio.Document{}, errors.New(errors.ErrCodeMeshNotFound, "mesh %q not found", name)
	}
	if err != nil {
		return meshio.Document{}, errors.Wrap(errors.ErrCodeStore, err, "read snapshot %q", name)
	}
	return meshio.Unmarshal(data)
}

// Delete removes the snapshot stored under name.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateMeshName(name); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStore, err, "delete snapshot %q", name)
	}
	return nil
}

// List returns the stored names.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list snapshots")
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// path converts a validated name to a file path. Names are used verbatim;
// ValidateMeshName has already rejected separators and traversal.
func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
