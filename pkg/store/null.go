package store

import (
	"context"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/meshio"
)

// NullStore is a no-op store that never persists anything.
// Useful for testing or when persistence should be disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore { return &NullStore{} }

// Put does nothing.
func (s *NullStore) Put(ctx context.Context, name string, doc meshio.Document) error {
	return errors.ValidateMeshName(name)
}

// Get always reports the mesh as missing.
func (s *NullStore) Get(ctx context.Context, name string) (meshio.Document, error) {
	if err := errors.ValidateMeshName(name); err != nil {
		return meshio.Document{}, err
	}
	return meshio.Document{}, errors.New(errors.ErrCodeMeshNotFound, "mesh %q not found", name)
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, name string) error {
	return errors.ValidateMeshName(name)
}

// List returns no names.
func (s *NullStore) List(ctx context.Context) ([]string, error) { return nil, nil }

// Close does nothing.
func (s *NullStore) Close() error { return nil }

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
