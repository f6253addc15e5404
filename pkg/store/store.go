// Package store persists mesh snapshots under user-chosen names. Backends
// range from a local directory for CLI usage to Redis and MongoDB for
// service deployments; all speak the [meshio.Document] wire format.
package store

import (
	"context"

	"github.com/matzehuels/halfmesh/pkg/meshio"
)

// Store is the snapshot storage interface. Names are validated before they
// reach a backend; a missing name fails with MESH_NOT_FOUND.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores a snapshot under name, replacing any previous snapshot.
	Put(ctx context.Context, name string, doc meshio.Document) error

	// Get retrieves the snapshot stored under name.
	Get(ctx context.Context, name string) (meshio.Document, error)

	// Delete removes the snapshot stored under name.
	// Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in unspecified order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}
