// Package meshio defines the canonical serialization format for meshes: an
// indexed polygon stream with positions. Used for API responses, snapshot
// storage, and cross-tool compatibility.
//
// The format deliberately carries geometry and connectivity only. Keys are
// an in-memory concept and never serialized; a round-trip produces a mesh
// that is isomorphic, not key-identical, to the original.
package meshio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/geom"
	"github.com/matzehuels/halfmesh/pkg/mesh"
)

// FormatVersion identifies the wire format. Bumped on incompatible changes.
const FormatVersion = 1

// Document is the canonical serialization format for a positional mesh.
//
// Polygons index into Vertices and wind consistently; the format is exactly
// what [mesh.FromPolygons] consumes, so import → edit → export → re-import
// round-trips cleanly. Isolated vertices survive as unreferenced entries.
type Document struct {
	Version  int           `json:"version" bson:"version"`
	ID       uuid.UUID     `json:"id,omitempty" bson:"id,omitempty"`
	Name     string        `json:"name,omitempty" bson:"name,omitempty"`
	Vertices []geom.Vector `json:"vertices" bson:"vertices"`
	Polygons [][]int       `json:"polygons" bson:"polygons"`
}

// PositionalMesh is the mesh type the wire format round-trips: positions as
// vertex payloads, nothing on edges or faces.
type PositionalMesh = mesh.Mesh[geom.Vector, mesh.None, mesh.None]

// =============================================================================
// Mesh ↔ Document Conversion
// =============================================================================

// FromMesh snapshots a mesh into its serialization format. Vertices appear
// in stable enumeration order and polygons list vertex indices in boundary
// order, so snapshotting the same mesh twice yields identical documents.
//
// Works for any vertex payload implementing [geom.Positioned]; fails with
// CAPABILITY_UNAVAILABLE otherwise. Edge and face payloads are not carried.
func FromMesh[V, E, F any](m *mesh.Mesh[V, E, F], name string) (Document, error) {
	r, err := m.Reader()
	if err != nil {
		return Document{}, err
	}
	defer r.Close()

	doc := Document{
		Version: FormatVersion,
		ID:      m.ID(),
		Name:    name,
	}

	index := make(map[mesh.VertexKey]int, r.VertexCount())
	for i, vk := range r.VertexKeys() {
		v, err := r.Vertex(vk)
		if err != nil {
			return Document{}, err
		}
		p, err := v.Position()
		if err != nil {
			return Document{}, err
		}
		index[vk] = i
		doc.Vertices = append(doc.Vertices, p)
	}

	for _, fk := range r.FaceKeys() {
		f, err := r.Face(fk)
		if err != nil {
			return Document{}, err
		}
		vks, err := f.VertexKeys()
		if err != nil {
			return Document{}, err
		}
		poly := make([]int, len(vks))
		for i, vk := range vks {
			poly[i] = index[vk]
		}
		doc.Polygons = append(doc.Polygons, poly)
	}

	return doc, nil
}

// ToMesh builds a mesh from a document. Fails with TOPOLOGY_VIOLATION on
// degenerate or non-manifold polygon streams, and with INVALID_FORMAT on an
// unsupported format version.
//
// The resulting mesh has a fresh identity; the document's ID records which
// mesh it was snapshotted from, not the identity of meshes built from it.
func ToMesh(doc Document) (*PositionalMesh, error) {
	if doc.Version != 0 && doc.Version != FormatVersion {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported mesh document version %d (supported: %d)", doc.Version, FormatVersion)
	}
	return mesh.FromPolygons[geom.Vector, mesh.None, mesh.None](doc.Vertices, doc.Polygons)
}

// =============================================================================
// Encoding
// =============================================================================

// Write encodes a document as indented JSON and writes it to w.
func Write(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode mesh document: %w", err)
	}
	return nil
}

// Read decodes a JSON document from r.
func Read(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode mesh document")
	}
	return doc, nil
}

// Unmarshal deserializes JSON bytes to a document.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal mesh document")
	}
	return doc, nil
}

// Marshal serializes a document to JSON bytes.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal mesh document: %w", err)
	}
	return data, nil
}

// =============================================================================
// File Helpers
// =============================================================================

// Save writes a document to a JSON file at path.
// This is a convenience wrapper around [Write] for file-based output.
func Save(doc Document, path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(doc, f)
}

// Load reads a document from a JSON file at path.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "mesh file %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// LoadMesh reads a document from path and builds the mesh in one step.
func LoadMesh(path string) (*PositionalMesh, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return ToMesh(doc)
}
