package mesh

import (
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/halfmesh/pkg/errors"
)

// None is an empty payload for meshes that attach no data to vertices,
// edges, or faces of a given kind.
type None struct{}

// Mesh is a polygonal mesh stored as a half-edge (doubly connected edge
// list) graph, generic over the payloads attached to vertices (V), edges
// (E), and faces (F).
//
// The mesh exclusively owns its entity storage. All inspection and editing
// goes through access handles:
//
//   - [Mesh.Reader] grants shared read access; any number may coexist.
//   - [Mesh.Editor] grants exclusive access for structural mutation; while
//     one is open, no other handle (read or write) can be acquired.
//
// Acquiring a conflicting handle fails immediately with ALIASING_VIOLATION;
// there is no blocking or queuing. Handles must be released with Close.
// This discipline exists because mutation operators edit an unbounded local
// neighborhood, and a reader observing a half-applied edit would see the
// structural invariants violated.
//
// The zero value is not usable - use [New] or [FromPolygons].
type Mesh[V, E, F any] struct {
	id uuid.UUID

	mu      sync.Mutex
	readers int
	writing bool

	s storage[V, E, F]
}

// New creates an empty mesh. Use [FromPolygons] to build a mesh from a
// polygon stream, or an [Editor] with mutation operators to grow one
// incrementally.
func New[V, E, F any]() *Mesh[V, E, F] {
	return &Mesh[V, E, F]{
		id: uuid.New(),
		s:  newStorage[V, E, F](),
	}
}

// ID returns the mesh's unique identity, assigned at creation.
// Snapshot stores and wire formats use it to correlate copies of a mesh;
// it plays no role in key validation, which relies on per-mesh stamps.
func (m *Mesh[V, E, F]) ID() uuid.UUID { return m.id }

// Reader acquires a shared read handle. Multiple readers may be open at the
// same time. Fails with ALIASING_VIOLATION if an editor is open.
func (m *Mesh[V, E, F]) Reader() (*Reader[V, E, F], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writing {
		return nil, errors.New(errors.ErrCodeAliasingViolation, "cannot open reader: an editor is active")
	}
	m.readers++
	return &Reader[V, E, F]{handle[V, E, F]{m: m}}, nil
}

// Editor acquires the exclusive write handle. Fails with ALIASING_VIOLATION
// if any reader or another editor is open.
func (m *Mesh[V, E, F]) Editor() (*Editor[V, E, F], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writing {
		return nil, errors.New(errors.ErrCodeAliasingViolation, "cannot open editor: an editor is active")
	}
	if m.readers > 0 {
		return nil, errors.New(errors.ErrCodeAliasingViolation, "cannot open editor: %d reader(s) active", m.readers)
	}
	m.writing = true
	return &Editor[V, E, F]{handle[V, E, F]{m: m, exclusive: true}}, nil
}

// =============================================================================
// Access Handles
// =============================================================================

// handle is the shared state behind [Reader] and [Editor]: the borrow of the
// mesh that views resolve through. Once closed, every view minted from it
// fails.
type handle[V, E, F any] struct {
	m         *Mesh[V, E, F]
	exclusive bool
	closed    bool
}

// Reader is a shared read handle over a mesh. Views minted from a reader
// can navigate and query but not mutate.
type Reader[V, E, F any] struct {
	handle[V, E, F]
}

// Editor is the exclusive write handle over a mesh. Views minted from an
// editor additionally expose the mutation operators.
type Editor[V, E, F any] struct {
	handle[V, E, F]
}

// Close releases the read handle. Closing an already closed handle is a
// no-op. Views minted from the handle fail after Close.
func (r *Reader[V, E, F]) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.m.mu.Lock()
	r.m.readers--
	r.m.mu.Unlock()
}

// Close releases the write handle. Closing an already closed handle is a
// no-op. Views minted from the handle fail after Close.
func (e *Editor[V, E, F]) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.m.mu.Lock()
	e.m.writing = false
	e.m.mu.Unlock()
}

// storage returns the entity storage if the handle is still open.
func (h *handle[V, E, F]) storage() (*storage[V, E, F], error) {
	if h.closed {
		return nil, errors.New(errors.ErrCodeAliasingViolation, "mesh handle is closed")
	}
	return &h.m.s, nil
}

// writable returns the entity storage if the handle is open and exclusive.
func (h *handle[V, E, F]) writable() (*storage[V, E, F], error) {
	if h.closed {
		return nil, errors.New(errors.ErrCodeAliasingViolation, "mesh handle is closed")
	}
	if !h.exclusive {
		return nil, errors.New(errors.ErrCodeAliasingViolation, "mutation requires an editor handle")
	}
	return &h.m.s, nil
}

// =============================================================================
// Views and Enumeration
// =============================================================================

// Vertex returns a view of the vertex k. Fails with INVALID_KEY if k is
// stale, foreign, or was never issued.
func (h *handle[V, E, F]) Vertex(k VertexKey) (Vertex[V, E, F], error) {
	s, err := h.storage()
	if err != nil {
		return Vertex[V, E, F]{}, err
	}
	if _, err := s.vertex(k); err != nil {
		return Vertex[V, E, F]{}, err
	}
	return Vertex[V, E, F]{h: h, key: k}, nil
}

// Arc returns a view of the arc k.
func (h *handle[V, E, F]) Arc(k ArcKey) (Arc[V, E, F], error) {
	s, err := h.storage()
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	if _, err := s.arc(k); err != nil {
		return Arc[V, E, F]{}, err
	}
	return Arc[V, E, F]{h: h, key: k}, nil
}

// Edge returns a view of the edge k.
func (h *handle[V, E, F]) Edge(k EdgeKey) (Edge[V, E, F], error) {
	s, err := h.storage()
	if err != nil {
		return Edge[V, E, F]{}, err
	}
	if _, err := s.edge(k); err != nil {
		return Edge[V, E, F]{}, err
	}
	return Edge[V, E, F]{h: h, key: k}, nil
}

// Face returns a view of the face k.
func (h *handle[V, E, F]) Face(k FaceKey) (Face[V, E, F], error) {
	s, err := h.storage()
	if err != nil {
		return Face[V, E, F]{}, err
	}
	if _, err := s.face(k); err != nil {
		return Face[V, E, F]{}, err
	}
	return Face[V, E, F]{h: h, key: k}, nil
}

// VertexCount returns the number of live vertices, or 0 on a closed handle.
func (h *handle[V, E, F]) VertexCount() int {
	s, err := h.storage()
	if err != nil {
		return 0
	}
	return s.vertices.len()
}

// ArcCount returns the number of live arcs, or 0 on a closed handle.
func (h *handle[V, E, F]) ArcCount() int {
	s, err := h.storage()
	if err != nil {
		return 0
	}
	return s.arcs.len()
}

// EdgeCount returns the number of live edges, or 0 on a closed handle.
func (h *handle[V, E, F]) EdgeCount() int {
	s, err := h.storage()
	if err != nil {
		return 0
	}
	return s.edges.len()
}

// FaceCount returns the number of live faces, or 0 on a closed handle.
func (h *handle[V, E, F]) FaceCount() int {
	s, err := h.storage()
	if err != nil {
		return 0
	}
	return s.faces.len()
}

// VertexKeys returns the keys of all live vertices in stable slot order.
func (h *handle[V, E, F]) VertexKeys() []VertexKey {
	s, err := h.storage()
	if err != nil {
		return nil
	}
	keys := make([]VertexKey, 0, s.vertices.len())
	s.vertices.each(func(r ref, _ *vertexRecord[V]) bool {
		keys = append(keys, VertexKey{r})
		return true
	})
	return keys
}

// ArcKeys returns the keys of all live arcs in stable slot order.
func (h *handle[V, E, F]) ArcKeys() []ArcKey {
	s, err := h.storage()
	if err != nil {
		return nil
	}
	keys := make([]ArcKey, 0, s.arcs.len())
	s.arcs.each(func(r ref, _ *arcRecord) bool {
		keys = append(keys, ArcKey{r})
		return true
	})
	return keys
}

// EdgeKeys returns the keys of all live edges in stable slot order.
func (h *handle[V, E, F]) EdgeKeys() []EdgeKey {
	s, err := h.storage()
	if err != nil {
		return nil
	}
	keys := make([]EdgeKey, 0, s.edges.len())
	s.edges.each(func(r ref, _ *edgeRecord[E]) bool {
		keys = append(keys, EdgeKey{r})
		return true
	})
	return keys
}

// FaceKeys returns the keys of all live faces in stable slot order.
func (h *handle[V, E, F]) FaceKeys() []FaceKey {
	s, err := h.storage()
	if err != nil {
		return nil
	}
	keys := make([]FaceKey, 0, s.faces.len())
	s.faces.each(func(r ref, _ *faceRecord[F]) bool {
		keys = append(keys, FaceKey{r})
		return true
	})
	return keys
}
