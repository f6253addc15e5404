package mesh

import (
	"sync/atomic"

	"github.com/matzehuels/halfmesh/pkg/errors"
)

// nextStamp issues process-unique mesh stamps. Stamps let storage tell a
// stale key apart from a key minted by a different mesh: both fail, but the
// error message names the actual problem.
var nextStamp atomic.Uint32

// vertexRecord stores one vertex: its payload and an arbitrary outgoing arc.
type vertexRecord[V any] struct {
	payload V
	arc     ArcKey
}

// arcRecord stores one directed half-edge and all of its topology links.
// face is nil for boundary arcs of an open mesh.
type arcRecord struct {
	source   VertexKey
	opposite ArcKey
	next     ArcKey
	previous ArcKey
	edge     EdgeKey
	face     FaceKey
}

// edgeRecord stores one undirected edge: its payload and one canonical arc.
// The second arc is always reachable as the canonical arc's opposite.
type edgeRecord[E any] struct {
	payload E
	arc     ArcKey
}

// faceRecord stores one face: its payload and one entry arc into the
// boundary cycle. Arity is derived by walking the cycle, never cached.
type faceRecord[F any] struct {
	payload F
	arc     ArcKey
}

// storage owns the four entity arenas of a mesh. All access is key-checked;
// dereferencing a stale or foreign key fails deterministically instead of
// returning recycled data. The insert/patch/remove primitives are reachable
// only from the builder and the mutation operators, which are responsible
// for restoring the structural invariants before returning.
type storage[V, E, F any] struct {
	stamp    uint32
	vertices arena[vertexRecord[V]]
	arcs     arena[arcRecord]
	edges    arena[edgeRecord[E]]
	faces    arena[faceRecord[F]]
}

func newStorage[V, E, F any]() storage[V, E, F] {
	stamp := nextStamp.Add(1)
	return storage[V, E, F]{
		stamp:    stamp,
		vertices: arena[vertexRecord[V]]{stamp: stamp},
		arcs:     arena[arcRecord]{stamp: stamp},
		edges:    arena[edgeRecord[E]]{stamp: stamp},
		faces:    arena[faceRecord[F]]{stamp: stamp},
	}
}

// keyError builds the INVALID_KEY error for a failed dereference, naming
// whether the key is foreign, stale, or was never issued.
func (s *storage[V, E, F]) keyError(kind string, r ref) error {
	switch {
	case r.isNil():
		return errors.New(errors.ErrCodeInvalidKey, "nil %s key", kind)
	case r.stamp != s.stamp:
		return errors.New(errors.ErrCodeInvalidKey, "%s key %d@%d belongs to a different mesh", kind, r.index, r.gen)
	default:
		return errors.New(errors.ErrCodeInvalidKey, "%s key %d@%d is stale or unknown", kind, r.index, r.gen)
	}
}

func (s *storage[V, E, F]) vertex(k VertexKey) (*vertexRecord[V], error) {
	if rec := s.vertices.get(k.ref); rec != nil {
		return rec, nil
	}
	return nil, s.keyError("vertex", k.ref)
}

func (s *storage[V, E, F]) arc(k ArcKey) (*arcRecord, error) {
	if rec := s.arcs.get(k.ref); rec != nil {
		return rec, nil
	}
	return nil, s.keyError("arc", k.ref)
}

func (s *storage[V, E, F]) edge(k EdgeKey) (*edgeRecord[E], error) {
	if rec := s.edges.get(k.ref); rec != nil {
		return rec, nil
	}
	return nil, s.keyError("edge", k.ref)
}

func (s *storage[V, E, F]) face(k FaceKey) (*faceRecord[F], error) {
	if rec := s.faces.get(k.ref); rec != nil {
		return rec, nil
	}
	return nil, s.keyError("face", k.ref)
}

func (s *storage[V, E, F]) insertVertex(rec vertexRecord[V]) VertexKey {
	return VertexKey{s.vertices.insert(rec)}
}

func (s *storage[V, E, F]) insertArc(rec arcRecord) ArcKey {
	return ArcKey{s.arcs.insert(rec)}
}

func (s *storage[V, E, F]) insertEdge(rec edgeRecord[E]) EdgeKey {
	return EdgeKey{s.edges.insert(rec)}
}

func (s *storage[V, E, F]) insertFace(rec faceRecord[F]) FaceKey {
	return FaceKey{s.faces.insert(rec)}
}

func (s *storage[V, E, F]) removeFace(k FaceKey) bool {
	return s.faces.remove(k.ref)
}
