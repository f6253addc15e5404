package mesh

import (
	"github.com/matzehuels/halfmesh/pkg/geom"
)

// Edge is a cursor over one undirected edge: the pairing of two opposite
// arcs. The edge stores one canonical arc; the other is its opposite.
type Edge[V, E, F any] struct {
	h   *handle[V, E, F]
	key EdgeKey
}

// Key returns the edge key.
func (e Edge[V, E, F]) Key() EdgeKey { return e.key }

// Payload returns the edge payload.
func (e Edge[V, E, F]) Payload() (E, error) {
	var zero E
	s, err := e.h.storage()
	if err != nil {
		return zero, err
	}
	rec, err := s.edge(e.key)
	if err != nil {
		return zero, err
	}
	return rec.payload, nil
}

// SetPayload replaces the edge payload. Requires an editor handle.
func (e Edge[V, E, F]) SetPayload(payload E) error {
	s, err := e.h.writable()
	if err != nil {
		return err
	}
	rec, err := s.edge(e.key)
	if err != nil {
		return err
	}
	rec.payload = payload
	return nil
}

// Arc returns the edge's canonical arc.
func (e Edge[V, E, F]) Arc() (Arc[V, E, F], error) {
	s, err := e.h.storage()
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	rec, err := s.edge(e.key)
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	return e.h.Arc(rec.arc)
}

// Arcs returns the edge's two arcs: the canonical arc and its opposite.
func (e Edge[V, E, F]) Arcs() (Arc[V, E, F], Arc[V, E, F], error) {
	a, err := e.Arc()
	if err != nil {
		return Arc[V, E, F]{}, Arc[V, E, F]{}, err
	}
	b, err := a.Opposite()
	if err != nil {
		return Arc[V, E, F]{}, Arc[V, E, F]{}, err
	}
	return a, b, nil
}

// Vertices returns the edge's two endpoint vertices.
func (e Edge[V, E, F]) Vertices() (Vertex[V, E, F], Vertex[V, E, F], error) {
	a, err := e.Arc()
	if err != nil {
		return Vertex[V, E, F]{}, Vertex[V, E, F]{}, err
	}
	src, err := a.Source()
	if err != nil {
		return Vertex[V, E, F]{}, Vertex[V, E, F]{}, err
	}
	dst, err := a.Destination()
	if err != nil {
		return Vertex[V, E, F]{}, Vertex[V, E, F]{}, err
	}
	return src, dst, nil
}

// Midpoint returns the point halfway between the edge's endpoints.
// Fails with CAPABILITY_UNAVAILABLE if the vertex payload type does not
// implement [geom.Positioned].
func (e Edge[V, E, F]) Midpoint() (geom.Vector, error) {
	src, dst, err := e.Vertices()
	if err != nil {
		return geom.Vector{}, err
	}
	p, err := src.Position()
	if err != nil {
		return geom.Vector{}, err
	}
	q, err := dst.Position()
	if err != nil {
		return geom.Vector{}, err
	}
	return geom.Midpoint(p, q), nil
}

// Faces returns the faces incident to the edge: two for interior edges, one
// for boundary edges. The manifold constraint caps the count at two by
// construction.
func (e Edge[V, E, F]) Faces() ([]Face[V, E, F], error) {
	a, b, err := e.Arcs()
	if err != nil {
		return nil, err
	}
	var faces []Face[V, E, F]
	for _, arc := range []Arc[V, E, F]{a, b} {
		f, ok, err := arc.Face()
		if err != nil {
			return nil, err
		}
		if ok {
			faces = append(faces, f)
		}
	}
	return faces, nil
}

// IsBoundary reports whether the edge bounds at most one face.
func (e Edge[V, E, F]) IsBoundary() (bool, error) {
	faces, err := e.Faces()
	if err != nil {
		return false, err
	}
	return len(faces) < 2, nil
}
