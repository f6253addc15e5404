package mesh

import (
	"iter"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/geom"
)

// Face is a cursor over one face. The face stores a single entry arc into
// its boundary cycle; arity and boundary geometry are derived by walking
// the cycle, so they can never be observed stale.
type Face[V, E, F any] struct {
	h   *handle[V, E, F]
	key FaceKey
}

// Key returns the face key.
func (f Face[V, E, F]) Key() FaceKey { return f.key }

// Payload returns the face payload.
func (f Face[V, E, F]) Payload() (F, error) {
	var zero F
	s, err := f.h.storage()
	if err != nil {
		return zero, err
	}
	rec, err := s.face(f.key)
	if err != nil {
		return zero, err
	}
	return rec.payload, nil
}

// SetPayload replaces the face payload. Requires an editor handle.
func (f Face[V, E, F]) SetPayload(payload F) error {
	s, err := f.h.writable()
	if err != nil {
		return err
	}
	rec, err := s.face(f.key)
	if err != nil {
		return err
	}
	rec.payload = payload
	return nil
}

// EntryArc returns the face's stored boundary arc, the stable starting point
// of [Face.BoundaryArcs].
func (f Face[V, E, F]) EntryArc() (Arc[V, E, F], error) {
	s, err := f.h.storage()
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	rec, err := s.face(f.key)
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	return f.h.Arc(rec.arc)
}

// BoundaryArcs returns a lazy, restartable sequence of the arcs in the
// face's boundary cycle, starting at the entry arc and following next. The
// sequence has exactly arity elements on a structurally valid mesh; on
// corrupted storage it yields one non-nil error and stops.
//
// Mutating the mesh invalidates an in-progress walk; restart the sequence
// after edits.
func (f Face[V, E, F]) BoundaryArcs() iter.Seq2[Arc[V, E, F], error] {
	return func(yield func(Arc[V, E, F], error) bool) {
		s, err := f.h.storage()
		if err != nil {
			yield(Arc[V, E, F]{}, err)
			return
		}
		rec, err := s.face(f.key)
		if err != nil {
			yield(Arc[V, E, F]{}, err)
			return
		}
		start := rec.arc
		cur := start
		for range s.arcs.len() + 1 {
			arc, err := s.arc(cur)
			if err != nil {
				yield(Arc[V, E, F]{}, err)
				return
			}
			if arc.face != f.key {
				yield(Arc[V, E, F]{}, errors.New(errors.ErrCodeInternal,
					"boundary arc %s of face %s references face %s", cur, f.key, arc.face))
				return
			}
			if !yield(Arc[V, E, F]{h: f.h, key: cur}, nil) {
				return
			}
			cur = arc.next
			if cur == start {
				return
			}
		}
		yield(Arc[V, E, F]{}, errors.New(errors.ErrCodeInternal,
			"boundary cycle of face %s does not close", f.key))
	}
}

// Arity returns the number of boundary edges (equivalently, vertices) of
// the face. Always at least 3 on a structurally valid mesh.
func (f Face[V, E, F]) Arity() (int, error) {
	n := 0
	for _, err := range f.BoundaryArcs() {
		if err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}

// VertexKeys returns the keys of the boundary vertices in cycle order,
// starting at the entry arc's source.
func (f Face[V, E, F]) VertexKeys() ([]VertexKey, error) {
	s, err := f.h.storage()
	if err != nil {
		return nil, err
	}
	var keys []VertexKey
	for a, err := range f.BoundaryArcs() {
		if err != nil {
			return nil, err
		}
		rec, err := s.arc(a.key)
		if err != nil {
			return nil, err
		}
		keys = append(keys, rec.source)
	}
	return keys, nil
}

// positions collects the boundary vertex positions in cycle order.
// Fails with CAPABILITY_UNAVAILABLE on the first payload lacking
// [geom.Positioned].
func (f Face[V, E, F]) positions() ([]geom.Vector, error) {
	var ps []geom.Vector
	for a, err := range f.BoundaryArcs() {
		if err != nil {
			return nil, err
		}
		src, err := a.Source()
		if err != nil {
			return nil, err
		}
		p, err := src.Position()
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

// Centroid returns the arithmetic mean of the boundary vertex positions.
// Fails with CAPABILITY_UNAVAILABLE if the vertex payload type does not
// implement [geom.Positioned].
func (f Face[V, E, F]) Centroid() (geom.Vector, error) {
	ps, err := f.positions()
	if err != nil {
		return geom.Vector{}, err
	}
	return geom.Centroid(ps), nil
}

// Normal returns the unit normal of the face computed from its boundary
// positions with Newell's method. Fails with CAPABILITY_UNAVAILABLE if the
// payload lacks [geom.Positioned] or the face encloses no area.
func (f Face[V, E, F]) Normal() (geom.Vector, error) {
	ps, err := f.positions()
	if err != nil {
		return geom.Vector{}, err
	}
	n, err := geom.Normal(ps)
	if err != nil {
		return geom.Vector{}, errors.Wrap(errors.ErrCodeCapabilityUnavailable, err,
			"no normal for face %s", f.key)
	}
	return n, nil
}
