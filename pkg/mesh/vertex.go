package mesh

import (
	"iter"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/geom"
)

// Vertex is a cursor over one vertex: a key paired with the access handle it
// was minted from. Views stay cheap to copy; all storage access is
// key-checked, so a view whose entity has since been removed fails with
// INVALID_KEY rather than resolving stale data.
type Vertex[V, E, F any] struct {
	h   *handle[V, E, F]
	key VertexKey
}

// Key returns the vertex key.
func (v Vertex[V, E, F]) Key() VertexKey { return v.key }

// Payload returns the vertex payload.
func (v Vertex[V, E, F]) Payload() (V, error) {
	var zero V
	s, err := v.h.storage()
	if err != nil {
		return zero, err
	}
	rec, err := s.vertex(v.key)
	if err != nil {
		return zero, err
	}
	return rec.payload, nil
}

// SetPayload replaces the vertex payload. Requires an editor handle.
func (v Vertex[V, E, F]) SetPayload(payload V) error {
	s, err := v.h.writable()
	if err != nil {
		return err
	}
	rec, err := s.vertex(v.key)
	if err != nil {
		return err
	}
	rec.payload = payload
	return nil
}

// Position returns the payload's spatial position.
// Fails with CAPABILITY_UNAVAILABLE if the payload type does not implement
// [geom.Positioned].
func (v Vertex[V, E, F]) Position() (geom.Vector, error) {
	payload, err := v.Payload()
	if err != nil {
		return geom.Vector{}, err
	}
	p, ok := positionOf(payload)
	if !ok {
		return geom.Vector{}, errNoPosition(payload)
	}
	return p, nil
}

// OutgoingArc returns the vertex's stored outgoing arc, an arbitrary but
// stable entry point into the rotation around the vertex.
func (v Vertex[V, E, F]) OutgoingArc() (Arc[V, E, F], error) {
	s, err := v.h.storage()
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	rec, err := s.vertex(v.key)
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	return v.h.Arc(rec.arc)
}

// IncidentArcs returns a lazy, restartable sequence of the outgoing arcs
// around the vertex, starting at the stored outgoing arc and following the
// rotation next(opposite(a)). The sequence is finite on a structurally valid
// mesh; on corrupted storage it yields one non-nil error and stops.
//
// Mutating the mesh invalidates an in-progress walk; restart the sequence
// after edits.
func (v Vertex[V, E, F]) IncidentArcs() iter.Seq2[Arc[V, E, F], error] {
	return func(yield func(Arc[V, E, F], error) bool) {
		s, err := v.h.storage()
		if err != nil {
			yield(Arc[V, E, F]{}, err)
			return
		}
		rec, err := s.vertex(v.key)
		if err != nil {
			yield(Arc[V, E, F]{}, err)
			return
		}
		if rec.arc.IsNil() {
			return // isolated vertex
		}
		start := rec.arc
		cur := start
		// The walk cannot be longer than the arc count on a valid mesh.
		for range s.arcs.len() + 1 {
			arc, err := s.arc(cur)
			if err != nil {
				yield(Arc[V, E, F]{}, err)
				return
			}
			if !yield(Arc[V, E, F]{h: v.h, key: cur}, nil) {
				return
			}
			opp, err := s.arc(arc.opposite)
			if err != nil {
				yield(Arc[V, E, F]{}, err)
				return
			}
			cur = opp.next
			if cur == start {
				return
			}
		}
		yield(Arc[V, E, F]{}, errors.New(errors.ErrCodeInternal,
			"rotation around vertex %s does not close", v.key))
	}
}

// Degree returns the number of edges incident to the vertex.
func (v Vertex[V, E, F]) Degree() (int, error) {
	n := 0
	for _, err := range v.IncidentArcs() {
		if err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}
