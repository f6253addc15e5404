package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrOppositeMismatch is returned by Validate when an arc's opposite
	// does not point back at it, or an arc is its own opposite.
	ErrOppositeMismatch = errors.New("arc opposite is not an involution")

	// ErrCycleMismatch is returned by Validate when next and previous
	// disagree: previous(next(a)) != a or next(previous(a)) != a.
	ErrCycleMismatch = errors.New("next/previous links are inconsistent")

	// ErrSelfLoop is returned by Validate when an arc and its opposite
	// share a source vertex, which would make the edge a self-loop.
	ErrSelfLoop = errors.New("edge connects a vertex to itself")

	// ErrFaceMismatch is returned by Validate when a face's boundary cycle
	// contains an arc referencing a different face, does not close, or has
	// arity below three.
	ErrFaceMismatch = errors.New("face boundary cycle is inconsistent")

	// ErrEdgeMismatch is returned by Validate when an edge's canonical arc
	// (or its opposite) does not reference the edge.
	ErrEdgeMismatch = errors.New("edge and arc references disagree")

	// ErrVertexMismatch is returned by Validate when a vertex's stored
	// outgoing arc does not have that vertex as its source, or the rotation
	// around the vertex does not close.
	ErrVertexMismatch = errors.New("vertex outgoing arc is inconsistent")
)

// Validate walks the whole graph and checks the structural invariants:
// opposite is an involution, next/previous are inverse, every face boundary
// is a closed cycle of arity >= 3 referencing that face, edges connect two
// distinct vertices, vertex outgoing arcs are consistent, and edge/arc
// references agree. Returns nil if the mesh is structurally valid.
//
// Every public operation leaves the mesh valid, so Validate is a diagnostic
// for tests and tooling rather than something callers need routinely. It
// runs in O(V+A+E+F).
func (h *handle[V, E, F]) Validate() error {
	s, err := h.storage()
	if err != nil {
		return err
	}
	return s.validate()
}

func (s *storage[V, E, F]) validate() error {
	if err := s.validateArcs(); err != nil {
		return err
	}
	if err := s.validateFaces(); err != nil {
		return err
	}
	if err := s.validateEdges(); err != nil {
		return err
	}
	return s.validateVertices()
}

func (s *storage[V, E, F]) validateArcs() error {
	var failure error
	s.arcs.each(func(r ref, rec *arcRecord) bool {
		k := ArcKey{r}
		opp := s.arcs.get(rec.opposite.ref)
		if opp == nil || rec.opposite == k || opp.opposite != k {
			failure = fmt.Errorf("arc %s: %w", k, ErrOppositeMismatch)
			return false
		}
		if opp.source == rec.source {
			failure = fmt.Errorf("arc %s: %w", k, ErrSelfLoop)
			return false
		}
		next := s.arcs.get(rec.next.ref)
		if next == nil || next.previous != k {
			failure = fmt.Errorf("arc %s: %w", k, ErrCycleMismatch)
			return false
		}
		prev := s.arcs.get(rec.previous.ref)
		if prev == nil || prev.next != k {
			failure = fmt.Errorf("arc %s: %w", k, ErrCycleMismatch)
			return false
		}
		if s.vertices.get(rec.source.ref) == nil {
			failure = fmt.Errorf("arc %s: dangling source: %w", k, ErrVertexMismatch)
			return false
		}
		if s.edges.get(rec.edge.ref) == nil {
			failure = fmt.Errorf("arc %s: dangling edge: %w", k, ErrEdgeMismatch)
			return false
		}
		return true
	})
	return failure
}

func (s *storage[V, E, F]) validateFaces() error {
	var failure error
	s.faces.each(func(r ref, rec *faceRecord[F]) bool {
		k := FaceKey{r}
		arity := 0
		cur := rec.arc
		for range s.arcs.len() + 1 {
			arc := s.arcs.get(cur.ref)
			if arc == nil || arc.face != k {
				failure = fmt.Errorf("face %s: %w", k, ErrFaceMismatch)
				return false
			}
			arity++
			cur = arc.next
			if cur == rec.arc {
				break
			}
		}
		if cur != rec.arc || arity < 3 {
			failure = fmt.Errorf("face %s: arity %d: %w", k, arity, ErrFaceMismatch)
			return false
		}
		return true
	})
	return failure
}

func (s *storage[V, E, F]) validateEdges() error {
	var failure error
	s.edges.each(func(r ref, rec *edgeRecord[E]) bool {
		k := EdgeKey{r}
		arc := s.arcs.get(rec.arc.ref)
		if arc == nil || arc.edge != k {
			failure = fmt.Errorf("edge %s: %w", k, ErrEdgeMismatch)
			return false
		}
		opp := s.arcs.get(arc.opposite.ref)
		if opp == nil || opp.edge != k {
			failure = fmt.Errorf("edge %s: opposite arc: %w", k, ErrEdgeMismatch)
			return false
		}
		return true
	})
	return failure
}

func (s *storage[V, E, F]) validateVertices() error {
	var failure error
	s.vertices.each(func(r ref, rec *vertexRecord[V]) bool {
		k := VertexKey{r}
		if rec.arc.IsNil() {
			return true // isolated vertex
		}
		arc := s.arcs.get(rec.arc.ref)
		if arc == nil || arc.source != k {
			failure = fmt.Errorf("vertex %s: %w", k, ErrVertexMismatch)
			return false
		}
		// The rotation next(opposite(a)) must return to the stored arc.
		cur := rec.arc
		closed := false
		for range s.arcs.len() + 1 {
			a := s.arcs.get(cur.ref)
			if a == nil || a.source != k {
				break
			}
			opp := s.arcs.get(a.opposite.ref)
			if opp == nil {
				break
			}
			cur = opp.next
			if cur == rec.arc {
				closed = true
				break
			}
		}
		if !closed {
			failure = fmt.Errorf("vertex %s: rotation does not close: %w", k, ErrVertexMismatch)
			return false
		}
		return true
	})
	return failure
}
