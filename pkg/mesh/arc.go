package mesh

// Arc is a cursor over one directed half-edge. Together with its opposite it
// forms an undirected edge; following next traverses the boundary cycle of
// its face (or of a hole, for boundary arcs) in orientation order.
type Arc[V, E, F any] struct {
	h   *handle[V, E, F]
	key ArcKey
}

// Key returns the arc key.
func (a Arc[V, E, F]) Key() ArcKey { return a.key }

// Source returns the vertex the arc leaves.
func (a Arc[V, E, F]) Source() (Vertex[V, E, F], error) {
	s, err := a.h.storage()
	if err != nil {
		return Vertex[V, E, F]{}, err
	}
	rec, err := s.arc(a.key)
	if err != nil {
		return Vertex[V, E, F]{}, err
	}
	return a.h.Vertex(rec.source)
}

// Destination returns the vertex the arc enters, which is by construction
// the source of its opposite.
func (a Arc[V, E, F]) Destination() (Vertex[V, E, F], error) {
	opp, err := a.Opposite()
	if err != nil {
		return Vertex[V, E, F]{}, err
	}
	return opp.Source()
}

// Opposite returns the twin arc traversing the same edge in the reverse
// direction.
func (a Arc[V, E, F]) Opposite() (Arc[V, E, F], error) {
	s, err := a.h.storage()
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	rec, err := s.arc(a.key)
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	return a.h.Arc(rec.opposite)
}

// Next returns the successor arc in the boundary cycle.
func (a Arc[V, E, F]) Next() (Arc[V, E, F], error) {
	s, err := a.h.storage()
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	rec, err := s.arc(a.key)
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	return a.h.Arc(rec.next)
}

// Previous returns the predecessor arc in the boundary cycle.
func (a Arc[V, E, F]) Previous() (Arc[V, E, F], error) {
	s, err := a.h.storage()
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	rec, err := s.arc(a.key)
	if err != nil {
		return Arc[V, E, F]{}, err
	}
	return a.h.Arc(rec.previous)
}

// Face returns the face the arc bounds. The second result is false for
// boundary arcs of an open mesh, which bound no face.
func (a Arc[V, E, F]) Face() (Face[V, E, F], bool, error) {
	s, err := a.h.storage()
	if err != nil {
		return Face[V, E, F]{}, false, err
	}
	rec, err := s.arc(a.key)
	if err != nil {
		return Face[V, E, F]{}, false, err
	}
	if rec.face.IsNil() {
		return Face[V, E, F]{}, false, nil
	}
	f, err := a.h.Face(rec.face)
	if err != nil {
		return Face[V, E, F]{}, false, err
	}
	return f, true, nil
}

// IsBoundary reports whether the arc bounds no face.
func (a Arc[V, E, F]) IsBoundary() (bool, error) {
	_, ok, err := a.Face()
	return err == nil && !ok, err
}

// Edge returns the undirected edge the arc belongs to.
func (a Arc[V, E, F]) Edge() (Edge[V, E, F], error) {
	s, err := a.h.storage()
	if err != nil {
		return Edge[V, E, F]{}, err
	}
	rec, err := s.arc(a.key)
	if err != nil {
		return Edge[V, E, F]{}, err
	}
	return a.h.Edge(rec.edge)
}
