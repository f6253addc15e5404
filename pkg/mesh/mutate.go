package mesh

import (
	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/geom"
)

// The mutation operators follow a strict validate-then-commit shape: every
// failure mode is checked and every input value copied out of storage before
// the first insert or patch. Once the commit phase starts, nothing can fail,
// so a caller never observes a partially applied edit. Records are re-fetched
// after inserts because arena growth relocates slots.

// =============================================================================
// Arc Split
// =============================================================================

// Split subdivides the arc's edge at the midpoint of its two endpoints,
// inserting a new vertex whose payload is built from the source payload's
// WithPosition capability.
//
// Fails with CAPABILITY_UNAVAILABLE if the vertex payload type implements
// neither [geom.Positioned] on both endpoints nor WithPosition on the
// source, with ALIASING_VIOLATION on a read-only handle, and with
// INVALID_KEY on a stale arc. On failure the mesh is unchanged.
func (a Arc[V, E, F]) Split() (Vertex[V, E, F], error) {
	src, err := a.Source()
	if err != nil {
		return Vertex[V, E, F]{}, err
	}
	dst, err := a.Destination()
	if err != nil {
		return Vertex[V, E, F]{}, err
	}
	p, err := src.Position()
	if err != nil {
		return Vertex[V, E, F]{}, err
	}
	q, err := dst.Position()
	if err != nil {
		return Vertex[V, E, F]{}, err
	}
	template, err := src.Payload()
	if err != nil {
		return Vertex[V, E, F]{}, err
	}
	payload, ok := buildAt(template, geom.Midpoint(p, q))
	if !ok {
		return Vertex[V, E, F]{}, errNoBuilder(template)
	}
	return a.SplitWith(payload)
}

// SplitWith subdivides the arc's edge, inserting a new vertex v with the
// given payload. The arc a: u→w afterwards runs u→v, and a new arc runs
// v→w, spliced into the boundary cycle so the enclosing face (if any) gains
// one boundary arc; the opposite arc and its face receive the symmetric
// treatment. A new edge is created for the new arc pair, carrying a copy of
// the split edge's payload.
//
// Returns a view of v, which has degree exactly 2 until edited further.
func (a Arc[V, E, F]) SplitWith(payload V) (Vertex[V, E, F], error) {
	s, err := a.h.writable()
	if err != nil {
		return Vertex[V, E, F]{}, err
	}

	// Validate and copy everything the commit phase needs.
	aRec, err := s.arc(a.key)
	if err != nil {
		return Vertex[V, E, F]{}, err
	}
	bKey := aRec.opposite
	bRec, err := s.arc(bKey)
	if err != nil {
		return Vertex[V, E, F]{}, err
	}
	eRec, err := s.edge(aRec.edge)
	if err != nil {
		return Vertex[V, E, F]{}, err
	}
	var (
		eKey     = aRec.edge
		ePayload = eRec.payload
		nextA    = aRec.next
		nextB    = bRec.next
		faceA    = aRec.face
		faceB    = bRec.face
	)

	// Commit.
	vKey := s.insertVertex(vertexRecord[V]{payload: payload})
	a2Key := s.insertArc(arcRecord{
		source:   vKey,
		opposite: bKey,
		next:     nextA,
		previous: a.key,
		face:     faceA,
	})
	b2Key := s.insertArc(arcRecord{
		source:   vKey,
		opposite: a.key,
		next:     nextB,
		previous: bKey,
		face:     faceB,
		edge:     eKey,
	})
	e2Key := s.insertEdge(edgeRecord[E]{payload: ePayload, arc: a2Key})

	mustArc(s, a2Key).edge = e2Key
	mustVertex(s, vKey).arc = a2Key

	aRec = mustArc(s, a.key)
	aRec.opposite = b2Key
	aRec.next = a2Key

	bRec = mustArc(s, bKey)
	bRec.opposite = a2Key
	bRec.next = b2Key
	bRec.edge = e2Key

	mustArc(s, nextA).previous = a2Key
	mustArc(s, nextB).previous = b2Key

	// The original edge keeps the u→v side; re-point its canonical arc in
	// case it referenced the opposite, which now belongs to the new edge.
	mustEdge(s, eKey).arc = a.key

	return Vertex[V, E, F]{h: a.h, key: vKey}, nil
}

// =============================================================================
// Face Poke
// =============================================================================

// Poke inserts a vertex at the face's centroid and fan-triangulates the face
// around it. A face of arity n is destroyed and replaced by n triangles; the
// inserted vertex has degree n and 2n arcs and n edges are created.
//
// Returns a view of the triangle incident to the original face's entry arc.
// Fails with CAPABILITY_UNAVAILABLE if the vertex payload cannot supply the
// centroid, leaving the face unchanged. The original face key is invalid
// after a successful poke.
func (f Face[V, E, F]) Poke() (Face[V, E, F], error) {
	return f.poke(nil)
}

// PokeOffset pokes the face and translates the inserted vertex by offset
// along the face normal. In addition to the centroid capability this
// requires a well-defined normal: a degenerate (zero-area) face is rejected
// with CAPABILITY_UNAVAILABLE and left unchanged.
func (f Face[V, E, F]) PokeOffset(offset float64) (Face[V, E, F], error) {
	return f.poke(&offset)
}

func (f Face[V, E, F]) poke(offset *float64) (Face[V, E, F], error) {
	s, err := f.h.writable()
	if err != nil {
		return Face[V, E, F]{}, err
	}

	// Validate: boundary walk, positions, capabilities, centroid and
	// (when offsetting) normal, all before the first storage write.
	var (
		ring    []ArcKey
		sources []VertexKey
	)
	for a, err := range f.BoundaryArcs() {
		if err != nil {
			return Face[V, E, F]{}, err
		}
		rec := mustArc(s, a.key)
		ring = append(ring, a.key)
		sources = append(sources, rec.source)
	}
	position, err := f.Centroid()
	if err != nil {
		return Face[V, E, F]{}, err
	}
	if offset != nil {
		normal, err := f.Normal()
		if err != nil {
			return Face[V, E, F]{}, err
		}
		position = position.Add(normal.Scale(*offset))
	}
	template := mustVertex(s, sources[0]).payload
	payload, ok := buildAt(template, position)
	if !ok {
		return Face[V, E, F]{}, errNoBuilder(template)
	}
	fPayload := mustFace(s, f.key).payload
	n := len(ring)

	// Commit: one center vertex, n spoke edges (2n arcs), n triangles.
	center := s.insertVertex(vertexRecord[V]{payload: payload})

	toCenter := make([]ArcKey, n)   // sources[i] → center
	fromCenter := make([]ArcKey, n) // center → sources[i]
	spokes := make([]EdgeKey, n)
	for i := range n {
		toCenter[i] = s.insertArc(arcRecord{source: sources[i]})
		fromCenter[i] = s.insertArc(arcRecord{source: center})
		spokes[i] = s.insertEdge(edgeRecord[E]{arc: toCenter[i]})
	}
	faces := make([]FaceKey, n)
	for i := range n {
		faces[i] = s.insertFace(faceRecord[F]{payload: fPayload, arc: ring[i]})
	}

	for i := range n {
		j := (i + 1) % n

		to := mustArc(s, toCenter[i])
		to.opposite = fromCenter[i]
		to.edge = spokes[i]
		to.next = fromCenter[(i-1+n)%n]
		to.previous = ring[(i-1+n)%n]
		to.face = faces[(i-1+n)%n]

		from := mustArc(s, fromCenter[i])
		from.opposite = toCenter[i]
		from.edge = spokes[i]
		from.next = ring[i]
		from.previous = toCenter[j]
		from.face = faces[i]

		rim := mustArc(s, ring[i])
		rim.next = toCenter[j]
		rim.previous = fromCenter[i]
		rim.face = faces[i]
	}
	mustVertex(s, center).arc = fromCenter[0]
	s.removeFace(f.key)

	return Face[V, E, F]{h: f.h, key: faces[0]}, nil
}

// =============================================================================
// Face Split
// =============================================================================

// SplitAcross splits the face along a new diagonal connecting two of its
// boundary vertices. The diagonal's arc pair and edge are created and the
// face becomes two faces whose arities sum to the original arity plus two.
// The receiver's key remains valid for the side containing the arc leaving
// va; the returned view is the newly created face on the other side, whose
// entry arc runs va→vb.
//
// Fails with TOPOLOGY_VIOLATION if va and vb are identical, adjacent along
// the boundary (the diagonal would duplicate a boundary edge), or not both
// on the face's boundary cycle. On failure the mesh is unchanged.
func (f Face[V, E, F]) SplitAcross(va, vb VertexKey) (Face[V, E, F], error) {
	s, err := f.h.writable()
	if err != nil {
		return Face[V, E, F]{}, err
	}
	if _, err := s.vertex(va); err != nil {
		return Face[V, E, F]{}, err
	}
	if _, err := s.vertex(vb); err != nil {
		return Face[V, E, F]{}, err
	}
	if va == vb {
		return Face[V, E, F]{}, errors.New(errors.ErrCodeTopologyViolation,
			"cannot split face %s across identical vertices %s", f.key, va)
	}

	// Locate the boundary arcs leaving va and vb.
	var arcA, arcB ArcKey
	for a, err := range f.BoundaryArcs() {
		if err != nil {
			return Face[V, E, F]{}, err
		}
		switch mustArc(s, a.key).source {
		case va:
			arcA = a.key
		case vb:
			arcB = a.key
		}
	}
	if arcA.IsNil() || arcB.IsNil() {
		return Face[V, E, F]{}, errors.New(errors.ErrCodeTopologyViolation,
			"vertices %s and %s are not both on the boundary of face %s", va, vb, f.key)
	}
	if mustArc(s, arcA).next == arcB || mustArc(s, arcB).next == arcA {
		return Face[V, E, F]{}, errors.New(errors.ErrCodeTopologyViolation,
			"vertices %s and %s are adjacent on face %s; diagonal would duplicate a boundary edge", va, vb, f.key)
	}
	prevA := mustArc(s, arcA).previous
	prevB := mustArc(s, arcB).previous

	// Commit: diagonal pair d (va→vb) and d2 (vb→va), one edge, one face.
	gKey := s.insertFace(faceRecord[F]{payload: mustFace(s, f.key).payload})
	dKey := s.insertArc(arcRecord{
		source:   va,
		next:     arcB,
		previous: prevA,
		face:     gKey,
	})
	d2Key := s.insertArc(arcRecord{
		source:   vb,
		next:     arcA,
		previous: prevB,
		face:     f.key,
	})
	eKey := s.insertEdge(edgeRecord[E]{arc: dKey})

	d := mustArc(s, dKey)
	d.opposite = d2Key
	d.edge = eKey
	d2 := mustArc(s, d2Key)
	d2.opposite = dKey
	d2.edge = eKey

	mustArc(s, prevA).next = dKey
	mustArc(s, arcB).previous = dKey
	mustArc(s, prevB).next = d2Key
	mustArc(s, arcA).previous = d2Key

	// The receiver keeps the cycle closed by d2; the new face takes the
	// cycle closed by d.
	mustFace(s, f.key).arc = d2Key
	mustFace(s, gKey).arc = dKey
	for cur := arcB; cur != dKey; cur = mustArc(s, cur).next {
		mustArc(s, cur).face = gKey
	}

	return Face[V, E, F]{h: f.h, key: gKey}, nil
}

// =============================================================================
// Internal accessors
// =============================================================================

// mustArc re-fetches an arc record during the commit phase of an operator.
// Keys used here were validated before the first write; a miss means the
// operator itself is broken, which panicking surfaces immediately.
func mustArc[V, E, F any](s *storage[V, E, F], k ArcKey) *arcRecord {
	rec := s.arcs.get(k.ref)
	if rec == nil {
		panic("mesh: internal: validated arc " + k.String() + " vanished mid-operation")
	}
	return rec
}

func mustVertex[V, E, F any](s *storage[V, E, F], k VertexKey) *vertexRecord[V] {
	rec := s.vertices.get(k.ref)
	if rec == nil {
		panic("mesh: internal: validated vertex " + k.String() + " vanished mid-operation")
	}
	return rec
}

func mustEdge[V, E, F any](s *storage[V, E, F], k EdgeKey) *edgeRecord[E] {
	rec := s.edges.get(k.ref)
	if rec == nil {
		panic("mesh: internal: validated edge " + k.String() + " vanished mid-operation")
	}
	return rec
}

func mustFace[V, E, F any](s *storage[V, E, F], k FaceKey) *faceRecord[F] {
	rec := s.faces.get(k.ref)
	if rec == nil {
		panic("mesh: internal: validated face " + k.String() + " vanished mid-operation")
	}
	return rec
}
