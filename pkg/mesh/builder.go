package mesh

import (
	"github.com/matzehuels/halfmesh/pkg/errors"
)

// FromPolygons builds a mesh from an indexed polygon stream: a vertex
// payload table and an ordered list of polygons, each a list of indices
// into the table in a consistent winding order. The input is expected to be
// deduplicated by an upstream indexer (see pkg/primitive); identical
// positions under different indices produce distinct vertices.
//
// Construction establishes every structural invariant from the ground up.
// Unreferenced vertices are allowed and become isolated records with no
// outgoing arc. Open meshes are supported: unpaired polygon sides receive
// boundary arcs bounding no face, linked into boundary cycles around each
// hole.
//
// Fails with TOPOLOGY_VIOLATION and builds nothing if the stream describes:
//   - a polygon of arity < 3
//   - an index outside the vertex table
//   - a polygon visiting the same vertex twice
//   - non-manifold topology: a directed side used by two polygons (which
//     also catches an edge shared by more than two polygons, as well as
//     inconsistent winding between neighbors)
func FromPolygons[V, E, F any](vertices []V, polygons [][]int) (*Mesh[V, E, F], error) {
	if err := checkPolygons(len(vertices), polygons); err != nil {
		return nil, err
	}

	m := New[V, E, F]()
	s := &m.s

	vkeys := make([]VertexKey, len(vertices))
	for i, payload := range vertices {
		vkeys[i] = s.insertVertex(vertexRecord[V]{payload: payload})
	}

	type side struct{ from, to int }
	arcBySide := make(map[side]ArcKey)
	var sides []side // creation order, for deterministic edge minting

	// First pass: one face per polygon with its interior arc cycle.
	// Opposite links and edges are resolved once all sides are known.
	for pi, poly := range polygons {
		n := len(poly)
		fKey := s.insertFace(faceRecord[F]{})
		arcs := make([]ArcKey, n)
		for i, from := range poly {
			to := poly[(i+1)%n]
			if _, dup := arcBySide[side{from, to}]; dup {
				return nil, errors.New(errors.ErrCodeTopologyViolation,
					"non-manifold input: side %d→%d of polygon %d is already used", from, to, pi)
			}
			aKey := s.insertArc(arcRecord{source: vkeys[from], face: fKey})
			arcBySide[side{from, to}] = aKey
			sides = append(sides, side{from, to})
			arcs[i] = aKey
			mustVertex(s, vkeys[from]).arc = aKey
		}
		mustFace(s, fKey).arc = arcs[0]
		for i := range n {
			rec := mustArc(s, arcs[i])
			rec.next = arcs[(i+1)%n]
			rec.previous = arcs[(i-1+n)%n]
		}
	}

	// Second pass: pair opposites and mint edges, in side creation order.
	// Sides without a reverse partner get a boundary arc bounding no face.
	for _, sd := range sides {
		aKey := arcBySide[sd]
		if !mustArc(s, aKey).edge.IsNil() {
			continue // already paired from the partner side
		}
		if bKey, ok := arcBySide[side{sd.to, sd.from}]; ok {
			eKey := s.insertEdge(edgeRecord[E]{arc: aKey})
			a := mustArc(s, aKey)
			a.opposite = bKey
			a.edge = eKey
			b := mustArc(s, bKey)
			b.opposite = aKey
			b.edge = eKey
			continue
		}
		eKey := s.insertEdge(edgeRecord[E]{arc: aKey})
		bKey := s.insertArc(arcRecord{
			source:   vkeys[sd.to],
			opposite: aKey,
			edge:     eKey,
		})
		a := mustArc(s, aKey)
		a.opposite = bKey
		a.edge = eKey
	}

	// Third pass: link each boundary arc into its hole cycle. The successor
	// of a boundary arc ending at u is found by rotating around u through
	// the incident faces until the fan runs out at the next boundary arc.
	var boundary []ArcKey
	s.arcs.each(func(r ref, rec *arcRecord) bool {
		if rec.face.IsNil() {
			boundary = append(boundary, ArcKey{r})
		}
		return true
	})
	for _, bKey := range boundary {
		cur := mustArc(s, bKey).opposite // interior arc leaving u
		var succ ArcKey
		for range s.arcs.len() {
			prev := mustArc(s, cur).previous // interior arc ending at u
			out := mustArc(s, prev).opposite // leaving u again
			if mustArc(s, out).face.IsNil() {
				succ = out
				break
			}
			cur = out
		}
		if succ.IsNil() {
			return nil, errors.New(errors.ErrCodeTopologyViolation,
				"non-manifold input: boundary fan around vertex %s does not close", mustArc(s, bKey).source)
		}
		mustArc(s, bKey).next = succ
		mustArc(s, succ).previous = bKey
	}

	if err := m.s.validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTopologyViolation, err,
			"constructed mesh failed validation")
	}
	return m, nil
}

// checkPolygons validates the polygon stream before any allocation.
func checkPolygons(vertexCount int, polygons [][]int) error {
	for pi, poly := range polygons {
		if len(poly) < 3 {
			return errors.New(errors.ErrCodeTopologyViolation,
				"degenerate polygon %d: arity %d < 3", pi, len(poly))
		}
		seen := make(map[int]struct{}, len(poly))
		for _, idx := range poly {
			if idx < 0 || idx >= vertexCount {
				return errors.New(errors.ErrCodeTopologyViolation,
					"polygon %d references vertex %d outside table of %d", pi, idx, vertexCount)
			}
			if _, dup := seen[idx]; dup {
				return errors.New(errors.ErrCodeTopologyViolation,
					"polygon %d visits vertex %d twice", pi, idx)
			}
			seen[idx] = struct{}{}
		}
	}
	return nil
}
