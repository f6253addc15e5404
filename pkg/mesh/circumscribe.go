package mesh

import (
	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/geom"
)

// Circumscribe subdivides the face by insetting a smaller face connected
// through the midpoints of the original boundary: every boundary arc is
// split at its midpoint, then consecutive midpoint pairs are connected by
// diagonals, carving the outer ring into one corner triangle per original
// vertex and leaving a central face bounded entirely by the midpoints.
//
// Returns a view of the central face, whose arity equals the original
// face's arity. The original boundary vertices all survive; arity new
// midpoint vertices are added.
//
// The composite validates every precondition of every step before the first
// structural change: if it fails, the mesh is exactly as it was. It needs
// the same capabilities as [Arc.Split] on every boundary vertex payload.
func (f Face[V, E, F]) Circumscribe() (Face[V, E, F], error) {
	s, err := f.h.writable()
	if err != nil {
		return Face[V, E, F]{}, err
	}

	// Validate all midpoint splits upfront: collect the original boundary
	// arcs and precompute every midpoint payload. After this point no step
	// of the composite can fail.
	var (
		ring     []ArcKey
		payloads []V
	)
	for a, err := range f.BoundaryArcs() {
		if err != nil {
			return Face[V, E, F]{}, err
		}
		rec := mustArc(s, a.key)
		src := mustVertex(s, rec.source).payload
		dst := mustVertex(s, mustArc(s, rec.opposite).source).payload
		p, ok := positionOf(src)
		if !ok {
			return Face[V, E, F]{}, errNoPosition(src)
		}
		q, ok := positionOf(dst)
		if !ok {
			return Face[V, E, F]{}, errNoPosition(dst)
		}
		payload, ok := buildAt(src, geom.Midpoint(p, q))
		if !ok {
			return Face[V, E, F]{}, errNoBuilder(src)
		}
		ring = append(ring, a.key)
		payloads = append(payloads, payload)
	}
	n := len(ring)

	// Split each original boundary arc at its midpoint. Splitting never
	// disturbs the keys of the remaining original arcs, so the collected
	// ring stays valid while the face's arity grows to 2n.
	midpoints := make([]VertexKey, n)
	for i, key := range ring {
		v, err := (Arc[V, E, F]{h: f.h, key: key}).SplitWith(payloads[i])
		if err != nil {
			return Face[V, E, F]{}, errors.Wrap(errors.ErrCodeInternal, err,
				"validated midpoint split of arc %s failed", key)
		}
		midpoints[i] = v.Key()
	}

	// Connect consecutive midpoints in perimeter order. Each diagonal
	// carves off the corner triangle at the intervening original vertex;
	// the receiver of each split keeps the corner, the returned face is
	// the shrinking remainder, which ends as the central face.
	central := f
	for i := range n {
		next, err := central.SplitAcross(midpoints[i], midpoints[(i+1)%n])
		if err != nil {
			return Face[V, E, F]{}, errors.Wrap(errors.ErrCodeInternal, err,
				"validated diagonal %s-%s failed", midpoints[i], midpoints[(i+1)%n])
		}
		central = next
	}
	return central, nil
}
