package primitive

import (
	"math"

	"github.com/matzehuels/halfmesh/pkg/geom"
)

// Indexer deduplicates vertex positions while assembling a polygon stream,
// welding triangle-soup style input into shared indices. The zero value is
// ready to use.
//
// Positions are compared by exact bit pattern after canonicalizing negative
// zero, so two positions weld only if every component is identical. Inputs
// with float noise should be quantized by the caller before indexing.
type Indexer struct {
	vertices []geom.Vector
	index    map[[3]uint64]int
}

// Index returns the index for position p, appending it to the vertex table
// on first sight.
func (ix *Indexer) Index(p geom.Vector) int {
	if ix.index == nil {
		ix.index = make(map[[3]uint64]int)
	}
	k := canonicalKey(p)
	if i, ok := ix.index[k]; ok {
		return i
	}
	i := len(ix.vertices)
	ix.vertices = append(ix.vertices, p)
	ix.index[k] = i
	return i
}

// Vertices returns the accumulated vertex table in first-sight order.
// The returned slice is owned by the indexer; callers must not append.
func (ix *Indexer) Vertices() []geom.Vector { return ix.vertices }

// Len returns the number of distinct positions seen.
func (ix *Indexer) Len() int { return len(ix.vertices) }

// canonicalKey maps a position to its identity key: the raw float bits with
// -0 folded into +0 so the two zeroes weld.
func canonicalKey(p geom.Vector) [3]uint64 {
	return [3]uint64{canonicalBits(p.X), canonicalBits(p.Y), canonicalBits(p.Z)}
}

func canonicalBits(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}
