// Package geom provides the minimal geometric vocabulary consumed by the
// mesh engine: a 3-component vector, midpoint/centroid helpers, and polygon
// normal computation.
//
// The mesh core does not require vertex payloads to be geometric. Payload
// types opt in by implementing [Positioned] (read access to a position) and,
// for operators that insert vertices, a WithPosition constructor (see
// [Positioned] docs). Payloads lacking a capability cause the dependent
// operator to fail instead of approximating.
//
// [Vector] itself satisfies both capabilities, so it can serve directly as a
// vertex payload for purely positional meshes.
package geom

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the squared-length threshold below which a polygon normal is
// considered degenerate (zero area).
const Epsilon = 1e-12

// ErrDegenerate is returned by [Normal] when the boundary encloses no area
// and no meaningful normal direction exists.
var ErrDegenerate = errors.New("degenerate polygon: zero-area normal")

// Positioned is the read capability a vertex payload may implement to expose
// a spatial position. Geometry-dependent operators (midpoint split, poke,
// circumscribe) query it at the call site.
//
// The companion construction capability is checked structurally against the
// payload type V:
//
//	interface{ WithPosition(geom.Vector) V }
//
// A payload implementing both can be the source of new vertices inserted at
// computed positions (midpoints, centroids). [Vector] implements both.
type Positioned interface {
	Position() Vector
}

// Vector is a 3-component double-precision vector. It doubles as a point;
// the engine does not distinguish points from directions.
type Vector struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// V is shorthand for constructing a Vector.
func V(x, y, z float64) Vector { return Vector{X: x, Y: y, Z: z} }

// Position implements [Positioned], allowing Vector to be used directly as a
// vertex payload.
func (v Vector) Position() Vector { return v }

// WithPosition returns p, implementing the construction capability for
// Vector payloads.
func (v Vector) WithPosition(p Vector) Vector { return p }

// Add returns v + o.
func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vector) Scale(s float64) Vector { return Vector{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of v and o.
func (v Vector) Cross(o Vector) Vector {
	return Vector{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vector) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns v normalized to unit length. The zero vector is returned
// unchanged; callers that care should check [Vector.IsZero] first.
func (v Vector) Unit() Vector {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// IsZero reports whether the squared length of v is below [Epsilon].
func (v Vector) IsZero() bool { return v.Dot(v) < Epsilon }

// String formats the vector as "(x, y, z)" with compact float formatting.
func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Lerp returns the linear interpolation between a and b at parameter t,
// where t=0 yields a and t=1 yields b.
func Lerp(a, b Vector, t float64) Vector {
	return a.Add(b.Sub(a).Scale(t))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Vector) Vector { return Lerp(a, b, 0.5) }

// Centroid returns the arithmetic mean of the given points.
// Returns the zero vector for an empty slice.
func Centroid(points []Vector) Vector {
	if len(points) == 0 {
		return Vector{}
	}
	var sum Vector
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// Normal computes the unit normal of the polygon with the given boundary
// points using Newell's method, which tolerates slightly non-planar input.
// The direction follows the winding order of the boundary (counter-clockwise
// boundaries yield the right-hand-rule normal).
//
// Returns [ErrDegenerate] if fewer than three points are given or the
// boundary encloses no area.
func Normal(points []Vector) (Vector, error) {
	if len(points) < 3 {
		return Vector{}, ErrDegenerate
	}
	var n Vector
	for i, cur := range points {
		next := points[(i+1)%len(points)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	if n.IsZero() {
		return Vector{}, ErrDegenerate
	}
	return n.Unit(), nil
}
