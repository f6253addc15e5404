// Package primitive generates polygon streams for standard shapes. The
// generators emit [meshio.Document] values, so their output feeds the mesh
// builder, snapshot stores, and renderers alike.
package primitive

import (
	"math"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/geom"
	"github.com/matzehuels/halfmesh/pkg/meshio"
)

// Known primitive names, as accepted by [Generate].
const (
	NameTriangle    = "triangle"
	NameQuad        = "quad"
	NameTetrahedron = "tetrahedron"
	NameCube        = "cube"
	NameSphere      = "sphere"
)

// DefaultSphereSegments is the longitude resolution used by [Generate] for
// spheres; latitude rings are half that.
const DefaultSphereSegments = 16

// Generate builds a named primitive at unit scale. Fails with INVALID_NAME
// for unknown names.
func Generate(name string) (meshio.Document, error) {
	switch name {
	case NameTriangle:
		return Triangle(), nil
	case NameQuad:
		return Quad(), nil
	case NameTetrahedron:
		return Tetrahedron(), nil
	case NameCube:
		return Cube(), nil
	case NameSphere:
		return Sphere(DefaultSphereSegments), nil
	default:
		return meshio.Document{}, errors.New(errors.ErrCodeInvalidName,
			"unknown primitive %q (known: triangle, quad, tetrahedron, cube, sphere)", name)
	}
}

// Triangle is a single unit right triangle in the XY plane.
func Triangle() meshio.Document {
	return meshio.Document{
		Version: meshio.FormatVersion,
		Name:    NameTriangle,
		Vertices: []geom.Vector{
			geom.V(0, 0, 0), geom.V(1, 0, 0), geom.V(0, 1, 0),
		},
		Polygons: [][]int{{0, 1, 2}},
	}
}

// Quad is a single unit square in the XY plane.
func Quad() meshio.Document {
	return meshio.Document{
		Version: meshio.FormatVersion,
		Name:    NameQuad,
		Vertices: []geom.Vector{
			geom.V(0, 0, 0), geom.V(1, 0, 0), geom.V(1, 1, 0), geom.V(0, 1, 0),
		},
		Polygons: [][]int{{0, 1, 2, 3}},
	}
}

// Tetrahedron is the regular tetrahedron inscribed in alternating cube
// corners, with outward-facing triangles.
func Tetrahedron() meshio.Document {
	return meshio.Document{
		Version: meshio.FormatVersion,
		Name:    NameTetrahedron,
		Vertices: []geom.Vector{
			geom.V(1, 1, 1), geom.V(1, -1, -1), geom.V(-1, 1, -1), geom.V(-1, -1, 1),
		},
		Polygons: [][]int{
			{0, 1, 2},
			{0, 3, 1},
			{0, 2, 3},
			{1, 3, 2},
		},
	}
}

// Cube is the closed unit cube with outward-facing quads.
func Cube() meshio.Document {
	return meshio.Document{
		Version: meshio.FormatVersion,
		Name:    NameCube,
		Vertices: []geom.Vector{
			geom.V(0, 0, 0), geom.V(1, 0, 0), geom.V(1, 1, 0), geom.V(0, 1, 0),
			geom.V(0, 0, 1), geom.V(1, 0, 1), geom.V(1, 1, 1), geom.V(0, 1, 1),
		},
		Polygons: [][]int{
			{3, 2, 1, 0},
			{4, 5, 6, 7},
			{0, 1, 5, 4},
			{1, 2, 6, 5},
			{2, 3, 7, 6},
			{3, 0, 4, 7},
		},
	}
}

// Sphere is a closed UV sphere of radius 1 with the given number of
// longitude segments (minimum 3) and segments/2 latitude rings (minimum 2).
// The polar caps are triangle fans; the body is quads. Pole vertices are
// shared through an [Indexer], so the result is manifold.
func Sphere(segments int) meshio.Document {
	if segments < 3 {
		segments = 3
	}
	rings := max(segments/2, 2)

	var idx Indexer
	at := func(ring, seg int) int {
		// sin(pi) is not exactly zero in floating point, so the poles are
		// emitted literally; computed pole positions would differ per
		// segment and never weld.
		switch ring {
		case 0:
			return idx.Index(geom.V(0, 0, 1))
		case rings:
			return idx.Index(geom.V(0, 0, -1))
		}
		phi := math.Pi * float64(ring) / float64(rings)
		theta := 2 * math.Pi * float64(seg%segments) / float64(segments)
		return idx.Index(geom.V(
			math.Sin(phi)*math.Cos(theta),
			math.Sin(phi)*math.Sin(theta),
			math.Cos(phi),
		))
	}

	var polygons [][]int
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			a := at(ring, seg)
			b := at(ring+1, seg)
			c := at(ring+1, seg+1)
			d := at(ring, seg+1)
			switch ring {
			case 0:
				polygons = append(polygons, []int{a, b, c}) // top cap fan
			case rings - 1:
				polygons = append(polygons, []int{a, b, d}) // bottom cap fan
			default:
				polygons = append(polygons, []int{a, b, c, d})
			}
		}
	}

	return meshio.Document{
		Version:  meshio.FormatVersion,
		Name:     NameSphere,
		Vertices: idx.Vertices(),
		Polygons: polygons,
	}
}
