package primitive_test

import (
	"math"
	"testing"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/geom"
	"github.com/matzehuels/halfmesh/pkg/meshio"
	"github.com/matzehuels/halfmesh/pkg/primitive"
)

func TestGenerateBuildsValidMeshes(t *testing.T) {
	tests := []struct {
		name     string
		vertices int
		faces    int
		closed   bool
	}{
		{primitive.NameTriangle, 3, 1, false},
		{primitive.NameQuad, 4, 1, false},
		{primitive.NameTetrahedron, 4, 4, true},
		{primitive.NameCube, 8, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := primitive.Generate(tt.name)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(doc.Vertices) != tt.vertices || len(doc.Polygons) != tt.faces {
				t.Errorf("document = %d vertices/%d polygons, want %d/%d",
					len(doc.Vertices), len(doc.Polygons), tt.vertices, tt.faces)
			}

			m, err := meshio.ToMesh(doc)
			if err != nil {
				t.Fatalf("ToMesh: %v", err)
			}
			r, _ := m.Reader()
			defer r.Close()
			if err := r.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}

			boundary := 0
			for _, k := range r.ArcKeys() {
				a, _ := r.Arc(k)
				if b, _ := a.IsBoundary(); b {
					boundary++
				}
			}
			if tt.closed && boundary != 0 {
				t.Errorf("closed primitive has %d boundary arcs", boundary)
			}
			if !tt.closed && boundary == 0 {
				t.Errorf("open primitive has no boundary arcs")
			}
		})
	}
}

func TestGenerateUnknownName(t *testing.T) {
	if _, err := primitive.Generate("torus"); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("got %v, want INVALID_NAME", err)
	}
}

func TestSphere(t *testing.T) {
	doc := primitive.Sphere(8)
	m, err := meshio.ToMesh(doc)
	if err != nil {
		t.Fatalf("ToMesh: %v", err)
	}
	r, _ := m.Reader()
	defer r.Close()

	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	// Both poles weld to a single vertex each: segments per interior ring
	// plus the two poles.
	segments, rings := 8, 4
	if want := segments*(rings-1) + 2; len(doc.Vertices) != want {
		t.Errorf("vertex count = %d, want %d", len(doc.Vertices), want)
	}

	// A UV sphere is closed.
	for _, k := range r.ArcKeys() {
		a, _ := r.Arc(k)
		if b, _ := a.IsBoundary(); b {
			t.Fatalf("sphere has a boundary arc")
		}
	}

	// Euler characteristic of a sphere: V - E + F = 2.
	if chi := r.VertexCount() - r.EdgeCount() + r.FaceCount(); chi != 2 {
		t.Errorf("Euler characteristic = %d, want 2", chi)
	}

	// All vertices sit on the unit sphere.
	for _, p := range doc.Vertices {
		if math.Abs(p.Length()-1) > 1e-9 {
			t.Errorf("vertex %v is off the unit sphere", p)
		}
	}
}

func TestIndexerWeldsExactPositions(t *testing.T) {
	var ix primitive.Indexer

	a := ix.Index(geom.V(1, 2, 3))
	b := ix.Index(geom.V(4, 5, 6))
	if a == b {
		t.Fatalf("distinct positions share index %d", a)
	}
	if again := ix.Index(geom.V(1, 2, 3)); again != a {
		t.Errorf("repeat index = %d, want %d", again, a)
	}
	if ix.Len() != 2 {
		t.Errorf("Len = %d, want 2", ix.Len())
	}

	// Negative zero welds with positive zero.
	z1 := ix.Index(geom.V(0, 0, 0))
	z2 := ix.Index(geom.V(math.Copysign(0, -1), 0, 0))
	if z1 != z2 {
		t.Errorf("-0 and +0 got distinct indices %d/%d", z1, z2)
	}

	// Nearby but unequal floats stay distinct.
	n1 := ix.Index(geom.V(1, 0, 0))
	n2 := ix.Index(geom.V(1+1e-15, 0, 0))
	if n1 == n2 {
		t.Errorf("distinct floats welded to index %d", n1)
	}
}
