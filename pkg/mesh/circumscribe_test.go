package mesh_test

import (
	"testing"

	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/geom"
	"github.com/matzehuels/halfmesh/pkg/mesh"
)

func TestCircumscribe(t *testing.T) {
	tests := []struct {
		name  string
		sides int
	}{
		{"Triangle", 3},
		{"Quad", 4},
		{"Hexagon", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := polygon(t, tt.sides)
			e, _ := m.Editor()
			defer e.Close()

			f, _ := e.Face(e.FaceKeys()[0])
			central, err := f.Circumscribe()
			if err != nil {
				t.Fatalf("Circumscribe: %v", err)
			}

			// The central face has the original arity; every original vertex
			// survives and one midpoint per side is added.
			arity, err := central.Arity()
			if err != nil {
				t.Fatalf("Arity: %v", err)
			}
			if arity != tt.sides {
				t.Errorf("central arity = %d, want %d", arity, tt.sides)
			}
			if got := e.VertexCount(); got != 2*tt.sides {
				t.Errorf("vertices = %d, want %d", got, 2*tt.sides)
			}
			if got := e.FaceCount(); got != tt.sides+1 {
				t.Errorf("faces = %d, want %d", got, tt.sides+1)
			}

			// One corner triangle per original vertex.
			triangles := 0
			for _, k := range e.FaceKeys() {
				if k == central.Key() {
					continue
				}
				cf, _ := e.Face(k)
				a, err := cf.Arity()
				if err != nil {
					t.Fatalf("corner Arity: %v", err)
				}
				if a == 3 {
					triangles++
				}
			}
			if triangles != tt.sides {
				t.Errorf("corner triangles = %d, want %d", triangles, tt.sides)
			}

			// The central boundary consists entirely of midpoint vertices:
			// each has degree 4 after the surrounding diagonals are in.
			for vk := range centralVertices(t, central) {
				v, _ := e.Vertex(vk)
				deg, err := v.Degree()
				if err != nil {
					t.Fatalf("Degree: %v", err)
				}
				if deg != 4 {
					t.Errorf("midpoint %s degree = %d, want 4", vk, deg)
				}
			}

			if err := e.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestCircumscribeUnavailableLeavesMeshUntouched(t *testing.T) {
	m, err := mesh.FromPolygons[label, mesh.None, mesh.None](
		[]label{{"a"}, {"b"}, {"c"}, {"d"}},
		[][]int{{0, 1, 2, 3}},
	)
	if err != nil {
		t.Fatalf("FromPolygons: %v", err)
	}
	e, _ := m.Editor()
	defer e.Close()

	f, _ := e.Face(e.FaceKeys()[0])
	if _, err := f.Circumscribe(); !errors.Is(err, errors.ErrCodeCapabilityUnavailable) {
		t.Fatalf("got %v, want CAPABILITY_UNAVAILABLE", err)
	}
	if e.VertexCount() != 4 || e.ArcCount() != 8 || e.EdgeCount() != 4 || e.FaceCount() != 1 {
		t.Errorf("counts = %d/%d/%d/%d, want 4/8/4/1",
			e.VertexCount(), e.ArcCount(), e.EdgeCount(), e.FaceCount())
	}
	arity, err := f.Arity()
	if err != nil || arity != 4 {
		t.Errorf("face arity = %d (%v), want 4", arity, err)
	}
}

// polygon builds a single n-gon on the unit circle in the XY plane.
func polygon(t *testing.T, n int) *mesh.Mesh[geom.Vector, mesh.None, mesh.None] {
	t.Helper()
	var vs []geom.Vector
	switch n {
	case 3:
		vs = []geom.Vector{geom.V(0, 0, 0), geom.V(2, 0, 0), geom.V(1, 2, 0)}
	case 4:
		vs = []geom.Vector{geom.V(0, 0, 0), geom.V(2, 0, 0), geom.V(2, 2, 0), geom.V(0, 2, 0)}
	case 6:
		vs = []geom.Vector{
			geom.V(2, 0, 0), geom.V(1, 2, 0), geom.V(-1, 2, 0),
			geom.V(-2, 0, 0), geom.V(-1, -2, 0), geom.V(1, -2, 0),
		}
	default:
		t.Fatalf("no layout for %d-gon", n)
	}
	indices := make([]int, n)
	for i := range n {
		indices[i] = i
	}
	m, err := mesh.FromPolygons[geom.Vector, mesh.None, mesh.None](vs, [][]int{indices})
	if err != nil {
		t.Fatalf("FromPolygons: %v", err)
	}
	return m
}

func centralVertices(t *testing.T, f mesh.Face[geom.Vector, mesh.None, mesh.None]) map[mesh.VertexKey]struct{} {
	t.Helper()
	keys, err := f.VertexKeys()
	if err != nil {
		t.Fatalf("VertexKeys: %v", err)
	}
	set := make(map[mesh.VertexKey]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
