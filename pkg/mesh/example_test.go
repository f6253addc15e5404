package mesh_test

import (
	"fmt"

	"github.com/matzehuels/halfmesh/pkg/geom"
	"github.com/matzehuels/halfmesh/pkg/mesh"
)

func ExampleFromPolygons() {
	m, err := mesh.FromPolygons[geom.Vector, mesh.None, mesh.None](
		[]geom.Vector{
			geom.V(0, 0, 0),
			geom.V(1, 0, 0),
			geom.V(1, 1, 0),
			geom.V(0, 1, 0),
		},
		[][]int{{0, 1, 2, 3}},
	)
	if err != nil {
		fmt.Println("build:", err)
		return
	}

	r, err := m.Reader()
	if err != nil {
		fmt.Println("reader:", err)
		return
	}
	defer r.Close()

	fmt.Printf("vertices=%d edges=%d faces=%d\n", r.VertexCount(), r.EdgeCount(), r.FaceCount())
	// Output: vertices=4 edges=4 faces=1
}

func ExampleFace_Poke() {
	m, _ := mesh.FromPolygons[geom.Vector, mesh.None, mesh.None](
		[]geom.Vector{
			geom.V(0, 0, 0),
			geom.V(2, 0, 0),
			geom.V(2, 2, 0),
			geom.V(0, 2, 0),
		},
		[][]int{{0, 1, 2, 3}},
	)

	e, _ := m.Editor()
	defer e.Close()

	f, _ := e.Face(e.FaceKeys()[0])
	if _, err := f.Poke(); err != nil {
		fmt.Println("poke:", err)
		return
	}

	fmt.Printf("faces=%d vertices=%d\n", e.FaceCount(), e.VertexCount())

	center, _ := e.Vertex(e.VertexKeys()[4])
	pos, _ := center.Position()
	fmt.Println("center:", pos)
	// Output:
	// faces=4 vertices=5
	// center: (1, 1, 0)
}

func ExampleVertex_IncidentArcs() {
	m, _ := mesh.FromPolygons[geom.Vector, mesh.None, mesh.None](
		[]geom.Vector{
			geom.V(0, 0, 0),
			geom.V(1, 0, 0),
			geom.V(1, 1, 0),
			geom.V(0, 1, 0),
		},
		[][]int{{0, 1, 2}, {0, 2, 3}},
	)

	r, _ := m.Reader()
	defer r.Close()

	v, _ := r.Vertex(r.VertexKeys()[0])
	degree := 0
	for _, err := range v.IncidentArcs() {
		if err != nil {
			fmt.Println("walk:", err)
			return
		}
		degree++
	}
	fmt.Println("degree:", degree)
	// Output: degree: 3
}
