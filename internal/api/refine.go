package api

import (
	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/meshio"
)

// Refinement operators accepted by [Refine].
const (
	OpPoke         = "poke"
	OpCircumscribe = "circumscribe"
)

// Refine applies the named operator to every face of the mesh, in place.
// Returns the number of faces processed (counted before refinement, since
// both operators replace faces with several smaller ones).
//
// Faces created by the pass itself are not refined again; the operators run
// over a snapshot of the face keys taken up front.
func Refine(m *meshio.PositionalMesh, op string) (int, error) {
	if op != OpPoke && op != OpCircumscribe {
		return 0, errors.New(errors.ErrCodeInvalidInput,
			"unknown refinement operator %q (known: poke, circumscribe)", op)
	}

	e, err := m.Editor()
	if err != nil {
		return 0, err
	}
	defer e.Close()

	faces := e.FaceKeys()
	for _, fk := range faces {
		f, err := e.Face(fk)
		if err != nil {
			return 0, err
		}
		switch op {
		case OpPoke:
			_, err = f.Poke()
		case OpCircumscribe:
			_, err = f.Circumscribe()
		}
		if err != nil {
			return 0, err
		}
	}
	return len(faces), nil
}
