package mesh

import "fmt"

// ref is the untyped arena reference underlying all entity keys.
// index addresses a slot, gen must match the slot's current generation, and
// stamp ties the key to the mesh that issued it. A removed entity bumps the
// slot generation, so every previously issued key for that slot goes stale
// at once. The zero ref is "no entity".
type ref struct {
	index uint32
	gen   uint32
	stamp uint32
}

func (r ref) isNil() bool { return r == ref{} }

// VertexKey is a stable, opaque reference to a vertex.
// Keys stay valid until the vertex is removed by a mutation operator;
// dereferencing a stale key fails with an INVALID_KEY error.
type VertexKey struct{ ref }

// ArcKey is a stable, opaque reference to a directed half-edge.
type ArcKey struct{ ref }

// EdgeKey is a stable, opaque reference to an undirected edge.
type EdgeKey struct{ ref }

// FaceKey is a stable, opaque reference to a face.
type FaceKey struct{ ref }

// IsNil reports whether the key references no vertex.
func (k VertexKey) IsNil() bool { return k.isNil() }

// IsNil reports whether the key references no arc.
func (k ArcKey) IsNil() bool { return k.isNil() }

// IsNil reports whether the key references no edge.
func (k EdgeKey) IsNil() bool { return k.isNil() }

// IsNil reports whether the key references no face.
func (k FaceKey) IsNil() bool { return k.isNil() }

// String formats the key for logs and error messages, e.g. "v12@1".
// The format is diagnostic only and not part of any stable contract.
func (k VertexKey) String() string { return fmt.Sprintf("v%d@%d", k.index, k.gen) }

// String formats the key for logs and error messages, e.g. "a42@1".
func (k ArcKey) String() string { return fmt.Sprintf("a%d@%d", k.index, k.gen) }

// String formats the key for logs and error messages, e.g. "e7@2".
func (k EdgeKey) String() string { return fmt.Sprintf("e%d@%d", k.index, k.gen) }

// String formats the key for logs and error messages, e.g. "f3@1".
func (k FaceKey) String() string { return fmt.Sprintf("f%d@%d", k.index, k.gen) }
