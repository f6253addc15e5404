// Package mesh implements a half-edge (doubly connected edge list) graph
// for representing and editing polygonal meshes, generic over the payloads
// attached to vertices, edges, and faces.
//
// # Data Model
//
// Four entity kinds live in generational arenas owned by a [Mesh]:
//
//   - Vertex: payload plus one arbitrary outgoing arc
//   - Arc: a directed half-edge with source, opposite, next, previous,
//     edge, and face links
//   - Edge: the undirected pairing of two opposite arcs, with payload
//   - Face: payload plus one entry arc into its boundary cycle
//
// Entities are referenced by opaque, type-tagged keys ([VertexKey],
// [ArcKey], [EdgeKey], [FaceKey]). Keys are stable for the lifetime of the
// entity; removing an entity invalidates every outstanding copy of its key,
// and a stale, foreign, or unknown key always fails with an INVALID_KEY
// error instead of resolving recycled data.
//
// # Views and Access Control
//
// All navigation and mutation goes through cursor views minted from an
// access handle:
//
//	r, err := m.Reader()        // shared read access
//	defer r.Close()
//	f, err := r.Face(key)
//	arity, err := f.Arity()
//
// [Mesh.Reader] handles may coexist; [Mesh.Editor] is exclusive. A
// conflicting acquisition fails with ALIASING_VIOLATION at acquisition
// time. Mutation operators run to completion before control returns; their
// multi-entity edits are never observable half-applied.
//
// # Mutation Operators
//
// The structural editing surface consists of four operators:
//
//   - [Arc.Split] / [Arc.SplitWith]: subdivide an edge at a point
//   - [Face.Poke] / [Face.PokeOffset]: insert a centroid vertex and
//     fan-triangulate
//   - [Face.SplitAcross]: insert a diagonal between two boundary vertices
//   - [Face.Circumscribe]: inset subdivision via boundary midpoints
//
// Each operator validates every precondition before its first storage
// write, so a failed operation leaves the mesh untouched.
//
// # Geometry Capabilities
//
// The engine computes no geometry of its own. Operators that need positions
// query the vertex payload at the call site for [geom.Positioned] (read)
// and a WithPosition constructor (build), and fail with
// CAPABILITY_UNAVAILABLE when the payload type lacks them. [geom.Vector]
// satisfies both, so Mesh[geom.Vector, mesh.None, mesh.None] works out of
// the box.
//
// # Construction
//
// [FromPolygons] builds a mesh from an indexed polygon stream, rejecting
// degenerate and non-manifold input. [Validate] (on any handle) re-checks
// all structural invariants; it is a diagnostic, since public operations
// maintain them.
package mesh
