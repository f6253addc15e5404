// Package pkg provides the core libraries for halfmesh.
//
// # Overview
//
// Halfmesh represents polygonal meshes as half-edge (doubly connected edge
// list) graphs: every undirected edge is a pair of opposite directed arcs,
// and faces, vertices, and edges are all reachable from an arc in constant
// time. The pkg directory is organized into:
//
//  1. [mesh] - The topology engine (storage, keys, views, operators)
//  2. [geom] - Vectors and geometry capabilities for vertex payloads
//  3. [meshio] - The JSON polygon-stream wire format
//  4. [primitive] - Topology generators (cube, sphere, ...)
//  5. [store] - Named snapshot storage (file, redis, mongo backends)
//  6. [render] - Graphviz connectivity diagrams
//  7. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Quick Start
//
// Build a mesh, refine it, and snapshot the result:
//
//	import (
//	    "github.com/matzehuels/halfmesh/pkg/geom"
//	    "github.com/matzehuels/halfmesh/pkg/mesh"
//	    "github.com/matzehuels/halfmesh/pkg/meshio"
//	)
//
//	// 1. Build from an indexed polygon stream
//	m, _ := mesh.FromPolygons[geom.Vector, mesh.None, mesh.None](vertices, polygons)
//
//	// 2. Edit through an exclusive handle
//	e, _ := m.Editor()
//	f, _ := e.Face(e.FaceKeys()[0])
//	f.Poke()
//	e.Close()
//
//	// 3. Snapshot to the wire format
//	doc, _ := meshio.FromMesh(m, "example")
//
// # Main Packages
//
// [mesh] - Generic Mesh[V, E, F] over arbitrary vertex, edge, and face
// payloads. Entities live in generational arenas addressed by opaque keys
// that detect staleness and cross-mesh confusion. Access runs through
// Reader (shared) and Editor (exclusive) handles; mutation operators
// (split, poke, face split, circumscribe) validate before committing.
//
// [geom] - Minimal vector vocabulary plus the capability contracts
// (Positioned, WithPosition) geometry-dependent operators probe for.
//
// [meshio] - Canonical serialization: vertices + polygons, isomorphic
// round-trips, keys never leave memory.
//
// [primitive] - Named generators producing polygon streams, with an
// Indexer that welds exactly coincident vertices.
//
// [store] - Put/Get/List/Delete of named snapshots over file, null,
// redis, and mongo backends, with retry support for the networked ones.
//
// [render] - Half-edge connectivity as DOT source or laid-out SVG.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/mesh/...     # Topology engine only
//	go test -run Example       # Examples only
//
// [mesh]: https://pkg.go.dev/github.com/matzehuels/halfmesh/pkg/mesh
// [geom]: https://pkg.go.dev/github.com/matzehuels/halfmesh/pkg/geom
// [meshio]: https://pkg.go.dev/github.com/matzehuels/halfmesh/pkg/meshio
// [primitive]: https://pkg.go.dev/github.com/matzehuels/halfmesh/pkg/primitive
// [store]: https://pkg.go.dev/github.com/matzehuels/halfmesh/pkg/store
// [render]: https://pkg.go.dev/github.com/matzehuels/halfmesh/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/halfmesh/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/halfmesh/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/halfmesh/pkg/buildinfo
package pkg
