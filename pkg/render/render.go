// Package render visualizes mesh connectivity as node-link diagrams.
// Vertices become Graphviz nodes and edges become links, which gives a
// quick topological picture of small meshes; it is a debugging aid, not a
// 3D viewer.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/halfmesh/pkg/meshio"
)

// Options configures connectivity rendering.
type Options struct {
	// Coords includes vertex coordinates in node labels.
	// When false, only the vertex index is shown.
	Coords bool

	// Faces adds one diamond node per polygon, linked to its boundary
	// vertices with dashed lines.
	Faces bool
}

// ToDOT converts a mesh snapshot to Graphviz DOT format. Each distinct
// undirected polygon side appears exactly once, so the output reflects the
// edge structure, not the half-edge structure. The resulting DOT string can
// be rendered with [RenderSVG].
func ToDOT(doc meshio.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph mesh {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for i, v := range doc.Vertices {
		label := strconv.Itoa(i)
		if opts.Coords {
			label = fmt.Sprintf("%d\n%s", i, v)
		}
		fmt.Fprintf(&buf, "  v%d [label=%q];\n", i, label)
	}

	buf.WriteString("\n")
	type side struct{ lo, hi int }
	seen := make(map[side]bool)
	for _, poly := range doc.Polygons {
		for i, from := range poly {
			to := poly[(i+1)%len(poly)]
			lo, hi := min(from, to), max(from, to)
			if seen[side{lo, hi}] {
				continue
			}
			seen[side{lo, hi}] = true
			fmt.Fprintf(&buf, "  v%d -- v%d;\n", lo, hi)
		}
	}

	if opts.Faces {
		buf.WriteString("\n")
		for fi, poly := range doc.Polygons {
			fmt.Fprintf(&buf, "  f%d [label=\"f%d\", shape=diamond, fillcolor=lightgrey];\n", fi, fi)
			for _, vi := range poly {
				fmt.Fprintf(&buf, "  f%d -- v%d [style=dashed];\n", fi, vi)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the outer svg tag so the image scales to its
// viewBox instead of Graphviz's point-based size attributes.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
