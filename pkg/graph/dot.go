package graph

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures DOT generation.
type DOTOptions struct {
	// Detailed includes node attributes in labels.
	// When false, only the node name is shown.
	Detailed bool
	// Scale converts source coordinates to points. Zero means 1.
	Scale float64
}

var shapes = map[string]string{
	"protein":       "ellipse",
	"proteinfamily": "box",
	"complex":       "box3d",
	"process":       "diamond",
	"compartment":   "folder",
}

// ToDOT converts a graph to Graphviz DOT format.
// Nodes with both coordinates are pinned at their position, with y flipped
// so the picture matches the screen coordinates of the source file.
func ToDOT(g *Graph, opts DOTOptions) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", g.Name)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}
		if shape, ok := shapes[n.Type()]; ok {
			attrs = append(attrs, "shape="+shape)
		}
		if n.HasPosition() {
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"",
				strconv.FormatFloat(*n.X*scale, 'f', -1, 64),
				strconv.FormatFloat(-*n.Y*scale, 'f', -1, 64)))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  n%d -> n%d [label=%q];\n", e.Source, e.Target, e.Interaction)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n Node, detailed bool) string {
	if !detailed || len(n.Attrs) == 0 {
		return n.Name
	}
	parts := make([]string, 0, len(n.Attrs))
	for _, k := range slices.Sorted(maps.Keys(n.Attrs)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Attrs[k]))
	}
	return n.Name + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG using Graphviz.
// Pinned positions are honoured by the neato engine, so graphs with any
// positioned node are laid out with neato and everything else with dot.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

	if strings.Contains(dot, "pos=") {
		gv.SetLayout(graphviz.NEATO)
	}

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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
