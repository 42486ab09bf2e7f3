package treedot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/halcyonui/semtree/pkg/semantics"
)

// Options configures semantics tree rendering.
type Options struct {
	// Detailed includes flags, merge state, and rects in node labels.
	// When false, only the id and label are shown.
	Detailed bool

	// TraversalEdges adds numbered dashed edges showing the traversal
	// order among each node's children, next to the structural edges.
	TraversalEdges bool
}

// ToDOT converts a semantics tree to Graphviz DOT format. The
// resulting DOT string can be rendered using [RenderSVG].
//
// Merge boundaries are drawn with a double border; nodes merged into a
// parent with dashed outlines and grey fill; dirty nodes in pale
// yellow.
func ToDOT(root *semantics.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph semantics {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var writeNode func(n *semantics.Node)
	writeNode = func(n *semantics.Node) {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID(), strings.Join(attrs, ", "))
		n.VisitChildren(func(c *semantics.Node) bool {
			writeNode(c)
			return true
		})
	}
	writeNode(root)

	buf.WriteString("\n")
	var writeEdges func(n *semantics.Node)
	writeEdges = func(n *semantics.Node) {
		n.VisitChildren(func(c *semantics.Node) bool {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", n.ID(), c.ID())
			return true
		})
		if opts.TraversalEdges {
			for i, c := range n.ChildrenInTraversalOrder() {
				fmt.Fprintf(&buf,
					"  n%d -> n%d [style=dashed, color=steelblue, label=\"%d\", fontcolor=steelblue, constraint=false];\n",
					n.ID(), c.ID(), i+1)
			}
		}
		n.VisitChildren(func(c *semantics.Node) bool {
			writeEdges(c)
			return true
		})
	}
	writeEdges(root)

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *semantics.Node, detailed bool) string {
	head := fmt.Sprintf("#%d", n.ID())
	if n.Key() != "" {
		head += " " + n.Key()
	}
	if n.Label() != "" {
		head += "\n" + n.Label()
	}
	if !detailed {
		return head
	}

	r := n.Rect()
	parts := []string{fmt.Sprintf("rect: [%g %g %g %g]", r.Left, r.Top, r.Right, r.Bottom)}
	if n.MergesAllDescendants() {
		parts = append(parts, "merge boundary")
	}
	if n.IsMergedIntoParent() {
		parts = append(parts, "merged into parent")
	}
	if key := n.SortKeyValue(); key != nil {
		parts = append(parts, fmt.Sprintf("sort: %s %g", key.Name, key.Order))
	}
	return head + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *semantics.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.IsMergedIntoParent():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case n.MergesAllDescendants():
		attrs = append(attrs, "peripheries=2")
	}
	if n.IsDirty() {
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	return attrs
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
