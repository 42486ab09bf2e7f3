package semantics

import (
	"slices"

	"github.com/halcyonui/semtree/pkg/geometry"
)

// Traversal ordering turns paint order into reading order in three
// stages: vertical banding groups siblings whose vertical extents
// overlap, each band is sorted along the reading direction, and explicit
// sort keys then reorder the interior of comparable runs.

// rectDeflation shrinks each child rect slightly before banding so that
// rows that merely touch edge-to-edge do not collapse into one band.
const rectDeflation = 0.1

// boxEdge is one vertical boundary of a node's bounding box, positioned
// in the parent's coordinate space.
type boxEdge struct {
	isLeading bool
	offset    float64
	node      *Node
}

// compareBoxEdges orders edges by offset; at equal offsets a leading
// edge precedes a trailing one so bands open before they close.
func compareBoxEdges(a, b boxEdge) int {
	switch {
	case a.offset < b.offset:
		return -1
	case a.offset > b.offset:
		return 1
	case a.isLeading == b.isLeading:
		return 0
	case a.isLeading:
		return -1
	default:
		return 1
	}
}

// sortGroup is a band of nodes whose vertical extents mutually overlap.
type sortGroup struct {
	startOffset   float64
	textDirection TextDirection
	nodes         []*Node
}

// sortedWithinBand orders the band's nodes along the reading direction:
// ascending transformed left edge for left-to-right, descending
// transformed right edge for right-to-left. Ties keep insertion order.
func (g *sortGroup) sortedWithinBand() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	slices.SortStableFunc(out, func(a, b *Node) int {
		ra := geometry.MapRectToParent(a.transform, a.rect)
		rb := geometry.MapRectToParent(b.transform, b.rect)
		var ka, kb float64
		if g.textDirection == DirectionRTL {
			ka, kb = -ra.Right, -rb.Right
		} else {
			ka, kb = ra.Left, rb.Left
		}
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})
	return out
}

// ChildrenInDefaultOrder computes the geometric reading order of a set
// of sibling nodes: vertical bands top to bottom, reading direction
// within each band. Each child's own transform positions it in the
// shared parent space; the parent's transform is not applied.
func ChildrenInDefaultOrder(children []*Node, textDirection TextDirection) []*Node {
	edges := make([]boxEdge, 0, 2*len(children))
	for _, child := range children {
		r := child.rect
		r.Left += rectDeflation
		r.Top += rectDeflation
		r.Right -= rectDeflation
		r.Bottom -= rectDeflation
		top := geometry.MapToParent(child.transform, geometry.Point{X: r.Left, Y: r.Top})
		bottom := geometry.MapToParent(child.transform, geometry.Point{X: r.Right, Y: r.Bottom})
		edges = append(edges,
			boxEdge{isLeading: true, offset: top.Y, node: child},
			boxEdge{isLeading: false, offset: bottom.Y, node: child},
		)
	}
	slices.SortStableFunc(edges, compareBoxEdges)

	var bands []*sortGroup
	var open *sortGroup
	depth := 0
	for _, edge := range edges {
		if edge.isLeading {
			depth++
			if open == nil {
				open = &sortGroup{startOffset: edge.offset, textDirection: textDirection}
			}
			open.nodes = append(open.nodes, edge.node)
		} else {
			depth--
		}
		if depth == 0 && open != nil {
			bands = append(bands, open)
			open = nil
		}
	}
	slices.SortStableFunc(bands, func(a, b *sortGroup) int {
		switch {
		case a.startOffset < b.startOffset:
			return -1
		case a.startOffset > b.startOffset:
			return 1
		default:
			return 0
		}
	})

	out := make([]*Node, 0, len(children))
	for _, band := range bands {
		out = append(out, band.sortedWithinBand()...)
	}
	return out
}

// applySortKeyOrder overlays explicit sort keys on a default-ordered
// sequence. Consecutive nodes with mutually comparable keys form a run;
// a run is reordered by key only when every member carries a key (an
// all-absent run keeps its existing order). Runs never move relative to
// each other, only their interiors may change.
func applySortKeyOrder(defaultOrder []*Node) []*Node {
	out := make([]*Node, 0, len(defaultOrder))
	var run []*Node

	flush := func() {
		if len(run) == 0 {
			return
		}
		if run[0].sortKey != nil {
			slices.SortStableFunc(run, func(a, b *Node) int {
				return a.sortKey.Compare(b.sortKey)
			})
		}
		out = append(out, run...)
		run = nil
	}

	for i, child := range defaultOrder {
		if i > 0 && !child.sortKey.Comparable(defaultOrder[i-1].sortKey) {
			flush()
		}
		run = append(run, child)
	}
	flush()
	return out
}

// inheritedTextDirection returns the node's own text direction, or the
// nearest ancestor's, or DirectionUnset when no ancestor defines one.
func (n *Node) inheritedTextDirection() TextDirection {
	for node := n; node != nil; node = node.parent {
		if node.textDirection != DirectionUnset {
			return node.textDirection
		}
	}
	return DirectionUnset
}

// ChildrenInTraversalOrder returns the node's children in the reading
// order exposed to assistive technology. With an inherited text
// direction the geometric default order applies first; without one the
// stored paint order is retained. Explicit sort keys then reorder
// comparable runs in either case.
func (n *Node) ChildrenInTraversalOrder() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	var defaultOrder []*Node
	if dir := n.inheritedTextDirection(); dir != DirectionUnset {
		defaultOrder = ChildrenInDefaultOrder(n.children, dir)
	} else {
		defaultOrder = n.Children()
	}
	return applySortKeyOrder(defaultOrder)
}
