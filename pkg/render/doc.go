// Package render provides visualization rendering for semantics trees.
//
// # Overview
//
// This package groups the renderers that turn a live semantics tree into
// visual outputs:
//
//   - Graphviz tree diagrams (in [treedot] subpackage)
//
// # Tree Diagrams
//
// The [treedot] subpackage renders the tree structure with Graphviz.
// Structural edges follow paint order; the computed traversal order can
// be overlaid as numbered dashed edges. Merge boundaries, merged
// descendants, and dirty nodes are visually distinguished.
//
//	dot := treedot.ToDOT(root, treedot.Options{TraversalEdges: true})
//	svg, err := treedot.RenderSVG(dot)
//
// [treedot]: https://pkg.go.dev/github.com/halcyonui/semtree/pkg/render/treedot
package render
