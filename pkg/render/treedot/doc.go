// Package treedot renders semantics trees as Graphviz diagrams.
//
// The diagram shows the tree's structural (paint-order) edges solid and,
// optionally, the computed traversal order as numbered dashed edges.
// Merge boundaries get a double border, merged descendants a dashed grey
// box, and dirty nodes a yellow fill, so one glance shows what the next
// flush will emit and which subtrees collapse into a single record.
//
// [ToDOT] produces the DOT source; [RenderSVG] rasterizes it with the
// embedded Graphviz.
package treedot
