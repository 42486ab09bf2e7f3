// Package pkg provides the core libraries for semtree accessibility trees.
//
// # Overview
//
// Semtree maintains accessibility semantics trees: annotated node
// hierarchies describing what an interface contains, how assistive
// technology should traverse it, and which subtrees collapse into a
// single announcement. The pkg directory is organized into four main
// areas:
//
//  1. [semantics] - Domain logic (nodes, merge resolution, traversal order, updates)
//  2. [treeio] - Documents (JSON/YAML decoding, incremental tree building)
//  3. [wire] - Update batch serialization (deterministic CBOR)
//  4. [pipeline] - Orchestration (load → build → flush → encode)
//
// # Architecture
//
// The typical data flow through semtree:
//
//	JSON/YAML document
//	         ↓
//	    [treeio] package (decode, validate, build tree)
//	         ↓
//	    [semantics] package (dirty tracking, merge resolution, traversal order)
//	         ↓
//	    [pipeline] package (flush dirty set, encode batch)
//	         ↓
//	    JSON/CBOR/DOT/SVG output
//
// # Quick Start
//
// Build a tree from a document and flush the first update batch:
//
//	import (
//	    "context"
//	    "github.com/halcyonui/semtree/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Document: "examples/settings.json",
//	    Formats:  []string{"json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := result.Artifacts["json"]
//
// Feeding the runner successive documents produces incremental batches:
// only nodes whose resolved data changed appear in later outputs.
//
// # Main Packages
//
// [semantics] - The tree itself. Nodes carry geometry and annotations,
// track dirtiness, and resolve merged data across merge boundaries. The
// owner drains the dirty set into parent-before-child update batches.
//
// [treeio] - Tree documents. Decoding from JSON and YAML, document
// validation, and the keyed incremental [treeio.Builder] that reconciles
// successive documents against the live tree.
//
// [wire] - Deterministic CBOR encoding of update batches for transport,
// plus streaming encoder/decoder support.
//
// [render/treedot] - Graphviz diagrams of the live tree showing merge
// boundaries, dirtiness, and traversal order.
//
// [pipeline] - The complete load → build → flush → encode pipeline used
// by the CLI and embedders. Ensures consistent behavior across all entry
// points.
//
// [geometry] - Rects, points, and affine transforms in the coordinate
// spaces the tree uses.
//
// [errors] - Coded errors shared by all packages, with stable codes for
// programmatic handling.
//
// [observability] - Pluggable hooks for tree rebuilds, flushes, and
// document I/O.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/semantics/...    # Specific package
//
// [semantics]: https://pkg.go.dev/github.com/halcyonui/semtree/pkg/semantics
// [treeio]: https://pkg.go.dev/github.com/halcyonui/semtree/pkg/treeio
// [wire]: https://pkg.go.dev/github.com/halcyonui/semtree/pkg/wire
// [render/treedot]: https://pkg.go.dev/github.com/halcyonui/semtree/pkg/render/treedot
// [pipeline]: https://pkg.go.dev/github.com/halcyonui/semtree/pkg/pipeline
// [geometry]: https://pkg.go.dev/github.com/halcyonui/semtree/pkg/geometry
// [errors]: https://pkg.go.dev/github.com/halcyonui/semtree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/halcyonui/semtree/pkg/observability
// [treeio.Builder]: https://pkg.go.dev/github.com/halcyonui/semtree/pkg/treeio#Builder
package pkg
