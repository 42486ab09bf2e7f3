// Package treeio provides JSON and YAML documents for semantics trees.
//
// # Overview
//
// A tree document is the declarative form of one accessibility tree: a
// hierarchy of node specs with geometry, attributes, flags, actions,
// and traversal hints. The package serves three purposes:
//
//   - Feeding the tree core from files and test fixtures
//   - Driving incremental rebuilds: applying document N+1 to the tree
//     built from document N reconciles instead of recreating
//   - Exporting flushed update batches for external tooling
//
// # Document Format
//
// The JSON form (YAML mirrors it field for field):
//
//	{
//	  "text_direction": "ltr",
//	  "children": [
//	    {
//	      "key": "save",
//	      "label": "Save",
//	      "flags": ["isButton", "isEnabled"],
//	      "actions": ["tap"],
//	      "rect": [0, 0, 120, 40]
//	    }
//	  ]
//	}
//
// Node keys are optional but must be unique within a document; they
// carry node identity across successive documents. Positioning uses
// either "translate" ({x, y}) or "matrix" ([a, b, c, d, tx, ty]), never
// both. A node with "merge_descendants" folds its whole subtree into a
// single accessibility record.
//
// # Building
//
// [Builder] owns a live tree and applies documents to it:
//
//	b, err := treeio.NewBuilder(geometry.RectFromLTWH(0, 0, 800, 600))
//	doc, err := treeio.Load(ctx, "form.yaml")
//	err = b.Apply(doc)
//	batch, err := b.Flush()
//
// Applying an unchanged document is a no-op: the flush after it emits
// nothing. Moving a keyed spec to a new parent moves the live node.
//
// # Errors
//
// Decoding and validation failures carry INVALID_DOCUMENT or
// INVALID_FORMAT codes; contract violations raised by the tree core
// pass through unchanged. Use the errors package helpers to
// distinguish them.
package treeio
