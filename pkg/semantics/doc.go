// Package semantics maintains the mutable tree of annotation nodes that
// mirrors a visual UI tree and feeds assistive technology.
//
// Each frame, the embedding layout/paint pipeline produces a desired
// configuration and child ordering per UI element. This package
// reconciles that into a persistent tree, tracks which nodes changed,
// computes merged accessibility data for merge-boundary subtrees,
// determines a stable reading order, and serializes per-node records
// into a flat update batch for the platform accessibility service.
//
// # Lifecycle
//
// Nodes are created detached ([NewNode], [NewRootNode]), attach to an
// [Owner] when inserted under a registered root, and detach when
// removed. [Node.UpdateWith] applies one frame's configuration and child
// sequence; [Owner.Flush] drains the dirty set into an [UpdateBatch].
//
//	owner := semantics.NewOwner()
//	root := semantics.NewRootNode()
//	root.Attach(owner)
//
//	child := semantics.NewNode("greeting")
//	child.SetRect(geometry.RectFromLTWH(0, 0, 100, 20))
//	child.UpdateWith(&semantics.Config{Label: "Hello"}, nil)
//	root.UpdateWith(nil, []*semantics.Node{child})
//
//	batch, err := owner.Flush()
//
// # Reconciliation
//
// [Node.ReplaceChildren] gives every child at-most-one-owner semantics
// even mid-rebuild, when a node is briefly referenced by both its old
// and new parent: detaching is compare-then-act on the parent pointer,
// so a parent never detaches a child another parent already stole.
//
// # Concurrency
//
// The package is single-threaded by design. The tree is mutated only
// during the rebuild phase and emitted during the flush phase; nothing
// here suspends, blocks, or locks.
//
// All contract violations (illegal child sets, lifecycle misuse,
// inconsistent annotations, unmerged descendants under a merge boundary)
// are returned eagerly as structured errors from
// github.com/halcyonui/semtree/pkg/errors and abort the rebuild step.
package semantics
