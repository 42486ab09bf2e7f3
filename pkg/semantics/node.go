package semantics

import (
	"sync/atomic"

	"github.com/halcyonui/semtree/pkg/errors"
	"github.com/halcyonui/semtree/pkg/geometry"
	"github.com/halcyonui/semtree/pkg/observability"
)

// RootNodeID is the reserved identifier of a tree's root node.
const RootNodeID int64 = 0

// lastIdentifier is the process-scoped id source for non-root nodes.
// Ids are unique for the lifetime of the process; ResetNodeIDs rewinds
// the counter for test isolation.
var lastIdentifier atomic.Int64

func nextNodeID() int64 {
	return lastIdentifier.Add(1)
}

// ResetNodeIDs rewinds the process-wide node id counter so freshly
// created nodes start from id 1 again. Only tests should call this, and
// never while nodes from a previous generation are still attached.
func ResetNodeIDs() {
	lastIdentifier.Store(0)
}

// Node is one entry in the semantics tree, corresponding to one
// (possibly merged) accessible UI element.
//
// Nodes hold their children in inverse hit-test (paint) order. The
// parent back-reference is a non-owning relation used only for traversal
// and detach bookkeeping; the owning direction is parent to children.
//
// A Node is not safe for concurrent use. The tree is mutated only during
// the rebuild phase and emitted during the flush phase, both driven from
// a single goroutine.
type Node struct {
	id    int64
	key   string
	owner *Owner

	parent   *Node
	depth    int
	children []*Node

	dirty bool

	rect          geometry.Rect
	transform     *geometry.Affine
	semanticsClip *geometry.Rect
	paintClip     *geometry.Rect

	mergedIntoParent    bool
	mergeAllDescendants bool

	label          string
	value          string
	hint           string
	increasedValue string
	decreasedValue string
	textDirection  TextDirection
	flags          Flag
	actions        map[Action]ActionHandler
	actionBits     Action
	tags           TagSet
	sortKey        *SortKey
	textSelection  *TextSelection
	scrollPosition *float64
	scrollMin      *float64
	scrollMax      *float64
}

// NewNode creates a detached node with a freshly allocated id. The key
// is an optional tree-diffing aid for the embedding framework; it is not
// transmitted downstream.
func NewNode(key string) *Node {
	return &Node{id: nextNodeID(), key: key}
}

// NewNodeWithID creates a detached node with an explicit id. The caller
// is responsible for id uniqueness within the owner the node will attach
// to; Attach rejects collisions.
func NewNodeWithID(id int64, key string) *Node {
	return &Node{id: id, key: key}
}

// NewRootNode creates the root node of a tree, carrying the reserved
// root id.
func NewRootNode() *Node {
	return &Node{id: RootNodeID}
}

// ID returns the node's identifier, unique within its owner.
func (n *Node) ID() int64 { return n.id }

// Key returns the optional construction-time key.
func (n *Node) Key() string { return n.key }

// Parent returns the node's current parent, or nil at the root or when
// detached from any parent.
func (n *Node) Parent() *Node { return n.parent }

// Owner returns the registry the node is attached to, or nil.
func (n *Node) Owner() *Owner { return n.owner }

// Attached reports whether the node is registered with an owner.
func (n *Node) Attached() bool { return n.owner != nil }

// Depth is the owner-assigned traversal depth: always greater than the
// parent's depth, used to order flush processing parents-first.
func (n *Node) Depth() int { return n.depth }

// IsDirty reports whether the node's externally visible data changed
// since it was last emitted.
func (n *Node) IsDirty() bool { return n.dirty }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Children returns the children in inverse hit-test (paint) order.
// The returned slice is a copy; mutating it does not affect the node.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// VisitChildren calls visitor for each child in paint order until the
// visitor returns false.
func (n *Node) VisitChildren(visitor func(*Node) bool) {
	for _, c := range n.children {
		if !visitor(c) {
			return
		}
	}
}

// visitDescendants pre-order-visits every descendant until the visitor
// returns an error.
func (n *Node) visitDescendants(visitor func(*Node) error) error {
	for _, c := range n.children {
		if err := visitor(c); err != nil {
			return err
		}
		if err := c.visitDescendants(visitor); err != nil {
			return err
		}
	}
	return nil
}

// Rect returns the node's bounding rectangle in its own coordinate space.
func (n *Node) Rect() geometry.Rect { return n.rect }

// SetRect updates the bounding rectangle, marking the node dirty when
// the value changes.
func (n *Node) SetRect(r geometry.Rect) error {
	if n.rect == r {
		return nil
	}
	n.rect = r
	return n.markDirty()
}

// Transform returns the transform from this node's coordinate space to
// its parent's, or nil for the identity.
func (n *Node) Transform() *geometry.Affine { return n.transform }

// SetTransform updates the transform to parent space. nil means
// identity. Marks the node dirty when the value changes.
func (n *Node) SetTransform(t *geometry.Affine) error {
	if n.transform == nil && t == nil {
		return nil
	}
	if n.transform != nil && t != nil && *n.transform == *t {
		return nil
	}
	if t == nil || t.IsIdentity() {
		n.transform = nil
	} else {
		c := *t
		n.transform = &c
	}
	return n.markDirty()
}

// SemanticsClip returns the inherited semantics clip rect, or nil.
func (n *Node) SemanticsClip() *geometry.Rect { return n.semanticsClip }

// PaintClip returns the inherited paint clip rect, or nil.
func (n *Node) PaintClip() *geometry.Rect { return n.paintClip }

// SetClips records the clip rects inherited from ancestors. A non-nil
// semantics clip must fully enclose the paint clip, and may only be set
// together with one.
func (n *Node) SetClips(semanticsClip, paintClip *geometry.Rect) error {
	if semanticsClip != nil {
		if paintClip == nil {
			return errors.New(errors.ErrCodeStructural,
				"node %d: semantics clip set without a paint clip", n.id)
		}
		if !semanticsClip.Encloses(*paintClip) {
			return errors.New(errors.ErrCodeStructural,
				"node %d: semantics clip %+v does not enclose paint clip %+v",
				n.id, *semanticsClip, *paintClip)
		}
	}
	cloneRect := func(r *geometry.Rect) *geometry.Rect {
		if r == nil {
			return nil
		}
		c := *r
		return &c
	}
	n.semanticsClip = cloneRect(semanticsClip)
	n.paintClip = cloneRect(paintClip)
	return nil
}

// IsMergedIntoParent reports whether this node's data is folded into an
// ancestor so the node is not independently surfaced.
func (n *Node) IsMergedIntoParent() bool { return n.mergedIntoParent }

// SetMergedIntoParent updates the merged-into-parent flag, marking the
// node dirty on change.
func (n *Node) SetMergedIntoParent(merged bool) error {
	if n.mergedIntoParent == merged {
		return nil
	}
	n.mergedIntoParent = merged
	return n.markDirty()
}

// MergesAllDescendants reports whether this node is a merge boundary
// absorbing all descendant semantic data.
func (n *Node) MergesAllDescendants() bool { return n.mergeAllDescendants }

// IsPartOfMerging reports whether the node participates in descendant
// merging, either as a boundary or as a merged descendant.
func (n *Node) IsPartOfMerging() bool {
	return n.mergeAllDescendants || n.mergedIntoParent
}

// isInvisible reports whether the node covers no area and is not merged
// into a parent. Invisible nodes must never appear as children.
func (n *Node) isInvisible() bool {
	return !n.mergedIntoParent && n.rect.IsEmpty()
}

// Label returns the node's own (pre-merge) label.
func (n *Node) Label() string { return n.label }

// SortKeyValue returns a copy of the node's sort key, or nil.
func (n *Node) SortKeyValue() *SortKey { return n.sortKey.clone() }

// TextDirectionValue returns the node's own text direction.
func (n *Node) TextDirectionValue() TextDirection { return n.textDirection }

// Tags returns the node's identity markers. The returned set is the
// node's own storage; callers must not mutate it.
func (n *Node) Tags() TagSet { return n.tags }

// PerformAction invokes the registered handler for the action, if any.
// Returns true when a handler ran.
func (n *Node) PerformAction(a Action, args any) bool {
	handler, ok := n.actions[a]
	if !ok || handler == nil {
		return false
	}
	handler(args)
	return true
}

// markDirty records that the node's externally visible data changed.
// Idempotent. An attached node also enters its owner's dirty set; a node
// sitting in the detached set must never reach the live queue.
func (n *Node) markDirty() error {
	if n.dirty {
		return nil
	}
	n.dirty = true
	if n.owner != nil {
		if n.owner.detached[n.id] == n {
			return errors.New(errors.ErrCodeLifecycle,
				"node %d: detached node marked dirty into the live queue", n.id)
		}
		n.owner.dirty[n.id] = n
		observability.Tree().OnNodeDirty(n.id)
	}
	return nil
}

// Attach registers the node and, transitively, its current children with
// the owner. A node that was dirty before attachment is re-entered into
// the owner's dirty set so it is re-emitted after resurrection.
func (n *Node) Attach(owner *Owner) error {
	if n.owner != nil {
		return errors.New(errors.ErrCodeLifecycle,
			"node %d: attach of an already attached node", n.id)
	}
	if _, exists := owner.nodes[n.id]; exists {
		return errors.New(errors.ErrCodeLifecycle,
			"node %d: id already registered with this owner", n.id)
	}
	n.owner = owner
	owner.nodes[n.id] = n
	if owner.detached[n.id] == n {
		delete(owner.detached, n.id)
	}
	if n.dirty {
		n.dirty = false
		if err := n.markDirty(); err != nil {
			return err
		}
	}
	for _, c := range n.children {
		if err := c.Attach(owner); err != nil {
			return err
		}
	}
	return nil
}

// Detach moves the node from the owner's live registry to its detached
// set and recursively detaches children still parented here. A child
// whose parent pointer has already moved to another node mid-rebuild is
// left alone. The node is marked dirty so a later resurrection under the
// same id is re-sent.
func (n *Node) Detach() error {
	if n.owner == nil {
		return errors.New(errors.ErrCodeLifecycle,
			"node %d: detach of an unattached node", n.id)
	}
	owner := n.owner
	delete(owner.nodes, n.id)
	delete(owner.dirty, n.id)
	owner.detached[n.id] = n
	n.owner = nil
	for _, c := range n.children {
		// A child may have been stolen by another parent during this
		// rebuild pass; only detach children that are still ours.
		if c.parent == n && c.owner != nil {
			if err := c.Detach(); err != nil {
				return err
			}
		}
	}
	return n.markDirty()
}

// adoptChild takes ownership of a detached, parentless child and, if
// this node is attached, attaches the child's subtree.
func (n *Node) adoptChild(child *Node) error {
	child.parent = n
	n.redepthChild(child)
	if n.owner != nil {
		return child.Attach(n.owner)
	}
	return nil
}

// dropChild severs the parent link and detaches the child's subtree.
// The stored child sequence is rewritten wholesale by ReplaceChildren,
// so this only updates the pointer and registry state.
func (n *Node) dropChild(child *Node) error {
	child.parent = nil
	if child.owner != nil {
		return child.Detach()
	}
	return nil
}

// redepthChild pushes the child's depth below this node's and cascades
// through the child's subtree when it moved.
func (n *Node) redepthChild(child *Node) {
	if child.depth <= n.depth {
		child.depth = n.depth + 1
		for _, gc := range child.children {
			child.redepthChild(gc)
		}
	}
}

// validateNewChildren checks the structural constraints on a candidate
// child sequence before any mutation happens.
func (n *Node) validateNewChildren(newChildren []*Node) error {
	seen := make(map[int64]struct{}, len(newChildren))
	for _, c := range newChildren {
		if c == n {
			return errors.New(errors.ErrCodeStructural,
				"node %d: cannot host itself as a child", n.id)
		}
		if _, dup := seen[c.id]; dup {
			return errors.New(errors.ErrCodeStructural,
				"node %d: duplicate child %d", n.id, c.id)
		}
		seen[c.id] = struct{}{}
		for a := n.parent; a != nil; a = a.parent {
			if a == c {
				return errors.New(errors.ErrCodeStructural,
					"node %d: child %d is an ancestor of this node", n.id, c.id)
			}
		}
		if c.mergedIntoParent && !n.IsPartOfMerging() {
			return errors.New(errors.ErrCodeStructural,
				"node %d: child %d is merged into parent but this node is not part of merging",
				n.id, c.id)
		}
		if c.isInvisible() {
			return errors.New(errors.ErrCodeStructural,
				"node %d: child %d is invisible (empty rect, not merged)", n.id, c.id)
		}
	}
	return nil
}

// ReplaceChildren reconciles the node's child sequence against the
// desired one, in inverse hit-test order.
//
// Children present before but absent now are detached, unless another
// parent already stole them during this rebuild pass. New children are
// removed from their previous parent, then adopted; they must not still
// be attached to a registry, which is guaranteed when the rebuild
// processes a node's true parent before nodes that merely list it.
// A pure reorder with identical ids still counts as a change. The node
// is marked dirty only when some change was recorded, so calling this
// twice with equal ordered-id sequences is idempotent.
func (n *Node) ReplaceChildren(newChildren []*Node) error {
	if err := n.validateNewChildren(newChildren); err != nil {
		return err
	}

	dead := make(map[int64]struct{}, len(n.children))
	for _, c := range n.children {
		dead[c.id] = struct{}{}
	}
	for _, c := range newChildren {
		delete(dead, c.id)
	}

	sawChange := false
	for _, c := range n.children {
		if _, isDead := dead[c.id]; !isDead {
			continue
		}
		if c.parent == n {
			if err := n.dropChild(c); err != nil {
				return err
			}
		}
		sawChange = true
	}

	for _, c := range newChildren {
		if c.parent == n {
			continue
		}
		if c.parent != nil {
			if err := c.parent.dropChild(c); err != nil {
				return err
			}
		}
		if c.owner != nil {
			return errors.New(errors.ErrCodeLifecycle,
				"node %d: candidate child %d is still attached; its true parent must reconcile first",
				n.id, c.id)
		}
		if err := n.adoptChild(c); err != nil {
			return err
		}
		sawChange = true
	}

	if !sawChange {
		// No adopt or drop happened, so the id sets are equal and the
		// lengths match; a positional mismatch is a pure reorder.
		for i := range newChildren {
			if n.children[i].id != newChildren[i].id {
				sawChange = true
				break
			}
		}
	}

	n.children = make([]*Node, len(newChildren))
	copy(n.children, newChildren)

	if sawChange {
		return n.markDirty()
	}
	return nil
}

// isDifferentFromCurrentAnnotation reports whether applying config would
// change the node's externally visible data.
func (n *Node) isDifferentFromCurrentAnnotation(config *Config) bool {
	return n.label != config.Label ||
		n.value != config.Value ||
		n.hint != config.Hint ||
		n.increasedValue != config.IncreasedValue ||
		n.decreasedValue != config.DecreasedValue ||
		n.flags != config.Flags ||
		n.textDirection != config.TextDirection ||
		!sortKeyEqual(n.sortKey, config.SortKey) ||
		!selectionEqual(n.textSelection, config.TextSelection) ||
		!floatEqual(n.scrollPosition, config.ScrollPosition) ||
		!floatEqual(n.scrollMin, config.ScrollExtentMin) ||
		!floatEqual(n.scrollMax, config.ScrollExtentMax) ||
		n.actionBits != config.actionBits() ||
		n.mergeAllDescendants != config.MergeAllDescendants
}

// UpdateWith applies a configuration and a new child sequence to the
// node. A nil config is treated as the empty configuration. Attribute
// fields are copied, never retained by reference; the node is marked
// dirty before the overwrite when the incoming data differs.
//
// Post-condition: a node exposing ActionIncrease must annotate Value and
// IncreasedValue together or not at all (symmetrically for
// ActionDecrease / DecreasedValue). A violation is a caller contract
// error and is reported, not corrected.
func (n *Node) UpdateWith(config *Config, newChildren []*Node) error {
	if config == nil {
		config = &Config{}
	}

	if n.isDifferentFromCurrentAnnotation(config) {
		if err := n.markDirty(); err != nil {
			return err
		}
	}

	n.label = config.Label
	n.value = config.Value
	n.hint = config.Hint
	n.increasedValue = config.IncreasedValue
	n.decreasedValue = config.DecreasedValue
	n.textDirection = config.TextDirection
	n.flags = config.Flags
	n.actions = cloneActions(config.Actions)
	n.actionBits = config.actionBits()
	n.tags = cloneTags(config.Tags)
	n.sortKey = config.SortKey.clone()
	n.textSelection = config.TextSelection.clone()
	n.scrollPosition = cloneFloat(config.ScrollPosition)
	n.scrollMin = cloneFloat(config.ScrollExtentMin)
	n.scrollMax = cloneFloat(config.ScrollExtentMax)
	n.mergeAllDescendants = config.MergeAllDescendants

	if err := n.ReplaceChildren(newChildren); err != nil {
		return err
	}

	if n.actionBits&ActionIncrease != 0 && (n.value == "") != (n.increasedValue == "") {
		return errors.New(errors.ErrCodeAnnotation,
			"node %d: ActionIncrease requires value and increased value to be annotated together", n.id)
	}
	if n.actionBits&ActionDecrease != 0 && (n.value == "") != (n.decreasedValue == "") {
		return errors.New(errors.ErrCodeAnnotation,
			"node %d: ActionDecrease requires value and decreased value to be annotated together", n.id)
	}
	return nil
}
