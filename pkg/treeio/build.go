package treeio

import (
	"github.com/halcyonui/semtree/pkg/errors"
	"github.com/halcyonui/semtree/pkg/geometry"
	"github.com/halcyonui/semtree/pkg/semantics"
)

// ActionCallback is invoked when the platform performs a document
// action on a built node. The key is the node spec's key (possibly
// empty), args the action payload.
type ActionCallback func(key string, action semantics.Action, args any)

// Builder maintains a live semantics tree fed from successive tree
// documents. Node specs with the same key map to the same node across
// applications, so moving a spec to a new parent reconciles the
// existing node instead of recreating it.
type Builder struct {
	owner *semantics.Owner
	root  *semantics.Node

	// keyed tracks the live node per spec key.
	keyed map[string]*semantics.Node

	onAction ActionCallback
}

// NewBuilder creates a builder with a fresh owner and an attached root
// covering the given bounds.
func NewBuilder(bounds geometry.Rect) (*Builder, error) {
	owner := semantics.NewOwner()
	root := semantics.NewRootNode()
	if err := root.SetRect(bounds); err != nil {
		return nil, err
	}
	if err := root.Attach(owner); err != nil {
		return nil, err
	}
	return &Builder{
		owner: owner,
		root:  root,
		keyed: make(map[string]*semantics.Node),
	}, nil
}

// Owner returns the builder's registry.
func (b *Builder) Owner() *semantics.Owner { return b.owner }

// Root returns the attached root node.
func (b *Builder) Root() *semantics.Node { return b.root }

// SetActionCallback registers the sink for document actions performed
// on built nodes.
func (b *Builder) SetActionCallback(cb ActionCallback) { b.onAction = cb }

// NodeByKey returns the live node built for a spec key.
func (b *Builder) NodeByKey(key string) (*semantics.Node, bool) {
	n, ok := b.keyed[key]
	return n, ok
}

// Apply reconciles the live tree against the document. Keyed specs
// reuse their existing nodes; unkeyed specs always build fresh ones.
// Nodes whose keys vanished from the document detach through ordinary
// child reconciliation.
func (b *Builder) Apply(doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	used := make(map[string]struct{}, len(b.keyed))
	children := make([]*semantics.Node, 0, len(doc.Children))
	for i := range doc.Children {
		child, err := b.buildSpec(&doc.Children[i], false, used)
		if err != nil {
			return err
		}
		children = append(children, child)
	}

	dir, _ := semantics.ParseTextDirection(doc.TextDirection)
	cfg := &semantics.Config{TextDirection: dir}
	if err := b.root.UpdateWith(cfg, children); err != nil {
		return err
	}

	for key := range b.keyed {
		if _, ok := used[key]; !ok {
			delete(b.keyed, key)
		}
	}
	return nil
}

// Flush drains the owner's dirty set into an update batch.
func (b *Builder) Flush() (semantics.UpdateBatch, error) {
	return b.owner.Flush()
}

// buildSpec converts one spec subtree into a configured node, children
// first so the parent's update sees its final child sequence.
func (b *Builder) buildSpec(spec *NodeSpec, mergedIntoParent bool, used map[string]struct{}) (*semantics.Node, error) {
	node := b.nodeFor(spec, used)

	if err := node.SetRect(geometry.Rect{
		Left:   spec.Rect[0],
		Top:    spec.Rect[1],
		Right:  spec.Rect[2],
		Bottom: spec.Rect[3],
	}); err != nil {
		return nil, err
	}
	if err := node.SetTransform(specTransform(spec)); err != nil {
		return nil, err
	}
	if err := node.SetMergedIntoParent(mergedIntoParent); err != nil {
		return nil, err
	}

	// Descendants of a merge boundary are merged into their parents.
	childMerged := mergedIntoParent || spec.MergeAllDescendants
	children := make([]*semantics.Node, 0, len(spec.Children))
	for i := range spec.Children {
		child, err := b.buildSpec(&spec.Children[i], childMerged, used)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	cfg, err := b.configFor(spec)
	if err != nil {
		return nil, err
	}
	if err := node.UpdateWith(cfg, children); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "node %q", spec.Key)
	}
	return node, nil
}

// nodeFor returns the live node for a keyed spec, or a fresh node.
func (b *Builder) nodeFor(spec *NodeSpec, used map[string]struct{}) *semantics.Node {
	if spec.Key != "" {
		used[spec.Key] = struct{}{}
		if n, ok := b.keyed[spec.Key]; ok {
			return n
		}
		n := semantics.NewNode(spec.Key)
		b.keyed[spec.Key] = n
		return n
	}
	return semantics.NewNode("")
}

// configFor translates a spec's attribute fields into a Config.
func (b *Builder) configFor(spec *NodeSpec) (*semantics.Config, error) {
	dir, _ := semantics.ParseTextDirection(spec.TextDirection)
	cfg := &semantics.Config{
		Label:               spec.Label,
		Value:               spec.Value,
		Hint:                spec.Hint,
		IncreasedValue:      spec.IncreasedValue,
		DecreasedValue:      spec.DecreasedValue,
		TextDirection:       dir,
		ScrollPosition:      spec.ScrollPosition,
		ScrollExtentMin:     spec.ScrollExtentMin,
		ScrollExtentMax:     spec.ScrollExtentMax,
		MergeAllDescendants: spec.MergeAllDescendants,
	}
	for _, name := range spec.Flags {
		f, ok := flagNames[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDocument,
				"node %q: unknown flag %q", spec.Key, name)
		}
		cfg.Flags |= f
	}
	key := spec.Key
	for _, name := range spec.Actions {
		a, ok := actionNames[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidDocument,
				"node %q: unknown action %q", spec.Key, name)
		}
		cfg.AddAction(a, func(args any) {
			if b.onAction != nil {
				b.onAction(key, a, args)
			}
		})
	}
	for _, tag := range spec.Tags {
		cfg.AddTag(semantics.Tag(tag))
	}
	if spec.SortKey != nil {
		cfg.SortKey = &semantics.SortKey{Name: spec.SortKey.Name, Order: spec.SortKey.Order}
	}
	if spec.TextSelection != nil {
		cfg.TextSelection = &semantics.TextSelection{
			Base:   spec.TextSelection.Base,
			Extent: spec.TextSelection.Extent,
		}
	}
	return cfg, nil
}

// specTransform builds the affine to parent space from a spec's
// translate or matrix field. nil means identity.
func specTransform(spec *NodeSpec) *geometry.Affine {
	if spec.Matrix != nil {
		m := spec.Matrix
		return &geometry.Affine{A: m[0], B: m[1], C: m[2], D: m[3], TX: m[4], TY: m[5]}
	}
	if spec.Translate != nil {
		t := geometry.Translation(spec.Translate.X, spec.Translate.Y)
		return &t
	}
	return nil
}
