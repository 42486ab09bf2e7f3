package semantics

import (
	"slices"

	"github.com/halcyonui/semtree/pkg/errors"
	"github.com/halcyonui/semtree/pkg/observability"
)

// EventHandler receives fire-and-forget semantics events: a node id plus
// an opaque payload destined for the platform event channel.
type EventHandler func(nodeID int64, event any)

// Owner is the registry for one semantics tree: the live-node map, the
// detached set, and the dirty set consumed by Flush. One Owner instance
// serves one tree; all mutation happens on the rebuild/flush call path
// of a single goroutine.
type Owner struct {
	nodes    map[int64]*Node
	detached map[int64]*Node
	dirty    map[int64]*Node

	eventHandler EventHandler
}

// NewOwner creates an empty registry.
func NewOwner() *Owner {
	return &Owner{
		nodes:    make(map[int64]*Node),
		detached: make(map[int64]*Node),
		dirty:    make(map[int64]*Node),
	}
}

// Node returns the attached node with the given id, if any.
func (o *Owner) Node(id int64) (*Node, bool) {
	n, ok := o.nodes[id]
	return n, ok
}

// NodeCount returns the number of currently attached nodes.
func (o *Owner) NodeCount() int { return len(o.nodes) }

// DirtyCount returns the number of nodes queued for the next flush.
func (o *Owner) DirtyCount() int { return len(o.dirty) }

// SetEventHandler registers the sink for fire-and-forget semantics
// events. A nil handler drops events.
func (o *Owner) SetEventHandler(h EventHandler) { o.eventHandler = h }

// SendEvent forwards a node event to the registered handler. Events are
// fire-and-forget: unknown node ids and missing handlers are not errors.
func (o *Owner) SendEvent(nodeID int64, event any) {
	if o.eventHandler == nil {
		observability.Event().OnEventDropped(nodeID, event)
		return
	}
	observability.Event().OnEvent(nodeID, event)
	o.eventHandler(nodeID, event)
}

// Flush drains the dirty set into a batch of update records for the
// platform accessibility service.
//
// Dirty nodes are processed parents-first (ascending depth). A dirty
// node that takes part in merging forwards its dirtiness to the nearest
// ancestor that will actually surface the merged data; such forwarding
// can re-populate the dirty set, so draining loops until stable. Nodes
// merged into a parent never produce their own record.
func (o *Owner) Flush() (UpdateBatch, error) {
	var visited []*Node
	for len(o.dirty) > 0 {
		local := make([]*Node, 0, len(o.dirty))
		for _, n := range o.dirty {
			local = append(local, n)
		}
		clear(o.dirty)
		clear(o.detached)
		slices.SortFunc(local, func(a, b *Node) int { return a.depth - b.depth })
		visited = append(visited, local...)

		for _, n := range local {
			if !n.dirty {
				return UpdateBatch{}, errors.New(errors.ErrCodeInternal,
					"node %d: clean node found in dirty set", n.id)
			}
			if n.IsPartOfMerging() && n.parent != nil && n.parent.IsPartOfMerging() {
				// The data surfaces further up; make sure the surfacing
				// ancestor re-emits.
				if err := n.parent.markDirty(); err != nil {
					return UpdateBatch{}, err
				}
			}
		}
	}

	slices.SortFunc(visited, func(a, b *Node) int { return a.depth - b.depth })

	var batch UpdateBatch
	for _, n := range visited {
		if !n.dirty || n.owner != o {
			continue
		}
		if n.mergedIntoParent {
			// Folded into an ancestor's record; clear without emitting.
			n.dirty = false
			continue
		}
		rec, err := n.ToUpdateRecord()
		if err != nil {
			return UpdateBatch{}, err
		}
		batch.Records = append(batch.Records, rec)
	}
	return batch, nil
}
