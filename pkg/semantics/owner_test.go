package semantics

import (
	"testing"

	"github.com/halcyonui/semtree/pkg/geometry"
)

func TestFlushEmitsParentsFirst(t *testing.T) {
	ResetNodeIDs()
	owner, root := attachedRoot(t)

	parent := visibleNode(t, "parent", unitRect())
	child := visibleNode(t, "child", unitRect())
	if err := parent.ReplaceChildren([]*Node{child}); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}
	if err := root.ReplaceChildren([]*Node{parent}); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}

	batch, err := owner.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := []int64{root.ID(), parent.ID(), child.ID()}
	got := make([]int64, len(batch.Records))
	for i, rec := range batch.Records {
		got[i] = rec.ID
	}
	if !equalIDs(got, want) {
		t.Errorf("record order = %v, want %v", got, want)
	}
	if owner.DirtyCount() != 0 {
		t.Errorf("dirty count after flush = %d, want 0", owner.DirtyCount())
	}
}

func TestFlushIsIncremental(t *testing.T) {
	ResetNodeIDs()
	owner, root := attachedRoot(t)

	a := visibleNode(t, "a", unitRect())
	b := visibleNode(t, "b", geometry.RectFromLTWH(0, 20, 10, 10))
	if err := root.ReplaceChildren([]*Node{a, b}); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}
	if _, err := owner.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if err := a.UpdateWith(&Config{Label: "changed"}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}
	batch, err := owner.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(batch.Records) != 1 || batch.Records[0].ID != a.ID() {
		t.Errorf("records = %+v, want only node %d", batch.Records, a.ID())
	}

	// Nothing changed: the next flush is empty.
	batch, err = owner.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(batch.Records) != 0 {
		t.Errorf("idle flush produced %d records", len(batch.Records))
	}
}

func TestFlushForwardsMergedDirtiness(t *testing.T) {
	ResetNodeIDs()
	owner, root := attachedRoot(t)

	child := mergedChild(t, "child", &Config{Label: "B"})
	boundary := mergeBoundary(t, &Config{Label: "A"}, []*Node{child})
	if err := root.ReplaceChildren([]*Node{boundary}); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}
	if _, err := owner.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	// Dirty only the merged leaf; the boundary must re-emit with the
	// new merged label, and the leaf itself must stay unsurfaced.
	if err := child.UpdateWith(&Config{Label: "C"}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}

	batch, err := owner.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(batch.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(batch.Records))
	}
	rec := batch.Records[0]
	if rec.ID != boundary.ID() {
		t.Errorf("record id = %d, want the boundary %d", rec.ID, boundary.ID())
	}
	if rec.Label != "A\nC" {
		t.Errorf("merged label = %q, want %q", rec.Label, "A\nC")
	}
	if child.IsDirty() {
		t.Error("merged leaf must be cleaned without emitting")
	}
}

func TestFlushSkipsNodesRemovedMidCycle(t *testing.T) {
	ResetNodeIDs()
	owner, root := attachedRoot(t)

	n := visibleNode(t, "n", unitRect())
	if err := root.ReplaceChildren([]*Node{n}); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}
	if _, err := owner.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	// Dirty the node, then remove it before flushing. The removed node
	// must not appear in the batch.
	if err := n.UpdateWith(&Config{Label: "gone"}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}
	if err := root.ReplaceChildren(nil); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}

	batch, err := owner.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	for _, rec := range batch.Records {
		if rec.ID == n.ID() {
			t.Error("removed node must not be emitted")
		}
	}
}

func TestSendEvent(t *testing.T) {
	ResetNodeIDs()
	owner := NewOwner()

	var gotID int64
	var gotEvent any
	owner.SetEventHandler(func(nodeID int64, event any) {
		gotID = nodeID
		gotEvent = event
	})

	owner.SendEvent(42, "announce")
	if gotID != 42 || gotEvent != "announce" {
		t.Errorf("handler received (%d, %v)", gotID, gotEvent)
	}

	// No handler: events are dropped silently.
	owner.SetEventHandler(nil)
	owner.SendEvent(7, "ignored")
}

func TestPerformAction(t *testing.T) {
	ResetNodeIDs()
	n := visibleNode(t, "n", unitRect())

	var gotArgs any
	cfg := &Config{}
	cfg.AddAction(ActionSetSelection, func(args any) { gotArgs = args })
	if err := n.UpdateWith(cfg, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}

	sel := &TextSelection{Base: 1, Extent: 4}
	if !n.PerformAction(ActionSetSelection, sel) {
		t.Fatal("registered action not dispatched")
	}
	if gotArgs != any(sel) {
		t.Errorf("handler args = %v, want %v", gotArgs, sel)
	}
	if n.PerformAction(ActionTap, nil) {
		t.Error("unregistered action must report false")
	}
}
