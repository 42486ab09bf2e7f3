package semantics

import (
	"testing"

	"github.com/halcyonui/semtree/pkg/geometry"
)

func ids(nodes []*Node) []int64 {
	out := make([]int64, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestChildrenInDefaultOrderBands(t *testing.T) {
	ResetNodeIDs()

	// Vertical spans [0,10] and [5,15] overlap and share a band;
	// [20,30] stands alone below them. Within the first band the node
	// further left reads first regardless of paint order.
	a := visibleNode(t, "a", geometry.Rect{Left: 50, Top: 0, Right: 60, Bottom: 10})
	b := visibleNode(t, "b", geometry.Rect{Left: 0, Top: 5, Right: 10, Bottom: 15})
	c := visibleNode(t, "c", geometry.Rect{Left: 0, Top: 20, Right: 10, Bottom: 30})

	got := ChildrenInDefaultOrder([]*Node{a, b, c}, DirectionLTR)
	want := []int64{b.ID(), a.ID(), c.ID()}
	if !equalIDs(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestChildrenInDefaultOrderTouchingRowsStaySeparate(t *testing.T) {
	ResetNodeIDs()

	// Rows that merely touch edge-to-edge must not collapse into one
	// band, so each row keeps top-to-bottom precedence over horizontal
	// position.
	top := visibleNode(t, "top", geometry.Rect{Left: 50, Top: 0, Right: 60, Bottom: 10})
	bottom := visibleNode(t, "bottom", geometry.Rect{Left: 0, Top: 10, Right: 10, Bottom: 20})

	got := ChildrenInDefaultOrder([]*Node{bottom, top}, DirectionLTR)
	want := []int64{top.ID(), bottom.ID()}
	if !equalIDs(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestChildrenInDefaultOrderRTL(t *testing.T) {
	ResetNodeIDs()

	left := visibleNode(t, "left", geometry.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10})
	right := visibleNode(t, "right", geometry.Rect{Left: 20, Top: 0, Right: 30, Bottom: 10})

	got := ChildrenInDefaultOrder([]*Node{left, right}, DirectionRTL)
	want := []int64{right.ID(), left.ID()}
	if !equalIDs(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestChildrenInDefaultOrderUsesChildTransforms(t *testing.T) {
	ResetNodeIDs()

	// Both rects are at the origin in local space; the transforms place
	// them in the parent space, and the transformed position decides.
	a := visibleNode(t, "a", unitRect())
	tr := geometry.Translation(100, 0)
	if err := a.SetTransform(&tr); err != nil {
		t.Fatalf("SetTransform: %v", err)
	}
	b := visibleNode(t, "b", unitRect())

	got := ChildrenInDefaultOrder([]*Node{a, b}, DirectionLTR)
	want := []int64{b.ID(), a.ID()}
	if !equalIDs(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestSortKeyRuns(t *testing.T) {
	ResetNodeIDs()
	_, root := attachedRoot(t)
	if err := root.UpdateWith(&Config{TextDirection: DirectionLTR}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}

	// Three nodes on one row: no key, then keyA order 2, then keyA
	// order 1. The keyless node is its own run and stays first; the
	// comparable pair behind it reorders by ascending order value.
	plain := visibleNode(t, "plain", geometry.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10})
	second := visibleNode(t, "second", geometry.Rect{Left: 20, Top: 0, Right: 30, Bottom: 10})
	first := visibleNode(t, "first", geometry.Rect{Left: 40, Top: 0, Right: 50, Bottom: 10})
	if err := second.UpdateWith(&Config{SortKey: &SortKey{Name: "keyA", Order: 2}}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}
	if err := first.UpdateWith(&Config{SortKey: &SortKey{Name: "keyA", Order: 1}}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}
	if err := root.ReplaceChildren([]*Node{plain, second, first}); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}

	got := root.ChildrenInTraversalOrder()
	want := []int64{plain.ID(), first.ID(), second.ID()}
	if !equalIDs(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestSortKeyDifferentNamesSplitRuns(t *testing.T) {
	ResetNodeIDs()
	_, root := attachedRoot(t)
	if err := root.UpdateWith(&Config{TextDirection: DirectionLTR}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}

	// Keys with different names are not comparable: each node forms its
	// own run and geometric order survives, even though the raw order
	// values would suggest a swap.
	a := visibleNode(t, "a", geometry.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10})
	b := visibleNode(t, "b", geometry.Rect{Left: 20, Top: 0, Right: 30, Bottom: 10})
	if err := a.UpdateWith(&Config{SortKey: &SortKey{Name: "x", Order: 9}}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}
	if err := b.UpdateWith(&Config{SortKey: &SortKey{Name: "y", Order: 1}}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}
	if err := root.ReplaceChildren([]*Node{a, b}); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}

	got := root.ChildrenInTraversalOrder()
	want := []int64{a.ID(), b.ID()}
	if !equalIDs(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestTraversalOrderWithoutDirectionKeepsPaintOrder(t *testing.T) {
	ResetNodeIDs()
	parent := visibleNode(t, "parent", geometry.RectFromLTWH(0, 0, 100, 100))

	// Geometrically b reads before a, but with no text direction
	// anywhere on the ancestor chain the stored paint order wins.
	a := visibleNode(t, "a", geometry.Rect{Left: 50, Top: 0, Right: 60, Bottom: 10})
	b := visibleNode(t, "b", geometry.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10})
	if err := parent.ReplaceChildren([]*Node{a, b}); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}

	got := parent.ChildrenInTraversalOrder()
	want := []int64{a.ID(), b.ID()}
	if !equalIDs(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestTraversalOrderInheritsDirectionFromAncestor(t *testing.T) {
	ResetNodeIDs()
	_, root := attachedRoot(t)
	if err := root.UpdateWith(&Config{TextDirection: DirectionRTL}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}

	parent := visibleNode(t, "parent", geometry.RectFromLTWH(0, 0, 100, 100))
	left := visibleNode(t, "left", geometry.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10})
	right := visibleNode(t, "right", geometry.Rect{Left: 20, Top: 0, Right: 30, Bottom: 10})
	if err := parent.ReplaceChildren([]*Node{left, right}); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}
	if err := root.ReplaceChildren([]*Node{parent}); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}

	got := parent.ChildrenInTraversalOrder()
	want := []int64{right.ID(), left.ID()}
	if !equalIDs(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}
