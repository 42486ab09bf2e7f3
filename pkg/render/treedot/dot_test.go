package treedot

import (
	"strings"
	"testing"

	"github.com/halcyonui/semtree/pkg/geometry"
	"github.com/halcyonui/semtree/pkg/semantics"
)

func buildTree(t *testing.T) *semantics.Node {
	t.Helper()
	semantics.ResetNodeIDs()

	root := semantics.NewRootNode()
	if err := root.SetRect(geometry.RectFromLTWH(0, 0, 800, 600)); err != nil {
		t.Fatalf("SetRect: %v", err)
	}
	if err := root.UpdateWith(&semantics.Config{TextDirection: semantics.DirectionLTR}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}

	button := semantics.NewNode("save")
	if err := button.SetRect(geometry.RectFromLTWH(0, 0, 120, 40)); err != nil {
		t.Fatalf("SetRect: %v", err)
	}
	if err := button.UpdateWith(&semantics.Config{Label: "Save", Flags: semantics.FlagIsButton}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}

	merged := semantics.NewNode("state")
	if err := merged.SetRect(geometry.RectFromLTWH(0, 0, 40, 40)); err != nil {
		t.Fatalf("SetRect: %v", err)
	}
	if err := merged.SetMergedIntoParent(true); err != nil {
		t.Fatalf("SetMergedIntoParent: %v", err)
	}
	if err := merged.UpdateWith(&semantics.Config{Label: "On"}, nil); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}

	row := semantics.NewNode("row")
	if err := row.SetRect(geometry.RectFromLTWH(0, 50, 300, 90)); err != nil {
		t.Fatalf("SetRect: %v", err)
	}
	cfg := &semantics.Config{Label: "Wi-Fi", MergeAllDescendants: true}
	if err := row.UpdateWith(cfg, []*semantics.Node{merged}); err != nil {
		t.Fatalf("UpdateWith: %v", err)
	}

	if err := root.ReplaceChildren([]*semantics.Node{button, row}); err != nil {
		t.Fatalf("ReplaceChildren: %v", err)
	}
	return root
}

func TestToDOTStructure(t *testing.T) {
	root := buildTree(t)
	dot := ToDOT(root, Options{})

	for _, want := range []string{
		"digraph semantics {",
		"n0 ->",
		"Save",
		"Wi-Fi",
		"peripheries=2",
		"style=\"rounded,filled,dashed\"",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	root := buildTree(t)
	dot := ToDOT(root, Options{Detailed: true})

	if !strings.Contains(dot, "merge boundary") {
		t.Error("detailed DOT missing merge boundary marker")
	}
	if !strings.Contains(dot, "rect: [0 0 120 40]") {
		t.Errorf("detailed DOT missing rect annotation:\n%s", dot)
	}
}

func TestToDOTTraversalEdges(t *testing.T) {
	root := buildTree(t)
	dot := ToDOT(root, Options{TraversalEdges: true})

	if !strings.Contains(dot, "constraint=false") {
		t.Error("traversal edges not emitted")
	}
	if !strings.Contains(dot, `label="1"`) {
		t.Errorf("traversal edges not numbered:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	root := buildTree(t)
	svg, err := RenderSVG(ToDOT(root, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}
