package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halcyonui/semtree/pkg/pipeline"
	"github.com/halcyonui/semtree/pkg/semantics"
)

// orderCommand creates the order command for inspecting traversal order.
//
// The command builds the tree a document describes and prints every node
// in the order assistive technology would traverse it. Children appear
// in computed traversal order, not paint order, so the output reflects
// sort keys, text direction, and geometric banding.
func (c *CLI) orderCommand() *cobra.Command {
	var (
		width  float64
		height float64
	)

	cmd := &cobra.Command{
		Use:   "order [document]",
		Short: "Print the traversal order of a document's tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOrder(cmd, args[0], width, height)
		},
	}

	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "root frame width")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultHeight, "root frame height")

	return cmd
}

func (c *CLI) runOrder(cmd *cobra.Command, document string, width, height float64) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts := pipeline.Options{Document: document, Width: width, Height: height}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := c.newRunner()
	doc, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	if err := runner.Build(ctx, doc, opts); err != nil {
		return err
	}
	logger.Debugf("Built tree: %d nodes", runner.Builder.Owner().NodeCount())

	printInfo("Traversal order for %s", document)
	return writeOrder(os.Stdout, runner.Builder.Root())
}

// writeOrder prints the tree rooted at root in traversal order, one node
// per line, indented by depth. Merged descendants are annotated since
// they do not produce their own update records.
func writeOrder(w io.Writer, root *semantics.Node) error {
	var walk func(n *semantics.Node, depth int) error
	seq := 0

	walk = func(n *semantics.Node, depth int) error {
		seq++
		if _, err := fmt.Fprintf(w, "%3d %s%s\n", seq, strings.Repeat("  ", depth), orderLine(n)); err != nil {
			return err
		}
		for _, child := range n.ChildrenInTraversalOrder() {
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, 0)
}

// orderLine formats a single node for traversal output.
func orderLine(n *semantics.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d", n.ID())
	if n.Key() != "" {
		fmt.Fprintf(&b, " %s", n.Key())
	}
	if label := n.Label(); label != "" {
		fmt.Fprintf(&b, " %q", label)
	}
	switch {
	case n.MergesAllDescendants():
		b.WriteString(" (merge boundary)")
	case n.IsMergedIntoParent():
		b.WriteString(" (merged)")
	}
	return b.String()
}
