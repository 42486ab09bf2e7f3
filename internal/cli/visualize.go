package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halcyonui/semtree/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering a
// document's tree as a Graphviz diagram.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output    string
		format    string
		detailed  bool
		traversal bool
		width     float64
		height    float64
	)

	cmd := &cobra.Command{
		Use:   "visualize [document]",
		Short: "Render a document's tree as a diagram",
		Long: `Render a document's tree as a diagram.

The visualize command builds the semantics tree a document describes and
renders it with Graphviz. Merge boundaries get a double border, merged
descendants a dashed grey box. With --traversal the computed traversal
order is overlaid as numbered dashed edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != pipeline.FormatDOT && format != pipeline.FormatSVG {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", format)
			}

			opts := pipeline.Options{
				Document:       args[0],
				Width:          width,
				Height:         height,
				Formats:        []string{format},
				Detailed:       detailed,
				TraversalEdges: traversal,
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			result, err := c.newRunner().Execute(ctx, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %d nodes", result.Stats.NodeCount))

			path := output
			if path == "" {
				path = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + format
			}
			if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Rendered %s", args[0])
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: document name with format extension)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show rects, merge state, and sort keys")
	cmd.Flags().BoolVar(&traversal, "traversal", false, "overlay traversal order edges")
	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "root frame width")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultHeight, "root frame height")

	return cmd
}
