package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halcyonui/semtree/pkg/pipeline"
)

// flushOpts holds the command-line flags for the flush command.
type flushOpts struct {
	output      string  // output file (single format) or base path (multiple)
	width       float64 // root frame width
	height      float64 // root frame height
	detailed    bool    // show node details in DOT/SVG output
	traversal   bool    // overlay traversal order edges in DOT/SVG output
	optionsFile string  // TOML options file, overridden by explicit flags
}

// flushCommand creates the flush command for applying a document and
// writing the resulting update batch.
//
// Default settings:
//   - format: json
//   - width: 800px, height: 600px
func (c *CLI) flushCommand() *cobra.Command {
	var formatsStr string
	opts := flushOpts{
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
	}

	cmd := &cobra.Command{
		Use:   "flush [document]",
		Short: "Apply a tree document and write the update batch",
		Long: `Apply a tree document and write the update batch.

The flush command decodes a JSON or YAML document, builds the semantics
tree it describes, drains the dirty set, and writes the resulting update
batch in the requested formats. A fresh tree marks every node dirty, so
a single flush emits one record per node.

The document may come from the argument or from a TOML options file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document := ""
			if len(args) > 0 {
				document = args[0]
			}
			popts, err := buildPipelineOptions(cmd, document, &opts, formatsStr)
			if err != nil {
				return err
			}
			return c.runFlush(cmd.Context(), popts, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), cbor, dot, svg (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "root frame width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "root frame height")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node details (dot, svg)")
	cmd.Flags().BoolVar(&opts.traversal, "traversal", false, "overlay traversal order edges (dot, svg)")
	cmd.Flags().StringVar(&opts.optionsFile, "options", "", "TOML options file (explicit flags take precedence)")

	return cmd
}

// buildPipelineOptions assembles pipeline options from an options file
// and command-line flags. Flags the user set explicitly override the
// file; the document argument always wins.
func buildPipelineOptions(cmd *cobra.Command, document string, opts *flushOpts, formatsStr string) (pipeline.Options, error) {
	var popts pipeline.Options
	if opts.optionsFile != "" {
		loaded, err := pipeline.LoadOptions(opts.optionsFile)
		if err != nil {
			return pipeline.Options{}, err
		}
		popts = loaded
	}

	if document != "" {
		popts.Document = document
	}
	if opts.optionsFile == "" || cmd.Flags().Changed("width") {
		popts.Width = opts.width
	}
	if opts.optionsFile == "" || cmd.Flags().Changed("height") {
		popts.Height = opts.height
	}
	if formatsStr != "" || len(popts.Formats) == 0 {
		popts.Formats = parseFormats(formatsStr)
	}
	if cmd.Flags().Changed("detailed") {
		popts.Detailed = opts.detailed
	}
	if cmd.Flags().Changed("traversal") {
		popts.TraversalEdges = opts.traversal
	}
	return popts, nil
}

// runFlush executes the pipeline and writes each artifact to a file.
func (c *CLI) runFlush(ctx context.Context, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner := c.newRunner()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Flushed %d records", result.Stats.RecordCount))

	printSuccess("Applied %s", opts.Document)
	printStats(result.Stats.NodeCount, result.Stats.RecordCount)

	base := artifactBase(output, opts.Document)
	formats := make([]string, 0, len(result.Artifacts))
	for format := range result.Artifacts {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	for _, format := range formats {
		path := artifactPath(base, output, format, len(formats))
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debugf("Wrote %s: %d bytes", path, len(result.Artifacts[format]))
		printFile(path)
	}

	printNextStep("Inspect traversal order", appName+" order "+opts.Document)
	return nil
}

// artifactBase derives the base output path from the output flag and the
// document path. If output is empty, it strips the extension from the
// document; if output carries a format extension, that is stripped too.
func artifactBase(output, document string) string {
	if output == "" {
		return strings.TrimSuffix(document, filepath.Ext(document))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactPath builds the output path for one format. A single format
// with an explicit output keeps the output path verbatim.
func artifactPath(base, output, format string, formatCount int) string {
	if output != "" && formatCount == 1 && filepath.Ext(output) != "" {
		return output
	}
	return base + "." + format
}
