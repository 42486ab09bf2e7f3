package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halcyonui/semtree/pkg/errors"
	"github.com/halcyonui/semtree/pkg/observability"
	"github.com/halcyonui/semtree/pkg/render/treedot"
	"github.com/halcyonui/semtree/pkg/semantics"
	"github.com/halcyonui/semtree/pkg/treeio"
	"github.com/halcyonui/semtree/pkg/wire"
)

// Runner executes the pipeline over a persistent tree. Feeding it
// successive documents produces incremental update batches: only nodes
// that changed since the previous execution appear in the output.
//
// A Runner is single-goroutine, like the tree it owns.
type Runner struct {
	Builder *treeio.Builder
	Logger  *log.Logger
}

// NewRunner creates a runner with a fresh tree covering the bounds the
// first execution's options request. If logger is nil, the default
// logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → build → flush → encode pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = doc.NodeCount()

	r.Logger.Info("loaded document",
		"path", opts.Document,
		"nodes", doc.NodeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	if err := r.Build(ctx, doc, opts); err != nil {
		return nil, err
	}
	result.Stats.BuildTime = time.Since(buildStart)

	r.Logger.Info("applied document",
		"attached", r.Builder.Owner().NodeCount(),
		"dirty", r.Builder.Owner().DirtyCount(),
		"duration", result.Stats.BuildTime)

	// Stage 3: Flush and encode
	flushStart := time.Now()
	batch, err := r.Flush(ctx)
	if err != nil {
		return nil, err
	}
	result.Batch = batch
	result.Stats.FlushTime = time.Since(flushStart)
	result.Stats.RecordCount = len(batch.Records)

	encodeStart := time.Now()
	artifacts, err := r.Encode(ctx, batch, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.EncodeTime = time.Since(encodeStart)

	r.Logger.Info("flushed updates",
		"records", len(batch.Records),
		"formats", opts.Formats,
		"duration", result.Stats.FlushTime+result.Stats.EncodeTime)

	return result, nil
}

// Load decodes the document named by the options.
func (r *Runner) Load(ctx context.Context, opts Options) (*treeio.Document, error) {
	doc, err := treeio.Load(ctx, opts.Document)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Build applies a document to the runner's tree, creating the tree on
// first use.
func (r *Runner) Build(ctx context.Context, doc *treeio.Document, opts Options) error {
	if r.Builder == nil {
		b, err := treeio.NewBuilder(opts.Bounds())
		if err != nil {
			return err
		}
		r.Builder = b
	}

	observability.Tree().OnRebuildStart(ctx, opts.Document)
	start := time.Now()
	err := r.Builder.Apply(doc)
	observability.Tree().OnRebuildComplete(ctx, opts.Document, doc.NodeCount(), time.Since(start), err)
	return err
}

// Flush drains the tree's dirty set into an update batch.
func (r *Runner) Flush(ctx context.Context) (semantics.UpdateBatch, error) {
	if r.Builder == nil {
		return semantics.UpdateBatch{}, errors.New(errors.ErrCodeLifecycle,
			"flush before any document was applied")
	}
	observability.Tree().OnFlushStart(ctx, r.Builder.Owner().DirtyCount())
	start := time.Now()
	batch, err := r.Builder.Flush()
	observability.Tree().OnFlushComplete(ctx, len(batch.Records), time.Since(start), err)
	return batch, err
}

// Encode serializes the batch in each requested format. DOT and SVG
// render the current tree rather than the batch, since the diagram
// shows live structure.
func (r *Runner) Encode(ctx context.Context, batch semantics.UpdateBatch, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.encodeOne(batch, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
		observability.Document().OnExport(ctx, format, len(data))
	}
	return artifacts, nil
}

func (r *Runner) encodeOne(batch semantics.UpdateBatch, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := treeio.WriteBatchJSON(batch, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatCBOR:
		return wire.EncodeBatch(batch)
	case FormatDOT:
		dot := treedot.ToDOT(r.Builder.Root(), treedot.Options{
			Detailed:       opts.Detailed,
			TraversalEdges: opts.TraversalEdges,
		})
		return []byte(dot), nil
	case FormatSVG:
		dot := treedot.ToDOT(r.Builder.Root(), treedot.Options{
			Detailed:       opts.Detailed,
			TraversalEdges: opts.TraversalEdges,
		})
		return treedot.RenderSVG(dot)
	}
	return nil, ValidateFormat(format)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
