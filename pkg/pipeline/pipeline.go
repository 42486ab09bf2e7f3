// Package pipeline provides the core document → tree → update pipeline.
//
// This package implements the complete load → build → flush → encode
// pipeline shared by the CLI and embedding applications. By centralizing
// this logic, every entry point applies documents, drains the dirty set,
// and serializes update batches the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode a tree document from a JSON or YAML file
//  2. Build: Apply the document to the live tree, reconciling against
//     the previous application
//  3. Flush: Drain the dirty set and encode the update batch in the
//     requested formats (JSON, CBOR, DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner, err := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Document: "form.yaml",
//	    Formats:  []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := result.Artifacts["json"]
//
// A runner keeps its tree across executions, so feeding it successive
// documents produces incremental batches.
package pipeline

import (
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/halcyonui/semtree/pkg/errors"
	"github.com/halcyonui/semtree/pkg/geometry"
	"github.com/halcyonui/semtree/pkg/semantics"
	"github.com/halcyonui/semtree/pkg/treeio"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Embedders
// =============================================================================

const (
	// DefaultWidth is the default root frame width.
	DefaultWidth = 800.0

	// DefaultHeight is the default root frame height.
	DefaultHeight = 600.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatCBOR: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline execution.
// This struct supports TOML (options files) and JSON serialization.
type Options struct {
	// Load options
	Document string `json:"document,omitempty" toml:"document"`

	// Build options
	Width  float64 `json:"width,omitempty" toml:"width"`
	Height float64 `json:"height,omitempty" toml:"height"`

	// Output options
	Formats        []string `json:"formats,omitempty" toml:"formats"`
	Detailed       bool     `json:"detailed,omitempty" toml:"detailed"`
	TraversalEdges bool     `json:"traversal_edges,omitempty" toml:"traversal_edges"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the decoded input document.
	Document *treeio.Document

	// Batch is the update batch produced by the flush stage.
	Batch semantics.UpdateBatch

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains node and timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	RecordCount int
	LoadTime    time.Duration
	BuildTime   time.Duration
	FlushTime   time.Duration
	EncodeTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, cbor, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Document == "" {
		return errors.New(errors.ErrCodeInvalidDocument, "document is required")
	}
	if err := errors.ValidateDocumentPath(o.Document); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Bounds returns the root frame rectangle.
func (o *Options) Bounds() geometry.Rect {
	return geometry.RectFromLTWH(0, 0, o.Width, o.Height)
}

// LoadOptions reads an Options file in TOML format. Runtime fields stay
// at their zero values; call ValidateAndSetDefaults afterwards.
func LoadOptions(path string) (Options, error) {
	var opts Options
	meta, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode options %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidDocument,
			"options %s: unknown key %q", path, undecoded[0].String())
	}
	return opts, nil
}
