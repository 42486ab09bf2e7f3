package treeio

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/halcyonui/semtree/pkg/errors"
	"github.com/halcyonui/semtree/pkg/observability"
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat maps a file extension to a document format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported document extension %q", filepath.Ext(path))
}

// ReadJSON decodes a tree document from r and validates it.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadYAML decodes a tree document from r and validates it.
// ReadYAML does not close r.
func ReadYAML(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode yaml document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Read decodes a document from r in the given format.
func Read(r io.Reader, format Format) (*Document, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", format)
}

// Load reads a document file at path, detecting the format from the
// file extension.
func Load(ctx context.Context, path string) (*Document, error) {
	if err := errors.ValidateDocumentPath(path); err != nil {
		return nil, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	observability.Document().OnDocumentLoad(ctx, path, string(format))

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "open %s", path)
	}
	defer f.Close()

	doc, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	observability.Document().OnDocumentDecoded(ctx, path, doc.NodeCount())
	return doc, nil
}

// NodeCount returns the number of node specs in the document.
func (d *Document) NodeCount() int {
	count := 0
	var walk func(specs []NodeSpec)
	walk = func(specs []NodeSpec) {
		for i := range specs {
			count++
			walk(specs[i].Children)
		}
	}
	walk(d.Children)
	return count
}

// WriteJSON encodes a document as indented JSON. The output round-trips
// through [ReadJSON].
func WriteJSON(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json document")
	}
	return nil
}

// WriteYAML encodes a document as YAML. The output round-trips through
// [ReadYAML].
func WriteYAML(d *Document, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml document")
	}
	return nil
}
