package treeio

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/halcyonui/semtree/pkg/errors"
	"github.com/halcyonui/semtree/pkg/observability"
	"github.com/halcyonui/semtree/pkg/semantics"
)

// WriteBatchJSON encodes an update batch as indented JSON. Scroll
// sentinels travel as absent fields; see the record's JSON mapping.
func WriteBatchJSON(batch semantics.UpdateBatch, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(batch); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode update batch")
	}
	return nil
}

// ExportBatchJSON writes an update batch to a JSON file at path.
// This is a convenience wrapper around [WriteBatchJSON] for file-based
// output.
func ExportBatchJSON(ctx context.Context, batch semantics.UpdateBatch, path string) error {
	if err := errors.ValidateDocumentPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	if err := WriteBatchJSON(batch, f); err != nil {
		return err
	}
	observability.Document().OnExport(ctx, "json", len(batch.Records))
	return nil
}
