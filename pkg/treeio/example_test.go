package treeio_test

import (
	"fmt"
	"strings"

	"github.com/halcyonui/semtree/pkg/geometry"
	"github.com/halcyonui/semtree/pkg/semantics"
	"github.com/halcyonui/semtree/pkg/treeio"
)

// Applying a document builds the tree through the normal reconciliation
// path; flushing drains every node the application dirtied.
func ExampleBuilder() {
	semantics.ResetNodeIDs()

	const document = `{
	  "text_direction": "ltr",
	  "children": [
	    {"key": "title", "label": "Settings", "flags": ["isHeader"], "rect": [0, 0, 300, 40]},
	    {"key": "save", "label": "Save", "flags": ["isButton"], "actions": ["tap"], "rect": [0, 50, 120, 90]}
	  ]
	}`

	doc, err := treeio.ReadJSON(strings.NewReader(document))
	if err != nil {
		panic(err)
	}

	builder, err := treeio.NewBuilder(geometry.RectFromLTWH(0, 0, 800, 600))
	if err != nil {
		panic(err)
	}
	if err := builder.Apply(doc); err != nil {
		panic(err)
	}

	batch, err := builder.Flush()
	if err != nil {
		panic(err)
	}
	fmt.Println("records:", len(batch.Records))

	// Reapplying the same document changes nothing, so nothing flushes.
	if err := builder.Apply(doc); err != nil {
		panic(err)
	}
	batch, err = builder.Flush()
	if err != nil {
		panic(err)
	}
	fmt.Println("records:", len(batch.Records))
	// Output:
	// records: 3
	// records: 0
}
