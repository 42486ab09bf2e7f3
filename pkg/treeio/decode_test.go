package treeio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/halcyonui/semtree/pkg/errors"
)

const jsonDoc = `{
  "text_direction": "ltr",
  "children": [
    {
      "key": "title",
      "label": "Settings",
      "flags": ["isHeader"],
      "rect": [0, 0, 300, 40]
    },
    {
      "key": "save",
      "label": "Save",
      "flags": ["isButton", "isEnabled"],
      "actions": ["tap"],
      "rect": [0, 0, 120, 40],
      "translate": {"x": 0, "y": 50}
    }
  ]
}`

const yamlDoc = `
text_direction: ltr
children:
  - key: title
    label: Settings
    flags: [isHeader]
    rect: [0, 0, 300, 40]
  - key: save
    label: Save
    flags: [isButton, isEnabled]
    actions: [tap]
    rect: [0, 0, 120, 40]
    translate: {x: 0, y: 50}
`

func TestReadJSON(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(jsonDoc))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if doc.NodeCount() != 2 {
		t.Errorf("node count = %d, want 2", doc.NodeCount())
	}
	if doc.Children[1].Translate == nil || doc.Children[1].Translate.Y != 50 {
		t.Error("translate not decoded")
	}
}

func TestReadYAMLMatchesJSON(t *testing.T) {
	fromJSON, err := ReadJSON(strings.NewReader(jsonDoc))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	fromYAML, err := ReadYAML(strings.NewReader(yamlDoc))
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}
	if fromYAML.TextDirection != fromJSON.TextDirection {
		t.Error("text direction differs between formats")
	}
	if len(fromYAML.Children) != len(fromJSON.Children) {
		t.Fatal("child count differs between formats")
	}
	if fromYAML.Children[1].Label != fromJSON.Children[1].Label {
		t.Error("labels differ between formats")
	}
}

func TestReadJSONRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{
			name: "MalformedJSON",
			doc:  `{"children": [`,
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "UnknownField",
			doc:  `{"chilren": []}`,
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "UnknownFlag",
			doc:  `{"children": [{"key": "a", "flags": ["isShiny"], "rect": [0,0,1,1]}]}`,
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "UnknownAction",
			doc:  `{"children": [{"key": "a", "actions": ["fling"], "rect": [0,0,1,1]}]}`,
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "DuplicateKey",
			doc:  `{"children": [{"key": "a", "rect": [0,0,1,1]}, {"key": "a", "rect": [0,0,1,1]}]}`,
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "UnknownDirection",
			doc:  `{"text_direction": "boustrophedon"}`,
			code: errors.ErrCodeInvalidDocument,
		},
		{
			name: "TranslateAndMatrix",
			doc:  `{"children": [{"key": "a", "rect": [0,0,1,1], "translate": {"x": 1, "y": 1}, "matrix": [1,0,0,1,0,0]}]}`,
			code: errors.ErrCodeInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "tree.json", want: FormatJSON},
		{path: "tree.yaml", want: FormatYAML},
		{path: "tree.YML", want: FormatYAML},
		{path: "tree.toml", wantErr: true},
		{path: "tree", wantErr: true},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("DetectFormat(%q) error = %v, want INVALID_FORMAT", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("DetectFormat(%q) = %v, %v, want %v", tt.path, got, err, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.json")
	if err := os.WriteFile(path, []byte(jsonDoc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	doc, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.NodeCount() != 2 {
		t.Errorf("node count = %d, want 2", doc.NodeCount())
	}

	_, err = Load(context.Background(), filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(jsonDoc))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	var buf strings.Builder
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	again, err := ReadJSON(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if again.NodeCount() != doc.NodeCount() {
		t.Error("node count changed across round trip")
	}
	if again.Children[0].Label != doc.Children[0].Label {
		t.Error("label changed across round trip")
	}
}
