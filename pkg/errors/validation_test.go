package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "empty is allowed", key: "", wantErr: false},
		{name: "simple", key: "list-item-4", wantErr: false},
		{name: "unicode", key: "ボタン", wantErr: false},
		{name: "control character", key: "bad\x01key", wantErr: true},
		{name: "newline", key: "bad\nkey", wantErr: true},
		{name: "too long", key: strings.Repeat("k", 257), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidKey) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidKey)
			}
		})
	}
}

func TestValidateTagName(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		wantErr bool
	}{
		{name: "simple", tag: "route", wantErr: false},
		{name: "empty", tag: "", wantErr: true},
		{name: "control character", tag: "a\x00b", wantErr: true},
		{name: "too long", tag: strings.Repeat("t", 257), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTagName(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTagName(%q) error = %v, wantErr %v", tt.tag, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocumentPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "relative", path: "frames/home.json", wantErr: false},
		{name: "absolute", path: "/tmp/tree.yaml", wantErr: false},
		{name: "empty", path: "", wantErr: true},
		{name: "null byte", path: "a\x00b", wantErr: true},
		{name: "too long", path: strings.Repeat("p", 501), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
