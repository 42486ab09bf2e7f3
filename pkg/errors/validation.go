package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeKey validates an optional construction-time node key.
// Keys are opaque tree-diffing aids supplied by the embedding framework;
// they are never transmitted downstream, but they do end up in logs and
// diagnostics, so reject values that would garble those.
//
// The validation rules are intentionally conservative:
//   - Empty keys are allowed (a key is optional)
//   - No control characters
//   - Maximum length of 256 characters
func ValidateNodeKey(key string) error {
	if key == "" {
		return nil
	}
	if len(key) > 256 {
		return New(ErrCodeInvalidKey, "node key too long (max 256 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "node key contains control characters")
		}
	}
	return nil
}

// ValidateTagName validates a tag identity marker. Tags participate in
// merge resolution (tag union) and equality checks, so they must be
// non-empty and printable.
func ValidateTagName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidKey, "tag name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidKey, "tag name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "tag name contains control characters")
		}
	}
	return nil
}

// ValidateDocumentPath validates a tree-document file path for safety.
// It prevents path traversal and ensures reasonable path length.
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidDocument, "document path cannot be empty")
	}
	if len(path) > 500 {
		return New(ErrCodeInvalidDocument, "document path too long (max 500 characters)")
	}
	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidDocument, "document path contains null byte")
	}
	return nil
}
