package semantics

import "maps"

// TextSelection is the base/extent pair of a text-field selection.
// Base is the anchor, Extent the free end; both are rune offsets and
// Extent < Base describes a backwards selection.
type TextSelection struct {
	Base   int
	Extent int
}

func (s *TextSelection) clone() *TextSelection {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Config is the per-frame attribute record the layout/paint collaborator
// produces for a UI element. A Config is an input to Node.UpdateWith and
// is never retained by the node: every field is copied, so the caller may
// reuse or mutate the Config after the call.
//
// Optional fields use pointers; nil means "not provided".
type Config struct {
	// Label describes the node (e.g. button text).
	Label string
	// Value is the node's current value (e.g. slider reading).
	Value string
	// Hint describes the result of performing the node's primary action.
	Hint string
	// IncreasedValue is Value after an ActionIncrease, when applicable.
	IncreasedValue string
	// DecreasedValue is Value after an ActionDecrease, when applicable.
	DecreasedValue string

	// TextDirection of Label, Value, and Hint.
	TextDirection TextDirection

	// Flags is the node's boolean property bitset.
	Flags Flag

	// Actions maps each supported action to its handler. The bit-encoded
	// summary sent downstream is derived from the map's keys.
	Actions map[Action]ActionHandler

	// Tags are opaque identity markers; not transmitted downstream.
	Tags TagSet

	// SortKey optionally overrides traversal order within a sibling run.
	SortKey *SortKey

	// TextSelection is the current selection for text fields.
	TextSelection *TextSelection

	// Scroll metrics; opaque to this core beyond record emission.
	ScrollPosition  *float64
	ScrollExtentMin *float64
	ScrollExtentMax *float64

	// MergeAllDescendants marks the node as a merge boundary: the
	// semantic data of every descendant is folded into this node.
	MergeAllDescendants bool
}

// AddAction registers a handler for one action, allocating the map on
// first use.
func (c *Config) AddAction(a Action, handler ActionHandler) {
	if c.Actions == nil {
		c.Actions = make(map[Action]ActionHandler)
	}
	c.Actions[a] = handler
}

// AddTag adds an identity marker to the config.
func (c *Config) AddTag(t Tag) {
	if c.Tags == nil {
		c.Tags = make(TagSet)
	}
	c.Tags[t] = struct{}{}
}

// actionBits returns the bit-encoded summary of the handler table.
func (c *Config) actionBits() Action {
	var bits Action
	for a := range c.Actions {
		bits |= a
	}
	return bits
}

func cloneActions(m map[Action]ActionHandler) map[Action]ActionHandler {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

func cloneTags(s TagSet) TagSet {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func floatEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func selectionEqual(a, b *TextSelection) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sortKeyEqual(a, b *SortKey) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
