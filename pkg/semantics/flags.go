package semantics

import "strings"

// TextDirection is the reading direction of a node's textual content.
// The zero value means "not set"; traversal ordering walks ancestors to
// inherit a direction when a node leaves it unset.
type TextDirection int

const (
	// DirectionUnset means the node does not define a text direction.
	DirectionUnset TextDirection = iota
	// DirectionLTR is left-to-right reading order.
	DirectionLTR
	// DirectionRTL is right-to-left reading order.
	DirectionRTL
)

// String returns the lowercase name of the direction.
func (d TextDirection) String() string {
	switch d {
	case DirectionLTR:
		return "ltr"
	case DirectionRTL:
		return "rtl"
	default:
		return "unset"
	}
}

// ParseTextDirection converts a direction name ("ltr", "rtl", "" or
// "unset") to a TextDirection. Unknown names return DirectionUnset and
// false.
func ParseTextDirection(s string) (TextDirection, bool) {
	switch strings.ToLower(s) {
	case "ltr":
		return DirectionLTR, true
	case "rtl":
		return DirectionRTL, true
	case "", "unset":
		return DirectionUnset, true
	}
	return DirectionUnset, false
}

// Flag is a bitset of boolean properties attached to a node.
// Flags from merged descendants are OR-ed into the boundary node's record.
type Flag uint32

const (
	// FlagHasCheckedState indicates the node has an on/off state.
	FlagHasCheckedState Flag = 1 << iota
	// FlagIsChecked indicates the on/off state is currently on.
	FlagIsChecked
	// FlagIsSelected indicates the node is selected within its group.
	FlagIsSelected
	// FlagIsButton indicates the node behaves like a button.
	FlagIsButton
	// FlagIsTextField indicates the node is an editable text field.
	FlagIsTextField
	// FlagIsFocused indicates the node currently holds input focus.
	FlagIsFocused
	// FlagHasEnabledState indicates the node can be disabled.
	FlagHasEnabledState
	// FlagIsEnabled indicates the node is currently enabled.
	FlagIsEnabled
	// FlagIsInMutuallyExclusiveGroup marks radio-group style membership.
	FlagIsInMutuallyExclusiveGroup
	// FlagIsHeader marks the node as a section heading.
	FlagIsHeader
	// FlagIsObscured indicates textual content is obscured (passwords).
	FlagIsObscured
	// FlagScopesRoute indicates the node scopes a navigation route.
	FlagScopesRoute
	// FlagNamesRoute indicates the node's label names the enclosing route.
	FlagNamesRoute
	// FlagIsHidden indicates the node is not visible but still present
	// for ordering purposes (e.g. scrolled out of view).
	FlagIsHidden
)

// Action identifies one kind of operation the platform accessibility
// service can request on a node. Actions form a closed set; the bitset
// summary of a node's handler table is what travels in update records.
type Action uint32

const (
	// ActionTap is a single tap / click.
	ActionTap Action = 1 << iota
	// ActionLongPress is a press-and-hold.
	ActionLongPress
	// ActionScrollLeft scrolls content to the left.
	ActionScrollLeft
	// ActionScrollRight scrolls content to the right.
	ActionScrollRight
	// ActionScrollUp scrolls content upward.
	ActionScrollUp
	// ActionScrollDown scrolls content downward.
	ActionScrollDown
	// ActionIncrease increases the node's value.
	ActionIncrease
	// ActionDecrease decreases the node's value.
	ActionDecrease
	// ActionShowOnScreen scrolls the node into view.
	ActionShowOnScreen
	// ActionMoveCursorForward moves the text cursor forward one position.
	ActionMoveCursorForward
	// ActionMoveCursorBackward moves the text cursor backward one position.
	ActionMoveCursorBackward
	// ActionSetSelection replaces the text selection.
	ActionSetSelection
	// ActionCopy copies the selection to the clipboard.
	ActionCopy
	// ActionCut cuts the selection to the clipboard.
	ActionCut
	// ActionPaste pastes the clipboard at the cursor.
	ActionPaste
	// ActionDidGainAccessibilityFocus reports focus acquisition.
	ActionDidGainAccessibilityFocus
	// ActionDidLoseAccessibilityFocus reports focus loss.
	ActionDidLoseAccessibilityFocus
)

// ActionHandler is invoked when the platform requests an action.
// The argument carries the action's payload (e.g. the new selection for
// ActionSetSelection); it is nil for argument-less actions.
type ActionHandler func(args any)

// Tag is an opaque identity marker attached to a node by the embedding
// framework. Tags take part in merge resolution (union across merged
// descendants) and equality checks but are never transmitted downstream.
type Tag string

// TagSet is the set representation used for node tags.
type TagSet map[Tag]struct{}

// NewTagSet builds a TagSet from a list of tags.
func NewTagSet(tags ...Tag) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the tag.
func (s TagSet) Has(t Tag) bool {
	_, ok := s[t]
	return ok
}
