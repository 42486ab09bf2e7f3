package treeio

import (
	"github.com/halcyonui/semtree/pkg/errors"
	"github.com/halcyonui/semtree/pkg/semantics"
)

// Document is the serialized form of one semantics tree: a root text
// direction plus a hierarchy of node specs. Documents decode from JSON
// and YAML and drive tree construction through [Builder].
type Document struct {
	// TextDirection applies to the root and is inherited downward.
	TextDirection string `json:"text_direction,omitempty" yaml:"text_direction,omitempty"`

	// Children are the root's child specs in paint order.
	Children []NodeSpec `json:"children,omitempty" yaml:"children,omitempty"`
}

// NodeSpec describes one node of a tree document. Keys identify nodes
// across successive documents so incremental rebuilds can move a spec
// to a new position without recreating the node.
type NodeSpec struct {
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	Label          string `json:"label,omitempty" yaml:"label,omitempty"`
	Value          string `json:"value,omitempty" yaml:"value,omitempty"`
	Hint           string `json:"hint,omitempty" yaml:"hint,omitempty"`
	IncreasedValue string `json:"increased_value,omitempty" yaml:"increased_value,omitempty"`
	DecreasedValue string `json:"decreased_value,omitempty" yaml:"decreased_value,omitempty"`

	TextDirection string   `json:"text_direction,omitempty" yaml:"text_direction,omitempty"`
	Flags         []string `json:"flags,omitempty" yaml:"flags,omitempty"`
	Actions       []string `json:"actions,omitempty" yaml:"actions,omitempty"`
	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	SortKey *SortKeySpec `json:"sort_key,omitempty" yaml:"sort_key,omitempty"`

	TextSelection *SelectionSpec `json:"text_selection,omitempty" yaml:"text_selection,omitempty"`

	ScrollPosition  *float64 `json:"scroll_position,omitempty" yaml:"scroll_position,omitempty"`
	ScrollExtentMin *float64 `json:"scroll_extent_min,omitempty" yaml:"scroll_extent_min,omitempty"`
	ScrollExtentMax *float64 `json:"scroll_extent_max,omitempty" yaml:"scroll_extent_max,omitempty"`

	MergeAllDescendants bool `json:"merge_descendants,omitempty" yaml:"merge_descendants,omitempty"`

	// Rect is [left, top, right, bottom] in the node's own space.
	Rect [4]float64 `json:"rect" yaml:"rect,flow"`

	// Translate positions the node in the parent space; rotation and
	// scale components use Matrix instead.
	Translate *PointSpec `json:"translate,omitempty" yaml:"translate,omitempty"`

	// Matrix is the full [a, b, c, d, tx, ty] affine to parent space.
	// Mutually exclusive with Translate.
	Matrix *[6]float64 `json:"matrix,omitempty" yaml:"matrix,omitempty,flow"`

	Children []NodeSpec `json:"children,omitempty" yaml:"children,omitempty"`
}

// SortKeySpec is the serialized traversal sort key.
type SortKeySpec struct {
	Name  string  `json:"name" yaml:"name"`
	Order float64 `json:"order" yaml:"order"`
}

// SelectionSpec is the serialized text selection.
type SelectionSpec struct {
	Base   int `json:"base" yaml:"base"`
	Extent int `json:"extent" yaml:"extent"`
}

// PointSpec is a 2D offset.
type PointSpec struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

var flagNames = map[string]semantics.Flag{
	"hasCheckedState":            semantics.FlagHasCheckedState,
	"isChecked":                  semantics.FlagIsChecked,
	"isSelected":                 semantics.FlagIsSelected,
	"isButton":                   semantics.FlagIsButton,
	"isTextField":                semantics.FlagIsTextField,
	"isFocused":                  semantics.FlagIsFocused,
	"hasEnabledState":            semantics.FlagHasEnabledState,
	"isEnabled":                  semantics.FlagIsEnabled,
	"isInMutuallyExclusiveGroup": semantics.FlagIsInMutuallyExclusiveGroup,
	"isHeader":                   semantics.FlagIsHeader,
	"isObscured":                 semantics.FlagIsObscured,
	"scopesRoute":                semantics.FlagScopesRoute,
	"namesRoute":                 semantics.FlagNamesRoute,
	"isHidden":                   semantics.FlagIsHidden,
}

var actionNames = map[string]semantics.Action{
	"tap":                       semantics.ActionTap,
	"longPress":                 semantics.ActionLongPress,
	"scrollLeft":                semantics.ActionScrollLeft,
	"scrollRight":               semantics.ActionScrollRight,
	"scrollUp":                  semantics.ActionScrollUp,
	"scrollDown":                semantics.ActionScrollDown,
	"increase":                  semantics.ActionIncrease,
	"decrease":                  semantics.ActionDecrease,
	"showOnScreen":              semantics.ActionShowOnScreen,
	"moveCursorForward":         semantics.ActionMoveCursorForward,
	"moveCursorBackward":        semantics.ActionMoveCursorBackward,
	"setSelection":              semantics.ActionSetSelection,
	"copy":                      semantics.ActionCopy,
	"cut":                       semantics.ActionCut,
	"paste":                     semantics.ActionPaste,
	"didGainAccessibilityFocus": semantics.ActionDidGainAccessibilityFocus,
	"didLoseAccessibilityFocus": semantics.ActionDidLoseAccessibilityFocus,
}

// ParseFlag converts a document flag name to its bit.
func ParseFlag(name string) (semantics.Flag, bool) {
	f, ok := flagNames[name]
	return f, ok
}

// ParseAction converts a document action name to its bit.
func ParseAction(name string) (semantics.Action, bool) {
	a, ok := actionNames[name]
	return a, ok
}

// Validate checks the document against the node spec contract: known
// flag, action, and direction names, well-formed keys, and unique keys
// across the whole document.
func (d *Document) Validate() error {
	if _, ok := semantics.ParseTextDirection(d.TextDirection); !ok {
		return errors.New(errors.ErrCodeInvalidDocument,
			"unknown text direction %q", d.TextDirection)
	}
	seen := make(map[string]struct{})
	for i := range d.Children {
		if err := d.Children[i].validate(seen); err != nil {
			return err
		}
	}
	return nil
}

func (s *NodeSpec) validate(seen map[string]struct{}) error {
	if err := errors.ValidateNodeKey(s.Key); err != nil {
		return err
	}
	if s.Key != "" {
		if _, dup := seen[s.Key]; dup {
			return errors.New(errors.ErrCodeInvalidDocument,
				"duplicate node key %q", s.Key)
		}
		seen[s.Key] = struct{}{}
	}
	if _, ok := semantics.ParseTextDirection(s.TextDirection); !ok {
		return errors.New(errors.ErrCodeInvalidDocument,
			"node %q: unknown text direction %q", s.Key, s.TextDirection)
	}
	for _, name := range s.Flags {
		if _, ok := flagNames[name]; !ok {
			return errors.New(errors.ErrCodeInvalidDocument,
				"node %q: unknown flag %q", s.Key, name)
		}
	}
	for _, name := range s.Actions {
		if _, ok := actionNames[name]; !ok {
			return errors.New(errors.ErrCodeInvalidDocument,
				"node %q: unknown action %q", s.Key, name)
		}
	}
	if s.Translate != nil && s.Matrix != nil {
		return errors.New(errors.ErrCodeInvalidDocument,
			"node %q: translate and matrix are mutually exclusive", s.Key)
	}
	for i := range s.Children {
		if err := s.Children[i].validate(seen); err != nil {
			return err
		}
	}
	return nil
}
