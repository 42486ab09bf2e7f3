package semantics

import (
	"maps"

	"github.com/halcyonui/semtree/pkg/errors"
)

// Unicode bidirectional embedding characters used when concatenating
// strings of differing text direction.
const (
	unicodeLRE = "\u202A" // left-to-right embedding
	unicodeRLE = "\u202B" // right-to-left embedding
	unicodePDF = "\u202C" // pop directional formatting
)

// Data is a node's effective, post-merge accessibility record: the
// node's own fields for ordinary nodes, or the combination of the node
// and all of its descendants for a merge boundary.
type Data struct {
	Flags   Flag
	Actions Action

	Label          string
	Value          string
	Hint           string
	IncreasedValue string
	DecreasedValue string

	TextDirection TextDirection
	TextSelection *TextSelection

	ScrollPosition  *float64
	ScrollExtentMin *float64
	ScrollExtentMax *float64

	Tags TagSet
}

// concatStrings joins a resolved string with the next merged segment.
// Empty segments are skipped entirely. When the segment's direction is
// set and differs from the resolved direction, the segment is wrapped in
// the matching directional embedding so a renderer interprets it in its
// own direction. Non-empty strings join with a single newline.
func concatStrings(thisStr string, thisDir TextDirection, otherStr string, otherDir TextDirection) string {
	if otherStr == "" {
		return thisStr
	}
	nested := otherStr
	if thisDir != otherDir && otherDir != DirectionUnset {
		switch otherDir {
		case DirectionRTL:
			nested = unicodeRLE + otherStr + unicodePDF
		case DirectionLTR:
			nested = unicodeLRE + otherStr + unicodePDF
		}
	}
	if thisStr == "" {
		return nested
	}
	return thisStr + "\n" + nested
}

// ResolveData computes the node's effective accessibility record.
//
// For a merge boundary every descendant is pre-order-visited and folded
// in: flag and action bitsets OR together; text direction, selection and
// scroll metrics resolve to the first non-nil value in visit order;
// value strings resolve to the first non-empty one; labels and hints
// concatenate with bidirectional-text-aware joining; tags union.
//
// Every descendant of a merge boundary must itself be merged into its
// parent; a descendant that is not violates internal consistency.
func (n *Node) ResolveData() (Data, error) {
	data := Data{
		Flags:           n.flags,
		Actions:         n.actionBits,
		Label:           n.label,
		Value:           n.value,
		Hint:            n.hint,
		IncreasedValue:  n.increasedValue,
		DecreasedValue:  n.decreasedValue,
		TextDirection:   n.textDirection,
		TextSelection:   n.textSelection.clone(),
		ScrollPosition:  cloneFloat(n.scrollPosition),
		ScrollExtentMin: cloneFloat(n.scrollMin),
		ScrollExtentMax: cloneFloat(n.scrollMax),
	}
	if n.tags != nil {
		data.Tags = maps.Clone(n.tags)
	}

	if !n.mergeAllDescendants {
		return data, nil
	}

	err := n.visitDescendants(func(node *Node) error {
		if !node.mergedIntoParent {
			return errors.New(errors.ErrCodeMerge,
				"node %d: descendant %d of merge boundary is not merged into its parent",
				n.id, node.id)
		}

		data.Flags |= node.flags
		data.Actions |= node.actionBits

		if data.TextDirection == DirectionUnset {
			data.TextDirection = node.textDirection
		}
		if data.TextSelection == nil {
			data.TextSelection = node.textSelection.clone()
		}
		if data.ScrollPosition == nil {
			data.ScrollPosition = cloneFloat(node.scrollPosition)
		}
		if data.ScrollExtentMin == nil {
			data.ScrollExtentMin = cloneFloat(node.scrollMin)
		}
		if data.ScrollExtentMax == nil {
			data.ScrollExtentMax = cloneFloat(node.scrollMax)
		}

		if data.Value == "" {
			data.Value = node.value
		}
		if data.IncreasedValue == "" {
			data.IncreasedValue = node.increasedValue
		}
		if data.DecreasedValue == "" {
			data.DecreasedValue = node.decreasedValue
		}

		if len(node.tags) > 0 {
			if data.Tags == nil {
				data.Tags = make(TagSet, len(node.tags))
			}
			for t := range node.tags {
				data.Tags[t] = struct{}{}
			}
		}

		data.Label = concatStrings(data.Label, data.TextDirection, node.label, node.textDirection)
		data.Hint = concatStrings(data.Hint, data.TextDirection, node.hint, node.textDirection)
		return nil
	})
	if err != nil {
		return Data{}, err
	}
	return data, nil
}

// HasAction reports whether the resolved record exposes the action.
func (d *Data) HasAction(a Action) bool { return d.Actions&a != 0 }

// HasFlag reports whether the resolved record carries the flag.
func (d *Data) HasFlag(f Flag) bool { return d.Flags&f != 0 }
