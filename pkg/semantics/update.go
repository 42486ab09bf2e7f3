package semantics

import (
	"encoding/json"
	"math"

	"github.com/halcyonui/semtree/pkg/errors"
	"github.com/halcyonui/semtree/pkg/geometry"
)

// NoTextSelection is the sentinel emitted for absent selection offsets.
const NoTextSelection = -1

// UpdateRecord is the flat, per-node form handed to the platform
// accessibility service. It carries the node's resolved (post-merge)
// data, its geometry, and the child id lists in both traversal and
// hit-test order.
//
// Absent optional values use in-band sentinels: -1 for selection
// offsets, NaN for scroll metrics, the identity matrix for a missing
// transform. The JSON form replaces NaN with null since JSON has no NaN.
type UpdateRecord struct {
	ID      int64  `json:"id"`
	Flags   uint32 `json:"flags"`
	Actions uint32 `json:"actions"`

	// Rect is the bounding box in the node's own space as
	// [left, top, right, bottom]; the transform is emitted separately
	// and never pre-multiplied into it.
	Rect [4]float64 `json:"rect"`

	Label          string `json:"label,omitempty"`
	Value          string `json:"value,omitempty"`
	Hint           string `json:"hint,omitempty"`
	IncreasedValue string `json:"increased_value,omitempty"`
	DecreasedValue string `json:"decreased_value,omitempty"`

	TextDirection TextDirection `json:"text_direction"`

	TextSelectionBase   int `json:"text_selection_base"`
	TextSelectionExtent int `json:"text_selection_extent"`

	// The scroll metrics are excluded from the JSON form (NaN has no
	// JSON encoding; MarshalJSON maps them to nullable fields) but
	// travel as-is over CBOR, which encodes NaN natively.
	ScrollPosition  float64 `json:"-" cbor:"scroll_position"`
	ScrollExtentMin float64 `json:"-" cbor:"scroll_extent_min"`
	ScrollExtentMax float64 `json:"-" cbor:"scroll_extent_max"`

	// Transform is the row-major 3x3 local-to-parent matrix.
	Transform [9]float64 `json:"transform"`

	ChildrenInTraversalOrder []int64 `json:"children_in_traversal_order,omitempty"`
	ChildrenInHitTestOrder   []int64 `json:"children_in_hit_test_order,omitempty"`
}

// UpdateBatch is the set of records produced by one flush, ordered
// parents before children.
type UpdateBatch struct {
	Records []UpdateRecord `json:"records"`
}

// updateRecordJSON mirrors UpdateRecord for JSON round-trips, carrying
// scroll metrics as nullable values because JSON cannot encode NaN.
type updateRecordJSON struct {
	ScrollPosition  *float64 `json:"scroll_position,omitempty"`
	ScrollExtentMin *float64 `json:"scroll_extent_min,omitempty"`
	ScrollExtentMax *float64 `json:"scroll_extent_max,omitempty"`
}

// MarshalJSON emits the record with NaN scroll sentinels mapped to
// absent fields.
func (r UpdateRecord) MarshalJSON() ([]byte, error) {
	type plain UpdateRecord
	shadow := struct {
		plain
		updateRecordJSON
	}{plain: plain(r)}
	if !math.IsNaN(r.ScrollPosition) {
		shadow.updateRecordJSON.ScrollPosition = &r.ScrollPosition
	}
	if !math.IsNaN(r.ScrollExtentMin) {
		shadow.updateRecordJSON.ScrollExtentMin = &r.ScrollExtentMin
	}
	if !math.IsNaN(r.ScrollExtentMax) {
		shadow.updateRecordJSON.ScrollExtentMax = &r.ScrollExtentMax
	}
	return json.Marshal(shadow)
}

// UnmarshalJSON restores NaN sentinels for absent scroll fields.
func (r *UpdateRecord) UnmarshalJSON(data []byte) error {
	type plain UpdateRecord
	shadow := struct {
		*plain
		updateRecordJSON
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	restore := func(v *float64) float64 {
		if v == nil {
			return math.NaN()
		}
		return *v
	}
	r.ScrollPosition = restore(shadow.updateRecordJSON.ScrollPosition)
	r.ScrollExtentMin = restore(shadow.updateRecordJSON.ScrollExtentMin)
	r.ScrollExtentMax = restore(shadow.updateRecordJSON.ScrollExtentMax)
	return nil
}

// HasScrollPosition reports whether the record carries a real scroll
// position rather than the NaN sentinel.
func (r *UpdateRecord) HasScrollPosition() bool { return !math.IsNaN(r.ScrollPosition) }

// ToUpdateRecord serializes the node's resolved data into a flat record
// and clears the dirty flag as its final step. Requesting a record from
// a clean node is a lifecycle error: emission is destructive of pending
// dirty state and must happen exactly once per flush.
//
// The child id arrays are empty for leaves and for merge boundaries,
// whose descendants are not independently surfaced.
func (n *Node) ToUpdateRecord() (UpdateRecord, error) {
	if !n.dirty {
		return UpdateRecord{}, errors.New(errors.ErrCodeLifecycle,
			"node %d: update record requested for a clean node", n.id)
	}

	data, err := n.ResolveData()
	if err != nil {
		return UpdateRecord{}, err
	}

	rec := UpdateRecord{
		ID:             n.id,
		Flags:          uint32(data.Flags),
		Actions:        uint32(data.Actions),
		Rect:           [4]float64{n.rect.Left, n.rect.Top, n.rect.Right, n.rect.Bottom},
		Label:          data.Label,
		Value:          data.Value,
		Hint:           data.Hint,
		IncreasedValue: data.IncreasedValue,
		DecreasedValue: data.DecreasedValue,
		TextDirection:  data.TextDirection,
	}

	rec.TextSelectionBase = NoTextSelection
	rec.TextSelectionExtent = NoTextSelection
	if data.TextSelection != nil {
		rec.TextSelectionBase = data.TextSelection.Base
		rec.TextSelectionExtent = data.TextSelection.Extent
	}

	sentinel := func(v *float64) float64 {
		if v == nil {
			return math.NaN()
		}
		return *v
	}
	rec.ScrollPosition = sentinel(data.ScrollPosition)
	rec.ScrollExtentMin = sentinel(data.ScrollExtentMin)
	rec.ScrollExtentMax = sentinel(data.ScrollExtentMax)

	if n.transform != nil {
		rec.Transform = n.transform.Flatten()
	} else {
		rec.Transform = geometry.IdentityFlat
	}

	if len(n.children) > 0 && !n.mergeAllDescendants {
		ordered := n.ChildrenInTraversalOrder()
		rec.ChildrenInTraversalOrder = make([]int64, len(ordered))
		for i, c := range ordered {
			rec.ChildrenInTraversalOrder[i] = c.id
		}
		rec.ChildrenInHitTestOrder = make([]int64, len(n.children))
		for i := range n.children {
			rec.ChildrenInHitTestOrder[i] = n.children[len(n.children)-1-i].id
		}
	}

	n.dirty = false
	return rec, nil
}
