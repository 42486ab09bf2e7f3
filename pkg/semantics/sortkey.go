package semantics

// SortKey is an optional, explicit traversal-order override for a node.
// Keys are grouped by Name: within a run of siblings whose keys share the
// same name, nodes are ordered by ascending Order. Keys with different
// names (or a key against an absent key) are incomparable and never
// reordered against each other.
//
// The action set of key kinds is closed: the only kind is the ordinal key
// expressed by this struct, so "same kind" reduces to name equality.
type SortKey struct {
	// Name is the key's category. Only keys with equal names compare.
	Name string
	// Order positions the node within its run, ascending.
	Order float64
}

// Comparable reports whether two optional sort keys belong to the same
// run. Two absent keys are comparable (they form a null run); an absent
// key is never comparable to a present one.
func (k *SortKey) Comparable(other *SortKey) bool {
	if k == nil || other == nil {
		return k == nil && other == nil
	}
	return k.Name == other.Name
}

// Compare orders two keys of the same run: negative if k sorts before
// other, positive if after, zero if tied. Ties preserve the nodes'
// existing relative order (callers must use a stable sort).
func (k *SortKey) Compare(other *SortKey) int {
	switch {
	case k.Order < other.Order:
		return -1
	case k.Order > other.Order:
		return 1
	default:
		return 0
	}
}

// clone returns a copy of the key so nodes never alias configuration
// storage. Returns nil for nil.
func (k *SortKey) clone() *SortKey {
	if k == nil {
		return nil
	}
	c := *k
	return &c
}
