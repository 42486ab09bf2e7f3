// Package geometry provides the small set of 2D primitives used by the
// semantics tree: points, axis-aligned rectangles, and affine transforms
// between a node's local coordinate space and its parent's space.
//
// Transforms are optional throughout the tree - a nil *Affine means the
// identity. The helpers in this package accept nil transforms so callers
// never have to special-case untransformed nodes.
package geometry

// Point is a position in a 2D coordinate space.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle described by its edge offsets.
// A rect is normalized when Left <= Right and Top <= Bottom; the zero
// value is the empty rect at the origin.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH builds a rect from a top-left corner plus width and height.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// Width returns the horizontal extent of the rect.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the rect.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// IsEmpty reports whether the rect encloses no area.
func (r Rect) IsEmpty() bool { return r.Left >= r.Right || r.Top >= r.Bottom }

// Union returns the smallest rect enclosing both r and other.
// If either rect is empty the other is returned unchanged.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Left:   min(r.Left, other.Left),
		Top:    min(r.Top, other.Top),
		Right:  max(r.Right, other.Right),
		Bottom: max(r.Bottom, other.Bottom),
	}
}

// Encloses reports whether r fully contains other.
// Every rect encloses the empty rect.
func (r Rect) Encloses(other Rect) bool {
	if other.IsEmpty() {
		return true
	}
	return r.Left <= other.Left && r.Top <= other.Top &&
		r.Right >= other.Right && r.Bottom >= other.Bottom
}

// Translate returns the rect shifted by dx and dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Affine is a 2D affine transform mapping local coordinates to parent
// coordinates:
//
//	x' = A*x + C*y + TX
//	y' = B*x + D*y + TY
//
// The zero value is the degenerate all-zero transform, not the identity;
// use Identity or the constructors below.
type Affine struct {
	A  float64
	B  float64
	C  float64
	D  float64
	TX float64
	TY float64
}

// Identity returns the identity transform.
func Identity() Affine { return Affine{A: 1, D: 1} }

// Translation returns a transform that shifts points by dx and dy.
func Translation(dx, dy float64) Affine { return Affine{A: 1, D: 1, TX: dx, TY: dy} }

// Scale returns a transform that scales points by sx and sy about the origin.
func Scale(sx, sy float64) Affine { return Affine{A: sx, D: sy} }

// IsIdentity reports whether the transform maps every point to itself.
func (t Affine) IsIdentity() bool {
	return t == Affine{A: 1, D: 1}
}

// Apply maps a point through the transform.
func (t Affine) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y + t.TX,
		Y: t.B*p.X + t.D*p.Y + t.TY,
	}
}

// ApplyRect maps all four corners of the rect through the transform and
// returns their bounding box. For rotations this grows the rect; for
// translations and scales it is exact.
func (t Affine) ApplyRect(r Rect) Rect {
	corners := [4]Point{
		{r.Left, r.Top},
		{r.Right, r.Top},
		{r.Right, r.Bottom},
		{r.Left, r.Bottom},
	}
	mapped := t.Apply(corners[0])
	out := Rect{Left: mapped.X, Top: mapped.Y, Right: mapped.X, Bottom: mapped.Y}
	for _, c := range corners[1:] {
		p := t.Apply(c)
		out.Left = min(out.Left, p.X)
		out.Top = min(out.Top, p.Y)
		out.Right = max(out.Right, p.X)
		out.Bottom = max(out.Bottom, p.Y)
	}
	return out
}

// Flatten returns the transform as a row-major 3x3 matrix. This is the
// fixed-size form carried in update records.
func (t Affine) Flatten() [9]float64 {
	return [9]float64{
		t.A, t.C, t.TX,
		t.B, t.D, t.TY,
		0, 0, 1,
	}
}

// IdentityFlat is the flattened identity matrix emitted for nodes that
// carry no transform of their own.
var IdentityFlat = Identity().Flatten()

// MapToParent transforms a point from a node's local space into its
// parent's space. A nil transform is the identity.
func MapToParent(t *Affine, p Point) Point {
	if t == nil {
		return p
	}
	return t.Apply(p)
}

// MapRectToParent transforms a rect from a node's local space into its
// parent's space. A nil transform is the identity.
func MapRectToParent(t *Affine, r Rect) Rect {
	if t == nil {
		return r
	}
	return t.ApplyRect(r)
}
