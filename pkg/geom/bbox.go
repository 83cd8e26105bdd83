package geom

// BBox is a rectangular extent in millimeters, in the FreePCB y-up frame:
// Top is the largest Y, Bottom the smallest.
type BBox struct {
	Left, Right float64
	Top, Bottom float64
}

// NewBBox returns an empty bounding box ready for expansion.
func NewBBox() BBox {
	return BBox{
		Left:   1e9,
		Right:  -1e9,
		Top:    -1e9,
		Bottom: 1e9,
	}
}

// IsEmpty reports whether the box has never been expanded.
func (b BBox) IsEmpty() bool {
	return b.Left > b.Right || b.Bottom > b.Top
}

// Expand grows the box to include the point (x, y).
func (b *BBox) Expand(x, y float64) {
	if x < b.Left {
		b.Left = x
	}
	if x > b.Right {
		b.Right = x
	}
	if y > b.Top {
		b.Top = y
	}
	if y < b.Bottom {
		b.Bottom = y
	}
}

// Union grows the box to include another box.
func (b *BBox) Union(other BBox) {
	if other.IsEmpty() {
		return
	}
	b.Expand(other.Left, other.Top)
	b.Expand(other.Right, other.Bottom)
}

// Width returns the horizontal extent.
func (b BBox) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent.
func (b BBox) Height() float64 {
	return b.Top - b.Bottom
}

// CourtyardCorners returns the five corners of a closed rectangle offset
// outward from the box by clearance, in drawing order starting at the
// top-left and repeating it to close the loop.
func (b BBox) CourtyardCorners(clearance float64) [5]Point {
	left := b.Left - clearance
	right := b.Right + clearance
	top := b.Top + clearance
	bottom := b.Bottom - clearance

	return [5]Point{
		{X: left, Y: top},
		{X: right, Y: top},
		{X: right, Y: bottom},
		{X: left, Y: bottom},
		{X: left, Y: top},
	}
}
