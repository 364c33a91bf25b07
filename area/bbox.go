package area

import (
	"fmt"
	"math"

	"golang.org/x/image/math/fixed"
)

// undefinedExtent marks vertical extent which has not been set yet. It is
// the smallest representable value so that max() folds ignore it.
const undefinedExtent = fixed.Int26_6(math.MinInt32)

// BoundingBox is box metric of the area: width, height above the baseline and
// depth below it. It is a value, every operation returns new box.
type BoundingBox struct {
	Width  fixed.Int26_6
	Height fixed.Int26_6
	Depth  fixed.Int26_6
}

// NewBoundingBox returns defined box.
func NewBoundingBox(width, height, depth fixed.Int26_6) BoundingBox {
	return BoundingBox{Width: width, Height: height, Depth: depth}
}

// EmptyBox returns box of zero width with undefined vertical extent.
func EmptyBox() BoundingBox {
	return BoundingBox{Height: undefinedExtent, Depth: undefinedExtent}
}

// Defined reports whether vertical extent of the box has been set.
func (b BoundingBox) Defined() bool {
	return b.Height != undefinedExtent && b.Depth != undefinedExtent
}

// VerticalExtent is height plus depth, zero for undefined boxes.
func (b BoundingBox) VerticalExtent() fixed.Int26_6 {
	if !b.Defined() {
		return 0
	}
	return b.Height + b.Depth
}

// Append places box to the right of b.
func (b BoundingBox) Append(box BoundingBox) BoundingBox {
	b.Width += box.Width
	b.Height = max(b.Height, box.Height)
	b.Depth = max(b.Depth, box.Depth)
	return b
}

// Overlap places box on top of b sharing the same origin.
func (b BoundingBox) Overlap(box BoundingBox) BoundingBox {
	b.Width = max(b.Width, box.Width)
	switch {
	case !box.Defined():
	case b.Defined():
		b.Height = max(b.Height, box.Height)
		b.Depth = max(b.Depth, box.Depth)
	default:
		b.Height, b.Depth = box.Height, box.Depth
	}
	return b
}

// Under puts b under box: vertical extent of box is added to the height.
func (b BoundingBox) Under(box BoundingBox) BoundingBox {
	b.Width = max(b.Width, box.Width)
	switch {
	case !box.Defined():
	case b.Defined():
		b.Height += box.Height + box.Depth
	default:
		b.Height, b.Depth = box.Height+box.Depth, 0
	}
	return b
}

// Over puts b over box: vertical extent of box is added to the depth.
func (b BoundingBox) Over(box BoundingBox) BoundingBox {
	b.Width = max(b.Width, box.Width)
	switch {
	case !box.Defined():
	case b.Defined():
		b.Depth += box.Height + box.Depth
	default:
		b.Height, b.Depth = 0, box.Height+box.Depth
	}
	return b
}

// Contains reports whether point (x, y) relative to the box origin lies within
// the box. y grows upwards from the baseline.
func (b BoundingBox) Contains(x, y fixed.Int26_6) bool {
	if !b.Defined() {
		return false
	}
	return x >= 0 && x <= b.Width && y >= -b.Depth && y <= b.Height
}

func (b BoundingBox) String() string {
	if !b.Defined() {
		return fmt.Sprintf("[w=%s undefined]", b.Width)
	}
	return fmt.Sprintf("[w=%s h=%s d=%s]", b.Width, b.Height, b.Depth)
}
