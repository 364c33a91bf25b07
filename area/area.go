package area

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Point is position relative to the origin of some area. X grows to the
// right, Y grows upwards from the baseline.
type Point struct {
	X, Y fixed.Int26_6
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Owner is whatever produced a wrapper area. Areas keep it only as a lookup
// key and never manage its lifetime.
type Owner interface {
	Name() string
}

// Area is immutable node of the layout tree. Areas are created on every
// format of their owner and are never modified afterwards.
type Area interface {
	// Box returns metric of the area.
	Box() BoundingBox
	// Length is number of logical characters the area represents.
	Length() int
	// Size is number of direct children.
	Size() int
	// Child returns i-th direct child.
	Child(i int) Area
	// Origin returns offset of i-th child origin relative to this area origin.
	Origin(i int) Point
	// Owner returns element back reference for wrapper areas, nil otherwise.
	Owner() Owner
	// Render draws the area with its origin placed at (x, y).
	Render(rc RenderingContext, x, y fixed.Int26_6)
	// IndexOfPosition returns caret index (0..Length) closest to the point
	// relative to area origin. Only meaningful for leaves.
	IndexOfPosition(x, y fixed.Int26_6) (int, bool)
	// PositionOfIndex returns horizontal offset of caret index.
	PositionOfIndex(index int) (fixed.Int26_6, bool)
	// Kind is short name used in dumps.
	Kind() string
}

// RenderingContext receives drawing requests. Coordinates are absolute with
// Y growing upwards, implementations are responsible for mapping them.
type RenderingContext interface {
	Glyph(x, y fixed.Int26_6, g *Glyph)
	Image(x, y fixed.Int26_6, img image.Image, box BoundingBox)
	Fill(x, y fixed.Int26_6, box BoundingBox)
	Frame(x, y fixed.Int26_6, box BoundingBox, thickness fixed.Int26_6, dashed bool)
	Cursor(x, y fixed.Int26_6, box BoundingBox)
	Foreground() color.Color
	SetForeground(c color.Color)
}

// leaf provides childless defaults.
type leaf struct {
	box BoundingBox
}

func (l *leaf) Box() BoundingBox { return l.box }
func (l *leaf) Length() int      { return 0 }
func (l *leaf) Size() int        { return 0 }
func (l *leaf) Owner() Owner     { return nil }

func (l *leaf) Child(int) Area {
	panic("area: leaf has no children")
}

func (l *leaf) Origin(int) Point {
	panic("area: leaf has no children")
}

func (l *leaf) IndexOfPosition(fixed.Int26_6, fixed.Int26_6) (int, bool) {
	return 0, false
}

func (l *leaf) PositionOfIndex(index int) (fixed.Int26_6, bool) {
	if index == 0 {
		return 0, true
	}
	return 0, false
}

// Glyph is single shaped character, possibly followed by combining marks.
type Glyph struct {
	leaf
	Text string
	Face font.Face
	// Offset is horizontal shift of the drawing relative to the origin,
	// used by italic correction and combining placement.
	Offset fixed.Int26_6
}

func NewGlyph(text string, face font.Face, box BoundingBox) *Glyph {
	return &Glyph{leaf: leaf{box: box}, Text: text, Face: face}
}

func (g *Glyph) Length() int  { return 1 }
func (g *Glyph) Kind() string { return "glyph" }

func (g *Glyph) Render(rc RenderingContext, x, y fixed.Int26_6) {
	rc.Glyph(x, y, g)
}

func (g *Glyph) IndexOfPosition(x, y fixed.Int26_6) (int, bool) {
	if x < 0 || x > g.box.Width {
		return 0, false
	}
	if x*2 < g.box.Width {
		return 0, true
	}
	return 1, true
}

func (g *Glyph) PositionOfIndex(index int) (fixed.Int26_6, bool) {
	switch index {
	case 0:
		return 0, true
	case 1:
		return g.box.Width, true
	}
	return 0, false
}

// Picture is raster image placed on the baseline.
type Picture struct {
	leaf
	Img image.Image
}

func NewPicture(img image.Image, box BoundingBox) *Picture {
	return &Picture{leaf: leaf{box: box}, Img: img}
}

func (p *Picture) Length() int  { return 1 }
func (p *Picture) Kind() string { return "image" }

func (p *Picture) Render(rc RenderingContext, x, y fixed.Int26_6) {
	rc.Image(x, y, p.Img, p.box)
}

func (p *Picture) IndexOfPosition(x, y fixed.Int26_6) (int, bool) {
	if x*2 < p.box.Width {
		return 0, true
	}
	return 1, true
}

func (p *Picture) PositionOfIndex(index int) (fixed.Int26_6, bool) {
	switch index {
	case 0:
		return 0, true
	case 1:
		return p.box.Width, true
	}
	return 0, false
}

// Space is invisible box.
type Space struct{ leaf }

func NewSpace(box BoundingBox) *Space { return &Space{leaf{box: box}} }

// HorizontalSpace is space of given width and zero height and depth.
func HorizontalSpace(width fixed.Int26_6) *Space {
	return NewSpace(NewBoundingBox(width, 0, 0))
}

func (s *Space) Kind() string { return "space" }

func (s *Space) Render(RenderingContext, fixed.Int26_6, fixed.Int26_6) {}

// Ink is solid rectangle covering its box, used for rules.
type Ink struct{ leaf }

func NewInk(box BoundingBox) *Ink { return &Ink{leaf{box: box}} }

func (i *Ink) Kind() string { return "ink" }

func (i *Ink) Render(rc RenderingContext, x, y fixed.Int26_6) {
	rc.Fill(x, y, i.box)
}

// Cursor is zero width caret marker.
type Cursor struct{ leaf }

func NewCursor(height, depth fixed.Int26_6) *Cursor {
	return &Cursor{leaf{box: NewBoundingBox(0, height, depth)}}
}

func (c *Cursor) Kind() string { return "cursor" }

func (c *Cursor) Render(rc RenderingContext, x, y fixed.Int26_6) {
	rc.Cursor(x, y, c.box)
}
