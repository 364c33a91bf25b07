package area

import (
	"image/color"

	"golang.org/x/image/math/fixed"
)

type container struct {
	content []Area
	origins []Point
	box     BoundingBox
	length  int
}

func (c *container) init(content []Area) {
	c.content = content
	c.origins = make([]Point, len(content))
	for _, a := range content {
		c.length += a.Length()
	}
}

func (c *container) Box() BoundingBox   { return c.box }
func (c *container) Length() int        { return c.length }
func (c *container) Size() int          { return len(c.content) }
func (c *container) Child(i int) Area   { return c.content[i] }
func (c *container) Origin(i int) Point { return c.origins[i] }
func (c *container) Owner() Owner       { return nil }

func (c *container) IndexOfPosition(fixed.Int26_6, fixed.Int26_6) (int, bool) {
	return 0, false
}

func (c *container) PositionOfIndex(int) (fixed.Int26_6, bool) {
	return 0, false
}

func (c *container) Render(rc RenderingContext, x, y fixed.Int26_6) {
	for i, a := range c.content {
		a.Render(rc, x+c.origins[i].X, y+c.origins[i].Y)
	}
}

func extent(v fixed.Int26_6) fixed.Int26_6 {
	if v == undefinedExtent {
		return 0
	}
	return v
}

// HorizontalArray lays children left to right on a common baseline.
type HorizontalArray struct{ container }

func NewHorizontalArray(content ...Area) *HorizontalArray {
	h := &HorizontalArray{}
	h.init(content)
	h.box = EmptyBox()
	for i, a := range content {
		h.origins[i] = Point{X: h.box.Width}
		h.box = h.box.Append(a.Box())
	}
	return h
}

func (h *HorizontalArray) Kind() string { return "h-array" }

// VerticalArray stacks children bottom to top. Baseline of the child with
// index ref becomes baseline of the array.
type VerticalArray struct {
	container
	ref int
}

func NewVerticalArray(ref int, content ...Area) *VerticalArray {
	v := &VerticalArray{ref: ref}
	v.init(content)
	if len(content) == 0 {
		v.box = EmptyBox()
		return v
	}
	if ref < 0 || ref >= len(content) {
		panic("area: vertical array reference out of range")
	}
	v.box = content[ref].Box()
	for i := ref + 1; i < len(content); i++ {
		prev, cur := content[i-1].Box(), content[i].Box()
		v.origins[i] = Point{Y: v.origins[i-1].Y + extent(prev.Height) + extent(cur.Depth)}
		v.box = v.box.Under(cur)
	}
	for i := ref - 1; i >= 0; i-- {
		next, cur := content[i+1].Box(), content[i].Box()
		v.origins[i] = Point{Y: v.origins[i+1].Y - extent(next.Depth) - extent(cur.Height)}
		v.box = v.box.Over(cur)
	}
	return v
}

func (v *VerticalArray) Kind() string { return "v-array" }

// Ref returns index of the child defining the baseline.
func (v *VerticalArray) Ref() int { return v.ref }

// OverlapArray places all children at the same origin.
type OverlapArray struct{ container }

func NewOverlapArray(content ...Area) *OverlapArray {
	o := &OverlapArray{}
	o.init(content)
	o.box = EmptyBox()
	for _, a := range content {
		o.box = o.box.Overlap(a.Box())
	}
	return o
}

func (o *OverlapArray) Kind() string { return "overlap" }

// single is base for areas decorating exactly one child.
type single struct {
	container
}

func (s *single) initSingle(child Area, origin Point) {
	s.init([]Area{child})
	s.origins[0] = origin
	s.box = child.Box()
}

// Shift moves its child vertically, positive shift goes up.
type Shift struct {
	single
	Shift fixed.Int26_6
}

func NewShift(child Area, shift fixed.Int26_6) *Shift {
	s := &Shift{Shift: shift}
	s.initSingle(child, Point{Y: shift})
	if s.box.Defined() {
		s.box.Height += shift
		s.box.Depth -= shift
	}
	return s
}

func (s *Shift) Kind() string { return "shift" }

// Padded places child at horizontal offset dx within explicitly given box.
type Padded struct {
	single
}

func NewPadded(child Area, dx fixed.Int26_6, box BoundingBox) *Padded {
	p := &Padded{}
	p.initSingle(child, Point{X: dx})
	p.box = box
	return p
}

func (p *Padded) Kind() string { return "padded" }

// Wrapper carries back reference to the element which produced the child.
type Wrapper struct {
	single
	owner Owner
}

func NewWrapper(child Area, owner Owner) *Wrapper {
	w := &Wrapper{owner: owner}
	w.initSingle(child, Point{})
	return w
}

func (w *Wrapper) Kind() string { return "wrapper" }
func (w *Wrapper) Owner() Owner { return w.owner }

// Color draws its child with given foreground color.
type Color struct {
	single
	Color color.Color
}

func NewColor(child Area, c color.Color) *Color {
	a := &Color{Color: c}
	a.initSingle(child, Point{})
	return a
}

func (c *Color) Kind() string { return "color" }

func (c *Color) Render(rc RenderingContext, x, y fixed.Int26_6) {
	old := rc.Foreground()
	rc.SetForeground(c.Color)
	c.content[0].Render(rc, x, y)
	rc.SetForeground(old)
}

// Background fills its box before drawing the child.
type Background struct {
	single
	Color color.Color
}

func NewBackground(child Area, c color.Color) *Background {
	a := &Background{Color: c}
	a.initSingle(child, Point{})
	return a
}

func (b *Background) Kind() string { return "background" }

func (b *Background) Render(rc RenderingContext, x, y fixed.Int26_6) {
	old := rc.Foreground()
	rc.SetForeground(b.Color)
	rc.Fill(x, y, b.box)
	rc.SetForeground(old)
	b.content[0].Render(rc, x, y)
}

// Hide keeps geometry of the child but draws nothing.
type Hide struct{ single }

func NewHide(child Area) *Hide {
	h := &Hide{}
	h.initSingle(child, Point{})
	return h
}

func (h *Hide) Kind() string { return "hide" }

func (h *Hide) Render(RenderingContext, fixed.Int26_6, fixed.Int26_6) {}

// Frame strokes rectangle along the box of its child.
type Frame struct {
	single
	Thickness fixed.Int26_6
	Dashed    bool
}

func NewFrame(child Area, thickness fixed.Int26_6, dashed bool) *Frame {
	f := &Frame{Thickness: thickness, Dashed: dashed}
	f.initSingle(child, Point{})
	return f
}

func (f *Frame) Kind() string { return "frame" }

func (f *Frame) Render(rc RenderingContext, x, y fixed.Int26_6) {
	f.content[0].Render(rc, x, y)
	rc.Frame(x, y, f.box, f.Thickness, f.Dashed)
}

// Ornament shows its child but hides its characters from caret indexing.
type Ornament struct{ single }

func NewOrnament(child Area) *Ornament {
	o := &Ornament{}
	o.initSingle(child, Point{})
	o.length = 0
	return o
}

func (o *Ornament) Kind() string { return "ornament" }
