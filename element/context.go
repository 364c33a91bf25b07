package element

import (
	"image/color"
	"math"

	"go.uber.org/zap"
	"golang.org/x/image/math/fixed"

	"mview/area"
	"mview/attr"
)

// Font selects face used for shaping.
type Font struct {
	Size    fixed.Int26_6
	Variant string
}

// Metrics are font dependent distances.
type Metrics struct {
	Em, Ex fixed.Int26_6
	// Axis is height of the math axis above baseline.
	Axis fixed.Int26_6
	// Rule is default rule thickness.
	Rule fixed.Int26_6
	// Ascent and Descent of the face, positive values.
	Ascent, Descent fixed.Int26_6
}

// Device turns text into areas.
type Device interface {
	// String shapes text producing exactly one area per logical character.
	String(f Font, text string) []area.Area
	// Stretch shapes single character stretched to cover span, vertically or
	// horizontally. Device may return unstretched glyph.
	Stretch(f Font, text string, span fixed.Int26_6, vertical bool) area.Area
	Metrics(f Font) Metrics
	// Cursor returns caret area fitting the font.
	Cursor(f Font) area.Area
	// Dummy returns area standing for elements which cannot be laid out.
	Dummy(f Font) area.Area
}

// Frame is formatting state inherited down the element tree.
type Frame struct {
	Size                 fixed.Int26_6
	ScriptLevel          int
	ScriptMinSize        fixed.Int26_6
	ScriptSizeMultiplier float64
	DisplayStyle         bool
}

// frameKey identifies inherited state an area was produced in. Every field
// of Frame takes part, so a change in any of them forces re-layout.
type frameKey Frame

// Context carries formatting state. It is created per format pass.
type Context struct {
	Device Device
	// AvailableWidth resolves relative table widths, zero means unlimited.
	AvailableWidth fixed.Int26_6
	SelectionColor color.Color
	log            *zap.Logger
	frames         []Frame
}

// NewContext creates context with the root frame of given font size.
func NewContext(dev Device, size fixed.Int26_6, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	return &Context{
		Device:         dev,
		SelectionColor: color.RGBA{R: 0xad, G: 0xd8, B: 0xe6, A: 0xff},
		log:            log,
		frames: []Frame{{
			Size:                 size,
			ScriptMinSize:        fixed.I(8),
			ScriptSizeMultiplier: 0.71,
		}},
	}
}

// Frame returns current frame.
func (c *Context) Frame() *Frame { return &c.frames[len(c.frames)-1] }

// Push duplicates current frame.
func (c *Context) Push() {
	c.frames = append(c.frames, *c.Frame())
}

func (c *Context) Pop() {
	if len(c.frames) == 1 {
		panic("element: pop of the root formatting frame")
	}
	c.frames = c.frames[:len(c.frames)-1]
}

func (c *Context) key() frameKey {
	return frameKey(*c.Frame())
}

// SetScriptLevel changes script level scaling font size accordingly.
func (c *Context) SetScriptLevel(level int) {
	f := c.Frame()
	if level < 0 {
		level = 0
	}
	delta := level - f.ScriptLevel
	f.ScriptLevel = level
	if delta == 0 {
		return
	}
	size := fixed.Int26_6(math.Round(float64(f.Size) * math.Pow(f.ScriptSizeMultiplier, float64(delta))))
	if delta > 0 && size < f.ScriptMinSize {
		size = min(f.ScriptMinSize, f.Size)
	}
	f.Size = size
}

// AddScriptLevel is SetScriptLevel relative to current level.
func (c *Context) AddScriptLevel(delta int) {
	c.SetScriptLevel(c.Frame().ScriptLevel + delta)
}

// Font returns font for given variant at current size.
func (c *Context) Font(variant string) Font {
	return Font{Size: c.Frame().Size, Variant: variant}
}

// Metrics of the normal font at current size.
func (c *Context) Metrics() Metrics {
	return c.Device.Metrics(c.Font("normal"))
}

// AttrMetrics are used to resolve lengths against current font.
func (c *Context) AttrMetrics(base fixed.Int26_6) attr.Metrics {
	m := c.Metrics()
	return attr.Metrics{Em: m.Em, Ex: m.Ex, Base: base}
}

// Length resolves attribute holding attr.Length, returning def when the
// attribute is unset or holds something else.
func (c *Context) Length(v attr.Value, base, def fixed.Int26_6) fixed.Int26_6 {
	l, err := attr.As[attr.Length](v)
	if err != nil {
		return def
	}
	return l.Resolve(c.AttrMetrics(base))
}
