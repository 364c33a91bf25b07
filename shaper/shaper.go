// Package shaper lays text out with golang.org/x/image/font faces.
package shaper

import (
	"fmt"
	"os"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"mview/area"
	"mview/element"
)

// Style selects one of the faces of a family.
type Style int

const (
	Regular Style = iota
	Italic
	Bold
	BoldItalic
	Mono
	styles
)

// styleOf maps mathvariant to face style.
func styleOf(variant string) Style {
	switch variant {
	case "italic", "sans-serif-italic", "script":
		return Italic
	case "bold", "bold-sans-serif", "bold-fraktur", "double-struck":
		return Bold
	case "bold-italic", "sans-serif-bold-italic", "bold-script":
		return BoldItalic
	case "monospace":
		return Mono
	}
	return Regular
}

type faceKey struct {
	style Style
	size  fixed.Int26_6
}

// Device implements element.Device. Faces are created lazily and cached per
// style and size. Not safe for concurrent use.
type Device struct {
	log   *zap.Logger
	fonts [styles]*opentype.Font
	dpi   float64
	faces map[faceKey]font.Face
	fixed bool
}

// New returns device using Go fonts.
func New(dpi float64, log *zap.Logger) (*Device, error) {
	d := newDevice(dpi, log)
	for s, ttf := range [styles][]byte{goregular.TTF, goitalic.TTF, gobold.TTF, gobolditalic.TTF, gomono.TTF} {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("unable to parse embedded font: %w", err)
		}
		d.fonts[s] = f
	}
	return d, nil
}

// NewFixed returns device which uses single bitmap face of fixed size
// regardless of requested font, layout produced by it is fully
// deterministic.
func NewFixed(log *zap.Logger) *Device {
	d := newDevice(72, log)
	d.fixed = true
	return d
}

func newDevice(dpi float64, log *zap.Logger) *Device {
	if log == nil {
		log = zap.NewNop()
	}
	if dpi <= 0 {
		dpi = 72
	}
	return &Device{log: log.Named("shaper"), dpi: dpi, faces: make(map[faceKey]font.Face)}
}

// LoadFont replaces face used for style with font file at path.
func (d *Device) LoadFont(style Style, path string) error {
	if d.fixed {
		return fmt.Errorf("fixed device does not use font files")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read font: %w", err)
	}
	if !filetype.Is(data, "ttf") && !filetype.Is(data, "otf") {
		return fmt.Errorf("%s is not TrueType or OpenType font", path)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("unable to parse font %s: %w", path, err)
	}
	d.fonts[style] = f
	for k, face := range d.faces {
		if k.style == style {
			face.Close()
			delete(d.faces, k)
		}
	}
	return nil
}

// Close releases cached faces.
func (d *Device) Close() {
	for k, face := range d.faces {
		face.Close()
		delete(d.faces, k)
	}
}

// Face returns face for the font, creating it when necessary.
func (d *Device) Face(f element.Font) font.Face {
	if d.fixed {
		return basicfont.Face7x13
	}
	key := faceKey{style: styleOf(f.Variant), size: f.Size}
	if face, ok := d.faces[key]; ok {
		return face
	}
	face, err := opentype.NewFace(d.fonts[key.style], &opentype.FaceOptions{
		Size:    float64(f.Size) / 64,
		DPI:     d.dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		d.log.Warn("Unable to create face, using fixed font", zap.Stringer("size", f.Size), zap.Error(err))
		return basicfont.Face7x13
	}
	d.faces[key] = face
	return face
}

// glyph measures text drawn as one unit.
func glyph(face font.Face, text string) *area.Glyph {
	bounds, advance := font.BoundString(face, text)
	box := area.NewBoundingBox(advance, max(-bounds.Min.Y, 0), max(bounds.Max.Y, 0))
	return area.NewGlyph(text, face, box)
}

// String implements element.Device.
func (d *Device) String(f element.Font, text string) []area.Area {
	face := d.Face(f)
	chars := element.Chars(text)
	res := make([]area.Area, 0, len(chars))
	for _, c := range chars {
		res = append(res, glyph(face, c))
	}
	return res
}

// horizontalRules are characters stretched horizontally into plain rules.
var horizontalRules = map[string]bool{
	"¯": true, "‾": true, "_": true, "\u0332": true,
	"-": true, "−": true, "—": true, "―": true,
}

// Stretch implements element.Device. Vertical stretching scales the face,
// horizontal one turns bars into rules and centers anything else.
func (d *Device) Stretch(f element.Font, text string, span fixed.Int26_6, vertical bool) area.Area {
	g := glyph(d.Face(f), text)
	box := g.Box()
	if !vertical {
		if span <= box.Width {
			return g
		}
		if horizontalRules[text] {
			m := d.Metrics(f)
			mid := (box.Height - box.Depth) / 2
			return area.NewInk(area.NewBoundingBox(span, mid+m.Rule/2, m.Rule/2-mid))
		}
		return area.NewPadded(g, (span-box.Width)/2, area.NewBoundingBox(span, box.Height, box.Depth))
	}
	natural := box.Height + box.Depth
	if d.fixed || natural <= 0 || span <= natural {
		return g
	}
	// limit scaling, huge faces are useless and expensive
	scaled := f
	scaled.Size = min(f.Size.Mul(span).Div(natural), f.Size*8)
	return glyph(d.Face(scaled), text)
}

// Metrics implements element.Device.
func (d *Device) Metrics(f element.Font) element.Metrics {
	face := d.Face(f)
	fm := face.Metrics()
	em := fm.Height
	if !d.fixed {
		em = fixed.Int26_6(float64(f.Size) * d.dpi / 72)
	}
	ex := fm.XHeight
	if ex <= 0 {
		ex = em / 2
	}
	axis := ex / 2
	if b, _ := font.BoundString(face, "+"); b.Max.Y > b.Min.Y {
		axis = -(b.Min.Y + b.Max.Y) / 2
	}
	return element.Metrics{
		Em:      em,
		Ex:      ex,
		Axis:    axis,
		Rule:    max(em/18, fixed.I(1)),
		Ascent:  fm.Ascent,
		Descent: fm.Descent,
	}
}

// Cursor implements element.Device.
func (d *Device) Cursor(f element.Font) area.Area {
	fm := d.Face(f).Metrics()
	return area.NewCursor(fm.Ascent, fm.Descent)
}

// Dummy implements element.Device.
func (d *Device) Dummy(f element.Font) area.Area {
	m := d.Metrics(f)
	return area.NewInk(area.NewBoundingBox(m.Em/2, m.Ex, 0))
}
