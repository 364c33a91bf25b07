// Package render draws area trees onto raster images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"mview/area"
)

// Options control canvas appearance.
type Options struct {
	// Padding around formula, in pixels.
	Padding    int
	Foreground color.Color
	Background color.Color
	Cursor     color.Color
}

// DefaultOptions is black on white with a red caret.
func DefaultOptions() Options {
	return Options{
		Padding:    4,
		Foreground: color.Black,
		Background: color.White,
		Cursor:     color.RGBA{R: 0xff, A: 0xff},
	}
}

// Canvas is area.RenderingContext drawing into an NRGBA image. Canvas
// coordinates grow up from the bottom edge of the image.
type Canvas struct {
	img    *image.NRGBA
	w, h   int
	fg     color.Color
	caret  color.Color
	origin fixed.Point26_6

	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher
}

// New creates canvas large enough for box with padding on every side.
func New(box area.BoundingBox, opts Options) *Canvas {
	pad := max(opts.Padding, 0)
	depth := max(box.Depth, 0)
	height := max(box.Height, 0)
	w := max(box.Width.Ceil(), 1) + 2*pad
	h := max((height + depth).Ceil(), 1) + 2*pad

	bg := opts.Background
	if bg == nil {
		bg = color.Transparent
	}
	c := &Canvas{
		img:    imaging.New(w, h, bg),
		w:      w,
		h:      h,
		fg:     opts.Foreground,
		caret:  opts.Cursor,
		origin: fixed.Point26_6{X: fixed.I(pad), Y: fixed.I(pad) + depth},
	}
	if c.fg == nil {
		c.fg = color.Black
	}
	if c.caret == nil {
		c.caret = c.fg
	}
	c.scanner = rasterx.NewScannerGV(w, h, c.img, c.img.Bounds())
	c.filler = rasterx.NewFiller(w, h, c.scanner)
	c.dasher = rasterx.NewDasher(w, h, c.scanner)
	return c
}

// Origin returns point where formula origin must be placed so the whole box
// lands inside the padded image.
func (c *Canvas) Origin() (x, y fixed.Int26_6) {
	return c.origin.X, c.origin.Y
}

// Image returns drawing surface.
func (c *Canvas) Image() *image.NRGBA { return c.img }

func (c *Canvas) Foreground() color.Color     { return c.fg }
func (c *Canvas) SetForeground(clr color.Color) { c.fg = clr }

// toImage maps canvas point to image pixel space.
func (c *Canvas) toImage(x, y fixed.Int26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: x, Y: fixed.I(c.h) - y}
}

// rect returns image space rectangle of box placed at (x, y) as floats for
// rasterx.
func (c *Canvas) rect(x, y fixed.Int26_6, box area.BoundingBox) (minX, minY, maxX, maxY float64) {
	tl := c.toImage(x, y+box.Height)
	br := c.toImage(x+box.Width, y-box.Depth)
	return toFloat(tl.X), toFloat(tl.Y), toFloat(br.X), toFloat(br.Y)
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func (c *Canvas) Glyph(x, y fixed.Int26_6, g *area.Glyph) {
	face := g.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.fg),
		Face: face,
		Dot:  c.toImage(x+g.Offset, y),
	}
	d.DrawString(g.Text)
}

func (c *Canvas) Image(x, y fixed.Int26_6, img image.Image, box area.BoundingBox) {
	if img == nil {
		return
	}
	w, h := box.Width.Round(), (box.Height + box.Depth).Round()
	if w <= 0 || h <= 0 {
		return
	}
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}
	tl := c.toImage(x, y+box.Height)
	at := image.Pt(tl.X.Round(), tl.Y.Round())
	draw.Draw(c.img, image.Rectangle{Min: at, Max: at.Add(image.Pt(w, h))}, img, img.Bounds().Min, draw.Over)
}

func (c *Canvas) fill(x, y fixed.Int26_6, box area.BoundingBox, clr color.Color) {
	minX, minY, maxX, maxY := c.rect(x, y, box)
	if maxX <= minX || maxY <= minY {
		return
	}
	c.filler.Clear()
	c.filler.SetColor(clr)
	rasterx.AddRect(minX, minY, maxX, maxY, 0, c.filler)
	c.filler.Draw()
}

func (c *Canvas) Fill(x, y fixed.Int26_6, box area.BoundingBox) {
	c.fill(x, y, box, c.fg)
}

// Frame strokes outline of box, dashed frames use dashes of three line
// widths.
func (c *Canvas) Frame(x, y fixed.Int26_6, box area.BoundingBox, thickness fixed.Int26_6, dashed bool) {
	minX, minY, maxX, maxY := c.rect(x, y, box)
	if thickness <= 0 {
		thickness = fixed.I(1)
	}
	var dashes []float64
	if dashed {
		l := max(3*toFloat(thickness), 2)
		dashes = []float64{l, l}
	}
	c.dasher.Clear()
	c.dasher.SetStroke(thickness, 4*64, rasterx.ButtCap, nil, rasterx.FlatGap, rasterx.Miter, dashes, 0)
	c.dasher.SetColor(c.fg)
	rasterx.AddRect(minX, minY, maxX, maxY, 0, c.dasher)
	c.dasher.Draw()
}

// Cursor draws caret one pixel wide regardless of box width.
func (c *Canvas) Cursor(x, y fixed.Int26_6, box area.BoundingBox) {
	box.Width = max(box.Width, fixed.I(1))
	c.fill(x, y, box, c.caret)
}

// Format selects encoder of Encode.
type Format = imaging.Format

const (
	PNG  = imaging.PNG
	JPEG = imaging.JPEG
)

// Encode writes canvas image.
func (c *Canvas) Encode(w io.Writer, format Format, quality int) error {
	var opts []imaging.EncodeOption
	if format == JPEG && quality > 0 {
		opts = append(opts, imaging.JPEGQuality(quality))
	}
	if err := imaging.Encode(w, c.img, format, opts...); err != nil {
		return fmt.Errorf("unable to encode %s: %w", format, err)
	}
	return nil
}

// Draw renders a onto new canvas and returns it.
func Draw(a area.Area, opts Options) *Canvas {
	c := New(a.Box(), opts)
	x, y := c.Origin()
	a.Render(c, x, y)
	return c
}
