// Package view is the entry point for applications: it owns the document,
// keeps element and area trees up to date and exposes geometric queries and
// cursor editing.
package view

import (
	"errors"
	"image/color"

	"go.uber.org/zap"
	"golang.org/x/image/math/fixed"

	"mview/area"
	"mview/builder"
	"mview/element"
	"mview/markup"
)

var (
	ErrNoRoot          = errors.New("view has no document")
	ErrNoCursor        = errors.New("no element holds the cursor")
	ErrNothingSelected = errors.New("nothing is selected")
	ErrEmptyClipboard  = builder.ErrEmptyClipboard
)

// DefaultFontSize is used until SetDefaultFontSize is called.
var DefaultFontSize = fixed.I(16)

// View binds document, builder and formatting device together. Coordinates
// of all queries are relative to the origin of the root area: X grows to the
// right, Y grows upwards from the baseline.
type View struct {
	log *zap.Logger
	reg *builder.Registry
	dev element.Device

	doc    *markup.Document
	b      *builder.Builder
	images builder.ImageLoader

	root *element.Element
	area area.Area

	fontSize  fixed.Int26_6
	width     fixed.Int26_6
	selection color.Color
	frozen    int
}

// New creates empty view. Registry may be shared between views.
func New(dev element.Device, reg *builder.Registry, log *zap.Logger) *View {
	if log == nil {
		log = zap.NewNop()
	}
	return &View{
		log:      log.Named("view"),
		reg:      reg,
		dev:      dev,
		fontSize: DefaultFontSize,
	}
}

// Load makes doc the document of the view, previous document is released.
func (v *View) Load(doc *markup.Document) {
	v.Reset()
	v.doc = doc
	v.b = builder.New(doc, v.reg, v.log)
	v.b.SetImageLoader(v.images)
}

// LoadFile reads document from path.
func (v *View) LoadFile(path string) error {
	doc, err := markup.Load(path)
	if err != nil {
		return err
	}
	v.Load(doc)
	return nil
}

// LoadString parses document from s.
func (v *View) LoadString(s string) error {
	doc, err := markup.ParseString(s)
	if err != nil {
		return err
	}
	v.Load(doc)
	return nil
}

// Reset forgets the document.
func (v *View) Reset() {
	if v.b != nil {
		v.b.Close()
	}
	v.doc, v.b, v.root, v.area = nil, nil, nil, nil
}

// Document returns current document, nil when nothing is loaded.
func (v *View) Document() *markup.Document { return v.doc }

// Builder returns builder of the current document.
func (v *View) Builder() *builder.Builder { return v.b }

// SetImageLoader installs loader for mglyph pictures of documents loaded
// afterwards and of the current one.
func (v *View) SetImageLoader(l builder.ImageLoader) {
	v.images = l
	if v.b != nil {
		v.b.SetImageLoader(l)
	}
}

func (v *View) DefaultFontSize() fixed.Int26_6 { return v.fontSize }

func (v *View) SetDefaultFontSize(size fixed.Int26_6) {
	if size <= 0 || size == v.fontSize {
		return
	}
	v.fontSize = size
	v.invalidate()
}

func (v *View) AvailableWidth() fixed.Int26_6 { return v.width }

func (v *View) SetAvailableWidth(width fixed.Int26_6) {
	if width == v.width {
		return
	}
	v.width = width
	v.invalidate()
}

// SetSelectionColor changes background of selected elements.
func (v *View) SetSelectionColor(c color.Color) {
	v.selection = c
	v.invalidate()
}

func (v *View) invalidate() {
	if v.root != nil {
		v.root.InvalidateLayout()
	}
}

// Freeze stops rebuilding and reformatting until matching Thaw, queries are
// answered from the last formatted trees.
func (v *View) Freeze() { v.frozen++ }

// Thaw undoes one Freeze. Returns true when the view is no longer frozen.
func (v *View) Thaw() bool {
	if v.frozen == 0 {
		panic("view: thaw without freeze")
	}
	v.frozen--
	return v.frozen == 0
}

func (v *View) Frozen() bool { return v.frozen > 0 }

// RootElement returns up to date root of the element tree, nil when no
// document is loaded.
func (v *View) RootElement() *element.Element {
	if v.b == nil {
		return nil
	}
	if v.frozen == 0 {
		v.root = v.b.RootElement()
	}
	return v.root
}

// RootArea formats the root element and returns its area.
func (v *View) RootArea() area.Area {
	if v.frozen > 0 {
		return v.area
	}
	root := v.RootElement()
	if root == nil {
		v.area = nil
		return nil
	}
	ctx := element.NewContext(v.dev, v.fontSize, v.log)
	ctx.AvailableWidth = v.width
	if v.selection != nil {
		ctx.SelectionColor = v.selection
	}
	v.area = root.Format(ctx)
	return v.area
}

// BoundingBox returns box of the root area.
func (v *View) BoundingBox() area.BoundingBox {
	if a := v.RootArea(); a != nil {
		return a.Box()
	}
	return area.EmptyBox()
}

// Render draws formula with its origin placed at (x, y).
func (v *View) Render(rc area.RenderingContext, x, y fixed.Int26_6) error {
	a := v.RootArea()
	if a == nil {
		return ErrNoRoot
	}
	a.Render(rc, x, y)
	return nil
}

// String dumps element tree, used for diagnostics.
func (v *View) String() string {
	root := v.RootElement()
	if root == nil {
		return "<empty>"
	}
	return element.Dump(root)
}

func (v *View) requireRoot() error {
	if v.RootElement() == nil {
		return ErrNoRoot
	}
	return nil
}
