package element

import (
	"image/color"
	"strings"

	"golang.org/x/image/math/fixed"

	"mview/area"
	"mview/attr"
)

type formatter func(e *Element, ctx *Context) area.Area

var formatters map[Kind]formatter

func init() {
	formatters = map[Kind]formatter{
		KindDummy:        formatDummy,
		KindMath:         formatMath,
		KindIdentifier:   formatToken,
		KindNumber:       formatToken,
		KindOperator:     formatToken,
		KindText:         formatToken,
		KindString:       formatToken,
		KindSpace:        formatSpace,
		KindRow:          formatRow,
		KindStyle:        formatStyle,
		KindError:        formatError,
		KindPadded:       formatPadded,
		KindPhantom:      formatPhantom,
		KindEnclose:      formatEnclose,
		KindAction:       formatAction,
		KindFraction:     formatFraction,
		KindSqrt:         formatRadical,
		KindRoot:         formatRadical,
		KindSub:          formatScript,
		KindSup:          formatScript,
		KindSubsup:       formatScript,
		KindUnder:        formatUnderOver,
		KindOver:         formatUnderOver,
		KindUnderover:    formatUnderOver,
		KindMultiscripts: formatMultiscripts,
		KindTable:        formatTable,
		KindTableRow:     formatRow,
		KindCell:         formatRow,
	}
}

// Format returns area of the element, reusing cached one when neither the
// element nor anything below it changed since it was produced in the same
// formatting frame.
func (e *Element) Format(ctx *Context) area.Area {
	key := ctx.key()
	if e.area != nil && !e.DirtyLayout() && e.formedAt == key {
		return e.area
	}
	ctx.Push()
	a := formatters[e.kind](e, ctx)
	ctx.Pop()
	e.setArea(ctx, key, a)
	return e.area
}

func (e *Element) setArea(ctx *Context, key frameKey, a area.Area) {
	if c, ok := e.colorAttr("mathbackground"); ok {
		a = area.NewBackground(a, c)
	}
	if c, ok := e.colorAttr("mathcolor"); ok {
		a = area.NewColor(a, c)
	}
	if e.Marked(MarkSelected) {
		a = area.NewBackground(a, ctx.SelectionColor)
	}
	e.area = area.NewWrapper(a, e)
	e.formedAt = key
	e.flags &^= flagDirtyLayout
}

// InvalidateLayout forces re-layout of the whole subtree.
func (e *Element) InvalidateLayout() {
	e.invalidateSubtree()
	e.SetDirtyLayout()
}

// attribute accessors used by formatters, all fall back to def when the
// attribute is not set or holds unexpected type

func (e *Element) tokenAttr(name, def string) string {
	if t, err := attr.As[attr.Token](e.attrs[name]); err == nil {
		return string(t)
	}
	if s, err := attr.As[string](e.attrs[name]); err == nil {
		return s
	}
	return def
}

func (e *Element) boolAttr(name string, def bool) bool {
	if b, err := attr.As[bool](e.attrs[name]); err == nil {
		return b
	}
	return def
}

func (e *Element) intAttr(name string, def int) int {
	if i, err := attr.As[int](e.attrs[name]); err == nil {
		return i
	}
	return def
}

func (e *Element) colorAttr(name string) (color.Color, bool) {
	c, err := attr.As[color.RGBA](e.attrs[name])
	if err != nil || c == attr.Transparent {
		return nil, false
	}
	return c, true
}

// lengthAttr resolves length attribute, keyword values map through named.
func (e *Element) lengthAttr(ctx *Context, name string, base, def fixed.Int26_6, named map[string]fixed.Int26_6) fixed.Int26_6 {
	v := e.attrs[name]
	if t, err := attr.As[attr.Token](v); err == nil {
		if d, ok := named[string(t)]; ok {
			return d
		}
		return def
	}
	return ctx.Length(v, base, def)
}

func formatDummy(e *Element, ctx *Context) area.Area {
	return ctx.Device.Dummy(ctx.Font("normal"))
}

// formatChildren formats every child in current frame.
func formatChildren(e *Element, ctx *Context) []area.Area {
	res := make([]area.Area, 0, len(e.children))
	for _, c := range e.children {
		res = append(res, c.Format(ctx))
	}
	return res
}

// formatRow lays children out left to right, stretching stretchy operators
// to the vertical extent of their siblings.
func formatRow(e *Element, ctx *Context) area.Area {
	areas := formatChildren(e, ctx)
	var stretchy []int
	box := area.EmptyBox()
	for i, c := range e.children {
		if c.isStretchy() {
			stretchy = append(stretchy, i)
			continue
		}
		box = box.Append(areas[i].Box())
	}
	if len(stretchy) > 0 {
		height, depth := box.Height, box.Depth
		if !box.Defined() {
			m := ctx.Metrics()
			height, depth = m.Ascent, m.Descent
		}
		for _, i := range stretchy {
			areas[i] = e.children[i].formatStretched(ctx, height, depth)
		}
	}
	return area.NewHorizontalArray(areas...)
}

func formatMath(e *Element, ctx *Context) area.Area {
	f := ctx.Frame()
	f.DisplayStyle = e.tokenAttr("display", "inline") == "block"
	if e.attrs["displaystyle"].IsSet() {
		f.DisplayStyle = e.boolAttr("displaystyle", f.DisplayStyle)
	}
	return formatRow(e, ctx)
}

var mathSizes = map[string]float64{"small": 0.71, "normal": 1, "big": 1.41}

func formatStyle(e *Element, ctx *Context) area.Area {
	f := ctx.Frame()
	if e.attrs["displaystyle"].IsSet() {
		f.DisplayStyle = e.boolAttr("displaystyle", f.DisplayStyle)
	}
	if v := e.attrs["scriptsizemultiplier"]; v.IsSet() {
		if l, err := attr.As[attr.Length](v); err == nil && l.Unit == attr.UnitNone {
			f.ScriptSizeMultiplier = l.Value
		}
	}
	f.ScriptMinSize = e.lengthAttr(ctx, "scriptminsize", f.Size, f.ScriptMinSize, nil)
	switch v := e.attrs["scriptlevel"]; {
	case !v.IsSet():
	case isIncrement(v):
		ctx.AddScriptLevel(int(attr.MustAs[attr.Increment](v)))
	default:
		ctx.SetScriptLevel(e.intAttr("scriptlevel", f.ScriptLevel))
	}
	applyMathSize(e, ctx)
	return formatRow(e, ctx)
}

func isIncrement(v attr.Value) bool {
	_, err := attr.As[attr.Increment](v)
	return err == nil
}

func applyMathSize(e *Element, ctx *Context) {
	f := ctx.Frame()
	v := e.attrs["mathsize"]
	if !v.IsSet() {
		return
	}
	if t, err := attr.As[attr.Token](v); err == nil {
		if k, ok := mathSizes[string(t)]; ok {
			f.Size = fixed.Int26_6(float64(f.Size) * k)
		}
		return
	}
	f.Size = ctx.Length(v, f.Size, f.Size)
}

func formatError(e *Element, ctx *Context) area.Area {
	m := ctx.Metrics()
	a := area.NewFrame(formatRow(e, ctx), m.Rule, false)
	return area.NewBackground(a, color.RGBA{R: 0xff, G: 0xe4, B: 0xe1, A: 0xff})
}

func formatPhantom(e *Element, ctx *Context) area.Area {
	return area.NewHide(formatRow(e, ctx))
}

func formatAction(e *Element, ctx *Context) area.Area {
	areas := formatChildren(e, ctx)
	if len(areas) == 0 {
		return formatDummy(e, ctx)
	}
	sel := e.intAttr("selection", 1)
	if sel < 1 || sel > len(areas) {
		sel = 1
	}
	return areas[sel-1]
}

func formatSpace(e *Element, ctx *Context) area.Area {
	f := ctx.Frame()
	w := e.lengthAttr(ctx, "width", f.Size, 0, nil)
	h := e.lengthAttr(ctx, "height", f.Size, 0, nil)
	d := e.lengthAttr(ctx, "depth", f.Size, 0, nil)
	return area.NewSpace(area.NewBoundingBox(w, h, d))
}

// formatPadded overrides extents of the content. Percentages and plain
// numbers are relative to the corresponding extent of the content.
func formatPadded(e *Element, ctx *Context) area.Area {
	content := formatRow(e, ctx)
	box := content.Box()
	if !box.Defined() {
		box = area.NewBoundingBox(box.Width, 0, 0)
	}
	dim := func(name string, base fixed.Int26_6) fixed.Int26_6 {
		v := e.attrs[name]
		if !v.IsSet() {
			return base
		}
		return ctx.Length(v, base, base)
	}
	lspace := dim("lspace", 0)
	res := area.NewBoundingBox(dim("width", box.Width), dim("height", box.Height), dim("depth", box.Depth))
	return area.NewPadded(content, lspace, res)
}

// formatEnclose draws notations around the content.
func formatEnclose(e *Element, ctx *Context) area.Area {
	m := ctx.Metrics()
	content := formatRow(e, ctx)
	pad := m.Rule * 3
	box := content.Box()
	if !box.Defined() {
		box = area.NewBoundingBox(box.Width, 0, 0)
	}
	inner := area.NewPadded(content, pad, area.NewBoundingBox(box.Width+2*pad, box.Height+pad, box.Depth+pad))
	ib := inner.Box()
	var (
		layers        = []area.Area{inner}
		frame         bool
		top, bottom   bool
		left, right   bool
		horiz, vertic bool
	)
	for _, n := range strings.Fields(e.tokenAttr("notation", "longdiv")) {
		switch n {
		case "box", "roundedbox", "circle":
			frame = true
		case "top", "longdiv", "actuarial":
			top = true
			left = left || n == "longdiv"
			right = right || n == "actuarial"
		case "bottom":
			bottom = true
		case "left":
			left = true
		case "right":
			right = true
		case "horizontalstrike":
			horiz = true
		case "verticalstrike":
			vertic = true
		case "radical":
			return formatRadicalOver(ctx, content, nil)
		}
	}
	rule := m.Rule
	if top {
		layers = append(layers, area.NewShift(area.NewInk(area.NewBoundingBox(ib.Width, rule, 0)), ib.Height-rule))
	}
	if bottom {
		layers = append(layers, area.NewShift(area.NewInk(area.NewBoundingBox(ib.Width, 0, rule)), rule-ib.Depth))
	}
	if left {
		layers = append(layers, area.NewInk(area.NewBoundingBox(rule, ib.Height, ib.Depth)))
	}
	if right {
		layers = append(layers, area.NewPadded(area.NewInk(area.NewBoundingBox(rule, ib.Height, ib.Depth)), ib.Width-rule, ib))
	}
	if horiz {
		layers = append(layers, area.NewShift(area.NewInk(area.NewBoundingBox(ib.Width, rule/2, rule-rule/2)), m.Axis))
	}
	if vertic {
		layers = append(layers, area.NewPadded(area.NewInk(area.NewBoundingBox(rule, ib.Height, ib.Depth)), (ib.Width-rule)/2, ib))
	}
	var a area.Area = area.NewOverlapArray(layers...)
	if frame {
		a = area.NewFrame(a, rule, false)
	}
	return a
}
