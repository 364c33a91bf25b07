package element

import (
	"golang.org/x/image/math/fixed"

	"mview/area"
)

// slot formats i-th child or returns dummy when the child is missing.
func (e *Element) slot(ctx *Context, i int) area.Area {
	if c := e.Child(i); c != nil {
		return c.Format(ctx)
	}
	return formatDummy(e, ctx)
}

func definedBox(a area.Area) area.BoundingBox {
	b := a.Box()
	if !b.Defined() {
		return area.NewBoundingBox(b.Width, 0, 0)
	}
	return b
}

// alignIn places area horizontally inside box of given width.
func alignIn(a area.Area, width fixed.Int26_6, align string) area.Area {
	b := definedBox(a)
	var dx fixed.Int26_6
	switch align {
	case "left":
	case "right":
		dx = width - b.Width
	default:
		dx = (width - b.Width) / 2
	}
	return area.NewPadded(a, dx, area.NewBoundingBox(max(width, b.Width), b.Height, b.Depth))
}

func formatFraction(e *Element, ctx *Context) area.Area {
	m := ctx.Metrics()
	f := ctx.Font("normal")
	thickness := e.lengthAttr(ctx, "linethickness", m.Rule, m.Rule, map[string]fixed.Int26_6{
		"thin":   m.Rule / 2,
		"medium": m.Rule,
		"thick":  2 * m.Rule,
	})
	display := ctx.Frame().DisplayStyle
	if display {
		ctx.Frame().DisplayStyle = false
	} else {
		ctx.AddScriptLevel(1)
	}
	num, den := e.slot(ctx, 0), e.slot(ctx, 1)

	if e.boolAttr("bevelled", false) {
		nb, db := definedBox(num), definedBox(den)
		slash := ctx.Device.Stretch(f, "/", nb.VerticalExtent()+db.VerticalExtent(), true)
		return area.NewHorizontalArray(
			area.NewShift(num, m.Ex/2),
			area.NewOrnament(area.NewShift(slash, m.Axis-(slash.Box().Height-slash.Box().Depth)/2)),
			area.NewShift(den, -m.Ex/2),
		)
	}

	w := max(num.Box().Width, den.Box().Width)
	num = alignIn(num, w, e.tokenAttr("numalign", "center"))
	den = alignIn(den, w, e.tokenAttr("denomalign", "center"))
	gap := max(m.Rule, thickness)
	if display {
		gap *= 3
	}
	var rule area.Area
	if thickness > 0 {
		rule = area.NewInk(area.NewBoundingBox(w, thickness/2, thickness-thickness/2))
	} else {
		rule = area.NewSpace(area.NewBoundingBox(w, 0, 0))
	}
	stack := area.NewVerticalArray(2,
		den,
		area.NewSpace(area.NewBoundingBox(0, gap, 0)),
		rule,
		area.NewSpace(area.NewBoundingBox(0, gap, 0)),
		num,
	)
	pad := area.HorizontalSpace(m.Em / 18)
	return area.NewHorizontalArray(pad, area.NewShift(stack, m.Axis), pad)
}

func formatRadical(e *Element, ctx *Context) area.Area {
	if e.kind == KindSqrt {
		return formatRadicalOver(ctx, formatRow(e, ctx), nil)
	}
	base := e.slot(ctx, 0)
	ctx.Push()
	ctx.AddScriptLevel(2)
	ctx.Frame().DisplayStyle = false
	index := e.slot(ctx, 1)
	ctx.Pop()
	return formatRadicalOver(ctx, base, index)
}

// formatRadicalOver draws radical sign with overbar covering base and
// optional index raised to the left.
func formatRadicalOver(ctx *Context, base, index area.Area) area.Area {
	m := ctx.Metrics()
	bb := definedBox(base)
	if bb.Height < m.Ex {
		bb.Height = m.Ex
	}
	gap := m.Rule * 2
	if ctx.Frame().DisplayStyle {
		gap = m.Rule + m.Ex/4
	}
	top := bb.Height + gap + m.Rule
	sign := ctx.Device.Stretch(ctx.Font("normal"), "√", top+bb.Depth, true)
	sb := sign.Box()
	raise := top - sb.Height
	bar := area.NewShift(area.NewInk(area.NewBoundingBox(bb.Width, m.Rule, 0)), bb.Height+gap)
	content := []area.Area{
		area.NewOrnament(area.NewShift(sign, raise)),
		area.NewOverlapArray(base, bar),
	}
	if index != nil {
		ib := definedBox(index)
		kern := min(ib.Width, sb.Width/2)
		lift := raise + (sb.Height-sb.Depth)*3/5 + ib.Depth
		content = append([]area.Area{area.NewShift(index, lift), area.HorizontalSpace(-kern)}, content...)
	}
	return area.NewHorizontalArray(content...)
}

// scriptShifts computes vertical offsets of subscript and superscript
// relative to base baseline, sub offset is positive downwards.
func scriptShifts(e *Element, ctx *Context, m Metrics, base area.BoundingBox, sub, sup *area.BoundingBox) (fixed.Int26_6, fixed.Int26_6) {
	var subShift, supShift fixed.Int26_6
	if sub != nil {
		subShift = max(base.Depth+m.Ex/5, m.Ex/2, sub.Height-m.Ex*4/5)
		subShift = max(subShift, e.lengthAttr(ctx, "subscriptshift", m.Em, 0, nil))
	}
	if sup != nil {
		supShift = max(base.Height-m.Ex/2, m.Ex*4/5, sup.Depth+m.Ex/4)
		supShift = max(supShift, e.lengthAttr(ctx, "superscriptshift", m.Em, 0, nil))
	}
	if sub != nil && sup != nil {
		if gap := (supShift - sup.Depth) - (sub.Height - subShift); gap < 4*m.Rule {
			subShift += 4*m.Rule - gap
		}
	}
	return subShift, supShift
}

func formatScript(e *Element, ctx *Context) area.Area {
	m := ctx.Metrics()
	base := e.slot(ctx, 0)
	ctx.AddScriptLevel(1)
	ctx.Frame().DisplayStyle = false

	var sub, sup area.Area
	switch e.kind {
	case KindSub:
		sub = e.slot(ctx, 1)
	case KindSup:
		sup = e.slot(ctx, 1)
	default:
		sub, sup = e.slot(ctx, 1), e.slot(ctx, 2)
	}
	scripts := scriptColumn(e, ctx, m, definedBox(base), sub, sup, "left")
	return area.NewHorizontalArray(base, scripts, area.HorizontalSpace(m.Em/20))
}

// scriptColumn stacks optional sub and sup shifted against base box.
func scriptColumn(e *Element, ctx *Context, m Metrics, base area.BoundingBox, sub, sup area.Area, align string) area.Area {
	var subBox, supBox *area.BoundingBox
	var w fixed.Int26_6
	if sub != nil {
		b := definedBox(sub)
		subBox, w = &b, max(w, b.Width)
	}
	if sup != nil {
		b := definedBox(sup)
		supBox, w = &b, max(w, b.Width)
	}
	subShift, supShift := scriptShifts(e, ctx, m, base, subBox, supBox)
	var layers []area.Area
	if sub != nil {
		layers = append(layers, area.NewShift(alignIn(sub, w, align), -subShift))
	}
	if sup != nil {
		layers = append(layers, area.NewShift(alignIn(sup, w, align), supShift))
	}
	if len(layers) == 1 {
		return layers[0]
	}
	return area.NewOverlapArray(layers...)
}

func formatUnderOver(e *Element, ctx *Context) area.Area {
	m := ctx.Metrics()
	base := e.slot(ctx, 0)
	w := base.Box().Width

	script := func(i int, accentAttr string) (area.Area, bool) {
		c := e.Child(i)
		accent := e.boolAttr(accentAttr, c != nil && c.boolAttr("accent", false))
		ctx.Push()
		defer ctx.Pop()
		if !accent {
			ctx.AddScriptLevel(1)
		}
		ctx.Frame().DisplayStyle = false
		if c != nil && c.kind == KindOperator && c.boolAttr("stretchy", false) {
			return c.formatWide(ctx, w), accent
		}
		return e.slot(ctx, i), accent
	}

	var under, over area.Area
	var underAccent, overAccent bool
	switch e.kind {
	case KindUnder:
		under, underAccent = script(1, "accentunder")
	case KindOver:
		over, overAccent = script(1, "accent")
	default:
		under, underAccent = script(1, "accentunder")
		over, overAccent = script(2, "accent")
	}
	if under != nil {
		w = max(w, under.Box().Width)
	}
	if over != nil {
		w = max(w, over.Box().Width)
	}
	align := e.tokenAttr("align", "center")
	gap := func(accent bool) area.Area {
		g := m.Rule * 3
		if accent {
			g = m.Rule
		}
		return area.NewSpace(area.NewBoundingBox(0, g, 0))
	}
	var content []area.Area
	ref := 0
	if under != nil {
		content = append(content, alignIn(under, w, align), gap(underAccent))
		ref = 2
	}
	content = append(content, alignIn(base, w, align))
	if over != nil {
		content = append(content, gap(overAccent), alignIn(over, w, align))
	}
	return area.NewVerticalArray(ref, content...)
}

// formatWide lays out horizontally stretchy operator over given width.
func (e *Element) formatWide(ctx *Context, width fixed.Int26_6) area.Area {
	key := ctx.key()
	ctx.Push()
	defer ctx.Pop()
	f := e.tokenFont(ctx)
	a := ctx.Device.Stretch(f, e.TextContent(), width, false)
	if e.Marked(MarkCursor) {
		a = area.NewHorizontalArray(a, ctx.Device.Cursor(f))
	}
	e.setArea(ctx, key, a)
	return e.area
}

// formatMultiscripts lays out base with postscript pairs on the right and
// prescript pairs starting at ScriptSplit on the left.
func formatMultiscripts(e *Element, ctx *Context) area.Area {
	m := ctx.Metrics()
	base := e.slot(ctx, 0)
	ctx.AddScriptLevel(1)
	ctx.Frame().DisplayStyle = false
	bb := definedBox(base)

	split := e.split
	if split <= 0 || split > len(e.children) {
		split = len(e.children)
	}
	columns := func(from, to int, align string) []area.Area {
		var res []area.Area
		for i := from; i < to; i += 2 {
			sub := e.children[i].Format(ctx)
			var sup area.Area
			if i+1 < to {
				sup = e.children[i+1].Format(ctx)
			}
			res = append(res, scriptColumn(e, ctx, m, bb, sub, sup, align))
		}
		return res
	}
	content := columns(split, len(e.children), "right")
	content = append(content, base)
	content = append(content, columns(1, split, "left")...)
	content = append(content, area.HorizontalSpace(m.Em/20))
	return area.NewHorizontalArray(content...)
}
