package element

import (
	"golang.org/x/image/math/fixed"

	"mview/area"
	"mview/attr"
)

func (e *Element) variant() string {
	def := "normal"
	if e.kind == KindIdentifier && e.ContentLength() == 1 {
		def = "italic"
	}
	return e.tokenAttr("mathvariant", def)
}

func (e *Element) tokenFont(ctx *Context) Font {
	applyMathSize(e, ctx)
	return ctx.Font(e.variant())
}

// shapeContent produces one area per logical character with caret marker
// spliced at the cursor position.
func (e *Element) shapeContent(ctx *Context, f Font) []area.Area {
	var (
		res    []area.Area
		cursor = e.Marked(MarkCursor)
		caret  = func() { res = append(res, ctx.Device.Cursor(f)) }
	)
	if cursor && e.cursorOffset < 0 {
		caret()
	}
	for i, r := range e.runs {
		var pieces []area.Area
		switch r.Kind {
		case RunText, RunGlyph:
			pieces = ctx.Device.String(f, r.Text)
		case RunImage:
			pieces = []area.Area{e.picture(ctx, r)}
		}
		for j, p := range pieces {
			res = append(res, p)
			if cursor && i == e.cursorChild && j == e.cursorOffset {
				caret()
			}
		}
	}
	return res
}

func (e *Element) picture(ctx *Context, r Run) area.Area {
	if r.Image == nil {
		return ctx.Device.Dummy(ctx.Font("normal"))
	}
	b := r.Image.Bounds()
	w, h := fixed.I(b.Dx()), fixed.I(b.Dy())
	if r.Width > 0 {
		w = fixed.Int26_6(r.Width * 64)
	}
	if r.Height > 0 {
		h = fixed.Int26_6(r.Height * 64)
	}
	return area.NewPicture(r.Image, area.NewBoundingBox(w, h, 0))
}

// operatorSpacing returns space around operator, none inside scripts.
func (e *Element) operatorSpacing(ctx *Context) (fixed.Int26_6, fixed.Int26_6) {
	if e.kind != KindOperator || ctx.Frame().ScriptLevel > 0 {
		return 0, 0
	}
	m := ctx.Metrics()
	base := ctx.Frame().Size
	l := ctx.Length(e.attrs["lspace"], base, m.Em*5/18)
	r := ctx.Length(e.attrs["rspace"], base, m.Em*5/18)
	return l, r
}

func formatToken(e *Element, ctx *Context) area.Area {
	f := e.tokenFont(ctx)
	content := e.shapeContent(ctx, f)
	if e.ContentLength() == 0 {
		content = append(content, area.NewOrnament(ctx.Device.Dummy(f)))
	}
	if e.kind == KindString {
		lq := e.tokenAttr("lquote", `"`)
		rq := e.tokenAttr("rquote", `"`)
		var quoted []area.Area
		for _, q := range ctx.Device.String(f, lq) {
			quoted = append(quoted, area.NewOrnament(q))
		}
		quoted = append(quoted, content...)
		for _, q := range ctx.Device.String(f, rq) {
			quoted = append(quoted, area.NewOrnament(q))
		}
		content = quoted
	}
	if l, r := e.operatorSpacing(ctx); l != 0 || r != 0 {
		content = append([]area.Area{area.HorizontalSpace(l)}, append(content, area.HorizontalSpace(r))...)
	}
	return area.NewHorizontalArray(content...)
}

func (e *Element) isStretchy() bool {
	return e.kind == KindOperator && e.boolAttr("stretchy", false) && LogicalLength(e.TextContent()) == 1
}

// formatStretched lays out stretchy operator covering given vertical extent
// of its row.
func (e *Element) formatStretched(ctx *Context, height, depth fixed.Int26_6) area.Area {
	key := ctx.key()
	ctx.Push()
	defer ctx.Pop()
	f := e.tokenFont(ctx)
	m := ctx.Device.Metrics(f)
	span := height + depth
	if v := e.attrs["minsize"]; v.IsSet() {
		span = max(span, ctx.Length(v, m.Em, 0))
	}
	if v := e.attrs["maxsize"]; v.IsSet() {
		if t, err := attr.As[attr.Token](v); err != nil || t != "infinity" {
			span = min(span, ctx.Length(v, m.Em, span))
		}
	}
	g := ctx.Device.Stretch(f, e.TextContent(), span, true)
	gb := g.Box()
	var glyph area.Area = g
	if e.boolAttr("symmetric", true) {
		glyph = area.NewShift(g, m.Axis-(gb.Height-gb.Depth)/2)
	} else {
		glyph = area.NewShift(g, height-gb.Height)
	}
	content := []area.Area{glyph}
	if e.Marked(MarkCursor) {
		caret := ctx.Device.Cursor(f)
		if e.cursorOffset < 0 {
			content = append([]area.Area{caret}, content...)
		} else {
			content = append(content, caret)
		}
	}
	if l, r := e.operatorSpacing(ctx); l != 0 || r != 0 {
		content = append([]area.Area{area.HorizontalSpace(l)}, append(content, area.HorizontalSpace(r))...)
	}
	e.setArea(ctx, key, area.NewHorizontalArray(content...))
	return e.area
}
