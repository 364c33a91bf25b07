package element

import (
	"golang.org/x/image/math/fixed"

	"mview/area"
	"mview/attr"
)

type tableCell struct {
	elem        *Element
	area        area.Area
	col, span   int
	rowAlign    string
	columnAlign string
}

// seqToken returns i-th keyword of a sequence attribute.
func (e *Element) seqToken(name string, i int, def string) string {
	v := attr.At(e.attrs[name], i)
	if t, err := attr.As[attr.Token](v); err == nil {
		return string(t)
	}
	return def
}

func (e *Element) seqLength(ctx *Context, name string, i int, def fixed.Int26_6) fixed.Int26_6 {
	return ctx.Length(attr.At(e.attrs[name], i), ctx.Frame().Size, def)
}

func formatTable(e *Element, ctx *Context) area.Area {
	m := ctx.Metrics()
	ctx.Frame().DisplayStyle = false
	key := ctx.key()
	if len(e.children) == 0 {
		return formatDummy(e, ctx)
	}

	// place cells into grid
	var (
		grid  = make([][]tableCell, len(e.children))
		cols  int
		label = make([]area.Area, len(e.children))
	)
	for i, row := range e.children {
		col := 0
		for j, c := range row.children {
			span := max(c.intAttr("columnspan", 1), 1)
			grid[i] = append(grid[i], tableCell{
				elem:        c,
				area:        c.Format(ctx),
				col:         col,
				span:        span,
				rowAlign:    c.tokenAttr("rowalign", row.tokenAttr("rowalign", e.seqToken("rowalign", i, "baseline"))),
				columnAlign: c.tokenAttr("columnalign", row.seqToken("columnalign", j, e.seqToken("columnalign", col, "center"))),
			})
			col += span
		}
		cols = max(cols, col)
		if row.label != nil {
			label[i] = row.label.Format(ctx)
		}
	}

	// column widths, spanning cells widen their last column
	widths := make([]fixed.Int26_6, cols)
	spacing := make([]fixed.Int26_6, max(cols-1, 0))
	for j := range spacing {
		spacing[j] = e.seqLength(ctx, "columnspacing", j, m.Em*4/5)
	}
	for _, cells := range grid {
		for _, c := range cells {
			if c.span == 1 {
				widths[c.col] = max(widths[c.col], c.area.Box().Width)
			}
		}
	}
	for _, cells := range grid {
		for _, c := range cells {
			if c.span > 1 {
				last := min(c.col+c.span, cols) - 1
				if have := spanWidth(widths, spacing, c.col, last); have < c.area.Box().Width {
					widths[last] += c.area.Box().Width - have
				}
			}
		}
	}
	if e.boolAttr("equalcolumns", false) {
		var w fixed.Int26_6
		for _, x := range widths {
			w = max(w, x)
		}
		for j := range widths {
			widths[j] = w
		}
	}

	// row extents
	type extent struct{ height, depth fixed.Int26_6 }
	rows := make([]extent, len(grid))
	for i, cells := range grid {
		rows[i] = extent{height: m.Ascent, depth: m.Descent}
		for _, c := range cells {
			b := definedBox(c.area)
			rows[i].height = max(rows[i].height, b.Height)
			rows[i].depth = max(rows[i].depth, b.Depth)
		}
	}
	if e.boolAttr("equalrows", false) {
		var h, d fixed.Int26_6
		for _, r := range rows {
			h, d = max(h, r.height), max(d, r.depth)
		}
		for i := range rows {
			rows[i] = extent{h, d}
		}
	}

	// rows are stacked bottom to top
	var stack []area.Area
	for i := len(grid) - 1; i >= 0; i-- {
		ext := rows[i]
		var content []area.Area
		next := 0
		for _, c := range grid[i] {
			if c.col > next {
				content = append(content, area.HorizontalSpace(spacingBefore(spacing, next)+spanWidth(widths, spacing, next, c.col-1)+spacing[c.col-1]))
			} else if c.col > 0 {
				content = append(content, area.HorizontalSpace(spacing[c.col-1]))
			}
			last := min(c.col+c.span, cols) - 1
			w := spanWidth(widths, spacing, c.col, last)
			b := definedBox(c.area)
			var shift fixed.Int26_6
			switch c.rowAlign {
			case "top":
				shift = ext.height - b.Height
			case "bottom":
				shift = b.Depth - ext.depth
			case "center", "axis":
				shift = (ext.height-ext.depth)/2 - (b.Height-b.Depth)/2
			}
			cell := alignIn(area.NewShift(c.area, shift), w, c.columnAlign)
			content = append(content, area.NewPadded(cell, 0, area.NewBoundingBox(w, ext.height, ext.depth)))
			next = last + 1
		}
		if next < cols {
			content = append(content, area.HorizontalSpace(spanWidth(widths, spacing, next, cols-1)+spacingBefore(spacing, next)))
		}
		if label[i] != nil {
			content = append(content, area.HorizontalSpace(m.Em), label[i])
		}
		row := e.children[i]
		row.setArea(ctx, key, area.NewHorizontalArray(content...))
		if len(stack) > 0 {
			stack = append(stack, area.NewSpace(area.NewBoundingBox(0, e.seqLength(ctx, "rowspacing", i, m.Ex), 0)))
		}
		stack = append(stack, row.area)
	}
	var table area.Area = area.NewVerticalArray(0, stack...)

	frame := e.tokenAttr("frame", "none")
	if frame != "none" {
		hsp := e.seqLength(ctx, "framespacing", 0, m.Em*2/5)
		vsp := e.seqLength(ctx, "framespacing", 1, m.Ex/2)
		b := definedBox(table)
		table = area.NewPadded(table, hsp, area.NewBoundingBox(b.Width+2*hsp, b.Height+vsp, b.Depth+vsp))
		table = area.NewFrame(table, m.Rule, frame == "dashed")
	}
	b := definedBox(table)
	shift := m.Axis - (b.Height-b.Depth)/2
	if e.tokenAttr("align", "axis") == "baseline" {
		shift = 0
	}
	return area.NewShift(table, shift)
}

// spanWidth sums widths of columns from..to including inner spacing.
func spanWidth(widths, spacing []fixed.Int26_6, from, to int) fixed.Int26_6 {
	var w fixed.Int26_6
	for j := from; j <= to; j++ {
		w += widths[j]
		if j > from {
			w += spacing[j-1]
		}
	}
	return w
}

func spacingBefore(spacing []fixed.Int26_6, col int) fixed.Int26_6 {
	if col == 0 {
		return 0
	}
	return spacing[col-1]
}
