package element

import (
	"fmt"
	"strings"

	"mview/utils/debug"
)

// Dump returns indented textual representation of the element subtree with
// refined attributes, marks and pending intents.
func Dump(root *Element) string {
	tw := debug.NewTreeWriter()
	dump(tw, 0, root)
	return tw.String()
}

func dump(tw *debug.TreeWriter, depth int, e *Element) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <%s>", e.kind, e.name)
	for _, m := range []struct {
		mark Mark
		name string
	}{
		{MarkCursor, "cursor"},
		{MarkWrapper, "wrapper"},
		{MarkWrapperNeeded, "wrapper-needed"},
		{MarkSelected, "selected"},
		{MarkContentSet, "content-set"},
	} {
		if e.Marked(m.mark) {
			sb.WriteString(" +" + m.name)
		}
	}
	if e.intent != IntentNone {
		fmt.Fprintf(&sb, " intent=%s", e.intent)
	}
	if e.Marked(MarkCursor) {
		fmt.Fprintf(&sb, " at=(%d,%d)", e.cursorChild, e.cursorOffset)
	}
	tw.Line(depth, "%s", sb.String())
	for _, name := range e.AttrNames() {
		tw.Attr(depth+1, name, e.attrs[name].String())
	}
	for _, r := range e.runs {
		switch r.Kind {
		case RunText:
			tw.TextBlock(depth+1, "text", r.Text)
		case RunGlyph:
			tw.TextBlock(depth+1, "glyph", r.Text)
		case RunImage:
			tw.Line(depth+1, "image %gx%g", r.Width, r.Height)
		case RunAlignMark:
			tw.Line(depth+1, "alignmark edge=%s", r.Edge)
		}
	}
	if e.label != nil {
		tw.Line(depth+1, "label:")
		dump(tw, depth+2, e.label)
	}
	for _, c := range e.children {
		dump(tw, depth+1, c)
	}
}
