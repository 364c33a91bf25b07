package area

import (
	"mview/utils/debug"
)

// Dump returns indented textual representation of the area tree.
func Dump(root Area) string {
	tw := debug.NewTreeWriter()
	dump(tw, 0, root, Point{})
	return tw.String()
}

func dump(tw *debug.TreeWriter, depth int, a Area, origin Point) {
	switch v := a.(type) {
	case *Glyph:
		tw.Line(depth, "%s at (%s, %s) %s %q", a.Kind(), origin.X, origin.Y, a.Box(), v.Text)
	case *Wrapper:
		name := "<nil>"
		if v.Owner() != nil {
			name = v.Owner().Name()
		}
		tw.Line(depth, "%s at (%s, %s) %s owner=%s", a.Kind(), origin.X, origin.Y, a.Box(), name)
	default:
		tw.Line(depth, "%s at (%s, %s) %s", a.Kind(), origin.X, origin.Y, a.Box())
	}
	for i := range a.Size() {
		dump(tw, depth+1, a.Child(i), a.Origin(i))
	}
}
