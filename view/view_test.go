package view

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"
	"golang.org/x/image/math/fixed"

	"mview/area"
	"mview/builder"
	"mview/element"
)

func newView(t *testing.T, src string) *View {
	t.Helper()
	v := New(testDevice{}, builder.DefaultRegistry(), zaptest.NewLogger(t))
	if src == "" {
		return v
	}
	if err := v.LoadString(src); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	return v
}

func findToken(t *testing.T, v *View, text string) *element.Element {
	t.Helper()
	var res *element.Element
	v.RootElement().Walk(func(e *element.Element) bool {
		if e.Kind().IsToken() && e.TextContent() == text {
			res = e
			return false
		}
		return true
	})
	if res == nil {
		t.Fatalf("token %q not found in\n%s", text, v)
	}
	return res
}

func shape(e *element.Element) []string {
	var res []string
	for _, c := range e.Children() {
		s := c.Kind().String()
		if c.Kind().IsToken() {
			s += ":" + c.TextContent()
		}
		res = append(res, s)
	}
	return res
}

func markupOf(v *View) string {
	doc := v.Document()
	return doc.String(doc.Root())
}

func TestRootAreaCached(t *testing.T) {
	v := newView(t, `<math><mrow><mi>ab</mi><mn>1</mn></mrow></math>`)
	a1 := v.RootArea()
	if a1 == nil {
		t.Fatal("RootArea() = nil")
	}
	if a2 := v.RootArea(); a1 != a2 {
		t.Error("unchanged view produced new area")
	}
	want := area.NewBoundingBox(fixed.I(30), fixed.I(8), fixed.I(2))
	if got := v.BoundingBox(); got != want {
		t.Errorf("BoundingBox() = %s, want %s", got, want)
	}

	v.SetAvailableWidth(fixed.I(200))
	if a3 := v.RootArea(); a3 == a1 {
		t.Error("width change did not reformat")
	}
}

func TestEmptyView(t *testing.T) {
	v := newView(t, "")
	if v.RootElement() != nil || v.RootArea() != nil {
		t.Fatal("empty view has trees")
	}
	if err := v.InsertGlyph("x"); !errors.Is(err, ErrNoRoot) {
		t.Errorf("InsertGlyph() error = %v, want %v", err, ErrNoRoot)
	}
	if err := v.Render(&recorder{}, 0, 0); !errors.Is(err, ErrNoRoot) {
		t.Errorf("Render() error = %v, want %v", err, ErrNoRoot)
	}
	if _, _, ok := v.ElementAt(0, 0); ok {
		t.Error("ElementAt() found element in empty view")
	}
	if s := v.String(); s != "<empty>" {
		t.Errorf("String() = %q", s)
	}
}

func TestElementAt(t *testing.T) {
	v := newView(t, `<math><mrow><mi>ab</mi><mn>1</mn></mrow></math>`)

	e, ext, ok := v.ElementAt(fixed.I(25), fixed.I(1))
	if !ok {
		t.Fatal("ElementAt() found nothing")
	}
	if e.Kind() != element.KindNumber {
		t.Fatalf("ElementAt() = %s, want number", e)
	}
	if ext.Origin.X != fixed.I(20) || ext.Box.Width != fixed.I(10) {
		t.Errorf("extents = %+v", ext)
	}
	if _, _, ok := v.ElementAt(fixed.I(45), fixed.I(1)); ok {
		t.Error("ElementAt() outside of formula succeeded")
	}

	ext, ok = v.ElementExtents(nil, e)
	if !ok || ext.Origin.X != fixed.I(20) {
		t.Errorf("ElementExtents() = %+v, %v", ext, ok)
	}
	ab := findToken(t, v, "ab")
	if n := v.ElementLength(ab); n != 2 {
		t.Errorf("ElementLength() = %d, want 2", n)
	}
	ext, ok = v.CharExtents(ab, 1)
	if !ok || ext.Origin.X != fixed.I(10) || ext.Box.Width != fixed.I(10) {
		t.Errorf("CharExtents() = %+v, %v", ext, ok)
	}
}

func TestElementAtGap(t *testing.T) {
	v := newView(t, `<math><msup><mi>x</mi><mn>2</mn></msup></math>`)

	// above the base, left of the superscript
	e, ext, ok := v.ElementAt(fixed.I(5), fixed.I(10))
	if !ok {
		t.Fatal("ElementAt() found nothing")
	}
	if e.Kind() != element.KindSup {
		t.Fatalf("ElementAt() = %s, want superscript", e)
	}
	if ext.Origin != (area.Point{}) || ext.Box != e.Area().Box() {
		t.Errorf("extents = %+v", ext)
	}

	if e, _, ok = v.ElementAt(fixed.I(5), fixed.I(1)); !ok || e.TextContent() != "x" {
		t.Errorf("ElementAt() on the base = %v, %v", e, ok)
	}
}

func TestCharAt(t *testing.T) {
	v := newView(t, `<math><mrow><mi>ab</mi><mn>1</mn></mrow></math>`)
	tests := []struct {
		x     int
		text  string
		index int
	}{
		{3, "ab", 0},
		{13, "ab", 1},
		{18, "ab", 2},
		{27, "1", 1},
	}
	for _, tt := range tests {
		e, index, ok := v.CharAt(fixed.I(tt.x), fixed.I(1))
		if !ok {
			t.Errorf("CharAt(%d) found nothing", tt.x)
			continue
		}
		if e.TextContent() != tt.text || index != tt.index {
			t.Errorf("CharAt(%d) = %q/%d, want %q/%d", tt.x, e.TextContent(), index, tt.text, tt.index)
		}
	}
}

func TestEditSession(t *testing.T) {
	v := newView(t, `<math><mrow><mi>a</mi></mrow></math>`)

	if err := v.InsertGlyph("b"); !errors.Is(err, ErrNoCursor) {
		t.Fatalf("InsertGlyph() without cursor error = %v, want %v", err, ErrNoCursor)
	}
	if !v.PlaceCursorAt(fixed.I(8), fixed.I(1)) {
		t.Fatal("PlaceCursorAt() failed")
	}
	steps := []func() error{
		func() error { return v.InsertGlyph("b") },
		func() error { return v.InsertElementAfterCursor("mfrac") },
		func() error { return v.InsertGlyph("x") },
		func() error { return v.StepCursorDown() },
		func() error { return v.InsertGlyph("y") },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d error = %v\n%s", i, err, v)
		}
	}

	row := v.RootElement().Child(0)
	if diff := cmp.Diff([]string{"identifier:ab", "fraction"}, shape(row)); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"identifier:x", "identifier:y"}, shape(row.Child(1))); diff != "" {
		t.Errorf("fraction mismatch (-want +got):\n%s", diff)
	}
	want := `<math><mrow><mi>ab</mi><mfrac><mi>x</mi><mi>y</mi></mfrac></mrow></math>`
	if got := markupOf(v); got != want {
		t.Errorf("markup = %s, want %s", got, want)
	}
}

func TestDeleteGlyph(t *testing.T) {
	v := newView(t, `<math><mrow><mi>a</mi><mo>+</mo><mi>b</mi></mrow></math>`)
	v.Builder().MoveCursor(findToken(t, v, "b"), 0)

	if err := v.DeleteGlyph(); err != nil {
		t.Fatalf("DeleteGlyph() error = %v", err)
	}
	row := v.RootElement().Child(0)
	if diff := cmp.Diff([]string{"identifier:a", "identifier:b"}, shape(row)); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
	if cur := v.CursorElement(); cur == nil || cur.TextContent() != "a" {
		t.Fatalf("cursor = %v, want token a", cur)
	}

	if err := v.DeleteGlyph(); err != nil {
		t.Fatalf("DeleteGlyph() error = %v", err)
	}
	if got := v.CursorElement().TextContent(); got != "" {
		t.Errorf("token text = %q after deleting glyph", got)
	}
}

func TestElementNotInsertable(t *testing.T) {
	v := newView(t, `<math><mi>a</mi></math>`)
	if err := v.InsertElementAfterCursor("mfoo"); !errors.Is(err, builder.ErrNotInsertable) {
		t.Errorf("InsertElementAfterCursor() error = %v, want %v", err, builder.ErrNotInsertable)
	}
}

func TestFreeze(t *testing.T) {
	v := newView(t, `<math><mi>a</mi></math>`)
	a1 := v.RootArea()

	v.Freeze()
	v.Freeze()
	v.SetDefaultFontSize(fixed.I(20))
	if v.RootArea() != a1 {
		t.Error("frozen view reformatted")
	}
	if v.Thaw() {
		t.Error("Thaw() reported unfrozen after one of two thaws")
	}
	if !v.Thaw() || v.Frozen() {
		t.Fatal("view still frozen")
	}
	if v.RootArea() == a1 {
		t.Error("font size change ignored after thaw")
	}

	defer func() {
		if recover() == nil {
			t.Error("unbalanced Thaw() did not panic")
		}
	}()
	v.Thaw()
}

func TestSelection(t *testing.T) {
	v := newView(t, `<math><mrow><mi>x</mi><mo>=</mo></mrow></math>`)
	if err := v.CopySelected(); !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("CopySelected() error = %v, want %v", err, ErrNothingSelected)
	}

	x := findToken(t, v, "x")
	v.Select(x)
	if !v.IsSelected(x) || v.Selected() != x {
		t.Fatal("selection not recorded")
	}
	v.SetSelectionColor(color.RGBA{R: 0xff, A: 0xff})
	if _, ok := findKind(v.RootArea(), "background"); !ok {
		t.Error("selected element has no background")
	}

	if err := v.PasteAfterCursor(); !errors.Is(err, ErrNoCursor) {
		t.Fatalf("PasteAfterCursor() without cursor error = %v", err)
	}
	v.Builder().MoveCursor(findToken(t, v, "="), 1)
	if err := v.PasteAfterCursor(); !errors.Is(err, ErrEmptyClipboard) {
		t.Fatalf("PasteAfterCursor() error = %v, want %v", err, ErrEmptyClipboard)
	}
	if err := v.CopySelected(); err != nil {
		t.Fatalf("CopySelected() error = %v", err)
	}
	if err := v.PasteAfterCursor(); err != nil {
		t.Fatalf("PasteAfterCursor() error = %v", err)
	}
	row := v.RootElement().Child(0)
	if diff := cmp.Diff([]string{"identifier:x", "operator:=", "identifier:x"}, shape(row)); diff != "" {
		t.Fatalf("row after paste mismatch (-want +got):\n%s", diff)
	}

	if err := v.DeleteSelected(); err != nil {
		t.Fatalf("DeleteSelected() error = %v", err)
	}
	row = v.RootElement().Child(0)
	if diff := cmp.Diff([]string{"table", "operator:=", "identifier:x"}, shape(row)); diff != "" {
		t.Fatalf("row after delete mismatch (-want +got):\n%s", diff)
	}
	if v.Selected() != nil {
		t.Error("selection survived deletion")
	}
	if cur := v.CursorElement(); cur == nil || !cur.Marked(element.MarkWrapperNeeded) {
		t.Errorf("cursor = %v, want placeholder slot", cur)
	}
}

func findKind(a area.Area, kind string) (area.Area, bool) {
	if a.Kind() == kind {
		return a, true
	}
	for i := range a.Size() {
		if f, ok := findKind(a.Child(i), kind); ok {
			return f, true
		}
	}
	return nil, false
}

type recorder struct {
	fg     color.Color
	glyphs []string
	xs     []fixed.Int26_6
}

func (r *recorder) Glyph(x, y fixed.Int26_6, g *area.Glyph) {
	r.glyphs = append(r.glyphs, g.Text)
	r.xs = append(r.xs, x)
}
func (r *recorder) Image(x, y fixed.Int26_6, img image.Image, box area.BoundingBox) {}
func (r *recorder) Fill(x, y fixed.Int26_6, box area.BoundingBox)                    {}
func (r *recorder) Frame(x, y fixed.Int26_6, box area.BoundingBox, thickness fixed.Int26_6, dashed bool) {
}
func (r *recorder) Cursor(x, y fixed.Int26_6, box area.BoundingBox) {}
func (r *recorder) Foreground() color.Color                        { return r.fg }
func (r *recorder) SetForeground(c color.Color)                    { r.fg = c }

func TestRender(t *testing.T) {
	v := newView(t, `<math><mrow><mi>ab</mi><mn>1</mn></mrow></math>`)
	rc := &recorder{fg: color.Black}
	if err := v.Render(rc, fixed.I(100), fixed.I(50)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "1"}, rc.glyphs); diff != "" {
		t.Errorf("glyphs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]fixed.Int26_6{fixed.I(100), fixed.I(110), fixed.I(120)}, rc.xs); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}
