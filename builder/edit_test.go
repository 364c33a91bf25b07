package builder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mview/element"
)

func TestWrapUnwrap(t *testing.T) {
	b, root := build(t, `<math><mfrac><mi>a</mi><mi/></mfrac></math>`)
	frac := root.Child(0)

	wrapper := frac.Child(1)
	if wrapper.Kind() != element.KindTable || !wrapper.Marked(element.MarkWrapper) {
		t.Fatalf("empty slot was not wrapped:\n%s", element.Dump(root))
	}
	if s := b.Document().String(b.Document().Root()); !strings.Contains(s, `frame="dashed"`) {
		t.Errorf("markup has no placeholder table: %s", s)
	}

	slot := wrapper.Child(0).Child(0).Child(0)
	if !slot.Kind().IsToken() || !slot.Marked(element.MarkWrapperNeeded) {
		t.Fatalf("wrapped element is %s", slot)
	}
	slot.InsertGlyphAfterCursor("b")
	slot.SetDirtyStructure()
	root = b.RootElement()

	want := []string{"identifier:a", "identifier:b"}
	if diff := cmp.Diff(want, shape(root.Child(0))); diff != "" {
		t.Errorf("fraction children mismatch (-want +got):\n%s", diff)
	}
	if s := b.Document().String(b.Document().Root()); strings.Contains(s, "mtable") {
		t.Errorf("placeholder table left in markup: %s", s)
	}

	// emptied slot goes back into placeholder
	slot.DeleteGlyphBeforeCursor()
	slot.SetDirtyStructure()
	root = b.RootElement()
	if k := root.Child(0).Child(1).Kind(); k != element.KindTable {
		t.Errorf("emptied slot is %s, want placeholder table", k)
	}
}

func TestSplit(t *testing.T) {
	b, root := build(t, `<math><mrow><mi>ab</mi></mrow></math>`)
	tok := findToken(t, root, "ab")
	tok.SetCursorIndex(1)
	if err := tok.RequestSplit("mfrac"); err != nil {
		t.Fatalf("RequestSplit() error = %v", err)
	}
	root = b.RootElement()

	row := root.Child(0)
	want := []string{"identifier:a", "fraction", "identifier:b"}
	if diff := cmp.Diff(want, shape(row)); diff != "" {
		t.Fatalf("row children mismatch (-want +got):\n%s", diff)
	}
	frac := row.Child(1)
	for i, slot := range frac.Children() {
		if slot.Kind() != element.KindTable {
			t.Errorf("fraction slot %d is %s, want placeholder", i, slot.Kind())
		}
	}
	cur := b.CursorElement()
	if cur == nil || cur.Parent().Parent().Parent() != frac.Child(0) {
		t.Errorf("cursor is not in numerator placeholder: %v", cur)
	}
	if tok.Intent() != element.IntentNone || tok.Marked(element.MarkCursor) {
		t.Errorf("split token kept intent %s or cursor", tok.Intent())
	}
}

func TestSplitAtEdges(t *testing.T) {
	for _, tc := range []struct {
		name  string
		index int
		want  []string
	}{
		{"start", 0, []string{"sqrt", "identifier:ab"}},
		{"end", 2, []string{"identifier:ab", "sqrt"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b, root := build(t, `<math><mrow><mi>ab</mi></mrow></math>`)
			tok := findToken(t, root, "ab")
			tok.SetCursorIndex(tc.index)
			if err := tok.RequestSplit("msqrt"); err != nil {
				t.Fatalf("RequestSplit() error = %v", err)
			}
			root = b.RootElement()
			if diff := cmp.Diff(tc.want, shape(root.Child(0))); diff != "" {
				t.Errorf("row children mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitInFixedSlot(t *testing.T) {
	b, root := build(t, `<math><msup><mi>xy</mi><mn>2</mn></msup></math>`)
	tok := findToken(t, root, "xy")
	tok.SetCursorIndex(1)
	if err := tok.RequestSplit("mi"); err != nil {
		t.Fatalf("RequestSplit() error = %v", err)
	}
	root = b.RootElement()

	base := root.Child(0).Child(0)
	if base.Kind() != element.KindRow {
		t.Fatalf("base was not wrapped into row:\n%s", element.Dump(root))
	}
	want := []string{"identifier:x", "table", "identifier:y"}
	if diff := cmp.Diff(want, shape(base)); diff != "" {
		t.Errorf("base children mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteIntent(t *testing.T) {
	b, root := build(t, `<math><mrow><mi>a</mi><mo>+</mo><mi>b</mi></mrow></math>`)
	tok := findToken(t, root, "b")
	tok.SetFirstCursorPosition()
	if err := tok.SetIntent(element.IntentDelete); err != nil {
		t.Fatalf("SetIntent() error = %v", err)
	}
	root = b.RootElement()

	want := []string{"identifier:a", "identifier:b"}
	if diff := cmp.Diff(want, shape(root.Child(0))); diff != "" {
		t.Errorf("row children mismatch (-want +got):\n%s", diff)
	}
	cur := b.CursorElement()
	if cur == nil || cur.TextContent() != "a" || cur.CursorIndex() != 1 {
		t.Errorf("cursor = %v, want end of a", cur)
	}
}

func TestDeleteEmptyFirstSlot(t *testing.T) {
	b, root := build(t, `<math><mrow><mi/><mi>b</mi></mrow></math>`)
	empty := root.Child(0).Child(0)
	empty.SetFirstCursorPosition()
	if err := empty.SetIntent(element.IntentDelete); err != nil {
		t.Fatalf("SetIntent() error = %v", err)
	}
	root = b.RootElement()

	want := []string{"identifier:b"}
	if diff := cmp.Diff(want, shape(root.Child(0))); diff != "" {
		t.Errorf("row children mismatch (-want +got):\n%s", diff)
	}
	if cur := b.CursorElement(); cur == nil || cur.TextContent() != "b" {
		t.Errorf("cursor = %v, want b", cur)
	}
}

func TestDeleteInFixedSlot(t *testing.T) {
	b, root := build(t, `<math><mfrac><mi>ab</mi><mi>c</mi></mfrac></math>`)
	tok := findToken(t, root, "c")
	tok.SetFirstCursorPosition()
	if err := tok.SetIntent(element.IntentDelete); err != nil {
		t.Fatalf("SetIntent() error = %v", err)
	}
	root = b.RootElement()

	frac := root.Child(0)
	want := []string{"identifier:ab", "table"}
	if diff := cmp.Diff(want, shape(frac)); diff != "" {
		t.Fatalf("fraction children mismatch (-want +got):\n%s", diff)
	}
	if s := b.Document().String(b.Document().Root()); strings.Contains(s, ">c<") {
		t.Errorf("deleted token left in markup: %s", s)
	}
	cur := b.CursorElement()
	if cur == nil || cur.ContentLength() != 0 || cur.Parent().Parent().Parent() != frac.Child(1) {
		t.Errorf("cursor = %v, want empty denominator slot", cur)
	}

	// deleting in an empty slot changes nothing
	cur.SetFirstCursorPosition()
	if err := cur.SetIntent(element.IntentDelete); err != nil {
		t.Fatalf("SetIntent() error = %v", err)
	}
	root = b.RootElement()
	if diff := cmp.Diff(want, shape(root.Child(0))); diff != "" {
		t.Errorf("fraction children after second delete mismatch (-want +got):\n%s", diff)
	}
	if cur.Intent() != element.IntentNone {
		t.Errorf("slot kept intent %s", cur.Intent())
	}
}

func TestMoveNextHandOff(t *testing.T) {
	b, root := build(t, `<math><mrow><mfrac><mi>a</mi><mi>b</mi></mfrac><mi>cd</mi></mrow></math>`)
	tok := findToken(t, root, "b")
	tok.SetLastCursorPosition()
	if err := tok.SetIntent(element.IntentMoveNext); err != nil {
		t.Fatalf("SetIntent() error = %v", err)
	}
	b.RootElement()

	cur := b.CursorElement()
	if cur == nil || cur.TextContent() != "cd" || cur.CursorIndex() != 1 {
		t.Errorf("cursor = %v, want inside cd after first character", cur)
	}
	if tok.Marked(element.MarkCursor) {
		t.Errorf("previous token still holds cursor")
	}
	root.Walk(func(e *element.Element) bool {
		if e.Intent() != element.IntentNone {
			t.Errorf("%s kept intent %s", e, e.Intent())
		}
		return true
	})
}

func TestMoveAtRootIsDropped(t *testing.T) {
	b, root := build(t, `<math><mi>a</mi></math>`)
	tok := root.Child(0)
	tok.SetLastCursorPosition()
	if err := tok.SetIntent(element.IntentMoveNext); err != nil {
		t.Fatalf("SetIntent() error = %v", err)
	}
	root = b.RootElement()

	if root.Intent() != element.IntentNone {
		t.Errorf("root kept intent %s", root.Intent())
	}
	if b.CursorElement() != tok {
		t.Errorf("cursor left its token")
	}
}

func TestMoveVertical(t *testing.T) {
	b, root := build(t, `<math><mfrac><mi>a</mi><mi>b</mi></mfrac></math>`)
	tok := findToken(t, root, "b")
	tok.SetFirstCursorPosition()
	if err := tok.SetIntent(element.IntentMoveUp); err != nil {
		t.Fatalf("SetIntent() error = %v", err)
	}
	b.RootElement()

	if cur := b.CursorElement(); cur == nil || cur.TextContent() != "a" {
		t.Errorf("cursor = %v, want numerator", cur)
	}
}

func TestVerticalNeighbor(t *testing.T) {
	for _, tc := range []struct {
		kind  element.Kind
		slot  int
		up    bool
		want  int
		found bool
	}{
		{element.KindFraction, 1, true, 0, true},
		{element.KindFraction, 0, true, 0, false},
		{element.KindSubsup, 0, true, 2, true},
		{element.KindSubsup, 2, false, 1, true},
		{element.KindUnderover, 1, true, 0, true},
		{element.KindRoot, 0, true, 1, true},
		{element.KindTable, 0, true, 0, false},
		{element.KindTable, 0, false, 1, true},
		{element.KindRow, 0, true, 0, false},
	} {
		got, ok := verticalNeighbor(tc.kind, tc.slot, 3, tc.up)
		if ok != tc.found || (ok && got != tc.want) {
			t.Errorf("verticalNeighbor(%s, %d, up=%v) = %d, %v; want %d, %v", tc.kind, tc.slot, tc.up, got, ok, tc.want, tc.found)
		}
	}
}

func TestInsertRight(t *testing.T) {
	b, root := build(t, `<math><mrow><mi>a</mi><mi>c</mi></mrow></math>`)
	tok := findToken(t, root, "a")
	tok.SetLastCursorPosition()
	if err := tok.SetIntent(element.IntentInsertRight); err != nil {
		t.Fatalf("SetIntent() error = %v", err)
	}
	root = b.RootElement()

	want := []string{"identifier:a", "table", "identifier:c"}
	if diff := cmp.Diff(want, shape(root.Child(0))); diff != "" {
		t.Errorf("row children mismatch (-want +got):\n%s", diff)
	}
	cur := b.CursorElement()
	if cur == nil || cur.ContentLength() != 0 {
		t.Errorf("cursor = %v, want new empty slot", cur)
	}
}

func TestCopyPaste(t *testing.T) {
	b, root := build(t, `<math><mrow><mi>x</mi><mo>=</mo></mrow></math>`)
	x := findToken(t, root, "x")
	b.Copy(x.Node())

	op := findToken(t, root, "=")
	op.SetLastCursorPosition()
	if err := op.SetIntent(element.IntentPaste); err != nil {
		t.Fatalf("SetIntent() error = %v", err)
	}
	root = b.RootElement()

	want := []string{"identifier:x", "operator:=", "identifier:x"}
	if diff := cmp.Diff(want, shape(root.Child(0))); diff != "" {
		t.Errorf("row children mismatch (-want +got):\n%s", diff)
	}
	if cur := b.CursorElement(); cur != root.Child(0).Child(2) {
		t.Errorf("cursor = %v, want pasted token", cur)
	}
}

func TestReplaceWithPlaceholder(t *testing.T) {
	b, root := build(t, `<math><msup><mi>x</mi><mn>2</mn></msup></math>`)
	two := findToken(t, root, "2").Node()

	if err := b.ReplaceWithPlaceholder(two); err != nil {
		t.Fatalf("ReplaceWithPlaceholder() error = %v", err)
	}
	if b.Linker().Get(two) != nil {
		t.Errorf("freed node is still linked")
	}
	root = b.RootElement()

	want := []string{"identifier:x", "table"}
	if diff := cmp.Diff(want, shape(root.Child(0))); diff != "" {
		t.Errorf("script children mismatch (-want +got):\n%s", diff)
	}
	if err := b.ReplaceWithPlaceholder(b.Document().Root()); err == nil {
		t.Errorf("replacing root did not fail")
	}
}
