package area

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/fixed"
)

func glyph(text string, width int) *Glyph {
	return NewGlyph(text, nil, NewBoundingBox(fixed.I(width), fixed.I(8), fixed.I(2)))
}

func TestSearchByCoordsSideBySide(t *testing.T) {
	first, second := glyph("a", 10), glyph("b", 20)
	root := NewHorizontalArray(first, second)

	id := NewID(root)
	if !id.SearchByCoords(fixed.I(15), fixed.I(3)) {
		t.Fatalf("point must hit")
	}
	if got := id.Area(-1); got != Area(second) {
		t.Fatalf("hit %s, want second glyph", got.Kind())
	}
	if got := id.Origin(0, -1); got.X != fixed.I(10) || got.Y != 0 {
		t.Fatalf("origin = (%s, %s), want (10, 0)", got.X, got.Y)
	}
	if got := id.Length(0, -1); got != 1 {
		t.Fatalf("length = %d, want 1", got)
	}
}

func TestSearchByCoordsMiss(t *testing.T) {
	root := NewHorizontalArray(glyph("a", 10), glyph("b", 20))
	id := NewID(root)
	if id.SearchByCoords(fixed.I(31), 0) {
		t.Fatalf("point outside must miss")
	}
	if !id.Empty() {
		t.Fatalf("path must be restored, got %s", id)
	}
	if SearchByCoordsSimple(root, fixed.I(5), fixed.I(20)) != nil {
		t.Fatalf("point above must miss")
	}
}

func nested() (Area, Area) {
	target := glyph("z", 6)
	inner := NewHorizontalArray(glyph("x", 4), NewShift(target, fixed.I(5)))
	stack := NewVerticalArray(1, glyph("d", 8), NewWrapper(inner, nil))
	root := NewHorizontalArray(glyph("p", 3), HorizontalSpace(fixed.I(2)), stack)
	return root, target
}

func TestIDPathConsistency(t *testing.T) {
	root, target := nested()

	byArea := NewID(root)
	if !byArea.SearchByArea(target) {
		t.Fatalf("target not found")
	}

	// rebuild the same path with plain appends, caches computed lazily
	plain := NewID(root)
	for _, i := range byArea.Path() {
		plain.Append(i)
	}
	if diff := cmp.Diff(byArea.Path(), plain.Path()); diff != "" {
		t.Fatalf("paths differ (-want +got):\n%s", diff)
	}

	var sum Point
	for level := 1; level <= plain.Size(); level++ {
		sum = sum.Add(plain.Origin(level-1, level))
	}
	if got := plain.Origin(0, -1); got != sum {
		t.Fatalf("origin = %v, sum of deltas = %v", got, sum)
	}
	if got, want := plain.Origin(0, -1), byArea.Origin(0, -1); got != want {
		t.Fatalf("lazy origin %v differs from searched %v", got, want)
	}
	if plain.Area(-1) != target {
		t.Fatalf("lazy area differs from target")
	}
	if got, want := plain.Length(0, -1), byArea.Length(0, -1); got != want {
		t.Fatalf("lazy length %d differs from searched %d", got, want)
	}
	if got := plain.Length(0, -1); got != 3 {
		t.Fatalf("length = %d, want 3", got)
	}
}

func TestIDPopBackRevalidates(t *testing.T) {
	root, target := nested()
	id := NewID(root)
	if !id.SearchByArea(target) {
		t.Fatalf("target not found")
	}
	full := id.Origin(0, -1)
	last := id.Origin(-2, -1)
	id.PopBack()
	if got := id.Origin(0, -1); got != full.Sub(last) {
		t.Fatalf("origin after pop = %v, want %v", got, full.Sub(last))
	}
	id.Append(0)
	if id.Area(-1).Kind() != "glyph" {
		t.Fatalf("appended level resolved to %s", id.Area(-1).Kind())
	}
}

func TestSearchByIndex(t *testing.T) {
	root, target := nested()
	id := NewID(root)
	if !id.SearchByIndex(3) {
		t.Fatalf("index 3 not found")
	}
	if id.Area(-1) != target {
		t.Fatalf("index 3 resolved to %s", id.Area(-1).Kind())
	}
	if got := id.Length(0, -1); got != 3 {
		t.Fatalf("accumulated length = %d, want 3", got)
	}
	if NewID(root).SearchByIndex(4) {
		t.Fatalf("index past the end must miss")
	}
}

func TestVerticalArrayOrigins(t *testing.T) {
	bottom := NewGlyph("b", nil, NewBoundingBox(fixed.I(4), fixed.I(5), fixed.I(1)))
	ref := NewGlyph("r", nil, NewBoundingBox(fixed.I(6), fixed.I(3), fixed.I(2)))
	top := NewGlyph("t", nil, NewBoundingBox(fixed.I(2), fixed.I(4), fixed.I(1)))
	v := NewVerticalArray(1, bottom, ref, top)

	if got, want := v.Origin(2).Y, fixed.I(3+1); got != want {
		t.Errorf("top origin = %s, want %s", got, want)
	}
	if got, want := v.Origin(0).Y, -fixed.I(2+5); got != want {
		t.Errorf("bottom origin = %s, want %s", got, want)
	}
	want := NewBoundingBox(fixed.I(6), fixed.I(3+4+1), fixed.I(2+5+1))
	if v.Box() != want {
		t.Errorf("box = %s, want %s", v.Box(), want)
	}
}
