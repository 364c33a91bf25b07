package shaper

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/image/math/fixed"

	"mview/element"
)

func TestFixedDevice(t *testing.T) {
	d := NewFixed(zaptest.NewLogger(t))
	f := element.Font{Size: fixed.I(12), Variant: "normal"}

	glyphs := d.String(f, "abc")
	if len(glyphs) != 3 {
		t.Fatalf("String() returned %d areas, want 3", len(glyphs))
	}
	for i, g := range glyphs {
		if w := g.Box().Width; w != fixed.I(7) {
			t.Errorf("glyph %d width = %v, want 7", i, w)
		}
	}
	m := d.Metrics(f)
	if m.Em != fixed.I(13) || m.Ascent != fixed.I(11) || m.Descent != fixed.I(2) {
		t.Errorf("Metrics() = %+v", m)
	}
	if c := d.Cursor(f).Box(); c.Width != 0 || c.Height != fixed.I(11) {
		t.Errorf("Cursor() box = %v", c)
	}
}

func TestFaceCache(t *testing.T) {
	d, err := New(96, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer d.Close()

	f := element.Font{Size: fixed.I(10), Variant: "italic"}
	if d.Face(f) != d.Face(f) {
		t.Errorf("face was not cached")
	}
	if d.Face(f) == d.Face(element.Font{Size: fixed.I(10)}) {
		t.Errorf("italic and regular share face")
	}
	if len(d.faces) != 2 {
		t.Errorf("cache holds %d faces, want 2", len(d.faces))
	}
}

func TestStretch(t *testing.T) {
	d, err := New(72, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer d.Close()
	f := element.Font{Size: fixed.I(20)}

	natural := d.String(f, "(")[0].Box()
	span := (natural.Height + natural.Depth) * 3
	tall := d.Stretch(f, "(", span, true).Box()
	if tall.Height+tall.Depth <= natural.Height+natural.Depth {
		t.Errorf("vertical stretch did not grow: %v -> %v", natural, tall)
	}

	wide := d.Stretch(f, "¯", fixed.I(100), false).Box()
	if wide.Width != fixed.I(100) {
		t.Errorf("horizontal stretch width = %v, want 100", wide.Width)
	}
	arrow := d.Stretch(f, "→", fixed.I(100), false).Box()
	if arrow.Width != fixed.I(100) {
		t.Errorf("centered stretch width = %v, want 100", arrow.Width)
	}
}

func TestStyleOf(t *testing.T) {
	for variant, want := range map[string]Style{
		"":            Regular,
		"normal":      Regular,
		"italic":      Italic,
		"bold":        Bold,
		"bold-italic": BoldItalic,
		"monospace":   Mono,
	} {
		if got := styleOf(variant); got != want {
			t.Errorf("styleOf(%q) = %d, want %d", variant, got, want)
		}
	}
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	d, err := New(72, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, []byte("not a font at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := d.LoadFont(Regular, path); err == nil {
		t.Errorf("LoadFont() accepted garbage")
	}
	if err := NewFixed(nil).LoadFont(Regular, path); err == nil {
		t.Errorf("fixed device accepted font file")
	}
}
