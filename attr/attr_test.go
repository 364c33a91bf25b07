package attr

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/fixed"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
		err  bool
	}{
		{in: "1em", want: Length{1, UnitEm}},
		{in: "0.5ex", want: Length{0.5, UnitEx}},
		{in: "-2.5pt", want: Length{-2.5, UnitPt}},
		{in: "150%", want: Length{150, UnitPercent}},
		{in: "2", want: Length{2, UnitNone}},
		{in: " 3mm ", want: Length{3, UnitMm}},
		{in: "thickmathspace", want: Length{5.0 / 18, UnitEm}},
		{in: "em", err: true},
		{in: "3furlongs", err: true},
		{in: "", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			if tt.err {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveLength(t *testing.T) {
	m := Metrics{Em: fixed.I(10), Ex: fixed.I(4), Base: fixed.I(20)}
	tests := []struct {
		l    Length
		want fixed.Int26_6
	}{
		{Length{2, UnitEm}, fixed.I(20)},
		{Length{1, UnitEx}, fixed.I(4)},
		{Length{50, UnitPercent}, fixed.I(10)},
		{Length{2, UnitNone}, fixed.I(40)},
		{Length{3, UnitPt}, fixed.I(3)},
		{Length{1, UnitIn}, fixed.I(72)},
		{Length{1, UnitPc}, fixed.I(12)},
	}
	for _, tt := range tests {
		if got := tt.l.Resolve(m); got != tt.want {
			t.Errorf("%v resolved to %s, want %s", tt.l, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		err  bool
	}{
		{in: "#f00", want: color.RGBA{0xff, 0, 0, 0xff}},
		{in: "#00FF80", want: color.RGBA{0, 0xff, 0x80, 0xff}},
		{in: "navy", want: color.RGBA{0, 0, 0x80, 0xff}},
		{in: "transparent", want: Transparent},
		{in: "#12", err: true},
		{in: "nocolor", err: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.err {
			t.Fatalf("%q: error = %v, want error %v", tt.in, err, tt.err)
		}
		if !tt.err && got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValueWrongType(t *testing.T) {
	v := NewValue(Token("center"))
	if tok, err := As[Token](v); err != nil || tok != "center" {
		t.Fatalf("As[Token] = %q, %v", tok, err)
	}
	if _, err := As[Length](v); !errors.Is(err, ErrWrongType) {
		t.Fatalf("expected ErrWrongType, got %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustAs must panic on mismatch")
		}
	}()
	MustAs[bool](v)
}

func TestSignature(t *testing.T) {
	sig := &Signature{Name: "columnalign", FromElement: true, Default: "center", Parse: Sequence(Keywords("left", "center", "right"))}

	def := sig.DefaultValue()
	if got := MustAs[Token](At(def, 3)); got != "center" {
		t.Fatalf("default = %q", got)
	}

	v, err := sig.ParseValue("left right")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := []Token{MustAs[Token](At(v, 0)), MustAs[Token](At(v, 1)), MustAs[Token](At(v, 5))}
	if diff := cmp.Diff([]Token{"left", "right", "right"}, got); diff != "" {
		t.Fatalf("sequence (-want +got):\n%s", diff)
	}

	if _, err := sig.ParseValue("middle"); err == nil {
		t.Fatalf("expected error for unknown keyword")
	}
	if (&Signature{Name: "x", Parse: String}).DefaultValue().IsSet() {
		t.Fatalf("signature without default must return unset value")
	}
}

func TestScriptLevel(t *testing.T) {
	v, _ := ScriptLevel("+1")
	if v != Increment(1) {
		t.Fatalf("+1 parsed as %#v", v)
	}
	v, _ = ScriptLevel("2")
	if v != 2 {
		t.Fatalf("2 parsed as %#v", v)
	}
	if _, err := ScriptLevel("x"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestContext(t *testing.T) {
	var c Context
	c.Push(SourceFunc(func(name string) (string, bool) {
		if name == "mathcolor" {
			return "red", true
		}
		return "", false
	}))
	c.Push(SourceFunc(func(name string) (string, bool) {
		if name == "displaystyle" {
			return "true", true
		}
		return "", false
	}))
	if v, ok := c.Lookup("mathcolor"); !ok || v != "red" {
		t.Fatalf("outer provider not consulted: %q %v", v, ok)
	}
	c.Pop()
	if _, ok := c.Lookup("displaystyle"); ok {
		t.Fatalf("popped provider still consulted")
	}
	if c.Depth() != 1 {
		t.Fatalf("depth = %d", c.Depth())
	}
}

func TestParseStyle(t *testing.T) {
	got := ParseStyle("color: #ff0000; font-weight: bold; font-size: 12pt; border: 1px solid")
	want := map[string]string{
		"mathcolor":   "#ff0000",
		"mathsize":    "12pt",
		"mathvariant": "bold",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("style (-want +got):\n%s", diff)
	}
}
