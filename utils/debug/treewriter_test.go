package debug

import (
	"strings"
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{
			name:   "no depth",
			depth:  0,
			format: "row",
			want:   "row\n",
		},
		{
			name:   "depth 2",
			depth:  2,
			format: "identifier",
			want:   "    identifier\n",
		},
		{
			name:   "with formatting",
			depth:  1,
			format: "glyph at (%d, %d)",
			args:   []any{10, 0},
			want:   "  glyph at (10, 0)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_CustomIndent(t *testing.T) {
	tw := NewTreeWriterIndent("|")
	tw.Line(0, "math")
	tw.Line(1, "row")
	tw.Attr(2, "mathcolor", "red")
	want := "math\n|row\n||@mathcolor=red\n"
	if got := tw.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{
			name:  "empty value",
			label: "text",
			want:  "text: \n",
		},
		{
			name:  "indented",
			depth: 1,
			label: "text",
			value: "abc",
			want:  "  text: \"abc\"\n",
		},
		{
			name:  "invisible operator",
			label: "text",
			value: "\u2062",
			want:  "text: \"\\u2062\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "simple", input: "x", want: `"x"`},
		{name: "with quotes", input: `say "hi"`, want: `"say \"hi\""`},
		{name: "with newline", input: "a\nb", want: `"a\nb"`},
		{name: "long", input: strings.Repeat("a", MaxText+5), want: `"` + strings.Repeat("a", MaxText) + `"...`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeText(tt.input); got != tt.want {
				t.Errorf("encodeText() = %q, want %q", got, tt.want)
			}
		})
	}
}
