package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"mview/attr"
	"mview/element"
	"mview/markup"
)

func build(t *testing.T, src string) (*Builder, *element.Element) {
	t.Helper()
	doc, err := markup.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	b := New(doc, DefaultRegistry(), zaptest.NewLogger(t))
	return b, b.RootElement()
}

// countingLogger counts entries logged with given message.
func countingLogger(t *testing.T, msg string) (*zap.Logger, *int) {
	n := new(int)
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.Hooks(func(e zapcore.Entry) error {
		if e.Message == msg {
			*n++
		}
		return nil
	})))
	return log, n
}

// shape lists kinds and text of element children.
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

func findToken(t *testing.T, root *element.Element, text string) *element.Element {
	t.Helper()
	var res *element.Element
	root.Walk(func(e *element.Element) bool {
		if e.Kind().IsToken() && e.TextContent() == text {
			res = e
			return false
		}
		return true
	})
	if res == nil {
		t.Fatalf("token %q not found in\n%s", text, element.Dump(root))
	}
	return res
}

func TestBuildTree(t *testing.T) {
	_, root := build(t, `<math><mrow><mi>x</mi><mo>+</mo><mn>1</mn></mrow></math>`)

	if root.Kind() != element.KindMath {
		t.Fatalf("root kind = %s, want math", root.Kind())
	}
	row := root.Child(0)
	want := []string{"identifier:x", "operator:+", "number:1"}
	if diff := cmp.Diff(want, shape(row)); diff != "" {
		t.Errorf("row children mismatch (-want +got):\n%s", diff)
	}
	form, err := attr.As[attr.Token](row.Child(1).Attr("form"))
	if err != nil || form != "infix" {
		t.Errorf("operator form = %v (%v), want infix", form, err)
	}
	if root.NeedsUpdate() || row.NeedsUpdate() {
		t.Errorf("elements are still dirty after build")
	}
}

func TestUpdateIdempotent(t *testing.T) {
	base := DefaultRegistry()
	calls := 0
	table := make(map[string]Procedures)
	for _, tag := range base.Tags() {
		p, _ := base.Lookup(tag)
		cp := *p
		if construct := cp.Construct; construct != nil {
			cp.Construct = func(b *Builder, n markup.NodeID, e *element.Element) {
				calls++
				construct(b, n, e)
			}
		}
		table[tag] = cp
	}

	doc, err := markup.ParseString(`<math><mfrac><mi>a</mi><mn>2</mn></mfrac></math>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	b := New(doc, NewRegistry(table), zaptest.NewLogger(t))
	first := b.RootElement()
	after := calls
	second := b.RootElement()

	if first != second {
		t.Errorf("root element changed between passes")
	}
	if calls != after {
		t.Errorf("second pass ran %d constructions, want 0", calls-after)
	}
}

func TestUnknownTag(t *testing.T) {
	log, warnings := countingLogger(t, "Unexpected tag, using placeholder")
	doc, err := markup.ParseString(`<math><mrow><foo/><mi>x</mi></mrow></math>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	b := New(doc, DefaultRegistry(), log)
	root := b.RootElement()

	want := []string{"dummy", "identifier:x"}
	if diff := cmp.Diff(want, shape(root.Child(0))); diff != "" {
		t.Errorf("row children mismatch (-want +got):\n%s", diff)
	}
	if *warnings != 1 {
		t.Errorf("got %d unexpected tag warnings, want 1", *warnings)
	}
}

func TestStyleInheritance(t *testing.T) {
	b, root := build(t, `<math><mstyle mathvariant="bold"><mi>x</mi></mstyle></math>`)
	mi := findToken(t, root, "x")

	if v, _ := attr.As[attr.Token](mi.Attr("mathvariant")); v != "bold" {
		t.Fatalf("mathvariant = %q, want bold", v)
	}

	style := root.Child(0)
	b.Document().SetAttr(style.Node(), "mathvariant", "italic")
	if !mi.NeedsUpdate() {
		t.Errorf("token was not invalidated by style change")
	}
	b.RootElement()
	if v, _ := attr.As[attr.Token](mi.Attr("mathvariant")); v != "italic" {
		t.Errorf("mathvariant = %q, want italic", v)
	}
}

func TestFixedArityPadding(t *testing.T) {
	log, warnings := countingLogger(t, "Unexpected number of children")
	doc, err := markup.ParseString(`<math><mfrac><mn>1</mn></mfrac></math>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	root := New(doc, DefaultRegistry(), log).RootElement()

	want := []string{"number:1", "dummy"}
	if diff := cmp.Diff(want, shape(root.Child(0))); diff != "" {
		t.Errorf("fraction children mismatch (-want +got):\n%s", diff)
	}
	if *warnings != 1 {
		t.Errorf("arity warning was not logged")
	}
}

func TestReentrantBuildPanics(t *testing.T) {
	doc, err := markup.ParseString(`<math/>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	reg := NewRegistry(map[string]Procedures{
		"math": {Kind: element.KindMath, Construct: func(b *Builder, n markup.NodeID, e *element.Element) {
			b.RootElement()
		}},
	})
	b := New(doc, reg, zaptest.NewLogger(t))

	defer func() {
		if recover() == nil {
			t.Errorf("re-entrant RootElement() did not panic")
		}
	}()
	b.RootElement()
}

func TestMultiscripts(t *testing.T) {
	_, root := build(t, `<math><mmultiscripts><mi>x</mi><mi>a</mi><mi>b</mi><mprescripts/><mi>c</mi><mi>d</mi></mmultiscripts></math>`)
	ms := root.Child(0)

	want := []string{"identifier:x", "identifier:a", "identifier:b", "identifier:c", "identifier:d"}
	if diff := cmp.Diff(want, shape(ms)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if ms.ScriptSplit() != 3 {
		t.Errorf("ScriptSplit() = %d, want 3", ms.ScriptSplit())
	}
}

func TestFenced(t *testing.T) {
	_, root := build(t, `<math><mfenced><mi>a</mi><mi>b</mi></mfenced></math>`)

	want := []string{"operator:(", "identifier:a", "operator:,", "identifier:b", "operator:)"}
	if diff := cmp.Diff(want, shape(root.Child(0))); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestLabeledRow(t *testing.T) {
	_, root := build(t, `<math><mtable><mlabeledtr><mtd><mn>1</mn></mtd><mtd><mi>x</mi></mtd></mlabeledtr><mi>y</mi></mtable></math>`)
	table := root.Child(0)

	if len(table.Children()) != 2 {
		t.Fatalf("table has %d rows, want 2", len(table.Children()))
	}
	labeled := table.Child(0)
	if labeled.Label() == nil || len(labeled.Children()) != 1 {
		t.Errorf("labeled row: label %v, %d cells", labeled.Label(), len(labeled.Children()))
	}
	inferred := table.Child(1)
	if inferred.Kind() != element.KindTableRow || inferred.Child(0).Kind() != element.KindCell {
		t.Errorf("stray content was not put into inferred row and cell:\n%s", element.Dump(table))
	}
}

func TestSemantics(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "presentation child",
			src:  `<math><semantics><mi>x</mi><annotation encoding="TeX">x</annotation></semantics></math>`,
			want: []string{"identifier:x"},
		},
		{
			name: "presentation annotation",
			src: `<math><semantics><annotation encoding="TeX">x+1</annotation>` +
				`<annotation-xml encoding="MathML-Content"><apply/></annotation-xml>` +
				`<annotation-xml encoding="MathML-Presentation"><mrow><mi>x</mi><mo>+</mo><mn>1</mn></mrow></annotation-xml>` +
				`</semantics></math>`,
			want: []string{"row"},
		},
		{
			name: "no presentation",
			src:  `<math><semantics><annotation-xml encoding="MathML-Content"><apply/></annotation-xml></semantics></math>`,
			want: []string{"dummy"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, root := build(t, tc.src)
			if diff := cmp.Diff(tc.want, shape(root)); diff != "" {
				t.Errorf("math children mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, root := build(t, `<math><semantics><annotation-xml encoding="MathML-Presentation">`+
		`<mrow><mi>x</mi><mo>+</mo><mn>1</mn></mrow></annotation-xml></semantics></math>`)
	want := []string{"identifier:x", "operator:+", "number:1"}
	if diff := cmp.Diff(want, shape(root.Child(0))); diff != "" {
		t.Errorf("annotation row children mismatch (-want +got):\n%s", diff)
	}
}
