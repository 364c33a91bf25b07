package builder

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"mview/attr"
	"mview/element"
	"mview/markup"
)

func constructLinear(b *Builder, n markup.NodeID, e *element.Element) {
	e.SetChildren(b.childElements(e, n))
}

// arity lists number of children of fixed layout kinds.
var arity = map[element.Kind]int{
	element.KindFraction:  2,
	element.KindRoot:      2,
	element.KindSub:       2,
	element.KindSup:       2,
	element.KindSubsup:    3,
	element.KindUnder:     2,
	element.KindOver:      2,
	element.KindUnderover: 3,
}

func constructFixed(b *Builder, n markup.NodeID, e *element.Element) {
	children := b.childElements(e, n)
	want := arity[e.Kind()]
	if len(children) != want {
		b.warnArity(e, want, len(children))
		for len(children) < want {
			children = append(children, b.dummy())
		}
		children = children[:want]
	}
	e.SetChildren(children)
}

// constructStyle builds children with attributes of n available to them.
func constructStyle(b *Builder, n markup.NodeID, e *element.Element) {
	b.withContext(n, func() {
		constructLinear(b, n, e)
	})
}

// synthetic creates element without markup node.
func synthetic(kind element.Kind, name string, children ...*element.Element) *element.Element {
	e := element.New(kind, name, markup.NoNode)
	e.SetChildren(children)
	e.ResetBuildFlags()
	return e
}

func constructTable(b *Builder, n markup.NodeID, e *element.Element) {
	var rows []*element.Element
	for _, c := range b.childElements(e, n) {
		if c.Kind() != element.KindTableRow {
			b.log.Warn("Unexpected table content, inferring row", zap.String("tag", c.Name()))
			c = synthetic(element.KindTableRow, "mtr", synthetic(element.KindCell, "mtd", c))
		}
		rows = append(rows, c)
	}
	e.SetChildren(rows)
}

func constructTableRow(b *Builder, n markup.NodeID, e *element.Element) {
	children := b.childElements(e, n)
	if e.Name() == "mlabeledtr" {
		if len(children) == 0 {
			b.log.Warn("Labeled row without label")
		} else {
			e.SetLabel(children[0])
			children = children[1:]
		}
	}
	cells := make([]*element.Element, 0, len(children))
	for _, c := range children {
		if c.Kind() != element.KindCell {
			b.log.Warn("Unexpected row content, inferring cell", zap.String("tag", c.Name()))
			c = synthetic(element.KindCell, "mtd", c)
		}
		cells = append(cells, c)
	}
	e.SetChildren(cells)
}

// beginTable recognizes placeholder tables.
func beginTable(b *Builder, n markup.NodeID, e *element.Element) {
	if b.isPlaceholderTable(n) {
		e.SetMark(element.MarkWrapper)
	} else {
		e.ClearMark(element.MarkWrapper)
	}
}

func constructMultiscripts(b *Builder, n markup.NodeID, e *element.Element) {
	var (
		list  []*element.Element
		split int
	)
	for _, c := range b.childElements(e, n) {
		if c.Name() != "mprescripts" {
			list = append(list, c)
			continue
		}
		if split > 0 {
			b.log.Warn("Repeated prescripts marker, ignoring")
			continue
		}
		if len(list)%2 == 0 {
			// postscripts are pairs following base
			b.log.Warn("Incomplete postscript pair, padding")
			list = append(list, synthetic(element.KindRow, "none"))
		}
		split = len(list)
	}
	if len(list) == 0 {
		b.warnArity(e, 1, 0)
		list = append(list, b.dummy())
	}
	if split > 0 && (len(list)-split)%2 != 0 {
		b.log.Warn("Incomplete prescript pair, padding")
		list = append(list, synthetic(element.KindRow, "none"))
	}
	if split == 0 && len(list)%2 == 0 {
		b.log.Warn("Incomplete postscript pair, padding")
		list = append(list, synthetic(element.KindRow, "none"))
	}
	e.SetChildren(list)
	e.SetScriptSplit(split)
}

// constructFenced expands fenced list into row of synthetic operators.
func constructFenced(b *Builder, n markup.NodeID, e *element.Element) {
	var (
		children = b.childElements(e, n)
		open     = stringAttr(e, "open")
		closing  = stringAttr(e, "close")
		seps     = []rune(strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, stringAttr(e, "separators")))
		list []*element.Element
	)
	if open != "" {
		list = append(list, b.fence(open, "prefix"))
	}
	for i, c := range children {
		if i > 0 && len(seps) > 0 {
			list = append(list, b.fence(string(seps[min(i-1, len(seps)-1)]), "infix"))
		}
		list = append(list, c)
	}
	if closing != "" {
		list = append(list, b.fence(closing, "postfix"))
	}
	e.SetChildren(list)
}

func stringAttr(e *element.Element, name string) string {
	s, _ := attr.As[string](e.Attr(name))
	return s
}

func (b *Builder) fence(text, form string) *element.Element {
	op := element.New(element.KindOperator, "mo", markup.NoNode)
	op.SetRuns([]element.Run{{Kind: element.RunText, Text: text, Node: markup.NoNode}})
	defaults := lookupOperator(text, form).defaults()
	defaults["form"] = form
	if form != "infix" {
		defaults["fence"] = "true"
		defaults["stretchy"] = "true"
	}
	for _, s := range operatorAttrs {
		raw, ok := defaults[s.Name]
		if !ok {
			if v := s.DefaultValue(); v.IsSet() {
				op.SetAttr(s.Name, v)
			}
			continue
		}
		v, err := s.ParseValue(raw)
		if err != nil {
			b.log.Warn("Bad operator dictionary value", zap.String("name", s.Name), zap.Error(err))
			continue
		}
		op.SetAttr(s.Name, v)
	}
	op.ResetBuildFlags()
	return op
}

// constructGlyph builds identifier from mglyph found outside of a token.
func constructGlyph(b *Builder, n markup.NodeID, e *element.Element) {
	e.SetRuns([]element.Run{b.readGlyph(n)})
}

// endAction validates selection of maction.
func endAction(b *Builder, n markup.NodeID, e *element.Element) {
	sel := 1
	if v, err := attr.As[int](e.Attr("selection")); err == nil {
		sel = v
	}
	if sel < 1 || sel > len(e.Children()) {
		b.log.Warn("Action selection out of range", zap.Int("selection", sel), zap.Int("children", len(e.Children())))
	}
}

// DefaultRegistry returns procedures for MathML presentation elements.
func DefaultRegistry() *Registry {
	token := func(kind element.Kind, attrs []*attr.Signature) Procedures {
		return Procedures{Kind: kind, Refine: refine, Construct: constructToken, Attributes: attrs}
	}
	linear := func(kind element.Kind, attrs []*attr.Signature) Procedures {
		return Procedures{Kind: kind, Refine: refine, Construct: constructLinear, Linear: true, Attributes: attrs}
	}
	fixed := func(kind element.Kind, tag string, attrs []*attr.Signature) Procedures {
		return Procedures{
			Kind:          kind,
			Refine:        refine,
			Construct:     constructFixed,
			Attributes:    attrs,
			CreateDefault: defaultSubtree(tag, arity[kind]),
		}
	}

	mi := token(element.KindIdentifier, tokenAttrs)
	mi.CreateDefault = defaultIdentifier
	mo := token(element.KindOperator, operatorAttrs)
	mo.Refine = refineOperator
	mrow := linear(element.KindRow, colorAttrs)
	mrow.CreateDefault = defaultSubtree("mrow", 1)
	msqrt := linear(element.KindSqrt, colorAttrs)
	msqrt.CreateDefault = defaultSubtree("msqrt", 1)
	mstyle := linear(element.KindStyle, styleAttrs)
	mstyle.Construct = constructStyle
	math := linear(element.KindMath, mathAttrs)
	math.Construct = constructStyle
	maction := linear(element.KindAction, actionAttrs)
	maction.Linear, maction.End = false, endAction
	mtr := Procedures{Kind: element.KindTableRow, Refine: refine, Construct: constructTableRow, Attributes: tableRowAttrs}

	return NewRegistry(map[string]Procedures{
		"math":   math,
		"mi":     mi,
		"mn":     token(element.KindNumber, tokenAttrs),
		"mo":     mo,
		"mtext":  token(element.KindText, tokenAttrs),
		"ms":     token(element.KindString, stringAttrs),
		"mspace": {Kind: element.KindSpace, Refine: refine, Attributes: spaceAttrs},
		"mglyph": {Kind: element.KindIdentifier, Refine: refine, Construct: constructGlyph, Attributes: tokenAttrs},

		"malignmark":  {Kind: element.KindSpace},
		"maligngroup": {Kind: element.KindSpace},

		"mrow":     mrow,
		"mstyle":   mstyle,
		"merror":   linear(element.KindError, colorAttrs),
		"mpadded":  linear(element.KindPadded, paddedAttrs),
		"mphantom": linear(element.KindPhantom, colorAttrs),
		"menclose": linear(element.KindEnclose, encloseAttrs),
		"msqrt":    msqrt,
		"maction":  maction,
		"mfenced":  {Kind: element.KindRow, Refine: refine, Construct: constructFenced, Attributes: fencedAttrs},

		"mfrac":      fixed(element.KindFraction, "mfrac", fractionAttrs),
		"mroot":      fixed(element.KindRoot, "mroot", colorAttrs),
		"msub":       fixed(element.KindSub, "msub", scriptAttrs),
		"msup":       fixed(element.KindSup, "msup", scriptAttrs),
		"msubsup":    fixed(element.KindSubsup, "msubsup", scriptAttrs),
		"munder":     fixed(element.KindUnder, "munder", underOverAttrs),
		"mover":      fixed(element.KindOver, "mover", underOverAttrs),
		"munderover": fixed(element.KindUnderover, "munderover", underOverAttrs),

		"mmultiscripts": {Kind: element.KindMultiscripts, Refine: refine, Construct: constructMultiscripts, Attributes: scriptAttrs},
		"mprescripts":   {Kind: element.KindRow},
		"none":          {Kind: element.KindRow},

		"mtable":     {Kind: element.KindTable, Begin: beginTable, Refine: refine, Construct: constructTable, Attributes: tableAttrs},
		"mtr":        mtr,
		"mlabeledtr": mtr,
		"mtd":        linear(element.KindCell, cellAttrs),

		// resolved to presentation child, registered for the fallback
		"semantics": {Kind: element.KindDummy},
	})
}
