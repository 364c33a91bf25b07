package builder

import (
	"go.uber.org/zap"

	"mview/attr"
	"mview/element"
	"mview/markup"
)

// nodeSource exposes attributes of a markup node, inline style
// declarations included, as refinement source.
type nodeSource struct {
	doc   *markup.Document
	n     markup.NodeID
	style map[string]string
}

func (b *Builder) source(n markup.NodeID) nodeSource {
	s := nodeSource{doc: b.doc, n: n}
	if raw, ok := b.doc.Attr(n, "style"); ok {
		s.style = attr.ParseStyle(raw)
	}
	return s
}

func (s nodeSource) Lookup(name string) (string, bool) {
	if v, ok := s.doc.Attr(s.n, name); ok {
		return v, true
	}
	v, ok := s.style[name]
	return v, ok
}

// inheritedSource restricts node source to attributes passed down by style
// providers.
type inheritedSource struct{ nodeSource }

func (s inheritedSource) Lookup(name string) (string, bool) {
	for _, a := range inheritable {
		if a == name {
			return s.nodeSource.Lookup(name)
		}
	}
	return "", false
}

// refineAttributes resolves every attribute of the procedures' catalog.
// Explicit values win over inherited ones, then overrides and declared
// defaults are used. Malformed values fall back to the default with a
// warning.
func (b *Builder) refineAttributes(n markup.NodeID, e *element.Element, sigs []*attr.Signature, overrides map[string]string) {
	src := b.source(n)
	for _, s := range sigs {
		raw, ok := "", false
		if s.FromElement {
			raw, ok = src.Lookup(s.Name)
		}
		if !ok && s.FromContext {
			raw, ok = b.ctx.Lookup(s.Name)
		}
		if ok {
			v, err := s.ParseValue(raw)
			if err == nil {
				e.SetAttr(s.Name, v)
				continue
			}
			b.log.Warn("Malformed attribute value, using default",
				zap.String("tag", e.Name()), zap.String("attr", s.Name), zap.String("value", raw), zap.Error(err))
		}
		if def, ok := overrides[s.Name]; ok {
			if v, err := s.ParseValue(def); err == nil {
				e.SetAttr(s.Name, v)
				continue
			}
		}
		if v := s.DefaultValue(); v.IsSet() {
			e.SetAttr(s.Name, v)
		} else {
			e.RemoveAttr(s.Name)
		}
	}
}

// refine is default Refine procedure.
func refine(b *Builder, n markup.NodeID, e *element.Element) {
	b.refineAttributes(n, e, b.procedures(e.Name()).Attributes, nil)
}

// refineOperator resolves operator attributes with dictionary defaults for
// the operator text and its form.
func refineOperator(b *Builder, n markup.NodeID, e *element.Element) {
	form, ok := b.doc.Attr(n, "form")
	if !ok {
		form = b.inferForm(n)
	}
	defaults := lookupOperator(b.tokenText(n), form).defaults()
	defaults["form"] = form
	b.refineAttributes(n, e, operatorAttrs, defaults)
}

// inferForm derives operator form from its position in the enclosing row.
func (b *Builder) inferForm(n markup.NodeID) string {
	parent := b.doc.Parent(n)
	if parent == markup.NoNode || !b.isLinear(parent) {
		return "infix"
	}
	siblings := b.elementChildren(parent)
	switch {
	case len(siblings) < 2:
		return "infix"
	case siblings[0] == n:
		return "prefix"
	case siblings[len(siblings)-1] == n:
		return "postfix"
	}
	return "infix"
}

// withContext runs f with style provider n pushed on refinement context.
func (b *Builder) withContext(n markup.NodeID, f func()) {
	b.ctx.Push(inheritedSource{b.source(n)})
	defer b.ctx.Pop()
	f()
}
