package builder

import (
	"strings"

	"go.uber.org/zap"

	"mview/element"
	"mview/markup"
)

// only returns the single element child of n, NoNode when there are none or
// several or when it does not have expected tag.
func (b *Builder) only(n markup.NodeID, tag string) markup.NodeID {
	if n == markup.NoNode {
		return markup.NoNode
	}
	res := markup.NoNode
	for it := b.doc.Elements(n, markup.Any, markup.Any); it.More(); it.Next() {
		if res != markup.NoNode {
			return markup.NoNode
		}
		res = it.Element()
	}
	if res == markup.NoNode || (tag != "" && b.doc.Tag(res) != tag) {
		return markup.NoNode
	}
	return res
}

// wrappedNode returns token held by placeholder table t.
func (b *Builder) wrappedNode(t markup.NodeID) markup.NodeID {
	tok := b.only(b.only(b.only(t, "mtr"), "mtd"), "")
	if tok == markup.NoNode || !b.procedures(b.doc.Tag(tok)).Kind.IsToken() {
		return markup.NoNode
	}
	return tok
}

// isPlaceholderTable recognizes one cell dashed table holding single token.
func (b *Builder) isPlaceholderTable(t markup.NodeID) bool {
	if t == markup.NoNode || b.doc.Tag(t) != "mtable" {
		return false
	}
	if frame, _ := b.doc.Attr(t, "frame"); frame != "dashed" {
		return false
	}
	return b.wrappedNode(t) != markup.NoNode
}

func (b *Builder) wrappedElement(t markup.NodeID) *element.Element {
	if tok := b.wrappedNode(t); tok != markup.NoNode {
		return b.linker.Get(tok)
	}
	return nil
}

// isWrapped reports whether c sits inside placeholder table.
func (b *Builder) isWrapped(c markup.NodeID) bool {
	cell := b.doc.Parent(c)
	if cell == markup.NoNode || b.doc.Tag(cell) != "mtd" {
		return false
	}
	row := b.doc.Parent(cell)
	if row == markup.NoNode {
		return false
	}
	return b.isPlaceholderTable(b.doc.Parent(row))
}

func (b *Builder) wrap(c markup.NodeID) {
	b.log.Debug("Wrapping empty slot", zap.Int32("node", int32(c)))
	space := b.doc.Namespace(c)
	table := b.doc.CreateElement(space, "mtable")
	b.doc.SetAttr(table, "frame", "dashed")
	b.doc.SetAttr(table, "equalcolumns", "false")
	b.doc.SetAttr(table, "framespacing", "0.5mm 0mm")
	row := b.doc.CreateElement(space, "mtr")
	cell := b.doc.CreateElement(space, "mtd")
	b.doc.AppendChild(table, row)
	b.doc.AppendChild(row, cell)
	b.doc.Replace(c, table)
	b.doc.AppendChild(cell, c)
}

func (b *Builder) unwrap(table, tok markup.NodeID) {
	b.log.Debug("Unwrapping filled slot", zap.Int32("node", int32(tok)))
	b.doc.Unlink(tok)
	b.doc.Replace(table, tok)
	b.doc.Free(table)
}

// ensureLinear puts c into mrow unless its parent already accepts new
// siblings.
func (b *Builder) ensureLinear(c markup.NodeID) {
	if b.isLinear(b.doc.Parent(c)) {
		return
	}
	row := b.doc.CreateElement(b.doc.Namespace(c), "mrow")
	b.doc.Replace(c, row)
	b.doc.AppendChild(row, c)
}

// markSlots flags empty identifiers of freshly created subtree as slots.
func (b *Builder) markSlots(n markup.NodeID) {
	if b.doc.Tag(n) == "mi" && b.doc.FirstChild(n) == markup.NoNode {
		b.getOrCreate(n).SetMark(element.MarkWrapperNeeded)
		return
	}
	for _, c := range b.elementChildren(n) {
		b.markSlots(c)
	}
}

func (b *Builder) insertSlot(c markup.NodeID, after, cursor bool) {
	b.ensureLinear(c)
	mi := b.doc.CreateElement(b.doc.Namespace(c), "mi")
	if after {
		b.doc.InsertNextSibling(c, mi)
	} else {
		b.doc.InsertPrevSibling(c, mi)
	}
	e := b.getOrCreate(mi)
	e.SetMark(element.MarkWrapperNeeded)
	if cursor {
		b.moveCursor(e, (*element.Element).SetFirstCursorPosition)
	}
}

// deleteBefore removes element preceding c. Children of fixed layouts have
// no deletable neighbours, c itself gives way to an empty slot there.
func (b *Builder) deleteBefore(n, c markup.NodeID, e *element.Element) bool {
	if !b.isLinear(n) {
		if e.Kind().IsToken() && e.ContentLength() == 0 {
			// already a slot
			return false
		}
		if err := b.ReplaceWithPlaceholder(c); err != nil {
			b.log.Warn("Unable to clear slot", zap.Error(err))
			return false
		}
		return true
	}
	if prev := b.prevElement(c); prev != markup.NoNode {
		b.doc.Free(prev)
		if q := b.prevElement(c); q != markup.NoNode {
			if t := lastToken(b.resolve(q)); t != nil {
				b.moveCursor(t, (*element.Element).SetLastCursorPosition)
			}
		}
		return true
	}
	// nothing to the left, drop empty slot itself
	next := b.nextElement(c)
	if !e.Kind().IsToken() || e.ContentLength() != 0 || next == markup.NoNode {
		return false
	}
	b.doc.Free(c)
	if t := firstToken(b.resolve(next)); t != nil {
		b.moveCursor(t, (*element.Element).SetFirstCursorPosition)
	}
	return true
}

// split inserts default subtree of named element at the caret of token e.
func (b *Builder) split(c markup.NodeID, e *element.Element, name string) bool {
	p := b.procedures(name)
	if p.CreateDefault == nil {
		b.log.Warn("Element cannot be inserted", zap.String("tag", name))
		return false
	}
	tok := e.Node()
	if tok == markup.NoNode || (c != tok && !b.isPlaceholderTable(c)) {
		b.log.Warn("Unable to split element", zap.Stringer("element", e))
		return false
	}
	sub, cur := p.CreateDefault(b.doc, b.doc.Namespace(c))
	b.markSlots(sub)

	switch idx := e.CursorIndex(); {
	case c != tok, e.ContentLength() == 0:
		b.doc.Replace(c, sub)
		b.doc.Free(c)
	case idx == 0:
		b.ensureLinear(c)
		b.doc.InsertPrevSibling(c, sub)
	case idx >= e.ContentLength():
		b.ensureLinear(c)
		b.doc.InsertNextSibling(c, sub)
	default:
		b.ensureLinear(c)
		b.splitToken(c, e)
		b.doc.InsertNextSibling(c, sub)
		e.SetDirtyStructure()
	}
	b.moveCursor(b.getOrCreate(cur), (*element.Element).SetFirstCursorPosition)
	return true
}

// splitToken moves content of token c following the caret into new token
// of the same kind placed right after c.
func (b *Builder) splitToken(c markup.NodeID, e *element.Element) markup.NodeID {
	tail := b.doc.CreateElement(b.doc.Namespace(c), b.doc.Tag(c))
	for _, a := range b.doc.Attrs(c) {
		b.doc.SetAttr(tail, a.Key, a.Value)
	}
	child, off := e.Cursor()
	runs := e.Runs()
	if r := runs[child]; r.Kind == element.RunText && r.Node != markup.NoNode {
		chars := element.Chars(r.Text)
		if off+1 < len(chars) {
			b.doc.SetValue(r.Node, strings.Join(chars[:off+1], ""))
			b.doc.AppendChild(tail, b.doc.CreateText(strings.Join(chars[off+1:], "")))
		}
	}
	for _, r := range runs[child+1:] {
		if r.Node != markup.NoNode {
			b.doc.Unlink(r.Node)
			b.doc.AppendChild(tail, r.Node)
		}
	}
	b.doc.InsertNextSibling(c, tail)
	return tail
}

func (b *Builder) paste(c markup.NodeID) bool {
	if b.clipboard == markup.NoNode {
		b.log.Warn("Nothing to paste")
		return false
	}
	b.ensureLinear(c)
	cp := b.doc.Clone(b.clipboard)
	b.doc.InsertNextSibling(c, cp)
	if t := lastToken(b.resolve(cp)); t != nil {
		b.moveCursor(t, (*element.Element).SetLastCursorPosition)
	}
	return true
}

// defaultSubtree returns constructor of tag holding given number of empty
// identifier slots, cursor goes to the first slot.
func defaultSubtree(tag string, slots int) DefaultSubtree {
	return func(doc *markup.Document, space string) (markup.NodeID, markup.NodeID) {
		root := doc.CreateElement(space, tag)
		cursor := root
		for i := range slots {
			mi := doc.CreateElement(space, "mi")
			doc.AppendChild(root, mi)
			if i == 0 {
				cursor = mi
			}
		}
		return root, cursor
	}
}

func defaultIdentifier(doc *markup.Document, space string) (markup.NodeID, markup.NodeID) {
	mi := doc.CreateElement(space, "mi")
	return mi, mi
}
