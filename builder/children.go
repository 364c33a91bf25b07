package builder

import (
	"go.uber.org/zap"

	"mview/element"
	"mview/markup"
)

// childElements resolves element children of n in document order and
// realizes edit intents pending on them. Any markup surgery restarts the
// walk from the first child.
func (b *Builder) childElements(parent *element.Element, n markup.NodeID) []*element.Element {
	for restarts := 0; ; restarts++ {
		res, again := b.walkChildren(parent, n)
		if !again {
			return res
		}
		if restarts == maxRestarts {
			b.log.Error("Too many restarts while building children, giving up", zap.Stringer("element", parent))
			return res
		}
	}
}

func (b *Builder) walkChildren(parent *element.Element, n markup.NodeID) ([]*element.Element, bool) {
	var (
		res    []*element.Element
		linear = b.isLinear(n)
	)
	for it := b.doc.Elements(n, markup.Any, markup.Any); it.More(); it.Next() {
		c := it.Element()
		e := b.resolve(c)
		if !linear && e.Kind().IsToken() && e.ContentLength() == 0 {
			// empty slot of fixed layout
			e.SetMark(element.MarkWrapperNeeded)
		}
		if b.placeholder(c, e) {
			return res, true
		}
		if b.isWrapped(c) {
			// intents of wrapped tokens are realized around the wrapper
			res = append(res, e)
			continue
		}
		subject := e
		if e.Marked(element.MarkWrapper) {
			if t := b.wrappedElement(c); t != nil {
				subject = t
			}
		}
		if subject.Intent() != element.IntentNone && b.realize(parent, n, c, subject) {
			return res, true
		}
		res = append(res, e)
	}
	return res, false
}

// placeholder wraps empty slot tokens into placeholder table and unwraps
// tokens which gained content. Returns true when markup was modified.
func (b *Builder) placeholder(c markup.NodeID, e *element.Element) bool {
	switch {
	case e.Kind().IsToken() && e.Marked(element.MarkWrapperNeeded) && e.ContentLength() == 0 &&
		e.Node() == c && !b.isWrapped(c):
		b.wrap(c)
		return true
	case e.Marked(element.MarkWrapper):
		t := b.wrappedElement(c)
		if t != nil && t.ContentLength() >= UnwrapThreshold {
			b.unwrap(c, t.Node())
			return true
		}
	}
	return false
}

// realize performs surgery requested by intent of e standing at child c of
// n. Returns true when markup was modified.
func (b *Builder) realize(parent *element.Element, n, c markup.NodeID, e *element.Element) bool {
	intent := e.Intent()
	b.log.Debug("Realizing edit intent", zap.Stringer("intent", intent), zap.Stringer("element", e))
	switch intent {
	case element.IntentInsert:
		e.ClearIntent()
		b.insertSlot(c, true, false)
		return true

	case element.IntentInsertRight, element.IntentInsertLeft:
		e.ClearIntent()
		b.insertSlot(c, intent == element.IntentInsertRight, true)
		return true

	case element.IntentDelete:
		e.ClearIntent()
		return b.deleteBefore(n, c, e)

	case element.IntentSplit:
		name := e.InsertName()
		e.ClearIntent()
		return b.split(c, e, name)

	case element.IntentPaste:
		e.ClearIntent()
		return b.paste(c)

	case element.IntentMoveNext, element.IntentMovePrev:
		e.ClearIntent()
		b.moveHorizontally(parent, c, intent)
		return false

	case element.IntentMoveUp, element.IntentMoveDown:
		e.ClearIntent()
		b.moveVertically(parent, n, c, intent)
		return false
	}
	return false
}

// handOff passes unresolved cursor motion to the enclosing element.
func (b *Builder) handOff(parent *element.Element, intent element.Intent) {
	if err := parent.SetIntent(intent); err != nil {
		b.log.Warn("Unable to pass cursor motion outwards", zap.Error(err))
	}
}

func (b *Builder) moveHorizontally(parent *element.Element, c markup.NodeID, intent element.Intent) {
	forward := intent == element.IntentMoveNext
	sibling := b.prevElement(c)
	if forward {
		sibling = b.nextElement(c)
	}
	if sibling == markup.NoNode {
		b.handOff(parent, intent)
		return
	}
	target := b.resolve(sibling)
	if target.Kind().IsToken() && target.ContentLength() > 0 {
		// the gap between adjacent tokens is a single caret position
		if forward {
			b.moveCursor(target, func(t *element.Element) { t.SetCursorIndex(1) })
		} else {
			b.moveCursor(target, func(t *element.Element) { t.SetCursorIndex(t.ContentLength() - 1) })
		}
		return
	}
	if forward {
		if t := firstToken(target); t != nil {
			b.moveCursor(t, (*element.Element).SetFirstCursorPosition)
		}
	} else if t := lastToken(target); t != nil {
		b.moveCursor(t, (*element.Element).SetLastCursorPosition)
	}
}

func (b *Builder) moveVertically(parent *element.Element, n, c markup.NodeID, intent element.Intent) {
	siblings := b.elementChildren(n)
	slot := -1
	for i, s := range siblings {
		if s == c {
			slot = i
		}
	}
	target, ok := verticalNeighbor(parent.Kind(), slot, len(siblings), intent == element.IntentMoveUp)
	if !ok {
		b.handOff(parent, intent)
		return
	}
	if t := firstToken(b.resolve(siblings[target])); t != nil {
		b.moveCursor(t, (*element.Element).SetFirstCursorPosition)
	}
}

// verticalNeighbor returns slot visually above or below given one.
func verticalNeighbor(kind element.Kind, slot, count int, up bool) (int, bool) {
	type move struct {
		from int
		up   bool
	}
	var table map[move]int
	switch kind {
	case element.KindFraction:
		table = map[move]int{{1, true}: 0, {0, false}: 1}
	case element.KindSup, element.KindOver:
		table = map[move]int{{0, true}: 1, {1, false}: 0}
	case element.KindSub, element.KindUnder:
		table = map[move]int{{0, false}: 1, {1, true}: 0}
	case element.KindSubsup:
		table = map[move]int{{0, true}: 2, {0, false}: 1, {1, true}: 2, {2, false}: 1}
	case element.KindUnderover:
		table = map[move]int{{0, true}: 2, {0, false}: 1, {1, true}: 0, {2, false}: 0}
	case element.KindRoot:
		table = map[move]int{{0, true}: 1, {1, false}: 0}
	case element.KindTable:
		if up && slot > 0 {
			return slot - 1, true
		}
		if !up && slot >= 0 && slot < count-1 {
			return slot + 1, true
		}
		return 0, false
	}
	t, ok := table[move{slot, up}]
	return t, ok && t < count
}

func firstToken(e *element.Element) *element.Element {
	var res *element.Element
	e.Walk(func(el *element.Element) bool {
		if el.Kind().IsToken() && el.Node() != markup.NoNode {
			res = el
			return false
		}
		return true
	})
	return res
}

func lastToken(e *element.Element) *element.Element {
	var res *element.Element
	e.Walk(func(el *element.Element) bool {
		if el.Kind().IsToken() && el.Node() != markup.NoNode {
			res = el
		}
		return true
	})
	return res
}

func (b *Builder) prevElement(c markup.NodeID) markup.NodeID {
	for s := b.doc.PrevSibling(c); s != markup.NoNode; s = b.doc.PrevSibling(s) {
		if b.doc.Type(s) == markup.ElementNode {
			return s
		}
	}
	return markup.NoNode
}

func (b *Builder) nextElement(c markup.NodeID) markup.NodeID {
	for s := b.doc.NextSibling(c); s != markup.NoNode; s = b.doc.NextSibling(s) {
		if b.doc.Type(s) == markup.ElementNode {
			return s
		}
	}
	return markup.NoNode
}
