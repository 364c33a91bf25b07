// Package element is semantic tree of a formula. Elements are created and
// kept in sync with markup by the builder and lay themselves out into areas.
package element

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"mview/area"
	"mview/attr"
	"mview/markup"
)

// ErrIntentPending is returned when a structural edit is requested on an
// element which already has a different one pending.
var ErrIntentPending = errors.New("element already has pending edit intent")

type flags uint8

const (
	flagDirtyStructure flags = 1 << iota
	flagDirtyAttribute
	flagDirtyAttributeInherited
	flagDirtyLayout
	// flagDirtyBelow is set on ancestors of elements needing rebuild so that
	// the builder walk reaches them.
	flagDirtyBelow
)

// Mark is non structural state attached to an element. Marks can coexist.
type Mark uint8

const (
	// MarkCursor - token holds the caret.
	MarkCursor Mark = 1 << iota
	// MarkWrapper - element is part of placeholder wrapping.
	MarkWrapper
	// MarkWrapperNeeded - empty token must be wrapped into placeholder.
	MarkWrapperNeeded
	// MarkSelected - element is selected.
	MarkSelected
	// MarkContentSet - token content was edited and must be written back.
	MarkContentSet
)

// Element is one node of the semantic tree.
type Element struct {
	kind   Kind
	name   string
	node   markup.NodeID
	parent *Element

	flags  flags
	marks  Mark
	intent Intent
	// insertName is tag of element to insert for split intent.
	insertName string

	children []*Element
	label    *Element
	// split is index of the first prescript child of multiscripts.
	split int

	runs         []Run
	removed      []markup.NodeID
	cursorChild  int
	cursorOffset int

	attrs map[string]attr.Value

	area     area.Area
	formedAt frameKey
}

// New creates element of given kind linked to markup node. Synthesized
// elements use markup.NoNode. New elements are dirty in every dimension.
func New(kind Kind, name string, node markup.NodeID) *Element {
	return &Element{
		kind:         kind,
		name:         name,
		node:         node,
		flags:        flagDirtyStructure | flagDirtyAttribute | flagDirtyLayout,
		cursorOffset: -1,
		attrs:        make(map[string]attr.Value),
	}
}

func (e *Element) Kind() Kind           { return e.kind }
func (e *Element) Name() string         { return e.name }
func (e *Element) Node() markup.NodeID  { return e.node }
func (e *Element) Parent() *Element     { return e.parent }
func (e *Element) Children() []*Element { return e.children }

func (e *Element) String() string {
	return fmt.Sprintf("%s<%s>#%d", e.kind, e.name, e.node)
}

// Detach forgets markup node, used when the node is freed.
func (e *Element) Detach() {
	e.node = markup.NoNode
}

// Child returns i-th child or nil.
func (e *Element) Child(i int) *Element {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// SetChildren replaces children. Layout is invalidated only when content
// actually changes.
func (e *Element) SetChildren(children []*Element) {
	if slices.Equal(e.children, children) {
		return
	}
	for _, c := range children {
		if c.parent != e {
			c.parent = e
			// cached layout was computed in different surroundings
			c.invalidateSubtree()
		}
	}
	e.children = children
	e.SetDirtyLayout()
}

// SetLabel sets label of labeled table row.
func (e *Element) SetLabel(label *Element) {
	if e.label == label {
		return
	}
	if label != nil {
		label.parent = e
		label.invalidateSubtree()
	}
	e.label = label
	e.SetDirtyLayout()
}

func (e *Element) Label() *Element { return e.label }

// SetScriptSplit records index of the first prescript child.
func (e *Element) SetScriptSplit(i int) {
	if e.split != i {
		e.split = i
		e.SetDirtyLayout()
	}
}

func (e *Element) ScriptSplit() int { return e.split }

func (e *Element) invalidateSubtree() {
	e.flags |= flagDirtyLayout
	for _, c := range e.children {
		c.invalidateSubtree()
	}
	if e.label != nil {
		e.label.invalidateSubtree()
	}
}

// Dirty flags.

func (e *Element) DirtyStructure() bool { return e.flags&flagDirtyStructure != 0 }
func (e *Element) DirtyAttribute() bool { return e.flags&flagDirtyAttribute != 0 }
func (e *Element) DirtyAttributeInherited() bool {
	return e.flags&flagDirtyAttributeInherited != 0
}
func (e *Element) DirtyLayout() bool { return e.flags&flagDirtyLayout != 0 }
func (e *Element) DirtyBelow() bool  { return e.flags&flagDirtyBelow != 0 }

// NeedsUpdate reports whether builder has to run on this element.
func (e *Element) NeedsUpdate() bool {
	return e.flags&(flagDirtyStructure|flagDirtyAttribute|flagDirtyAttributeInherited|flagDirtyBelow) != 0
}

// ResetBuildFlags clears everything builder is responsible for.
func (e *Element) ResetBuildFlags() {
	e.flags &^= flagDirtyStructure | flagDirtyAttribute | flagDirtyAttributeInherited | flagDirtyBelow
}

func (e *Element) markBelow() {
	for p := e.parent; p != nil; p = p.parent {
		p.flags |= flagDirtyBelow
	}
}

// SetDirtyLayout marks element and all its ancestors for re-layout.
func (e *Element) SetDirtyLayout() {
	for p := e; p != nil; p = p.parent {
		p.flags |= flagDirtyLayout
	}
}

// SetDirtyStructure marks element and its ancestors for reconstruction.
func (e *Element) SetDirtyStructure() {
	for p := e; p != nil; p = p.parent {
		p.flags |= flagDirtyStructure | flagDirtyLayout
	}
}

// SetDirtyAttribute requests attribute refinement of this element.
func (e *Element) SetDirtyAttribute() {
	e.flags |= flagDirtyAttribute
	e.markBelow()
}

// SetDirtyAttributeInherited requests refinement of the element and every
// descendant reading inherited attributes.
func (e *Element) SetDirtyAttributeInherited() {
	e.setInheritedDown()
	e.markBelow()
}

func (e *Element) setInheritedDown() {
	if e.kind.ReadsContext() {
		e.flags |= flagDirtyAttributeInherited
	}
	for _, c := range e.children {
		c.setInheritedDown()
		if c.NeedsUpdate() {
			e.flags |= flagDirtyBelow
		}
	}
}

// ReadsContext reports whether elements of the kind inherit attributes from
// style providers.
func (k Kind) ReadsContext() bool {
	switch k {
	case KindDummy, KindTableRow, KindCell:
		return false
	}
	return true
}

// Intent returns pending structural edit.
func (e *Element) Intent() Intent { return e.intent }

// InsertName returns tag requested with split intent.
func (e *Element) InsertName() string { return e.insertName }

// SetIntent requests structural edit. At most one intent can be pending.
func (e *Element) SetIntent(i Intent) error {
	if e.intent != IntentNone && e.intent != i {
		return fmt.Errorf("%w: %s requested while %s is pending on %s", ErrIntentPending, i, e.intent, e)
	}
	e.intent = i
	if i != IntentNone {
		e.SetDirtyStructure()
	}
	return nil
}

// RequestSplit sets split intent inserting element with given tag.
func (e *Element) RequestSplit(name string) error {
	if err := e.SetIntent(IntentSplit); err != nil {
		return err
	}
	e.insertName = name
	return nil
}

// ClearIntent drops pending intent.
func (e *Element) ClearIntent() {
	e.intent = IntentNone
	e.insertName = ""
}

// Marks.

func (e *Element) Marked(m Mark) bool { return e.marks&m != 0 }

func (e *Element) SetMark(m Mark) {
	if e.marks&m == m {
		return
	}
	e.marks |= m
	if m&(MarkCursor|MarkSelected) != 0 {
		e.SetDirtyLayout()
	}
}

func (e *Element) ClearMark(m Mark) {
	if e.marks&m == 0 {
		return
	}
	e.marks &^= m
	if m&(MarkCursor|MarkSelected) != 0 {
		e.SetDirtyLayout()
	}
}

// Attributes.

// Attr returns refined attribute value, unset Value if absent.
func (e *Element) Attr(name string) attr.Value { return e.attrs[name] }

// SetAttr stores refined value, invalidating layout on change.
func (e *Element) SetAttr(name string, v attr.Value) {
	if old, ok := e.attrs[name]; ok && old.String() == v.String() {
		return
	}
	e.attrs[name] = v
	e.SetDirtyLayout()
}

func (e *Element) RemoveAttr(name string) {
	if _, ok := e.attrs[name]; !ok {
		return
	}
	delete(e.attrs, name)
	e.SetDirtyLayout()
}

// AttrNames returns sorted names of refined attributes.
func (e *Element) AttrNames() []string {
	return slices.Sorted(maps.Keys(e.attrs))
}

// Area returns last formatted area, nil if never formatted.
func (e *Element) Area() area.Area { return e.area }

// Walk visits element subtree in document order until f returns false.
func (e *Element) Walk(f func(*Element) bool) bool {
	if !f(e) {
		return false
	}
	if e.label != nil && !e.label.Walk(f) {
		return false
	}
	for _, c := range e.children {
		if !c.Walk(f) {
			return false
		}
	}
	return true
}

// Find returns first element of the subtree carrying mark.
func (e *Element) Find(m Mark) *Element {
	var found *Element
	e.Walk(func(el *Element) bool {
		if el.Marked(m) {
			found = el
			return false
		}
		return true
	})
	return found
}

// FindAll returns every element of the subtree carrying mark.
func (e *Element) FindAll(m Mark) []*Element {
	var res []*Element
	e.Walk(func(el *Element) bool {
		if el.Marked(m) {
			res = append(res, el)
		}
		return true
	})
	return res
}
