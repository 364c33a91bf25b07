// Package builder keeps element tree in sync with markup. Structural edits
// requested on elements are realized as markup surgery and re-absorbed on
// the next pass.
package builder

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"mview/attr"
	"mview/element"
	"mview/markup"
)

// UnwrapThreshold is content length at which a token leaves its placeholder
// table.
const UnwrapThreshold = 1

// maxRestarts bounds re-walks of one parent during a single pass.
const maxRestarts = 64

var (
	// ErrEmptyClipboard is returned when nothing was copied yet.
	ErrEmptyClipboard = errors.New("clipboard is empty")
	// ErrNotInsertable is returned for tags without default subtree.
	ErrNotInsertable = errors.New("element cannot be inserted")
)

// ImageLoader fetches picture referenced by mglyph src.
type ImageLoader func(src string) (image.Image, error)

// Builder creates and updates elements for markup nodes of one document.
type Builder struct {
	doc    *markup.Document
	reg    *Registry
	log    *zap.Logger
	linker *Linker
	ctx    attr.Context
	images ImageLoader

	clipboard markup.NodeID
	building  bool
}

// New creates builder and installs it as document observer.
func New(doc *markup.Document, reg *Registry, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Builder{
		doc:       doc,
		reg:       reg,
		log:       log.Named("builder"),
		linker:    NewLinker(),
		clipboard: markup.NoNode,
	}
	doc.SetObserver(b)
	return b
}

func (b *Builder) Document() *markup.Document { return b.doc }
func (b *Builder) Registry() *Registry        { return b.reg }
func (b *Builder) Linker() *Linker            { return b.linker }

// SetImageLoader installs loader used for mglyph src references.
func (b *Builder) SetImageLoader(l ImageLoader) {
	b.images = l
}

// Close detaches builder from the document.
func (b *Builder) Close() {
	b.doc.SetObserver(nil)
	b.linker.Clear()
	if b.clipboard != markup.NoNode {
		b.doc.Free(b.clipboard)
		b.clipboard = markup.NoNode
	}
}

func (b *Builder) enter() {
	if b.building {
		panic("builder: re-entrant call while building")
	}
	b.building = true
}

func (b *Builder) leave() {
	b.building = false
}

// RootElement brings element tree of the document root up to date and
// returns its root, nil for empty document.
func (b *Builder) RootElement() *element.Element {
	root := b.doc.Root()
	if !b.doc.Valid(root) {
		return nil
	}
	b.enter()
	defer b.leave()

	e := b.resolve(root)
	if e.Intent() != element.IntentNone {
		// nobody above root can take over pending motion
		b.log.Debug("Dropping edit intent at root", zap.Stringer("intent", e.Intent()))
		e.ClearIntent()
	}
	return e
}

// Update brings element of n up to date and returns it.
func (b *Builder) Update(n markup.NodeID) *element.Element {
	b.enter()
	defer b.leave()
	return b.update(n)
}

// Element returns element already linked to n without updating it.
func (b *Builder) Element(n markup.NodeID) *element.Element {
	return b.linker.Get(n)
}

func (b *Builder) procedures(tag string) *Procedures {
	if p, ok := b.reg.Lookup(tag); ok {
		return p
	}
	return &unknownProcedures
}

var unknownProcedures = Procedures{Kind: element.KindDummy}

// getOrCreate returns element linked to n creating it when necessary.
func (b *Builder) getOrCreate(n markup.NodeID) *element.Element {
	tag := b.doc.Tag(n)
	if e := b.linker.Get(n); e != nil && e.Name() == tag {
		return e
	}
	kind := element.KindDummy
	switch p, ok := b.reg.Lookup(tag); {
	case b.doc.Namespace(n) != markup.MathNS && b.doc.Namespace(n) != "":
		b.log.Warn("Unexpected namespace, using placeholder", zap.String("tag", tag), zap.String("namespace", b.doc.Namespace(n)))
	case !ok:
		b.log.Warn("Unexpected tag, using placeholder", zap.String("tag", tag))
	default:
		kind = p.Kind
	}
	e := element.New(kind, tag, n)
	b.linker.Add(n, e)
	return e
}

// update runs procedures of a dirty element.
func (b *Builder) update(n markup.NodeID) *element.Element {
	e := b.getOrCreate(n)
	if !e.NeedsUpdate() {
		return e
	}
	p := b.procedures(e.Name())
	if e.Kind() == element.KindDummy {
		p = &unknownProcedures
	}
	for _, step := range []Procedure{p.Begin, p.Refine, p.Construct, p.End} {
		if step != nil {
			step(b, n, e)
		}
	}
	e.ResetBuildFlags()
	return e
}

// resolve returns element standing for n in its parent: semantics resolve
// to their presentation child or, lacking one, to content of presentation
// annotation.
func (b *Builder) resolve(n markup.NodeID) *element.Element {
	if b.doc.Tag(n) != "semantics" {
		return b.update(n)
	}
	for it := b.doc.Elements(n, markup.Any, markup.Any); it.More(); it.Next() {
		switch b.doc.Tag(it.Element()) {
		case "annotation", "annotation-xml":
			continue
		}
		return b.resolve(it.Element())
	}
	for it := b.doc.Elements(n, markup.Any, "annotation-xml"); it.More(); it.Next() {
		if enc, _ := b.doc.Attr(it.Element(), "encoding"); enc != "MathML-Presentation" {
			continue
		}
		for c := b.doc.Elements(it.Element(), markup.Any, markup.Any); c.More(); c.Next() {
			if ns := b.doc.Namespace(c.Element()); ns == markup.MathNS || ns == "" {
				return b.resolve(c.Element())
			}
		}
	}
	b.log.Warn("Semantics without presentation child, using placeholder")
	e := b.getOrCreate(n)
	e.ResetBuildFlags()
	return e
}

// NodeChanged implements markup.Observer.
func (b *Builder) NodeChanged(n markup.NodeID, c markup.Change) {
	if b.building {
		// builder reconciles its own surgery
		return
	}
	switch c {
	case markup.ChangeAttribute:
		e := b.linker.Get(n)
		if e == nil {
			return
		}
		if e.Kind() == element.KindStyle || e.Kind() == element.KindMath {
			e.SetDirtyAttributeInherited()
		}
		e.SetDirtyAttribute()
	default:
		if e := b.nearest(n); e != nil {
			e.SetDirtyStructure()
		}
	}
}

// NodeFreed implements markup.Observer.
func (b *Builder) NodeFreed(n markup.NodeID) {
	if e := b.linker.Forget(n); e != nil {
		e.Detach()
	}
	if n == b.clipboard {
		b.clipboard = markup.NoNode
	}
}

// nearest returns element linked to n or to its closest ancestor.
func (b *Builder) nearest(n markup.NodeID) *element.Element {
	for ; n != markup.NoNode; n = b.doc.Parent(n) {
		if e := b.linker.Get(n); e != nil {
			return e
		}
	}
	return nil
}

// CursorElement returns the element holding the caret, nil when there is
// none.
func (b *Builder) CursorElement() *element.Element {
	m := b.linker.Marked(element.MarkCursor)
	if len(m) == 0 {
		return nil
	}
	return m[0]
}

// moveCursor makes target the only cursor holder.
func (b *Builder) moveCursor(target *element.Element, place func(*element.Element)) {
	for _, e := range b.linker.Marked(element.MarkCursor) {
		if e != target {
			e.ResetCursor()
		}
	}
	place(target)
}

// MoveCursor places caret of token target after index characters and makes
// it the only cursor holder.
func (b *Builder) MoveCursor(target *element.Element, index int) {
	b.moveCursor(target, func(e *element.Element) { e.SetCursorIndex(index) })
}

// Copy stores deep copy of n as clipboard content.
func (b *Builder) Copy(n markup.NodeID) {
	if b.clipboard != markup.NoNode {
		b.doc.Free(b.clipboard)
	}
	b.clipboard = b.doc.Clone(n)
}

// Clipboard returns copied subtree, NoNode when empty.
func (b *Builder) Clipboard() markup.NodeID { return b.clipboard }

// ReplaceWithPlaceholder substitutes n with empty slot receiving the
// cursor. Used to delete elements without breaking arity of their parent.
func (b *Builder) ReplaceWithPlaceholder(n markup.NodeID) error {
	if n == b.doc.Root() {
		return fmt.Errorf("unable to replace document root")
	}
	if b.doc.Parent(n) == markup.NoNode {
		return fmt.Errorf("node %d is not linked", n)
	}
	mi := b.doc.CreateElement(b.doc.Namespace(n), "mi")
	b.doc.Replace(n, mi)
	b.doc.Free(n)
	e := b.getOrCreate(mi)
	e.SetMark(element.MarkWrapperNeeded)
	b.moveCursor(e, (*element.Element).SetFirstCursorPosition)
	return nil
}

// elementChildren lists element child nodes of n.
func (b *Builder) elementChildren(n markup.NodeID) []markup.NodeID {
	var res []markup.NodeID
	for it := b.doc.Elements(n, markup.Any, markup.Any); it.More(); it.Next() {
		res = append(res, it.Element())
	}
	return res
}

// isLinear reports whether new siblings may be inserted next to children of
// n.
func (b *Builder) isLinear(n markup.NodeID) bool {
	if n == markup.NoNode {
		return false
	}
	return b.procedures(b.doc.Tag(n)).Linear
}

func (b *Builder) warnArity(e *element.Element, want, got int) {
	b.log.Warn("Unexpected number of children", zap.String("tag", e.Name()), zap.Int("want", want), zap.Int("got", got))
}

func (b *Builder) dummy() *element.Element {
	e := element.New(element.KindDummy, "dummy", markup.NoNode)
	e.ResetBuildFlags()
	return e
}
