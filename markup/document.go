// Package markup is in-memory document tree the engine reads from and
// performs structural editing on. Nodes live in an arena and are addressed
// by stable indexes, links between nodes are indexes as well.
package markup

import (
	"fmt"
	"slices"
)

// NodeID addresses node within its document.
type NodeID int32

// NoNode is sentinel used for absent links.
const NoNode NodeID = -1

// MathNS is MathML namespace URI.
const MathNS = "http://www.w3.org/1998/Math/MathML"

type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	ProcInstNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case ProcInstNode:
		return "procinst"
	}
	return fmt.Sprintf("NodeType(%d)", t)
}

// Change describes what happened to a node.
type Change uint8

const (
	// ChangeAttribute - attribute was set or removed.
	ChangeAttribute Change = iota + 1
	// ChangeChildren - child was inserted or removed.
	ChangeChildren
	// ChangeValue - value of text node was modified.
	ChangeValue
)

// Observer is notified about modifications of the document.
type Observer interface {
	NodeChanged(n NodeID, c Change)
	NodeFreed(n NodeID)
}

type Attr struct {
	Space string
	Key   string
	Value string
}

type node struct {
	typ    NodeType
	space  string
	prefix string
	tag    string
	value  string
	attrs  []Attr
	parent NodeID
	first  NodeID
	last   NodeID
	prev   NodeID
	next   NodeID
	live   bool
}

// Document owns all nodes. Not safe for concurrent use.
type Document struct {
	nodes    []node
	free     []NodeID
	root     NodeID
	observer Observer
}

func NewDocument() *Document {
	return &Document{root: NoNode}
}

// SetObserver installs change observer, nil removes it.
func (d *Document) SetObserver(o Observer) {
	d.observer = o
}

func (d *Document) Root() NodeID { return d.root }

// SetRoot makes n root of the document. Previous root is left allocated.
func (d *Document) SetRoot(n NodeID) {
	d.mustBeLive(n)
	d.root = n
}

func (d *Document) alloc(nd node) NodeID {
	nd.parent, nd.first, nd.last, nd.prev, nd.next = NoNode, NoNode, NoNode, NoNode, NoNode
	nd.live = true
	if l := len(d.free); l > 0 {
		id := d.free[l-1]
		d.free = d.free[:l-1]
		d.nodes[id] = nd
		return id
	}
	d.nodes = append(d.nodes, nd)
	return NodeID(len(d.nodes) - 1)
}

// CreateElement allocates detached element node.
func (d *Document) CreateElement(space, tag string) NodeID {
	return d.alloc(node{typ: ElementNode, space: space, tag: tag})
}

// CreateText wraps string into detached text node.
func (d *Document) CreateText(value string) NodeID {
	return d.alloc(node{typ: TextNode, value: value})
}

func (d *Document) CreateComment(value string) NodeID {
	return d.alloc(node{typ: CommentNode, value: value})
}

func (d *Document) CreateProcInst(target, inst string) NodeID {
	return d.alloc(node{typ: ProcInstNode, tag: target, value: inst})
}

// Valid reports whether n addresses live node.
func (d *Document) Valid(n NodeID) bool {
	return n >= 0 && int(n) < len(d.nodes) && d.nodes[n].live
}

func (d *Document) mustBeLive(n NodeID) *node {
	if !d.Valid(n) {
		panic(fmt.Sprintf("markup: invalid node %d", n))
	}
	return &d.nodes[n]
}

// Len returns number of live nodes.
func (d *Document) Len() int {
	return len(d.nodes) - len(d.free)
}

func (d *Document) Type(n NodeID) NodeType   { return d.mustBeLive(n).typ }
func (d *Document) Namespace(n NodeID) string { return d.mustBeLive(n).space }
func (d *Document) Tag(n NodeID) string       { return d.mustBeLive(n).tag }
func (d *Document) Value(n NodeID) string     { return d.mustBeLive(n).value }
func (d *Document) Parent(n NodeID) NodeID    { return d.mustBeLive(n).parent }
func (d *Document) FirstChild(n NodeID) NodeID {
	return d.mustBeLive(n).first
}
func (d *Document) LastChild(n NodeID) NodeID   { return d.mustBeLive(n).last }
func (d *Document) NextSibling(n NodeID) NodeID { return d.mustBeLive(n).next }
func (d *Document) PrevSibling(n NodeID) NodeID { return d.mustBeLive(n).prev }

// IsElement reports whether n is element with given namespace and tag.
func (d *Document) IsElement(n NodeID, space, tag string) bool {
	if !d.Valid(n) {
		return false
	}
	nd := &d.nodes[n]
	return nd.typ == ElementNode && nd.space == space && nd.tag == tag
}

// SetValue replaces value of text node.
func (d *Document) SetValue(n NodeID, value string) {
	nd := d.mustBeLive(n)
	if nd.value == value {
		return
	}
	nd.value = value
	d.notify(n, ChangeValue)
}

// Attr returns value of attribute in no namespace.
func (d *Document) Attr(n NodeID, key string) (string, bool) {
	for _, a := range d.mustBeLive(n).attrs {
		if a.Space == "" && a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (d *Document) HasAttr(n NodeID, key string) bool {
	_, ok := d.Attr(n, key)
	return ok
}

// Attrs returns copy of all node attributes.
func (d *Document) Attrs(n NodeID) []Attr {
	return slices.Clone(d.mustBeLive(n).attrs)
}

func (d *Document) SetAttr(n NodeID, key, value string) {
	nd := d.mustBeLive(n)
	for i, a := range nd.attrs {
		if a.Space == "" && a.Key == key {
			if a.Value == value {
				return
			}
			nd.attrs[i].Value = value
			d.notify(n, ChangeAttribute)
			return
		}
	}
	nd.attrs = append(nd.attrs, Attr{Key: key, Value: value})
	d.notify(n, ChangeAttribute)
}

func (d *Document) RemoveAttr(n NodeID, key string) {
	nd := d.mustBeLive(n)
	for i, a := range nd.attrs {
		if a.Space == "" && a.Key == key {
			nd.attrs = slices.Delete(nd.attrs, i, i+1)
			d.notify(n, ChangeAttribute)
			return
		}
	}
}

// Low level link manipulation. These do not keep the tree consistent and do
// not notify observer, callers must finish the rewiring themselves.

func (d *Document) SetParent(n, parent NodeID) { d.mustBeLive(n).parent = parent }
func (d *Document) SetNextSibling(n, next NodeID) {
	d.mustBeLive(n).next = next
}
func (d *Document) SetPrevSibling(n, prev NodeID) {
	d.mustBeLive(n).prev = prev
}

// Unlink detaches n from its parent and siblings. Node stays allocated.
func (d *Document) Unlink(n NodeID) {
	nd := d.mustBeLive(n)
	parent := nd.parent
	if parent == NoNode {
		return
	}
	if nd.prev != NoNode {
		d.nodes[nd.prev].next = nd.next
	} else {
		d.nodes[parent].first = nd.next
	}
	if nd.next != NoNode {
		d.nodes[nd.next].prev = nd.prev
	} else {
		d.nodes[parent].last = nd.prev
	}
	nd.parent, nd.prev, nd.next = NoNode, NoNode, NoNode
	d.notify(parent, ChangeChildren)
}

// Free unlinks n and releases it together with all its descendants.
func (d *Document) Free(n NodeID) {
	d.Unlink(n)
	if d.root == n {
		d.root = NoNode
	}
	d.release(n)
}

func (d *Document) release(n NodeID) {
	for c := d.nodes[n].first; c != NoNode; {
		next := d.nodes[c].next
		d.release(c)
		c = next
	}
	d.nodes[n] = node{}
	d.free = append(d.free, n)
	if d.observer != nil {
		d.observer.NodeFreed(n)
	}
}

func (d *Document) mustBeDetached(n NodeID) {
	nd := d.mustBeLive(n)
	if nd.parent != NoNode {
		panic(fmt.Sprintf("markup: node %d is already linked", n))
	}
	if n == d.root {
		panic(fmt.Sprintf("markup: node %d is document root", n))
	}
}

// AppendChild inserts detached child as the last child of parent.
func (d *Document) AppendChild(parent, child NodeID) {
	p := d.mustBeLive(parent)
	d.mustBeDetached(child)
	c := &d.nodes[child]
	c.parent = parent
	c.prev = p.last
	if p.last != NoNode {
		d.nodes[p.last].next = child
	} else {
		p.first = child
	}
	p.last = child
	d.notify(parent, ChangeChildren)
}

// InsertNextSibling inserts detached n right after ref.
func (d *Document) InsertNextSibling(ref, n NodeID) {
	r := d.mustBeLive(ref)
	if r.parent == NoNode {
		panic(fmt.Sprintf("markup: node %d has no parent", ref))
	}
	d.mustBeDetached(n)
	c := &d.nodes[n]
	c.parent, c.prev, c.next = r.parent, ref, r.next
	if r.next != NoNode {
		d.nodes[r.next].prev = n
	} else {
		d.nodes[r.parent].last = n
	}
	r.next = n
	d.notify(c.parent, ChangeChildren)
}

// InsertPrevSibling inserts detached n right before ref.
func (d *Document) InsertPrevSibling(ref, n NodeID) {
	r := d.mustBeLive(ref)
	if r.parent == NoNode {
		panic(fmt.Sprintf("markup: node %d has no parent", ref))
	}
	d.mustBeDetached(n)
	c := &d.nodes[n]
	c.parent, c.prev, c.next = r.parent, r.prev, ref
	if r.prev != NoNode {
		d.nodes[r.prev].next = n
	} else {
		d.nodes[r.parent].first = n
	}
	r.prev = n
	d.notify(c.parent, ChangeChildren)
}

// Replace puts detached n in place of old, old is unlinked but not freed.
// Replacing document root makes n the new root.
func (d *Document) Replace(old, n NodeID) {
	o := d.mustBeLive(old)
	if o.parent == NoNode {
		if old != d.root {
			panic(fmt.Sprintf("markup: node %d has no parent", old))
		}
		d.mustBeDetached(n)
		d.root = n
		return
	}
	d.InsertNextSibling(old, n)
	d.Unlink(old)
}

// Children returns all children of n in document order.
func (d *Document) Children(n NodeID) []NodeID {
	var res []NodeID
	for c := d.mustBeLive(n).first; c != NoNode; c = d.nodes[c].next {
		res = append(res, c)
	}
	return res
}

// Text returns concatenated values of text children of n.
func (d *Document) Text(n NodeID) string {
	var s string
	for c := d.mustBeLive(n).first; c != NoNode; c = d.nodes[c].next {
		if d.nodes[c].typ == TextNode {
			s += d.nodes[c].value
		}
	}
	return s
}

// Clone makes detached deep copy of n.
func (d *Document) Clone(n NodeID) NodeID {
	src := *d.mustBeLive(n)
	src.attrs = slices.Clone(src.attrs)
	cp := d.alloc(src)
	for c := src.first; c != NoNode; c = d.nodes[c].next {
		d.appendQuiet(cp, d.Clone(c))
	}
	return cp
}

// appendQuiet links child without notification, used while building
// detached subtrees.
func (d *Document) appendQuiet(parent, child NodeID) {
	p, c := &d.nodes[parent], &d.nodes[child]
	c.parent, c.prev = parent, p.last
	if p.last != NoNode {
		d.nodes[p.last].next = child
	} else {
		p.first = child
	}
	p.last = child
}

func (d *Document) notify(n NodeID, c Change) {
	if d.observer != nil {
		d.observer.NodeChanged(n, c)
	}
}
