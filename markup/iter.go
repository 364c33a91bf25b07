package markup

// Any matches every namespace or tag in iterator filters.
const Any = "*"

// ElementIterator walks element children of a node accepting only those
// matching namespace and tag filters. Text, comments and processing
// instructions are skipped. Iteration is lazy so the tree may be modified
// between steps as long as the current node stays linked.
type ElementIterator struct {
	doc    *Document
	parent NodeID
	space  string
	tag    string
	cur    NodeID
}

// Elements returns iterator positioned at the first matching child of
// parent.
func (d *Document) Elements(parent NodeID, space, tag string) *ElementIterator {
	it := &ElementIterator{doc: d, parent: parent, space: space, tag: tag}
	it.Reset()
	return it
}

func (it *ElementIterator) valid(n NodeID) bool {
	nd := &it.doc.nodes[n]
	if nd.typ != ElementNode {
		return false
	}
	if it.space != Any && nd.space != it.space {
		return false
	}
	return it.tag == Any || nd.tag == it.tag
}

func (it *ElementIterator) findValid(n NodeID) NodeID {
	for n != NoNode && !it.valid(n) {
		n = it.doc.nodes[n].next
	}
	return n
}

// Reset restarts iteration from the first child.
func (it *ElementIterator) Reset() {
	it.cur = it.findValid(it.doc.FirstChild(it.parent))
}

// More reports whether current position holds an element.
func (it *ElementIterator) More() bool { return it.cur != NoNode }

// Element returns current element.
func (it *ElementIterator) Element() NodeID { return it.cur }

// Next advances to the following matching sibling.
func (it *ElementIterator) Next() {
	if it.cur == NoNode {
		panic("markup: next on exhausted iterator")
	}
	it.cur = it.findValid(it.doc.NextSibling(it.cur))
}

// SetCurrent repositions iterator at n, which must be a child of the
// iterated parent.
func (it *ElementIterator) SetCurrent(n NodeID) {
	if n != NoNode && it.doc.Parent(n) != it.parent {
		panic("markup: iterator moved outside of its parent")
	}
	it.cur = it.findValid(n)
}

// NodeIterator is unfiltered analogue of ElementIterator.
type NodeIterator struct {
	doc *Document
	cur NodeID
}

func (d *Document) Nodes(parent NodeID) *NodeIterator {
	return &NodeIterator{doc: d, cur: d.FirstChild(parent)}
}

func (it *NodeIterator) More() bool   { return it.cur != NoNode }
func (it *NodeIterator) Node() NodeID { return it.cur }

func (it *NodeIterator) Next() {
	if it.cur == NoNode {
		panic("markup: next on exhausted iterator")
	}
	it.cur = it.doc.NextSibling(it.cur)
}
