package builder

import (
	"maps"
	"slices"

	"mview/element"
	"mview/markup"
)

// Linker associates markup nodes with elements built for them so that
// repeated passes keep element identity.
type Linker struct {
	elems map[markup.NodeID]*element.Element
}

func NewLinker() *Linker {
	return &Linker{elems: make(map[markup.NodeID]*element.Element)}
}

// Get returns element linked to n, nil if there is none.
func (l *Linker) Get(n markup.NodeID) *element.Element {
	return l.elems[n]
}

func (l *Linker) Add(n markup.NodeID, e *element.Element) {
	l.elems[n] = e
}

// Forget drops association and returns element which was linked to n.
func (l *Linker) Forget(n markup.NodeID) *element.Element {
	e := l.elems[n]
	delete(l.elems, n)
	return e
}

func (l *Linker) Len() int { return len(l.elems) }

// Marked returns linked elements carrying mark ordered by node.
func (l *Linker) Marked(m element.Mark) []*element.Element {
	var res []*element.Element
	for _, n := range slices.Sorted(maps.Keys(l.elems)) {
		if e := l.elems[n]; e.Marked(m) {
			res = append(res, e)
		}
	}
	return res
}

// Clear forgets every association.
func (l *Linker) Clear() {
	clear(l.elems)
}
