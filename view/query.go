package view

import (
	"golang.org/x/image/math/fixed"

	"mview/area"
	"mview/element"
)

// Extents locate an area: origin relative to some reference and its box.
type Extents struct {
	Origin area.Point
	Box    area.BoundingBox
}

// AreaAt returns path to the leaf area containing the point.
func (v *View) AreaAt(x, y fixed.Int26_6) (*area.ID, bool) {
	a := v.RootArea()
	if a == nil {
		return nil, false
	}
	id := area.NewID(a)
	if !id.SearchByCoords(x, y) {
		return nil, false
	}
	return id, true
}

// owner walks id outwards to the closest area produced by an element and
// returns the element with depth of its area.
func owner(id *area.ID) (*element.Element, int) {
	for depth := id.Size(); depth >= 0; depth-- {
		if e, ok := id.Area(depth).Owner().(*element.Element); ok {
			return e, depth
		}
	}
	return nil, -1
}

// ElementAt returns the deepest element whose area contains the point.
// Points hitting no leaf, such as gaps next to scripts, go to the innermost
// container enclosing them.
func (v *View) ElementAt(x, y fixed.Int26_6) (*element.Element, Extents, bool) {
	id, ok := v.AreaAt(x, y)
	if !ok {
		if id, ok = v.containerAt(x, y); !ok {
			return nil, Extents{}, false
		}
	}
	e, depth := owner(id)
	if e == nil {
		return nil, Extents{}, false
	}
	return e, Extents{Origin: id.Origin(0, depth), Box: id.Area(depth).Box()}, true
}

// containerAt descends through areas whose boxes contain the point.
func (v *View) containerAt(x, y fixed.Int26_6) (*area.ID, bool) {
	a := v.RootArea()
	if a == nil || !a.Box().Contains(x, y) {
		return nil, false
	}
	id := area.NewID(a)
	for {
		a, o := id.Area(-1), id.Origin(0, -1)
		next := -1
		for i := range a.Size() {
			c := o.Add(a.Origin(i))
			if a.Child(i).Box().Contains(x-c.X, y-c.Y) {
				next = i
				break
			}
		}
		if next < 0 {
			return id, true
		}
		id.Append(next)
	}
}

// CharAt returns element under the point and caret index within it closest
// to the point.
func (v *View) CharAt(x, y fixed.Int26_6) (*element.Element, int, bool) {
	id, ok := v.AreaAt(x, y)
	if !ok {
		return nil, 0, false
	}
	e, depth := owner(id)
	if e == nil {
		return nil, 0, false
	}
	o := id.Origin(0, -1)
	leaf := id.Area(-1)
	i, ok := leaf.IndexOfPosition(x-o.X, y-o.Y)
	if !ok || leaf.Length() == 0 {
		i = 0
	}
	index := id.Length(depth, -1) + i
	if e.Kind().IsToken() {
		index = min(index, e.ContentLength())
	}
	return e, index, true
}

// ElementExtents returns origin of elem relative to ref and its box. Nil ref
// stands for the root.
func (v *View) ElementExtents(ref, elem *element.Element) (Extents, bool) {
	base := v.RootArea()
	if ref != nil {
		base = ref.Area()
	}
	if base == nil || elem == nil || elem.Area() == nil {
		return Extents{}, false
	}
	id := area.NewID(base)
	if !id.SearchByArea(elem.Area()) {
		return Extents{}, false
	}
	return Extents{Origin: id.Origin(0, -1), Box: elem.Area().Box()}, true
}

// ElementLength returns number of characters in the area of elem.
func (v *View) ElementLength(elem *element.Element) int {
	v.RootArea()
	if elem == nil || elem.Area() == nil {
		return 0
	}
	return elem.Area().Length()
}

// CharExtents returns origin relative to the root and box of character
// index of elem.
func (v *View) CharExtents(elem *element.Element, index int) (Extents, bool) {
	root := v.RootArea()
	if root == nil || elem == nil || elem.Area() == nil {
		return Extents{}, false
	}
	id := area.NewID(root)
	if !id.SearchByArea(elem.Area()) || !id.SearchByIndex(index) {
		return Extents{}, false
	}
	return Extents{Origin: id.Origin(0, -1), Box: id.Area(-1).Box()}, true
}
