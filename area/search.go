package area

import "golang.org/x/image/math/fixed"

// SearchByCoords descends from the current end of the path into the
// children containing point (x, y) given relative to that area. It reports
// whether a leaf containing the point was reached, the path is left pointing
// at it. On failure the path is restored.
func (id *ID) SearchByCoords(x, y fixed.Int26_6) bool {
	return searchByCoords(id, id.Area(-1), x, y)
}

func searchByCoords(id *ID, a Area, x, y fixed.Int26_6) bool {
	if a.Size() == 0 {
		return a.Box().Contains(x, y)
	}
	length := 0
	for i := range a.Size() {
		c, o := a.Child(i), a.Origin(i)
		id.AppendKnown(i, c, o, length)
		if searchByCoords(id, c, x-o.X, y-o.Y) {
			return true
		}
		id.PopBack()
		length += c.Length()
	}
	return false
}

// SearchByIndex descends into the children covering character index given
// relative to the current end of the path.
func (id *ID) SearchByIndex(index int) bool {
	return searchByIndex(id, id.Area(-1), index)
}

func searchByIndex(id *ID, a Area, index int) bool {
	if index < 0 || index >= a.Length() {
		return false
	}
	if a.Size() == 0 {
		return true
	}
	offset := 0
	for i := range a.Size() {
		c := a.Child(i)
		l := c.Length()
		if index >= offset && index < offset+l {
			id.AppendKnown(i, c, a.Origin(i), offset)
			if searchByIndex(id, c, index-offset) {
				return true
			}
			id.PopBack()
			return false
		}
		offset += l
	}
	return false
}

// SearchByArea descends until target is found by identity.
func (id *ID) SearchByArea(target Area) bool {
	return searchByArea(id, id.Area(-1), target)
}

func searchByArea(id *ID, a, target Area) bool {
	if a == target {
		return true
	}
	length := 0
	for i := range a.Size() {
		c, o := a.Child(i), a.Origin(i)
		id.AppendKnown(i, c, o, length)
		if searchByArea(id, c, target) {
			return true
		}
		id.PopBack()
		length += c.Length()
	}
	return false
}

// SearchByCoordsSimple returns the deepest area of the tree containing point
// relative to root origin, or nil.
func SearchByCoordsSimple(root Area, x, y fixed.Int26_6) Area {
	id := NewID(root)
	if !id.SearchByCoords(x, y) {
		return nil
	}
	return id.Area(-1)
}
