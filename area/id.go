package area

import (
	"fmt"
	"strings"
)

// ID is path from the root area down to one of its descendants. Areas,
// origins and character offsets along the path are cached and validated
// lazily: a cache is valid when it has exactly one entry more than the path,
// entry 0 describing the root itself. Origin and length entries are deltas
// relative to the parent level.
type ID struct {
	root    Area
	path    []int
	areas   []Area
	origins []Point
	lengths []int
}

func NewID(root Area) *ID {
	return &ID{root: root}
}

// Root returns area the path starts from.
func (id *ID) Root() Area { return id.root }

// Path returns copy of child indexes from the root down.
func (id *ID) Path() []int { return append([]int(nil), id.path...) }

func (id *ID) Empty() bool { return len(id.path) == 0 }
func (id *ID) Size() int   { return len(id.path) }

func (id *ID) Clear() {
	id.path = id.path[:0]
	id.areas = id.areas[:0]
	id.origins = id.origins[:0]
	id.lengths = id.lengths[:0]
}

// Append extends the path by one level.
func (id *ID) Append(index int) {
	id.path = append(id.path, index)
}

// AppendKnown extends the path supplying already computed child area,
// origin delta and length delta. Caches are extended only when they are
// valid up to the current level, otherwise they are recomputed on access.
func (id *ID) AppendKnown(index int, a Area, origin Point, length int) {
	valid := len(id.path) + 1
	id.path = append(id.path, index)
	if len(id.areas) == valid {
		id.areas = append(id.areas, a)
	}
	if len(id.origins) == valid {
		id.origins = append(id.origins, origin)
	}
	if len(id.lengths) == valid {
		id.lengths = append(id.lengths, length)
	}
}

// PopBack removes the deepest level.
func (id *ID) PopBack() {
	if len(id.path) == 0 {
		panic("area: pop from empty id")
	}
	id.path = id.path[:len(id.path)-1]
	n := len(id.path) + 1
	if len(id.areas) > n {
		id.areas = id.areas[:n]
	}
	if len(id.origins) > n {
		id.origins = id.origins[:n]
	}
	if len(id.lengths) > n {
		id.lengths = id.lengths[:n]
	}
}

func (id *ID) validateAreas() {
	if len(id.areas) == 0 {
		id.areas = append(id.areas, id.root)
	}
	for len(id.areas) < len(id.path)+1 {
		level := len(id.areas) - 1
		id.areas = append(id.areas, id.areas[level].Child(id.path[level]))
	}
}

func (id *ID) validateOrigins() {
	id.validateAreas()
	if len(id.origins) == 0 {
		id.origins = append(id.origins, Point{})
	}
	for len(id.origins) < len(id.path)+1 {
		level := len(id.origins) - 1
		id.origins = append(id.origins, id.areas[level].Origin(id.path[level]))
	}
}

func (id *ID) validateLengths() {
	id.validateAreas()
	if len(id.lengths) == 0 {
		id.lengths = append(id.lengths, 0)
	}
	for len(id.lengths) < len(id.path)+1 {
		level := len(id.lengths) - 1
		id.lengths = append(id.lengths, lengthBefore(id.areas[level], id.path[level]))
	}
}

// lengthBefore sums lengths of the children preceding i.
func lengthBefore(a Area, i int) int {
	n := 0
	for k := range i {
		n += a.Child(k).Length()
	}
	return n
}

func (id *ID) level(i int) int {
	if i < 0 {
		i += len(id.path) + 1
	}
	if i < 0 || i > len(id.path) {
		panic(fmt.Sprintf("area: id level %d out of range [0, %d]", i, len(id.path)))
	}
	return i
}

// Area returns area at given depth, -1 being the deepest one.
func (id *ID) Area(depth int) Area {
	id.validateAreas()
	return id.areas[id.level(depth)]
}

// Origin returns origin of the area at depth to relative to the area at
// depth from.
func (id *ID) Origin(from, to int) Point {
	id.validateOrigins()
	var p Point
	for _, o := range id.origins[id.level(from)+1 : id.level(to)+1] {
		p = p.Add(o)
	}
	return p
}

// Length returns character offset of the area at depth to within the area
// at depth from.
func (id *ID) Length(from, to int) int {
	id.validateLengths()
	n := 0
	for _, l := range id.lengths[id.level(from)+1 : id.level(to)+1] {
		n += l
	}
	return n
}

func (id *ID) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range id.path {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d", p)
	}
	sb.WriteString("]")
	return sb.String()
}
