package builder

import (
	"maps"
	"slices"

	"mview/attr"
	"mview/element"
	"mview/markup"
)

// Procedure is one step of element update.
type Procedure func(b *Builder, n markup.NodeID, e *element.Element)

// DefaultSubtree creates detached markup for newly inserted element in the
// given namespace and returns its root and the node which should receive the
// cursor.
type DefaultSubtree func(doc *markup.Document, space string) (root, cursor markup.NodeID)

// Procedures describe how elements for one tag are built. Update runs
// Begin, Refine, Construct and End in this order, any of them may be nil.
type Procedures struct {
	Kind      element.Kind
	Begin     Procedure
	Refine    Procedure
	Construct Procedure
	End       Procedure
	// CreateDefault is set for tags which can be inserted while editing.
	CreateDefault DefaultSubtree
	// Linear elements accept any number of children, new siblings may be
	// inserted next to their children directly.
	Linear bool
	// Attributes refined by default Refine.
	Attributes []*attr.Signature
}

// Registry maps tags to procedures. It is never modified after creation
// and may be shared by any number of builders.
type Registry struct {
	procs map[string]*Procedures
}

// NewRegistry makes registry from the table, entries are copied.
func NewRegistry(table map[string]Procedures) *Registry {
	r := &Registry{procs: make(map[string]*Procedures, len(table))}
	for tag, p := range table {
		r.procs[tag] = &p
	}
	return r
}

// Lookup returns procedures registered for tag.
func (r *Registry) Lookup(tag string) (*Procedures, bool) {
	p, ok := r.procs[tag]
	return p, ok
}

// Tags returns registered tags sorted.
func (r *Registry) Tags() []string {
	return slices.Sorted(maps.Keys(r.procs))
}

// Insertable returns tags having default subtree procedure.
func (r *Registry) Insertable() []string {
	var res []string
	for _, tag := range r.Tags() {
		if r.procs[tag].CreateDefault != nil {
			res = append(res, tag)
		}
	}
	return res
}
