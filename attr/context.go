package attr

// Source provides raw attribute text by name.
type Source interface {
	Lookup(name string) (string, bool)
}

// SourceFunc adapts function to Source.
type SourceFunc func(name string) (string, bool)

func (f SourceFunc) Lookup(name string) (string, bool) { return f(name) }

// Context is stack of style providers consulted for inherited attributes,
// the innermost provider wins.
type Context struct {
	stack []Source
}

func (c *Context) Push(s Source) { c.stack = append(c.stack, s) }

func (c *Context) Pop() {
	if len(c.stack) == 0 {
		panic("attr: pop from empty refinement context")
	}
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Context) Depth() int { return len(c.stack) }

// Lookup searches providers from the innermost outwards.
func (c *Context) Lookup(name string) (string, bool) {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if v, ok := c.stack[i].Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}
