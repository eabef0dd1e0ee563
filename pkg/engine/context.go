package engine

// Context is an ordered capability mapping supplied to a running template.
// Each entry binds a name to a function or data value visible to template
// code. Insertion order is significant: it determines the positional
// parameter order of the constructed procedure, so the same Context always
// produces the same parameter list.
type Context struct {
	names  []string
	values map[string]any
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{values: make(map[string]any)}
}

// Set binds value under name and returns the Context for chaining. A new
// name is appended; an existing name keeps its position and only the value
// changes.
func (c *Context) Set(name string, value any) *Context {
	if _, ok := c.values[name]; !ok {
		c.names = append(c.names, name)
	}
	c.values[name] = value
	return c
}

// Get returns the value bound under name.
func (c *Context) Get(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Has reports whether name is bound.
func (c *Context) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Len returns the number of bound capabilities.
func (c *Context) Len() int {
	return len(c.names)
}

// Names returns the capability names in insertion order.
func (c *Context) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Clone returns a shallow copy. The values themselves are shared; the
// ordering and the mapping are independent of the original.
func (c *Context) Clone() *Context {
	out := &Context{
		names:  make([]string, len(c.names)),
		values: make(map[string]any, len(c.values)),
	}
	copy(out.names, c.names)
	for k, v := range c.values {
		out.values[k] = v
	}
	return out
}

// Merge returns a copy of c with every entry of over written on top of it.
// The merge is shallow and right-biased: an over entry always replaces a
// same-named entry of c, keeping its position, and novel entries append in
// over's order. Nil over is treated as empty.
func (c *Context) Merge(over *Context) *Context {
	out := c.Clone()
	if over == nil {
		return out
	}
	for _, name := range over.names {
		out.Set(name, over.values[name])
	}
	return out
}
