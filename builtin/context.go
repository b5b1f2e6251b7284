package builtin

import (
	"maps"
	"slices"
)

// NowKey is the context binding holding the reference timestamp used by
// fromNow when no explicit reference is given.
const NowKey = "now"

// Context is the read-only environment passed to every builtin call.
//
// A Context owns a set of bindings and may derive from a parent. Lookups walk
// the parent chain; [Context.Has] only considers the context's own bindings.
// A nil *Context behaves like an empty context.
type Context struct {
	parent *Context
	vars   map[string]any
}

// NewContext returns a context owning a copy of vars.
func NewContext(vars map[string]any) *Context {
	return &Context{vars: maps.Clone(vars)}
}

// Child returns a new context owning a copy of vars whose lookups fall back
// to c.
func (c *Context) Child(vars map[string]any) *Context {
	return &Context{parent: c, vars: maps.Clone(vars)}
}

// Parent returns the context c derives from, or nil.
func (c *Context) Parent() *Context {
	if c == nil {
		return nil
	}

	return c.parent
}

// Has reports whether name is bound by c itself, ignoring any parent.
func (c *Context) Has(name string) bool {
	if c == nil {
		return false
	}

	_, ok := c.vars[name]

	return ok
}

// Lookup returns the value bound to name in c or the nearest parent that
// binds it.
func (c *Context) Lookup(name string) (any, bool) {
	for ; c != nil; c = c.parent {
		if v, ok := c.vars[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Keys returns the sorted names bound by c itself.
func (c *Context) Keys() []string {
	if c == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(c.vars))
}

// Vars returns a copy of every binding visible from c, with nearer bindings
// shadowing those of parents.
func (c *Context) Vars() map[string]any {
	if c == nil {
		return map[string]any{}
	}

	vars := c.parent.Vars()
	maps.Copy(vars, c.vars)

	return vars
}

// Now returns the reference timestamp bound to [NowKey], if it is a string.
func (c *Context) Now() (string, bool) {
	v, ok := c.Lookup(NowKey)
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}
