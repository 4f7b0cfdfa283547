package template

import (
	mathrand "math/rand/v2"
)

// Context holds the data a factory template is evaluated against.
type Context struct {
	// Target is the argument or input field name being generated.
	Target string

	// Path locates the value from the operation root, e.g. "person$filter.name".
	Path string

	// Type is the wrapped GraphQL type text, e.g. "[String!]".
	Type string

	// Depth is the selection depth of the field owning the argument.
	Depth int

	// Default is the schema default value, meaningful when HasDefault is set.
	Default    any
	HasDefault bool

	// Rand is the random source. Nil means the global math/rand/v2 source.
	Rand *mathrand.Rand
}

// ctxRNG extracts the seeded RNG from a Context, or returns nil (use global).
func ctxRNG(ctx *Context) *mathrand.Rand {
	if ctx == nil {
		return nil
	}
	return ctx.Rand
}
