package querygen

import (
	"sort"
	"strings"
)

type registryEntry struct {
	pattern string
	factory Factory
	order   int
}

// Registry resolves factories by wrapped type text.
// A Registry is read-only once built and safe for concurrent use.
type Registry struct {
	exact map[string]Factory
	globs []registryEntry
	next  int
}

// NewRegistry compiles a factory map. Map iteration has no declaration order,
// so globs of equal specificity are ordered by their pattern text.
func NewRegistry(factories Factories) *Registry {
	r := &Registry{exact: make(map[string]Factory)}

	patterns := make([]string, 0, len(factories))
	for pattern := range factories {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	for _, pattern := range patterns {
		r.Register(pattern, factories[pattern])
	}
	return r
}

// Register adds a factory. Among globs of equal specificity the first registered wins.
// Registering an existing exact pattern replaces it.
func (r *Registry) Register(pattern string, factory Factory) *Registry {
	if r.exact == nil {
		r.exact = make(map[string]Factory)
	}
	if factory == nil {
		return r
	}
	if !strings.Contains(pattern, "*") {
		r.exact[pattern] = factory
		return r
	}
	r.globs = append(r.globs, registryEntry{pattern: pattern, factory: factory, order: r.next})
	r.next++
	return r
}

// Len returns the number of registered patterns.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.exact) + len(r.globs)
}

// Resolve returns the factory for one type text: an exact key first, then the
// most specific matching glob. The matched pattern is returned alongside.
func (r *Registry) Resolve(candidate string) (Factory, string, bool) {
	if r == nil {
		return nil, "", false
	}
	if f, ok := r.exact[candidate]; ok {
		return f, candidate, true
	}

	var (
		best      *registryEntry
		bestMatch Match
	)
	for i := range r.globs {
		entry := &r.globs[i]
		m, ok := MatchPattern(entry.pattern, candidate)
		if !ok {
			continue
		}
		if best == nil || m.MoreSpecific(bestMatch) ||
			(!bestMatch.MoreSpecific(m) && entry.order < best.order) {
			best, bestMatch = entry, m
		}
	}
	if best == nil {
		return nil, "", false
	}
	return best.factory, best.pattern, true
}
