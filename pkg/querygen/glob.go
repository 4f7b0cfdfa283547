package querygen

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match describes how a factory pattern matched a type text.
type Match struct {
	// Exact is set when the pattern has no wildcard and equals the candidate.
	Exact bool
	// Wildcards is the number of '*' in the pattern.
	Wildcards int
	// Literal is the number of non-wildcard characters in the pattern.
	Literal int
}

// MoreSpecific reports whether m ranks before other.
// Exact matches win, then longer literal text, then fewer wildcards.
func (m Match) MoreSpecific(other Match) bool {
	if m.Exact != other.Exact {
		return m.Exact
	}
	if m.Literal != other.Literal {
		return m.Literal > other.Literal
	}
	return m.Wildcards < other.Wildcards
}

// MatchPattern matches a factory pattern against a wrapped type text such as "[Int!]".
// In a pattern '*' matches any run of characters, including none; every other
// character, brackets and '!' included, is literal. A pattern without brackets
// never matches a list type, so "*" or "Str*" target the element and the list
// keeps its one-element shape.
func MatchPattern(pattern, candidate string) (Match, bool) {
	if !strings.ContainsAny(pattern, "[]") && strings.ContainsAny(candidate, "[]") {
		return Match{}, false
	}
	wildcards := strings.Count(pattern, "*")
	m := Match{Wildcards: wildcards, Literal: len(pattern) - wildcards}

	if wildcards == 0 {
		if pattern != candidate {
			return Match{}, false
		}
		m.Exact = true
		return m, true
	}

	ok, err := doublestar.Match(escapeGlob(pattern), candidate)
	if err != nil || !ok {
		return Match{}, false
	}
	return m, true
}

// escapeGlob escapes every glob metacharacter except '*'. Type texts never
// contain '/', so a single '*' covers any substring.
func escapeGlob(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 4)
	for _, r := range pattern {
		switch r {
		case '?', '[', ']', '{', '}', '\\', ',':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
