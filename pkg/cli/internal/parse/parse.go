// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// KeyValue parses a "key:value" or "key=value" string.
// If delimiters are provided, uses the first one found; otherwise defaults to ':'.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{':'}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// ScalarValue decodes a flag value the way YAML would: "5" is an int,
// "true" a bool, "[1, 2]" a list and anything unparseable the string itself.
func ScalarValue(s string) any {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	if v == nil && strings.TrimSpace(s) != "null" && strings.TrimSpace(s) != "~" {
		return s
	}
	return v
}

// SplitTrim splits a string by separator and trims each part.
func SplitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
