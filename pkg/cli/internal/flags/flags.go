// Package flags provides reusable flag types for CLI commands.
package flags

import (
	"strings"

	"github.com/getmockd/querygen/pkg/cli/internal/parse"
)

// StringSlice implements flag.Value for repeatable string flags. Each value
// may also carry several comma-separated entries.
type StringSlice []string

// String returns the string representation of the flag value.
func (s *StringSlice) String() string {
	return strings.Join(*s, ",")
}

// Set appends a value to the slice.
func (s *StringSlice) Set(value string) error {
	*s = append(*s, parse.SplitTrim(value, ",")...)
	return nil
}

// Type specifies the type label for Cobra flags.
func (s *StringSlice) Type() string {
	return "stringSlice"
}

// Append adds a single value without splitting it.
func (s *StringSlice) Append(value string) error {
	*s = append(*s, value)
	return nil
}

// Replace swaps the whole slice.
func (s *StringSlice) Replace(values []string) error {
	*s = append((*s)[:0:0], values...)
	return nil
}

// GetSlice returns the current values.
func (s *StringSlice) GetSlice() []string {
	return *s
}
