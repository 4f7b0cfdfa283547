package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file written by "querygen init".
const DefaultFileName = "querygen.yaml"

// DiscoveryOrder defines the priority order for finding config files.
var DiscoveryOrder = []string{
	"querygen.yaml",
	"querygen.yml",
	"querygen.json",
}

// File is the querygen project configuration.
type File struct {
	// Schema lists SDL files, doublestar globs, or one introspection .json
	// file. Relative entries resolve against the config file's directory.
	Schema StringList `json:"schema" yaml:"schema"`
	// QueryType is QUERY, MUTATION or SUBSCRIPTION.
	QueryType string `json:"queryType,omitempty" yaml:"queryType,omitempty"`
	// QueryName overrides the generated operation name.
	QueryName string `json:"queryName,omitempty" yaml:"queryName,omitempty"`
	// MaxDepth bounds selection and input nesting. Zero means the engine default.
	MaxDepth int `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty"`
	// NullGenerationStrategy is NEVER_NULL, ALWAYS_NULL or SOMETIMES_NULL.
	NullGenerationStrategy string `json:"nullGenerationStrategy,omitempty" yaml:"nullGenerationStrategy,omitempty"`
	// Seed makes generation deterministic. Zero means a random seed per run.
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	// Factories maps exact or glob type patterns to factory specs.
	Factories map[string]FactorySpec `json:"factories,omitempty" yaml:"factories,omitempty"`

	// dir is the directory of the file the config was loaded from.
	dir string
}

// Dir returns the directory the config was loaded from, or "" when it was parsed from bytes.
func (f *File) Dir() string {
	return f.dir
}

// FactorySpec declares a factory without Go code. Exactly one of Value,
// Template and Expr is set.
type FactorySpec struct {
	// Value is returned as-is for every matching type.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
	// Template is a {{expression}} template, see pkg/template.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
	// Expr is an expr-lang expression evaluated against the factory context.
	Expr string `json:"expr,omitempty" yaml:"expr,omitempty"`
}

// Kind returns "value", "template" or "expr".
func (s FactorySpec) Kind() string {
	switch {
	case s.Template != "":
		return "template"
	case s.Expr != "":
		return "expr"
	default:
		return "value"
	}
}

// MarshalJSON writes only the key that is set.
func (s FactorySpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.asMap())
}

// MarshalYAML writes only the key that is set.
func (s FactorySpec) MarshalYAML() (any, error) {
	return s.asMap(), nil
}

func (s FactorySpec) asMap() map[string]any {
	switch s.Kind() {
	case "template":
		return map[string]any{"template": s.Template}
	case "expr":
		return map[string]any{"expr": s.Expr}
	default:
		return map[string]any{"value": s.Value}
	}
}

// StringList accepts either a single string or a list of strings.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	*l = many
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = StringList{node.Value}
		return nil
	}
	var many []string
	if err := node.Decode(&many); err != nil {
		return err
	}
	*l = many
	return nil
}
