package graphql

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// Sentinel errors for schema loading and field lookup.
var (
	ErrNoSchemaFiles  = errors.New("no schema files matched")
	ErrNoQueryType    = errors.New("schema must define a Query type with at least one field")
	ErrNoRootType     = errors.New("schema does not define the operation type")
	ErrFieldNotFound  = errors.New("field not found")
	ErrInvalidPattern = errors.New("invalid schema pattern")
)

// Operation names a root operation type.
type Operation string

// Root operation types.
const (
	OperationQuery        Operation = "query"
	OperationMutation     Operation = "mutation"
	OperationSubscription Operation = "subscription"
)

// ParseOperation maps "query", "Mutation", "SUBSCRIPTION", ... to an Operation.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "query":
		return OperationQuery, nil
	case "mutation":
		return OperationMutation, nil
	case "subscription":
		return OperationSubscription, nil
	default:
		return "", fmt.Errorf("unknown operation %q", s)
	}
}

// Schema represents a parsed GraphQL schema with convenient accessors
// for its root fields.
type Schema struct {
	ast     *ast.Schema
	sources []string
}

// ParseSchema parses a GraphQL SDL string and returns a Schema.
func ParseSchema(sdl string) (*Schema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema", Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema: %w", err)
	}
	return &Schema{ast: schema, sources: []string{"schema"}}, nil
}

// ParseSchemaFile parses a GraphQL schema from a file and returns a Schema.
// Files ending in .json are read as introspection results.
func ParseSchemaFile(path string) (*Schema, error) {
	return ParseSchemaFiles(path)
}

// ParseSchemaFiles parses SDL files that together form one schema. A single
// .json file is read as an introspection result instead.
func ParseSchemaFiles(paths ...string) (*Schema, error) {
	if len(paths) == 0 {
		return nil, ErrNoSchemaFiles
	}

	if len(paths) == 1 && strings.EqualFold(filepath.Ext(paths[0]), ".json") {
		data, err := os.ReadFile(paths[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file %s: %w", paths[0], err)
		}
		s, err := ParseIntrospection(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paths[0], err)
		}
		s.sources = []string{paths[0]}
		return s, nil
	}

	sources := make([]*ast.Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
		}
		sources = append(sources, &ast.Source{Name: path, Input: string(data)})
	}

	schema, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema from %s: %w", strings.Join(paths, ", "), err)
	}
	return &Schema{ast: schema, sources: paths}, nil
}

// LoadSchema expands glob patterns (with ** support) relative to baseDir and
// parses every matched file as one schema.
func LoadSchema(baseDir string, patterns ...string) (*Schema, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) && baseDir != "" {
			pattern = filepath.Join(baseDir, pattern)
		}
		matches, err := expandGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPattern, pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSchemaFiles, strings.Join(patterns, ", "))
	}
	return ParseSchemaFiles(paths...)
}

// expandGlob expands a glob pattern to a list of matching file paths.
// A pattern without metacharacters must name an existing file.
func expandGlob(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		if _, err := os.Stat(pattern); err != nil {
			return nil, err
		}
		return []string{pattern}, nil
	}
	return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
}

// isIntrospectionField returns true if the field name is a built-in introspection field.
func isIntrospectionField(name string) bool {
	return len(name) >= 2 && name[0] == '_' && name[1] == '_'
}

// AST returns the underlying gqlparser AST schema.
func (s *Schema) AST() *ast.Schema {
	return s.ast
}

// Sources returns the files the schema was loaded from.
func (s *Schema) Sources() []string {
	return s.sources
}

// RootType returns the root object type of op, or nil when the schema has none.
func (s *Schema) RootType(op Operation) *ast.Definition {
	switch op {
	case OperationMutation:
		return s.ast.Mutation
	case OperationSubscription:
		return s.ast.Subscription
	default:
		return s.ast.Query
	}
}

// RootFields returns the fields of the op root type in declaration order,
// excluding introspection fields.
func (s *Schema) RootFields(op Operation) []*ast.FieldDefinition {
	root := s.RootType(op)
	if root == nil {
		return nil
	}
	fields := make([]*ast.FieldDefinition, 0, len(root.Fields))
	for _, field := range root.Fields {
		if !isIntrospectionField(field.Name) {
			fields = append(fields, field)
		}
	}
	return fields
}

// RootField returns a root field of op by name.
func (s *Schema) RootField(op Operation, name string) (*ast.FieldDefinition, error) {
	root := s.RootType(op)
	if root == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRootType, op)
	}
	field := root.Fields.ForName(name)
	if field == nil || isIntrospectionField(name) {
		return nil, fmt.Errorf("%w: %s.%s", ErrFieldNotFound, root.Name, name)
	}
	return field, nil
}

// LookupField resolves a "Type.field" reference, e.g. "Query.person" or
// "Mutation.createUser". A bare name is looked up on the op root type.
func (s *Schema) LookupField(op Operation, ref string) (Operation, *ast.FieldDefinition, error) {
	typeName, fieldName, qualified := strings.Cut(ref, ".")
	if !qualified {
		field, err := s.RootField(op, ref)
		return op, field, err
	}

	for _, candidate := range []Operation{OperationQuery, OperationMutation, OperationSubscription} {
		root := s.RootType(candidate)
		if root != nil && root.Name == typeName {
			field, err := s.RootField(candidate, fieldName)
			return candidate, field, err
		}
	}
	return op, nil, fmt.Errorf("%w: %s is not a root type", ErrFieldNotFound, typeName)
}

// ListQueries returns all query field names in sorted order.
func (s *Schema) ListQueries() []string {
	return fieldNames(s.RootFields(OperationQuery))
}

// ListMutations returns all mutation field names in sorted order.
func (s *Schema) ListMutations() []string {
	return fieldNames(s.RootFields(OperationMutation))
}

// ListSubscriptions returns all subscription field names in sorted order.
func (s *Schema) ListSubscriptions() []string {
	return fieldNames(s.RootFields(OperationSubscription))
}

func fieldNames(fields []*ast.FieldDefinition) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the schema has something to generate from.
// gqlparser already validates the schema itself during parsing.
func (s *Schema) Validate() error {
	if s.ast.Query == nil || len(s.RootFields(OperationQuery)) == 0 {
		return ErrNoQueryType
	}
	return nil
}

// Signature renders a field as "name(arg: Type, ...): Type".
func Signature(field *ast.FieldDefinition) string {
	var b strings.Builder
	b.WriteString(field.Name)
	if len(field.Arguments) > 0 {
		b.WriteByte('(')
		for i, arg := range field.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.Name)
			b.WriteString(": ")
			b.WriteString(arg.Type.String())
		}
		b.WriteByte(')')
	}
	b.WriteString(": ")
	b.WriteString(field.Type.String())
	return b.String()
}
