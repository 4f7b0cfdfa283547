package querygen

import (
	"fmt"
	"log/slog"
	mathrand "math/rand/v2"
	"strings"
)

// QueryType is the GraphQL operation type of a generated operation.
type QueryType string

// Operation types.
const (
	QueryTypeQuery        QueryType = "QUERY"
	QueryTypeMutation     QueryType = "MUTATION"
	QueryTypeSubscription QueryType = "SUBSCRIPTION"
)

// ParseQueryType parses an operation type name, case-insensitively.
func ParseQueryType(s string) (QueryType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "QUERY":
		return QueryTypeQuery, nil
	case "MUTATION":
		return QueryTypeMutation, nil
	case "SUBSCRIPTION":
		return QueryTypeSubscription, nil
	default:
		return "", fmt.Errorf("unknown query type %q, expected one of QUERY, MUTATION, SUBSCRIPTION", s)
	}
}

// NullGenerationStrategy decides whether nullable arguments and input fields
// receive null values.
type NullGenerationStrategy string

// Null generation strategies.
const (
	NeverNull     NullGenerationStrategy = "NEVER_NULL"
	AlwaysNull    NullGenerationStrategy = "ALWAYS_NULL"
	SometimesNull NullGenerationStrategy = "SOMETIMES_NULL"
)

// ParseNullGenerationStrategy parses a strategy name, case-insensitively.
func ParseNullGenerationStrategy(s string) (NullGenerationStrategy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NEVER_NULL":
		return NeverNull, nil
	case "ALWAYS_NULL":
		return AlwaysNull, nil
	case "SOMETIMES_NULL":
		return SometimesNull, nil
	default:
		return "", fmt.Errorf("unknown null generation strategy %q, expected one of NEVER_NULL, ALWAYS_NULL, SOMETIMES_NULL", s)
	}
}

// DefaultMaxDepth is the depth bound used when Config.MaxDepth is not set.
const DefaultMaxDepth = 5

// Config holds generation settings.
type Config struct {
	// QueryName is the operation name. When empty a name is derived from the
	// operation type and the root field, e.g. "queryPerson".
	QueryName string

	// QueryType is the operation type. Defaults to QUERY.
	QueryType QueryType

	// MaxDepth bounds object selection and input object recursion.
	MaxDepth int

	// NullGenerationStrategy decides nullability of generated values.
	NullGenerationStrategy NullGenerationStrategy

	// Factories maps exact or glob type patterns to factories.
	// Ignored when Registry is set.
	Factories Factories

	// Registry is a precompiled factory registry. Sharing one registry between
	// calls avoids recompiling the patterns every time.
	Registry *Registry

	// Rand is the random source. When nil the global math/rand/v2 source is used.
	Rand *mathrand.Rand

	// Logger receives debug records about factory resolution. Defaults to a no-op logger.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		QueryType:              QueryTypeQuery,
		MaxDepth:               DefaultMaxDepth,
		NullGenerationStrategy: NeverNull,
	}
}

// Provider produces a value on demand.
type Provider interface {
	Provide() any
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() any

// Provide calls f.
func (f ProviderFunc) Provide() any { return f() }

// FactoryContext is what a factory receives when asked for a value.
type FactoryContext struct {
	// TargetName is the argument name or the input field name.
	TargetName string

	// Type is the wrapped type text the factory was matched against, e.g. "[String!]".
	Type string

	// DefaultValue is the default declared in the schema, nil when there is none.
	DefaultValue any

	// HasDefault reports whether the schema declares a default, which may be null.
	HasDefault bool

	// DefaultFactory is the built-in factory for the bare named type. It always
	// produces a scalar, even when the matched type is a list. Nil when no
	// built-in factory applies.
	DefaultFactory Provider

	// RandomFactory produces the value the generator would have produced for
	// Type without any caller factory.
	RandomFactory Provider

	// Depth is the selection depth of the field owning the argument. Argument
	// and input field nesting do not increase it.
	Depth int

	// Path locates the value from the operation root, e.g. "person.friends$delay".
	Path string

	// Rand is the random source of the current generation.
	Rand *mathrand.Rand
}

// Factory produces a fake value for a type. A factory that cannot produce a
// value returns an error value, which aborts generation.
type Factory func(ctx FactoryContext) any

// Factories maps exact or glob type patterns to factories.
type Factories map[string]Factory

// GenerationContext is the traversal state handed from one generation step to the next.
// It is a value type; children derive a copy instead of mutating their parent.
type GenerationContext struct {
	Depth int
	Path  string
}

func (c GenerationContext) withField(name string) GenerationContext {
	path := name
	if c.Path != "" {
		path = c.Path + "." + name
	}
	return GenerationContext{Depth: c.Depth + 1, Path: path}
}

func (c GenerationContext) withArgument(name string) GenerationContext {
	return GenerationContext{Depth: c.Depth, Path: c.Path + "$" + name}
}

func (c GenerationContext) withInputField(name string) GenerationContext {
	return GenerationContext{Depth: c.Depth, Path: c.Path + "." + name}
}

// Parameter is one generated argument.
type Parameter struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// GeneratedQuery is the result of a generation.
type GeneratedQuery struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}
