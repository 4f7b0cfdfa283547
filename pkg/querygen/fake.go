package querygen

import (
	"errors"
	"fmt"
	"log/slog"
	mathrand "math/rand/v2"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/getmockd/querygen/pkg/logging"
)

// ErrNotInputType is returned when an argument or input field refers to an output type.
var ErrNotInputType = errors.New("not an input type")

// generator produces values for arguments and input fields. It is created per
// top-level call and never shared.
type generator struct {
	schema   *ast.Schema
	registry *Registry
	maxDepth int
	strategy NullGenerationStrategy
	rng      *mathrand.Rand
	logger   *slog.Logger

	// err carries a failure raised inside a Provider back to the factory caller.
	err error
}

func newGenerator(schema *ast.Schema, cfg Config) *generator {
	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry(cfg.Factories)
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	strategy := cfg.NullGenerationStrategy
	if strategy == "" {
		strategy = NeverNull
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &generator{
		schema:   schema,
		registry: registry,
		maxDepth: maxDepth,
		strategy: strategy,
		rng:      cfg.Rand,
		logger:   logger,
	}
}

// step is the per-value generation state.
type step struct {
	name       string
	defaultVal *ast.Value
	ctx        GenerationContext

	// nesting counts input object levels below the argument.
	nesting int
	// minimal is set past the depth bound: only non-null input fields are produced.
	minimal bool
	// visiting holds the input objects on the current minimal path.
	visiting map[string]bool
}

// GenerateArgsForField generates a value for every argument of field.
// gctx is the context of the field itself: Depth is its selection depth and
// Path its dotted path from the operation root.
func GenerateArgsForField(schema *ast.Schema, field *ast.FieldDefinition, cfg Config, gctx GenerationContext) ([]Parameter, error) {
	return newGenerator(schema, cfg).argsForField(field, gctx)
}

func (g *generator) argsForField(field *ast.FieldDefinition, gctx GenerationContext) ([]Parameter, error) {
	params := make([]Parameter, 0, len(field.Arguments))
	for _, arg := range field.Arguments {
		t, err := ResolveType(g.schema, arg.Type)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", arg.Name, err)
		}
		v, err := g.value(t, false, step{
			name:       arg.Name,
			defaultVal: arg.DefaultValue,
			ctx:        gctx.withArgument(arg.Name),
		})
		if err != nil {
			return nil, err
		}
		params = append(params, Parameter{Name: arg.Name, Type: arg.Type.String(), Value: v})
	}
	return params, nil
}

// value generates a value for t. required is set below a NonNull wrapper.
func (g *generator) value(t *TypeRef, required bool, s step) (any, error) {
	if !required && t.Nullable() && g.rollNull() {
		return nil, nil
	}
	if f, pattern, ok := g.registry.Resolve(t.String()); ok {
		return g.invoke(f, pattern, t, required, s)
	}
	return g.build(t, s)
}

// build generates a value for t without consulting caller factories at this level.
func (g *generator) build(t *TypeRef, s step) (any, error) {
	switch t.Kind {
	case KindNonNull:
		return g.value(t.OfType, true, s)
	case KindList:
		elem, err := g.value(t.OfType, false, s)
		if err != nil {
			return nil, err
		}
		return []any{elem}, nil
	case KindScalar, KindEnum:
		return g.leaf(t, s)
	case KindInputObject:
		return g.inputObject(t, s)
	case KindObject, KindInterface, KindUnion:
		return nil, fmt.Errorf("%w: %s at %s", ErrNotInputType, t.String(), s.ctx.Path)
	default:
		return nil, fmt.Errorf("%w: %s has unhandled kind %s", ErrUnknownType, t.String(), t.Kind)
	}
}

func (g *generator) rollNull() bool {
	switch g.strategy {
	case AlwaysNull:
		return true
	case SometimesNull:
		if g.rng != nil {
			return g.rng.IntN(2) == 0
		}
		return mathrand.IntN(2) == 0
	default:
		return false
	}
}

func (g *generator) leaf(t *TypeRef, s step) (any, error) {
	def, ok := g.defaultFactory(t)
	if !ok {
		return nil, &UnresolvedScalarError{Scalar: t.Def.Name, Path: s.ctx.Path}
	}
	return def(g.factoryContext(t, s)), nil
}

// defaultFactory returns the built-in factory of a scalar or enum: the
// built-in table entry for scalars, the first declared value for enums.
func (g *generator) defaultFactory(t *TypeRef) (Factory, bool) {
	switch t.Kind {
	case KindEnum:
		if len(t.Def.EnumValues) == 0 {
			return nil, false
		}
		first := t.Def.EnumValues[0].Name
		return func(FactoryContext) any { return first }, true
	case KindScalar:
		return lookupDefault(t.Def.Name)
	case KindNonNull, KindList, KindObject, KindInterface, KindUnion, KindInputObject:
		return nil, false
	default:
		return nil, false
	}
}

func (g *generator) inputObject(t *TypeRef, s step) (map[string]any, error) {
	minimal := s.minimal || s.ctx.Depth+s.nesting+1 > g.maxDepth
	visiting := s.visiting
	if minimal {
		if visiting[t.Def.Name] {
			return map[string]any{}, nil
		}
		visiting = make(map[string]bool, len(s.visiting)+1)
		for name := range s.visiting {
			visiting[name] = true
		}
		visiting[t.Def.Name] = true
	}

	out := make(map[string]any, len(t.Def.Fields))
	for _, field := range t.Def.Fields {
		if minimal && !field.Type.NonNull {
			continue
		}
		ft, err := ResolveType(g.schema, field.Type)
		if err != nil {
			return nil, fmt.Errorf("input field %s.%s: %w", t.Def.Name, field.Name, err)
		}
		v, err := g.value(ft, false, step{
			name:       field.Name,
			defaultVal: field.DefaultValue,
			ctx:        s.ctx.withInputField(field.Name),
			nesting:    s.nesting + 1,
			minimal:    minimal,
			visiting:   visiting,
		})
		if err != nil {
			return nil, err
		}
		out[field.Name] = v
	}
	return out, nil
}

func (g *generator) factoryContext(t *TypeRef, s step) FactoryContext {
	ctx := FactoryContext{
		TargetName: s.name,
		Type:       t.String(),
		Depth:      s.ctx.Depth,
		Path:       s.ctx.Path,
		Rand:       g.rng,
	}
	if s.defaultVal != nil {
		ctx.HasDefault = true
		v, err := s.defaultVal.Value(nil)
		if err != nil {
			v = s.defaultVal.Raw
		}
		ctx.DefaultValue = v
	}
	return ctx
}

// invoke calls a caller factory matched for t.
func (g *generator) invoke(f Factory, pattern string, t *TypeRef, required bool, s step) (any, error) {
	ctx := g.factoryContext(t, s)

	named := t.Named()
	if def, ok := g.defaultFactory(named); ok {
		scalarCtx := g.factoryContext(named, s)
		ctx.DefaultFactory = ProviderFunc(func() any { return def(scalarCtx) })
	}
	ctx.RandomFactory = ProviderFunc(func() any {
		v, err := g.build(t, s)
		if err != nil && g.err == nil {
			g.err = err
		}
		return v
	})

	g.logger.Debug("factory matched",
		slog.String("type", t.String()),
		slog.String("pattern", pattern),
		slog.String("path", s.ctx.Path),
		slog.Bool("required", required),
	)

	v := f(ctx)
	if g.err != nil {
		err := g.err
		g.err = nil
		return nil, err
	}
	if err, ok := v.(error); ok {
		return nil, fmt.Errorf("factory %q at %s: %w", pattern, s.ctx.Path, err)
	}
	return v, nil
}
