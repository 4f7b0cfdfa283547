package config

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/getmockd/querygen/pkg/faker"
	"github.com/getmockd/querygen/pkg/graphql"
	"github.com/getmockd/querygen/pkg/logging"
	"github.com/getmockd/querygen/pkg/querygen"
	"github.com/getmockd/querygen/pkg/template"
)

// exprEnv is the environment of an expr factory, e.g.
//
//	HasDefault ? Default : Faker.DateTime()
//	Target == "email" ? Faker.Email() : Random()
type exprEnv struct {
	Target     string
	Path       string
	Type       string
	Depth      int
	Default    any
	HasDefault bool
	Faker      *faker.Faker

	// Builtin returns the built-in value for the named type, or nil.
	Builtin func() any
	// Random returns the value generated when no factory matches.
	Random func() any
}

func compileExpr(src string) (*vm.Program, error) {
	return expr.Compile(src, expr.Env(exprEnv{}))
}

// Default returns a config with the engine defaults and the given schema patterns.
func Default(schema ...string) *File {
	return &File{
		Schema:                 schema,
		QueryType:              string(querygen.QueryTypeQuery),
		MaxDepth:               querygen.DefaultMaxDepth,
		NullGenerationStrategy: string(querygen.NeverNull),
	}
}

// CompileFactories compiles the declared factory specs.
func (f *File) CompileFactories(logger *slog.Logger) (querygen.Factories, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	patterns := make([]string, 0, len(f.Factories))
	for pattern := range f.Factories {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	engine := template.New()
	out := make(querygen.Factories, len(patterns))
	for _, pattern := range patterns {
		spec := f.Factories[pattern]
		var factory querygen.Factory
		switch spec.Kind() {
		case "template":
			tmpl, err := engine.Compile(spec.Template)
			if err != nil {
				return nil, fmt.Errorf("factory %q: %w", pattern, err)
			}
			factory = templateFactory(tmpl)
		case "expr":
			program, err := compileExpr(spec.Expr)
			if err != nil {
				return nil, fmt.Errorf("factory %q: %w", pattern, err)
			}
			factory = exprFactory(spec.Expr, program)
		default:
			value := spec.Value
			factory = func(querygen.FactoryContext) any { return value }
		}
		logger.Debug("compiled factory",
			slog.String("pattern", pattern),
			slog.String("kind", spec.Kind()),
		)
		out[pattern] = factory
	}
	return out, nil
}

func templateFactory(tmpl *template.Template) querygen.Factory {
	return func(ctx querygen.FactoryContext) any {
		return tmpl.Value(&template.Context{
			Target:     ctx.TargetName,
			Path:       ctx.Path,
			Type:       ctx.Type,
			Depth:      ctx.Depth,
			Default:    ctx.DefaultValue,
			HasDefault: ctx.HasDefault,
			Rand:       ctx.Rand,
		})
	}
}

func exprFactory(src string, program *vm.Program) querygen.Factory {
	return func(ctx querygen.FactoryContext) any {
		env := exprEnv{
			Target:     ctx.TargetName,
			Path:       ctx.Path,
			Type:       ctx.Type,
			Depth:      ctx.Depth,
			Default:    ctx.DefaultValue,
			HasDefault: ctx.HasDefault,
			Faker:      faker.New(ctx.Rand),
			Builtin: func() any {
				if ctx.DefaultFactory == nil {
					return nil
				}
				return ctx.DefaultFactory.Provide()
			},
			Random: func() any { return ctx.RandomFactory.Provide() },
		}
		v, err := expr.Run(program, env)
		if err != nil {
			return fmt.Errorf("eval %q: %w", src, err)
		}
		return v
	}
}

// EngineConfig converts the file into an engine configuration with a
// compiled factory registry. A non-zero Seed yields a deterministic RNG.
func (f *File) EngineConfig(logger *slog.Logger) (querygen.Config, error) {
	cfg := querygen.DefaultConfig()

	queryType, err := querygen.ParseQueryType(f.QueryType)
	if err != nil {
		return cfg, err
	}
	strategy, err := querygen.ParseNullGenerationStrategy(f.NullGenerationStrategy)
	if err != nil {
		return cfg, err
	}
	factories, err := f.CompileFactories(logger)
	if err != nil {
		return cfg, err
	}

	cfg.QueryName = f.QueryName
	cfg.QueryType = queryType
	cfg.NullGenerationStrategy = strategy
	if f.MaxDepth > 0 {
		cfg.MaxDepth = f.MaxDepth
	}
	if f.Seed != 0 {
		cfg.Rand = faker.NewRand(f.Seed)
	}
	cfg.Registry = querygen.NewRegistry(factories)
	if logger != nil {
		cfg.Logger = logger
	}
	return cfg, nil
}

// LoadSchema loads the configured schema files, resolving relative patterns
// against the config file's directory.
func (f *File) LoadSchema() (*graphql.Schema, error) {
	return graphql.LoadSchema(f.dir, f.Schema...)
}
