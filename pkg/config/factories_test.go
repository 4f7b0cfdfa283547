package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/querygen/pkg/faker"
	"github.com/getmockd/querygen/pkg/graphql"
	"github.com/getmockd/querygen/pkg/querygen"
)

func compile(t *testing.T, specs map[string]FactorySpec) querygen.Factories {
	t.Helper()
	cfg := Default("a.graphql")
	cfg.Factories = specs
	factories, err := cfg.CompileFactories(nil)
	require.NoError(t, err)
	return factories
}

func TestFactories_Value(t *testing.T) {
	factories := compile(t, map[string]FactorySpec{
		"OddNumber": {Value: int64(5)},
	})
	assert.Equal(t, int64(5), factories["OddNumber"](querygen.FactoryContext{}))
}

func TestFactories_Template(t *testing.T) {
	factories := compile(t, map[string]FactorySpec{
		"Str*":  {Template: "{{upper(target)}}@{{depth}}"},
		"Int":   {Template: "{{random.int(3, 3)}}"},
		"Slug*": {Template: `{{default(default, "none")}}`},
	})

	ctx := querygen.FactoryContext{TargetName: "name", Depth: 2, Rand: faker.NewRand(1)}
	assert.Equal(t, "NAME@2", factories["Str*"](ctx))
	assert.Equal(t, 3, factories["Int"](ctx), "a single expression keeps its type")
	assert.Equal(t, "none", factories["Slug*"](ctx))

	ctx.DefaultValue, ctx.HasDefault = "given", true
	assert.Equal(t, "given", factories["Slug*"](ctx))
}

func TestFactories_Expr(t *testing.T) {
	factories := compile(t, map[string]FactorySpec{
		"DateTime!": {Expr: `HasDefault ? Default : "generated"`},
		"String":    {Expr: `Target == "email" ? Faker.Email() : Random()`},
		"ID":        {Expr: `Builtin() ?? "no builtin"`},
		"Int":       {Expr: `Depth * 10 + len(Path)`},
		"Broken":    {Expr: `Default.missing.field`},
	})

	dt := factories["DateTime!"]
	assert.Equal(t, "generated", dt(querygen.FactoryContext{}))
	assert.Equal(t, "2020-01-01", dt(querygen.FactoryContext{DefaultValue: "2020-01-01", HasDefault: true}))

	str := factories["String"]
	random := querygen.ProviderFunc(func() any { return "random" })
	assert.Equal(t, "random", str(querygen.FactoryContext{TargetName: "name", RandomFactory: random}))
	email, ok := str(querygen.FactoryContext{TargetName: "email", RandomFactory: random}).(string)
	require.True(t, ok)
	assert.Contains(t, email, "@")

	id := factories["ID"]
	assert.Equal(t, "no builtin", id(querygen.FactoryContext{}))
	builtin := querygen.ProviderFunc(func() any { return "b-1" })
	assert.Equal(t, "b-1", id(querygen.FactoryContext{DefaultFactory: builtin}))

	assert.Equal(t, 27, factories["Int"](querygen.FactoryContext{Depth: 2, Path: "user$id"}))

	v := factories["Broken"](querygen.FactoryContext{})
	err, ok := v.(error)
	require.True(t, ok, "runtime failures are returned as error values, got %#v", v)
	assert.Contains(t, err.Error(), "Default.missing.field")
}

func TestEngineConfig(t *testing.T) {
	cfg, err := Parse([]byte(validYAML), FormatYAML)
	require.NoError(t, err)

	engine, err := cfg.EngineConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, querygen.QueryTypeMutation, engine.QueryType)
	assert.Equal(t, 3, engine.MaxDepth)
	assert.Equal(t, querygen.SometimesNull, engine.NullGenerationStrategy)
	require.NotNil(t, engine.Rand)
	require.NotNil(t, engine.Registry)
	assert.Equal(t, 4, engine.Registry.Len())

	defaults, err := Default("a.graphql").EngineConfig(nil)
	require.NoError(t, err)
	assert.Nil(t, defaults.Rand, "seed 0 keeps the global source")
	assert.Equal(t, querygen.DefaultMaxDepth, defaults.MaxDepth)
}

const e2eSchema = `
scalar OddNumber
scalar Slug

type Query {
  numbers(odd: OddNumber!, slug: Slug, limit: Int = 10): [Int]
}
`

func TestEndToEnd_GenerateFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "schema"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema", "query.graphql"), []byte(e2eSchema), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "querygen.yaml"), []byte(`
schema: schema/**/*.graphql
seed: 3
factories:
  OddNumber: { value: 7 }
  Slug: { template: "{{faker.word}}-{{target}}" }
  Int: { expr: "HasDefault ? Default : 1" }
`), 0644))

	cfg, err := Load(filepath.Join(dir, "querygen.yaml"))
	require.NoError(t, err)
	schema, err := cfg.LoadSchema()
	require.NoError(t, err)
	engine, err := cfg.EngineConfig(nil)
	require.NoError(t, err)

	field, err := schema.RootField(graphql.OperationQuery, "numbers")
	require.NoError(t, err)
	out, err := querygen.Generate(schema.AST(), field, engine)
	require.NoError(t, err)

	assert.Equal(t, int64(7), out.Variables["odd"])
	assert.True(t, strings.HasSuffix(out.Variables["slug"].(string), "-slug"))
	assert.Equal(t, int64(10), out.Variables["limit"])
	assert.Contains(t, out.Query, "$odd: OddNumber!")

	t.Run("unresolved scalar without factory", func(t *testing.T) {
		cfg.Factories = nil
		engine, err := cfg.EngineConfig(nil)
		require.NoError(t, err)
		_, err = querygen.Generate(schema.AST(), field, engine)
		assert.True(t, errors.Is(err, querygen.ErrUnresolvedScalar))
	})
}
