package querygen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/getmockd/querygen/pkg/faker"
)

const argsSchema = `
scalar SomeCustomScalar
scalar OddNumber
scalar DateTime

enum TestEnum {
	RED
	GREEN
	BLUE
}

input TestInput {
	string: String
	listString: [String]
	nonNullInt: Int!
	enum: TestEnum
	nested: NestedInput
}

input NestedInput {
	float: Float!
	deeper: DeepInput
}

input DeepInput {
	flag: Boolean!
	note: String
}

input LoopInput {
	id: ID!
	label: String
	next: LoopInput!
}

type Query {
	hasArgs(
		string: String
		listString: [String]
		nonNullString: String!
		nonNullListString: [String!]!
		int: Int
		float: Float
		listFloat: [Float]
		boolean: Boolean
		id: ID
		enum: TestEnum
		listEnum: [TestEnum]
		testEnum: TestEnum!
		input: TestInput
		defaultValueString: String = "test default value"
		createdAt: DateTime
	): String
	testNonNull(string: String!, list: [String!]!): String
	hasCustomScalarArg(custom: SomeCustomScalar, other: String): String
	odd(numbers: [OddNumber!]!): String
	loop(input: LoopInput!): String
}
`

var outerContext = GenerationContext{Depth: 3, Path: "some.query.path"}

func loadSchema(t *testing.T, sdl string) *ast.Schema {
	t.Helper()
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "test.graphql", Input: sdl})
	require.NoError(t, err)
	return schema
}

func queryField(t *testing.T, schema *ast.Schema, name string) *ast.FieldDefinition {
	t.Helper()
	field := schema.Query.Fields.ForName(name)
	require.NotNil(t, field, "field %s", name)
	return field
}

func paramByName(t *testing.T, params []Parameter, name string) Parameter {
	t.Helper()
	for _, p := range params {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no parameter named %s", name)
	return Parameter{}
}

func baseConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxDepth = 5
	return cfg
}

func TestGenerateArgsForField_NeverNull(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasArgs")

	params, err := GenerateArgsForField(schema, field, baseConfig(), outerContext)
	require.NoError(t, err)
	require.Len(t, params, len(field.Arguments))

	for _, p := range params {
		assert.NotNil(t, p.Value, "parameter %s", p.Name)
		if strings.HasPrefix(p.Type, "[") {
			list, ok := p.Value.([]any)
			require.True(t, ok, "parameter %s should be a list, got %T", p.Name, p.Value)
			assert.Len(t, list, 1, "parameter %s", p.Name)
			assert.NotNil(t, list[0])
		}
	}

	assert.Equal(t, "RED", paramByName(t, params, "enum").Value)
	assert.Equal(t, "RED", paramByName(t, params, "testEnum").Value)
	assert.Equal(t, []any{"RED"}, paramByName(t, params, "listEnum").Value)
	assert.IsType(t, 0, paramByName(t, params, "int").Value)
	assert.IsType(t, float64(0), paramByName(t, params, "float").Value)
	assert.IsType(t, false, paramByName(t, params, "boolean").Value)
	assert.Equal(t, "TestInput", paramByName(t, params, "input").Type)
	assert.Equal(t, "[String!]!", paramByName(t, params, "nonNullListString").Type)

	input, ok := paramByName(t, params, "input").Value.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, input, "string")
	assert.Contains(t, input, "nested")
}

func TestGenerateArgsForField_AlwaysNull(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasArgs")

	cfg := baseConfig()
	cfg.NullGenerationStrategy = AlwaysNull

	params, err := GenerateArgsForField(schema, field, cfg, outerContext)
	require.NoError(t, err)

	for i, arg := range field.Arguments {
		if arg.Type.NonNull {
			assert.NotNil(t, params[i].Value, "non-null parameter %s", arg.Name)
		} else {
			assert.Nil(t, params[i].Value, "nullable parameter %s", arg.Name)
		}
	}

	// Non-null lists still hold one element; their nullable parts are null.
	list := paramByName(t, params, "nonNullListString").Value.([]any)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0])
}

func TestGenerateArgsForField_AlwaysNullInputObject(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "loop")

	cfg := baseConfig()
	cfg.NullGenerationStrategy = AlwaysNull

	params, err := GenerateArgsForField(schema, field, cfg, GenerationContext{Depth: 1, Path: "loop"})
	require.NoError(t, err)

	input := params[0].Value.(map[string]any)
	assert.NotNil(t, input["id"])
	assert.Nil(t, input["label"])
	assert.NotNil(t, input["next"])
}

func TestGenerateArgsForField_SometimesNull(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasArgs")

	cfg := baseConfig()
	cfg.NullGenerationStrategy = SometimesNull

	nulls := make(map[string]int)
	values := make(map[string]int)
	for range 100 {
		params, err := GenerateArgsForField(schema, field, cfg, outerContext)
		require.NoError(t, err)
		for _, p := range params {
			if p.Value == nil {
				nulls[p.Name]++
			} else {
				values[p.Name]++
			}
		}
	}

	for _, arg := range field.Arguments {
		if arg.Type.NonNull {
			assert.Zero(t, nulls[arg.Name], "non-null parameter %s was null", arg.Name)
			continue
		}
		assert.Positive(t, nulls[arg.Name], "parameter %s never null", arg.Name)
		assert.Positive(t, values[arg.Name], "parameter %s always null", arg.Name)
	}
}

func TestGenerateArgsForField_NonNull(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "testNonNull")

	for _, strategy := range []NullGenerationStrategy{NeverNull, AlwaysNull, SometimesNull} {
		cfg := baseConfig()
		cfg.NullGenerationStrategy = strategy

		params, err := GenerateArgsForField(schema, field, cfg, outerContext)
		require.NoError(t, err)
		assert.NotNil(t, paramByName(t, params, "string").Value, string(strategy))

		list := paramByName(t, params, "list").Value.([]any)
		require.Len(t, list, 1)
		assert.NotNil(t, list[0], string(strategy))
	}
}

func TestGenerateArgsForField_UnresolvedScalar(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasCustomScalarArg")

	params, err := GenerateArgsForField(schema, field, baseConfig(), outerContext)
	require.Error(t, err)
	assert.Nil(t, params)
	assert.True(t, errors.Is(err, ErrUnresolvedScalar))

	var unresolved *UnresolvedScalarError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "SomeCustomScalar", unresolved.Scalar)
	assert.Equal(t, "some.query.path$custom", unresolved.Path)
	assert.Contains(t, err.Error(), "Cannot generate a random value for scalar 'SomeCustomScalar'.")
	assert.Contains(t, err.Error(), `"SomeCustomScalar": func(ctx querygen.FactoryContext) any`)
	assert.Contains(t, err.Error(), "factories:\n    SomeCustomScalar:\n      value:")
}

func TestGenerateArgsForField_CustomScalarFactory(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasCustomScalarArg")

	cfg := baseConfig()
	cfg.Factories = Factories{
		"SomeCustomScalar": constFactory("Some-output-for-my-scalar"),
	}

	params, err := GenerateArgsForField(schema, field, cfg, outerContext)
	require.NoError(t, err)
	assert.Equal(t, "Some-output-for-my-scalar", paramByName(t, params, "custom").Value)
}

func TestGenerateArgsForField_FactoryContext(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasArgs")

	var calls []FactoryContext
	cfg := baseConfig()
	cfg.Factories = Factories{
		"String": func(ctx FactoryContext) any {
			calls = append(calls, ctx)
			return "testString"
		},
	}

	_, err := GenerateArgsForField(schema, field, cfg, outerContext)
	require.NoError(t, err)
	require.NotEmpty(t, calls)

	for _, ctx := range calls {
		assert.NotEmpty(t, ctx.TargetName)
		assert.Equal(t, outerContext.Depth, ctx.Depth, ctx.Path)
		assert.True(t, strings.HasPrefix(ctx.Path, outerContext.Path+"$"), ctx.Path)
		assert.True(t,
			strings.HasSuffix(ctx.Path, "$"+ctx.TargetName) || strings.HasSuffix(ctx.Path, "."+ctx.TargetName),
			ctx.Path)

		require.NotNil(t, ctx.DefaultFactory)
		assert.NotNil(t, ctx.DefaultFactory.Provide())
		require.NotNil(t, ctx.RandomFactory)
		assert.NotNil(t, ctx.RandomFactory.Provide())

		if ctx.TargetName == "defaultValueString" {
			assert.True(t, ctx.HasDefault)
			assert.Equal(t, "test default value", ctx.DefaultValue)
		} else {
			assert.False(t, ctx.HasDefault, ctx.TargetName)
			assert.Nil(t, ctx.DefaultValue)
		}
	}

	paths := make([]string, 0, len(calls))
	for _, ctx := range calls {
		paths = append(paths, ctx.Path)
	}
	assert.Contains(t, paths, "some.query.path$string")
	assert.Contains(t, paths, "some.query.path$input.string")
	assert.Contains(t, paths, "some.query.path$input.listString")
	assert.NotContains(t, paths, "some.query.path$input.nested.deeper.note", "past the bound only non-null fields are generated")
}

func TestGenerateArgsForField_RawTypeFactory(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasArgs")

	const output = "This is some dope test string that is clearly not hardcoded somewhere else"
	cfg := baseConfig()
	cfg.Rand = faker.NewRand(7)
	cfg.Factories = Factories{"String": constFactory(output)}

	params, err := GenerateArgsForField(schema, field, cfg, outerContext)
	require.NoError(t, err)

	assert.Equal(t, output, paramByName(t, params, "string").Value)
	assert.Equal(t, []any{output}, paramByName(t, params, "listString").Value)
	assert.Equal(t, output, paramByName(t, params, "nonNullString").Value)

	input := paramByName(t, params, "input").Value.(map[string]any)
	assert.Equal(t, output, input["string"])
	assert.Equal(t, []any{output}, input["listString"])

	// Other types still use the built-in table.
	float := paramByName(t, params, "float").Value.(float64)
	assert.GreaterOrEqual(t, float, 0.0)
	assert.LessOrEqual(t, float, 100.0)
}

func TestGenerateArgsForField_GlobFactories(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasArgs")

	const outputString = "This is some dope test string that is clearly not hardcoded somewhere else"
	const outputFloat = 45.4
	const outputEnum = "BLUE"

	cfg := baseConfig()
	cfg.Factories = Factories{
		"Str*":     constFactory(outputString),
		"*loat":    constFactory(outputFloat),
		"*est*nu*": constFactory(outputEnum),
	}

	params, err := GenerateArgsForField(schema, field, cfg, outerContext)
	require.NoError(t, err)

	assert.Equal(t, outputString, paramByName(t, params, "string").Value)
	assert.Equal(t, outputFloat, paramByName(t, params, "float").Value)
	assert.Equal(t, outputEnum, paramByName(t, params, "enum").Value)

	assert.Equal(t, []any{outputString}, paramByName(t, params, "listString").Value)
	assert.Equal(t, []any{outputFloat}, paramByName(t, params, "listFloat").Value)
	assert.Equal(t, []any{outputEnum}, paramByName(t, params, "listEnum").Value)
}

func TestGenerateArgsForField_MostSpecificWrapperWins(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "odd")

	cfg := baseConfig()
	cfg.Factories = Factories{
		"[OddNumber!]!": constFactory([]any{1, 3, 5}),
		"OddNumber":     constFactory(7),
	}
	params, err := GenerateArgsForField(schema, field, cfg, outerContext)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 3, 5}, params[0].Value)

	cfg.Factories = Factories{"OddNumber": constFactory(7)}
	params, err = GenerateArgsForField(schema, field, cfg, outerContext)
	require.NoError(t, err)
	assert.Equal(t, []any{7}, params[0].Value)
}

func TestGenerateArgsForField_ListFactoryUsesScalarDefault(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasArgs")

	cfg := baseConfig()
	cfg.Factories = Factories{
		"[Float]": func(ctx FactoryContext) any {
			assert.Equal(t, "[Float]", ctx.Type)
			scalar := ctx.DefaultFactory.Provide()
			assert.IsType(t, float64(0), scalar)
			return []any{scalar, scalar}
		},
	}

	params, err := GenerateArgsForField(schema, field, cfg, outerContext)
	require.NoError(t, err)
	assert.Len(t, paramByName(t, params, "listFloat").Value, 2)
}

func TestGenerateArgsForField_RandomFactoryPropagatesErrors(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasCustomScalarArg")

	cfg := baseConfig()
	cfg.Factories = Factories{
		"Some*": func(ctx FactoryContext) any {
			assert.Nil(t, ctx.DefaultFactory)
			return ctx.RandomFactory.Provide()
		},
	}

	_, err := GenerateArgsForField(schema, field, cfg, outerContext)
	assert.ErrorIs(t, err, ErrUnresolvedScalar)
}

func TestGenerateArgsForField_FactoryError(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasCustomScalarArg")

	boom := errors.New("boom")
	cfg := baseConfig()
	cfg.Factories = Factories{
		"SomeCustomScalar": func(FactoryContext) any { return boom },
	}

	_, err := GenerateArgsForField(schema, field, cfg, outerContext)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `factory "SomeCustomScalar"`)
}

func TestGenerateArgsForField_InputDepthBound(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasArgs")

	cfg := baseConfig()
	cfg.MaxDepth = 4

	params, err := GenerateArgsForField(schema, field, cfg, outerContext)
	require.NoError(t, err)

	// Depth 3 plus the input itself reaches the bound: past it only
	// non-null fields are produced.
	input := paramByName(t, params, "input").Value.(map[string]any)
	assert.Contains(t, input, "string")
	nested := input["nested"].(map[string]any)
	assert.Equal(t, []string{"float"}, keys(nested))
}

func TestGenerateArgsForField_NonNullInputCycle(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "loop")

	cfg := baseConfig()
	cfg.MaxDepth = 3

	params, err := GenerateArgsForField(schema, field, cfg, GenerationContext{Depth: 1, Path: "loop"})
	require.NoError(t, err)

	input := params[0].Value.(map[string]any)
	level := input
	for range 10 {
		next, ok := level["next"].(map[string]any)
		if !ok || len(next) == 0 {
			return
		}
		level = next
	}
	t.Fatal("non-null input cycle did not terminate")
}

func TestGenerateArgsForField_Seeded(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	field := queryField(t, schema, "hasArgs")

	run := func() []Parameter {
		cfg := baseConfig()
		cfg.NullGenerationStrategy = SometimesNull
		cfg.Rand = faker.NewRand(42)
		params, err := GenerateArgsForField(schema, field, cfg, outerContext)
		require.NoError(t, err)
		return params
	}

	assert.Equal(t, run(), run())
}

func TestGenerateArgsForField_OutputTypeArgument(t *testing.T) {
	schema := loadSchema(t, argsSchema)
	// Schemas never declare such an argument; build one by hand.
	field := &ast.FieldDefinition{
		Name: "broken",
		Arguments: ast.ArgumentDefinitionList{
			{Name: "q", Type: ast.NamedType("Query", nil)},
		},
	}

	_, err := GenerateArgsForField(schema, field, baseConfig(), outerContext)
	assert.ErrorIs(t, err, ErrNotInputType)

	field.Arguments[0].Type = ast.NamedType("Missing", nil)
	_, err = GenerateArgsForField(schema, field, baseConfig(), outerContext)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
