package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
schema:
  - ./schema/**/*.graphql
queryType: mutation
maxDepth: 3
nullGenerationStrategy: SOMETIMES_NULL
seed: 42
factories:
  OddNumber: { value: 5 }
  "Str*": { template: "{{faker.word}}-{{target}}" }
  "DateTime!": { expr: "HasDefault ? Default : Faker.DateTime()" }
  Nothing: { value: null }
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeConfig(t, "querygen.yaml", validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StringList{"./schema/**/*.graphql"}, cfg.Schema)
	assert.Equal(t, "mutation", cfg.QueryType)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, "SOMETIMES_NULL", cfg.NullGenerationStrategy)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, filepath.Dir(path), cfg.Dir())

	require.Len(t, cfg.Factories, 4)
	assert.Equal(t, int64(5), cfg.Factories["OddNumber"].Value)
	assert.Equal(t, "value", cfg.Factories["OddNumber"].Kind())
	assert.Equal(t, "template", cfg.Factories["Str*"].Kind())
	assert.Equal(t, "expr", cfg.Factories["DateTime!"].Kind())
	assert.Nil(t, cfg.Factories["Nothing"].Value)
}

func TestLoad_ValidJSON(t *testing.T) {
	path := writeConfig(t, "querygen.json", `{
		"schema": "schema.json",
		"factories": {
			"Float": {"value": 1.5},
			"Point": {"value": {"x": 1, "y": [2, 3]}}
		}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StringList{"schema.json"}, cfg.Schema)
	assert.Equal(t, 1.5, cfg.Factories["Float"].Value)
	assert.Equal(t, map[string]any{"x": int64(1), "y": []any{int64(2), int64(3)}}, cfg.Factories["Point"].Value)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.ErrorContains(t, err, "directory")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Load(writeConfig(t, "querygen.yaml", "  \n"))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := Load(writeConfig(t, "querygen.json", "{ invalid json }"))
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		_, err := Load(writeConfig(t, "querygen.yaml", "schema: [unclosed"))
		assert.ErrorIs(t, err, ErrInvalidYAML)
	})
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{"missing schema", "maxDepth: 2", "schema"},
		{"unknown key", "schema: a.graphql\nbogus: 1", "bogus"},
		{"negative depth", "schema: a.graphql\nmaxDepth: -1", "maxDepth"},
		{"two kinds", "schema: a.graphql\nfactories:\n  Int: { value: 1, expr: \"2\" }", "factories.Int"},
		{"no kind", "schema: a.graphql\nfactories:\n  Int: {}", "factories.Int"},
		{"unknown factory key", "schema: a.graphql\nfactories:\n  Int: { code: x }", "factories.Int"},
		{"empty template", "schema: a.graphql\nfactories:\n  Int: { template: \"\" }", "factories.Int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), FormatYAML)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse_SemanticErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{"query type", "schema: a.graphql\nqueryType: fragment", "queryType"},
		{"null strategy", "schema: a.graphql\nnullGenerationStrategy: MAYBE", "nullGenerationStrategy"},
		{"template", "schema: a.graphql\nfactories:\n  \"Str*\": { template: \"{{request.body}}\" }", "factories.Str*.template"},
		{"expr", "schema: a.graphql\nfactories:\n  Int: { expr: \"Nope +\" }", "factories.Int.expr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), FormatYAML)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("QG_TEST_DIR", "api")

	assert.Equal(t, "api/schema.graphql", ExpandEnvVars("${QG_TEST_DIR}/schema.graphql"))
	assert.Equal(t, "fallback", ExpandEnvVars("${QG_TEST_UNSET:-fallback}"))
	assert.Equal(t, "", ExpandEnvVars("${QG_TEST_UNSET}"))
	assert.Equal(t, "$HOME", ExpandEnvVars("$HOME"))

	cfg, err := Parse([]byte("schema: ${QG_TEST_DIR}/*.graphql"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, StringList{"api/*.graphql"}, cfg.Schema)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	_, err := Discover(dir)
	assert.ErrorIs(t, err, ErrNoConfig)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "querygen.json"), []byte(`{"schema": "a"}`), 0644))
	path, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "querygen.json"), path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "querygen.yaml"), []byte("schema: a"), 0644))
	path, err = Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "querygen.yaml"), path, "yaml takes precedence")

	t.Setenv(EnvConfig, filepath.Join(dir, "querygen.json"))
	path, err = Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "querygen.json"), path)

	t.Setenv(EnvConfig, filepath.Join(dir, "missing.yaml"))
	_, err = Discover(dir)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestSave_RoundTrip(t *testing.T) {
	original := Default("schema/*.graphql", "extra.graphql")
	original.Seed = 7
	original.Factories = map[string]FactorySpec{
		"OddNumber": {Value: int64(0)},
		"Str*":      {Template: "{{target}}"},
		"ID":        {Expr: `Faker.UUID()`},
	}

	for _, name := range []string{"querygen.yaml", filepath.Join("nested", "querygen.json")} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, original))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, original.Schema, loaded.Schema)
			assert.Equal(t, original.MaxDepth, loaded.MaxDepth)
			assert.Equal(t, original.Seed, loaded.Seed)
			assert.Equal(t, int64(0), loaded.Factories["OddNumber"].Value)
			assert.Equal(t, "{{target}}", loaded.Factories["Str*"].Template)
			assert.Equal(t, "Faker.UUID()", loaded.Factories["ID"].Expr)

			_, err = os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err))
		})
	}

	assert.Error(t, Save(filepath.Join(t.TempDir(), "x.yaml"), nil))
}

func TestApplyEnv(t *testing.T) {
	cfg := Default("a.graphql")

	t.Setenv(EnvMaxDepth, "2")
	t.Setenv(EnvNullStrategy, "always_null")
	t.Setenv(EnvQueryType, "Subscription")
	t.Setenv(EnvSeed, "99")
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 2, cfg.MaxDepth)
	assert.Equal(t, "ALWAYS_NULL", cfg.NullGenerationStrategy)
	assert.Equal(t, "SUBSCRIPTION", cfg.QueryType)
	assert.Equal(t, uint64(99), cfg.Seed)

	t.Setenv(EnvMaxDepth, "deep")
	assert.ErrorIs(t, cfg.ApplyEnv(), ErrInvalidConfig)

	t.Setenv(EnvMaxDepth, "")
	t.Setenv(EnvSeed, "-1")
	assert.ErrorIs(t, cfg.ApplyEnv(), ErrInvalidConfig)
}
