package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/querygen/pkg/cli/internal/flags"
	"github.com/getmockd/querygen/pkg/cli/internal/parse"
	"github.com/getmockd/querygen/pkg/config"
	"github.com/getmockd/querygen/pkg/graphql"
	"github.com/getmockd/querygen/pkg/querygen"
)

// projectFlags are the generation settings shared by generate and check.
type projectFlags struct {
	schemas      flags.StringSlice
	factories    []string
	queryType    string
	queryName    string
	maxDepth     int
	nullStrategy string
	seed         uint64
}

// registerSchema adds the flags needed to locate a schema.
func (f *projectFlags) registerSchema(cmd *cobra.Command) {
	cmd.Flags().VarP(&f.schemas, "schema", "s", "Schema file, glob or introspection .json (repeatable; overrides the config)")
	cmd.Flags().StringVarP(&f.queryType, "type", "t", "", "Operation type: query, mutation or subscription")
}

func (f *projectFlags) register(cmd *cobra.Command) {
	f.registerSchema(cmd)
	cmd.Flags().StringArrayVar(&f.factories, "factory", nil, "Constant factory as Type=value, e.g. OddNumber=5 (repeatable)")
	cmd.Flags().StringVar(&f.queryName, "name", "", "Operation name (default: <operation><Field>)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "Maximum selection depth")
	cmd.Flags().StringVar(&f.nullStrategy, "null-strategy", "", "NEVER_NULL, ALWAYS_NULL or SOMETIMES_NULL")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Seed for deterministic output (0: random)")
}

// project is a loaded configuration with its schema and engine settings.
type project struct {
	cfg    *config.File
	schema *graphql.Schema
	engine querygen.Config
}

// operation returns the root operation the engine is configured for.
func (p *project) operation() graphql.Operation {
	op, _ := graphql.ParseOperation(string(p.engine.QueryType))
	return op
}

// loadConfig reads --config, QUERYGEN_CONFIG or a discovered config file.
// Without any config file the defaults are used.
func loadConfig() (*config.File, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	path, err := config.Discover(cwd)
	switch {
	case errors.Is(err, config.ErrNoConfig):
		log.Debug("no config file found, using defaults")
		return config.Default(), nil
	case err != nil:
		return nil, err
	}
	log.Debug("loading config", slog.String("path", path))
	return config.Load(path)
}

// load applies the config file, the environment and then the flags.
func (f *projectFlags) load(cmd *cobra.Command) (*project, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("type") {
		cfg.QueryType = f.queryType
	}
	if changed("name") {
		cfg.QueryName = f.queryName
	}
	if changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if changed("null-strategy") {
		cfg.NullGenerationStrategy = f.nullStrategy
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	for _, spec := range f.factories {
		pattern, value, ok := parse.KeyValue(spec, '=')
		if !ok || strings.TrimSpace(pattern) == "" {
			return nil, fmt.Errorf("invalid --factory %q, expected Type=value", spec)
		}
		if cfg.Factories == nil {
			cfg.Factories = make(map[string]config.FactorySpec)
		}
		cfg.Factories[strings.TrimSpace(pattern)] = config.FactorySpec{Value: parse.ScalarValue(value)}
	}

	var schema *graphql.Schema
	if len(f.schemas) > 0 {
		cfg.Schema = config.StringList(f.schemas)
		schema, err = graphql.LoadSchema("", f.schemas...)
	} else if len(cfg.Schema) == 0 {
		return nil, ErrNoSchema
	} else {
		schema, err = cfg.LoadSchema()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	engine, err := cfg.EngineConfig(log)
	if err != nil {
		return nil, err
	}
	log.Info("schema loaded",
		slog.Any("sources", schema.Sources()),
		slog.Int("queries", len(schema.ListQueries())),
		slog.Int("mutations", len(schema.ListMutations())),
		slog.Int("subscriptions", len(schema.ListSubscriptions())),
	)
	return &project{cfg: cfg, schema: schema, engine: engine}, nil
}
