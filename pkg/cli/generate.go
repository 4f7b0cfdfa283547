package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/getmockd/querygen/pkg/cli/internal/flags"
	"github.com/getmockd/querygen/pkg/cli/internal/output"
	"github.com/getmockd/querygen/pkg/graphql"
	"github.com/getmockd/querygen/pkg/querygen"
)

// GenerateOutput is the JSON/YAML form of one generated operation.
type GenerateOutput struct {
	Fields    []string       `json:"fields" yaml:"fields"`
	Operation string         `json:"operation" yaml:"operation"`
	Query     string         `json:"query" yaml:"query"`
	Variables map[string]any `json:"variables" yaml:"variables"`
}

var (
	generateFlags       projectFlags
	generateFields      flags.StringSlice
	generateAll         bool
	generateInteractive bool
	generateOutput      string
)

var generateCmd = &cobra.Command{
	Use:   "generate [Type.field | field]...",
	Short: "Generate an operation and variables for root fields",
	Long: `Generate a GraphQL operation with variables for one or more root fields.

Several fields are combined into one operation; fields of the same name are
aliased. With --all, one operation is generated per root field.`,
	Example: `  # Query for a single field
  querygen generate -s schema.graphql person

  # A mutation, selected by its root type
  querygen generate Mutation.createPerson

  # Every query field as JSON, reproducibly
  querygen generate --all --seed 42 -o json`,
	RunE: runGenerate,
}

func init() {
	generateFlags.register(generateCmd)
	generateCmd.Flags().VarP(&generateFields, "field", "f", "Root field to generate (repeatable)")
	generateCmd.Flags().BoolVar(&generateAll, "all", false, "Generate one operation per root field")
	generateCmd.Flags().BoolVarP(&generateInteractive, "interactive", "i", false, "Pick the fields interactively")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "graphql", "Output format: graphql, json or yaml")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(generateOutput)
	if jsonOutput {
		format = "json"
	}
	switch format {
	case "graphql", "json", "yaml":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutput, generateOutput)
	}

	p, err := generateFlags.load(cmd)
	if err != nil {
		return err
	}

	refs := append(append([]string{}, args...), generateFields...)
	var results []GenerateOutput

	switch {
	case generateAll:
		if len(refs) > 0 {
			return errors.New("--all cannot be combined with field names")
		}
		op := p.operation()
		fields := p.schema.RootFields(op)
		if len(fields) == 0 {
			return fmt.Errorf("%w: schema has no %s fields", ErrNoFields, op)
		}
		for _, field := range fields {
			out, err := generateOperation(p, op, []*ast.FieldDefinition{field})
			if err != nil {
				return err
			}
			results = append(results, out)
		}
	default:
		op, fields, err := resolveFields(p, refs)
		if err != nil {
			return err
		}
		out, err := generateOperation(p, op, fields)
		if err != nil {
			return err
		}
		results = append(results, out)
	}

	return writeGenerated(format, results)
}

// resolveFields turns field references into root fields of one operation type.
func resolveFields(p *project, refs []string) (graphql.Operation, []*ast.FieldDefinition, error) {
	op := p.operation()

	if len(refs) == 0 {
		fields := p.schema.RootFields(op)
		switch {
		case len(fields) == 0:
			return op, nil, fmt.Errorf("%w: schema has no %s fields", ErrNoFields, op)
		case generateInteractive:
			picked, err := pickFields(op, fields)
			return op, picked, err
		case len(fields) == 1:
			return op, fields, nil
		default:
			names := make([]string, 0, len(fields))
			for _, f := range fields {
				names = append(names, f.Name)
			}
			return op, nil, fmt.Errorf("specify a field to generate, one of: %s", strings.Join(names, ", "))
		}
	}

	resolved := op
	fields := make([]*ast.FieldDefinition, 0, len(refs))
	for i, ref := range refs {
		fieldOp, field, err := p.schema.LookupField(op, ref)
		if err != nil {
			return op, nil, err
		}
		if i > 0 && fieldOp != resolved {
			return op, nil, fmt.Errorf("cannot combine %s and %s fields in one operation", resolved, fieldOp)
		}
		resolved = fieldOp
		fields = append(fields, field)
	}
	return resolved, fields, nil
}

// pickFields asks for the fields to generate.
func pickFields(op graphql.Operation, fields []*ast.FieldDefinition) ([]*ast.FieldDefinition, error) {
	byName := make(map[string]*ast.FieldDefinition, len(fields))
	options := make([]huh.Option[string], 0, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
		options = append(options, huh.NewOption(graphql.Signature(f), f.Name))
	}

	var picked []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("Which %s fields?", op)).
				Options(options...).
				Value(&picked).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return errors.New("pick at least one field")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	out := make([]*ast.FieldDefinition, 0, len(picked))
	for _, name := range picked {
		out = append(out, byName[name])
	}
	return out, nil
}

func generateOperation(p *project, op graphql.Operation, fields []*ast.FieldDefinition) (GenerateOutput, error) {
	cfg := p.engine
	cfg.QueryType = querygen.QueryType(strings.ToUpper(string(op)))

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	log.Debug("generating", slog.String("operation", string(op)), slog.Any("fields", names))

	var (
		q   *querygen.GeneratedQuery
		err error
	)
	if len(fields) == 1 {
		q, err = querygen.Generate(p.schema.AST(), fields[0], cfg)
	} else {
		q, err = querygen.GenerateMany(p.schema.AST(), fields, cfg)
	}
	if err != nil {
		return GenerateOutput{}, err
	}
	return GenerateOutput{
		Fields:    names,
		Operation: string(op),
		Query:     q.Query,
		Variables: q.Variables,
	}, nil
}

func writeGenerated(format string, results []GenerateOutput) error {
	var data any = results
	if len(results) == 1 && !generateAll {
		data = results[0]
	}

	switch format {
	case "json":
		return output.JSON(data)
	case "yaml":
		return output.YAML(data)
	default:
		for i, r := range results {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(r.Query)
		}
		return nil
	}
}
