package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/getmockd/querygen/pkg/graphql"
	"github.com/getmockd/querygen/pkg/querygen"
)

// CheckResult is the outcome for one root field.
type CheckResult struct {
	Operation string `json:"operation"`
	Field     string `json:"field"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// CheckReport summarizes a check run.
type CheckReport struct {
	Checked           int           `json:"checked"`
	Passed            int           `json:"passed"`
	Results           []CheckResult `json:"results"`
	UnresolvedScalars []string      `json:"unresolvedScalars,omitempty"`
}

var checkFlags projectFlags

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Generate every root field and validate the result against the schema",
	Long: `Generate an operation for every root field and validate it.

Each operation is parsed and validated against the schema, and its variables
are checked against the declared variable types. Scalars without a factory are
listed once each with a snippet to add to the config.`,
	Example: `  querygen check -s 'schema/**/*.graphql'
  querygen check --type mutation --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := checkFlags.load(cmd)
		if err != nil {
			return err
		}

		ops := []graphql.Operation{graphql.OperationQuery, graphql.OperationMutation, graphql.OperationSubscription}
		if cmd.Flags().Changed("type") {
			ops = []graphql.Operation{p.operation()}
		}

		report, unresolved := runCheck(p, ops)
		if report.Checked == 0 {
			return ErrNoFields
		}

		if err := printResult(report, func() error {
			printCheckReport(report, unresolved)
			return nil
		}); err != nil {
			return err
		}

		if report.Passed < report.Checked {
			return &exitError{
				msg:    fmt.Sprintf("%d of %d fields failed", report.Checked-report.Passed, report.Checked),
				silent: true,
			}
		}
		return nil
	},
}

func init() {
	checkFlags.register(checkCmd)
	rootCmd.AddCommand(checkCmd)
}

// runCheck generates and validates one operation per root field. Unresolved
// scalars are returned in first-seen order.
func runCheck(p *project, ops []graphql.Operation) (CheckReport, []*querygen.UnresolvedScalarError) {
	report := CheckReport{Results: []CheckResult{}}
	var unresolved []*querygen.UnresolvedScalarError
	seen := make(map[string]bool)

	for _, op := range ops {
		for _, field := range p.schema.RootFields(op) {
			result := CheckResult{Operation: string(op), Field: field.Name}
			err := checkField(p, op, field)

			var scalarErr *querygen.UnresolvedScalarError
			switch {
			case err == nil:
				result.OK = true
				report.Passed++
			case errors.As(err, &scalarErr):
				result.Error = fmt.Sprintf("no factory for scalar %s at %s", scalarErr.Scalar, scalarErr.Path)
				if !seen[scalarErr.Scalar] {
					seen[scalarErr.Scalar] = true
					unresolved = append(unresolved, scalarErr)
					report.UnresolvedScalars = append(report.UnresolvedScalars, scalarErr.Scalar)
				}
			default:
				result.Error = err.Error()
			}

			log.Debug("checked field",
				slog.String("operation", string(op)),
				slog.String("field", field.Name),
				slog.Bool("ok", result.OK),
			)
			report.Checked++
			report.Results = append(report.Results, result)
		}
	}
	return report, unresolved
}

// checkField generates an operation for field and validates the document and
// its variables against the schema.
func checkField(p *project, op graphql.Operation, field *ast.FieldDefinition) error {
	out, err := generateOperation(p, op, []*ast.FieldDefinition{field})
	if err != nil {
		return err
	}

	doc, errs := gqlparser.LoadQuery(p.schema.AST(), out.Query)
	if len(errs) > 0 {
		return fmt.Errorf("invalid operation: %w", errs)
	}
	if len(doc.Operations) != 1 {
		return fmt.Errorf("expected one operation, got %d", len(doc.Operations))
	}
	if _, err := validator.VariableValues(p.schema.AST(), doc.Operations[0], out.Variables); err != nil {
		return fmt.Errorf("invalid variables: %w", err)
	}
	return nil
}

func printCheckReport(report CheckReport, unresolved []*querygen.UnresolvedScalarError) {
	for _, r := range report.Results {
		status := "ok  "
		if !r.OK {
			status = "FAIL"
		}
		line := fmt.Sprintf("%s %s.%s", status, r.Operation, r.Field)
		if r.Error != "" {
			line += ": " + firstLine(r.Error)
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d of %d fields passed\n", report.Passed, report.Checked)

	for _, e := range unresolved {
		fmt.Fprintf(os.Stderr, "\n%s\n", e.Error())
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
