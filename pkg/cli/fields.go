package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/querygen/pkg/cli/internal/output"
	"github.com/getmockd/querygen/pkg/graphql"
)

// FieldOutput describes one root field in --json output.
type FieldOutput struct {
	Operation   string `json:"operation"`
	Name        string `json:"name"`
	Signature   string `json:"signature"`
	Description string `json:"description,omitempty"`
}

var fieldsFlags projectFlags

var fieldsCmd = &cobra.Command{
	Use:     "fields",
	Aliases: []string{"ls"},
	Short:   "List the root fields operations can be generated for",
	Example: `  querygen fields -s schema.graphql
  querygen fields --type mutation --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := fieldsFlags.load(cmd)
		if err != nil {
			return err
		}

		ops := []graphql.Operation{graphql.OperationQuery, graphql.OperationMutation, graphql.OperationSubscription}
		if cmd.Flags().Changed("type") {
			ops = []graphql.Operation{p.operation()}
		}

		fields := make([]FieldOutput, 0)
		for _, op := range ops {
			for _, f := range p.schema.RootFields(op) {
				fields = append(fields, FieldOutput{
					Operation:   string(op),
					Name:        f.Name,
					Signature:   graphql.Signature(f),
					Description: strings.TrimSpace(f.Description),
				})
			}
		}

		return printResult(fields, func() error {
			if len(fields) == 0 {
				fmt.Println("No root fields found")
				return nil
			}
			w := output.Table()
			fmt.Fprintln(w, "OPERATION\tFIELD\tSIGNATURE")
			for _, f := range fields {
				fmt.Fprintf(w, "%s\t%s\t%s\n", f.Operation, f.Name, f.Signature)
			}
			return w.Flush()
		})
	},
}

func init() {
	fieldsFlags.registerSchema(fieldsCmd)
	rootCmd.AddCommand(fieldsCmd)
}
