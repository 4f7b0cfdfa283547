package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/querygen/pkg/cli/internal/flags"
	"github.com/getmockd/querygen/pkg/config"
)

// InitOutput is the --json form of the init command.
type InitOutput struct {
	Path   string   `json:"path"`
	Schema []string `json:"schema"`
}

var (
	initSchemas flags.StringSlice
	initForce   bool
	initOutput  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a querygen.yaml with the default settings",
	Example: `  querygen init -s 'schema/**/*.graphql'
  querygen init -s schema.json -o api/querygen.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemas := []string(initSchemas)
		if len(schemas) == 0 {
			schemas = []string{"schema.graphql"}
		}

		if _, err := os.Stat(initOutput); err == nil && !initForce {
			return fmt.Errorf("%w: %s", ErrConfigExists, initOutput)
		}

		cfg := config.Default(schemas...)
		if err := config.Save(initOutput, cfg); err != nil {
			return err
		}
		log.Info("config written", slog.String("path", initOutput))

		return printResult(InitOutput{Path: initOutput, Schema: schemas}, func() error {
			fmt.Printf("Created %s\n", initOutput)
			return nil
		})
	},
}

func init() {
	initCmd.Flags().VarP(&initSchemas, "schema", "s", "Schema file or glob to record (repeatable)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", config.DefaultFileName, "Path of the config file to write")
	rootCmd.AddCommand(initCmd)
}
