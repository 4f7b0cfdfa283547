package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/querygen/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	configPath string
	jsonOutput bool
	logLevel   string
	logFormat  string
	logFile    string

	// log is set up by the root command before any subcommand runs.
	log      = logging.Nop()
	closeLog = func() error { return nil }

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "querygen",
	Short: "querygen generates example GraphQL operations and variables from a schema",
	Long: `querygen synthesizes syntactically valid GraphQL queries, mutations and
subscriptions for the fields of a schema, together with plausible variable values
for every argument.

Configuration is read from querygen.yaml (or querygen.yml, querygen.json) in the
current directory, the file named by QUERYGEN_CONFIG, or --config. Flags override
QUERYGEN_* environment variables, which override the file.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Main()
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, closer, err := logging.Open(logging.Config{
			Level:  logging.ParseLevel(logLevel),
			Format: logging.ParseFormat(logFormat),
			Output: os.Stderr,
			File:   logFile,
		})
		if err != nil {
			return err
		}
		log, closeLog = logger.With(slog.String("command", cmd.Name())), closer
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	if err := Execute(); err != nil {
		var exit *exitError
		if !errors.As(err, &exit) || !exit.silent {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		_ = closeLog()
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to querygen.yaml (default: discovered in the current directory)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")
}
