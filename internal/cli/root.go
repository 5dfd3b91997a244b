// Package cli implements the cobra-based CLI for rsorg.
//
// The root command runs the full reorganization pipeline; the plan
// subcommand (plan.go) prints the computed mapping without touching the
// destination. This file defines the root command, the global flags and
// the error-to-exit-code translation.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/rsorg/internal/model"
)

// Global flag variables shared across commands. They are bound to
// persistent flags on the root command, which makes them available to
// every subcommand automatically.
var (
	// originDir is the source tree being reorganized.
	originDir string

	// destinationDir is the output tree being produced.
	destinationDir string

	// configFile optionally points at a YAML or JSONC configuration file.
	configFile string

	// jsonOutput switches machine-readable output where a command
	// supports it (currently the plan subcommand).
	jsonOutput bool

	// verbose enables debug-level logging.
	verbose bool

	// logLevel optionally names the minimum log level (debug, info,
	// warn, error). --verbose takes precedence when both are given.
	logLevel string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package for --version output.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// Invoking rsorg without a subcommand runs the reorganization itself.
func NewRootCommand() *cobra.Command {
	flags := &runFlags{}

	rootCmd := &cobra.Command{
		Use:   "rsorg",
		Short: "Reorganize a three-level Rust exercise tree into a snake_case module tree",
		Long: `rsorg walks a project/module/submodule directory hierarchy and mirrors it
into a destination tree with snake_case names. Each leaf directory's
src/main.rs and task.md are copied next to each other as <leaf>.rs and
<leaf>.md, and every top-level directory receives a generated mod.rs
declaring its modules.

Examples:
  rsorg --origin ./exercises --destination ./book/src
  rsorg --origin ./exercises --destination ./book/src --dry-run
  rsorg plan --origin ./exercises --destination ./book/src --json`,

		// Errors are formatted by Execute, not by cobra.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(flags)
		},
	}

	// Persistent flags are inherited by all subcommands.
	rootCmd.PersistentFlags().StringVar(&originDir, "origin", "", "Path to the source (origin) directory")
	rootCmd.PersistentFlags().StringVar(&destinationDir, "destination", "", "Path to the target (destination) directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML or JSONC configuration file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format where supported")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Minimum log level: debug, info, warn or error (default info)")

	// Flags specific to the pipeline run itself.
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Perform a dry run (only log actions, do not copy files)")
	rootCmd.Flags().BoolVar(&flags.mainFile, "main-file", false, "Also generate a main.rs entrypoint at the destination root")
	rootCmd.Flags().IntVar(&flags.workers, "workers", 0, "Number of concurrent workers (default from config)")

	_ = rootCmd.MarkPersistentFlagRequired("origin")
	_ = rootCmd.MarkPersistentFlagRequired("destination")

	rootCmd.AddCommand(NewPlanCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes. CLIError
// values carry their own exit codes; other errors exit with code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag. Errors always go to
// stderr; stdout is reserved for command output.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			errObj["error"].(map[string]interface{})["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}
