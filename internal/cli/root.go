// Package cli implements the cobra-based CLI for drupal-require-core.
//
// The tool has a single operation, so the root command carries it
// directly instead of dispatching to subcommands: positional arguments
// for the target version, project directory, and command prefix, plus
// global flags for output format and confirmation handling. The update
// orchestration itself lives in update.go.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/drupal-require-core/internal/model"
)

// Global flag variables bound to the root command.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// In JSON mode the interactive prompt is skipped: stdout is reserved
	// for machine-readable output, and commands run only with --yes.
	jsonOutput bool

	// verbose enables detailed logging output for debugging.
	// When true, additional information about operations is printed to stderr.
	verbose bool

	// assumeYes skips the confirmation prompt and runs the generated
	// commands immediately.
	assumeYes bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "drupal-require-core <version> [project-directory] [command-prefix]",
		Short: "Bump drupal/core-* dependencies in a Composer manifest",
		Long: `drupal-require-core updates every drupal/core-* dependency in a project's
composer.json to a caret constraint on the given version, previews the
exact composer and drush commands that apply the change, and optionally
runs them in order, stopping at the first failure.

The manifest itself is never written by this tool; composer performs the
actual update. The optional command prefix routes every external command
through a wrapper such as "lando" or "docker compose exec app".

Examples:
  drupal-require-core 10.4
  drupal-require-core 10.4 /var/www/site
  drupal-require-core 10.4 . lando
  drupal-require-core 11.0 /var/www/site "docker compose exec app" --yes`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// Args enforces the positional contract. A missing version prints
		// the usage text to stdout before failing, so an operator who ran
		// the bare binary sees how to invoke it.
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
				return model.NewCLIError(model.ExitFailure, "missing required <version> argument")
			}
			if len(args) > 3 {
				return model.NewCLIError(model.ExitFailure,
					fmt.Sprintf("accepts at most 3 args, received %d", len(args)))
			}
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context(), args, defaultUpdateDeps())
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Run the generated commands without prompting")

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		// Generic error (including cobra flag parse errors).
		printError(err.Error(), nil)
		os.Exit(int(model.ExitFailure))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
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

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
