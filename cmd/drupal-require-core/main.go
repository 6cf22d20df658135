// Package main is the entry point for the drupal-require-core CLI.
//
// This binary bumps every drupal/core-* dependency in a project's
// composer.json to a caret constraint on a target version and optionally
// runs the composer and drush commands that apply the change. It
// delegates all functionality to the internal/cli package, which defines
// the cobra command.
//
// Build-time variables (version, commit, date) are injected via ldflags
// by GoReleaser during the release process. During development, they
// default to "dev", "none", and "unknown" respectively.
package main

import (
	"github.com/mmr-tortoise/drupal-require-core/internal/cli"
)

// version, commit, and date are set by GoReleaser at build time
// via ldflags. They provide binary identification for the --version
// flag output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Inject build-time version info into the CLI package. This keeps
	// the build system (GoReleaser ldflags) decoupled from the CLI
	// framework (cobra).
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// Create the root command and execute it. Execute handles error
	// formatting and exit codes.
	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
