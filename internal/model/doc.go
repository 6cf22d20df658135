// Package model defines the domain types and value objects for the
// drupal-require-core CLI.
//
// This package contains pure data structures with no external dependencies.
// The central entities are MatchedEntry (a drupal/core-* package paired with
// its freshly rendered caret constraint) and UpdatePlan (the fixed, ordered
// sequence of external commands that applies an update). Both are derived
// from the manifest at runtime and never persisted.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
