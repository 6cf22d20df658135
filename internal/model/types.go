package model

import (
	"fmt"
	"regexp"
	"strings"
)

// CorePrefix is the literal package-name prefix that identifies the
// dependencies this tool manages. Only manifest keys starting with this
// prefix are ever touched; everything else in composer.json is ignored.
const CorePrefix = "drupal/core-"

// MatchedEntry pairs a manifest package name with a freshly rendered
// version constraint. The constraint is always "^<version>"; whatever
// operator the manifest previously carried is discarded entirely, only
// the key is reused.
type MatchedEntry struct {
	// Name is the Composer package name (e.g. "drupal/core-recommended").
	Name string `json:"name"`

	// Constraint is the rendered caret constraint (e.g. "^10.4").
	Constraint string `json:"constraint"`
}

// NewMatchedEntry builds a MatchedEntry for the given package name and
// target version. The caret operator is always prepended.
func NewMatchedEntry(name, version string) MatchedEntry {
	return MatchedEntry{
		Name:       name,
		Constraint: "^" + version,
	}
}

// String returns the Composer argument form "name:^version", which is
// both the preview line format and the token passed to composer require.
func (e MatchedEntry) String() string {
	return e.Name + ":" + e.Constraint
}

// RenderEntries converts a list of matched entries into their Composer
// argument strings, preserving order.
func RenderEntries(entries []MatchedEntry) []string {
	rendered := make([]string, 0, len(entries))
	for _, e := range entries {
		rendered = append(rendered, e.String())
	}
	return rendered
}

// CommandStep is a single step of an UpdatePlan.
//
// Display is the human-readable command line shown in previews, with
// compound steps joined by " && " exactly as the operator would type them
// into a shell.
//
// Commands holds the same step as explicit argument vectors, one per
// sub-command. Execution runs them in order and stops at the first
// non-zero exit, which reproduces the shell's && semantics without
// handing the strings to a shell for evaluation.
type CommandStep struct {
	// Display is the command line shown to the operator.
	Display string `json:"display"`

	// Commands are the argv vectors executed for this step, in order.
	Commands [][]string `json:"-"`
}

// UpdatePlan is the fixed, ordered command sequence that applies a core
// update. It is built once per invocation from the matched entries, the
// target version, and the optional command prefix, and is immutable from
// then on. Order matters: each step depends on the manifest state left
// behind by the previous one.
type UpdatePlan struct {
	// Steps are executed strictly in order with fail-fast semantics.
	Steps []CommandStep `json:"steps"`
}

// Displays returns the preview lines for the plan, one per step.
func (p *UpdatePlan) Displays() []string {
	lines := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		lines = append(lines, s.Display)
	}
	return lines
}

// versionRegex constrains the shape of a target version. Composer accepts
// plain numeric versions ("10.4", "11.0.1") as well as stability suffixes
// ("11.0-beta1", "10.4.x-dev"), so the check stays permissive: it only
// rejects empty strings, leading separators, and whitespace or shell
// metacharacters that would corrupt the generated command lines.
var versionRegex = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z.+-]*$`)

// ValidateVersion checks that the given string is usable as a target
// version for a caret constraint.
func ValidateVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return fmt.Errorf("version must not be empty")
	}
	if !versionRegex.MatchString(version) {
		return fmt.Errorf("invalid version %q: must start with an alphanumeric character and contain only alphanumerics, dots, hyphens and plus signs", version)
	}
	return nil
}

// ExitCode defines the CLI exit codes. The contract is deliberately
// coarse: every failure mode (usage error, missing directory or manifest,
// no matching entries, failed external command) exits 1, while a clean
// run and an operator decline at the confirmation prompt both exit 0.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully, or the
	// operator declined to run the generated commands.
	ExitSuccess ExitCode = 0

	// ExitFailure indicates any error: usage, environment, no matching
	// dependencies, or a failed external command.
	ExitFailure ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
