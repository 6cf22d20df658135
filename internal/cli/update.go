// update.go implements the update orchestration behind the root command.
//
// Operation sequence:
//  1. Validate the version argument
//  2. Resolve and validate the project directory
//  3. Resolve the command prefix (argument, then optional project config)
//  4. Locate and parse composer.json
//  5. Match drupal/core-* entries from "require" and "require-dev"
//  6. Print the preview and the fixed four-command plan
//  7. Confirm (unless --yes), then execute with fail-fast semantics
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/drupal-require-core/internal/config"
	"github.com/mmr-tortoise/drupal-require-core/internal/manifest"
	"github.com/mmr-tortoise/drupal-require-core/internal/model"
	"github.com/mmr-tortoise/drupal-require-core/internal/plan"
	"github.com/mmr-tortoise/drupal-require-core/internal/runner"
)

// updateDeps bundles the injectable collaborators of runUpdate so tests
// can substitute a recording runner and captured streams.
type updateDeps struct {
	runner runner.Runner
	in     io.Reader
	out    io.Writer
}

// defaultUpdateDeps wires runUpdate to the real process environment.
func defaultUpdateDeps() *updateDeps {
	return &updateDeps{
		runner: runner.NewExecRunner(),
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// runUpdate is the main orchestration function. args holds the positional
// arguments already validated for arity by cobra: version, then optional
// project directory and command prefix.
func runUpdate(ctx context.Context, args []string, deps *updateDeps) error {
	// Step 1: validate the version argument.
	version := args[0]
	if err := model.ValidateVersion(version); err != nil {
		return model.WrapCLIError(model.ExitFailure, "invalid version argument", err)
	}

	// Step 2: resolve and validate the project directory. The directory
	// is threaded explicitly through every later step and applied via
	// exec.Cmd.Dir; the process working directory is never changed.
	projectDir := "."
	if len(args) >= 2 && args[1] != "" {
		projectDir = args[1]
	}
	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "failed to resolve project directory", err)
	}
	info, err := os.Stat(projectDir)
	if err != nil || !info.IsDir() {
		return model.NewCLIError(model.ExitFailure,
			fmt.Sprintf("project directory does not exist: %s", projectDir))
	}
	VerboseLog("Project directory: %s", projectDir)

	// Step 3: resolve the command prefix. The positional argument wins;
	// otherwise the optional project config file may supply a default.
	commandPrefix := ""
	if len(args) >= 3 {
		commandPrefix = args[2]
	}
	if commandPrefix == "" {
		cfg, cfgErr := config.Load(projectDir)
		if cfgErr != nil {
			return model.WrapCLIError(model.ExitFailure, "failed to load project configuration", cfgErr)
		}
		if cfg != nil && cfg.CommandPrefix != "" {
			commandPrefix = cfg.CommandPrefix
			VerboseLog("Command prefix from %s: %q", config.FileName, commandPrefix)
		}
	}
	if commandPrefix != "" {
		VerboseLog("Command prefix: %q", commandPrefix)
	}

	// Step 4: locate and parse the manifest.
	manifestPath, err := manifest.Find(projectDir)
	if err != nil {
		return err
	}
	VerboseLog("Manifest: %s", manifestPath)

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	// Step 5: match drupal/core-* entries, preserving manifest key order.
	entries := manifest.MatchCore(m.Require, version)
	devEntries := manifest.MatchCore(m.RequireDev, version)
	VerboseLog("Matched %d normal and %d dev dependencies", len(entries), len(devEntries))

	if len(entries) == 0 && len(devEntries) == 0 {
		return model.NewCLIError(model.ExitFailure, "No drupal/core-* dependencies found")
	}

	// Step 6: build and present the plan. The command list is always
	// shown, even if execution is declined afterwards.
	p := plan.Build(entries, devEntries, commandPrefix)

	if IsJSONOutput() {
		printUpdateJSON(deps.out, version, entries, devEntries, p)
		// JSON mode is for machine consumption: no interactive prompt.
		// Commands still only run when --yes was given explicitly.
		if !assumeYes {
			return nil
		}
		return executePlan(ctx, p, projectDir, deps)
	}

	printPreview(deps.out, version, entries, devEntries, p)

	// Step 7: confirm and execute.
	if !assumeYes {
		if !confirm(deps.in, deps.out) {
			fmt.Fprintln(deps.out, "Commands were not run. You can copy the commands above and run them manually.")
			return nil
		}
	}

	return executePlan(ctx, p, projectDir, deps)
}

// printPreview writes the human-readable preview: the target version, the
// two labeled entry lists, and the command plan. An empty list prints as
// a labeled section with no lines beneath it.
func printPreview(out io.Writer, version string, entries, devEntries []model.MatchedEntry, p *model.UpdatePlan) {
	fmt.Fprintf(out, "Updating drupal/core-* dependencies to ^%s\n", version)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Normal dependencies:")
	for _, e := range entries {
		fmt.Fprintf(out, "  %s\n", e)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Dev dependencies:")
	for _, e := range devEntries {
		fmt.Fprintf(out, "  %s\n", e)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands to run:")
	for _, line := range p.Displays() {
		fmt.Fprintf(out, "  %s\n", line)
	}
	fmt.Fprintln(out)
}

// printUpdateJSON writes the machine-readable equivalent of the preview.
func printUpdateJSON(out io.Writer, version string, entries, devEntries []model.MatchedEntry, p *model.UpdatePlan) {
	type resultJSON struct {
		Version         string               `json:"version"`
		Constraint      string               `json:"constraint"`
		Dependencies    []model.MatchedEntry `json:"dependencies"`
		DevDependencies []model.MatchedEntry `json:"devDependencies"`
		Commands        []string             `json:"commands"`
	}

	result := resultJSON{
		Version:         version,
		Constraint:      "^" + version,
		Dependencies:    entries,
		DevDependencies: devEntries,
		Commands:        p.Displays(),
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(out, string(data))
}

// confirm prompts the operator and reads one line of input. Only an exact
// case-insensitive "y" counts as affirmative; anything else, including an
// empty line or a closed stdin, is a decline.
func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Do you want to run these commands now? (y/N): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		// EOF before any input: treat as decline, same as pressing enter.
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

// executePlan runs the plan steps strictly in order. Each step is
// announced before it runs; a failing step is reported and aborts the
// remainder immediately. Already-applied changes are not rolled back,
// composer and drush own that state.
func executePlan(ctx context.Context, p *model.UpdatePlan, projectDir string, deps *updateDeps) error {
	for _, step := range p.Steps {
		fmt.Fprintf(deps.out, "Running: %s\n", step.Display)

		if err := deps.runner.Run(ctx, step, projectDir); err != nil {
			fmt.Fprintf(deps.out, "Command failed: %s\n", step.Display)
			return model.WrapCLIError(model.ExitFailure, "command execution aborted", err)
		}
	}

	fmt.Fprintln(deps.out, "All commands completed successfully.")
	return nil
}
