package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mmr-tortoise/drupal-require-core/internal/model"
)

// Runner executes a single plan step in the given project directory.
//
// Implementations must run the step's sub-commands strictly in order and
// return the first failure without attempting the remaining sub-commands.
type Runner interface {
	Run(ctx context.Context, step model.CommandStep, dir string) error
}

// ExecRunner runs plan steps as real child processes.
//
// Output streams are fields rather than hardcoded os.Stdout/os.Stderr so
// tests can capture them; NewExecRunner wires up the process defaults.
// Stdin is forwarded too, because composer prompts the operator in some
// configurations (e.g. unsigned plugin confirmation).
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// NewExecRunner creates an ExecRunner attached to the process's standard
// streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
	}
}

// Run executes the step's sub-commands in order, each with the project
// directory as its working directory.
//
// The working directory is set per child process via exec.Cmd.Dir instead
// of os.Chdir, so the tool's own process state never changes. On a
// non-zero exit the error names the failing sub-command and wraps the
// exec error; later sub-commands of the step are not attempted.
func (r *ExecRunner) Run(ctx context.Context, step model.CommandStep, dir string) error {
	for _, argv := range step.Commands {
		if len(argv) == 0 {
			return model.NewCLIError(model.ExitFailure, "internal error: empty command in plan step")
		}

		// #nosec G204 -- argv is assembled from the fixed plan template,
		// the validated version string, and manifest keys; nothing is
		// passed to a shell for evaluation.
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Dir = dir
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
		cmd.Stdin = r.Stdin

		if err := cmd.Run(); err != nil {
			return model.WrapCLIError(
				model.ExitFailure,
				fmt.Sprintf("%s failed", strings.Join(argv, " ")),
				err,
			)
		}
	}
	return nil
}
