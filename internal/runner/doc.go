// Package runner executes update plan steps as child processes.
//
// Each sub-command of a step is invoked as an explicit argument vector via
// os/exec, never through a shell: the command prefix and the entry strings
// are data, not shell syntax. Compound steps reproduce the shell's &&
// semantics in code, running sub-commands in order and stopping at the
// first non-zero exit.
//
// The Runner interface exists so the CLI orchestration can be tested with
// a recording fake instead of spawning composer and drush.
package runner
