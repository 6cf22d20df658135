// Package plan builds the fixed four-step command sequence that applies a
// drupal/core-* update.
//
// Plan construction is a pure function of (matched entries, dev entries,
// command prefix): no I/O, no randomness, no clock. The same inputs always
// produce byte-identical command lines, which is what makes the preview
// trustworthy: the commands shown are exactly the commands run.
//
// The && -joined steps of the original shell workflow are modeled as
// ordered sub-commands (argument vectors) inside a single step: the later
// sub-command runs only if the earlier one succeeded. The preview still
// prints the familiar "a && b" form.
package plan
