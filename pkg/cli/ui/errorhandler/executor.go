// Package errorhandler turns Cobra execution failures into user-facing errors.
package errorhandler

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"
)

// Executor runs a Cobra command while capturing its error stream, so failures
// surface as a single normalized error instead of raw stderr text.
type Executor struct {
	normalizer DefaultNormalizer
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// Execute runs the provided command with Cobra's error stream intercepted.
// On failure it returns a *CommandError carrying the normalized stderr output
// as the message and the original error as the cause, so errors.Is and
// errors.As keep working.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var captured bytes.Buffer

	previousErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&captured)
	defer cmd.SetErr(previousErrWriter)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(captured.String()),
		cause:   err,
	}
}

// CommandError is a Cobra execution failure augmented with the normalized
// stderr output produced while the command ran.
type CommandError struct {
	message string
	cause   error
}

// Error implements the error interface. The normalized message wins when it
// already contains the cause text, otherwise both are joined.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message != "":
		if strings.Contains(e.message, e.cause.Error()) {
			return e.message
		}

		return e.message + ": " + e.cause.Error()
	default:
		return e.cause.Error()
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// DefaultNormalizer cleans up raw Cobra stderr output.
type DefaultNormalizer struct{}

// Normalize trims surrounding whitespace and strips the leading "Error: "
// prefix Cobra writes, while keeping multi-line usage hints intact.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	lines[0] = strings.TrimPrefix(strings.TrimSpace(lines[0]), "Error: ")

	return strings.Join(lines, "\n")
}
