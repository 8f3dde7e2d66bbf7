// Package runner executes the external tool invocations a capture
// session wraps. Steps run sequentially with their stdio wired to the
// (possibly captured) output channels; the first failing step stops
// the run so its error can be recorded in the capture log.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

// Step is one external tool invocation.
type Step struct {
	// Name labels the step in diagnostics. Empty means Argv[0].
	Name string
	Argv []string
}

// DisplayName returns the step label.
func (s Step) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if len(s.Argv) > 0 {
		return s.Argv[0]
	}
	return "(empty)"
}

// ExitError reports a step that exited with a non-zero status. The
// step's own stderr output already explains the failure, so callers
// propagate the code without extra messaging.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Run executes steps in order, stopping at the first failure. The
// returned error wraps *ExitError for non-zero exits, so callers can
// recover the code with errors.As.
func Run(ctx context.Context, steps []Step, stdin io.Reader, stdout, stderr io.Writer, logger zerolog.Logger) error {
	for _, step := range steps {
		logger.Debug().Str("step", step.DisplayName()).Msg("running step")
		if err := runStep(ctx, step, stdin, stdout, stderr); err != nil {
			return fmt.Errorf("%s: %w", step.DisplayName(), err)
		}
	}
	return nil
}

// runStep executes a single external command with streaming I/O.
func runStep(ctx context.Context, step Step, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(step.Argv) == 0 {
		return errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, step.Argv[0], step.Argv[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	if stderr != nil {
		cmd.Stderr = stderr
	} else {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return err
	}
	return nil
}
