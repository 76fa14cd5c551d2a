// Package cmdexec runs external commands and captures their output.
package cmdexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/simplesurance/automerger/internal/logfields"
)

const loggerName = "cmdexec"

// ExecutionError is returned when a command exited with a non-zero code.
// It carries the command that was run and its captured standard error
// output.
type ExecutionError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("running command failed: %s, error: %s, stderr: %s",
		e.Command, e.Err, strings.TrimSpace(e.Stderr))
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

type Runner struct {
	logger *zap.Logger
}

func New() *Runner {
	return &Runner{logger: zap.L().Named(loggerName)}
}

// Run executes a command and returns its standard output with trailing
// whitespace removed.
// If dryRun is true the command is only logged, nothing is executed and an
// empty output is returned.
// If the command exits non-zero an *ExecutionError is returned.
// Commands are not retried and run without a timeout, cancel ctx to
// terminate a hanging command.
func (r *Runner) Run(ctx context.Context, dryRun bool, name string, args ...string) (string, error) {
	command := strings.Join(append([]string{name}, args...), " ")

	if dryRun {
		r.logger.Info(
			"dry run, skipping command execution",
			logfields.Command(command),
			logfields.Event("command_execution_skipped"),
		)

		return "", nil
	}

	r.logger.Debug(
		"running command",
		logfields.Command(command),
		logfields.Event("command_execution_started"),
	)

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &ExecutionError{
			Command: command,
			Stderr:  stderr.String(),
			Err:     err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}
