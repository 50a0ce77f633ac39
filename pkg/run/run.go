// Package run wraps external process invocation behind a small interface
// so exec-heavy components can be tested without a live system.
package run

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"github.com/arthur-debert/envup/pkg/logging"
)

// Runner executes external commands.
type Runner interface {
	// Run executes the command, streaming output to the parent's stdio.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes the command and captures its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath reports where a binary resolves on PATH, if anywhere.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	logger := logging.GetLogger("run")
	logger.Debug().Str("command", name).Strs("args", args).Msg("Executing command")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	logger := logging.GetLogger("run")
	logger.Debug().Str("command", name).Strs("args", args).Msg("Capturing command output")

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	return stdout.Bytes(), err
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
