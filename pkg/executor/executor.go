// Package executor runs external commands for the configuration pass.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
)

// CommandRunner is an interface for executing commands, allowing for testing.
type CommandRunner interface {
	// Run executes a command and blocks until it exits.
	Run(ctx context.Context, name string, args ...string) error
	// RunAs executes a command as the given non-root user.
	RunAs(ctx context.Context, user, name string, args ...string) error
	LookPath(file string) (string, error)
}

// ExitError is returned when a command ran but exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// IsExitError reports whether err carries a non-zero exit status, as opposed
// to a failure to start the process at all.
func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// SuArgs builds the argument list for running a command through su.
func SuArgs(user, name string, args ...string) []string {
	return []string{user, "-c", shellquote.Join(append([]string{name}, args...)...)}
}

// RealRunner is the default runner that spawns processes on the host.
type RealRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	logger zerolog.Logger
}

// NewRealRunner creates a runner that streams child output to the terminal.
func NewRealRunner(logger zerolog.Logger) *RealRunner {
	return &RealRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: logger,
	}
}

// Run executes a command and returns an *ExitError if it exits non-zero.
func (r *RealRunner) Run(ctx context.Context, name string, args ...string) error {
	r.logger.Debug().
		Str("command", name).
		Strs("args", args).
		Msg("Executing command")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{
				Command:  shellquote.Join(append([]string{name}, args...)...),
				ExitCode: exitErr.ExitCode(),
				Err:      err,
			}
		}
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	return nil
}

// RunAs executes a command as user via su.
func (r *RealRunner) RunAs(ctx context.Context, user, name string, args ...string) error {
	return r.Run(ctx, "su", SuArgs(user, name, args...)...)
}

// LookPath finds the path to an executable.
func (r *RealRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
