// Package shell runs external commands for clever-review.
//
// Commands run one at a time with no timeout and no retry. Output either
// streams to the configured writers (Run) or is captured from stdout
// (Output). Both return *ExitError when the child exits non-zero.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/kjourdan1/clever-review/internal/output"
)

// Command describes a single child process invocation.
type Command struct {
	Name string
	Args []string
	// Env is appended to the parent environment.
	Env []string
}

// String renders the command the way CI logs show it. Env is never printed.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return "[command]" + c.Name
	}
	return "[command]" + c.Name + " " + strings.Join(c.Args, " ")
}

// ExitError reports a child process that exited with a non-zero code.
type ExitError struct {
	Command Command
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("The process '%s' failed with exit code %d", e.Command.Name, e.Code)
}

// Executor abstracts command execution for testability.
type Executor interface {
	// Output runs cmd and returns its stdout. Stderr goes to the executor's
	// error writer.
	Output(ctx context.Context, cmd Command) (string, error)
	// Run runs cmd with stdout and stderr streamed to the executor's writers.
	Run(ctx context.Context, cmd Command) error
}

// OSExecutor runs commands via os/exec.
type OSExecutor struct {
	Stdout io.Writer
	Stderr io.Writer
	Dir    string
}

// NewOSExecutor returns an executor streaming to the process stdout/stderr.
func NewOSExecutor() *OSExecutor {
	return &OSExecutor{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Output implements Executor.
func (e *OSExecutor) Output(ctx context.Context, cmd Command) (string, error) {
	var stdout bytes.Buffer
	c := e.command(ctx, cmd)
	c.Stdout = &stdout
	if err := e.run(c, cmd); err != nil {
		return stdout.String(), err
	}
	return stdout.String(), nil
}

// Run implements Executor.
func (e *OSExecutor) Run(ctx context.Context, cmd Command) error {
	c := e.command(ctx, cmd)
	c.Stdout = e.stdout()
	return e.run(c, cmd)
}

func (e *OSExecutor) command(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = e.Dir
	c.Stderr = e.stderr()
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	return c
}

func (e *OSExecutor) run(c *exec.Cmd, cmd Command) error {
	output.Debug(cmd.String())
	err := c.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: cmd, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("unable to run %s: %w", cmd.Name, err)
}

func (e *OSExecutor) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}
	return e.Stdout
}

func (e *OSExecutor) stderr() io.Writer {
	if e.Stderr == nil {
		return os.Stderr
	}
	return e.Stderr
}
