// Package exec runs the external packaging tool and captures its exit code.
package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	osexec "os/exec"
	"strings"
	"time"
)

// RunOpts configures a packaging tool execution.
type RunOpts struct {
	Argv []string // tool argv; Argv[0] is the binary
	Dir  string   // working directory, empty means inherit
}

// RunResult holds the outcome of a packaging tool execution.
type RunResult struct {
	Argv      []string
	ExitCode  int
	StartTime time.Time
	EndTime   time.Time
}

// Duration returns the wall-clock duration of the run.
func (r *RunResult) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Command returns the argv joined for display.
func (r *RunResult) Command() string {
	return strings.Join(r.Argv, " ")
}

// Run executes the packaging tool, streaming stdout and stderr to the
// given writers. A non-zero exit from the tool is not an error here: the
// exit code is reported in RunResult and the caller decides how to
// propagate it. An error is returned only when the tool could not be
// started or was cut short by the context.
func Run(ctx context.Context, opts RunOpts, stdout, stderr io.Writer) (*RunResult, error) {
	if len(opts.Argv) == 0 {
		return nil, fmt.Errorf("empty packaging tool command")
	}

	result := &RunResult{
		Argv:      opts.Argv,
		StartTime: time.Now().UTC(),
	}

	cmd := osexec.CommandContext(ctx, opts.Argv[0], opts.Argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	slog.Debug("running packaging tool", "command", result.Command(), "dir", opts.Dir)

	err := cmd.Run()
	result.EndTime = time.Now().UTC()

	if err != nil {
		var ee *osexec.ExitError
		if errors.As(err, &ee) {
			if ctx.Err() != nil {
				return result, fmt.Errorf("packaging tool interrupted: %w", ctx.Err())
			}
			result.ExitCode = ee.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("running %s: %w", opts.Argv[0], err)
	}
	return result, nil
}

// LookPath reports whether the tool's binary can be found on PATH.
func LookPath(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty packaging tool command")
	}
	if _, err := osexec.LookPath(argv[0]); err != nil {
		return fmt.Errorf("packaging tool %q not found on PATH: %w", argv[0], err)
	}
	return nil
}
