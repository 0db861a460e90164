// Package hooks invokes the external change hook.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// DefaultTimeout bounds a hook run when the caller sets no deadline.
const DefaultTimeout = 30 * time.Second

// Options configures a hook invocation.
type Options struct {
	Command  string
	Event    string
	TaskID   string
	DataFile string
	WorkDir  string
	Timeout  time.Duration
	Stdout   io.Writer
	Stderr   io.Writer
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// Invoke runs the hook command as `<command> <event> <task-id> <data-file>`.
// TASKMATRIX_EVENT, TASKMATRIX_TASK_ID, and TASKMATRIX_FILE carry the same
// values in the environment. An empty command does nothing.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" {
		return Result{}, nil
	}
	if opts.Event == "" {
		return Result{}, fmt.Errorf("hook event is empty")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, opts.Command, opts.Event, opts.TaskID, opts.DataFile)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Env = append(os.Environ(),
		"TASKMATRIX_EVENT="+opts.Event,
		"TASKMATRIX_TASK_ID="+opts.TaskID,
		"TASKMATRIX_FILE="+opts.DataFile,
	)
	cmd.Stdout = writerOr(opts.Stdout, os.Stdout)
	cmd.Stderr = writerOr(opts.Stderr, os.Stderr)

	err := cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
