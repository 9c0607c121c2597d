package compiler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/desertwitch/protogen/internal/schema"
	"golang.org/x/sys/unix"
)

// streamGrace is how long the output pipe is kept open after the run context
// ends, so that lines already written by a dying compiler still arrive.
const streamGrace = 500 * time.Millisecond

// Outcome describes a finished compiler process.
type Outcome struct {
	ExitCode int
	Lines    int
	Duration time.Duration
}

// Run starts the compiler for the given [schema.Invocation] and blocks until
// it has exited. The compiler's standard output and standard error share one
// pipe and every line is handed to onLine as it arrives.
//
// The returned error wraps [ErrCompilerNotFound], [ErrCompilerFailed],
// [ErrCompilerTimeout] or the context's error on cancellation. An [Outcome]
// is returned in all cases, with an exit code of -1 when none is known.
func (c *Handler) Run(ctx context.Context, inv schema.Invocation, onLine func(line string)) (*Outcome, error) {
	outcome := &Outcome{ExitCode: -1}

	runCtx := ctx
	if c.settings.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.settings.Timeout)
		defer cancel()
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return outcome, fmt.Errorf("(compiler) failed to create pipe: %w", err)
	}
	defer pr.Close()

	cmd := c.execHandler.CommandContext(runCtx, inv.Path, inv.Args...)
	cmd.Stdout = pw
	cmd.Stderr = pw

	// Descendants inherit the pipe, so the whole process group has to go.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}

		return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	}
	cmd.WaitDelay = streamGrace

	start := time.Now()

	if err := cmd.Start(); err != nil {
		pw.Close()

		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return outcome, fmt.Errorf("(compiler) %w: %w", ErrCompilerNotFound, err)
		}

		return outcome, fmt.Errorf("(compiler) failed to start: %w", err)
	}

	// The child holds its own copy, ours must go for EOF to arrive.
	pw.Close()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-done:
		case <-runCtx.Done():
			// A descendant that left the process group may still hold the
			// pipe, stop reading from it regardless.
			select {
			case <-done:
			case <-time.After(streamGrace):
				pr.Close()
			}
		}
	}()

	outcome.Lines = streamLines(pr, onLine)

	waitErr := cmd.Wait()
	outcome.Duration = time.Since(start)

	if cmd.ProcessState != nil {
		outcome.ExitCode = cmd.ProcessState.ExitCode()
	}

	if waitErr == nil {
		return outcome, nil
	}

	if ctx.Err() != nil {
		return outcome, fmt.Errorf("(compiler) %w", ctx.Err())
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return outcome, fmt.Errorf("(compiler) %w: after %s", ErrCompilerTimeout, c.settings.Timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return outcome, fmt.Errorf("(compiler) %w: exit status %d", ErrCompilerFailed, exitErr.ExitCode())
	}

	return outcome, fmt.Errorf("(compiler) failed waiting: %w", waitErr)
}

// streamLines reads r until EOF and calls onLine for every line, without the
// line terminator. A final unterminated line is delivered as well.
func streamLines(r io.Reader, onLine func(line string)) int {
	reader := bufio.NewReader(r)
	lines := 0

	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			lines++
			if onLine != nil {
				onLine(strings.TrimRight(line, "\r\n"))
			}
		}
		if err != nil {
			return lines
		}
	}
}
