package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"unicode/utf8"

	"pharaoh/internal/domain"
)

// Executor runs a single test case and returns what it printed and how it exited
type Executor interface {
	Execute(ctx context.Context, tc domain.TestCase) (domain.ProcessOutput, error)
}

var _ Executor = (*ShellExecutor)(nil)

// ShellExecutor runs test commands through "<shell> -c <cmd>"
type ShellExecutor struct {
	shell string
	env   []string
	dir   string
}

// NewShellExecutor creates a new ShellExecutor. A nil env makes children inherit
// the current environment; an empty dir runs them in the current directory.
func NewShellExecutor(shell string, env []string, dir string) *ShellExecutor {
	if shell == "" {
		shell = "/bin/sh"
	}
	return &ShellExecutor{shell: shell, env: env, dir: dir}
}

// Execute spawns the shell, feeds it the test case's stdin and collects stdout and
// stderr until it terminates. Stdin is written from its own goroutine while both
// output pipes are drained, so a child producing more output than a pipe buffer
// holds cannot deadlock against the stdin write.
func (e *ShellExecutor) Execute(ctx context.Context, tc domain.TestCase) (domain.ProcessOutput, error) {
	cmd := exec.CommandContext(ctx, e.shell, "-c", tc.Cmd)
	cmd.Env = e.env
	cmd.Dir = e.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return domain.ProcessOutput{}, domain.NewError(domain.KindExecution, "open stdin", err)
	}

	if err := cmd.Start(); err != nil {
		return domain.ProcessOutput{}, domain.NewError(domain.KindExecution, "spawn "+e.shell, err)
	}

	written := make(chan error, 1)
	go func() {
		_, err := io.WriteString(stdin, tc.Stdin)
		if cerr := stdin.Close(); err == nil {
			err = cerr
		}
		written <- err
	}()

	waitErr := cmd.Wait()
	writeErr := <-written

	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.ProcessOutput{}, domain.NewError(domain.KindExecution, "wait", ctxErr)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return domain.ProcessOutput{}, domain.NewError(domain.KindExecution, "wait", waitErr)
		}
	}
	if writeErr != nil && !isClosedInput(writeErr) {
		return domain.ProcessOutput{}, domain.NewError(domain.KindExecution, "write stdin", writeErr)
	}

	out := domain.ProcessOutput{Status: exitStatus(cmd.ProcessState)}
	if out.Stdout, err = decode("stdout", stdout.Bytes()); err != nil {
		return domain.ProcessOutput{}, err
	}
	if out.Stderr, err = decode("stderr", stderr.Bytes()); err != nil {
		return domain.ProcessOutput{}, err
	}
	return out, nil
}

// isClosedInput reports whether a stdin write failed only because the child
// stopped reading (exited or closed its input) before consuming everything.
// Such a write is deliberately not an execution error: whether it fails at all
// depends on the pipe buffer size, and the child's output and status already
// describe what happened.
func isClosedInput(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed)
}

// exitStatus maps a terminated process to a status code, SignalStatus when it
// has no exit code
func exitStatus(state *os.ProcessState) int {
	if state == nil {
		return domain.SignalStatus
	}
	if code := state.ExitCode(); code >= 0 {
		return code
	}
	return domain.SignalStatus
}

func decode(stream string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", domain.NewError(domain.KindExecution, "decode "+stream, fmt.Errorf("output is not valid UTF-8"))
	}
	return string(data), nil
}
