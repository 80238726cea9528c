package ffmpeg

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"
)

// DefaultWaitDelay bounds how long Wait keeps copying output after the
// process is killed, so a grandchild holding the pipes cannot stall it
const DefaultWaitDelay = 2 * time.Second

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	// Run executes a command with the runner's standard streams attached
	Run(ctx context.Context, name string, args ...string) error
	// Output executes a command and returns its captured stdout
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec.
// Arguments are always passed as a list; no shell is involved.
// Nil streams inherit the caller's stdin, stdout and stderr.
type ExecCommandRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// WaitDelay overrides DefaultWaitDelay when positive
	WaitDelay time.Duration
}

func (r *ExecCommandRunner) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = DefaultWaitDelay
	if r.WaitDelay > 0 {
		cmd.WaitDelay = r.WaitDelay
	}
	return cmd
}

// Run executes a command and returns any error
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := r.command(ctx, name, args...)
	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// Output executes a command and returns its output.
// Stderr is captured into the *exec.ExitError rather than streamed.
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := r.command(ctx, name, args...)
	return cmd.Output()
}

// Ensure ExecCommandRunner implements CommandRunner
var _ CommandRunner = (*ExecCommandRunner)(nil)
