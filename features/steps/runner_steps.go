//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ffmpegCall records one invocation of the fake ffmpeg
type ffmpegCall struct {
	name     string
	args     []string
	captured bool
}

// fakeFFmpeg implements ffmpeg.CommandRunner. Outcomes are keyed by operation
// so one scenario can script verify, extract and merge independently.
type fakeFFmpeg struct {
	calls    []ffmpegCall
	outcomes map[string]error
	// writeOutputs creates the last argument as a file on success, like ffmpeg would
	writeOutputs bool
}

func newFakeFFmpeg() *fakeFFmpeg {
	return &fakeFFmpeg{outcomes: make(map[string]error)}
}

func (f *fakeFFmpeg) Run(ctx context.Context, name string, args ...string) error {
	f.calls = append(f.calls, ffmpegCall{name: name, args: args})
	return f.result(args)
}

func (f *fakeFFmpeg) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, ffmpegCall{name: name, args: args, captured: true})
	if err := f.result(args); err != nil {
		return nil, err
	}
	return []byte("ffmpeg version fake"), nil
}

func (f *fakeFFmpeg) result(args []string) error {
	if err, ok := f.outcomes[operationOf(args)]; ok && err != nil {
		return err
	}
	if err, ok := f.outcomes["all"]; ok && err != nil {
		return err
	}
	if f.writeOutputs && len(args) > 0 && operationOf(args) != "verify" {
		return os.WriteFile(args[len(args)-1], []byte(operationOf(args)), 0644)
	}
	return nil
}

func (f *fakeFFmpeg) lastCall() (ffmpegCall, error) {
	if len(f.calls) == 0 {
		return ffmpegCall{}, fmt.Errorf("ffmpeg was not called")
	}
	return f.calls[len(f.calls)-1], nil
}

func operationOf(args []string) string {
	joined := strings.Join(args, " ")
	switch {
	case joined == "-version":
		return "verify"
	case strings.Contains(joined, "-vn"):
		return "extract"
	case strings.Contains(joined, "-c:a"):
		return "merge"
	}
	return "unknown"
}

// exitStatus produces a real *exec.ExitError carrying code
func exitStatus(code int) error {
	err := exec.Command("sh", "-c", fmt.Sprintf("exit %d", code)).Run()
	if err == nil {
		return fmt.Errorf("expected exit status %d", code)
	}
	return err
}

// launchFailure mimics os/exec failing to start executable
func launchFailure(executable string) error {
	return &exec.Error{Name: executable, Err: exec.ErrNotFound}
}
