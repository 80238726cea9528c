package ffmpeg

import (
	"context"
	"os/exec"

	"projection-video-3d/domain/media"
	"projection-video-3d/infrastructure/logging"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Adapter implements media.Tool by running an ffmpeg-compatible executable
type Adapter struct {
	runner CommandRunner
	logger zerolog.Logger
}

// AdapterOption is a functional option for configuring Adapter
type AdapterOption func(*Adapter)

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) AdapterOption {
	return func(a *Adapter) {
		a.runner = runner
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger zerolog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// NewAdapter creates a new ffmpeg adapter
func NewAdapter(opts ...AdapterOption) *Adapter {
	a := &Adapter{
		runner: &ExecCommandRunner{},
		logger: logging.Logger("ffmpeg"),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Verify runs `<executable> -version` with output captured.
// Any process that launched counts as present, even if it exited non-zero;
// only a launch failure (or a context that ended first) yields false.
func (a *Adapter) Verify(ctx context.Context, executable string) bool {
	a.logger.Debug().Str("executable", executable).Msg("verifying media tool")

	_, err := a.runner.Output(ctx, executable, VersionArgs()...)
	completion, err := classify(ctx, executable, err)
	if err != nil {
		a.logger.Debug().Err(err).Str("executable", executable).Msg("media tool not available")
		return false
	}
	if !completion.Success() {
		a.logger.Debug().Int("exit_code", completion.ExitCode).Msg("media tool launched but rejected -version")
	}
	return true
}

// ExtractAudio implements media.AudioExtractor
func (a *Adapter) ExtractAudio(ctx context.Context, executable string, req media.ExtractAudioRequest) (bool, error) {
	ok, err := a.run(ctx, executable, "audio extraction", ExtractAudioArgs(req))
	if err != nil {
		return false, errors.Wrap(err, "ffmpeg audio extraction failed")
	}
	return ok, nil
}

// MergeAudioVideo implements media.Merger
func (a *Adapter) MergeAudioVideo(ctx context.Context, executable string, req media.MergeRequest) (bool, error) {
	ok, err := a.run(ctx, executable, "audio/video merge", MergeArgs(req))
	if err != nil {
		return false, errors.Wrap(err, "ffmpeg merge failed")
	}
	return ok, nil
}

func (a *Adapter) run(ctx context.Context, executable, operation string, args []string) (bool, error) {
	a.logger.Debug().
		Str("executable", executable).
		Strs("args", args).
		Msgf("starting %s", operation)

	completion, err := classify(ctx, executable, a.runner.Run(ctx, executable, args...))
	if err != nil {
		return false, err
	}

	if !completion.Success() {
		a.logger.Warn().
			Str("executable", executable).
			Int("exit_code", completion.ExitCode).
			Msgf("%s exited non-zero", operation)
	}
	return completion.Success(), nil
}

// classify maps the error from a process run to the outcome variants:
// a Completion for any process that ran to exit, a *media.LaunchError when it
// never started, and the context error when the context ended before or
// during the run. A process killed by exec.CommandContext surfaces as an
// *exec.ExitError, so the context is checked first.
func classify(ctx context.Context, executable string, err error) (media.Completion, error) {
	if err == nil {
		return media.Completion{ExitCode: 0}, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return media.Completion{}, errors.WithStack(ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return media.Completion{ExitCode: exitErr.ExitCode()}, nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return media.Completion{}, errors.WithStack(err)
	}

	return media.Completion{}, &media.LaunchError{Executable: executable, Err: err}
}

// Ensure Adapter implements media.Tool
var _ media.Tool = (*Adapter)(nil)
