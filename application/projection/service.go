package projection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"projection-video-3d/domain/media"
	"projection-video-3d/domain/projection"
	"projection-video-3d/infrastructure/logging"

	"github.com/rs/zerolog"
)

const (
	audioFileName       = "audio.aac"
	silentVideoFileName = "video_no_audio.mp4"
)

// ErrToolUnavailable is returned when the ffmpeg executable cannot be launched
var ErrToolUnavailable = errors.New("ffmpeg verification failed")

// FileSystem abstracts the file operations the workflow needs
type FileSystem interface {
	Exists(path string) bool
	Remove(path string) error
	EnsureParentDir(path string) error
	Move(src, dst string) error
}

// Workspace is a private scratch directory for one projection job
type Workspace interface {
	ID() string
	Path(name string) string
	Remove() error
}

// WorkspaceFactory creates job workspaces
type WorkspaceFactory interface {
	Create() (Workspace, error)
}

// Service orchestrates the projection workflow: audio extraction, rendering and remuxing
type Service struct {
	tool       media.Tool
	renderer   projection.Renderer
	files      FileSystem
	workspaces WorkspaceFactory
	output     io.Writer
	logger     zerolog.Logger
	now        func() time.Time

	verifyTimeout time.Duration
}

// ServiceOption is a functional option for configuring Service
type ServiceOption func(*Service)

// WithVerifyTimeout bounds the ffmpeg verification step; zero means no limit
func WithVerifyTimeout(timeout time.Duration) ServiceOption {
	return func(s *Service) {
		s.verifyTimeout = timeout
	}
}

// NewService creates a new projection service
func NewService(
	tool media.Tool,
	renderer projection.Renderer,
	files FileSystem,
	workspaces WorkspaceFactory,
	output io.Writer,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		tool:       tool,
		renderer:   renderer,
		files:      files,
		workspaces: workspaces,
		output:     output,
		logger:     logging.Logger("projection"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Input contains all input parameters for a projection job
type Input struct {
	InputPath  string               // Source video path
	OutputPath string               // Destination video path
	FFmpegPath string               // ffmpeg executable path or command name
	Direction  projection.Direction // Defaults to Up when zero
}

// Result contains the results of a successful projection job
type Result struct {
	JobID      string
	OutputPath string
	HasAudio   bool
	Frames     int
	Elapsed    time.Duration
}

// ValidationError contains details about a validation failure with suggestions
type ValidationError struct {
	Message    string
	Suggestion string
}

func (e *ValidationError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s\n\nTo fix this, run:\n  %s", e.Message, e.Suggestion)
	}
	return e.Message
}

// Create renders the four-panel projection of input.InputPath and writes it,
// with the source audio when it can be carried over, to input.OutputPath
func (s *Service) Create(ctx context.Context, input Input) (*Result, error) {
	startTime := s.now()

	if err := s.validate(&input); err != nil {
		return nil, err
	}

	fmt.Fprintf(s.output, "[1/4] Verifying ffmpeg...\n")
	if !s.verify(ctx, input.FFmpegPath) {
		return nil, fmt.Errorf("%w: %s", ErrToolUnavailable, input.FFmpegPath)
	}
	fmt.Fprintf(s.output, "      Found: %s\n\n", input.FFmpegPath)

	ws, err := s.workspaces.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	defer func() {
		if err := ws.Remove(); err != nil {
			s.logger.Warn().Err(err).Str("job", ws.ID()).Msg("workspace cleanup failed")
		}
	}()
	s.logger.Debug().Str("job", ws.ID()).Str("input", input.InputPath).Msg("workspace created")

	audioPath := ws.Path(audioFileName)
	silentPath := ws.Path(silentVideoFileName)

	fmt.Fprintf(s.output, "[2/4] Extracting audio...\n")
	hasAudio := s.extractAudio(ctx, input, audioPath)

	fmt.Fprintf(s.output, "[3/4] Rendering projection (%s)...\n", input.Direction)
	rendered, err := s.renderer.Render(ctx, input.InputPath, silentPath, input.Direction)
	if err != nil {
		return nil, fmt.Errorf("failed to render projection: %w", err)
	}
	fmt.Fprintf(s.output, "      Rendered %d frames at %dx%d\n\n", rendered.Frames, rendered.Canvas.X, rendered.Canvas.Y)

	if err := s.files.EnsureParentDir(input.OutputPath); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Fprintf(s.output, "[4/4] Writing output...\n")
	merged := false
	if hasAudio {
		merged = s.merge(ctx, input, silentPath, audioPath)
	}
	if !merged {
		if err := s.files.Move(silentPath, input.OutputPath); err != nil {
			return nil, fmt.Errorf("failed to move video to output: %w", err)
		}
	}
	fmt.Fprintf(s.output, "      Created: %s\n\n", input.OutputPath)

	return &Result{
		JobID:      ws.ID(),
		OutputPath: input.OutputPath,
		HasAudio:   merged,
		Frames:     rendered.Frames,
		Elapsed:    s.now().Sub(startTime),
	}, nil
}

func (s *Service) verify(ctx context.Context, executable string) bool {
	if s.verifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.verifyTimeout)
		defer cancel()
	}
	return s.tool.Verify(ctx, executable)
}

func (s *Service) validate(input *Input) error {
	if input.InputPath == "" {
		return &ValidationError{Message: "input video is required", Suggestion: "projection-video-3d project --input <video>"}
	}
	if input.OutputPath == "" {
		return &ValidationError{Message: "output path is required", Suggestion: "projection-video-3d project --input <video> --output <path>"}
	}
	if input.InputPath == input.OutputPath {
		return &ValidationError{Message: fmt.Sprintf("output path must differ from input: %s", input.InputPath)}
	}
	if !s.files.Exists(input.InputPath) {
		return &ValidationError{Message: fmt.Sprintf("input video not found: %s", input.InputPath)}
	}
	if input.FFmpegPath == "" {
		input.FFmpegPath = "ffmpeg"
	}
	if input.Direction == 0 {
		input.Direction = projection.Up
	}
	return nil
}

// extractAudio reports whether an audio track is available at audioPath.
// Failures are not fatal: the job continues without audio.
func (s *Service) extractAudio(ctx context.Context, input Input, audioPath string) bool {
	ok, err := s.tool.ExtractAudio(ctx, input.FFmpegPath, media.ExtractAudioRequest{
		InputPath:  input.InputPath,
		OutputPath: audioPath,
	})
	if err == nil && ok {
		fmt.Fprintf(s.output, "      Created: %s\n\n", audioPath)
		return true
	}

	if err != nil {
		fmt.Fprintf(s.output, "      Audio extraction error: %v\n", err)
	} else {
		fmt.Fprintf(s.output, "      No audio extracted\n")
	}
	if rmErr := s.files.Remove(audioPath); rmErr != nil {
		s.logger.Warn().Err(rmErr).Str("path", audioPath).Msg("failed to remove partial audio")
	}
	fmt.Fprintf(s.output, "      Continuing without audio\n\n")
	return false
}

// merge reports whether the output was written with audio
func (s *Service) merge(ctx context.Context, input Input, silentPath, audioPath string) bool {
	ok, err := s.tool.MergeAudioVideo(ctx, input.FFmpegPath, media.MergeRequest{
		VideoPath:  silentPath,
		AudioPath:  audioPath,
		OutputPath: input.OutputPath,
	})
	switch {
	case err != nil:
		fmt.Fprintf(s.output, "      Merge error: %v\n", err)
	case !ok:
		fmt.Fprintf(s.output, "      Merge failed\n")
	default:
		return true
	}
	fmt.Fprintf(s.output, "      Keeping video without audio\n")
	return false
}
