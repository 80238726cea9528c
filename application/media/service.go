package media

import (
	"context"

	"projection-video-3d/domain/media"
	"projection-video-3d/infrastructure/logging"

	"github.com/rs/zerolog"
)

// Service exposes the three media tool operations with plain string arguments,
// the shape a host program binds against
type Service struct {
	tool   media.Tool
	logger zerolog.Logger
}

// NewService creates a new Service
func NewService(tool media.Tool) *Service {
	return &Service{
		tool:   tool,
		logger: logging.Logger("media"),
	}
}

// Verify reports whether executable can be launched.
// Unlike the other operations it never returns an error: a launch failure is the false case.
func (s *Service) Verify(ctx context.Context, executable string) bool {
	ok := s.tool.Verify(ctx, executable)
	s.logger.Info().Str("executable", executable).Bool("present", ok).Msg("verify")
	return ok
}

// ExtractAudio copies the audio stream of inputPath to outputPath.
// false means the tool ran and failed; an error means it could not run.
func (s *Service) ExtractAudio(ctx context.Context, executable, inputPath, outputPath string) (bool, error) {
	ok, err := s.tool.ExtractAudio(ctx, executable, media.ExtractAudioRequest{
		InputPath:  inputPath,
		OutputPath: outputPath,
	})
	s.logResult("extract_audio", outputPath, ok, err)
	return ok, err
}

// MergeAudioVideo muxes videoPath and audioPath into outputPath, re-encoding audio to AAC
func (s *Service) MergeAudioVideo(ctx context.Context, executable, videoPath, audioPath, outputPath string) (bool, error) {
	ok, err := s.tool.MergeAudioVideo(ctx, executable, media.MergeRequest{
		VideoPath:  videoPath,
		AudioPath:  audioPath,
		OutputPath: outputPath,
	})
	s.logResult("merge_audio_video", outputPath, ok, err)
	return ok, err
}

func (s *Service) logResult(operation, outputPath string, ok bool, err error) {
	event := s.logger.Info()
	if err != nil {
		event = s.logger.Error().Err(err).Bool("launch_failure", media.IsLaunchFailure(err))
	}
	event.Str("output", outputPath).Bool("success", ok).Msg(operation)
}
