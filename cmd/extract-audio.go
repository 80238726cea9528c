package cmd

import (
	"context"
	"errors"
	"fmt"

	appmedia "projection-video-3d/application/media"
	"projection-video-3d/domain/media"
	"projection-video-3d/infrastructure/ffmpeg"

	"github.com/spf13/cobra"
)

// ErrExtractFailed is returned when ffmpeg ran but could not extract the audio
var ErrExtractFailed = errors.New("audio extraction failed")

var (
	extractInputPath  string
	extractOutputPath string
	extractFFmpegPath string
)

var extractAudioCmd = &cobra.Command{
	Use:   "extract-audio",
	Short: "Copy the audio stream of a video into its own file",
	Long: `Extract the audio stream of a video without re-encoding it.

Runs: <ffmpeg> -y -i <input> -vn -acodec copy <output>
The output container must accept the source audio codec as-is.
An existing output file is overwritten.

Example:
  projection-video-3d extract-audio --input clip.mp4 --output clip.aac`,
	RunE: runExtractAudio,
}

func init() {
	rootCmd.AddCommand(extractAudioCmd)
	extractAudioCmd.Flags().StringVar(&extractInputPath, "input", "", "Path to source video file (required)")
	extractAudioCmd.Flags().StringVar(&extractOutputPath, "output", "", "Path to write the audio file (required)")
	extractAudioCmd.Flags().StringVar(&extractFFmpegPath, "ffmpeg", "", "ffmpeg executable path or command name (default from config)")
	extractAudioCmd.MarkFlagRequired("input")
	extractAudioCmd.MarkFlagRequired("output")
}

func runExtractAudio(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	return RunExtractAudioWithDependencies(
		cmd.Context(),
		ffmpeg.NewAdapter(),
		resolveFFmpeg(extractFFmpegPath, cfg),
		extractInputPath,
		extractOutputPath,
		DefaultOutput,
	)
}

// RunExtractAudioWithDependencies runs the extract-audio command with injected dependencies (for testing)
func RunExtractAudioWithDependencies(
	ctx context.Context,
	tool media.Tool,
	executable string,
	inputPath string,
	outputPath string,
	output OutputWriter,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintf(output, "Extracting audio from %s...\n", inputPath)

	ok, err := appmedia.NewService(tool).ExtractAudio(ctx, executable, inputPath, outputPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}
	if !ok {
		return ErrExtractFailed
	}

	fmt.Fprintf(output, "Successfully created: %s\n", outputPath)
	return nil
}
