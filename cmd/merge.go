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

// ErrMergeFailed is returned when ffmpeg ran but could not merge the inputs
var ErrMergeFailed = errors.New("audio/video merge failed")

var (
	mergeVideoPath  string
	mergeAudioPath  string
	mergeOutputPath string
	mergeFFmpegPath string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Mux a video and an audio file into one output",
	Long: `Combine a video stream and an audio stream into one file.

Runs: <ffmpeg> -y -i <video> -i <audio> -c:v copy -c:a aac <output>
The video is copied as-is and the audio is re-encoded to AAC.
An existing output file is overwritten.

Example:
  projection-video-3d merge --video silent.mp4 --audio clip.aac --output final.mp4`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVar(&mergeVideoPath, "video", "", "Path to the video file (required)")
	mergeCmd.Flags().StringVar(&mergeAudioPath, "audio", "", "Path to the audio file (required)")
	mergeCmd.Flags().StringVar(&mergeOutputPath, "output", "", "Path to write the merged file (required)")
	mergeCmd.Flags().StringVar(&mergeFFmpegPath, "ffmpeg", "", "ffmpeg executable path or command name (default from config)")
	mergeCmd.MarkFlagRequired("video")
	mergeCmd.MarkFlagRequired("audio")
	mergeCmd.MarkFlagRequired("output")
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	return RunMergeWithDependencies(
		cmd.Context(),
		ffmpeg.NewAdapter(),
		resolveFFmpeg(mergeFFmpegPath, cfg),
		mergeVideoPath,
		mergeAudioPath,
		mergeOutputPath,
		DefaultOutput,
	)
}

// RunMergeWithDependencies runs the merge command with injected dependencies (for testing)
func RunMergeWithDependencies(
	ctx context.Context,
	tool media.Tool,
	executable string,
	videoPath string,
	audioPath string,
	outputPath string,
	output OutputWriter,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintf(output, "Merging %s and %s...\n", videoPath, audioPath)

	ok, err := appmedia.NewService(tool).MergeAudioVideo(ctx, executable, videoPath, audioPath, outputPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMergeFailed, err)
	}
	if !ok {
		return ErrMergeFailed
	}

	fmt.Fprintf(output, "Successfully created: %s\n", outputPath)
	return nil
}
