package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	appmedia "projection-video-3d/application/media"
	"projection-video-3d/domain/media"
	"projection-video-3d/infrastructure/ffmpeg"

	"github.com/spf13/cobra"
)

// ErrFFmpegNotFound is returned when the ffmpeg executable cannot be launched
var ErrFFmpegNotFound = errors.New("ffmpeg not found")

var verifyFFmpegPath string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the ffmpeg executable can be launched",
	Long: `Runs "<ffmpeg> -version" with its output captured.

ffmpeg counts as present whenever it launches, whatever its exit code.
The command exits with status 1 only when the executable cannot be started.

Example:
  projection-video-3d verify
  projection-video-3d verify --ffmpeg /opt/ffmpeg/bin/ffmpeg`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyFFmpegPath, "ffmpeg", "", "ffmpeg executable path or command name (default from config)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	return RunVerifyWithDependencies(
		cmd.Context(),
		ffmpeg.NewAdapter(),
		resolveFFmpeg(verifyFFmpegPath, cfg),
		verifyTimeout(cfg),
		DefaultOutput,
	)
}

// RunVerifyWithDependencies runs the verify command with injected dependencies (for testing)
func RunVerifyWithDependencies(
	ctx context.Context,
	tool media.Tool,
	executable string,
	timeout time.Duration,
	output OutputWriter,
) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if !appmedia.NewService(tool).Verify(ctx, executable) {
		fmt.Fprintf(output, "ffmpeg not found: %s\n", executable)
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, executable)
	}

	fmt.Fprintf(output, "ffmpeg found: %s\n", executable)
	return nil
}
