package cmd

import (
	"context"
	"fmt"

	appprojection "projection-video-3d/application/projection"
	"projection-video-3d/domain/media"
	"projection-video-3d/domain/projection"
	"projection-video-3d/infrastructure/ffmpeg"
	"projection-video-3d/infrastructure/filesystem"
	infraprojection "projection-video-3d/infrastructure/projection"

	"github.com/spf13/cobra"
)

var (
	projectInputPath  string
	projectOutputPath string
	projectFFmpegPath string
	projectDirection  string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Render a four-panel projection video",
	Long: `Render a four-panel projection video for a pyramid hologram display.

Each frame is placed four times around a black square canvas, mirrored and
rotated so every panel faces the centre. The source audio is carried over
when ffmpeg can extract it; otherwise the output is silent.

--direction up places the upright frame on top; down flips the layout.

Requires a build with -tags=projection (OpenCV/GoCV).

Example:
  projection-video-3d project --input clip.mp4 --output hologram.mp4
  projection-video-3d project --input clip.mp4 --output out/hologram.mp4 --direction down`,
	RunE: runProject,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.Flags().StringVarP(&projectInputPath, "input", "i", "", "Path to source video file (required)")
	projectCmd.Flags().StringVarP(&projectOutputPath, "output", "o", "output.mp4", "Path to write the projection video")
	projectCmd.Flags().StringVarP(&projectFFmpegPath, "ffmpeg", "f", "", "ffmpeg executable path or command name (default from config)")
	projectCmd.Flags().StringVarP(&projectDirection, "direction", "d", "", "Projection direction: up or down (default from config)")
	projectCmd.MarkFlagRequired("input")
}

func runProject(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	rawDirection := projectDirection
	if rawDirection == "" {
		rawDirection = cfg.Projection.Direction
	}
	direction, err := projection.ParseDirection(rawDirection)
	if err != nil {
		return err
	}

	return RunProjectWithDependencies(
		cmd.Context(),
		ffmpeg.NewAdapter(),
		infraprojection.NewRenderer(infraprojection.WithCodec(cfg.Projection.Codec)),
		filesystem.NewFiles(),
		filesystem.NewWorkspaceFactory(cfg.Projection.TempDirectory),
		appprojection.Input{
			InputPath:  projectInputPath,
			OutputPath: projectOutputPath,
			FFmpegPath: resolveFFmpeg(projectFFmpegPath, cfg),
			Direction:  direction,
		},
		DefaultOutput,
		appprojection.WithVerifyTimeout(verifyTimeout(cfg)),
	)
}

// RunProjectWithDependencies runs the project command with injected dependencies (for testing)
func RunProjectWithDependencies(
	ctx context.Context,
	tool media.Tool,
	renderer projection.Renderer,
	files appprojection.FileSystem,
	workspaces appprojection.WorkspaceFactory,
	input appprojection.Input,
	output OutputWriter,
	opts ...appprojection.ServiceOption,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	service := appprojection.NewService(tool, renderer, files, workspaces, output, opts...)

	result, err := service.Create(ctx, input)
	if err != nil {
		fmt.Fprintf(output, "Failed: %v\n", err)
		return err
	}

	audio := "with audio"
	if !result.HasAudio {
		audio = "without audio"
	}
	fmt.Fprintf(output, "Success: %s (%d frames, %s)\n", result.OutputPath, result.Frames, audio)
	fmt.Fprintf(output, "Elapsed: %.2fs\n", result.Elapsed.Seconds())
	return nil
}
