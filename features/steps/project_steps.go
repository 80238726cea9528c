//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	appprojection "projection-video-3d/application/projection"
	"projection-video-3d/cmd"
	"projection-video-3d/domain/projection"
	"projection-video-3d/infrastructure/ffmpeg"
	"projection-video-3d/infrastructure/filesystem"

	"github.com/cucumber/godog"
)

// fakeRenderer writes a placeholder file instead of decoding video
type fakeRenderer struct {
	unreadable bool
	direction  projection.Direction
	calls      int
}

func (r *fakeRenderer) Render(ctx context.Context, inputPath, outputPath string, dir projection.Direction) (projection.RenderResult, error) {
	r.calls++
	r.direction = dir
	if r.unreadable {
		return projection.RenderResult{}, fmt.Errorf("%w: %s", projection.ErrInputUnreadable, inputPath)
	}
	layout, err := projection.NewLayout(640, 360, dir)
	if err != nil {
		return projection.RenderResult{}, err
	}
	if err := os.WriteFile(outputPath, []byte("silent projection"), 0644); err != nil {
		return projection.RenderResult{}, err
	}
	size := layout.CanvasSize()
	return projection.RenderResult{Frames: 48, FPS: 24, Canvas: image.Pt(size.X, size.Y)}, nil
}

// projectContext holds test state for project scenarios
type projectContext struct {
	tempDir  string
	tempRoot string
	runner   *fakeFFmpeg
	renderer *fakeRenderer
	output   *bytes.Buffer
	err      error
}

// SharedProjectContext is reset before each scenario via Before hook
var SharedProjectContext *projectContext

func getProjectContext() *projectContext {
	return SharedProjectContext
}

func InitializeProjectScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "project-test-*")
		if err != nil {
			return c, err
		}
		runner := newFakeFFmpeg()
		runner.writeOutputs = true
		SharedProjectContext = &projectContext{
			tempDir:  tempDir,
			tempRoot: filepath.Join(tempDir, "temp_proj"),
			runner:   runner,
			renderer: &fakeRenderer{},
			output:   &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedProjectContext != nil {
			os.RemoveAll(SharedProjectContext.tempDir)
		}
		SharedProjectContext = nil
		return c, nil
	})

	ctx.Step(`^a source video "([^"]*)"$`, aSourceVideo)
	ctx.Step(`^ffmpeg cannot be launched for projection$`, ffmpegCannotBeLaunchedForProjection)
	ctx.Step(`^the source video has no extractable audio$`, theSourceVideoHasNoExtractableAudio)
	ctx.Step(`^merging the audio fails$`, mergingTheAudioFails)
	ctx.Step(`^the source video cannot be decoded$`, theSourceVideoCannotBeDecoded)
	ctx.Step(`^I project "([^"]*)" to "([^"]*)" facing "([^"]*)"$`, iProjectToFacing)
	ctx.Step(`^the projection should succeed$`, theProjectionShouldSucceed)
	ctx.Step(`^the projection should fail with "([^"]*)"$`, theProjectionShouldFailWith)
	ctx.Step(`^the output video "([^"]*)" should contain "([^"]*)"$`, theOutputVideoShouldContain)
	ctx.Step(`^the output video "([^"]*)" should not exist$`, theOutputVideoShouldNotExist)
	ctx.Step(`^the projection output should contain "([^"]*)"$`, theProjectionOutputShouldContain)
	ctx.Step(`^the renderer should have used direction "([^"]*)"$`, theRendererShouldHaveUsedDirection)
	ctx.Step(`^the renderer should not have run$`, theRendererShouldNotHaveRun)
	ctx.Step(`^no temporary files should remain$`, noTemporaryFilesShouldRemain)
}

func (p *projectContext) path(name string) string {
	return filepath.Join(p.tempDir, name)
}

func aSourceVideo(name string) error {
	p := getProjectContext()
	return os.WriteFile(p.path(name), []byte("source video"), 0644)
}

func ffmpegCannotBeLaunchedForProjection() error {
	p := getProjectContext()
	p.runner.outcomes["all"] = launchFailure("ffmpeg")
	return nil
}

func theSourceVideoHasNoExtractableAudio() error {
	p := getProjectContext()
	p.runner.outcomes["extract"] = exitStatus(1)
	return nil
}

func mergingTheAudioFails() error {
	p := getProjectContext()
	p.runner.outcomes["merge"] = exitStatus(1)
	return nil
}

func theSourceVideoCannotBeDecoded() error {
	getProjectContext().renderer.unreadable = true
	return nil
}

func iProjectToFacing(input, output, rawDirection string) error {
	p := getProjectContext()

	direction, err := projection.ParseDirection(rawDirection)
	if err != nil {
		return err
	}

	p.err = cmd.RunProjectWithDependencies(
		context.Background(),
		ffmpeg.NewAdapter(ffmpeg.WithCommandRunner(p.runner)),
		p.renderer,
		filesystem.NewFiles(),
		filesystem.NewWorkspaceFactory(p.tempRoot),
		appprojection.Input{
			InputPath:  p.path(input),
			OutputPath: p.path(output),
			FFmpegPath: "ffmpeg",
			Direction:  direction,
		},
		p.output,
	)
	return nil
}

func theProjectionShouldSucceed() error {
	p := getProjectContext()
	if p.err != nil {
		return fmt.Errorf("expected success, got error: %v\noutput:\n%s", p.err, p.output.String())
	}
	return nil
}

func theProjectionShouldFailWith(message string) error {
	p := getProjectContext()
	if p.err == nil {
		return fmt.Errorf("expected error containing %q, got success", message)
	}
	if !strings.Contains(p.err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got: %v", message, p.err)
	}
	return nil
}

func theOutputVideoShouldContain(name, content string) error {
	p := getProjectContext()
	data, err := os.ReadFile(p.path(name))
	if err != nil {
		return fmt.Errorf("output video not written: %w", err)
	}
	if string(data) != content {
		return fmt.Errorf("expected %s to contain %q, got %q", name, content, string(data))
	}
	return nil
}

func theOutputVideoShouldNotExist(name string) error {
	p := getProjectContext()
	if _, err := os.Stat(p.path(name)); !os.IsNotExist(err) {
		return fmt.Errorf("expected %s not to exist", name)
	}
	return nil
}

func theProjectionOutputShouldContain(text string) error {
	p := getProjectContext()
	if !strings.Contains(p.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got: %s", text, p.output.String())
	}
	return nil
}

func theRendererShouldHaveUsedDirection(rawDirection string) error {
	p := getProjectContext()
	if p.renderer.direction.String() != rawDirection {
		return fmt.Errorf("expected direction %s, got %s", rawDirection, p.renderer.direction)
	}
	return nil
}

func theRendererShouldNotHaveRun() error {
	if calls := getProjectContext().renderer.calls; calls != 0 {
		return fmt.Errorf("expected renderer not to run, got %d calls", calls)
	}
	return nil
}

func noTemporaryFilesShouldRemain() error {
	p := getProjectContext()
	if _, err := os.Stat(p.tempRoot); !os.IsNotExist(err) {
		entries, _ := os.ReadDir(p.tempRoot)
		return fmt.Errorf("expected %s to be removed, found %d entries", p.tempRoot, len(entries))
	}
	return nil
}
