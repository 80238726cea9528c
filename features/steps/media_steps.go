//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"projection-video-3d/cmd"
	"projection-video-3d/domain/media"
	"projection-video-3d/infrastructure/ffmpeg"

	"github.com/cucumber/godog"
)

// mediaContext holds test state for verify, extract-audio and merge scenarios
type mediaContext struct {
	executable string
	runner     *fakeFFmpeg
	output     *bytes.Buffer
	err        error
}

// SharedMediaContext is reset before each scenario via Before hook
var SharedMediaContext *mediaContext

func getMediaContext() *mediaContext {
	return SharedMediaContext
}

func InitializeMediaScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedMediaContext = &mediaContext{
			executable: "ffmpeg",
			runner:     newFakeFFmpeg(),
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedMediaContext = nil
		return c, nil
	})

	ctx.Step(`^ffmpeg is installed at "([^"]*)"$`, ffmpegIsInstalledAt)
	ctx.Step(`^ffmpeg at "([^"]*)" cannot be launched$`, ffmpegAtCannotBeLaunched)
	ctx.Step(`^ffmpeg at "([^"]*)" exits with status (\d+)$`, ffmpegAtExitsWithStatus)
	ctx.Step(`^I verify ffmpeg$`, iVerifyFFmpeg)
	ctx.Step(`^I extract audio from "([^"]*)" to "([^"]*)"$`, iExtractAudioFromTo)
	ctx.Step(`^I merge video "([^"]*)" and audio "([^"]*)" into "([^"]*)"$`, iMergeVideoAndAudioInto)
	ctx.Step(`^the command should succeed$`, theCommandShouldSucceed)
	ctx.Step(`^the command should fail with "([^"]*)"$`, theCommandShouldFailWith)
	ctx.Step(`^the error should be a launch failure$`, theErrorShouldBeALaunchFailure)
	ctx.Step(`^the error should not be a launch failure$`, theErrorShouldNotBeALaunchFailure)
	ctx.Step(`^the command output should contain "([^"]*)"$`, theCommandOutputShouldContain)
	ctx.Step(`^ffmpeg should have been called as "([^"]*)" with arguments:$`, ffmpegShouldHaveBeenCalledAsWithArguments)
	ctx.Step(`^the ffmpeg output should have been captured$`, theFFmpegOutputShouldHaveBeenCaptured)
	ctx.Step(`^ffmpeg should have inherited the standard streams$`, ffmpegShouldHaveInheritedTheStandardStreams)
}

func ffmpegIsInstalledAt(path string) error {
	m := getMediaContext()
	m.executable = path
	return nil
}

func ffmpegAtCannotBeLaunched(path string) error {
	m := getMediaContext()
	m.executable = path
	m.runner.outcomes["all"] = launchFailure(path)
	return nil
}

func ffmpegAtExitsWithStatus(path string, code int) error {
	m := getMediaContext()
	m.executable = path
	m.runner.outcomes["all"] = exitStatus(code)
	return nil
}

func (m *mediaContext) adapter() *ffmpeg.Adapter {
	return ffmpeg.NewAdapter(ffmpeg.WithCommandRunner(m.runner))
}

func iVerifyFFmpeg() error {
	m := getMediaContext()
	m.err = cmd.RunVerifyWithDependencies(context.Background(), m.adapter(), m.executable, 5*time.Second, m.output)
	return nil
}

func iExtractAudioFromTo(input, output string) error {
	m := getMediaContext()
	m.err = cmd.RunExtractAudioWithDependencies(context.Background(), m.adapter(), m.executable, input, output, m.output)
	return nil
}

func iMergeVideoAndAudioInto(video, audio, output string) error {
	m := getMediaContext()
	m.err = cmd.RunMergeWithDependencies(context.Background(), m.adapter(), m.executable, video, audio, output, m.output)
	return nil
}

func theCommandShouldSucceed() error {
	m := getMediaContext()
	if m.err != nil {
		return fmt.Errorf("expected success, got error: %v", m.err)
	}
	return nil
}

func theCommandShouldFailWith(message string) error {
	m := getMediaContext()
	if m.err == nil {
		return fmt.Errorf("expected error containing %q, got success", message)
	}
	if !strings.Contains(m.err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got: %v", message, m.err)
	}
	return nil
}

func theErrorShouldBeALaunchFailure() error {
	m := getMediaContext()
	if !errors.Is(m.err, media.ErrLaunchFailure) {
		return fmt.Errorf("expected launch failure, got: %v", m.err)
	}
	return nil
}

func theErrorShouldNotBeALaunchFailure() error {
	m := getMediaContext()
	if m.err == nil {
		return fmt.Errorf("expected an error")
	}
	if errors.Is(m.err, media.ErrLaunchFailure) {
		return fmt.Errorf("expected a non-launch error, got: %v", m.err)
	}
	return nil
}

func theCommandOutputShouldContain(text string) error {
	m := getMediaContext()
	if !strings.Contains(m.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got: %s", text, m.output.String())
	}
	return nil
}

func ffmpegShouldHaveBeenCalledAsWithArguments(name string, table *godog.Table) error {
	m := getMediaContext()
	call, err := m.runner.lastCall()
	if err != nil {
		return err
	}
	if call.name != name {
		return fmt.Errorf("expected executable %q, got %q", name, call.name)
	}

	var want []string
	for _, row := range table.Rows {
		want = append(want, row.Cells[0].Value)
	}
	if strings.Join(call.args, "\x00") != strings.Join(want, "\x00") {
		return fmt.Errorf("expected arguments %q, got %q", want, call.args)
	}
	return nil
}

func theFFmpegOutputShouldHaveBeenCaptured() error {
	call, err := getMediaContext().runner.lastCall()
	if err != nil {
		return err
	}
	if !call.captured {
		return fmt.Errorf("expected captured output, ffmpeg inherited the standard streams")
	}
	return nil
}

func ffmpegShouldHaveInheritedTheStandardStreams() error {
	call, err := getMediaContext().runner.lastCall()
	if err != nil {
		return err
	}
	if call.captured {
		return fmt.Errorf("expected inherited streams, ffmpeg output was captured")
	}
	return nil
}
