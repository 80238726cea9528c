//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"projection-video-3d/cmd"
	"projection-video-3d/infrastructure/config"

	"github.com/cucumber/godog"
)

// configContext holds test state for config scenarios
type configContext struct {
	tempDir    string
	configPath string
	cfg        *config.Config
	output     *bytes.Buffer
	err        error
}

var SharedConfigContext *configContext

func getConfigContext() *configContext {
	return SharedConfigContext
}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "config-test-*")
		if err != nil {
			return c, err
		}
		SharedConfigContext = &configContext{
			tempDir: tempDir,
			output:  &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedConfigContext != nil {
			os.RemoveAll(SharedConfigContext.tempDir)
		}
		SharedConfigContext = nil
		return c, nil
	})

	ctx.Step(`^a config file "([^"]*)" with content:$`, aConfigFileWithContent)
	ctx.Step(`^I show the configuration$`, iShowTheConfiguration)
	ctx.Step(`^I get config key "([^"]*)"$`, iGetConfigKey)
	ctx.Step(`^I set config key "([^"]*)" to "([^"]*)"$`, iSetConfigKeyTo)
	ctx.Step(`^the config command should succeed$`, theConfigCommandShouldSucceed)
	ctx.Step(`^the config command should fail with "([^"]*)"$`, theConfigCommandShouldFailWith)
	ctx.Step(`^the config output should contain "([^"]*)"$`, theConfigOutputShouldContain)
	ctx.Step(`^reloading the config should give "([^"]*)" for "([^"]*)"$`, reloadingTheConfigShouldGiveFor)
}

func aConfigFileWithContent(name string, content *godog.DocString) error {
	c := getConfigContext()
	c.configPath = filepath.Join(c.tempDir, name)
	if err := os.WriteFile(c.configPath, []byte(content.Content), 0644); err != nil {
		return err
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.cfg = cfg
	return nil
}

func iShowTheConfiguration() error {
	c := getConfigContext()
	c.err = cmd.RunConfigShowWithDependencies(c.cfg, c.configPath, c.output)
	return nil
}

func iGetConfigKey(key string) error {
	c := getConfigContext()
	c.err = cmd.RunConfigGetWithDependencies(c.cfg, c.configPath, key, c.output)
	return nil
}

func iSetConfigKeyTo(key, value string) error {
	c := getConfigContext()
	c.err = cmd.RunConfigSetWithDependencies(c.cfg, c.configPath, key, value, c.output)
	return nil
}

func theConfigCommandShouldSucceed() error {
	if err := getConfigContext().err; err != nil {
		return fmt.Errorf("expected success, got error: %v", err)
	}
	return nil
}

func theConfigCommandShouldFailWith(message string) error {
	err := getConfigContext().err
	if err == nil {
		return fmt.Errorf("expected error containing %q, got success", message)
	}
	if !strings.Contains(err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got: %v", message, err)
	}
	return nil
}

func theConfigOutputShouldContain(text string) error {
	c := getConfigContext()
	if !strings.Contains(c.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got: %s", text, c.output.String())
	}
	return nil
}

func reloadingTheConfigShouldGiveFor(value, key string) error {
	c := getConfigContext()
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	got, err := config.NewManager(cfg, c.configPath).Get(key)
	if err != nil {
		return err
	}
	if got != value {
		return fmt.Errorf("expected %s = %q, got %q", key, value, got)
	}
	return nil
}
