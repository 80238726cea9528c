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

type setupContext struct {
	tempDir         string
	configPath      string
	originalContent string
	inputs          []string
	confirms        []bool
	output          *bytes.Buffer
	err             error
}

var SharedSetupContext *setupContext

// MockPrompter implements cmd.Prompter for testing
type MockPrompter struct {
	inputResponses   []string
	confirmResponses []bool
	inputIndex       int
	confirmIndex     int
}

func NewMockPrompter(inputs []string, confirms []bool) *MockPrompter {
	return &MockPrompter{
		inputResponses:   inputs,
		confirmResponses: confirms,
	}
}

// Input answers in order; once the scripted answers run out it accepts the default
func (m *MockPrompter) Input(message string, defaultValue string) (string, error) {
	if m.inputIndex >= len(m.inputResponses) {
		return defaultValue, nil
	}
	response := m.inputResponses[m.inputIndex]
	m.inputIndex++
	return response, nil
}

func (m *MockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if m.confirmIndex >= len(m.confirmResponses) {
		return defaultValue, nil
	}
	response := m.confirmResponses[m.confirmIndex]
	m.confirmIndex++
	return response, nil
}

func InitializeSetupScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "setup-test-*")
		if err != nil {
			return c, err
		}
		SharedSetupContext = &setupContext{
			tempDir:    tempDir,
			configPath: filepath.Join(tempDir, "config", "config.yaml"),
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedSetupContext != nil {
			os.RemoveAll(SharedSetupContext.tempDir)
		}
		SharedSetupContext = nil
		return c, nil
	})

	ctx.Step(`^no config file exists$`, noConfigFileExists)
	ctx.Step(`^a config file already exists$`, aConfigFileAlreadyExists)
	ctx.Step(`^I answer the setup prompts with:$`, iAnswerTheSetupPromptsWith)
	ctx.Step(`^I accept every default$`, iAcceptEveryDefault)
	ctx.Step(`^I decline to overwrite$`, iDeclineToOverwrite)
	ctx.Step(`^I run setup$`, iRunSetup)
	ctx.Step(`^setup should succeed$`, setupShouldSucceed)
	ctx.Step(`^setup should fail with "([^"]*)"$`, setupShouldFailWith)
	ctx.Step(`^the saved config should have "([^"]*)" set to "([^"]*)"$`, theSavedConfigShouldHaveSetTo)
	ctx.Step(`^the config file should be unchanged$`, theConfigFileShouldBeUnchanged)
}

func noConfigFileExists() error {
	s := SharedSetupContext
	if _, err := os.Stat(s.configPath); !os.IsNotExist(err) {
		return fmt.Errorf("config file unexpectedly exists at %s", s.configPath)
	}
	return nil
}

func aConfigFileAlreadyExists() error {
	s := SharedSetupContext
	s.originalContent = "ffmpeg:\n  path: /opt/ffmpeg\n"
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.configPath, []byte(s.originalContent), 0644)
}

func iAnswerTheSetupPromptsWith(table *godog.Table) error {
	s := SharedSetupContext
	for _, row := range table.Rows {
		s.inputs = append(s.inputs, row.Cells[0].Value)
	}
	return nil
}

func iAcceptEveryDefault() error {
	SharedSetupContext.inputs = nil
	return nil
}

func iDeclineToOverwrite() error {
	SharedSetupContext.confirms = []bool{false}
	return nil
}

func iRunSetup() error {
	s := SharedSetupContext
	prompter := NewMockPrompter(s.inputs, s.confirms)
	s.err = cmd.RunSetupWithPrompter(prompter, s.configPath, s.output)
	return nil
}

func setupShouldSucceed() error {
	if err := SharedSetupContext.err; err != nil {
		return fmt.Errorf("expected setup to succeed, got: %v", err)
	}
	return nil
}

func setupShouldFailWith(message string) error {
	err := SharedSetupContext.err
	if err == nil {
		return fmt.Errorf("expected error containing %q, got success", message)
	}
	if !strings.Contains(err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got: %v", message, err)
	}
	return nil
}

func theSavedConfigShouldHaveSetTo(key, value string) error {
	s := SharedSetupContext
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load saved config: %w", err)
	}
	got, err := config.NewManager(cfg, s.configPath).Get(key)
	if err != nil {
		return err
	}
	if got != value {
		return fmt.Errorf("expected %s = %q, got %q", key, value, got)
	}
	return nil
}

func theConfigFileShouldBeUnchanged() error {
	s := SharedSetupContext
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return err
	}
	if string(data) != s.originalContent {
		return fmt.Errorf("config file was modified: %s", string(data))
	}
	return nil
}
