package cmd

import (
	"fmt"
	"os"
	"strconv"

	"projection-video-3d/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates the config file.

Press enter to accept the default shown for each value. A path ending in
.toml is written as TOML, anything else as YAML.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, cfgFile, DefaultOutput)
}

type setupQuestion struct {
	key     string
	message string
	value   func(c *config.Config) string
}

var setupQuestions = []setupQuestion{
	{"ffmpeg.path", "Path to the ffmpeg executable?", func(c *config.Config) string { return c.FFmpeg.Path }},
	{"ffmpeg.verify_timeout_seconds", "Seconds to wait for ffmpeg -version?", func(c *config.Config) string { return strconv.Itoa(c.FFmpeg.VerifyTimeoutSeconds) }},
	{"projection.direction", "Default projection direction (up/down)?", func(c *config.Config) string { return c.Projection.Direction }},
	{"projection.temp_directory", "Directory for temporary job files?", func(c *config.Config) string { return c.Projection.TempDirectory }},
	{"projection.codec", "Video fourcc for rendered projections?", func(c *config.Config) string { return c.Projection.Codec }},
	{"logging.level", "Diagnostic log level (debug/info/warn/error)?", func(c *config.Config) string { return c.Logging.Level }},
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, output OutputWriter) error {
	if configPath == "" {
		configPath = config.DefaultPath
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm(fmt.Sprintf("%s already exists. Overwrite?", configPath), false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(output, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(output, "Welcome to projection-video-3d setup!")
	fmt.Fprintln(output)

	cfg := config.Default()
	mgr := config.NewManager(cfg, configPath)

	for _, q := range setupQuestions {
		answer, err := prompter.Input(q.message, q.value(cfg))
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if answer == "" {
			continue
		}
		if err := mgr.Apply(q.key, answer); err != nil {
			return err
		}
	}

	if err := mgr.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(output)
	fmt.Fprintf(output, "Configuration saved to %s\n", configPath)
	return nil
}
