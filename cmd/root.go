package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"projection-video-3d/infrastructure/config"
	"projection-video-3d/infrastructure/logging"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	cfgErr  error
)

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	io.Writer
}

// DefaultOutput is the default output writer for commands
var DefaultOutput OutputWriter = os.Stdout

var rootCmd = &cobra.Command{
	Use:   "projection-video-3d",
	Short: "Build four-panel holographic projection videos with ffmpeg",
	Long: `projection-video-3d turns a regular video into a four-panel projection
video for a pyramid hologram display:

  - Verify the ffmpeg executable can be launched
  - Extract the audio track without re-encoding
  - Render the mirrored four-panel projection
  - Merge the audio back into the rendered video

Example:
  projection-video-3d project --input clip.mp4 --output hologram.mp4 --direction up`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, YAML or TOML (default is ./config/config.yaml)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath
	}

	cfg, cfgErr = config.Load(cfgFile)
	if errors.Is(cfgErr, fs.ErrNotExist) {
		// Config file is optional; every setting has a default
		cfg, cfgErr = config.Default(), nil
	}

	level := ""
	if cfg != nil {
		level = cfg.Logging.Level
	}
	logging.ConfigureRuntime(level)
}

// GetConfig returns the loaded configuration, or an error if the config file exists but is invalid
func GetConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}

// resolveFFmpeg prefers the --ffmpeg flag over the configured path
func resolveFFmpeg(flagValue string, c *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	return c.FFmpeg.Path
}

func verifyTimeout(c *config.Config) time.Duration {
	return time.Duration(c.FFmpeg.VerifyTimeoutSeconds) * time.Second
}
