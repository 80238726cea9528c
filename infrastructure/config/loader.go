package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where commands look for the configuration file
const DefaultPath = "config/config.yaml"

// Defaults applied to any value left empty in the configuration file
const (
	DefaultFFmpegPath           = "ffmpeg"
	DefaultVerifyTimeoutSeconds = 5
	DefaultDirection            = "up"
	DefaultTempDirectory        = "temp_proj"
	DefaultCodec                = "mp4v"
	DefaultLogLevel             = "warn"
)

// Config represents the complete application configuration
type Config struct {
	FFmpeg     FFmpegConfig     `yaml:"ffmpeg" toml:"ffmpeg"`
	Projection ProjectionConfig `yaml:"projection" toml:"projection"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// FFmpegConfig contains settings for the external media tool
type FFmpegConfig struct {
	Path                 string `yaml:"path" toml:"path"`
	VerifyTimeoutSeconds int    `yaml:"verify_timeout_seconds" toml:"verify_timeout_seconds"`
}

// ProjectionConfig contains settings for projection video rendering
type ProjectionConfig struct {
	Direction     string `yaml:"direction" toml:"direction"`
	TempDirectory string `yaml:"temp_directory" toml:"temp_directory"`
	Codec         string `yaml:"codec" toml:"codec"`
}

// LoggingConfig contains diagnostic logging settings
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty values with their defaults
func (c *Config) ApplyDefaults() {
	if c.FFmpeg.Path == "" {
		c.FFmpeg.Path = DefaultFFmpegPath
	}
	if c.FFmpeg.VerifyTimeoutSeconds <= 0 {
		c.FFmpeg.VerifyTimeoutSeconds = DefaultVerifyTimeoutSeconds
	}
	if c.Projection.Direction == "" {
		c.Projection.Direction = DefaultDirection
	}
	if c.Projection.TempDirectory == "" {
		c.Projection.TempDirectory = DefaultTempDirectory
	}
	if c.Projection.Codec == "" {
		c.Projection.Codec = DefaultCodec
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}

// Load reads and parses the configuration from the specified file.
// Files ending in .toml are decoded as TOML, anything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if isTOML(path) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Save writes the configuration to the specified file, creating its directory
func Save(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(cfg)
		data = []byte(sb.String())
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
