package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"projection-video-3d/domain/projection"
	"projection-video-3d/infrastructure/logging"
)

// Errors for config management
var (
	ErrUnknownKey   = errors.New("unknown config key")
	ErrInvalidValue = errors.New("invalid config value")
)

// Manager provides get/set operations on individual config keys
type Manager struct {
	config     *Config
	configPath string
}

// NewManager creates a new config manager
func NewManager(cfg *Config, configPath string) *Manager {
	return &Manager{
		config:     cfg,
		configPath: configPath,
	}
}

type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

var fields = map[string]field{
	"ffmpeg.path": {
		get: func(c *Config) string { return c.FFmpeg.Path },
		set: func(c *Config, v string) error {
			if v == "" {
				return fmt.Errorf("%w: ffmpeg path is required", ErrInvalidValue)
			}
			c.FFmpeg.Path = v
			return nil
		},
	},
	"ffmpeg.verify_timeout_seconds": {
		get: func(c *Config) string { return strconv.Itoa(c.FFmpeg.VerifyTimeoutSeconds) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("%w: timeout must be a positive number of seconds, got %q", ErrInvalidValue, v)
			}
			c.FFmpeg.VerifyTimeoutSeconds = n
			return nil
		},
	},
	"projection.direction": {
		get: func(c *Config) string { return c.Projection.Direction },
		set: func(c *Config, v string) error {
			dir, err := projection.ParseDirection(v)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidValue, err)
			}
			c.Projection.Direction = dir.String()
			return nil
		},
	},
	"projection.temp_directory": {
		get: func(c *Config) string { return c.Projection.TempDirectory },
		set: func(c *Config, v string) error {
			if v == "" {
				return fmt.Errorf("%w: temp directory is required", ErrInvalidValue)
			}
			c.Projection.TempDirectory = v
			return nil
		},
	},
	"projection.codec": {
		get: func(c *Config) string { return c.Projection.Codec },
		set: func(c *Config, v string) error {
			if len(v) != 4 {
				return fmt.Errorf("%w: codec must be a four character code, got %q", ErrInvalidValue, v)
			}
			c.Projection.Codec = v
			return nil
		},
	},
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error {
			if _, ok := logging.ParseLevel(v); !ok {
				return fmt.Errorf("%w: unknown log level %q", ErrInvalidValue, v)
			}
			c.Logging.Level = strings.ToLower(v)
			return nil
		},
	},
}

// Keys returns every settable key in sorted order
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the current value of key
func (m *Manager) Get(key string) (string, error) {
	f, ok := fields[normalizeKey(key)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.get(m.config), nil
}

// Apply validates and stores value under key without saving
func (m *Manager) Apply(key, value string) error {
	f, ok := fields[normalizeKey(key)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.set(m.config, strings.TrimSpace(value))
}

// Set validates and stores value under key, then saves the file
func (m *Manager) Set(key, value string) error {
	if err := m.Apply(key, value); err != nil {
		return err
	}
	return m.Save()
}

// Save writes the managed config to its path
func (m *Manager) Save() error {
	return Save(m.config, m.configPath)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
