package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel   = "PV3D_LOG_LEVEL"
	EnvLogNoColor = "PV3D_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config controls the diagnostic logger
type Config struct {
	Level   zerolog.Level
	NoColor bool
	Output  io.Writer
}

var configureOnce sync.Once

func ConfigureRuntime(level string) {
	Configure(ProfileRuntime, level)
}

func ConfigureTests() {
	Configure(ProfileTest, "")
}

// Configure installs the global logger once. level, when valid, overrides the
// profile default; environment variables override both.
func Configure(profile Profile, level string) {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		if lvl, ok := ParseLevel(level); ok {
			cfg.Level = lvl
		}
		applyEnvOverrides(&cfg)
		Apply(cfg)
	})
}

// Apply replaces the global logger unconditionally
func Apply(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	zerolog.SetGlobalLevel(cfg.Level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: cfg.NoColor}).
		With().
		Timestamp().
		Logger()
}

// Logger returns a child of the global logger tagged with component
func Logger(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

func defaultConfig(profile Profile) Config {
	switch profile {
	case ProfileTest:
		return Config{Level: zerolog.Disabled, NoColor: true}
	default:
		return Config{Level: zerolog.WarnLevel}
	}
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

// ParseLevel accepts the usual level names; ok is false for empty or unknown input
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.WarnLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.WarnLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
