// Package config provides configuration types and defaults for vidmeta.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Default constants
const (
	// DefaultSourceDir is the directory scanned when none is given.
	DefaultSourceDir = "."

	// DefaultOutputPath is the report file written when none is given.
	DefaultOutputPath = "metadata.json"

	// DefaultFFprobePath is the ffprobe binary looked up on PATH.
	DefaultFFprobePath = "ffprobe"

	// DefaultProbeTimeout bounds a single ffprobe invocation.
	DefaultProbeTimeout = 30 * time.Second

	// DefaultLogLevel is the minimum level written by the logger.
	DefaultLogLevel = "info"

	// StdoutPath is the output path that sends the report to standard output.
	StdoutPath = "-"
)

// Backend selects the implementation used to probe files.
type Backend string

const (
	// BackendCLI runs the ffprobe binary directly.
	BackendCLI Backend = "cli"
	// BackendTranscoder probes through the transcoder library binding.
	BackendTranscoder Backend = "transcoder"
)

// ParseBackend converts a backend name to a Backend value.
// Valid values are "cli" and "transcoder" (case-insensitive).
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cli":
		return BackendCLI, nil
	case "transcoder":
		return BackendTranscoder, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: cli, transcoder)", ErrInvalidBackend, s)
	}
}

func (b Backend) String() string {
	return string(b)
}

// ParseLogLevel converts a level name to an slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}

// Config holds all settings for a scan run. Values come from, in increasing
// precedence: defaults, an optional config file, the environment, and
// command-line flags applied by the caller.
type Config struct {
	SourceDir    string        `yaml:"source_dir" toml:"source_dir" json:"source_dir" env:"VIDMETA_SOURCE_DIR" env-default:"."`
	OutputPath   string        `yaml:"output" toml:"output" json:"output" env:"VIDMETA_OUTPUT" env-default:"metadata.json"`
	FFprobePath  string        `yaml:"ffprobe" toml:"ffprobe" json:"ffprobe" env:"VIDMETA_FFPROBE" env-default:"ffprobe"`
	ProbeTimeout Duration      `yaml:"probe_timeout" toml:"probe_timeout" json:"probe_timeout" env:"VIDMETA_PROBE_TIMEOUT" env-default:"30s"`
	Backend      Backend       `yaml:"backend" toml:"backend" json:"backend" env:"VIDMETA_BACKEND" env-default:"cli"`
	LogLevel     string        `yaml:"log_level" toml:"log_level" json:"log_level" env:"VIDMETA_LOG_LEVEL" env-default:"info"`
	LogFile      string        `yaml:"log_file" toml:"log_file" json:"log_file" env:"VIDMETA_LOG_FILE"`
}

// NewConfig creates a configuration with default values.
func NewConfig(sourceDir, outputPath string) *Config {
	return &Config{
		SourceDir:    sourceDir,
		OutputPath:   outputPath,
		FFprobePath:  DefaultFFprobePath,
		ProbeTimeout: Duration(DefaultProbeTimeout),
		Backend:      BackendCLI,
		LogLevel:     DefaultLogLevel,
	}
}

// Load reads configuration from the file at path (YAML, TOML, JSON or .env,
// chosen by extension) and then the environment. An empty path reads the
// environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceDir) == "" {
		return fmt.Errorf("%w: source directory", ErrEmptyPath)
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("%w: output path", ErrEmptyPath)
	}
	if strings.TrimSpace(c.FFprobePath) == "" {
		return fmt.Errorf("%w: ffprobe path", ErrEmptyPath)
	}
	if c.ProbeTimeout < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.ProbeTimeout)
	}
	if _, err := ParseBackend(string(c.Backend)); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// WritesToStdout reports whether the report goes to standard output.
func (c *Config) WritesToStdout() bool {
	return c.OutputPath == StdoutPath
}

// SlogLevel returns the configured log level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	level, _ := ParseLogLevel(c.LogLevel)
	return level
}
