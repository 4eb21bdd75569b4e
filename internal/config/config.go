// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "tickreplay.toml"

// Environment variables that override file settings.
const (
	EnvSubmissionsDir = "TICKREPLAY_SUBMISSIONS_DIR"
	EnvLogLevel       = "TICKREPLAY_LOG_LEVEL"
	EnvWidth          = "TICKREPLAY_WIDTH"
	EnvNoColor        = "NO_COLOR"
)

// Config represents the replay tool configuration.
type Config struct {
	Input   InputConfig   `toml:"input"`
	Display DisplayConfig `toml:"display"`
	Logging LoggingConfig `toml:"logging"`
	Export  ExportConfig  `toml:"export"`
}

// InputConfig controls how a log argument is resolved to a file.
type InputConfig struct {
	SubmissionsDir string `toml:"submissions_dir"` // Root holding <id>/<log_name>
	LogName        string `toml:"log_name"`        // File name inside a submission directory
}

// DisplayConfig controls tick rendering.
type DisplayConfig struct {
	Width   int  `toml:"width"`   // Wrap event lines at this width (0 = no wrapping)
	Verbose bool `toml:"verbose"` // Show producer elapsed stamps
	TUI     bool `toml:"tui"`     // Full-screen navigator when stdout is a terminal
	Color   bool `toml:"color"`   // Colourise output
}

// LoggingConfig controls diagnostic logging on stderr.
type LoggingConfig struct {
	Level string `toml:"level"` // DEBUG, INFO, WARN, ERROR
}

// ExportConfig controls the summary subcommand.
type ExportConfig struct {
	DefaultFormat string `toml:"default_format"` // text, yaml or json
}

// New creates a new config with defaults.
func New() *Config {
	return &Config{
		Input: InputConfig{
			SubmissionsDir: ".submissions",
			LogName:        "log.txt",
		},
		Display: DisplayConfig{
			TUI:   true,
			Color: true,
		},
		Logging: LoggingConfig{
			Level: "WARN",
		},
		Export: ExportConfig{
			DefaultFormat: "text",
		},
	}
}

// LoadFile loads configuration from a TOML file.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads tickreplay.toml from the current directory, falling
// back to defaults when the file does not exist.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := LoadFile(filepath.Join(cwd, DefaultFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	return cfg, err
}

// Load reads the config file (explicit path, or the default location),
// loads .env from the working directory and applies environment overrides.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = LoadFile(path)
	} else {
		cfg, err = LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvSubmissionsDir); v != "" {
		c.Input.SubmissionsDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvWidth); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil || width < 0 {
			return fmt.Errorf("invalid %s %q", EnvWidth, v)
		}
		c.Display.Width = width
	}
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		c.Display.Color = false
	}
	return nil
}
