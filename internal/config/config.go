// Package config loads tasklist settings from a YAML file.
//
// The file is named by the --config flag or the TASKLIST_CONFIG environment
// variable. With neither, defaults are used. Fields left out of the file
// keep their defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable holding the config file path
const EnvConfig = "TASKLIST_CONFIG"

// ErrUnknownTheme is returned when the theme field names no known theme
var ErrUnknownTheme = errors.New("unknown theme")

// knownThemes mirrors the palettes in internal/ui/theme
var knownThemes = []string{"nord", "dracula", "gruvbox", "catppuccin"}

// Config holds application configuration
type Config struct {
	// Timezone is the IANA zone used to decide what "today" is.
	// "Local" (the default) means the process's local zone.
	Timezone string `yaml:"timezone"`

	// DateLayout is the Go time layout used to display deadlines.
	DateLayout string `yaml:"date_layout"`

	// Theme selects the colour palette for the terminal UI.
	Theme string `yaml:"theme"`

	// Plain disables colour and styling in rendered output.
	Plain bool `yaml:"plain"`

	// SocketPath is where the socket server listens.
	SocketPath string `yaml:"socket_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Notify enables desktop notifications for the remind command.
	Notify bool `yaml:"notify"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Timezone:   "Local",
		DateLayout: "2006-01-02",
		Theme:      "nord",
		SocketPath: DefaultSocketPath(),
		LogLevel:   "info",
		Notify:     true,
	}
}

// DefaultSocketPath returns $XDG_RUNTIME_DIR/tasklist.sock, falling back
// to the temp dir.
func DefaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "tasklist.sock")
	}
	return filepath.Join(os.TempDir(), "tasklist.sock")
}

// Load reads the config file at path, or the one named by TASKLIST_CONFIG
// when path is empty. No file at all yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks fields that can be wrong
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if !c.HasTheme() {
		return fmt.Errorf("%w: %s", ErrUnknownTheme, c.Theme)
	}
	if strings.TrimSpace(c.DateLayout) == "" {
		return errors.New("date_layout must not be empty")
	}
	if c.SocketPath == "" {
		return errors.New("socket_path must not be empty")
	}
	return nil
}

// HasTheme reports whether Theme names a known palette
func (c *Config) HasTheme() bool {
	for _, name := range knownThemes {
		if name == c.Theme {
			return true
		}
	}
	return false
}

// Location resolves Timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlogLevel resolves LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unknown log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// LockPath is the single-instance lock file for the socket server
func (c *Config) LockPath() string {
	return c.SocketPath + ".lock"
}
