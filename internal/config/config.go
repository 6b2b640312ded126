// Package config provides configuration types and defaults for the
// waypoint demo application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/waypoint/log"
	"github.com/zjrosen/waypoint/tracing"
)

// Config holds all configuration options for the demo app.
type Config struct {
	// StartView names the view navigated to at startup: "home",
	// "settings", or "about".
	StartView string `mapstructure:"start_view"`

	UI      UIConfig       `mapstructure:"ui"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	// ShowStatusBar toggles the status region at the bottom.
	ShowStatusBar bool `mapstructure:"show_status_bar"`

	// Highlight is the accent color, hex e.g. "#10B981".
	Highlight string `mapstructure:"highlight"`

	// NavigateTimeout bounds asynchronous navigations started from the
	// UI, like the product detail load.
	NavigateTimeout time.Duration `mapstructure:"navigate_timeout"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		StartView: "home",
		UI: UIConfig{
			ShowStatusBar:   true,
			Highlight:       "#10B981",
			NavigateTimeout: 2 * time.Second,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// DefaultConfigTemplate returns a commented YAML config with defaults.
func DefaultConfigTemplate() string {
	return `# waypoint demo configuration

# View shown at startup: home, settings, or about
start_view: home

ui:
  # Show the status bar region at the bottom
  show_status_bar: true

  # Accent color (hex)
  highlight: "#10B981"

  # Timeout for asynchronous navigations
  navigate_timeout: 2s

tracing:
  # Enable OpenTelemetry span export for navigations
  enabled: false

  # Exporter: file, stdout, or none
  exporter: file

  # Span output path when exporter is file
  file_path: .waypoint/traces.jsonl

  # Fraction of navigations to sample, 0.0-1.0
  sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// Validate checks cross-field constraints that viper cannot.
func (c Config) Validate() error {
	switch c.StartView {
	case "home", "settings", "about":
	default:
		return fmt.Errorf("unknown start_view %q (want home, settings, or about)", c.StartView)
	}
	if c.UI.NavigateTimeout <= 0 {
		return fmt.Errorf("navigate_timeout must be positive")
	}
	return nil
}
