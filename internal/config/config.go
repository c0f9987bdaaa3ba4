// Package config provides configuration types, defaults, and persistence for
// quill.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/okvern/quill/internal/log"
)

// TimestampLayout is the fixed textual pattern for entry timestamps.
const TimestampLayout = "2006-01-02 15:04"

// DateLayout is the fixed textual pattern for calendar dates.
const DateLayout = "2006-01-02"

// Config holds all configuration options for quill.
type Config struct {
	Demo    bool          `mapstructure:"demo"`
	UI      UIConfig      `mapstructure:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
	PreviewWords  int    `mapstructure:"preview_words"`  // words shown per row in entry lists
}

// ThemeConfig holds the color tokens the UI styles are built from.
// Values are hex colors like "#10B981".
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"`
	Subtle    string `mapstructure:"subtle"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

// TracingConfig holds span export settings. Export is local-only: a JSONL
// file or stdout.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"` // "file" (default) or "stdout"
	FilePath string `mapstructure:"file_path"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Demo: false,
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "dark",
			PreviewWords:  8,
		},
		Theme: ThemeConfig{
			Highlight: "#7C3AED",
			Subtle:    "#6B7280",
			Error:     "#EF4444",
			Success:   "#10B981",
		},
		Tracing: TracingConfig{
			Enabled:  false,
			Exporter: "file",
			FilePath: "", // derived from the config directory at runtime
		},
	}
}

// Validate checks cross-field constraints that viper cannot express.
func Validate(cfg Config) error {
	switch cfg.UI.MarkdownStyle {
	case "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", cfg.UI.MarkdownStyle)
	}
	if cfg.UI.PreviewWords < 0 {
		return fmt.Errorf("ui.preview_words must not be negative")
	}
	switch cfg.Tracing.Exporter {
	case "", "file", "stdout":
	default:
		return fmt.Errorf("tracing.exporter must be \"file\" or \"stdout\", got %q", cfg.Tracing.Exporter)
	}
	return nil
}

// WriteDefaultConfig writes the commented default config template to
// configPath, creating parent directories as needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}

// defaultConfigTemplate is the commented YAML written on first run.
const defaultConfigTemplate = `# quill configuration
#
# Seed the registers with demo authors and entries on startup.
demo: false

ui:
  # Show the status/help bar at the bottom of the screen.
  show_status_bar: true
  # Markdown rendering style for entry text: dark or light.
  markdown_style: dark
  # Words of entry text shown per row in list views.
  preview_words: 8

# Hex color overrides for the UI.
theme:
  highlight: "#7C3AED"
  subtle: "#6B7280"
  error: "#EF4444"
  success: "#10B981"

# Local span export for debugging; never leaves the machine.
tracing:
  enabled: false
  # file (JSONL next to the config) or stdout.
  exporter: file
  file_path: ""
`
