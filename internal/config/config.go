// Package config provides configuration types and defaults for spotlight.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/log"
	"github.com/zjrosen/spotlight/internal/tracing"
	"github.com/zjrosen/spotlight/internal/ui/styles"
)

// Config holds all configuration options for spotlight.
type Config struct {
	// UserID scopes completion records. Empty means one record per tour.
	UserID string `mapstructure:"user_id"`
	// ToursFile is a YAML or JSON tours file. Empty uses the built-in tours.
	ToursFile string          `mapstructure:"tours_file"`
	Store     StoreConfig     `mapstructure:"store"`
	Tour      TourConfig      `mapstructure:"tour"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Tracing   tracing.Config  `mapstructure:"tracing"`
	Flags     map[string]bool `mapstructure:"flags"`
}

// StoreConfig selects where completion records live.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite" (default) or "memory"
	Path   string `mapstructure:"path"`
}

// SafeArea reserves rows at the top and bottom of the screen (status bars).
type SafeArea struct {
	Top    int `mapstructure:"top"`
	Bottom int `mapstructure:"bottom"`
}

// TourConfig holds coach-mark behavior and layout settings.
type TourConfig struct {
	AutoStart       bool            `mapstructure:"auto_start"`
	SettleDelay     time.Duration   `mapstructure:"settle_delay"`
	FadeDuration    time.Duration   `mapstructure:"fade_duration"`
	DimOpacity      float64         `mapstructure:"dim_opacity"`
	ScrimColor      string          `mapstructure:"scrim_color"` // empty uses the theme's coach.scrim
	MeasureAttempts int             `mapstructure:"measure_attempts"`
	MeasureInterval time.Duration   `mapstructure:"measure_interval"`
	Padding         int             `mapstructure:"padding"`
	Radius          int             `mapstructure:"radius"`
	EdgeMargin      geometry.Insets `mapstructure:"edge_margin"`
	CardMaxWidth    int             `mapstructure:"card_max_width"`
	Insets          SafeArea        `mapstructure:"insets"`
}

// Metrics returns terminal layout metrics with the configured overrides.
func (t TourConfig) Metrics() geometry.Metrics {
	m := geometry.TerminalMetrics()
	m.Padding = t.Padding
	m.Radius = t.Radius
	m.EdgeMargin = t.EdgeMargin
	if t.CardMaxWidth > 0 {
		m.CardMaxWidth = t.CardMaxWidth
	}
	return m
}

// SafeAreaInsets returns the safe area as geometry insets.
func (t TourConfig) SafeAreaInsets() geometry.Insets {
	return geometry.Insets{Top: t.Insets.Top, Bottom: t.Insets.Bottom}
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base.
	// Valid values: "default", "catppuccin-mocha", "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors overrides individual color tokens. Nested YAML and quoted
	// dot notation ("coach.ring") are both accepted.
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns Colors flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// Styles converts the config for styles.ApplyTheme.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Colors: t.FlattenedColors()}
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// DefaultConfigDir returns ~/.config/spotlight, or "" without a home directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "spotlight")
}

// DefaultStorePath returns the default sqlite database path.
func DefaultStorePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return "spotlight.db"
	}
	return filepath.Join(dir, "spotlight.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with default values.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()

	return Config{
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   DefaultStorePath(),
		},
		Tour: TourConfig{
			AutoStart:       true,
			SettleDelay:     400 * time.Millisecond,
			FadeDuration:    180 * time.Millisecond,
			DimOpacity:      0.6,
			MeasureAttempts: 24,
			MeasureInterval: 16 * time.Millisecond,
			Padding:         1,
			Radius:          1,
			EdgeMargin:      geometry.Uniform(1),
			CardMaxWidth:    48,
		},
		Tracing: tr,
		Flags:   map[string]bool{},
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateStore(c.Store); err != nil {
		return err
	}
	if err := ValidateTour(c.Tour); err != nil {
		return err
	}
	if c.Theme.Preset != "" {
		if _, ok := styles.Presets[c.Theme.Preset]; !ok {
			return fmt.Errorf("theme.preset: unknown preset %q", c.Theme.Preset)
		}
	}
	if err := c.Tracing.Validate(); err != nil {
		return err
	}
	return nil
}

// ValidateStore checks the store block.
func ValidateStore(s StoreConfig) error {
	switch s.Driver {
	case "", "sqlite":
		if s.Path == "" {
			return fmt.Errorf("store.path is required when driver is \"sqlite\"")
		}
	case "memory":
	default:
		return fmt.Errorf("store.driver must be \"sqlite\" or \"memory\", got %q", s.Driver)
	}
	return nil
}

// ValidateTour checks the tour block.
func ValidateTour(t TourConfig) error {
	if t.DimOpacity < 0 || t.DimOpacity > 1 {
		return fmt.Errorf("tour.dim_opacity must be between 0.0 and 1.0, got %v", t.DimOpacity)
	}
	if t.MeasureAttempts < 1 {
		return fmt.Errorf("tour.measure_attempts must be positive, got %d", t.MeasureAttempts)
	}
	if t.MeasureInterval <= 0 {
		return fmt.Errorf("tour.measure_interval must be positive, got %v", t.MeasureInterval)
	}
	if t.SettleDelay < 0 || t.FadeDuration < 0 {
		return fmt.Errorf("tour.settle_delay and tour.fade_duration must not be negative")
	}
	if t.Padding < 0 || t.Radius < 0 {
		return fmt.Errorf("tour.padding and tour.radius must not be negative")
	}
	if t.ScrimColor != "" && !styles.IsValidHexColor(t.ScrimColor) {
		return fmt.Errorf("tour.scrim_color must be a hex color, got %q", t.ScrimColor)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Spotlight Configuration

# Completion records are kept per user when set
# user_id: alice

# Tours file (YAML or JSON). Reloaded on change. Empty uses built-in tours.
# tours_file: ./tours.yaml

# Where completion records are stored
store:
  driver: sqlite               # sqlite (default) or memory
  # path: ~/.config/spotlight/spotlight.db

# Coach mark behavior and layout (cells)
tour:
  auto_start: true             # Start auto_start tours the first time a screen mounts
  settle_delay: 400ms          # Wait for layout to settle before auto-starting
  fade_duration: 180ms         # Enter/exit animation length
  dim_opacity: 0.6             # How strongly the backdrop is dimmed (0.0-1.0)
  # scrim_color: "#000000"     # Defaults to the theme's coach.scrim
  measure_attempts: 24         # Frames to wait for a target to be measured
  measure_interval: 16ms
  padding: 1                   # Space between target and hole edge
  radius: 1                    # Hole corner radius
  edge_margin:                 # Keep the hole this far from the screen edges
    top: 1
    right: 1
    bottom: 1
    left: 1
  card_max_width: 48
  # insets:                    # Rows reserved for status bars
  #   top: 0
  #   bottom: 1

# Theme configuration
theme:
  # preset: catppuccin-mocha   # default, catppuccin-mocha, dracula, nord, high-contrast
  # colors:
  #   coach.ring: "#FFFF00"
  #   coach.card.bg: "#1E1E2E"

# Feature flags
# flags:
#   highlight-ring: true       # Draw a ring around the highlighted target
#   backdrop-advance: true     # Clicking the backdrop moves to the next step
#   auto-start: true           # Master switch for auto-starting tours

# Tracing of tour runs and store operations
# tracing:
#   enabled: false
#   exporter: file             # none, file, stdout, otlp
#   file_path: ~/.config/spotlight/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at configPath with default
// settings and comments, creating the parent directory if needed.
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
