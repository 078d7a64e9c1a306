// Package config loads schedviz settings from a YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/schedviz/internal/canvas"
	"github.com/user/schedviz/internal/chart"
)

// Report formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// Smallest chart size that leaves room for axes and a title.
const (
	MinWidth  = 200
	MinHeight = 150
)

// Config holds every setting of a rendering run.
type Config struct {
	Backend     string      `yaml:"backend"`
	Format      string      `yaml:"format"`
	ImageFormat string      `yaml:"image_format"`
	Width       int         `yaml:"width"`
	Height      int         `yaml:"height"`
	OutputDir   string      `yaml:"output_dir"`
	LogLevel    string      `yaml:"log_level"`
	Watch       WatchConfig `yaml:"watch"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the built-in configuration.
func Default() Config {
	c := Config{}
	c.applyDefaults()
	return c
}

// Load reads path and fills unset fields with defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = chart.BackendGonum
	}
	if c.Format == "" {
		c.Format = FormatHTML
	}
	if c.ImageFormat == "" {
		c.ImageFormat = canvas.FormatPNG
	}
	if c.Width == 0 {
		c.Width = chart.DefaultDrawOptions.Width
	}
	if c.Height == 0 {
		c.Height = chart.DefaultDrawOptions.Height
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 250 * time.Millisecond
	}
}

// Validate fills defaults and checks every field.
func (c *Config) Validate() error {
	c.applyDefaults()

	if _, err := chart.NewDrawer(c.Backend); err != nil {
		return err
	}
	switch c.Format {
	case FormatHTML, FormatJSON, FormatXLSX:
	default:
		return fmt.Errorf("invalid report format '%s'. Must be 'html', 'json' or 'xlsx'", c.Format)
	}
	switch c.ImageFormat {
	case canvas.FormatPNG, canvas.FormatSVG:
	default:
		return fmt.Errorf("invalid image format '%s'. Must be 'png' or 'svg'", c.ImageFormat)
	}
	if c.Width < MinWidth || c.Height < MinHeight {
		return fmt.Errorf("chart size must be at least %dx%d, got %dx%d", MinWidth, MinHeight, c.Width, c.Height)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative, got %s", c.Watch.Debounce)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// DrawOptions returns the chart drawing options.
func (c Config) DrawOptions() chart.DrawOptions {
	return chart.DrawOptions{Width: c.Width, Height: c.Height, Format: c.ImageFormat}
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level '%s'", s)
}
