// Package config holds the crank player's YAML configuration. The
// file is the primary configuration surface; flags exist for small
// overrides. Defaults and validation live here so the rest of the code
// can assume a well-formed config.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level YAML configuration.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Audio      AudioConfig      `yaml:"audio"`
	Photos     PhotosConfig     `yaml:"photos"`
	Visualizer VisualizerConfig `yaml:"visualizer"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type AudioConfig struct {
	// File is the clip path. Empty means "ask with a file dialog"; a
	// cancelled dialog degrades to the simulated visualizer.
	File string `yaml:"file,omitempty"`
}

type PhotosConfig struct {
	// Dir is scanned for .jpg/.jpeg/.png photos, sorted by name.
	Dir string `yaml:"dir,omitempty"`
}

type VisualizerConfig struct {
	Bars int `yaml:"bars"`
	// Colors are "#RRGGBB" hex strings.
	ActiveColor   string `yaml:"active_color"`
	InactiveColor string `yaml:"inactive_color"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Crank Player",
		},
		Visualizer: VisualizerConfig{
			Bars:          32,
			ActiveColor:   "#e84393",
			InactiveColor: "#4a4a5e",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults; a missing file is an error so typos in -config
// do not silently run with defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the player cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Visualizer.Bars <= 0 {
		return fmt.Errorf("visualizer bars must be positive, got %d", c.Visualizer.Bars)
	}
	if _, err := ParseHexColor(c.Visualizer.ActiveColor); err != nil {
		return fmt.Errorf("visualizer active_color: %w", err)
	}
	if _, err := ParseHexColor(c.Visualizer.InactiveColor); err != nil {
		return fmt.Errorf("visualizer inactive_color: %w", err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

// ParseHexColor parses "#RRGGBB" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	var c color.RGBA
	c.A = 0xff
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("want #RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return c, fmt.Errorf("want #RRGGBB, got %q", s)
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c, nil
}
