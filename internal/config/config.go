package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// colorNameMap maps user-friendly color names to ANSI 16-color values
var colorNameMap = map[string]string{
	// Standard colors (0-7)
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	// Bright colors (8-15)
	"bright-black":   "8",
	"gray":           "8", // alias for bright-black
	"bright-red":     "9",
	"bright-green":   "10",
	"bright-yellow":  "11",
	"bright-blue":    "12",
	"bright-magenta": "13",
	"bright-cyan":    "14",
	"bright-white":   "15",
}

// resolveColorValue converts color names to ANSI 16-color numbers, or passes through other formats
// Accepts:
//   - Color names (red, bright-blue, etc.) → converted to ANSI numbers (0-15)
//   - ANSI numbers (0-15) → returned as-is
//   - Hex colors (#RRGGBB) → passed through to lipgloss (supports full RGB range)
//   - 256-color codes → passed through to lipgloss
func resolveColorValue(colorInput string) string {
	if colorInput == "" {
		return colorInput
	}

	// Try as color name first - only names get converted to ANSI
	if ansiValue, exists := colorNameMap[strings.ToLower(colorInput)]; exists {
		return ansiValue
	}

	// Everything else (hex, ANSI numbers, 256-color codes) passed through unchanged
	// lipgloss handles validation and rendering
	return colorInput
}

type ColorScheme struct {
	// 16-color palette values (0-15)
	NumberColor  string `toml:"number"`
	DateColor    string `toml:"date"`
	DateBgColor  string `toml:"date-bg"`
	TagColor     string `toml:"tag"`
	TagBgColor   string `toml:"tag-bg"`
	HeadingColor string `toml:"heading"`
	BorderColor  string `toml:"border"`
}

type GitConfig struct {
	Autocommit bool `toml:"autocommit"`
	Push       bool `toml:"push"`
}

type Config struct {
	File      string      `toml:"file"`
	Editor    string      `toml:"editor"`
	ColorMode string      `toml:"color_mode"` // "light", "dark", or empty for auto-detect
	Colors    ColorScheme `toml:"colors"`
	Git       GitConfig   `toml:"git"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "suchi", "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		// Expand environment variables in config values
		cfg.File = expandEnv(cfg.File)
		cfg.Editor = expandEnv(cfg.Editor)
	}

	// Environment variables override the config file
	if file := os.Getenv("TODO_FILE"); file != "" {
		cfg.File = file
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		cfg.Editor = editor
	}
	if autocommit := os.Getenv("SUCHI_AUTOCOMMIT"); autocommit != "" {
		cfg.Git.Autocommit = autocommit == "true" || autocommit == "1"
	}

	// Set defaults
	if cfg.File == "" {
		cfg.File = filepath.Join(home, "notes", "todo.txt")
	}
	if cfg.Editor == "" {
		cfg.Editor = "vi"
	}

	// Initialize colors with defaults based on mode
	cfg.initializeColors()

	return cfg, nil
}

func expandEnv(s string) string {
	if s == "" {
		return s
	}
	// Expand a leading ~/ to the home directory
	if strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, s[2:])
		}
	}
	// Replace $HOME with actual home directory
	if strings.Contains(s, "$HOME") {
		home, _ := os.UserHomeDir()
		s = strings.ReplaceAll(s, "$HOME", home)
	}
	// Expand other environment variables
	return os.ExpandEnv(s)
}

// initializeColors sets up default colors based on color mode
// Colors can be overridden in the config file [colors] section
func (c *Config) initializeColors() {
	// Determine color mode: explicit config > environment > empty (auto-detect)
	colorMode := c.ColorMode
	if colorMode == "" {
		if envMode := os.Getenv("SUCHI_COLOR_MODE"); envMode != "" {
			colorMode = envMode
		}
	}

	// Light mode colors (better for light terminal themes)
	lightMode := ColorScheme{
		NumberColor:  "8",  // Bright black (faded)
		DateColor:    "4",  // Blue
		DateBgColor:  "7",  // Light gray background (visible with blue text)
		TagColor:     "15", // White text
		TagBgColor:   "5",  // Magenta background
		HeadingColor: "4",  // Blue
		BorderColor:  "8",  // Bright black
	}

	// Dark mode colors (better for dark terminal themes)
	darkMode := ColorScheme{
		NumberColor:  "8",  // Bright black (faded)
		DateColor:    "0",  // Black text
		DateBgColor:  "12", // Light blue background
		TagColor:     "0",  // Black text
		TagBgColor:   "14", // Light blue background
		HeadingColor: "2",  // Green
		BorderColor:  "8",  // Bright black
	}

	// Select default mode based on colorMode
	var defaults ColorScheme
	switch strings.ToLower(colorMode) {
	case "light":
		defaults = lightMode
	case "dark":
		defaults = darkMode
	default:
		// Auto-detect: use dark mode as default (most common)
		defaults = darkMode
	}

	// Apply defaults only if colors are not explicitly set
	if c.Colors.NumberColor == "" {
		c.Colors.NumberColor = defaults.NumberColor
	}
	if c.Colors.DateColor == "" {
		c.Colors.DateColor = defaults.DateColor
	}
	if c.Colors.DateBgColor == "" {
		c.Colors.DateBgColor = defaults.DateBgColor
	}
	if c.Colors.TagColor == "" {
		c.Colors.TagColor = defaults.TagColor
	}
	if c.Colors.TagBgColor == "" {
		c.Colors.TagBgColor = defaults.TagBgColor
	}
	if c.Colors.HeadingColor == "" {
		c.Colors.HeadingColor = defaults.HeadingColor
	}
	if c.Colors.BorderColor == "" {
		c.Colors.BorderColor = defaults.BorderColor
	}

	// Resolve all color names to ANSI values
	c.Colors.NumberColor = resolveColorValue(c.Colors.NumberColor)
	c.Colors.DateColor = resolveColorValue(c.Colors.DateColor)
	c.Colors.DateBgColor = resolveColorValue(c.Colors.DateBgColor)
	c.Colors.TagColor = resolveColorValue(c.Colors.TagColor)
	c.Colors.TagBgColor = resolveColorValue(c.Colors.TagBgColor)
	c.Colors.HeadingColor = resolveColorValue(c.Colors.HeadingColor)
	c.Colors.BorderColor = resolveColorValue(c.Colors.BorderColor)
}
