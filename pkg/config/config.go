// Package config loads cutstack configuration from a TOML file.
//
// Configuration lives at ~/.config/cutstack/config.toml (XDG-aware) and
// provides defaults for layout computation, rendering, and the HTTP server.
// Every value can be overridden by CLI flags; a missing file means defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/cutstack/cutstack/pkg/imposition"
)

// appName is the directory name under the XDG config root.
const appName = "cutstack"

// Config is the root configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig controls grid selection.
type LayoutConfig struct {
	// TargetRatio is the rows/columns aspect ratio used to break waste ties
	// in the grid search. The default suits A-series portrait sheets; set a
	// value below 1 for landscape stock.
	TargetRatio float64 `toml:"target_ratio"`

	// PagesPerSide is the default N-up value when none is given.
	PagesPerSide int `toml:"pages_per_side"`
}

// RenderConfig controls artifact rendering defaults.
type RenderConfig struct {
	Formats     []string `toml:"formats"`
	CutLines    bool     `toml:"cut_lines"`
	PageNumbers bool     `toml:"page_numbers"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			TargetRatio:  imposition.DefaultTargetRatio,
			PagesPerSide: 2,
		},
		Render: RenderConfig{
			Formats:     []string{"svg"},
			CutLines:    true,
			PageNumbers: true,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the configuration file at path, layering it over the defaults.
// A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Layout.TargetRatio <= 0 {
		cfg.Layout.TargetRatio = imposition.DefaultTargetRatio
	}
	if cfg.Layout.PagesPerSide <= 0 {
		cfg.Layout.PagesPerSide = 2
	}
	return cfg, nil
}

// LoadDefault loads the configuration from the standard path.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return Load(path)
}

// Path returns the config file path using the XDG standard
// (~/.config/cutstack/config.toml).
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
