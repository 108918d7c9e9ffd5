package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/MS8080/iconforge/internal/icon"
	"github.com/MS8080/iconforge/internal/palette"
	"github.com/MS8080/iconforge/internal/paths"
)

// DefaultPort is the default dashboard listen port.
const DefaultPort = 8418

// Options holds global settings parsed from the "config" key.
type Options struct {
	OutDir string `json:"out_dir,omitempty"` // prefix for style output directories
	Log    bool   `json:"log"`               // record renders in the history database
	Port   int    `json:"port,omitempty"`    // dashboard listen port
}

// StyleOverride adjusts one icon style on top of its registry defaults.
// Colors are hex strings like "#3a7bd5".
type StyleOverride struct {
	Dir           string `json:"dir,omitempty"`
	FileName      string `json:"file_name,omitempty"`
	Sizes         []int  `json:"sizes,omitempty"`
	GradientStart string `json:"gradient_start,omitempty"`
	GradientEnd   string `json:"gradient_end,omitempty"`
	PatternColor  string `json:"pattern_color,omitempty"`
}

// Config holds the top-level configuration: global options and per-style
// overrides.
type Config struct {
	Options Options                  `json:"config"`
	Styles  map[string]StyleOverride `json:"styles"`
}

func defaultOptions() Options {
	return Options{OutDir: ".", Log: true, Port: DefaultPort}
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{Options: defaultOptions()}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	c.Options = defaultOptions()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. iconforge-config.json next to the running binary
//  3. ~/.config/iconforge/iconforge-config.json
//
// Every style renders fine without a file, so when none exists the
// built-in defaults are returned instead of an error.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	// User config directory
	home, err := os.UserHomeDir()
	if err == nil {
		var p string
		if runtime.GOOS == "windows" {
			p = filepath.Join(home, "AppData", "Roaming", paths.AppDirName, paths.ConfigFileName)
		} else {
			p = filepath.Join(home, ".config", paths.AppDirName, paths.ConfigFileName)
		}
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	return Default(), nil
}

// Resolve applies the configured override for the named style on top of
// its registry defaults. Styles without an override pass through
// unchanged.
func Resolve(cfg Config, name string) (icon.Style, error) {
	s, ok := icon.Styles[name]
	if !ok {
		return icon.Style{}, fmt.Errorf("unknown style %q (have: %s)", name, strings.Join(icon.Names(), ", "))
	}
	ov, ok := cfg.Styles[name]
	if !ok {
		return s, nil
	}
	if ov.Dir != "" {
		s.Dir = ov.Dir
	}
	if ov.FileName != "" {
		s.FileName = ov.FileName
	}
	if len(ov.Sizes) > 0 {
		s.Sizes = ov.Sizes
	}
	if ov.GradientStart != "" {
		c, err := palette.ParseHex(ov.GradientStart)
		if err != nil {
			return icon.Style{}, fmt.Errorf("style %q gradient_start: %w", name, err)
		}
		s.Palette.GradientStart = c
	}
	if ov.GradientEnd != "" {
		c, err := palette.ParseHex(ov.GradientEnd)
		if err != nil {
			return icon.Style{}, fmt.Errorf("style %q gradient_end: %w", name, err)
		}
		s.Palette.GradientEnd = c
	}
	if ov.PatternColor != "" {
		c, err := palette.ParseHex(ov.PatternColor)
		if err != nil {
			return icon.Style{}, fmt.Errorf("style %q pattern_color: %w", name, err)
		}
		s.Palette.Pattern = c
	}
	return s, nil
}

// OutDirFor joins the global output prefix with the style's directory.
func OutDirFor(cfg Config, s icon.Style) string {
	if cfg.Options.OutDir == "" || cfg.Options.OutDir == "." {
		return s.Dir
	}
	return filepath.Join(cfg.Options.OutDir, s.Dir)
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
