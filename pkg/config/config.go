// Package config loads placetree settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DirName is the per-project directory holding config.yaml and view state.
const DirName = ".placetree"

// FileName is the config file name inside DirName or the user config dir.
const FileName = "config.yaml"

// Files the TUI writes into the state dir. Both are per-user and never
// belong in version control.
const (
	TreeStateFile = "tree-state.json"
	ReportFile    = "placetree-selection.md"
)

// Theme modes accepted in Config.Theme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config holds user-tunable settings.
type Config struct {
	// Theme is "auto", "dark" or "light".
	Theme string `yaml:"theme,omitempty" json:"theme,omitempty"`

	// StateDir is where tree-state.json is kept. Empty disables persistence.
	StateDir string `yaml:"state_dir" json:"state_dir"`

	// ExpandNewParents expands a leaf when a place is added under it.
	ExpandNewParents bool `yaml:"expand_new_parents" json:"expand_new_parents"`

	// ExpandDepth expands rows shallower than this depth on first display.
	ExpandDepth int `yaml:"expand_depth" json:"expand_depth"`

	// ShowDetails opens the selection pane on start.
	ShowDetails bool `yaml:"show_details,omitempty" json:"show_details,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Theme:            ThemeAuto,
		StateDir:         DirName,
		ExpandNewParents: true,
		ExpandDepth:      1,
	}
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("invalid theme %q (want auto, dark or light)", c.Theme)
	}
	if c.ExpandDepth < 0 {
		return fmt.Errorf("expand_depth must be >= 0, got %d", c.ExpandDepth)
	}
	return nil
}

// Load reads path on top of the defaults. A missing file yields the defaults
// and no error; a malformed one is an error naming the path.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Theme == "" {
		cfg.Theme = ThemeAuto
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// UserConfigPath returns $XDG_CONFIG_HOME/placetree/config.yaml, falling back
// to ~/.config/placetree/config.yaml.
func UserConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "placetree", FileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "placetree", FileName)
}
