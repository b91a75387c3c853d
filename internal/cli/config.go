package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig is the optional on-disk configuration, read from
// ~/.config/distviz/config.toml (or $XDG_CONFIG_HOME/distviz/config.toml).
//
// Example:
//
//	[figure]
//	color = "forestgreen"
//	width = 6
//	height = 4
//	bins = 30
//
//	[cache]
//	dir = "/var/cache/distviz"
//	redis_url = "redis://localhost:6379/0"
//	disabled = false
type FileConfig struct {
	Figure FigureConfig `toml:"figure"`
	Cache  CacheConfig  `toml:"cache"`
}

// FigureConfig holds default figure styling. Zero values fall back to the
// built-in defaults, and command-line flags override both.
type FigureConfig struct {
	Color  string `toml:"color"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Bins   int    `toml:"bins"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Disabled bool   `toml:"disabled"`
}

// configPath returns the configuration file location.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadFileConfig reads the configuration file. A missing or unreadable
// file yields the zero config; a malformed file is reported on stderr via
// the default logger but does not abort the command.
func LoadFileConfig() *FileConfig {
	cfg := &FileConfig{}
	path, err := configPath()
	if err != nil {
		return cfg
	}
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		printWarning("ignoring malformed config %s: %v", path, err)
		return &FileConfig{}
	}
	return cfg
}
