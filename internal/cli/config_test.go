package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	confDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(confDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `
[figure]
color = "steelblue"
width = 8
bins = 20

[cache]
dir = "/tmp/figcache"
`
	if err := os.WriteFile(filepath.Join(confDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := LoadFileConfig()
	if cfg.Figure.Color != "steelblue" {
		t.Errorf("color = %q", cfg.Figure.Color)
	}
	if cfg.Figure.Width != 8 {
		t.Errorf("width = %d", cfg.Figure.Width)
	}
	if cfg.Figure.Bins != 20 {
		t.Errorf("bins = %d", cfg.Figure.Bins)
	}
	if cfg.Figure.Height != 0 {
		t.Errorf("unset height should stay zero, got %d", cfg.Figure.Height)
	}
	if cfg.Cache.Dir != "/tmp/figcache" {
		t.Errorf("cache dir = %q", cfg.Cache.Dir)
	}
}

func TestLoadFileConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := LoadFileConfig()
	if cfg.Figure.Color != "" || cfg.Cache.Dir != "" {
		t.Errorf("missing file should yield zero config, got %+v", cfg)
	}
}

func TestLoadFileConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	confDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(confDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(confDir, "config.toml"), []byte("[figure\ncolor="), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := LoadFileConfig()
	if cfg == nil {
		t.Fatal("malformed config should yield zero config, not nil")
	}
	if cfg.Figure.Color != "" {
		t.Errorf("malformed config should be discarded, got %+v", cfg)
	}
}

func TestCacheDirPrefersConfig(t *testing.T) {
	c := &CLI{Config: &FileConfig{Cache: CacheConfig{Dir: "/custom/cache"}}}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/custom/cache" {
		t.Errorf("dir = %q", dir)
	}
}

func TestDefaultCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
	dir, err := defaultCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/xdg/cache", appName) {
		t.Errorf("dir = %q", dir)
	}
}
