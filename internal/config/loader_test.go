package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultBlockslideConfig() {
		t.Errorf("embedded defaults differ from hardcoded:\n%+v\n%+v", cfg, DefaultBlockslideConfig())
	}
}

func TestLoadBlockslideCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "history:\n  depth: 3\nengine:\n  poison_scratch: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlockslide(path)
	if err != nil {
		t.Fatalf("LoadBlockslide failed: %v", err)
	}
	if cfg.History.Depth != 3 || !cfg.Engine.PoisonScratch {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Board.Width != 14 || cfg.Render.CellWidth != 2 {
		t.Errorf("missing keys should keep defaults: %+v", cfg)
	}
}

func TestLoadBlockslideCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("history:\n  depth: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml")},
		{"invalid values", bad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadBlockslide(tt.path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BlockslideConfig)
		errSub string
	}{
		{"defaults", func(*BlockslideConfig) {}, ""},
		{"zero width", func(c *BlockslideConfig) { c.Board.Width = 0 }, "board size"},
		{"huge height", func(c *BlockslideConfig) { c.Board.Height = 256 }, "board size"},
		{"no history", func(c *BlockslideConfig) { c.History.Depth = 0 }, "history depth"},
		{"wide cells", func(c *BlockslideConfig) { c.Render.CellWidth = 5 }, "cell width"},
		{"log level", func(c *BlockslideConfig) { c.Log.Level = "loud" }, "log level"},
		{"log level case", func(c *BlockslideConfig) { c.Log.Level = "DEBUG" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBlockslideConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errSub == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("expected error containing %q, got %v", tt.errSub, err)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/tmp/y.db"); got != "/tmp/y.db" {
		t.Errorf("absolute paths should be unchanged, got %q", got)
	}
}
