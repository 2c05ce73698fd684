package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("missing config should report exists=false")
	}
	if cfg.Segmenter.MaxChars != 60 {
		t.Errorf("default max_chars = %d, want 60", cfg.Segmenter.MaxChars)
	}
	if cfg.Style.Position != "bottom" {
		t.Errorf("default position = %q, want bottom", cfg.Style.Position)
	}
	if !filepath.IsAbs(cfg.Paths.StagingDir) {
		t.Errorf("staging dir not expanded: %q", cfg.Paths.StagingDir)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[segmenter]
max_chars = 42

[style]
position = "TOP"
text_color = "#AABBCCDD"
font_family = "fonts/custom.ttf"

[recognizer]
model = "large-v3"
language = "ES"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatal("expected config file to be found")
	}
	if cfg.Segmenter.MaxChars != 42 {
		t.Errorf("max_chars = %d, want 42", cfg.Segmenter.MaxChars)
	}
	if cfg.Style.Position != "top" {
		t.Errorf("position = %q, want normalized top", cfg.Style.Position)
	}
	if cfg.Recognizer.Language != "es" {
		t.Errorf("language = %q, want normalized es", cfg.Recognizer.Language)
	}
	if cfg.Recognizer.Model != "large-v3" {
		t.Errorf("model = %q, want large-v3", cfg.Recognizer.Model)
	}
	if cfg.Style.FontFamily == "" || !filepath.IsAbs(cfg.Style.FontFamily) {
		t.Errorf("font_family = %q, want absolute expanded path", cfg.Style.FontFamily)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero max chars", func(c *Config) { c.Segmenter.MaxChars = 0 }, "max_chars"},
		{"opacity out of range", func(c *Config) { c.Style.BackgroundOpacity = 1.5 }, "background_opacity"},
		{"bad position", func(c *Config) { c.Style.Position = "middle" }, "position"},
		{"bad color", func(c *Config) { c.Style.TextColor = "white" }, "hex color"},
		{"empty model", func(c *Config) { c.Recognizer.Model = "" }, "model"},
		{"bad log format", func(c *Config) { c.Logging.Format = "yaml" }, "format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample config should exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := ExpandPath("~/captions")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "captions") {
		t.Errorf("ExpandPath = %q, want under %q", got, home)
	}
}
