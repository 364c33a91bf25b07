package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rupor-github/gencfg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Layout.FontSize != 16 {
		t.Errorf("FontSize = %v, want 16", cfg.Layout.FontSize)
	}
	if cfg.Layout.Font.Source != FontSourceBuiltin {
		t.Errorf("Font.Source = %s, want builtin", cfg.Layout.Font.Source)
	}
	if cfg.Render.Format != RenderFormatPng {
		t.Errorf("Render.Format = %s, want png", cfg.Render.Format)
	}
	if cfg.Render.JPEGQuality < 40 || cfg.Render.JPEGQuality > 100 {
		t.Errorf("JPEGQuality = %d, should be between 40 and 100", cfg.Render.JPEGQuality)
	}
	if !strings.Contains(cfg.Render.OutputNameTemplate, "{{") {
		t.Errorf("output name template was expanded: %q", cfg.Render.OutputNameTemplate)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
layout:
  font_size: 24
  font:
    source: fixed
render:
  format: jpeg
  jpeg_quality_level: 85
  foreground: navy
editing:
  show_cursor: false
logging:
  console:
    level: debug
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Layout.FontSize != 24 {
		t.Errorf("FontSize = %v, want 24", cfg.Layout.FontSize)
	}
	if cfg.Layout.Font.Source != FontSourceFixed {
		t.Errorf("Font.Source = %s, want fixed", cfg.Layout.Font.Source)
	}
	if cfg.Render.Format != RenderFormatJpeg || cfg.Render.JPEGQuality != 85 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Editing.ShowCursor {
		t.Error("Expected ShowCursor to be false")
	}
	// values absent from file come from defaults
	if cfg.Render.Background != "white" || cfg.Layout.Font.DPI != 72 {
		t.Errorf("defaults lost: background %q, dpi %v", cfg.Render.Background, cfg.Layout.Font.DPI)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("console level = %q, want debug", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nlayout:\n  font_size: 1\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"bad version", "version: 2\n"},
		{"bad enum", "version: 1\nrender:\n  format: gif\n"},
		{"bad quality", "version: 1\nrender:\n  jpeg_quality_level: 10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error")
			}
		})
	}
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}
	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if _, err = unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Render.Format = RenderFormatJpeg

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "format: jpeg") {
		t.Errorf("enum not dumped by name:\n%s", data)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if diff := cmp.Diff(cfg, cfg2); diff != "" {
		t.Errorf("dump/load mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 99\n"), &Config{}, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got bare error: %v", err)
	}
}

func TestPalette(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	p, err := cfg.Palette()
	if err != nil {
		t.Fatalf("Palette() error = %v", err)
	}
	if p.Background != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("background = %v, want white", p.Background)
	}

	cfg.Render.Foreground = "no-such-color"
	cfg.Editing.Cursor = "#12"
	_, err = cfg.Palette()
	if err == nil {
		t.Fatal("Palette() accepted malformed colors")
	}
	for _, name := range []string{"render.foreground", "editing.cursor_color"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %s", err, name)
		}
	}
}

func TestRenderFormat(t *testing.T) {
	tests := []struct {
		in   string
		want RenderFormat
		ext  string
	}{
		{"png", RenderFormatPng, ".png"},
		{"jpeg", RenderFormatJpeg, ".jpg"},
	}
	for _, tt := range tests {
		got, err := ParseRenderFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseRenderFormat(%q) = %v, %v", tt.in, got, err)
		}
		if got.Ext() != tt.ext {
			t.Errorf("Ext() = %q, want %q", got.Ext(), tt.ext)
		}
	}
	if _, err := ParseRenderFormat("gif"); !errors.Is(err, ErrInvalidRenderFormat) {
		t.Errorf("ParseRenderFormat(gif) error = %v", err)
	}
	if diff := cmp.Diff([]string{"png", "jpeg"}, RenderFormatNames()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Error("Ext() should panic for invalid format")
		}
	}()
	RenderFormat(99).Ext()
}
