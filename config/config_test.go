package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Window.Width != DefaultWidth || cfg.Window.Height != DefaultHeight {
		t.Errorf("expected %dx%d window, got %dx%d", DefaultWidth, DefaultHeight, cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Effect.BurstCount != 20 {
		t.Errorf("expected burst count 20, got %d", cfg.Effect.BurstCount)
	}
	if cfg.Effect.ParticleLife != 60 {
		t.Errorf("expected particle life 60, got %d", cfg.Effect.ParticleLife)
	}
	if cfg.Effect.ShrinkFactor != 0.92 {
		t.Errorf("expected shrink factor 0.92, got %v", cfg.Effect.ShrinkFactor)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glow.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Window.Fullscreen = true
	cfg.Effect.Gravity = 0.35

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Seed)
	}
	if !loaded.Window.Fullscreen {
		t.Error("expected fullscreen to survive round trip")
	}
	if loaded.Effect.Gravity != 0.35 {
		t.Errorf("expected gravity 0.35, got %v", loaded.Effect.Gravity)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("effect:\n  burst_count: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Effect.BurstCount != 8 {
		t.Errorf("expected burst count 8, got %d", cfg.Effect.BurstCount)
	}
	if cfg.Effect.ParticleLife != 60 {
		t.Errorf("expected default particle life 60, got %d", cfg.Effect.ParticleLife)
	}
	if cfg.Window.Title != DefaultTitle {
		t.Errorf("expected default title, got %q", cfg.Window.Title)
	}
}

func TestLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := Load(path)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected error to name %s, got %q", path, err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("effect:\n  shrink_factor: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"zero base size", func(c *Config) { c.Effect.BaseGlowSize = 0 }},
		{"max below base", func(c *Config) { c.Effect.MaxGlowSize = 10 }},
		{"shrink of one", func(c *Config) { c.Effect.ShrinkFactor = 1 }},
		{"zero min size", func(c *Config) { c.Effect.MinGlowSize = 0 }},
		{"empty speed range", func(c *Config) { c.Effect.BurstSpeedMax = 3 }},
		{"zero life", func(c *Config) { c.Effect.ParticleLife = 0 }},
		{"fade alpha above one", func(c *Config) { c.Effect.Fade.A = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}
