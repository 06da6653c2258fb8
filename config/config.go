package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const (
	DefaultWidth  = 1024
	DefaultHeight = 768
	DefaultTitle  = "Move & Click"
)

// Config holds window and effect settings
type Config struct {
	Window WindowConfig `yaml:"window"`
	Effect EffectConfig `yaml:"effect"`

	// Seed drives burst speeds; 0 picks a time-based seed
	Seed int64 `yaml:"seed"`

	// ProfileDir receives CPU profiles on frame rate drops; empty disables capture
	ProfileDir string `yaml:"profile_dir"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	ShowCursor bool   `yaml:"show_cursor"`
}

// EffectConfig holds the trail and burst tunables
type EffectConfig struct {
	BaseGlowSize   float64 `yaml:"base_glow_size"`
	VelocityGain   float64 `yaml:"velocity_gain"`
	MaxGlowSize    float64 `yaml:"max_glow_size"`
	HueStep        int     `yaml:"hue_step"`
	ShrinkFactor   float64 `yaml:"shrink_factor"`
	MinGlowSize    float64 `yaml:"min_glow_size"`
	BurstCount     int     `yaml:"burst_count"`
	BurstSpeedMin  float64 `yaml:"burst_speed_min"`
	BurstSpeedMax  float64 `yaml:"burst_speed_max"`
	ParticleLife   int     `yaml:"particle_life"`
	Gravity        float64 `yaml:"gravity"`
	ParticleRadius float64 `yaml:"particle_radius"`
	Fade           RGBA    `yaml:"fade"`
}

// RGBA is a straight-alpha color with alpha in [0,1]
type RGBA struct {
	R uint8   `yaml:"r"`
	G uint8   `yaml:"g"`
	B uint8   `yaml:"b"`
	A float64 `yaml:"a"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
			VSync:  true,
		},
		Effect: DefaultEffect(),
	}
}

// DefaultEffect returns the stock trail and burst behaviour.
func DefaultEffect() EffectConfig {
	return EffectConfig{
		BaseGlowSize:   20,
		VelocityGain:   0.5,
		MaxGlowSize:    60,
		HueStep:        2,
		ShrinkFactor:   0.92,
		MinGlowSize:    0.5,
		BurstCount:     20,
		BurstSpeedMin:  3,
		BurstSpeedMax:  7,
		ParticleLife:   60,
		Gravity:        0.2,
		ParticleRadius: 3,
		Fade:           RGBA{R: 10, G: 10, B: 20, A: 0.15},
	}
}

// Load reads a YAML file on top of the defaults, so partial files are fine.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return c.Effect.Validate()
}

func (e EffectConfig) Validate() error {
	switch {
	case e.BaseGlowSize <= 0:
		return fmt.Errorf("%w: base_glow_size must be positive, got %v", ErrInvalid, e.BaseGlowSize)
	case e.MaxGlowSize < e.BaseGlowSize:
		return fmt.Errorf("%w: max_glow_size %v below base_glow_size %v", ErrInvalid, e.MaxGlowSize, e.BaseGlowSize)
	case e.VelocityGain < 0:
		return fmt.Errorf("%w: velocity_gain must not be negative, got %v", ErrInvalid, e.VelocityGain)
	case e.ShrinkFactor <= 0 || e.ShrinkFactor >= 1:
		return fmt.Errorf("%w: shrink_factor must be in (0,1), got %v", ErrInvalid, e.ShrinkFactor)
	case e.MinGlowSize <= 0:
		return fmt.Errorf("%w: min_glow_size must be positive, got %v", ErrInvalid, e.MinGlowSize)
	case e.HueStep < 0:
		return fmt.Errorf("%w: hue_step must not be negative, got %d", ErrInvalid, e.HueStep)
	case e.BurstCount < 0:
		return fmt.Errorf("%w: burst_count must not be negative, got %d", ErrInvalid, e.BurstCount)
	case e.BurstSpeedMin < 0 || e.BurstSpeedMax <= e.BurstSpeedMin:
		return fmt.Errorf("%w: burst speed range [%v,%v) is empty", ErrInvalid, e.BurstSpeedMin, e.BurstSpeedMax)
	case e.ParticleLife <= 0:
		return fmt.Errorf("%w: particle_life must be positive, got %d", ErrInvalid, e.ParticleLife)
	case e.ParticleRadius <= 0:
		return fmt.Errorf("%w: particle_radius must be positive, got %v", ErrInvalid, e.ParticleRadius)
	case e.Fade.A < 0 || e.Fade.A > 1:
		return fmt.Errorf("%w: fade alpha must be in [0,1], got %v", ErrInvalid, e.Fade.A)
	}
	return nil
}
