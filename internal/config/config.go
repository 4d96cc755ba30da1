package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rainfx/internal/logging"
	"github.com/san-kum/rainfx/internal/rain"
)

const (
	DefaultFPS     = 30
	DefaultTheme   = "night"
	DefaultListen  = "127.0.0.1:8787"
	DefaultDataDir = ".rainfx"
	maxFPS         = 120
)

type Config struct {
	Level    float64       `yaml:"level"`
	FPS      int           `yaml:"fps"`
	Theme    string        `yaml:"theme"`
	LogLevel string        `yaml:"log_level"`
	Listen   string        `yaml:"listen"`
	Timing   TimingConfig  `yaml:"timing"`
	Surface  SurfaceConfig `yaml:"surface"`
}

type TimingConfig struct {
	PulseDuration float64 `yaml:"pulse_duration"`
	HoldDuration  float64 `yaml:"hold_duration"`
	DecreaseBias  float64 `yaml:"decrease_bias"`
}

// SurfaceConfig sizes the headless surface used by trace runs.
type SurfaceConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	PixelRatio float64 `yaml:"pixel_ratio"`
}

func DefaultConfig() *Config {
	return &Config{
		Level:    rain.DefaultLevel,
		FPS:      DefaultFPS,
		Theme:    DefaultTheme,
		LogLevel: string(logging.LevelInfo),
		Listen:   DefaultListen,
		Timing: TimingConfig{
			PulseDuration: rain.DefaultPulseDuration,
			HoldDuration:  rain.DefaultHoldDuration,
			DecreaseBias:  rain.DefaultDecreaseBias,
		},
		Surface: SurfaceConfig{
			Width:      1280,
			Height:     720,
			PixelRatio: 1,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.FPS <= 0 || c.FPS > maxFPS {
		return fmt.Errorf("fps must be in 1..%d, got %d", maxFPS, c.FPS)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("surface must have positive size, got %.0fx%.0f", c.Surface.Width, c.Surface.Height)
	}
	return nil
}

func (c *Config) Params() rain.Params {
	return rain.Params{
		DefaultLevel:  c.Level,
		PulseDuration: c.Timing.PulseDuration,
		HoldDuration:  c.Timing.HoldDuration,
		DecreaseBias:  c.Timing.DecreaseBias,
	}
}

func (c *Config) Rect() rain.Rect {
	ratio := c.Surface.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	return rain.Rect{Width: c.Surface.Width, Height: c.Surface.Height, PixelRatio: ratio}
}
