package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wobble/internal/driver"
	"github.com/san-kum/wobble/internal/motion"
	"github.com/san-kum/wobble/internal/scene"
)

const (
	DefaultIntervalMs = 50
	DefaultFPS        = 30
	DefaultTheme      = "cyberpunk"
	DefaultCount      = 12
	DefaultWidth      = 72
	DefaultHeight     = 20
	DefaultAmplitude  = 0.25
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	IntervalMs int             `yaml:"interval_ms"`
	Motion     MotionConfig    `yaml:"motion"`
	Seed       int64           `yaml:"seed"`
	Behaviors  []string        `yaml:"behaviors,omitempty"`
	FPS        int             `yaml:"fps"`
	Theme      string          `yaml:"theme"`
	Layout     LayoutConfig    `yaml:"layout"`
	Elements   []ElementConfig `yaml:"elements,omitempty"`
}

type MotionConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Radius    float64 `yaml:"radius"`
	Step      float64 `yaml:"step"`
	Max       int     `yaml:"max"`
}

// LayoutConfig places Count sprites on a grid when Elements is empty.
type LayoutConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Count  int    `yaml:"count"`
	Glyphs string `yaml:"glyphs"`
}

type ElementConfig struct {
	Name  string  `yaml:"name,omitempty"`
	Glyph string  `yaml:"glyph"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		IntervalMs: DefaultIntervalMs,
		Motion: MotionConfig{
			Amplitude: DefaultAmplitude,
			Radius:    motion.DefaultRadius,
			Step:      motion.DefaultStep,
			Max:       motion.DefaultMax,
		},
		FPS:   DefaultFPS,
		Theme: DefaultTheme,
		Layout: LayoutConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Count:  DefaultCount,
			Glyphs: "*o+x@#",
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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

func (c *Config) Params() motion.Params {
	return motion.Params{
		Amplitude: c.Motion.Amplitude,
		Radius:    c.Motion.Radius,
		Step:      c.Motion.Step,
		Max:       c.Motion.Max,
	}
}

func (c *Config) Validate() error {
	if c.IntervalMs <= 0 {
		return fmt.Errorf("%w: interval_ms must be positive, got %d", ErrInvalidConfig, c.IntervalMs)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
		return fmt.Errorf("%w: layout %dx%d", ErrInvalidConfig, c.Layout.Width, c.Layout.Height)
	}
	if len(c.Elements) == 0 && c.Layout.Count <= 0 {
		return fmt.Errorf("%w: no elements and layout count %d", ErrInvalidConfig, c.Layout.Count)
	}
	for i, e := range c.Elements {
		if len([]rune(e.Glyph)) > 1 {
			return fmt.Errorf("%w: element %d glyph %q is more than one rune", ErrInvalidConfig, i, e.Glyph)
		}
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	reg := motion.NewRegistry()
	for _, b := range c.Behaviors {
		if !reg.Has(b) {
			return fmt.Errorf("%w: %w: %s", ErrInvalidConfig, motion.ErrUnknownBehavior, b)
		}
	}
	return nil
}

func (c *Config) DriverConfig() driver.Config {
	return driver.Config{
		Interval:  c.Interval(),
		Params:    c.Params(),
		Seed:      c.Seed,
		Behaviors: c.Behaviors,
	}
}

// SceneElements returns the configured sprites, or lays Count sprites out
// on an evenly spaced grid when none are listed.
func (c *Config) SceneElements() []scene.Element {
	if len(c.Elements) > 0 {
		out := make([]scene.Element, len(c.Elements))
		for i, e := range c.Elements {
			var glyph rune
			if r := []rune(e.Glyph); len(r) > 0 {
				glyph = r[0]
			}
			out[i] = scene.NewElement(e.Name, glyph, e.X, e.Y)
		}
		return out
	}

	n := c.Layout.Count
	glyphs := []rune(c.Layout.Glyphs)
	if len(glyphs) == 0 {
		glyphs = []rune{'*'}
	}
	cols := 1
	for cols*cols < n {
		cols++
	}
	rows := (n + cols - 1) / cols
	cw := float64(c.Layout.Width) / float64(cols)
	rh := float64(c.Layout.Height) / float64(rows)

	out := make([]scene.Element, n)
	for i := 0; i < n; i++ {
		col, row := i%cols, i/cols
		x := cw*float64(col) + cw/2
		y := rh*float64(row) + rh/2
		out[i] = scene.NewElement(fmt.Sprintf("sprite-%d", i), glyphs[i%len(glyphs)], x, y)
	}
	return out
}
