package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/wobble/internal/motion"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Interval() != 50*time.Millisecond {
		t.Errorf("expected 50ms interval, got %v", cfg.Interval())
	}
	if cfg.Motion.Max != 30 {
		t.Errorf("expected max 30, got %d", cfg.Motion.Max)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Behaviors = []string{"bounce", "spin-cw"}
	cfg.Elements = []ElementConfig{{Name: "a", Glyph: "o", X: 3, Y: 4}}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Seed != 99 || len(loaded.Behaviors) != 2 || loaded.Elements[0].Name != "a" {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("interval_ms: 25\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IntervalMs != 25 {
		t.Errorf("expected 25, got %d", cfg.IntervalMs)
	}
	if cfg.Motion.Radius != motion.DefaultRadius {
		t.Errorf("expected default radius, got %v", cfg.Motion.Radius)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, body string
	}{
		{"zero interval", "interval_ms: 0\n"},
		{"unknown behavior", "behaviors: [teleport]\n"},
		{"bad step", "motion: {step: 0}\n"},
		{"long glyph", "elements: [{glyph: ab}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg := GetPreset("orbits")
	cfg.Behaviors[0] = "bounce"
	if Presets["orbits"].Behaviors[0] != "orbit-cw" {
		t.Error("GetPreset returned shared behaviors slice")
	}
}

func TestSceneElementsLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout = LayoutConfig{Width: 40, Height: 20, Count: 5, Glyphs: "ab"}

	els := cfg.SceneElements()
	if len(els) != 5 {
		t.Fatalf("expected 5 elements, got %d", len(els))
	}
	for i, e := range els {
		if e.X < 0 || e.X > 40 || e.Y < 0 || e.Y > 20 {
			t.Errorf("element %d outside layout: (%v,%v)", i, e.X, e.Y)
		}
	}
	if els[0].Glyph != 'a' || els[1].Glyph != 'b' || els[2].Glyph != 'a' {
		t.Errorf("glyphs not cycled: %q %q %q", els[0].Glyph, els[1].Glyph, els[2].Glyph)
	}
}

func TestSceneElementsExplicit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Elements = []ElementConfig{{Name: "sun", Glyph: "@", X: 1, Y: 2}, {Glyph: ""}}

	els := cfg.SceneElements()
	if len(els) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(els))
	}
	if els[0].ID != "sun" || els[0].Glyph != '@' {
		t.Errorf("unexpected first element: %+v", els[0])
	}
	if els[1].ID == "" || els[1].Glyph != '*' {
		t.Errorf("defaults not applied: %+v", els[1])
	}
}

func TestDriverConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IntervalMs = 10
	cfg.Seed = 4
	dc := cfg.DriverConfig()
	if dc.Interval != 10*time.Millisecond || dc.Seed != 4 {
		t.Errorf("unexpected driver config: %+v", dc)
	}
	if err := dc.Validate(); err != nil {
		t.Errorf("driver config invalid: %v", err)
	}
}
