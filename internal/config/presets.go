package config

var Presets = map[string]*Config{
	"calm": {
		IntervalMs: 80, FPS: 30, Theme: "ocean",
		Motion: MotionConfig{Amplitude: 0.2, Radius: 3, Step: 2, Max: 30},
		Layout: LayoutConfig{Width: 72, Height: 20, Count: 6, Glyphs: "o"},
	},
	"busy": {
		IntervalMs: 20, FPS: 60, Theme: "cyberpunk",
		Motion: MotionConfig{Amplitude: 0.3, Radius: 5, Step: 6, Max: 30},
		Layout: LayoutConfig{Width: 96, Height: 28, Count: 40, Glyphs: "*o+x@#%"},
	},
	"orbits": {
		IntervalMs: 40, FPS: 30, Theme: "retro",
		Motion:    MotionConfig{Amplitude: 0.25, Radius: 7, Step: 3, Max: 30},
		Behaviors: []string{"orbit-cw", "orbit-ccw", "orbit-cw-mirrored", "orbit-ccw-mirrored"},
		Layout:    LayoutConfig{Width: 80, Height: 24, Count: 9, Glyphs: "@"},
	},
	"bounce": {
		IntervalMs: 30, FPS: 30, Theme: "minimal",
		Motion:    MotionConfig{Amplitude: 0.25, Radius: 6, Step: 3, Max: 30},
		Behaviors: []string{"bounce"},
		Layout:    LayoutConfig{Width: 72, Height: 20, Count: 8, Glyphs: "o"},
	},
}

// GetPreset returns a copy so callers can apply flag overrides.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Behaviors = append([]string(nil), p.Behaviors...)
	cfg.Elements = append([]ElementConfig(nil), p.Elements...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
