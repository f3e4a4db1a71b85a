package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/wobble/internal/config"
	"github.com/san-kum/wobble/internal/storage"
)

func newSceneCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	logger = zap.NewNop()
	configFile, preset = "", ""
	cmd := &cobra.Command{Use: "test"}
	addSceneFlags(cmd)
	cmd.Flags().IntVar(&ticks, "ticks", 120, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newSceneCmd(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IntervalMs != config.DefaultIntervalMs || cfg.Seed != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	file := config.DefaultConfig()
	file.IntervalMs = 70
	file.Seed = 3
	if err := config.Save(path, file); err != nil {
		t.Fatal(err)
	}

	cmd := newSceneCmd(t, "--config", path, "--seed", "9", "--behaviors", "bounce,spin-cw")
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IntervalMs != 70 {
		t.Errorf("file value lost: interval %d", cfg.IntervalMs)
	}
	if cfg.Seed != 9 {
		t.Errorf("flag did not override file: seed %d", cfg.Seed)
	}
	if len(cfg.Behaviors) != 2 {
		t.Errorf("behaviors flag not applied: %v", cfg.Behaviors)
	}
}

func TestLoadConfigPreset(t *testing.T) {
	cfg, err := loadConfig(newSceneCmd(t, "--preset", "orbits"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Layout.Count != 9 {
		t.Errorf("expected preset count 9, got %d", cfg.Layout.Count)
	}

	if _, err := loadConfig(newSceneCmd(t, "--preset", "nope")); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestRunTraceStoresTrace(t *testing.T) {
	dataDir = t.TempDir()
	cmd := newSceneCmd(t, "--ticks", "60", "--seed", "1")

	devnull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatal(err)
	}
	defer devnull.Close()
	stdout := os.Stdout
	os.Stdout = devnull
	err = runTrace(cmd, []string{"bounce"})
	os.Stdout = stdout
	if err != nil {
		t.Fatalf("trace: %v", err)
	}

	traces, err := storage.New(dataDir).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(traces) != 1 {
		t.Fatalf("expected 1 trace, got %d", len(traces))
	}
	if traces[0].Ticks != 60 || len(traces[0].Behaviors) != 1 {
		t.Errorf("unexpected metadata: %+v", traces[0])
	}
	for _, b := range traces[0].Behaviors {
		if b != "bounce" {
			t.Errorf("expected pinned bounce, got %s", b)
		}
	}
}

func TestRunTraceUnknownBehavior(t *testing.T) {
	dataDir = t.TempDir()
	if err := runTrace(newSceneCmd(t), []string{"teleport"}); err == nil {
		t.Error("expected error for unknown behavior")
	}
}
