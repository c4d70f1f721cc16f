package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Variant != "seating-adjacent" {
		t.Errorf("expected variant seating-adjacent, got %s", cfg.Variant)
	}
	if cfg.MaxGenerations <= 0 {
		t.Error("max generations should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellgrid.yaml")

	cfg := DefaultConfig()
	cfg.Variant = "life-4d"
	cfg.Generations = 3
	cfg.Render = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Variant != "life-4d" || loaded.Generations != 3 || !loaded.Render {
		t.Errorf("unexpected config after round trip: %+v", loaded)
	}
}

func TestLoad_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := writeFile(path, "variant: life-3d\n"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Variant != "life-3d" {
		t.Errorf("expected life-3d, got %s", cfg.Variant)
	}
	if cfg.DataDir != DefaultDataDir || cfg.MaxGenerations != DefaultMaxGenerations {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative generations", "generations: -1\n"},
		{"negative limit", "max_generations: -5\n"},
		{"bad log level", "log_level: chatty\n"},
		{"not yaml", "variant: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := writeFile(path, tt.body); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"

	log, err := cfg.NewLogger()
	if err != nil {
		t.Fatalf("logger failed: %v", err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", log.GetLevel())
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("life", "glider")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	lines := p.Lines()
	if len(lines) != 3 || lines[0] != ".#." {
		t.Errorf("unexpected glider lines: %q", lines)
	}

	sample := GetPreset("seating", "sample").Lines()
	if len(sample) != 10 || len(sample[0]) != 10 {
		t.Errorf("expected 10x10 sample, got %d rows", len(sample))
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("seating", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "sample") != nil {
		t.Error("expected nil for nonexistent family")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("life")
	if len(presets) != 3 || presets[0] != "blinker" {
		t.Errorf("unexpected life presets: %v", presets)
	}

	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent family")
	}
}

func TestDefaultPresetFor(t *testing.T) {
	if DefaultPresetFor("life") != "glider" || DefaultPresetFor("seating") != "sample" {
		t.Error("unexpected default presets")
	}
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0644)
}
