package main

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/cellgrid/internal/automation"
	"github.com/san-kum/cellgrid/internal/config"
	"github.com/san-kum/cellgrid/internal/viz"
)

func TestReadInput_Presets(t *testing.T) {
	cfg := config.DefaultConfig()

	lines, source, err := readInput(cfg, "life", nil)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if source != "preset:glider" || len(lines) != 3 {
		t.Errorf("expected glider preset, got %s with %d lines", source, len(lines))
	}

	_, source, err = readInput(cfg, "seating", nil)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if source != "preset:sample" {
		t.Errorf("expected sample preset, got %s", source)
	}

	cfg.Preset = "nonexistent"
	if _, _, err := readInput(cfg, "life", nil); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestReadInput_FileCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("L.L\nLLL\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Input = path
	cache := make(map[string][]string)

	first, _, err := readInput(cfg, "seating", cache)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	second, source, err := readInput(cfg, "seating", cache)
	if err != nil {
		t.Fatalf("cached read failed: %v", err)
	}
	if source != path || len(first) != 2 || len(second) != 2 {
		t.Errorf("unexpected cached read: %v %v", first, second)
	}
}

func TestJoinInts(t *testing.T) {
	if got := joinInts([]int{15, 15, 13}, "x"); got != "15x15x13" {
		t.Errorf("expected 15x15x13, got %s", got)
	}
	if got := joinInts(nil, "x"); got != "" {
		t.Errorf("expected empty string, got %s", got)
	}
}

func TestWriteCountsSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.svg")
	if err := writeCountsSVG(path, []int{0, 71, 20, 51, 30, 37, 37}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "<path") {
		t.Errorf("expected an svg path, got %q", svg)
	}
	if !strings.Contains(svg, string(viz.CurrentTheme.Accent)) {
		t.Errorf("expected stroke %s in svg", viz.CurrentTheme.Accent)
	}

	if err := writeCountsSVG(filepath.Join(t.TempDir(), "short.svg"), []int{5}); err == nil {
		t.Error("expected error for a single generation")
	}
}

func TestScenarioResolver(t *testing.T) {
	resolve := scenarioResolver(config.DefaultConfig(), make(map[string][]string))

	lines, err := resolve(automation.ScenarioStep{Layout: "L.L\nLLL\n"}, "seating")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(lines) != 2 || lines[0] != "L.L" {
		t.Errorf("unexpected layout lines %v", lines)
	}

	lines, err = resolve(automation.ScenarioStep{Preset: "blinker"}, "life")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(lines) == 0 {
		t.Error("expected preset lines")
	}

	_, err = resolve(automation.ScenarioStep{Layout: strings.Repeat("L", 2*1024*1024)}, "seating")
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Errorf("expected bufio.ErrTooLong, got %v", err)
	}
}
