package input

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"unix newlines", "L.L\n#.#\n", []string{"L.L", "#.#"}},
		{"windows newlines", "L.L\r\n#.#\r\n", []string{"L.L", "#.#"}},
		{"no trailing newline", "L.L\n#.#", []string{"L.L", "#.#"}},
		{"trailing blank lines", "L.L\n\n\n", []string{"L.L"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("read failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReadLines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(".#.\n..#\n###\n"), 0644); err != nil {
		t.Fatal(err)
	}

	lines, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(lines) != 3 || lines[2] != "###" {
		t.Errorf("unexpected lines: %v", lines)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSplitText(t *testing.T) {
	got, err := SplitText(".#.\n..#\n###\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{".#.", "..#", "###"}, got); diff != "" {
		t.Errorf("SplitText mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitText_LineTooLong(t *testing.T) {
	_, err := SplitText(strings.Repeat("#", 2*1024*1024) + "\n")
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Errorf("expected bufio.ErrTooLong, got %v", err)
	}
}
