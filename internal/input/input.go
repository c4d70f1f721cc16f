// Package input reads puzzle text into lines for grid construction.
package input

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// ReadLines returns every line of r with trailing carriage returns removed.
// Trailing blank lines are dropped.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// ReadFile reads lines from path; "-" reads standard input.
func ReadFile(path string) ([]string, error) {
	if path == "-" {
		return ReadLines(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// SplitText splits an in-memory layout into lines.
func SplitText(text string) ([]string, error) {
	return ReadLines(strings.NewReader(text))
}
