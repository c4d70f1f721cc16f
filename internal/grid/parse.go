package grid

import "strings"

// ParseRows maps every character of every line through parse. The rows must be
// rectangular. Trailing blank lines are ignored and a trailing carriage return
// is stripped from each line. No rows are returned on error.
func ParseRows[C comparable](lines []string, parse func(rune) (C, error)) ([][]C, error) {
	end := len(lines)
	for end > 0 && strings.TrimRight(lines[end-1], "\r") == "" {
		end--
	}
	if end == 0 {
		return nil, ErrEmptyInput
	}

	rows := make([][]C, 0, end)
	width := -1
	for y, line := range lines[:end] {
		line = strings.TrimRight(line, "\r")
		row := make([]C, 0, len(line))
		col := 0
		for _, ch := range line {
			c, err := parse(ch)
			if err != nil {
				return nil, &ParseError{Row: y, Col: col, Char: ch}
			}
			row = append(row, c)
			col++
		}
		if width == -1 {
			width = len(row)
		}
		if len(row) != width {
			return nil, &ShapeError{Row: y, Want: width, Got: len(row)}
		}
		rows = append(rows, row)
	}
	if width == 0 {
		return nil, ErrEmptyInput
	}
	return rows, nil
}
