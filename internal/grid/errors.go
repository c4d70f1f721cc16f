package grid

import (
	"errors"
	"fmt"
)

// Domain errors for grid construction and access.
var (
	// ErrUnknownCell indicates an input character with no cell mapping.
	ErrUnknownCell = errors.New("grid: unknown cell character")

	// ErrIrregularShape indicates rows of differing length.
	ErrIrregularShape = errors.New("grid: rows have differing lengths")

	// ErrEmptyInput indicates there were no rows, or only empty rows.
	ErrEmptyInput = errors.New("grid: empty input")

	// ErrDimensions indicates a dimension count or extent outside the supported range.
	ErrDimensions = errors.New("grid: unsupported dimensions")

	// ErrOutOfBounds indicates a write to a position outside the grid.
	ErrOutOfBounds = errors.New("grid: position out of bounds")
)

// ParseError reports the offending character and where it was found.
// Row and Col are zero-based.
type ParseError struct {
	Row  int
	Col  int
	Char rune
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("grid: unknown cell %q at row %d, column %d", e.Char, e.Row+1, e.Col+1)
}

func (e *ParseError) Unwrap() error {
	return ErrUnknownCell
}

// ShapeError reports the first row whose length disagrees with the first row.
type ShapeError struct {
	Row  int
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("grid: row %d has %d cells, want %d", e.Row+1, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrIrregularShape
}
