package rules

import (
	"fmt"

	"github.com/san-kum/cellgrid/internal/grid"
)

// Seat is a cell of the seating automaton.
type Seat uint8

const (
	EmptySeat Seat = iota
	OccupiedSeat
	Floor
)

// ParseSeat maps 'L', '#' and '.' to seats.
func ParseSeat(r rune) (Seat, error) {
	switch r {
	case 'L':
		return EmptySeat, nil
	case '#':
		return OccupiedSeat, nil
	case '.':
		return Floor, nil
	}
	return 0, fmt.Errorf("%w: %q", grid.ErrUnknownCell, r)
}

// Glyph is the input character for s.
func (s Seat) Glyph() rune {
	switch s {
	case EmptySeat:
		return 'L'
	case OccupiedSeat:
		return '#'
	case Floor:
		return '.'
	}
	return '?'
}

func (s Seat) String() string {
	switch s {
	case EmptySeat:
		return "empty"
	case OccupiedSeat:
		return "occupied"
	case Floor:
		return "floor"
	}
	return fmt.Sprintf("Seat(%d)", uint8(s))
}

// IsFloor reports whether s is floor, which the visible policy looks through.
func IsFloor(s Seat) bool { return s == Floor }

// Cube is a cell of the life automaton. The zero value is Inactive.
type Cube uint8

const (
	Inactive Cube = iota
	Active
)

// ParseCube maps '#' and '.' to cubes.
func ParseCube(r rune) (Cube, error) {
	switch r {
	case '#':
		return Active, nil
	case '.':
		return Inactive, nil
	}
	return 0, fmt.Errorf("%w: %q", grid.ErrUnknownCell, r)
}

// Glyph is the input character for c.
func (c Cube) Glyph() rune {
	if c == Active {
		return '#'
	}
	return '.'
}

func (c Cube) String() string {
	switch c {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	}
	return fmt.Sprintf("Cube(%d)", uint8(c))
}
