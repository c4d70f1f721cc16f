// Package rules defines the cell types and transition functions of the two
// automaton families: seating and life.
package rules

import "github.com/san-kum/cellgrid/internal/neighbor"

// Rule maps a cell and its count of active neighbors to the next cell.
type Rule[C comparable] interface {
	// Next returns the next cell and whether it differs from cur.
	Next(cur C, active int) (C, bool)
	// Active is the cell value counted among neighbors and in the final tally.
	Active() C
	// Background fills cells created by growth.
	Background() C
}

// Occupied seats tolerate this many occupied neighbors, minus one, before
// emptying.
const (
	AdjacentTolerance = 4
	VisibleTolerance  = 5
)

// SeatingRule seats people in empty seats with no occupied neighbors and
// empties seats with at least Tolerance occupied neighbors.
type SeatingRule struct {
	Tolerance int
}

// NewSeatingRule picks the tolerance that goes with the neighbor policy.
func NewSeatingRule(p neighbor.Policy) SeatingRule {
	if p == neighbor.Visible {
		return SeatingRule{Tolerance: VisibleTolerance}
	}
	return SeatingRule{Tolerance: AdjacentTolerance}
}

func (r SeatingRule) Next(cur Seat, active int) (Seat, bool) {
	switch {
	case cur == EmptySeat && active == 0:
		return OccupiedSeat, true
	case cur == OccupiedSeat && active >= r.Tolerance:
		return EmptySeat, true
	}
	return cur, false
}

func (SeatingRule) Active() Seat     { return OccupiedSeat }
func (SeatingRule) Background() Seat { return Floor }

// LifeRule is the B3/S23 rule.
type LifeRule struct{}

func (LifeRule) Next(cur Cube, active int) (Cube, bool) {
	switch {
	case cur == Active && (active < 2 || active > 3):
		return Inactive, true
	case cur == Inactive && active == 3:
		return Active, true
	}
	return cur, false
}

func (LifeRule) Active() Cube     { return Active }
func (LifeRule) Background() Cube { return Inactive }
