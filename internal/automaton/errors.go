package automaton

import (
	"errors"
	"fmt"
)

// Domain errors for simulation setup and runs.
var (
	// ErrNilGrid indicates a simulator built without an initial grid.
	ErrNilGrid = errors.New("automaton: nil grid")

	// ErrNilRule indicates a simulator built without a transition rule.
	ErrNilRule = errors.New("automaton: nil rule")

	// ErrMissingFloor indicates the visible policy without a floor predicate.
	ErrMissingFloor = errors.New("automaton: visible policy needs a floor predicate")

	// ErrInvalidConfig indicates a configuration that cannot terminate sensibly.
	ErrInvalidConfig = errors.New("automaton: invalid config")

	// ErrNoConvergence indicates a fixed-point run exceeded its generation limit.
	ErrNoConvergence = errors.New("automaton: no fixed point within generation limit")
)

// GenerationError wraps an error with the generation it occurred at.
type GenerationError struct {
	Generation int
	Wrapped    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %d: %v", e.Generation, e.Wrapped)
}

func (e *GenerationError) Unwrap() error {
	return e.Wrapped
}
