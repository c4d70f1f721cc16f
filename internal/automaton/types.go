package automaton

import (
	"fmt"
	"time"

	"github.com/san-kum/cellgrid/internal/grid"
	"github.com/san-kum/cellgrid/internal/neighbor"
)

const (
	// LifeGenerations is how many generations the life variant runs.
	LifeGenerations = 6

	// DefaultMaxGenerations bounds fixed-point runs that never settle.
	DefaultMaxGenerations = 10000
)

// Phase is the driver's state.
type Phase int

const (
	Running Phase = iota
	Converged
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Converged:
		return "converged"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

type terminationKind int

const (
	fixedGenerations terminationKind = iota
	fixedPoint
)

// Termination decides when a run is finished.
type Termination struct {
	kind        terminationKind
	generations int
}

// FixedGenerations stops after exactly n generations whether or not the grid
// is still changing.
func FixedGenerations(n int) Termination {
	return Termination{kind: fixedGenerations, generations: n}
}

// FixedPoint stops after the first generation that leaves the active count
// unchanged. Only the aggregate count is compared, not the cells themselves.
func FixedPoint() Termination {
	return Termination{kind: fixedPoint}
}

// Generations returns n for FixedGenerations and 0 for FixedPoint.
func (t Termination) Generations() int { return t.generations }

// IsFixedPoint reports whether t is FixedPoint.
func (t Termination) IsFixedPoint() bool { return t.kind == fixedPoint }

func (t Termination) String() string {
	if t.kind == fixedPoint {
		return "fixed-point"
	}
	return fmt.Sprintf("%d generations", t.generations)
}

func (t Termination) done(gen, before, after int) bool {
	if t.kind == fixedPoint {
		return before == after
	}
	return gen >= t.generations
}

// Config fixes a simulation's behavior at construction.
type Config struct {
	Policy         neighbor.Policy
	Grow           bool
	Termination    Termination
	// MaxGenerations bounds fixed-point runs. Zero means unbounded.
	MaxGenerations int
}

// LifeConfig grows the grid every generation and stops after n generations.
func LifeConfig(n int) Config {
	return Config{
		Policy:      neighbor.Adjacent,
		Grow:        true,
		Termination: FixedGenerations(n),
	}
}

// SeatingConfig runs a fixed grid under p until the occupied count settles.
func SeatingConfig(p neighbor.Policy) Config {
	return Config{
		Policy:         p,
		Termination:    FixedPoint(),
		MaxGenerations: DefaultMaxGenerations,
	}
}

// Observer is notified after every generation. The grid must not be modified.
type Observer[C comparable] interface {
	OnGeneration(gen int, g *grid.Grid[C], changes int)
}

// Metric accumulates a scalar over the generations of one run.
type Metric interface {
	Name() string
	Observe(gen, count, changes int)
	Value() float64
	Reset()
}

// Result is the outcome of a completed run.
type Result[C comparable] struct {
	Generations int
	Final       *grid.Grid[C]
	Count       int
	// Counts[0] is the initial active count; Counts[i] follows generation i.
	Counts []int
	// Changes[i-1] is the number of cells that changed in generation i.
	Changes []int
	Metrics map[string]float64
	Elapsed time.Duration
}
