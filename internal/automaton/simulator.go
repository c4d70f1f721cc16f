package automaton

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/san-kum/cellgrid/internal/grid"
	"github.com/san-kum/cellgrid/internal/neighbor"
	"github.com/san-kum/cellgrid/internal/rules"
	"github.com/sirupsen/logrus"
)

// Option customizes a Simulator.
type Option[C comparable] func(*Simulator[C])

// WithLogger sets the logger. By default nothing is logged.
func WithLogger[C comparable](log logrus.FieldLogger) Option[C] {
	return func(s *Simulator[C]) { s.log = log }
}

// WithFloor sets the predicate the visible policy looks through.
func WithFloor[C comparable](floor func(C) bool) Option[C] {
	return func(s *Simulator[C]) { s.floor = floor }
}

// WithObserver registers an observer.
func WithObserver[C comparable](o Observer[C]) Option[C] {
	return func(s *Simulator[C]) { s.observers = append(s.observers, o) }
}

// WithMetric registers a metric.
func WithMetric[C comparable](m Metric) Option[C] {
	return func(s *Simulator[C]) { s.metrics = append(s.metrics, m) }
}

// Simulator drives one automaton from its initial grid to a terminal phase.
type Simulator[C comparable] struct {
	grid      *grid.Grid[C]
	rule      rules.Rule[C]
	cfg       Config
	floor     func(C) bool
	log       logrus.FieldLogger
	observers []Observer[C]
	metrics   []Metric

	gen     int
	phase   Phase
	counts  []int
	changes []int

	scratch []C
	pending []grid.Change[C]
}

// New validates the setup and returns a simulator in the Running phase at
// generation 0. The simulator takes ownership of g.
func New[C comparable](g *grid.Grid[C], rule rules.Rule[C], cfg Config, opts ...Option[C]) (*Simulator[C], error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if rule == nil {
		return nil, ErrNilRule
	}

	s := &Simulator[C]{
		grid:  g,
		rule:  rule,
		cfg:   cfg,
		phase: Running,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}

	if err := s.validateConfig(); err != nil {
		return nil, err
	}

	s.counts = append(s.counts, g.Count(rule.Active()))
	for _, m := range s.metrics {
		m.Reset()
	}
	return s, nil
}

func (s *Simulator[C]) validateConfig() error {
	if err := s.cfg.Policy.Supports(s.grid.Dims()); err != nil {
		return err
	}
	if s.cfg.Policy == neighbor.Visible && s.floor == nil {
		return ErrMissingFloor
	}
	if !s.cfg.Termination.IsFixedPoint() && s.cfg.Termination.Generations() <= 0 {
		return fmt.Errorf("%w: generations must be positive, got %d", ErrInvalidConfig, s.cfg.Termination.Generations())
	}
	if s.cfg.MaxGenerations < 0 {
		return fmt.Errorf("%w: max generations must not be negative, got %d", ErrInvalidConfig, s.cfg.MaxGenerations)
	}
	return nil
}

// Generation returns how many generations have run.
func (s *Simulator[C]) Generation() int { return s.gen }

// Phase returns Running or Converged.
func (s *Simulator[C]) Phase() Phase { return s.phase }

// Grid returns the current grid. It must not be modified.
func (s *Simulator[C]) Grid() *grid.Grid[C] { return s.grid }

// Count returns the current number of active cells.
func (s *Simulator[C]) Count() int { return s.counts[len(s.counts)-1] }

// Step runs one generation and returns how many cells changed. It does nothing
// once the simulator has converged.
func (s *Simulator[C]) Step() int {
	if s.phase == Converged {
		return 0
	}

	active := s.rule.Active()
	before := s.Count()

	if s.cfg.Grow {
		s.grid = s.grid.Grow(s.rule.Background())
	}

	s.pending = s.pending[:0]
	for pos, cell := range s.grid.Cells() {
		s.scratch = neighbor.Collect(s.grid, pos, s.cfg.Policy, s.floor, s.scratch[:0])
		n := neighbor.CountActive(s.scratch, active)
		if next, changed := s.rule.Next(cell, n); changed {
			s.pending = append(s.pending, grid.Change[C]{Pos: pos, Cell: next})
		}
	}
	s.grid.ApplyChanges(s.pending)
	s.gen++

	changes := len(s.pending)
	after := s.grid.Count(active)
	s.counts = append(s.counts, after)
	s.changes = append(s.changes, changes)

	s.log.WithFields(logrus.Fields{
		"generation": s.gen,
		"changes":    changes,
		"count":      after,
		"extents":    s.grid.Extents(),
	}).Debug("generation complete")

	for _, m := range s.metrics {
		m.Observe(s.gen, after, changes)
	}
	for _, o := range s.observers {
		o.OnGeneration(s.gen, s.grid, changes)
	}

	if s.cfg.Termination.done(s.gen, before, after) {
		s.phase = Converged
		s.log.WithFields(logrus.Fields{
			"generation":  s.gen,
			"count":       after,
			"termination": s.cfg.Termination.String(),
		}).Info("simulation converged")
	}
	return changes
}

// Run steps until the simulator converges. The context is checked between
// generations. A fixed-point run that exceeds MaxGenerations stops with
// ErrNoConvergence; the partial result is still returned. Runs with a fixed
// generation count ignore MaxGenerations.
func (s *Simulator[C]) Run(ctx context.Context) (*Result[C], error) {
	start := time.Now()

	for s.phase == Running {
		select {
		case <-ctx.Done():
			return s.result(start), &GenerationError{Generation: s.gen, Wrapped: ctx.Err()}
		default:
		}

		if s.cfg.Termination.IsFixedPoint() && s.cfg.MaxGenerations > 0 && s.gen >= s.cfg.MaxGenerations {
			return s.result(start), &GenerationError{Generation: s.gen, Wrapped: ErrNoConvergence}
		}

		s.Step()
	}

	return s.result(start), nil
}

func (s *Simulator[C]) result(start time.Time) *Result[C] {
	res := &Result[C]{
		Generations: s.gen,
		Final:       s.grid,
		Count:       s.Count(),
		Counts:      append([]int(nil), s.counts...),
		Changes:     append([]int(nil), s.changes...),
		Metrics:     make(map[string]float64, len(s.metrics)),
		Elapsed:     time.Since(start),
	}
	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}
