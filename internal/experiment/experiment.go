package experiment

import (
	"context"
	"fmt"
)

// Config names a variant and the input it runs on.
type Config struct {
	Variant string
	Lines   []string
	Options Options
}

// Experiment is one configured run of a variant.
type Experiment struct {
	cfg    Config
	runner Runner
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup parses the input and builds the simulator.
func (e *Experiment) Setup(r *Registry) error {
	runner, err := r.Build(e.cfg.Variant, e.cfg.Lines, e.cfg.Options)
	if err != nil {
		return fmt.Errorf("%s: %w", e.cfg.Variant, err)
	}
	e.runner = runner
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Summary, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.runner.Run(ctx)
}

// Runner returns the underlying runner for stepping or rendering.
func (e *Experiment) Runner() Runner {
	return e.runner
}
