package experiment

import (
	"context"
	"fmt"
	"sync"
)

// Batch runs independent experiments concurrently. Each simulation stays
// single-threaded; only separate experiments overlap. Configs must not share
// a Trace writer.
type Batch struct {
	registry *Registry
}

func NewBatch(r *Registry) *Batch {
	return &Batch{registry: r}
}

// Run returns one summary per config, in order. If any experiment fails, the
// first failure in config order is returned and no summaries.
func (b *Batch) Run(ctx context.Context, cfgs []Config) ([]*Summary, error) {
	exps := make([]*Experiment, len(cfgs))
	for i, cfg := range cfgs {
		exps[i] = New(cfg)
		if err := exps[i].Setup(b.registry); err != nil {
			return nil, err
		}
	}

	results := make([]*Summary, len(exps))
	errs := make([]error, len(exps))

	var wg sync.WaitGroup
	for i := range exps {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = exps[idx].Run(ctx)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfgs[i].Variant, err)
		}
	}

	return results, nil
}
