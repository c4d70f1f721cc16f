package experiment

import (
	"context"
	"strings"
	"time"

	"github.com/san-kum/cellgrid/internal/automaton"
)

// Runner is a type-erased simulation of one variant.
type Runner interface {
	Variant() string
	Dims() int
	Extents() []int
	Generation() int
	Converged() bool
	Count() int
	Step() int
	// Render is the text dump of the current grid.
	Render() string
	// Planes returns the current grid as text planes, one string per row.
	Planes() [][]string
	Run(ctx context.Context) (*Summary, error)
}

// Summary is the outcome of a run, independent of the cell type.
type Summary struct {
	Variant     string             `json:"variant"`
	Dims        int                `json:"dims"`
	Extents     []int              `json:"extents"`
	Termination string             `json:"termination"`
	Generations int                `json:"generations"`
	Count       int                `json:"count"`
	Counts      []int              `json:"counts"`
	Changes     []int              `json:"changes"`
	Metrics     map[string]float64 `json:"metrics"`
	Elapsed     time.Duration      `json:"elapsed"`
}

type runner[C comparable] struct {
	variant     string
	termination string
	sim         *automaton.Simulator[C]
	glyph       func(C) rune
}

func (r *runner[C]) Variant() string { return r.variant }
func (r *runner[C]) Dims() int       { return r.sim.Grid().Dims() }
func (r *runner[C]) Extents() []int  { return r.sim.Grid().Extents() }
func (r *runner[C]) Generation() int { return r.sim.Generation() }
func (r *runner[C]) Converged() bool { return r.sim.Phase() == automaton.Converged }
func (r *runner[C]) Count() int      { return r.sim.Count() }
func (r *runner[C]) Step() int       { return r.sim.Step() }
func (r *runner[C]) Render() string  { return r.sim.Grid().Format(r.glyph) }

func (r *runner[C]) Planes() [][]string {
	planes := r.sim.Grid().Planes()
	out := make([][]string, len(planes))
	var b strings.Builder
	for i, rows := range planes {
		out[i] = make([]string, len(rows))
		for y, row := range rows {
			b.Reset()
			for _, c := range row {
				b.WriteRune(r.glyph(c))
			}
			out[i][y] = b.String()
		}
	}
	return out
}

func (r *runner[C]) Run(ctx context.Context) (*Summary, error) {
	res, err := r.sim.Run(ctx)
	if res == nil {
		return nil, err
	}
	return r.summarize(res), err
}

func (r *runner[C]) summarize(res *automaton.Result[C]) *Summary {
	return &Summary{
		Variant:     r.variant,
		Dims:        res.Final.Dims(),
		Extents:     res.Final.Extents(),
		Termination: r.termination,
		Generations: res.Generations,
		Count:       res.Count,
		Counts:      res.Counts,
		Changes:     res.Changes,
		Metrics:     res.Metrics,
		Elapsed:     res.Elapsed,
	}
}

func newRunner[C comparable](variant string, sim *automaton.Simulator[C], cfg automaton.Config, glyph func(C) rune) *runner[C] {
	return &runner[C]{
		variant:     variant,
		termination: cfg.Termination.String(),
		sim:         sim,
		glyph:       glyph,
	}
}
