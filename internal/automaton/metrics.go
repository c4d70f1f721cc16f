package automaton

import (
	"fmt"
	"io"

	"github.com/san-kum/cellgrid/internal/grid"
)

// PeakCount is the largest active count seen after any generation.
type PeakCount struct {
	peak int
}

func NewPeakCount() *PeakCount { return &PeakCount{} }

func (p *PeakCount) Name() string { return "peak_count" }

func (p *PeakCount) Observe(gen, count, changes int) {
	if count > p.peak {
		p.peak = count
	}
}

func (p *PeakCount) Value() float64 { return float64(p.peak) }
func (p *PeakCount) Reset()         { p.peak = 0 }

// TotalChanges sums cell changes across all generations.
type TotalChanges struct {
	total int
}

func NewTotalChanges() *TotalChanges { return &TotalChanges{} }

func (t *TotalChanges) Name() string { return "total_changes" }

func (t *TotalChanges) Observe(gen, count, changes int) { t.total += changes }

func (t *TotalChanges) Value() float64 { return float64(t.total) }
func (t *TotalChanges) Reset()         { t.total = 0 }

// LastChange is the last generation in which any cell changed.
type LastChange struct {
	gen int
}

func NewLastChange() *LastChange { return &LastChange{} }

func (l *LastChange) Name() string { return "last_change" }

func (l *LastChange) Observe(gen, count, changes int) {
	if changes > 0 {
		l.gen = gen
	}
}

func (l *LastChange) Value() float64 { return float64(l.gen) }
func (l *LastChange) Reset()         { l.gen = 0 }

// DefaultMetrics returns a fresh set of the built-in metrics.
func DefaultMetrics() []Metric {
	return []Metric{NewPeakCount(), NewTotalChanges(), NewLastChange()}
}

// Tracer writes a text dump of the grid after every generation.
type Tracer[C comparable] struct {
	w     io.Writer
	glyph func(C) rune
}

// NewTracer writes to w, rendering cells with glyph.
func NewTracer[C comparable](w io.Writer, glyph func(C) rune) *Tracer[C] {
	return &Tracer[C]{w: w, glyph: glyph}
}

func (t *Tracer[C]) OnGeneration(gen int, g *grid.Grid[C], changes int) {
	fmt.Fprintf(t.w, "generation %d (%d changes)\n%s\n", gen, changes, g.Format(t.glyph))
}
