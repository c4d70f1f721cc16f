package experiment

import (
	"fmt"
	"io"
	"sort"

	"github.com/san-kum/cellgrid/internal/automaton"
	"github.com/san-kum/cellgrid/internal/grid"
	"github.com/san-kum/cellgrid/internal/neighbor"
	"github.com/san-kum/cellgrid/internal/rules"
	"github.com/sirupsen/logrus"
)

// Variant names.
const (
	SeatingAdjacent = "seating-adjacent"
	SeatingVisible  = "seating-visible"
	Life3D          = "life-3d"
	Life4D          = "life-4d"
)

// Families group the variants that read the same input.
const (
	FamilySeating = "seating"
	FamilyLife    = "life"
)

// Options tune how a variant is built.
type Options struct {
	// Generations overrides the life variant's generation count when positive.
	Generations int
	// MaxGenerations overrides the seating generation limit when positive.
	// Life variants always run their full generation count.
	MaxGenerations int
	Logger         logrus.FieldLogger
	// Trace, when set, receives a text dump of every generation.
	Trace io.Writer
	// Metrics adds the built-in metrics to the run.
	Metrics bool
}

type variant struct {
	name        string
	family      string
	description string
	build       func(name string, lines []string, opts Options) (Runner, error)
}

type Registry struct {
	variants map[string]variant
}

func NewRegistry() *Registry {
	r := &Registry{variants: make(map[string]variant)}

	r.variants[SeatingAdjacent] = variant{
		name: SeatingAdjacent, family: FamilySeating,
		description: "seat layout, adjacent neighbors, empties at 4",
		build: func(name string, lines []string, opts Options) (Runner, error) {
			return buildSeating(name, lines, neighbor.Adjacent, opts)
		},
	}
	r.variants[SeatingVisible] = variant{
		name: SeatingVisible, family: FamilySeating,
		description: "seat layout, first visible seat per direction, empties at 5",
		build: func(name string, lines []string, opts Options) (Runner, error) {
			return buildSeating(name, lines, neighbor.Visible, opts)
		},
	}
	r.variants[Life3D] = variant{
		name: Life3D, family: FamilyLife,
		description: "conway cubes in three dimensions, six generations",
		build: func(name string, lines []string, opts Options) (Runner, error) {
			return buildLife(name, lines, 3, opts)
		},
	}
	r.variants[Life4D] = variant{
		name: Life4D, family: FamilyLife,
		description: "conway cubes in four dimensions, six generations",
		build: func(name string, lines []string, opts Options) (Runner, error) {
			return buildLife(name, lines, 4, opts)
		},
	}

	return r
}

// Build parses lines for the named variant and returns a runner at generation 0.
func (r *Registry) Build(name string, lines []string, opts Options) (Runner, error) {
	v, ok := r.variants[name]
	if !ok {
		return nil, fmt.Errorf("unknown variant: %s", name)
	}
	return v.build(name, lines, opts)
}

// List returns every variant name, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Family returns the family of a variant.
func (r *Registry) Family(name string) (string, error) {
	v, ok := r.variants[name]
	if !ok {
		return "", fmt.Errorf("unknown variant: %s", name)
	}
	return v.family, nil
}

// Describe returns a one-line description of a variant.
func (r *Registry) Describe(name string) string {
	return r.variants[name].description
}

// Members returns the sorted variant names of a family.
func (r *Registry) Members(family string) []string {
	var names []string
	for name, v := range r.variants {
		if v.family == family {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func buildSeating(name string, lines []string, policy neighbor.Policy, opts Options) (Runner, error) {
	rows, err := grid.ParseRows(lines, rules.ParseSeat)
	if err != nil {
		return nil, err
	}
	g, err := grid.FromRows(rows, 2)
	if err != nil {
		return nil, err
	}

	cfg := automaton.SeatingConfig(policy)
	if opts.MaxGenerations > 0 {
		cfg.MaxGenerations = opts.MaxGenerations
	}

	simOpts := append(commonOptions(name, opts, rules.Seat.Glyph), automaton.WithFloor(rules.IsFloor))
	sim, err := automaton.New[rules.Seat](g, rules.NewSeatingRule(policy), cfg, simOpts...)
	if err != nil {
		return nil, err
	}
	return newRunner(name, sim, cfg, rules.Seat.Glyph), nil
}

func buildLife(name string, lines []string, dims int, opts Options) (Runner, error) {
	rows, err := grid.ParseRows(lines, rules.ParseCube)
	if err != nil {
		return nil, err
	}
	g, err := grid.FromRows(rows, dims)
	if err != nil {
		return nil, err
	}

	generations := automaton.LifeGenerations
	if opts.Generations > 0 {
		generations = opts.Generations
	}
	cfg := automaton.LifeConfig(generations)

	sim, err := automaton.New[rules.Cube](g, rules.LifeRule{}, cfg, commonOptions(name, opts, rules.Cube.Glyph)...)
	if err != nil {
		return nil, err
	}
	return newRunner(name, sim, cfg, rules.Cube.Glyph), nil
}

func commonOptions[C comparable](name string, opts Options, glyph func(C) rune) []automaton.Option[C] {
	var out []automaton.Option[C]
	if opts.Logger != nil {
		out = append(out, automaton.WithLogger[C](opts.Logger.WithField("variant", name)))
	}
	if opts.Trace != nil {
		out = append(out, automaton.WithObserver[C](automaton.NewTracer(opts.Trace, glyph)))
	}
	if opts.Metrics {
		for _, m := range automaton.DefaultMetrics() {
			out = append(out, automaton.WithMetric[C](m))
		}
	}
	return out
}
