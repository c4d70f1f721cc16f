package experiment

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/cellgrid/internal/automaton"
	"github.com/san-kum/cellgrid/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seats = []string{
	"L.LL.LL.LL",
	"LLLLLLL.LL",
	"L.L.L..L..",
	"LLLL.LL.LL",
	"L.LL.LL.LL",
	"L.LLLLL.LL",
	"..L.L.....",
	"LLLLLLLLLL",
	"L.LLLLLL.L",
	"L.LLLLL.LL",
}

var cubes = []string{".#.", "..#", "###"}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{Life3D, Life4D, SeatingAdjacent, SeatingVisible}, r.List())
	assert.Equal(t, []string{SeatingAdjacent, SeatingVisible}, r.Members(FamilySeating))
	assert.Equal(t, []string{Life3D, Life4D}, r.Members(FamilyLife))

	fam, err := r.Family(Life4D)
	require.NoError(t, err)
	assert.Equal(t, FamilyLife, fam)
	assert.NotEmpty(t, r.Describe(SeatingVisible))
}

func TestRegistry_UnknownVariant(t *testing.T) {
	r := NewRegistry()
	_, err := r.Build("life-5d", cubes, Options{})
	assert.Error(t, err)
	_, err = r.Family("life-5d")
	assert.Error(t, err)
}

func TestRegistry_GoldenCounts(t *testing.T) {
	tests := []struct {
		variant string
		lines   []string
		count   int
	}{
		{SeatingAdjacent, seats, 37},
		{SeatingVisible, seats, 26},
		{Life3D, cubes, 112},
		{Life4D, cubes, 848},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			runner, err := r.Build(tt.variant, tt.lines, Options{Metrics: true})
			require.NoError(t, err)

			sum, err := runner.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.count, sum.Count)
			assert.Equal(t, tt.variant, sum.Variant)
			assert.True(t, runner.Converged())
			assert.Contains(t, sum.Metrics, "peak_count")
		})
	}
}

func TestRegistry_ParseErrors(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build(SeatingAdjacent, []string{"L.L", "L#x"}, Options{})
	assert.ErrorIs(t, err, grid.ErrUnknownCell)

	_, err = r.Build(Life3D, []string{"#L"}, Options{})
	var pe *grid.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 'L', pe.Char)

	_, err = r.Build(Life4D, []string{"##", "#"}, Options{})
	assert.ErrorIs(t, err, grid.ErrIrregularShape)
}

func TestRegistry_Options(t *testing.T) {
	r := NewRegistry()

	runner, err := r.Build(Life3D, cubes, Options{Generations: 2})
	require.NoError(t, err)
	sum, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Generations)
	assert.Equal(t, 21, sum.Count)
	assert.Equal(t, "2 generations", sum.Termination)
	assert.Equal(t, []int{7, 7, 5}, sum.Extents)

	runner, err = r.Build(SeatingAdjacent, seats, Options{MaxGenerations: 3})
	require.NoError(t, err)
	_, err = runner.Run(context.Background())
	assert.True(t, errors.Is(err, automaton.ErrNoConvergence))
}

func TestRegistry_LifeIgnoresGenerationLimit(t *testing.T) {
	r := NewRegistry()

	runner, err := r.Build(Life3D, cubes, Options{MaxGenerations: 3})
	require.NoError(t, err)
	sum, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, automaton.LifeGenerations, sum.Generations)
	assert.Equal(t, 112, sum.Count)
}

func TestRunner_StepAndRender(t *testing.T) {
	r := NewRegistry()
	runner, err := r.Build(Life3D, cubes, Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, runner.Dims())
	assert.Equal(t, "z=0\n.#.\n..#\n###\n", runner.Render())
	assert.Equal(t, [][]string{{".#.", "..#", "###"}}, runner.Planes())

	runner.Step()
	assert.Equal(t, 1, runner.Generation())
	assert.Equal(t, 11, runner.Count())
	assert.Equal(t, []int{5, 5, 3}, runner.Extents())
	assert.Len(t, runner.Planes(), 3)
	assert.False(t, runner.Converged())
}

func TestRegistry_Trace(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry()
	runner, err := r.Build(SeatingAdjacent, seats, Options{Trace: &buf})
	require.NoError(t, err)

	sum, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sum.Generations, strings.Count(buf.String(), "generation "))
}

func TestExperiment(t *testing.T) {
	exp := New(Config{Variant: Life3D, Lines: cubes})

	_, err := exp.Run(context.Background())
	assert.Error(t, err, "run before setup")

	require.NoError(t, exp.Setup(NewRegistry()))
	require.NotNil(t, exp.Runner())

	sum, err := exp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 112, sum.Count)
}

func TestBatch(t *testing.T) {
	b := NewBatch(NewRegistry())

	sums, err := b.Run(context.Background(), []Config{
		{Variant: SeatingAdjacent, Lines: seats},
		{Variant: SeatingVisible, Lines: seats},
		{Variant: Life3D, Lines: cubes},
		{Variant: Life4D, Lines: cubes},
	})
	require.NoError(t, err)
	require.Len(t, sums, 4)

	got := make([]int, len(sums))
	for i, s := range sums {
		got[i] = s.Count
	}
	assert.Equal(t, []int{37, 26, 112, 848}, got)
}

func TestBatch_SetupError(t *testing.T) {
	b := NewBatch(NewRegistry())
	_, err := b.Run(context.Background(), []Config{
		{Variant: Life3D, Lines: cubes},
		{Variant: SeatingAdjacent, Lines: []string{"x"}},
	})
	assert.ErrorIs(t, err, grid.ErrUnknownCell)
	assert.Contains(t, err.Error(), SeatingAdjacent)
}
