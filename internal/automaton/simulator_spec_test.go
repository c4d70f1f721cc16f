package automaton_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cellgrid/internal/automaton"
	"github.com/san-kum/cellgrid/internal/grid"
	"github.com/san-kum/cellgrid/internal/neighbor"
	"github.com/san-kum/cellgrid/internal/rules"
)

var seatingSample = []string{
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

var lifeSample = []string{
	".#.",
	"..#",
	"###",
}

func seatingSimulator(policy neighbor.Policy) *automaton.Simulator[rules.Seat] {
	rows, err := grid.ParseRows(seatingSample, rules.ParseSeat)
	Expect(err).NotTo(HaveOccurred())
	g, err := grid.FromRows(rows, 2)
	Expect(err).NotTo(HaveOccurred())

	s, err := automaton.New[rules.Seat](g, rules.NewSeatingRule(policy), automaton.SeatingConfig(policy),
		automaton.WithFloor(rules.IsFloor))
	Expect(err).NotTo(HaveOccurred())
	return s
}

func lifeSimulator(lines []string, dims int) *automaton.Simulator[rules.Cube] {
	rows, err := grid.ParseRows(lines, rules.ParseCube)
	Expect(err).NotTo(HaveOccurred())
	g, err := grid.FromRows(rows, dims)
	Expect(err).NotTo(HaveOccurred())

	s, err := automaton.New[rules.Cube](g, rules.LifeRule{}, automaton.LifeConfig(automaton.LifeGenerations))
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Simulator", func() {
	ctx := context.Background()

	Describe("seating variant", func() {
		It("settles at 37 occupied seats with the adjacent policy", func() {
			res, err := seatingSimulator(neighbor.Adjacent).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Count).To(Equal(37))
			Expect(res.Generations).To(Equal(6))
			Expect(res.Counts).To(Equal([]int{0, 71, 20, 51, 30, 37, 37}))
		})

		It("settles at 26 occupied seats with the visible policy", func() {
			res, err := seatingSimulator(neighbor.Visible).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Count).To(Equal(26))
			Expect(res.Generations).To(Equal(7))
			Expect(res.Counts[2]).To(Equal(7))
		})

		It("never changes floor cells and never grows", func() {
			s := seatingSimulator(neighbor.Adjacent)
			initial := s.Grid().Clone()

			_, err := s.Run(ctx)
			Expect(err).NotTo(HaveOccurred())

			final := s.Grid()
			Expect(final.Extents()).To(Equal(initial.Extents()))
			for pos, c := range initial.Cells() {
				if c == rules.Floor {
					Expect(final.Get(pos)).To(Equal(rules.Floor))
				} else {
					Expect(final.Get(pos)).NotTo(Equal(rules.Floor))
				}
			}
		})

		It("reaches the converged phase and ignores further steps", func() {
			s := seatingSimulator(neighbor.Adjacent)
			Expect(s.Phase()).To(Equal(automaton.Running))

			_, err := s.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Phase()).To(Equal(automaton.Converged))

			gen := s.Generation()
			Expect(s.Step()).To(Equal(0))
			Expect(s.Generation()).To(Equal(gen))
		})

		It("fills every seat in the first generation", func() {
			s := seatingSimulator(neighbor.Visible)
			changes := s.Step()
			Expect(changes).To(Equal(71))
			Expect(s.Count()).To(Equal(71))
			Expect(s.Grid().Count(rules.EmptySeat)).To(BeZero())
		})
	})

	Describe("life variant", func() {
		It("has 112 active cubes after six generations in 3D", func() {
			res, err := lifeSimulator(lifeSample, 3).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Generations).To(Equal(6))
			Expect(res.Count).To(Equal(112))
			Expect(res.Counts).To(Equal([]int{5, 11, 21, 38, 58, 101, 112}))
		})

		It("has 848 active cubes after six generations in 4D", func() {
			res, err := lifeSimulator(lifeSample, 4).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Generations).To(Equal(6))
			Expect(res.Count).To(Equal(848))
		})

		It("grows every extent by two per generation", func() {
			s := lifeSimulator(lifeSample, 4)
			for i := 1; i <= 3; i++ {
				s.Step()
				Expect(s.Grid().Extents()).To(Equal([]int{3 + 2*i, 3 + 2*i, 1 + 2*i, 1 + 2*i}))
			}
		})

		It("stops after six generations even while still changing", func() {
			res, err := lifeSimulator(lifeSample, 3).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Changes[len(res.Changes)-1]).To(BeNumerically(">", 0))
		})

		It("keeps a glider at five cells in 2D", func() {
			res, err := lifeSimulator(lifeSample, 2).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Counts).To(HaveEach(5))
		})

		DescribeTable("an empty universe stays empty",
			func(dims, generations int) {
				rows := []string{strings.Repeat(".", 4), strings.Repeat(".", 4)}
				rowsParsed, err := grid.ParseRows(rows, rules.ParseCube)
				Expect(err).NotTo(HaveOccurred())
				g, err := grid.FromRows(rowsParsed, dims)
				Expect(err).NotTo(HaveOccurred())

				s, err := automaton.New[rules.Cube](g, rules.LifeRule{}, automaton.LifeConfig(generations))
				Expect(err).NotTo(HaveOccurred())
				res, err := s.Run(ctx)
				Expect(err).NotTo(HaveOccurred())

				Expect(res.Count).To(BeZero())
				Expect(res.Final.Extent(0)).To(Equal(4 + 2*generations))
				Expect(res.Final.Count(rules.Active)).To(BeZero())
			},
			Entry("2D, one generation", 2, 1),
			Entry("3D, six generations", 3, 6),
			Entry("4D, three generations", 4, 3),
		)
	})

	Describe("observers and metrics", func() {
		It("reports every generation to observers", func() {
			rec := &recorder{}
			rows, _ := grid.ParseRows(lifeSample, rules.ParseCube)
			g, _ := grid.FromRows(rows, 3)
			s, err := automaton.New[rules.Cube](g, rules.LifeRule{}, automaton.LifeConfig(6),
				automaton.WithObserver[rules.Cube](rec))
			Expect(err).NotTo(HaveOccurred())

			res, err := s.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.gens).To(Equal([]int{1, 2, 3, 4, 5, 6}))
			Expect(rec.changes).To(Equal(res.Changes))
		})

		It("collects the built-in metrics into the result", func() {
			rows, _ := grid.ParseRows(seatingSample, rules.ParseSeat)
			g, _ := grid.FromRows(rows, 2)
			opts := []automaton.Option[rules.Seat]{automaton.WithFloor(rules.IsFloor)}
			for _, m := range automaton.DefaultMetrics() {
				opts = append(opts, automaton.WithMetric[rules.Seat](m))
			}
			s, err := automaton.New[rules.Seat](g, rules.NewSeatingRule(neighbor.Adjacent), automaton.SeatingConfig(neighbor.Adjacent), opts...)
			Expect(err).NotTo(HaveOccurred())

			res, err := s.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Metrics).To(HaveKeyWithValue("peak_count", 71.0))
			Expect(res.Metrics).To(HaveKeyWithValue("last_change", 5.0))
			Expect(res.Metrics).To(HaveKey("total_changes"))
		})
	})
})

type recorder struct {
	gens    []int
	changes []int
}

func (r *recorder) OnGeneration(gen int, g *grid.Grid[rules.Cube], changes int) {
	r.gens = append(r.gens, gen)
	r.changes = append(r.changes, changes)
}
