package viz

import (
	"sort"

	"github.com/guptarohit/asciigraph"
)

const (
	DefaultPlotHeight = 10
	DefaultPlotWidth  = 60
)

// PlotCounts charts the active cell count per generation. It returns an empty
// string when there is nothing to plot.
func PlotCounts(counts []int, height, width int, caption string) string {
	if len(counts) == 0 {
		return ""
	}
	if height <= 0 {
		height = DefaultPlotHeight
	}
	if width <= 0 {
		width = DefaultPlotWidth
	}

	data := make([]float64, len(counts))
	for i, c := range counts {
		data[i] = float64(c)
	}
	// asciigraph needs two points to draw a line.
	if len(data) == 1 {
		data = append(data, data[0])
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.Caption(caption))
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
