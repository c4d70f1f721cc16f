package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/cellgrid/internal/experiment"
	"github.com/san-kum/cellgrid/internal/grid"
)

// PlaneLabels names the n planes of a grid in storage order. A 2D grid has a
// single unlabeled plane.
func PlaneLabels(dims int, extents []int, n int) []string {
	labels := make([]string, n)
	if dims <= 2 || len(extents) < 3 {
		return labels
	}
	for i := range labels {
		labels[i] = grid.PlaneLabel(dims, extents[2], i)
	}
	return labels
}

// StyleRow colors every glyph of a rendered row.
func StyleRow(row string) string {
	var b strings.Builder
	for _, r := range row {
		b.WriteString(CellStyle(r).Render(string(r)))
	}
	return b.String()
}

// RenderPlanes tiles the planes left to right, wrapping to a new band when the
// next tile would exceed maxWidth. maxWidth <= 0 disables wrapping.
func RenderPlanes(planes [][]string, labels []string, maxWidth int) string {
	if len(planes) == 0 {
		return ""
	}

	tiles := make([]string, len(planes))
	for i, rows := range planes {
		var b strings.Builder
		if i < len(labels) && labels[i] != "" {
			b.WriteString(hintStyle().Render(labels[i]))
			b.WriteByte('\n')
		}
		for y, row := range rows {
			if y > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(StyleRow(row))
		}
		tiles[i] = lipgloss.NewStyle().PaddingRight(2).Render(b.String())
	}

	var bands []string
	var band []string
	width := 0
	for _, t := range tiles {
		w := lipgloss.Width(t)
		if maxWidth > 0 && len(band) > 0 && width+w > maxWidth {
			bands = append(bands, lipgloss.JoinHorizontal(lipgloss.Top, band...))
			band, width = nil, 0
		}
		band = append(band, t)
		width += w
	}
	bands = append(bands, lipgloss.JoinHorizontal(lipgloss.Top, band...))
	return lipgloss.JoinVertical(lipgloss.Left, bands...)
}

// RenderRunner draws the runner's current grid.
func RenderRunner(r experiment.Runner, maxWidth int) string {
	planes := r.Planes()
	return RenderPlanes(planes, PlaneLabels(r.Dims(), r.Extents(), len(planes)), maxWidth)
}

// RenderSummary draws a bordered panel describing a finished run.
func RenderSummary(s *experiment.Summary) string {
	var b strings.Builder
	b.WriteString(headerStyle().Render(strings.ToUpper(s.Variant)))
	b.WriteByte('\n')

	row := func(label, value string) {
		b.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Result", fmt.Sprintf("%d", s.Count))
	row("Generations", fmt.Sprintf("%d", s.Generations))
	row("Termination", s.Termination)
	row("Extents", formatExtents(s.Extents))
	row("Elapsed", s.Elapsed.String())
	for _, name := range sortedKeys(s.Metrics) {
		row(name, fmt.Sprintf("%g", s.Metrics[name]))
	}
	if len(s.Counts) > 1 {
		b.WriteString(labelStyle().Render("Counts") + Sparkline(s.Counts, 30))
	}

	return panelStyle().Render(strings.TrimRight(b.String(), "\n"))
}

func formatExtents(extents []int) string {
	parts := make([]string, len(extents))
	for i, e := range extents {
		parts[i] = fmt.Sprintf("%d", e)
	}
	return strings.Join(parts, "x")
}
