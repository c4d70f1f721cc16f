package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/cellgrid/internal/viz"
)

const planeGap = 2

// GridToSVG draws the planes side by side, one square per cell. Active cells
// ('#') use the theme's active color, idle seats ('L') its idle color.
func GridToSVG(planes [][]string, labels []string, cell float64, theme viz.Theme) string {
	if len(planes) == 0 || cell <= 0 {
		return ""
	}

	cols, rows := 0, 0
	for _, p := range planes {
		rows = max(rows, len(p))
		for _, r := range p {
			cols = max(cols, len([]rune(r)))
		}
	}
	labelHeight := 0.0
	for _, l := range labels {
		if l != "" {
			labelHeight = cell * 1.5
			break
		}
	}

	width := float64(len(planes)*(cols+planeGap)-planeGap) * cell
	height := float64(rows)*cell + labelHeight

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, p := range planes {
		baseX := float64(i*(cols+planeGap)) * cell
		if i < len(labels) && labels[i] != "" {
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="%.1f">%s</text>
`, baseX, cell, theme.Muted, cell, labels[i]))
		}
		for y, row := range p {
			x := 0
			for _, r := range row {
				if fill := cellColor(r, theme); fill != "" {
					sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, baseX+float64(x)*cell, labelHeight+float64(y)*cell, cell, cell, fill))
				}
				x++
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func cellColor(r rune, theme viz.Theme) string {
	switch r {
	case '#':
		return string(theme.Active)
	case 'L':
		return string(theme.Idle)
	}
	return ""
}

// CountsToSVG draws the count per generation as a polyline.
func CountsToSVG(counts []int, width, height int, strokeColor string) string {
	if len(counts) < 2 {
		return ""
	}

	lo, hi := counts[0], counts[0]
	for _, c := range counts {
		lo = min(lo, c)
		hi = max(hi, c)
	}
	rangeY := float64(hi - lo)
	if rangeY == 0 {
		rangeY = 1
	}
	stepX := float64(width) / float64(len(counts)-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, c := range counts {
		x := float64(i) * stepX
		y := float64(height) - float64(c-lo)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// SplitDump turns a stored text dump back into planes and their labels.
func SplitDump(dump string) ([][]string, []string) {
	var planes [][]string
	var labels []string
	var cur []string
	label := ""

	flush := func() {
		if len(cur) > 0 {
			planes = append(planes, cur)
			labels = append(labels, label)
		}
		cur, label = nil, ""
	}

	for _, line := range strings.Split(strings.TrimRight(dump, "\n"), "\n") {
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "z="):
			label = line
		default:
			cur = append(cur, line)
		}
	}
	flush()
	return planes, labels
}
