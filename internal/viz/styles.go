package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are rebuilt from CurrentTheme on every call so a theme switch takes
// effect on the next frame.

func panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(0, 1)
}

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(CurrentTheme.Accent).
		MarginBottom(1)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Width(12)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true)
}

func hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Italic(true)
}

func statusStyle(converged bool) lipgloss.Style {
	c := CurrentTheme.Warn
	if converged {
		c = CurrentTheme.Good
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

// CellStyle colors a cell glyph: '#' is active, 'L' an idle seat, anything
// else is floor or inactive space.
func CellStyle(glyph rune) lipgloss.Style {
	switch glyph {
	case '#':
		return lipgloss.NewStyle().Foreground(CurrentTheme.Active).Bold(true)
	case 'L':
		return lipgloss.NewStyle().Foreground(CurrentTheme.Idle)
	default:
		return lipgloss.NewStyle().Foreground(CurrentTheme.Floor)
	}
}

// Sparkline renders a one-line chart of values, sampled down to width.
func Sparkline(values []int, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		idx := (values[i*step] - lo) * (len(chars) - 1) / rng
		b.WriteRune(chars[idx])
	}
	return b.String()
}

func Separator(width int) string {
	if width < 8 {
		return strings.Repeat("─", max(width, 0))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-2)
	right := strings.Repeat("─", width-mid-2)
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(left + " ◆ " + right)
}
