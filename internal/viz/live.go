package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cellgrid/internal/experiment"
)

const (
	defaultFrameRate = 8
	historyCapacity  = 600
	minimapWidth     = 120
)

type TickMsg time.Time

// Factory builds a fresh runner; the live view calls it again on reset.
type Factory func() (experiment.Runner, error)

// Model steps a runner once per tick and draws the grid next to its stats.
type Model struct {
	factory   Factory
	runner    experiment.Runner
	frameRate int
	running   bool
	minimap   bool
	showHelp  bool
	counts    []int
	changes   int
	width     int
	err       error
}

// NewModel builds the first runner from factory. frameRate <= 0 uses the
// default.
func NewModel(factory Factory, frameRate int) (Model, error) {
	r, err := factory()
	if err != nil {
		return Model{}, err
	}
	if frameRate <= 0 {
		frameRate = defaultFrameRate
	}
	return Model{
		factory:   factory,
		runner:    r,
		frameRate: frameRate,
		running:   true,
		counts:    []int{r.Count()},
	}, nil
}

func (m Model) Runner() experiment.Runner { return m.runner }
func (m Model) Running() bool             { return m.running }
func (m Model) Err() error                { return m.err }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles keys and advances the simulation on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			m.running = false
			m.step()
		case "r":
			m.reset()
		case "t":
			NextTheme()
		case "m":
			m.minimap = !m.minimap
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	if m.runner.Converged() {
		m.running = false
		return
	}
	m.changes = m.runner.Step()
	m.counts = append(m.counts, m.runner.Count())
	if len(m.counts) > historyCapacity {
		m.counts = m.counts[len(m.counts)-historyCapacity:]
	}
}

func (m *Model) reset() {
	r, err := m.factory()
	if err != nil {
		m.err = err
		return
	}
	m.runner = r
	m.counts = []int{r.Count()}
	m.changes = 0
	m.err = nil
}

func (m Model) View() string {
	gridView := m.gridView()

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.runner.Variant())) + "\n")

	status := "RUNNING"
	switch {
	case m.runner.Converged():
		status = "CONVERGED"
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(statusStyle(m.runner.Converged()).Render(status) + "\n\n")

	if len(m.counts) > 1 {
		data := make([]float64, len(m.counts))
		for i, c := range m.counts {
			data[i] = float64(c)
		}
		chart := asciigraph.Plot(data, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Precision(0), asciigraph.Caption("Active"))
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Generation", fmt.Sprintf("%d", m.runner.Generation()))
	row("Active", fmt.Sprintf("%d", m.runner.Count()))
	row("Changes", fmt.Sprintf("%d", m.changes))
	row("Extents", formatExtents(m.runner.Extents()))
	row("Theme", CurrentTheme.Name)
	if m.err != nil {
		s.WriteString(statusStyle(false).Render("reset failed: "+m.err.Error()) + "\n")
	}

	s.WriteString("\n" + Separator(28) + "\n")
	s.WriteString(hintStyle().Render("SP:Pause N:Step R:Reset\nT:Theme  M:Minimap Q:Quit\n?:Help"))

	statsView := panelStyle().Width(40).Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, gridView, statsView)
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func (m Model) gridView() string {
	maxWidth := 0
	if m.width > 0 {
		maxWidth = max(m.width-44, 20)
	}
	if !m.minimap {
		return lipgloss.NewStyle().Padding(1, 2).Render(RenderRunner(m.runner, maxWidth))
	}

	planes := m.runner.Planes()
	labels := PlaneLabels(m.runner.Dims(), m.runner.Extents(), len(planes))
	tiles := make([]string, len(planes))
	for i, rows := range planes {
		tile := Minimap(rows, '#')
		if labels[i] != "" {
			tile = hintStyle().Render(labels[i]) + "\n" + tile
		}
		tiles[i] = lipgloss.NewStyle().Foreground(CurrentTheme.Active).PaddingRight(2).Render(tile)
	}
	if len(tiles) == 0 {
		return ""
	}
	view := lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
	if lipgloss.Width(view) > minimapWidth {
		view = lipgloss.JoinVertical(lipgloss.Left, tiles...)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(view)
}

const helpText = `
╔══════════════════════════════════╗
║        KEYBOARD SHORTCUTS        ║
╠══════════════════════════════════╣
║  Space  - Pause/Resume           ║
║  N      - Single generation      ║
║  R      - Restart from the input ║
║  T      - Cycle themes           ║
║  M      - Toggle braille minimap ║
║  Q      - Quit                   ║
║  ?      - Toggle this help       ║
╚══════════════════════════════════╝`
