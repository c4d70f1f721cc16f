package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Choice is one entry of the picker menu.
type Choice struct {
	Variant     string
	Preset      string
	Description string
}

// Picker lists variant and preset pairs and opens the live view for the
// selected one.
type Picker struct {
	choices   []Choice
	cursor    int
	build     func(Choice) Factory
	frameRate int
	err       error
}

func NewPicker(choices []Choice, frameRate int, build func(Choice) Factory) Picker {
	return Picker{choices: choices, build: build, frameRate: frameRate}
}

func (p Picker) Cursor() int { return p.cursor }

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.choices)-1 {
			p.cursor++
		}
	case "t":
		NextTheme()
	case "enter":
		if len(p.choices) == 0 {
			return p, nil
		}
		live, err := NewModel(p.build(p.choices[p.cursor]), p.frameRate)
		if err != nil {
			p.err = err
			return p, nil
		}
		return live, live.Init()
	}
	return p, nil
}

func (p Picker) View() string {
	var b strings.Builder
	b.WriteString(headerStyle().Render("CELLGRID") + "\n")

	selected := lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Accent)
	normal := lipgloss.NewStyle().Foreground(CurrentTheme.Text)
	dim := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)

	for i, c := range p.choices {
		line := fmt.Sprintf("%-18s %-10s", c.Variant, c.Preset)
		if i == p.cursor {
			b.WriteString(selected.Render("> "+line) + " " + dim.Render(c.Description) + "\n")
		} else {
			b.WriteString(normal.Render("  "+line) + "\n")
		}
	}
	if p.err != nil {
		b.WriteString("\n" + statusStyle(false).Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n" + hintStyle().Render("↑↓:Move Enter:Run T:Theme Q:Quit"))
	return panelStyle().Render(b.String())
}
