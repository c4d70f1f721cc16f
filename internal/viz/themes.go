package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used to draw grids and panels.
type Theme struct {
	Name   string
	Active lipgloss.Color
	Idle   lipgloss.Color
	Floor  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Good   lipgloss.Color
	Warn   lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:   "classic",
		Active: lipgloss.Color("#00ff88"),
		Idle:   lipgloss.Color("#5f87af"),
		Floor:  lipgloss.Color("#3a3a3a"),
		Accent: lipgloss.Color("#00ffff"),
		Text:   lipgloss.Color("#eeeeee"),
		Muted:  lipgloss.Color("#808080"),
		Border: lipgloss.Color("#444466"),
		Good:   lipgloss.Color("#00ff88"),
		Warn:   lipgloss.Color("#ffaa00"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Active: lipgloss.Color("#00ff00"), // phosphor
		Idle:   lipgloss.Color("#008800"),
		Floor:  lipgloss.Color("#003300"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Border: lipgloss.Color("#00aa00"),
		Good:   lipgloss.Color("#88ff88"),
		Warn:   lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Active: lipgloss.Color("#ffffff"),
		Idle:   lipgloss.Color("#aaaaaa"),
		Floor:  lipgloss.Color("#444444"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Border: lipgloss.Color("#666666"),
		Good:   lipgloss.Color("#00ff00"),
		Warn:   lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Active: lipgloss.Color("#ffd700"),
		Idle:   lipgloss.Color("#00a8cc"),
		Floor:  lipgloss.Color("#003355"),
		Accent: lipgloss.Color("#0077be"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Border: lipgloss.Color("#0077be"),
		Good:   lipgloss.Color("#00ff88"),
		Warn:   lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Active: lipgloss.Color("#ff6b6b"), // coral
		Idle:   lipgloss.Color("#feca57"),
		Floor:  lipgloss.Color("#4a2f4b"),
		Accent: lipgloss.Color("#ff9ff3"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Border: lipgloss.Color("#8b6b8c"),
		Good:   lipgloss.Color("#5fd068"),
		Warn:   lipgloss.Color("#ffc048"),
	}

	CurrentTheme = ThemeClassic

	Themes = []Theme{
		ThemeClassic,
		ThemeRetro,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
