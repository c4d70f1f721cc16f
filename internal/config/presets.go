package config

import (
	"sort"
	"strings"
)

// Preset is a built-in starting layout.
type Preset struct {
	Description string
	Layout      string
}

// Lines splits the layout into rows.
func (p *Preset) Lines() []string {
	return strings.Split(strings.TrimSpace(p.Layout), "\n")
}

var Presets = map[string]map[string]*Preset{
	"seating": {
		"sample": {
			Description: "10x10 waiting area",
			Layout: `
L.LL.LL.LL
LLLLLLL.LL
L.L.L..L..
LLLL.LL.LL
L.LL.LL.LL
L.LLLLL.LL
..L.L.....
LLLLLLLLLL
L.LLLLLL.L
L.LLLLL.LL
`,
		},
		"ring": {
			Description: "one seat surrounded by unreachable seats",
			Layout: `
.##.##.
#.#.#.#
##...##
...L...
##...##
#.#.#.#
.##.##.
`,
		},
		"row": {
			Description: "single row of seats",
			Layout:      "LLLLLLLLLL",
		},
	},
	"life": {
		"glider": {
			Description: "the 3x3 starting slice",
			Layout: `
.#.
..#
###
`,
		},
		"blinker": {
			Description: "three in a row",
			Layout: `
...
###
...
`,
		},
		"block": {
			Description: "2x2 square",
			Layout: `
##
##
`,
		},
	},
}

func GetPreset(family, name string) *Preset {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	p, ok := familyPresets[name]
	if !ok {
		return nil
	}
	return p
}

// ListPresets returns the preset names of a family, sorted.
func ListPresets(family string) []string {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(familyPresets))
	for name := range familyPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultPresetFor returns the preset used when no input or preset is given.
func DefaultPresetFor(family string) string {
	if family == "life" {
		return "glider"
	}
	return DefaultPreset
}
