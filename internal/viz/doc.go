// Package viz draws cellular automaton runs in the terminal.
//
// Static output uses lipgloss for colored grids and summary panels and
// asciigraph for count plots. [Model] is a Bubble Tea program that steps an
// [experiment.Runner] on a timer; [Picker] is a menu in front of it.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single generation
//	R     - Restart from the input
//	T     - Cycle color themes
//	M     - Toggle the braille minimap
//	?     - Show help overlay
package viz
