package grid

import (
	"fmt"
	"strings"
)

// Format renders the grid one character per cell. Rows are newline separated;
// for three or more dimensions each plane is preceded by its z (and w)
// coordinate and planes are separated by a blank line.
func (g *Grid[C]) Format(glyph func(C) rune) string {
	var b strings.Builder
	width, height := g.extents[0], g.extents[1]
	plane := width * height

	for start := 0; start < len(g.cells); start += plane {
		if start > 0 {
			b.WriteByte('\n')
		}
		if g.dims > 2 {
			b.WriteString(g.planeLabel(start / plane))
			b.WriteByte('\n')
		}
		for y := 0; y < height; y++ {
			row := g.cells[start+y*width : start+(y+1)*width]
			for _, c := range row {
				b.WriteRune(glyph(c))
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (g *Grid[C]) planeLabel(n int) string {
	return PlaneLabel(g.dims, g.extents[2], n)
}

// PlaneLabel names plane n of a grid whose z extent is depth. Planes are
// numbered in storage order; 2D grids have no label.
func PlaneLabel(dims, depth, n int) string {
	if dims <= 2 || depth <= 0 {
		return ""
	}
	z := n % depth
	if dims == 3 {
		return fmt.Sprintf("z=%d", z)
	}
	return fmt.Sprintf("z=%d, w=%d", z, n/depth)
}

// Planes returns the 2D planes of the grid in storage order, each as rows of
// cells. A 2D grid has exactly one plane. Rows share storage with the grid.
func (g *Grid[C]) Planes() [][][]C {
	width, height := g.extents[0], g.extents[1]
	plane := width * height
	out := make([][][]C, 0, len(g.cells)/plane)
	for start := 0; start < len(g.cells); start += plane {
		rows := make([][]C, height)
		for y := range rows {
			rows[y] = g.cells[start+y*width : start+(y+1)*width]
		}
		out = append(out, rows)
	}
	return out
}
