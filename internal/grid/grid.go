package grid

import (
	"fmt"
	"iter"
)

// Change is a pending write produced by a generation scan.
type Change[C comparable] struct {
	Pos  Position
	Cell C
}

// Grid is a dense rectangular store of cells over 2 to 4 dimensions. Cells
// live in one flat slice with x varying fastest, then y, z and w.
type Grid[C comparable] struct {
	dims    int
	extents [MaxDims]int
	strides [MaxDims]int
	cells   []C
}

// New allocates a grid with the given extents, every cell set to fill.
func New[C comparable](extents []int, fill C) (*Grid[C], error) {
	if len(extents) < 2 || len(extents) > MaxDims {
		return nil, fmt.Errorf("%w: %d dimensions", ErrDimensions, len(extents))
	}
	g := &Grid[C]{dims: len(extents)}
	size := 1
	for d, n := range extents {
		if n < 1 {
			return nil, fmt.Errorf("%w: extent %d in dimension %d", ErrDimensions, n, d)
		}
		g.extents[d] = n
		g.strides[d] = size
		size *= n
	}
	g.cells = make([]C, size)
	for i := range g.cells {
		g.cells[i] = fill
	}
	return g, nil
}

// FromRows embeds a 2D slice of rows into a grid of the requested dimension
// count. The rows occupy z=0, w=0; higher extents start at 1.
func FromRows[C comparable](rows [][]C, dims int) (*Grid[C], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyInput
	}
	if dims < 2 || dims > MaxDims {
		return nil, fmt.Errorf("%w: %d dimensions", ErrDimensions, dims)
	}

	width := len(rows[0])
	extents := []int{width, len(rows)}
	for len(extents) < dims {
		extents = append(extents, 1)
	}

	var zero C
	g, err := New(extents, zero)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, &ShapeError{Row: y, Want: width, Got: len(row)}
		}
		copy(g.cells[y*width:(y+1)*width], row)
	}
	return g, nil
}

// Dims returns the dimension count.
func (g *Grid[C]) Dims() int { return g.dims }

// Extents returns a copy of the per-dimension sizes.
func (g *Grid[C]) Extents() []int {
	out := make([]int, g.dims)
	copy(out, g.extents[:g.dims])
	return out
}

// Extent returns the size of dimension d.
func (g *Grid[C]) Extent(d int) int { return g.extents[d] }

// Len returns the total number of cells.
func (g *Grid[C]) Len() int { return len(g.cells) }

// IsValid reports whether every coordinate of pos lies inside the grid.
func (g *Grid[C]) IsValid(pos Position) bool {
	for d := 0; d < MaxDims; d++ {
		if d >= g.dims {
			if pos[d] != 0 {
				return false
			}
			continue
		}
		if pos[d] < 0 || pos[d] >= g.extents[d] {
			return false
		}
	}
	return true
}

func (g *Grid[C]) index(pos Position) int {
	i := 0
	for d := 0; d < g.dims; d++ {
		i += pos[d] * g.strides[d]
	}
	return i
}

// Get returns the cell at pos. The caller must have checked pos with IsValid;
// an invalid position is a programming error and the result is undefined or a
// panic.
func (g *Grid[C]) Get(pos Position) C {
	return g.cells[g.index(pos)]
}

// Set replaces the cell at pos. It panics if pos is outside the grid.
func (g *Grid[C]) Set(pos Position, cell C) {
	if !g.IsValid(pos) {
		panic(fmt.Errorf("%w: %v", ErrOutOfBounds, pos))
	}
	g.cells[g.index(pos)] = cell
}

// ApplyChanges writes a whole generation's changes. Every change is checked
// before any is written, so a bad batch leaves the grid untouched.
//
// Callers must collect the batch from a completed scan of this grid: writing
// while a Cells iteration is still in progress lets later cells see this
// generation's results.
func (g *Grid[C]) ApplyChanges(changes []Change[C]) {
	for _, c := range changes {
		if !g.IsValid(c.Pos) {
			panic(fmt.Errorf("%w: %v", ErrOutOfBounds, c.Pos))
		}
	}
	for _, c := range changes {
		g.cells[g.index(c.Pos)] = c.Cell
	}
}

// Cells yields every (position, cell) pair in row-major, then plane-major,
// then volume-major order. Each call starts a fresh traversal.
func (g *Grid[C]) Cells() iter.Seq2[Position, C] {
	return func(yield func(Position, C) bool) {
		var pos Position
		for _, c := range g.cells {
			if !yield(pos, c) {
				return
			}
			for d := 0; d < g.dims; d++ {
				pos[d]++
				if pos[d] < g.extents[d] {
					break
				}
				pos[d] = 0
			}
		}
	}
}

// Count returns how many cells equal c.
func (g *Grid[C]) Count(c C) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Grow returns a new grid one layer larger on every side of every dimension.
// Existing cells move by +1 along each dimension; new border cells are fill.
func (g *Grid[C]) Grow(fill C) *Grid[C] {
	extents := make([]int, g.dims)
	for d := range extents {
		extents[d] = g.extents[d] + 2
	}
	next, err := New(extents, fill)
	if err != nil {
		// extents were valid before growing, so they are valid now
		panic(err)
	}

	var shift Vector
	for d := 0; d < g.dims; d++ {
		shift[d] = 1
	}
	for pos, c := range g.Cells() {
		next.cells[next.index(pos.Add(shift))] = c
	}
	return next
}

// Clone returns an independent copy.
func (g *Grid[C]) Clone() *Grid[C] {
	c := *g
	c.cells = make([]C, len(g.cells))
	copy(c.cells, g.cells)
	return &c
}

// Equal reports whether both grids have the same shape and cells.
func (g *Grid[C]) Equal(other *Grid[C]) bool {
	if other == nil || g.dims != other.dims || g.extents != other.extents {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
