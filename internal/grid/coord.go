package grid

import "fmt"

// MaxDims is the largest dimension count a grid supports.
const MaxDims = 4

// Position identifies one cell. Coordinates past the grid's dimension count
// are always zero.
type Position [MaxDims]int

// Vector is a signed displacement applied to a Position.
type Vector [MaxDims]int

// Pos builds a Position from up to MaxDims coordinates.
func Pos(coords ...int) Position {
	var p Position
	copy(p[:], coords)
	return p
}

// Vec builds a Vector from up to MaxDims offsets.
func Vec(offsets ...int) Vector {
	var v Vector
	copy(v[:], offsets)
	return v
}

// Add returns p displaced by v. The result may be invalid for any grid.
func (p Position) Add(v Vector) Position {
	for i := range p {
		p[i] += v[i]
	}
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", p[0], p[1], p[2], p[3])
}

// IsZero reports whether v has no displacement.
func (v Vector) IsZero() bool {
	return v == Vector{}
}

// Scale multiplies every offset by k.
func (v Vector) Scale(k int) Vector {
	for i := range v {
		v[i] *= k
	}
	return v
}
