// Package neighbor collects the cells that influence a position's next state.
//
// Two policies exist and one is fixed per simulation:
//
//   - [Adjacent]: the Moore neighborhood, every offset in {-1,0,1}^D except zero
//   - [Visible]: the first non-floor cell along each of the 8 planar directions
package neighbor

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/san-kum/cellgrid/internal/grid"
)

// ErrPolicyDims indicates a policy used with a dimension count it cannot serve.
var ErrPolicyDims = errors.New("neighbor: policy does not support this dimension count")

// Policy selects how neighbors are gathered.
type Policy int

const (
	Adjacent Policy = iota
	Visible
)

func (p Policy) String() string {
	switch p {
	case Adjacent:
		return "adjacent"
	case Visible:
		return "visible"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts "adjacent" or "visible", case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adjacent":
		return Adjacent, nil
	case "visible":
		return Visible, nil
	}
	return 0, fmt.Errorf("unknown neighbor policy: %s", s)
}

// Supports reports whether p can run on a grid with dims dimensions.
func (p Policy) Supports(dims int) error {
	switch p {
	case Adjacent:
		if dims >= 2 && dims <= grid.MaxDims {
			return nil
		}
	case Visible:
		if dims == 2 {
			return nil
		}
	default:
		return fmt.Errorf("unknown neighbor policy: %d", int(p))
	}
	return fmt.Errorf("%w: %s with %d dimensions", ErrPolicyDims, p, dims)
}

// Directions are the 8 planar unit directions used by the Visible policy.
var Directions = []grid.Vector{
	grid.Vec(-1, -1),
	grid.Vec(-1, 0),
	grid.Vec(-1, 1),
	grid.Vec(0, -1),
	grid.Vec(0, 1),
	grid.Vec(1, -1),
	grid.Vec(1, 0),
	grid.Vec(1, 1),
}

var (
	offsetsMu    sync.Mutex
	offsetsCache = map[int][]grid.Vector{}
)

// Offsets returns the 3^dims - 1 nonzero vectors with every component in
// {-1, 0, 1}. The returned slice is shared and must not be modified.
func Offsets(dims int) []grid.Vector {
	offsetsMu.Lock()
	defer offsetsMu.Unlock()

	if v, ok := offsetsCache[dims]; ok {
		return v
	}

	total := 1
	for i := 0; i < dims; i++ {
		total *= 3
	}
	out := make([]grid.Vector, 0, total-1)
	for n := 0; n < total; n++ {
		var v grid.Vector
		k := n
		for d := 0; d < dims; d++ {
			v[d] = k%3 - 1
			k /= 3
		}
		if !v.IsZero() {
			out = append(out, v)
		}
	}
	offsetsCache[dims] = out
	return out
}

// Collect appends the neighbor cells of pos under policy p to buf and returns
// it. floor reports which cells the Visible policy looks through; Adjacent
// ignores it. Positions outside the grid contribute nothing.
func Collect[C comparable](g *grid.Grid[C], pos grid.Position, p Policy, floor func(C) bool, buf []C) []C {
	switch p {
	case Visible:
		return visible(g, pos, floor, buf)
	default:
		return adjacent(g, pos, buf)
	}
}

func adjacent[C comparable](g *grid.Grid[C], pos grid.Position, buf []C) []C {
	for _, v := range Offsets(g.Dims()) {
		n := pos.Add(v)
		if g.IsValid(n) {
			buf = append(buf, g.Get(n))
		}
	}
	return buf
}

func visible[C comparable](g *grid.Grid[C], pos grid.Position, floor func(C) bool, buf []C) []C {
	for _, v := range Directions {
		for k := 1; ; k++ {
			n := pos.Add(v.Scale(k))
			if !g.IsValid(n) {
				break
			}
			if c := g.Get(n); floor == nil || !floor(c) {
				buf = append(buf, c)
				break
			}
		}
	}
	return buf
}

// CountActive returns how many cells equal active.
func CountActive[C comparable](cells []C, active C) int {
	n := 0
	for _, c := range cells {
		if c == active {
			n++
		}
	}
	return n
}
