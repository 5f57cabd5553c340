// internal/grid/types.go
//
// Core type definitions for the letter grid.
// Defines:
//   - Coord:     a cell position (X = column, Y = row, origin top-left).
//   - Direction: a unit step along one of the straight-line axes.
//   - Grid:      the square letter matrix.
//   - Placement: a target word bound to a start cell and a direction.

package grid

import (
	"fmt"
	"strings"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

// Coord is a cell position in grid space.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns "(x,y)".
func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Step returns c moved n times along d.
func (c Coord) Step(d Direction, n int) Coord {
	return Coord{X: c.X + n*d.DX, Y: c.Y + n*d.DY}
}

// Direction is a unit vector between neighbouring cells.
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// The four canonical axes. Each is walkable both ways, giving the eight
// reading directions; placement only uses these four because a reversed
// reading is matched at lookup time.
var (
	Horizontal   = Direction{DX: 1, DY: 0}
	Vertical     = Direction{DX: 0, DY: 1}
	DiagonalDown = Direction{DX: 1, DY: 1}
	DiagonalUp   = Direction{DX: 1, DY: -1}
)

// Canonical returns the canonical direction set.
func Canonical() []Direction {
	return []Direction{Horizontal, Vertical, DiagonalDown, DiagonalUp}
}

// empty marks a cell that generation has not written yet.
const empty byte = 0

// Grid is a size×size matrix of uppercase letters, indexed [y][x].
type Grid struct {
	size  int
	cells [][]byte
}

// New returns an empty grid.
func New(size int) *Grid {
	cells := make([][]byte, size)
	for y := range cells {
		cells[y] = make([]byte, size)
	}
	return &Grid{size: size, cells: cells}
}

// FromRows builds a grid from equal-length rows of letters.
// Returns an error if the rows do not form a square.
func FromRows(rows []string) (*Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrInvalidSize
	}
	g := New(n)
	for y, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, y, len(row), n)
		}
		copy(g.cells[y], strings.ToUpper(row))
	}
	return g, nil
}

// Size is the side length.
func (g *Grid) Size() int { return g.size }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.size && c.Y >= 0 && c.Y < g.size
}

// At returns the letter at c, or 0 for an unfilled or out-of-bounds cell.
func (g *Grid) At(c Coord) byte {
	if !g.InBounds(c) {
		return empty
	}
	return g.cells[c.Y][c.X]
}

func (g *Grid) set(c Coord, b byte) { g.cells[c.Y][c.X] = b }

// Rows returns the grid as one string per row, top to bottom.
func (g *Grid) Rows() []string {
	out := make([]string, g.size)
	for y, row := range g.cells {
		out[y] = string(row)
	}
	return out
}

// String renders the grid with spaces between letters, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, ch := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			if ch == empty {
				ch = '.'
			}
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// Placement binds a target word to the cells it occupies.
type Placement struct {
	Entry     words.Entry `json:"entry"`
	Start     Coord       `json:"start"`
	Direction Direction   `json:"direction"`
}

// Cells returns the coordinates covered by the placement, first letter first.
func (p Placement) Cells() []Coord {
	out := make([]Coord, len(p.Entry.Word))
	for i := range out {
		out[i] = p.Start.Step(p.Direction, i)
	}
	return out
}

// End returns the cell holding the last letter.
func (p Placement) End() Coord {
	return p.Start.Step(p.Direction, len(p.Entry.Word)-1)
}
