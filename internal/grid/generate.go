// internal/grid/generate.go
//
// Randomized word placement.
//
// Algorithm:
//   1. Sort the words by descending length (stable). Long words have the
//      fewest legal positions, so they go in while the grid is emptiest.
//   2. For each word, draw up to Attempts random (direction, start) pairs.
//      A draw is accepted when every cell along the word is in bounds and
//      either empty or already holding the same letter, which lets words
//      cross each other.
//   3. A word that exhausts its budget is skipped and reported in
//      Result.Unplaced; generation itself does not fail.
//   4. Every cell still empty gets a uniformly random letter.
//
// Only the directions handed in are tried, never their reverses: a
// selection drawn backwards along a placed word is matched at lookup time.

package grid

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

// DefaultAttempts is the per-word budget of random draws.
const DefaultAttempts = 100

// Alphabet is the filler alphabet.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	ErrInvalidSize  = errors.New("grid: size must be at least 1")
	ErrNoDirections = errors.New("grid: no placement directions")
	ErrInvalidWord  = errors.New("grid: word must be letters A-Z only")
)

// Rand is the random source used for placement and filling.
// *math/rand.Rand satisfies it; pass a seeded one for reproducible grids.
type Rand interface {
	Intn(n int) int
}

// Result is the outcome of a generation run.
type Result struct {
	Grid     *Grid
	Placed   []Placement
	Unplaced []words.Entry
}

// Complete reports whether every word made it into the grid.
func (r *Result) Complete() bool { return len(r.Unplaced) == 0 }

// Generator holds the generation parameters.
type Generator struct {
	Size       int
	Directions []Direction
	Attempts   int // <= 0 means DefaultAttempts
	Rand       Rand
}

// Generate builds a grid with the default attempt budget.
func Generate(entries []words.Entry, size int, dirs []Direction, rng Rand) (*Result, error) {
	gen := Generator{Size: size, Directions: dirs, Rand: rng}
	return gen.Generate(entries)
}

// Generate places entries into a fresh grid and fills the remainder.
// The only errors are for unusable input; words that do not fit are
// returned in Result.Unplaced.
func (gen Generator) Generate(entries []words.Entry) (*Result, error) {
	if gen.Size < 1 {
		return nil, ErrInvalidSize
	}
	if len(gen.Directions) == 0 {
		return nil, ErrNoDirections
	}
	if gen.Rand == nil {
		return nil, errors.New("grid: nil random source")
	}
	for _, e := range entries {
		if !words.IsWord(e.Word) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWord, e.Word)
		}
	}
	attempts := gen.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	sorted := append([]words.Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Word) > len(sorted[j].Word)
	})

	g := New(gen.Size)
	res := &Result{Grid: g}
	for _, e := range sorted {
		p, ok := gen.place(g, e, attempts)
		if !ok {
			res.Unplaced = append(res.Unplaced, e)
			continue
		}
		res.Placed = append(res.Placed, p)
	}
	fill(g, gen.Rand)
	return res, nil
}

// place tries up to attempts random draws for e and writes the first fit.
func (gen Generator) place(g *Grid, e words.Entry, attempts int) (Placement, bool) {
	if len(e.Word) > g.size {
		return Placement{}, false
	}
	for i := 0; i < attempts; i++ {
		p := Placement{
			Entry:     e,
			Direction: gen.Directions[gen.Rand.Intn(len(gen.Directions))],
			Start:     Coord{X: gen.Rand.Intn(g.size), Y: gen.Rand.Intn(g.size)},
		}
		if canPlace(g, e.Word, p.Start, p.Direction) {
			write(g, e.Word, p.Start, p.Direction)
			return p, true
		}
	}
	return Placement{}, false
}

// canPlace reports whether word fits at start along d: every cell in bounds
// and either empty or already equal to the required letter.
func canPlace(g *Grid, word string, start Coord, d Direction) bool {
	for i := 0; i < len(word); i++ {
		c := start.Step(d, i)
		if !g.InBounds(c) {
			return false
		}
		if cur := g.cells[c.Y][c.X]; cur != empty && cur != word[i] {
			return false
		}
	}
	return true
}

func write(g *Grid, word string, start Coord, d Direction) {
	for i := 0; i < len(word); i++ {
		g.set(start.Step(d, i), word[i])
	}
}

// fill writes a random letter into every empty cell.
func fill(g *Grid, rng Rand) {
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x] == empty {
				g.cells[y][x] = Alphabet[rng.Intn(len(Alphabet))]
			}
		}
	}
}

// ReadAt returns the n letters starting at start along d, or "" if the
// run leaves the grid.
func (g *Grid) ReadAt(start Coord, d Direction, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		c := start.Step(d, i)
		if !g.InBounds(c) {
			return ""
		}
		buf[i] = g.cells[c.Y][c.X]
	}
	return string(buf)
}
