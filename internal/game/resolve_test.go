package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/grid"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

// xGrid returns a size×size grid of X with the given overrides applied
// (keyed by row index).
func xGrid(t *testing.T, size int, rows map[int]string) *grid.Grid {
	t.Helper()
	out := make([]string, size)
	for y := range out {
		out[y] = strings.Repeat("X", size)
		if r, ok := rows[y]; ok {
			out[y] = r
		}
	}
	g, err := grid.FromRows(out)
	require.NoError(t, err)
	return g
}

func entries(ws ...string) []words.Entry {
	out := make([]words.Entry, len(ws))
	for i, w := range ws {
		out[i] = words.Entry{Word: w}
	}
	return out
}

func TestResolveCatScenario(t *testing.T) {
	g := xGrid(t, 12, map[int]string{3: "XXCATXXXXXXX"})
	targets := entries("CAT")

	t.Run("forward", func(t *testing.T) {
		r := Resolve(g, grid.Coord{X: 2, Y: 3}, grid.Coord{X: 4, Y: 3}, targets, FoundSet{})
		assert.Equal(t, Found, r.Kind)
		assert.Equal(t, "CAT", r.Word)
		assert.Equal(t, []grid.Coord{{X: 2, Y: 3}, {X: 3, Y: 3}, {X: 4, Y: 3}}, r.Cells)
	})

	t.Run("backward", func(t *testing.T) {
		r := Resolve(g, grid.Coord{X: 4, Y: 3}, grid.Coord{X: 2, Y: 3}, targets, FoundSet{})
		assert.Equal(t, Found, r.Kind)
		assert.Equal(t, "CAT", r.Word)
		assert.Equal(t, []grid.Coord{{X: 4, Y: 3}, {X: 3, Y: 3}, {X: 2, Y: 3}}, r.Cells)
	})

	t.Run("already found", func(t *testing.T) {
		r := Resolve(g, grid.Coord{X: 2, Y: 3}, grid.Coord{X: 4, Y: 3}, targets, FoundSet{"CAT": {}})
		assert.Equal(t, AlreadyFound, r.Kind)
		assert.Equal(t, "CAT", r.Word)
		assert.Empty(t, r.Cells)
	})

	t.Run("partial word", func(t *testing.T) {
		r := Resolve(g, grid.Coord{X: 2, Y: 3}, grid.Coord{X: 3, Y: 3}, targets, FoundSet{})
		assert.Equal(t, NotAWord, r.Kind)
	})
}

func TestResolveNoLine(t *testing.T) {
	g := xGrid(t, 12, nil)
	targets := entries("CAT")

	cases := []struct {
		name       string
		start, end grid.Coord
	}{
		{"knight move", grid.Coord{X: 0, Y: 0}, grid.Coord{X: 2, Y: 1}},
		{"single cell", grid.Coord{X: 5, Y: 5}, grid.Coord{X: 5, Y: 5}},
		{"skewed diagonal", grid.Coord{X: 1, Y: 1}, grid.Coord{X: 4, Y: 6}},
		{"end off the grid", grid.Coord{X: 10, Y: 0}, grid.Coord{X: 12, Y: 0}},
		{"start off the grid", grid.Coord{X: -1, Y: -1}, grid.Coord{X: 1, Y: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := Resolve(g, c.start, c.end, targets, FoundSet{})
			assert.Equal(t, NoLine, r.Kind)
			assert.Empty(t, r.Word)
		})
	}
}

func TestResolveNotAWord(t *testing.T) {
	g := xGrid(t, 12, map[int]string{7: "XXXXXDOGXXXX"})
	targets := entries("DOG")

	for _, sel := range [][2]grid.Coord{
		{{X: 0, Y: 0}, {X: 2, Y: 0}},    // horizontal
		{{X: 0, Y: 0}, {X: 0, Y: 2}},    // vertical
		{{X: 0, Y: 0}, {X: 2, Y: 2}},    // diagonal down
		{{X: 11, Y: 2}, {X: 9, Y: 0}},   // diagonal, walked up-left
		{{X: 11, Y: 11}, {X: 9, Y: 11}}, // backwards
	} {
		r := Resolve(g, sel[0], sel[1], targets, FoundSet{})
		assert.Equal(t, NotAWord, r.Kind, "%v→%v", sel[0], sel[1])
	}
}

func TestResolveAllDirections(t *testing.T) {
	g, err := grid.FromRows([]string{
		"CXXXD",
		"XAXXO",
		"XXTEG",
		"XXEXX",
		"XBXXX",
	})
	require.NoError(t, err)
	targets := entries("CAT", "DOG", "BEE")

	cases := []struct {
		name       string
		start, end grid.Coord
		want       string
	}{
		{"diagonal down-right", grid.Coord{X: 0, Y: 0}, grid.Coord{X: 2, Y: 2}, "CAT"},
		{"diagonal up-left", grid.Coord{X: 2, Y: 2}, grid.Coord{X: 0, Y: 0}, "CAT"},
		{"down", grid.Coord{X: 4, Y: 0}, grid.Coord{X: 4, Y: 2}, "DOG"},
		{"up", grid.Coord{X: 4, Y: 2}, grid.Coord{X: 4, Y: 0}, "DOG"},
		{"diagonal up-right", grid.Coord{X: 1, Y: 4}, grid.Coord{X: 3, Y: 2}, "BEE"},
		{"diagonal down-left", grid.Coord{X: 3, Y: 2}, grid.Coord{X: 1, Y: 4}, "BEE"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := Resolve(g, c.start, c.end, targets, FoundSet{})
			assert.Equal(t, Found, r.Kind)
			assert.Equal(t, c.want, r.Word)
			require.Len(t, r.Cells, 3)
			assert.Equal(t, c.start, r.Cells[0])
			assert.Equal(t, c.end, r.Cells[2])
		})
	}
}

func TestResolvePrefersUnfoundReading(t *testing.T) {
	g := xGrid(t, 5, map[int]string{0: "TOPXX"})
	targets := entries("TOP", "POT")
	found := FoundSet{}

	r := Resolve(g, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 2, Y: 0}, targets, found)
	require.Equal(t, Found, r.Kind)
	assert.Equal(t, "TOP", r.Word)
	found.Add(r.Word)

	r = Resolve(g, grid.Coord{X: 0, Y: 0}, grid.Coord{X: 2, Y: 0}, targets, found)
	require.Equal(t, Found, r.Kind)
	assert.Equal(t, "POT", r.Word)
	found.Add(r.Word)

	r = Resolve(g, grid.Coord{X: 2, Y: 0}, grid.Coord{X: 0, Y: 0}, targets, found)
	assert.Equal(t, AlreadyFound, r.Kind)
}

func TestResolveIsSymmetric(t *testing.T) {
	p := &words.Puzzle{Name: "bourse", Words: entries(
		"COUPOLES", "CIRCULAIRES", "ROTONDE", "VERRE", "METAL", "LUMIERE", "BOURSE", "OISEAU", "EVOLUTION",
	)}
	for seed := int64(1); seed <= 10; seed++ {
		res, err := grid.Generate(p.Words, 12, grid.Canonical(), rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		for _, pl := range res.Placed {
			ab := Resolve(res.Grid, pl.Start, pl.End(), p.Words, FoundSet{})
			ba := Resolve(res.Grid, pl.End(), pl.Start, p.Words, FoundSet{})
			require.Equal(t, Found, ab.Kind)
			require.Equal(t, Found, ba.Kind)
			assert.Equal(t, pl.Entry.Word, ab.Word)
			assert.Equal(t, ab.Word, ba.Word)
			require.Len(t, ba.Cells, len(ab.Cells))
			for i := range ab.Cells {
				assert.Equal(t, ab.Cells[i], ba.Cells[len(ba.Cells)-1-i])
			}
		}
	}
}

func TestLine(t *testing.T) {
	step, n, ok := Line(grid.Coord{X: 4, Y: 3}, grid.Coord{X: 2, Y: 3})
	assert.True(t, ok)
	assert.Equal(t, grid.Direction{DX: -1, DY: 0}, step)
	assert.Equal(t, 3, n)

	step, n, ok = Line(grid.Coord{X: 0, Y: 5}, grid.Coord{X: 5, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, grid.Direction{DX: 1, DY: -1}, step)
	assert.Equal(t, 6, n)

	_, _, ok = Line(grid.Coord{X: 0, Y: 0}, grid.Coord{X: 2, Y: 1})
	assert.False(t, ok)
}

func TestFoundSet(t *testing.T) {
	s := FoundSet{}
	assert.True(t, s.Add("CAT"))
	assert.False(t, s.Add("CAT"))
	assert.True(t, s.Has("CAT"))
	assert.False(t, s.Has("DOG"))
	assert.Equal(t, 1, s.Len())
}
