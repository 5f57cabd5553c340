// internal/game/resolve.go
//
// Selection resolution: (start, end) → MatchResult.
//
// Steps:
//   1. Line check. With dx = end.X-start.X and dy = end.Y-start.Y, the pair is a
//      line when exactly one delta is zero, or both are non-zero with equal
//      magnitude. A single cell is not a line.
//   2. Extraction. Walk from start to end inclusive with step
//      (sign(dx), sign(dy)), max(|dx|,|dy|)+1 cells.
//   3. Lookup. Compare the letters against every target and against every
//      target reversed, so a drag in either direction along a word matches.
//   4. Idempotence. A target already in the found set yields AlreadyFound.

package game

import (
	"github.com/fareslefou/mots-m-l-s-bourse/internal/grid"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

// Line returns the unit step from start to end and the number of cells
// covered, or ok=false if the two do not lie on a straight line.
func Line(start, end grid.Coord) (step grid.Direction, n int, ok bool) {
	dx, dy := end.X-start.X, end.Y-start.Y
	if dx == 0 && dy == 0 {
		return grid.Direction{}, 0, false
	}
	if dx != 0 && dy != 0 && abs(dx) != abs(dy) {
		return grid.Direction{}, 0, false
	}
	return grid.Direction{DX: sign(dx), DY: sign(dy)}, max(abs(dx), abs(dy)) + 1, true
}

// Resolve maps a selection on g to a MatchResult.
// It never mutates found; inserting a fresh find is the caller's job.
func Resolve(g *grid.Grid, start, end grid.Coord, targets []words.Entry, found FoundSet) MatchResult {
	step, n, ok := Line(start, end)
	if !ok || !g.InBounds(start) || !g.InBounds(end) {
		return MatchResult{Kind: NoLine}
	}

	candidate := g.ReadAt(start, step, n)
	word, ok := lookup(candidate, targets, found)
	if !ok {
		return MatchResult{Kind: NotAWord}
	}
	if found.Has(word) {
		return MatchResult{Kind: AlreadyFound, Word: word}
	}

	cells := make([]grid.Coord, n)
	for i := range cells {
		cells[i] = start.Step(step, i)
	}
	return MatchResult{Kind: Found, Word: word, Cells: cells}
}

// lookup returns the canonical target matching candidate read forward or
// backward. A forward match is preferred; when it is already found and a
// different target matches the reversed reading and is not, that one wins.
func lookup(candidate string, targets []words.Entry, found FoundSet) (string, bool) {
	reversed := reverse(candidate)
	var fwd, rev string
	for _, t := range targets {
		if fwd == "" && t.Word == candidate {
			fwd = t.Word
		}
		if rev == "" && t.Word == reversed {
			rev = t.Word
		}
	}
	switch {
	case fwd != "" && rev != "" && found.Has(fwd) && !found.Has(rev):
		return rev, true
	case fwd != "":
		return fwd, true
	case rev != "":
		return rev, true
	}
	return "", false
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
