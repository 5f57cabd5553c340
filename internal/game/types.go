// internal/game/types.go
//
// Core type definitions for a word-search session.
// Defines:
//   - MatchKind / MatchResult: the outcome of resolving one selection.
//   - FoundSet: the monotonically growing set of found words.
//   - Outcome: what a session reports back after a selection.

package game

import (
	"github.com/fareslefou/mots-m-l-s-bourse/internal/grid"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

// MatchKind classifies a resolved selection.
// Possible values:
//   - "no_line":       start/end are not on one of the eight straight directions.
//   - "not_a_word":    a straight line, but its letters match no target either way.
//   - "already_found": matches a target the player has already found.
//   - "found":         matches a target for the first time.
type MatchKind string

const (
	NoLine       MatchKind = "no_line"
	NotAWord     MatchKind = "not_a_word"
	AlreadyFound MatchKind = "already_found"
	Found        MatchKind = "found"
)

// MatchResult is returned by Resolve.
// Word is the canonical target word for AlreadyFound and Found.
// Cells lists the selected cells from start to end for Found.
type MatchResult struct {
	Kind  MatchKind    `json:"result"`
	Word  string       `json:"word,omitempty"`
	Cells []grid.Coord `json:"cells,omitempty"`
}

// FoundSet holds canonical words the player has found.
type FoundSet map[string]struct{}

// Has reports whether w has been found.
func (s FoundSet) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// Add inserts w and reports whether it was new.
func (s FoundSet) Add(w string) bool {
	if s.Has(w) {
		return false
	}
	s[w] = struct{}{}
	return true
}

// Len returns the number of found words.
func (s FoundSet) Len() int { return len(s) }

// Outcome is the session-level result of one selection.
type Outcome struct {
	MatchResult
	Entry *words.Entry `json:"entry,omitempty"` // explanation card, set on Found
	Found int          `json:"found"`
	Total int          `json:"total"`
	State string       `json:"state"` // "playing" | "won"
	Won   bool         `json:"won"`   // true only on the selection that completed the puzzle
}

const (
	StatePlaying = "playing"
	StateWon     = "won"
)
