// internal/game/engine.go
//
// Game session for one word-search puzzle.
// Responsibilities:
//   - Build the grid for a puzzle (with a bounded number of regenerations).
//   - Resolve player selections and record fresh finds.
//   - Track progress and latch the win so it fires exactly once.
//
// Notes:
//   - A session owns all of its mutable state; there are no package-level
//     singletons, so any number of sessions can live side by side.
//   - Words the generator could not place are reported in Unplaced and left
//     out of the session's targets, so every session is winnable.
//   - Methods lock the session; concurrent requests on one game serialise.
package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/grid"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

const (
	DefaultSize          = 12
	DefaultRegenerations = 5
)

var (
	ErrNoWords      = errors.New("game: puzzle has no words")
	ErrGridTooSmall = errors.New("game: grid is smaller than the longest word")
	ErrGridTooLarge = errors.New("game: grid size above words.MaxSize")
	ErrNoPlacement  = errors.New("game: no word could be placed")
)

// Settings tunes grid generation for a session.
type Settings struct {
	Size          int              // <= 0: puzzle size, then DefaultSize
	Attempts      int              // per-word draws, <= 0: grid.DefaultAttempts
	Regenerations int              // full rebuilds, <= 0: DefaultRegenerations
	Directions    []grid.Direction // nil: grid.Canonical()
}

// Game holds the state of a single word-search session.
type Game struct {
	ID         string           // Unique game identifier (UUID).
	Puzzle     string           // Puzzle name.
	Title      string           // Puzzle title, for display.
	Seed       int64            // Seed the grid was built from (NewSeeded only).
	Grid       *grid.Grid       // Read-only after New.
	Targets    []words.Entry    // Placed words, in puzzle order.
	Placements []grid.Placement // Where each target was put.
	Unplaced   []words.Entry    // Words left out after every rebuild.
	CreatedAt  time.Time

	mu         sync.Mutex
	found      FoundSet
	order      []string                // found words, in the order found
	cells      map[string][]grid.Coord // highlighted cells per found word
	won        bool
	lastActive time.Time
}

// NewSeeded builds a session from a deterministic seed.
func NewSeeded(p *words.Puzzle, s Settings, seed int64) (*Game, error) {
	g, err := New(p, s, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	g.Seed = seed
	return g, nil
}

// New builds a session for p using rng for every random draw.
//
// The grid is rebuilt up to s.Regenerations times while words remain
// unplaced; the first complete build wins, otherwise the build with the
// fewest unplaced words is kept.
func New(p *words.Puzzle, s Settings, rng grid.Rand) (*Game, error) {
	if p == nil || len(p.Words) == 0 {
		return nil, ErrNoWords
	}
	size := s.Size
	if size <= 0 {
		size = p.Size
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > words.MaxSize {
		return nil, ErrGridTooLarge
	}
	if p.Longest() > size {
		return nil, ErrGridTooSmall
	}
	dirs := s.Directions
	if len(dirs) == 0 {
		dirs = grid.Canonical()
	}
	regens := s.Regenerations
	if regens <= 0 {
		regens = DefaultRegenerations
	}

	gen := grid.Generator{Size: size, Directions: dirs, Attempts: s.Attempts, Rand: rng}
	var best *grid.Result
	for i := 0; i < regens; i++ {
		res, err := gen.Generate(p.Words)
		if err != nil {
			return nil, err
		}
		if best == nil || len(res.Unplaced) < len(best.Unplaced) {
			best = res
		}
		if best.Complete() {
			break
		}
	}
	if len(best.Placed) == 0 {
		return nil, ErrNoPlacement
	}

	placed := make(map[string]bool, len(best.Placed))
	for _, pl := range best.Placed {
		placed[pl.Entry.Word] = true
	}
	targets := make([]words.Entry, 0, len(best.Placed))
	for _, e := range p.Words {
		if placed[e.Word] {
			targets = append(targets, e)
		}
	}

	now := time.Now().UTC()
	return &Game{
		ID:         uuid.NewString(),
		Puzzle:     p.Name,
		Title:      p.Title,
		Grid:       best.Grid,
		Targets:    targets,
		Placements: best.Placed,
		Unplaced:   best.Unplaced,
		CreatedAt:  now,
		found:      FoundSet{},
		cells:      make(map[string][]grid.Coord),
		lastActive: now,
	}, nil
}

// Select resolves one completed gesture and records a fresh find.
//
// State transitions:
//   - Found → the word joins the found set.
//   - If that find makes found == total → state becomes "won" and the
//     returned Outcome has Won = true. Later calls never set Won again.
func (g *Game) Select(start, end grid.Coord) Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastActive = time.Now().UTC()

	res := Resolve(g.Grid, start, end, g.Targets, g.found)
	out := Outcome{MatchResult: res, Total: len(g.Targets)}

	if res.Kind == Found {
		g.found.Add(res.Word)
		g.order = append(g.order, res.Word)
		g.cells[res.Word] = res.Cells
		if e, ok := g.entry(res.Word); ok {
			out.Entry = &e
		}
		if !g.won && g.found.Len() == len(g.Targets) {
			g.won = true
			out.Won = true
		}
	}

	out.Found = g.found.Len()
	out.State = g.state()
	return out
}

// State reports "playing" or "won".
func (g *Game) State() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() string {
	if g.won {
		return StateWon
	}
	return StatePlaying
}

// Progress returns (found, total).
func (g *Game) Progress() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.found.Len(), len(g.Targets)
}

// IsFound reports whether w has been found in this session.
func (g *Game) IsFound(w string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.found.Has(w)
}

// LastActive is the time of the last selection (or creation).
func (g *Game) LastActive() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastActive
}

func (g *Game) entry(w string) (words.Entry, bool) {
	for _, e := range g.Targets {
		if e.Word == w {
			return e, true
		}
	}
	return words.Entry{}, false
}

// Card is a target word as shown in the word list.
type Card struct {
	words.Entry
	Found bool         `json:"found"`
	Cells []grid.Coord `json:"cells,omitempty"`
}

// View is a copy of the session state, safe to serialise.
type View struct {
	ID       string        `json:"gameId"`
	Puzzle   string        `json:"puzzle"`
	Title    string        `json:"title,omitempty"`
	Seed     int64         `json:"seed"`
	Size     int           `json:"size"`
	Rows     []string      `json:"rows"`
	Words    []Card        `json:"words"`
	Order    []string      `json:"order"`
	Unplaced []words.Entry `json:"unplaced"`
	Found    int           `json:"found"`
	Total    int           `json:"total"`
	State    string        `json:"state"`
}

// Snapshot returns a copy of the current session state.
func (g *Game) Snapshot() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	cards := make([]Card, len(g.Targets))
	for i, e := range g.Targets {
		cards[i] = Card{Entry: e, Found: g.found.Has(e.Word), Cells: g.cells[e.Word]}
	}
	unplaced := append([]words.Entry{}, g.Unplaced...)
	return View{
		ID:       g.ID,
		Puzzle:   g.Puzzle,
		Title:    g.Title,
		Seed:     g.Seed,
		Size:     g.Grid.Size(),
		Rows:     g.Grid.Rows(),
		Words:    cards,
		Order:    append([]string{}, g.order...),
		Unplaced: unplaced,
		Found:    g.found.Len(),
		Total:    len(g.Targets),
		State:    g.state(),
	}
}
