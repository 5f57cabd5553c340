// internal/httpserver/routes_game.go
//
// Game endpoints:
//   - POST /game/new     → build a session for a puzzle and hand out its token
//   - GET  /game/{id}    → session snapshot (token required)
//   - POST /game/select  → resolve one selection gesture (token required)

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/catalog"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/game"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/grid"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

// MaxGridSize bounds the size a client may ask for.
const MaxGridSize = words.MaxSize

var errUnknownPuzzle = errors.New("unknown puzzle")

// newGameReq is the POST /game/new payload. Every field is optional.
type newGameReq struct {
	Puzzle string `json:"puzzle"`
	Size   int    `json:"size"`
	Seed   *int64 `json:"seed"`
}

// newGameRes is the session view plus the token that unlocks it.
type newGameRes struct {
	game.View
	Token string `json:"token"`
	Date  string `json:"date,omitempty"`
}

type selectReq struct {
	GameID string      `json:"gameId"`
	Start  *grid.Coord `json:"start"`
	End    *grid.Coord `json:"end"`
}

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.With(s.requireGameToken()).Get("/game/{id}", s.handleGetGame)
	r.With(s.requireGameToken()).Post("/game/select", s.handleSelect)
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Size < 0 || req.Size > MaxGridSize {
		writeError(w, http.StatusBadRequest, "invalid_size")
		return
	}

	p, err := s.findPuzzle(r.Context(), req.Puzzle)
	if err != nil {
		s.writePuzzleError(w, r, err)
		return
	}
	seed := rand.Int63()
	if req.Seed != nil {
		seed = *req.Seed
	}
	s.startGame(w, r, p, req.Size, seed, "")
}

// startGame builds the session, stores it, and writes the token + view.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, p *words.Puzzle, size int, seed int64, date string) {
	logger := hlog.FromRequest(r)

	g, err := game.NewSeeded(p, s.settings(p, size), seed)
	switch {
	case errors.Is(err, game.ErrGridTooSmall):
		writeError(w, http.StatusUnprocessableEntity, "grid_too_small")
		return
	case errors.Is(err, game.ErrGridTooLarge):
		writeError(w, http.StatusBadRequest, "invalid_size")
		return
	case errors.Is(err, game.ErrNoPlacement):
		writeError(w, http.StatusUnprocessableEntity, "no_placement")
		return
	case err != nil:
		logger.Error().Err(err).Str("puzzle", p.Name).Msg("new game")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	if len(g.Unplaced) > 0 {
		unplaced := make([]string, len(g.Unplaced))
		for i, e := range g.Unplaced {
			unplaced[i] = e.Word
		}
		logger.Warn().
			Str("gameId", g.ID).
			Str("puzzle", p.Name).
			Int64("seed", seed).
			Strs("unplaced", unplaced).
			Msg("words left out of the grid")
	}

	if err := s.store.Save(r.Context(), g); err != nil {
		logger.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signGameToken(g.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setGameCookie(w, tok, exp)

	logger.Info().Str("gameId", g.ID).Str("puzzle", p.Name).Int64("seed", seed).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{View: g.Snapshot(), Token: tok, Date: date})
}

// settings picks the grid size: request, then puzzle, then GRID_SIZE.
func (s *Server) settings(p *words.Puzzle, size int) game.Settings {
	if size == 0 && p.Size == 0 {
		size = s.cfg.GridSize
	}
	return game.Settings{
		Size:          size,
		Attempts:      s.cfg.Attempts,
		Regenerations: s.cfg.Regenerations,
	}
}

// findPuzzle resolves name against the built-in puzzles, then the catalog.
// An empty name selects the default puzzle.
func (s *Server) findPuzzle(ctx context.Context, name string) (*words.Puzzle, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		if p := words.Default(); p != nil {
			return p, nil
		}
		return nil, errUnknownPuzzle
	}
	if p, ok := words.Lookup(name); ok {
		return p, nil
	}
	if s.catalog == nil {
		return nil, errUnknownPuzzle
	}
	p, err := s.catalog.Get(ctx, name)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, errUnknownPuzzle
	}
	return p, err
}

func (s *Server) writePuzzleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errUnknownPuzzle) {
		writeError(w, http.StatusNotFound, "unknown_puzzle")
		return
	}
	hlog.FromRequest(r).Error().Err(err).Msg("load puzzle")
	writeError(w, http.StatusInternalServerError, "catalog_error")
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !tokenAllows(r, id) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.GameID == "" || req.Start == nil || req.End == nil {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}
	if !tokenAllows(r, req.GameID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	out := g.Select(*req.Start, *req.End)
	if out.Kind == game.Found {
		hlog.FromRequest(r).Debug().
			Str("gameId", g.ID).
			Str("word", out.Word).
			Int("found", out.Found).
			Int("total", out.Total).
			Msg("word found")
	}
	if out.Won {
		hlog.FromRequest(r).Info().Str("gameId", g.ID).Msg("puzzle completed")
	}
	writeJSON(w, http.StatusOK, out)
}
