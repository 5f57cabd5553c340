// internal/httpserver/routes_daily.go
//
// POST /daily/new starts a session on today's puzzle. The puzzle and the
// grid seed are both derived from the UTC date and DAILY_SALT, so every
// player gets the same grid for the day. Sessions are ordinary games:
// /game/{id} and /game/select apply.

package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/daily"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Post("/daily/new", s.handleDailyNew)
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	names, err := s.puzzleNames(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list puzzles")
		writeError(w, http.StatusInternalServerError, "catalog_error")
		return
	}
	now := s.now()
	name, ok := daily.Pick(now, s.cfg.DailySalt, names)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_puzzle")
		return
	}
	p, err := s.findPuzzle(r.Context(), name)
	if err != nil {
		s.writePuzzleError(w, r, err)
		return
	}
	s.startGame(w, r, p, 0, daily.Seed(now, s.cfg.DailySalt), daily.DateKey(now))
}

// puzzleNames returns every playable puzzle name: built-in, then catalog.
func (s *Server) puzzleNames(ctx context.Context) ([]string, error) {
	var names []string
	for _, p := range words.All() {
		names = append(names, p.Name)
	}
	if s.catalog != nil {
		list, err := s.catalog.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, sum := range list {
			names = append(names, sum.Name)
		}
	}
	return names, nil
}
