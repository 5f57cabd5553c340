// internal/httpserver/routes_puzzles.go
//
// Puzzle catalog endpoints:
//   - GET  /puzzles → built-in and imported puzzles
//   - POST /puzzles → import one or more YAML puzzle definitions (admin)
//   - DELETE /puzzles/{name} → remove an imported puzzle (admin)

package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/catalog"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

// maxImportBytes caps the YAML body of POST /puzzles.
const maxImportBytes = 1 << 20

type puzzleInfo struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Size    int    `json:"size,omitempty"`
	Words   int    `json:"words"`
	BuiltIn bool   `json:"builtIn"`
}

func (s *Server) mountPuzzles(r chi.Router) {
	r.Get("/puzzles", s.handleListPuzzles)
	r.With(s.requireAdmin()).Post("/puzzles", s.handleImportPuzzles)
	r.With(s.requireAdmin()).Delete("/puzzles/{name}", s.handleDeletePuzzle)
}

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	out := []puzzleInfo{}
	builtIn := map[string]bool{}
	for _, p := range words.All() {
		builtIn[p.Name] = true
		out = append(out, puzzleInfo{Name: p.Name, Title: p.Title, Size: p.Size, Words: len(p.Words), BuiltIn: true})
	}
	if s.catalog != nil {
		list, err := s.catalog.List(r.Context())
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("list catalog")
			writeError(w, http.StatusInternalServerError, "catalog_error")
			return
		}
		for _, sum := range list {
			if builtIn[sum.Name] {
				continue // built-in puzzles shadow imported ones
			}
			out = append(out, puzzleInfo{Name: sum.Name, Title: sum.Title, Size: sum.Size, Words: sum.Words})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleImportPuzzles(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "no_catalog")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read_failed")
		return
	}
	list, err := words.ParsePuzzles(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_puzzle", "detail": err.Error()})
		return
	}

	for _, p := range list {
		if _, ok := words.Lookup(p.Name); ok {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "builtin_puzzle", "detail": p.Name})
			return
		}
		size := p.Size
		if size == 0 {
			size = s.cfg.GridSize
		}
		if size > MaxGridSize {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_size", "detail": p.Name})
			return
		}
		if p.Longest() > size {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "grid_too_small", "detail": p.Name})
			return
		}
	}

	imported := make([]string, 0, len(list))
	for _, p := range list {
		if err := s.catalog.Save(r.Context(), p); err != nil {
			hlog.FromRequest(r).Error().Err(err).Str("puzzle", p.Name).Msg("save puzzle")
			writeError(w, http.StatusInternalServerError, "catalog_error")
			return
		}
		imported = append(imported, p.Name)
	}
	hlog.FromRequest(r).Info().Strs("puzzles", imported).Msg("puzzles imported")
	writeJSON(w, http.StatusCreated, map[string]any{"imported": imported})
}

func (s *Server) handleDeletePuzzle(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "no_catalog")
		return
	}
	name := chi.URLParam(r, "name")
	err := s.catalog.Delete(r.Context(), name)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "unknown_puzzle")
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Str("puzzle", name).Msg("delete puzzle")
		writeError(w, http.StatusInternalServerError, "catalog_error")
	default:
		hlog.FromRequest(r).Info().Str("puzzle", name).Msg("puzzle deleted")
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
