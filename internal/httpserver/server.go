// internal/httpserver/server.go
//
// HTTP server wiring for the word-search backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, JSON, CORS, timeouts, panic recovery).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /game/new, GET /game/{id}, POST /game/select.
//   - Daily endpoint: POST /daily/new.
//   - Puzzle catalog: GET /puzzles, POST and DELETE /puzzles (admin).
//
// Notes:
//   - Live sessions are held in the store only; the catalog holds puzzle
//     definitions, never game state.
//   - Each session is guarded by its own game token (see auth.go).

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/catalog"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/config"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/store"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

// Catalog is the imported-puzzle storage the server reads and writes.
type Catalog interface {
	Save(ctx context.Context, p *words.Puzzle) error
	Get(ctx context.Context, name string) (*words.Puzzle, error)
	List(ctx context.Context) ([]catalog.Summary, error)
	Delete(ctx context.Context, name string) error
}

// Server bundles router, session store, catalog and configuration.
type Server struct {
	r       *chi.Mux
	store   store.Store
	catalog Catalog
	cfg     config.Config
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, cat Catalog, cfg config.Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, catalog: cat, cfg: cfg, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "mots-meles",
			"endpoints": []string{"/health", "POST /game/new", "GET /game/{id}", "POST /game/select", "POST /daily/new", "/puzzles"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "games": s.store.Len()})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		p, n := words.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"puzzles": p, "words": n})
	})

	s.mountGame(s.r)
	s.mountDaily(s.r)
	s.mountPuzzles(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("requestId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
