// main.go
//
// Word-search HTTP server.
// Loads configuration, the built-in puzzles and the SQLite puzzle catalog,
// then serves the JSON API. Idle game sessions are swept in the background.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/catalog"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/config"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/httpserver"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/store"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(cfg.WordsFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load puzzles")
	}
	n, w := words.Stats()
	log.Info().Int("puzzles", n).Int("words", w).Msg("puzzles loaded")

	db, err := catalog.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open catalog")
	}
	defer db.Close()
	if err := catalog.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate catalog")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemoryStore()
	go store.RunSweeper(ctx, mem, cfg.SessionIdle/4, cfg.SessionIdle, func(n int) {
		log.Info().Int("evicted", n).Int("live", mem.Len()).Msg("idle games swept")
	})

	srv := httpserver.New(mem, catalog.NewStore(db), cfg)
	log.Info().Str("port", cfg.Port).Msg("starting word-search server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
