// cmd/play/main.go
//
// Terminal word-search player.
//
//	go run ./cmd/play                    # default puzzle, random grid
//	go run ./cmd/play -puzzle monuments  # another built-in or imported puzzle
//	go run ./cmd/play -seed 42 -size 14  # reproducible grid
//	go run ./cmd/play -daily             # today's shared grid
//
// With -daily the puzzle, seed and size are the ones POST /daily/new hands
// out for the same DAILY_SALT and DB_PATH; -size and -seed are ignored.
// Logs go to LOG_FILE when set; the screen belongs to the player.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/catalog"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/config"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/daily"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/game"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/tui"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

// puzzleSource is the part of the catalog the player reads.
type puzzleSource interface {
	Get(ctx context.Context, name string) (*words.Puzzle, error)
	List(ctx context.Context) ([]catalog.Summary, error)
}

type options struct {
	puzzle string
	size   int
	seed   int64
	daily  bool
}

// plan is everything needed to build the first session.
type plan struct {
	puzzle   *words.Puzzle
	settings game.Settings
	seed     int64
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := words.Init(cfg.WordsFile); err != nil {
		return fmt.Errorf("load puzzles: %w", err)
	}
	src, closeCatalog, err := openCatalog(cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeCatalog()

	pl, err := makePlan(context.Background(), opts, cfg, src, time.Now())
	if err != nil {
		return err
	}
	g, err := game.NewSeeded(pl.puzzle, pl.settings, pl.seed)
	if err != nil {
		return fmt.Errorf("build grid: %w", err)
	}
	logUnplaced(g)

	next := func() (*game.Game, error) {
		g, err := game.NewSeeded(pl.puzzle, pl.settings, rand.Int63())
		if err == nil {
			logUnplaced(g)
		}
		return g, err
	}
	if err := tui.Run(g, next); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

func parseFlags(args []string) (options, error) {
	var o options
	flags := flag.NewFlagSet("play", flag.ContinueOnError)
	flags.StringVar(&o.puzzle, "puzzle", "", "puzzle name (default: first built-in puzzle)")
	flags.IntVar(&o.size, "size", 0, "grid size (default: puzzle size, then GRID_SIZE)")
	flags.Int64Var(&o.seed, "seed", 0, "grid seed (0: random)")
	flags.BoolVar(&o.daily, "daily", false, "play today's puzzle")
	err := flags.Parse(args)
	return o, err
}

// makePlan resolves the flags into a puzzle, settings and seed.
// The daily branch mirrors the server: same candidate names, same seed,
// puzzle size then GRID_SIZE.
func makePlan(ctx context.Context, o options, cfg config.Config, src puzzleSource, now time.Time) (plan, error) {
	name, size, seed := o.puzzle, o.size, o.seed
	if o.daily {
		names, err := puzzleNames(ctx, src)
		if err != nil {
			return plan{}, err
		}
		var ok bool
		if name, ok = daily.Pick(now, cfg.DailySalt, names); !ok {
			return plan{}, errors.New("no puzzle to play today")
		}
		size, seed = 0, daily.Seed(now, cfg.DailySalt)
	} else if seed == 0 {
		seed = rand.Int63()
	}

	p, err := findPuzzle(ctx, src, name)
	if err != nil {
		return plan{}, err
	}
	if size == 0 && p.Size == 0 {
		size = cfg.GridSize
	}
	return plan{
		puzzle:   p,
		settings: game.Settings{Size: size, Attempts: cfg.Attempts, Regenerations: cfg.Regenerations},
		seed:     seed,
	}, nil
}

// puzzleNames lists built-in then catalog puzzle names.
func puzzleNames(ctx context.Context, src puzzleSource) ([]string, error) {
	var names []string
	for _, p := range words.All() {
		names = append(names, p.Name)
	}
	if src != nil {
		list, err := src.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list catalog: %w", err)
		}
		for _, s := range list {
			names = append(names, s.Name)
		}
	}
	return names, nil
}

// findPuzzle resolves name against the built-in puzzles, then the catalog.
func findPuzzle(ctx context.Context, src puzzleSource, name string) (*words.Puzzle, error) {
	if name == "" {
		if p := words.Default(); p != nil {
			return p, nil
		}
		return nil, errors.New("no puzzles loaded")
	}
	if p, ok := words.Lookup(name); ok {
		return p, nil
	}
	if src != nil {
		p, err := src.Get(ctx, name)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("load %q: %w", name, err)
		}
	}
	return nil, fmt.Errorf("unknown puzzle %q", name)
}

// openCatalog opens the puzzle catalog if its file exists. A missing file
// means nothing was imported; the player then sees built-in puzzles only.
func openCatalog(path string) (puzzleSource, func(), error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, func() {}, nil
	}
	db, err := catalog.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	if err := catalog.Migrate(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate catalog: %w", err)
	}
	return catalog.NewStore(db), func() { _ = db.Close() }, nil
}

// setupLogging points the global zerolog logger at LOG_FILE, or discards.
func setupLogging(cfg config.Config) (func(), error) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFile == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}

func logUnplaced(g *game.Game) {
	for _, e := range g.Unplaced {
		log.Warn().Str("gameId", g.ID).Int64("seed", g.Seed).Str("word", e.Word).Msg("word left out of the grid")
	}
}
