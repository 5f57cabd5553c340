// internal/words/words.go
//
// Built-in puzzle registry.
//
// Responsibilities:
//   - Load puzzle definitions from a configured file or fall back to the embedded defaults.
//   - Keep them indexed by name for quick lookups.
//   - Supply Default, Lookup, All and Stats.
//
// Initialization behavior (Init):
//   1. If path is set (WORDS_FILE in the config), load every puzzle it holds
//      (one mapping or a list).
//   2. Otherwise, load the embedded assets/puzzles/*.yaml files.
//
// Initialization is run once (sync.Once). The first puzzle loaded is the default.

package words

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fareslefou/mots-m-l-s-bourse/assets"
)

var (
	initOnce   sync.Once
	puzzles    []*Puzzle          // load order; puzzles[0] is the default
	byName     map[string]*Puzzle // keyed by Puzzle.Name
	initialErr error
)

// Init loads the puzzle registry exactly once; later calls return the
// first result whatever path they pass.
// Returns an error if no puzzle could be loaded.
func Init(path string) error {
	initOnce.Do(func() {
		list, err := load(path)
		if err != nil {
			initialErr = err
			return
		}
		initialErr = register(list)
	})
	return initialErr
}

// load reads puzzles from path, or from the embedded assets when path is empty.
func load(path string) ([]*Puzzle, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return ParsePuzzles(data)
	}

	files, err := assets.PuzzleFiles()
	if err != nil {
		return nil, fmt.Errorf("embedded puzzles: %w", err)
	}
	var out []*Puzzle
	for _, data := range files {
		list, err := ParsePuzzles(data)
		if err != nil {
			return nil, err
		}
		out = append(out, list...)
	}
	return out, nil
}

// register replaces the registry contents with list.
func register(list []*Puzzle) error {
	if len(list) == 0 {
		return errors.New("words: no puzzles loaded")
	}
	m := make(map[string]*Puzzle, len(list))
	for _, p := range list {
		if _, dup := m[p.Name]; dup {
			return fmt.Errorf("words: duplicate puzzle %q", p.Name)
		}
		m[p.Name] = p
	}
	puzzles, byName = list, m
	return nil
}

// Default returns the first loaded puzzle, or nil before Init.
func Default() *Puzzle {
	if len(puzzles) == 0 {
		return nil
	}
	return puzzles[0]
}

// Lookup returns the built-in puzzle with the given name.
func Lookup(name string) (*Puzzle, bool) {
	p, ok := byName[name]
	return p, ok
}

// All returns the built-in puzzles in load order.
func All() []*Puzzle {
	return append([]*Puzzle(nil), puzzles...)
}

// Stats returns counts of loaded puzzles and target words.
func Stats() (puzzleCount int, wordCount int) {
	for _, p := range puzzles {
		wordCount += len(p.Words)
	}
	return len(puzzles), wordCount
}
