// assets/embed.go
//
// Built-in puzzle definitions shipped inside the binary.
// Each puzzles/*.yaml file holds one puzzle (see internal/words for the format).

package assets

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed puzzles/*.yaml
var FS embed.FS

// PuzzleFiles returns the raw contents of every embedded puzzle file,
// ordered by file name so the default puzzle is stable across builds.
func PuzzleFiles() ([][]byte, error) {
	names, err := fs.Glob(FS, "puzzles/*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([][]byte, 0, len(names))
	for _, name := range names {
		b, err := FS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
