// internal/words/parse.go
//
// YAML decoding, normalization and validation of puzzle definitions.
//
// A file holds either a single puzzle mapping or a sequence of them.
// Words are normalized before validation: accents are folded
// ("LUMIÈRE" → "LUMIERE"), separators are dropped and the result is
// uppercased, so that every stored word is plain A–Z.

package words

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// MaxSize is the largest grid side a puzzle may ask for.
const MaxSize = 30

var (
	ErrNoName        = errors.New("words: puzzle has no name")
	ErrNoWords       = errors.New("words: puzzle has no words")
	ErrInvalidWord   = errors.New("words: word must be letters A-Z only")
	ErrDuplicateWord = errors.New("words: duplicate word")
	ErrEmptyDocument = errors.New("words: empty document")
	ErrInvalidSize   = errors.New("words: puzzle size out of range")
)

// ParsePuzzle decodes a single puzzle and normalizes + validates it.
func ParsePuzzle(data []byte) (*Puzzle, error) {
	var p Puzzle
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode puzzle: %w", err)
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParsePuzzles decodes a document holding one puzzle or a list of puzzles.
func ParsePuzzles(data []byte) ([]*Puzzle, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode puzzles: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	root := doc.Content[0]
	var list []Puzzle
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("decode puzzles: %w", err)
		}
	case yaml.MappingNode:
		var p Puzzle
		if err := root.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode puzzle: %w", err)
		}
		list = append(list, p)
	default:
		return nil, ErrEmptyDocument
	}

	out := make([]*Puzzle, 0, len(list))
	for i := range list {
		p := &list[i]
		p.Normalize()
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("puzzle %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Normalize rewrites the puzzle in place: trimmed lowercase name,
// normalized words.
func (p *Puzzle) Normalize() {
	p.Name = strings.ToLower(strings.TrimSpace(p.Name))
	p.Title = strings.TrimSpace(p.Title)
	for i := range p.Words {
		p.Words[i].Word = Normalize(p.Words[i].Word)
	}
}

// Validate checks the invariants every puzzle must hold before a grid
// can be generated from it.
func (p *Puzzle) Validate() error {
	if p.Name == "" {
		return ErrNoName
	}
	if len(p.Words) == 0 {
		return ErrNoWords
	}
	seen := make(map[string]struct{}, len(p.Words))
	for _, e := range p.Words {
		if !IsWord(e.Word) {
			return fmt.Errorf("%w: %q", ErrInvalidWord, e.Word)
		}
		if _, dup := seen[e.Word]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateWord, e.Word)
		}
		seen[e.Word] = struct{}{}
	}
	if p.Size < 0 {
		p.Size = 0
	}
	if p.Size > MaxSize {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidSize, p.Size, MaxSize)
	}
	return nil
}

var ligatures = strings.NewReplacer("Œ", "OE", "œ", "oe", "Æ", "AE", "æ", "ae")

// Normalize folds accents, drops separators and uppercases s.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		folded = s
	}
	folded = ligatures.Replace(folded)
	folded = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '\'', '’':
			return -1
		}
		return r
	}, folded)
	return strings.ToUpper(folded)
}

// IsWord reports whether s is a non-empty run of uppercase ASCII letters.
func IsWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
