// internal/catalog/store.go
//
// SQLite storage for imported puzzle definitions.
// Responsibilities:
//   - Save a puzzle and its words, replacing any previous version, in one transaction.
//   - Load a puzzle by name, list summaries, delete.
//
// Notes:
//   - Game sessions are never stored here; only puzzle definitions.

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

// ErrNotFound is returned by Get for unknown puzzle names.
var ErrNotFound = errors.New("catalog: puzzle not found")

// Summary is one row of the puzzle listing.
type Summary struct {
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Size      int       `json:"size,omitempty"`
	Words     int       `json:"words"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists imported puzzle definitions.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Save inserts or replaces a puzzle and its words in one transaction.
// The puzzle must already be normalized and valid.
func (s *Store) Save(ctx context.Context, p *words.Puzzle) error {
	if err := p.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO puzzles (name, title, size, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET title=excluded.title, size=excluded.size, updated_at=excluded.updated_at`,
		p.Name, p.Title, p.Size, now, now,
	); err != nil {
		return fmt.Errorf("upsert puzzle: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM puzzle_words WHERE puzzle=?`, p.Name); err != nil {
		return fmt.Errorf("clear words: %w", err)
	}
	for i, e := range p.Words {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO puzzle_words (puzzle, position, word, image, description)
            VALUES (?, ?, ?, ?, ?)`,
			p.Name, i, e.Word, e.Image, e.Description,
		); err != nil {
			return fmt.Errorf("insert word %s: %w", e.Word, err)
		}
	}
	return tx.Commit()
}

// Get loads a puzzle by name.
func (s *Store) Get(ctx context.Context, name string) (*words.Puzzle, error) {
	p := &words.Puzzle{Name: name}
	err := s.db.QueryRowContext(ctx, `SELECT title, size FROM puzzles WHERE name=?`, name).Scan(&p.Title, &p.Size)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT word, image, description
        FROM puzzle_words
        WHERE puzzle=?
        ORDER BY position ASC`, name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e words.Entry
		if err := rows.Scan(&e.Word, &e.Image, &e.Description); err != nil {
			return nil, err
		}
		p.Words = append(p.Words, e)
	}
	return p, rows.Err()
}

// List returns every stored puzzle, by name.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT p.name, p.title, p.size, p.updated_at, COUNT(w.word)
        FROM puzzles p
        LEFT JOIN puzzle_words w ON w.puzzle = p.name
        GROUP BY p.name
        ORDER BY p.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var r Summary
		var updated string
		if err := rows.Scan(&r.Name, &r.Title, &r.Size, &updated, &r.Words); err != nil {
			return nil, err
		}
		r.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Delete removes a puzzle and its words.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM puzzles WHERE name=?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
