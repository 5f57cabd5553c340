package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSaveGetList(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newTestDB(t))

	p := &words.Puzzle{
		Name:  "animaux",
		Title: "Les animaux",
		Size:  10,
		Words: []words.Entry{
			{Word: "CHAT", Image: "chat.jpg", Description: "Il ronronne."},
			{Word: "CHIEN", Description: "Il aboie."},
		},
	}
	require.NoError(t, s.Save(ctx, p))

	got, err := s.Get(ctx, "animaux")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "animaux", list[0].Name)
	assert.Equal(t, 2, list[0].Words)
	assert.False(t, list[0].UpdatedAt.IsZero())

	t.Run("save replaces words", func(t *testing.T) {
		p2 := &words.Puzzle{Name: "animaux", Title: "Animaux", Words: []words.Entry{{Word: "LAPIN"}}}
		require.NoError(t, s.Save(ctx, p2))
		got, err := s.Get(ctx, "animaux")
		require.NoError(t, err)
		assert.Equal(t, "Animaux", got.Title)
		require.Len(t, got.Words, 1)
		assert.Equal(t, "LAPIN", got.Words[0].Word)
	})

	t.Run("invalid puzzle is rejected", func(t *testing.T) {
		err := s.Save(ctx, &words.Puzzle{Name: "bad", Words: []words.Entry{{Word: "abc"}}})
		assert.ErrorIs(t, err, words.ErrInvalidWord)
		_, err = s.Get(ctx, "bad")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete cascades", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "animaux"))
		_, err := s.Get(ctx, "animaux")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, "animaux"), ErrNotFound)
	})
}
