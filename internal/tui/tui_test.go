package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/game"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/grid"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

func newTestGame(t *testing.T) *game.Game {
	t.Helper()
	p := &words.Puzzle{Name: "animaux", Title: "Les animaux", Words: []words.Entry{
		{Word: "CHAT", Description: "Il ronronne."},
		{Word: "CHIEN", Description: "Il aboie."},
	}}
	g, err := game.NewSeeded(p, game.Settings{Size: 8}, 42)
	require.NoError(t, err)
	require.Len(t, g.Targets, 2)
	return g
}

func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m, cmd = next.(model), c
	}
	return m, cmd
}

// moveTo drives the cursor from its current position to c.
func moveTo(t *testing.T, m model, c grid.Coord) model {
	t.Helper()
	for m.cursor.X < c.X {
		m, _ = press(t, m, "right")
	}
	for m.cursor.X > c.X {
		m, _ = press(t, m, "left")
	}
	for m.cursor.Y < c.Y {
		m, _ = press(t, m, "down")
	}
	for m.cursor.Y > c.Y {
		m, _ = press(t, m, "up")
	}
	return m
}

func selectWord(t *testing.T, m model, pl grid.Placement) (model, tea.Cmd) {
	t.Helper()
	m = moveTo(t, m, pl.Start)
	m, _ = press(t, m, "space")
	m = moveTo(t, m, pl.End())
	return press(t, m, "space")
}

func TestCursorStaysOnGrid(t *testing.T) {
	m := NewModel(newTestGame(t), nil)
	m, _ = press(t, m, "up", "left", "k", "h")
	assert.Equal(t, grid.Coord{}, m.cursor)

	for i := 0; i < 20; i++ {
		m, _ = press(t, m, "l", "j")
	}
	assert.Equal(t, grid.Coord{X: 7, Y: 7}, m.cursor)
}

func TestSelectionFlow(t *testing.T) {
	g := newTestGame(t)
	m := NewModel(g, nil)

	m, _ = press(t, m, "space")
	require.NotNil(t, m.anchor)
	m, _ = press(t, m, "esc")
	assert.Nil(t, m.anchor, "esc cancels the selection")

	// (0,0) → (2,1) is not a straight line.
	m, _ = press(t, m, "space", "right", "right", "down", "space")
	assert.Nil(t, m.anchor)
	assert.Contains(t, m.status, "straight line")
	found, _ := g.Progress()
	assert.Equal(t, 0, found)

	pl := g.Placements[0]
	m, cmd := selectWord(t, m, pl)
	assert.Nil(t, cmd)
	assert.Contains(t, m.status, pl.Entry.Word)
	require.NotNil(t, m.last.Entry)
	assert.Equal(t, pl.Entry.Word, m.last.Entry.Word)
	assert.True(t, g.IsFound(pl.Entry.Word))
	assert.Contains(t, m.View(), pl.Entry.Description, "explanation card is shown")
	assert.Contains(t, m.View(), "1 / 2")

	m, _ = selectWord(t, m, pl)
	assert.Contains(t, m.status, "already found")
}

func TestWinCelebratesAfterDelay(t *testing.T) {
	g := newTestGame(t)
	m := NewModel(g, nil)

	var cmd tea.Cmd
	for _, pl := range g.Placements {
		m, cmd = selectWord(t, m, pl)
	}
	assert.Equal(t, stateWon, m.state)
	require.NotNil(t, cmd, "winning selection schedules the celebration")
	assert.NotContains(t, m.View(), "You found all")

	// Keys no longer move the cursor once the grid is complete.
	before := m.cursor
	m, _ = press(t, m, "right")
	assert.Equal(t, before, m.cursor)

	// A tick for another game is ignored.
	next, _ := m.Update(celebrateMsg{gameID: "other"})
	assert.Equal(t, stateWon, next.(model).state)

	next, _ = m.Update(celebrateMsg{gameID: g.ID})
	m = next.(model)
	assert.Equal(t, stateCelebrating, m.state)
	assert.Contains(t, m.View(), "You found all 2 words")
}

func TestNewGameKey(t *testing.T) {
	g := newTestGame(t)
	calls := 0
	m := NewModel(g, func() (*game.Game, error) {
		calls++
		return newTestGame(t), nil
	})
	m, _ = press(t, m, "right", "n")
	assert.Equal(t, 1, calls)
	assert.NotEqual(t, g.ID, m.game.ID)
	assert.Equal(t, grid.Coord{}, m.cursor)

	m = NewModel(g, func() (*game.Game, error) { return nil, errors.New("boom") })
	m, _ = press(t, m, "n")
	assert.Equal(t, stateError, m.state)
	assert.Contains(t, m.View(), "boom")
}

func TestQuit(t *testing.T) {
	m := NewModel(newTestGame(t), nil)
	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
