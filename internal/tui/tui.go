// internal/tui/tui.go
//
// Terminal player for one word-search session (bubbletea).
// Responsibilities:
//   - Cursor movement and two-press selection (anchor, then end) fed to Game.Select.
//   - Rendering the grid, the word list with found words crossed off, progress
//     and the explanation card of the last find (lipgloss).
//   - Showing the celebration view CelebrationDelay after the winning find.
//   - Key bindings and help (bubbles/key, bubbles/help).

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/game"
	"github.com/fareslefou/mots-m-l-s-bourse/internal/grid"
)

// CelebrationDelay is how long the completed grid stays on screen before
// the celebration view replaces it.
const CelebrationDelay = time.Second

type sessionState int

const (
	statePlaying sessionState = iota
	stateWon // waiting for the celebration tick
	stateCelebrating
	stateError
)

// NewGameFunc builds a fresh session for the "new grid" key.
type NewGameFunc func() (*game.Game, error)

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Mark, Cancel          key.Binding
	New, Help, Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mark, k.Cancel, k.New, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Mark, k.Cancel},
		{k.New, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Mark:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/end selection")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new grid")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	cursorStyle  = cellStyle.Reverse(true)
	selectStyle  = cellStyle.Background(lipgloss.Color("#5F5F87")).Foreground(lipgloss.Color("#EEEEEE"))
	foundStyle   = cellStyle.Foreground(lipgloss.Color("#87D787")).Bold(true)
	wordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EEEEEE"))
	crossedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F875F")).Strikethrough(true)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true).Underline(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Italic(true)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#FFA500")).Padding(0, 1).Width(40)
	sideStyle    = lipgloss.NewStyle().PaddingLeft(3)
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true).Border(lipgloss.DoubleBorder()).Padding(1, 4)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
)

type model struct {
	state   sessionState
	game    *game.Game
	newGame NewGameFunc
	cursor  grid.Coord
	anchor  *grid.Coord
	last    game.Outcome
	status  string
	keys    keyMap
	help    help.Model
	err     error
}

// celebrateMsg fires CelebrationDelay after the winning selection.
type celebrateMsg struct{ gameID string }

// NewModel returns the player model for g. newGame may be nil, which
// disables the "new grid" key.
func NewModel(g *game.Game, newGame NewGameFunc) model {
	return model{
		state:   statePlaying,
		game:    g,
		newGame: newGame,
		keys:    keys,
		help:    help.New(),
		status:  "Move with the arrows, press space on the first and last letter of a word.",
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case celebrateMsg:
		if m.state == stateWon && msg.gameID == m.game.ID {
			m.state = stateCelebrating
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.New):
			return m.restart(), nil
		}
		if m.state != statePlaying {
			return m, nil
		}
		return m.play(msg)
	}
	return m, nil
}

// play handles movement and selection keys while the grid is live.
func (m model) play(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	size := m.game.Grid.Size()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor.Y = max(m.cursor.Y-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor.Y = min(m.cursor.Y+1, size-1)
	case key.Matches(msg, m.keys.Left):
		m.cursor.X = max(m.cursor.X-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.cursor.X = min(m.cursor.X+1, size-1)
	case key.Matches(msg, m.keys.Cancel):
		m.anchor = nil
		m.status = "Selection cancelled."
	case key.Matches(msg, m.keys.Mark):
		if m.anchor == nil {
			a := m.cursor
			m.anchor = &a
			m.status = "Now move to the last letter and press space."
			return m, nil
		}
		return m.complete(*m.anchor, m.cursor)
	}
	return m, nil
}

// complete sends one finished gesture to the session.
func (m model) complete(start, end grid.Coord) (tea.Model, tea.Cmd) {
	m.anchor = nil
	out := m.game.Select(start, end)
	log.Debug().
		Str("gameId", m.game.ID).
		Stringer("start", start).
		Stringer("end", end).
		Str("result", string(out.Kind)).
		Str("word", out.Word).
		Msg("selection")

	switch out.Kind {
	case game.Found:
		m.last = out
		m.status = fmt.Sprintf("Bravo ! You found %s.", out.Word)
	case game.AlreadyFound:
		m.status = fmt.Sprintf("%s is already found.", out.Word)
	case game.NotAWord:
		m.status = "That is not one of the words."
	case game.NoLine:
		m.status = "A word runs in a straight line: across, down or diagonal."
	}

	if out.Won {
		m.state = stateWon
		id := m.game.ID
		log.Info().Str("gameId", id).Msg("puzzle completed")
		return m, tea.Tick(CelebrationDelay, func(time.Time) tea.Msg { return celebrateMsg{gameID: id} })
	}
	return m, nil
}

func (m model) restart() model {
	if m.newGame == nil {
		return m
	}
	g, err := m.newGame()
	if err != nil {
		log.Error().Err(err).Msg("new game")
		m.err = err
		m.state = stateError
		return m
	}
	fresh := NewModel(g, m.newGame)
	fresh.help = m.help
	return fresh
}

func (m model) View() string {
	switch m.state {
	case stateError:
		return "\n  " + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n  Press q to quit.\n"
	case stateCelebrating:
		return m.celebration()
	}

	title := titleStyle.Render(m.title())
	board := lipgloss.JoinHorizontal(lipgloss.Top, m.renderGrid(), sideStyle.Render(m.renderSide()))
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		title,
		"",
		board,
		"",
		statusStyle.Render(m.status),
		m.help.View(m.keys),
	) + "\n"
}

func (m model) title() string {
	if m.game.Title != "" {
		return m.game.Title
	}
	return strings.ToUpper(m.game.Puzzle)
}

// renderGrid draws the letters with found, selected and cursor cells styled.
func (m model) renderGrid() string {
	v := m.game.Snapshot()
	found := map[grid.Coord]bool{}
	for _, c := range v.Words {
		for _, cell := range c.Cells {
			found[cell] = true
		}
	}
	selected := map[grid.Coord]bool{}
	if m.anchor != nil {
		selected[*m.anchor] = true
		if step, n, ok := game.Line(*m.anchor, m.cursor); ok {
			for i := 0; i < n; i++ {
				selected[m.anchor.Step(step, i)] = true
			}
		}
	}

	var b strings.Builder
	for y, row := range v.Rows {
		cells := make([]string, len(row))
		for x := range row {
			c := grid.Coord{X: x, Y: y}
			style := cellStyle
			switch {
			case c == m.cursor && m.state == statePlaying:
				style = cursorStyle
			case selected[c]:
				style = selectStyle
			case found[c]:
				style = foundStyle
			}
			cells[x] = style.Render(string(row[x]))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		if y < len(v.Rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderSide lists the words, the progress and the last explanation card.
func (m model) renderSide() string {
	v := m.game.Snapshot()
	var b strings.Builder
	b.WriteString(titleStyle.Render("MOTS") + "\n")
	for _, c := range v.Words {
		if c.Found {
			b.WriteString(crossedStyle.Render(c.Word) + "\n")
		} else {
			b.WriteString(wordStyle.Render(c.Word) + "\n")
		}
	}
	fmt.Fprintf(&b, "\n%d / %d\n", v.Found, v.Total)

	if m.last.Entry != nil {
		card := m.last.Entry.Word
		if m.last.Entry.Description != "" {
			card += "\n\n" + m.last.Entry.Description
		}
		b.WriteString("\n" + cardStyle.Render(card))
	}
	return b.String()
}

func (m model) celebration() string {
	found, total := m.game.Progress()
	msg := fmt.Sprintf("Bravo !\n\nYou found all %d words of %s.", total, m.title())
	if found != total {
		msg = fmt.Sprintf("%d / %d", found, total)
	}
	hint := statusStyle.Render("n: new grid   q: quit")
	return "\n" + bannerStyle.Render(msg) + "\n\n" + hint + "\n"
}

// Run starts the full-screen player on g.
func Run(g *game.Game, newGame NewGameFunc) error {
	p := tea.NewProgram(NewModel(g, newGame), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
