// Package tui plays one game in the terminal.
package tui

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/presenter"
)

const (
	// boardTop is the screen row of the first board row; the status line sits above it.
	boardTop = 1
	// movesTop is the screen row of the first move entry; the controls line sits above it.
	movesTop = 1
	sideSize = 3

	helpText = "arrows/hjkl move · enter/space play · 1-9 cell · [ ] history · s sort · n new game · q quit"
)

type Model struct {
	logger *slog.Logger
	styles Styles

	game   entity.Game
	cursor int
}

func New(logger *slog.Logger, game entity.Game) Model {
	return Model{
		logger: logger.With("component", "tui"),
		styles: DefaultStyles(),
		game:   game,
		cursor: 4,
	}
}

func (m Model) Game() entity.Game {
	return m.game
}

func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor >= sideSize {
			m.cursor -= sideSize
		}
	case "down", "j":
		if m.cursor < entity.BoardSize-sideSize {
			m.cursor += sideSize
		}
	case "left", "h":
		if m.cursor%sideSize > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor%sideSize < sideSize-1 {
			m.cursor++
		}
	case "enter", " ":
		m = m.play(m.cursor)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.cursor = int(key[0] - '1')
		m = m.play(m.cursor)
	case "[":
		m = m.jump(m.game.CurrentMove - 1)
	case "]":
		m = m.jump(m.game.CurrentMove + 1)
	case "s":
		m.game = m.game.ToggleSort()
	case "n":
		m.game = m.game.Reset()
		m.logger.Debug("new game")
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m
	}

	if cell, ok := cellAt(msg.X, msg.Y); ok {
		m.cursor = cell
		return m.play(cell)
	}

	if move, ok := m.moveAt(msg.X, msg.Y); ok {
		return m.jump(move)
	}

	return m
}

// play ignores rejected moves, as a click on a taken cell does nothing.
func (m Model) play(cell int) Model {
	next, err := m.game.Play(cell)
	if err != nil {
		m.logger.Debug("move ignored", "cell", cell, "reason", err)
		return m
	}

	m.game = next

	return m
}

func (m Model) jump(move int) Model {
	next, err := m.game.JumpTo(move)
	if err != nil {
		return m
	}

	m.game = next

	return m
}

// cellAt maps a screen position onto a board cell.
func cellAt(x, y int) (int, bool) {
	row := y - boardTop
	col := x / cellWidth

	if x < 0 || row < 0 || row >= sideSize || col >= sideSize {
		return 0, false
	}

	return row*sideSize + col, true
}

// moveAt maps a screen position onto an entry of the move list.
func (m Model) moveAt(x, y int) (int, bool) {
	if x < lipgloss.Width(m.boardPanel(presenter.Build(m.game)))+panelGap {
		return 0, false
	}

	moves := m.game.Moves()
	index := y - movesTop
	if index < 0 || index >= len(moves) {
		return 0, false
	}

	return moves[index], true
}

func (m Model) View() string {
	screen := presenter.Build(m.game)

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		m.boardPanel(screen),
		strings.Repeat(" ", panelGap),
		m.infoPanel(screen),
	)

	return view + "\n\n" + m.styles.Help.Render(helpText) + "\n"
}

func (m Model) boardPanel(screen presenter.Screen) string {
	lines := make([]string, 0, sideSize+2)
	lines = append(lines, m.styles.Status.Render(screen.Status))

	for row := 0; row < sideSize; row++ {
		cells := make([]string, 0, sideSize)
		for col := 0; col < sideSize; col++ {
			cells = append(cells, m.renderCell(screen.Cells[row*sideSize+col]))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	lines = append(lines, m.styles.Caption.Render(screen.Caption))

	return strings.Join(lines, "\n")
}

func (m Model) renderCell(cell presenter.Cell) string {
	glyph := string(cell.Mark)
	if cell.Mark == entity.EmptyCell {
		glyph = emptyGlyph
	}

	return m.cellStyle(cell).Render(glyph)
}

func (m Model) cellStyle(cell presenter.Cell) lipgloss.Style {
	onCursor := cell.Index == m.cursor

	switch {
	case cell.Highlighted && onCursor:
		return m.styles.WinningCursor
	case cell.Highlighted:
		return m.styles.Winning
	case onCursor:
		return m.styles.Cursor
	default:
		return m.styles.Cell
	}
}

func (m Model) infoPanel(screen presenter.Screen) string {
	lines := make([]string, 0, len(screen.Moves)+1)
	lines = append(lines, "[s] "+screen.SortLabel+"   [n] New Game")

	for _, move := range screen.Moves {
		if move.Current {
			lines = append(lines, m.styles.CurrentMove.Render("> "+move.Label))
			continue
		}
		lines = append(lines, m.styles.Move.Render("  "+move.Label))
	}

	return strings.Join(lines, "\n")
}
