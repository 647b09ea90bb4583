package entity

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
)

// NoCell marks the move-cell slot of move 0, which has no cell.
const NoCell = -1

// Game is one session's state: every board snapshot played so far plus the view pointer into them.
// Transition methods use value receivers and return the next Game; the receiver is never modified.
type Game struct {
	ID          string  `json:"id"`
	History     []Board `json:"history"`
	CurrentMove int     `json:"current_move"`
	// MoveCells is aligned with History: MoveCells[i] is the cell taken by move i.
	MoveCells []int `json:"move_cells"`
	// WinningLine is the highlighted line of the board being viewed.
	WinningLine []int `json:"winning_line,omitempty"`
	// LastWinningLine caches the detector result after the latest move.
	LastWinningLine []int `json:"last_winning_line,omitempty"`
	Ascending       bool  `json:"ascending"`
}

func NewGame(id string) Game {
	return Game{
		ID:        id,
		History:   []Board{{}},
		MoveCells: []int{NoCell},
		Ascending: true,
	}
}

func (that Game) CurrentBoard() Board {
	return that.History[that.CurrentMove]
}

func (that Game) LatestMove() int {
	return len(that.History) - 1
}

func (that Game) IsLatest() bool {
	return that.CurrentMove == that.LatestMove()
}

// NextMark - X moves on even move numbers, O on odd ones.
func (that Game) NextMark() Mark {
	if that.CurrentMove%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

// Winner reports the winner of the board being viewed.
func (that Game) Winner() (Mark, bool) {
	winner, _, ok := DetectWinner(that.CurrentBoard())
	return winner, ok
}

// Play - places the next mark on cell and discards any history after the current move.
func (that Game) Play(cell int) (Game, error) {
	if !IsValidCell(cell) {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	board := that.CurrentBoard()

	if _, _, ok := DetectWinner(board); ok {
		return that, apperror.ErrGameFinished
	}

	if board[cell] != EmptyCell {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	nextBoard := board.With(cell, that.NextMark())
	branch := that.CurrentMove + 1

	history := make([]Board, branch, branch+1)
	copy(history, that.History[:branch])
	that.History = append(history, nextBoard)

	that.MoveCells = append(truncateCells(that.MoveCells, branch), cell)
	that.CurrentMove = branch

	that.LastWinningLine = nil
	if _, line, ok := DetectWinner(nextBoard); ok {
		that.LastWinningLine = line[:]
	}
	that.WinningLine = slices.Clone(that.LastWinningLine)

	return that, nil
}

// JumpTo - moves the view pointer. The winning line is only shown again when returning to the latest move.
func (that Game) JumpTo(move int) (Game, error) {
	if move < 0 || move >= len(that.History) {
		return that, fmt.Errorf("%w: move %d", apperror.ErrInvalidMove, move)
	}

	that.CurrentMove = move

	if that.IsLatest() {
		that.WinningLine = slices.Clone(that.LastWinningLine)
	} else {
		that.WinningLine = nil
	}

	return that, nil
}

func (that Game) ToggleSort() Game {
	that.Ascending = !that.Ascending
	return that
}

// Reset - starts over on an empty board. The session id and sort order survive.
func (that Game) Reset() Game {
	fresh := NewGame(that.ID)
	fresh.Ascending = that.Ascending

	return fresh
}

// Clone returns a deep copy that shares no slices with the receiver.
func (that Game) Clone() Game {
	that.History = slices.Clone(that.History)
	that.MoveCells = slices.Clone(that.MoveCells)
	that.WinningLine = slices.Clone(that.WinningLine)
	that.LastWinningLine = slices.Clone(that.LastWinningLine)

	return that
}

// truncateCells copies the first n entries, padding with NoCell if cells is short.
func truncateCells(cells []int, n int) []int {
	out := make([]int, n, n+1)
	for i := range out {
		out[i] = NoCell
	}
	copy(out, cells[:min(n, len(cells))])

	return out
}
