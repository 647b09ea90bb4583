package entity

import "fmt"

const (
	sortDescendingLabel = "Sort Descending"
	sortAscendingLabel  = "Sort Ascending"
)

// Status is the line shown above the board.
func (that Game) Status() string {
	if winner, ok := that.Winner(); ok {
		return fmt.Sprintf("%s is the winner!", winner)
	}

	if that.CurrentMove == BoardSize {
		return "It's a tie!"
	}

	return fmt.Sprintf("Next player: %s", that.NextMark())
}

// Caption counts the moves made, but only while the latest move is on screen.
func (that Game) Caption() string {
	if that.CurrentMove == 0 || !that.IsLatest() {
		return ""
	}

	if that.CurrentMove == 1 {
		return "You made 1 move"
	}

	return fmt.Sprintf("You made %d moves", that.CurrentMove)
}

// MoveLabel describes the history entry for move; move 0 has no entry.
func (that Game) MoveLabel(move int) string {
	if move <= 0 || move >= len(that.MoveCells) {
		return ""
	}

	row, col := RowCol(that.MoveCells[move])

	return fmt.Sprintf("Go to move #%d. (Row %d, Column %d)", move, row, col)
}

// Moves lists the move numbers that get a history entry, in display order.
func (that Game) Moves() []int {
	latest := that.LatestMove()
	moves := make([]int, 0, latest)

	for i := 1; i <= latest; i++ {
		if that.Ascending {
			moves = append(moves, i)
		} else {
			moves = append(moves, latest+1-i)
		}
	}

	return moves
}

// SortLabel names what the sort control will switch to.
func (that Game) SortLabel() string {
	if that.Ascending {
		return sortDescendingLabel
	}
	return sortAscendingLabel
}
