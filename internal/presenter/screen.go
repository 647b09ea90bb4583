// Package presenter turns a game into the view every host renders.
package presenter

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type Cell struct {
	Index       int         `json:"index"`
	Mark        entity.Mark `json:"mark"`
	Row         int         `json:"row"`
	Column      int         `json:"column"`
	Highlighted bool        `json:"highlighted"`
}

type MoveButton struct {
	Move    int    `json:"move"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// Screen is everything a host needs to draw one frame.
type Screen struct {
	Cells       [entity.BoardSize]Cell `json:"cells"`
	Status      string                 `json:"status"`
	Caption     string                 `json:"caption,omitempty"`
	CurrentMove int                    `json:"current_move"`
	Ascending   bool                   `json:"ascending"`
	SortLabel   string                 `json:"sort_label"`
	Moves       []MoveButton           `json:"moves"`
}

func Build(game entity.Game) Screen {
	board := game.CurrentBoard()
	highlighted := mapset.NewThreadUnsafeSet(game.WinningLine...)

	screen := Screen{
		Status:      game.Status(),
		Caption:     game.Caption(),
		CurrentMove: game.CurrentMove,
		Ascending:   game.Ascending,
		SortLabel:   game.SortLabel(),
		Moves:       make([]MoveButton, 0, game.LatestMove()),
	}

	for i, mark := range board {
		row, col := entity.RowCol(i)
		screen.Cells[i] = Cell{
			Index:       i,
			Mark:        mark,
			Row:         row,
			Column:      col,
			Highlighted: highlighted.Contains(i),
		}
	}

	for _, move := range game.Moves() {
		screen.Moves = append(screen.Moves, MoveButton{
			Move:    move,
			Label:   game.MoveLabel(move),
			Current: move == game.CurrentMove,
		})
	}

	return screen
}
