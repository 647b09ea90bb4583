package entity

// Mark is the content of a single cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	BoardSize = 9
	sideSize  = 3
)

// Line holds the three cell indices of a row, column or diagonal.
type Line [3]int

// WinCombos lists every line in the order the detector checks them: rows, columns, diagonals.
var WinCombos = []Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is one snapshot of the grid in row-major order.
type Board [BoardSize]Mark

// With returns a copy of the board with cell set to mark.
func (that Board) With(cell int, mark Mark) Board {
	that[cell] = mark
	return that
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// DetectWinner - checks the fixed lines and returns the mark and cells of the first complete one.
// It does not validate that the board is reachable.
func DetectWinner(board Board) (Mark, Line, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a, combo, true
		}
	}

	return EmptyCell, Line{}, false
}

// RowCol maps a cell index to its 1-based row and column.
func RowCol(cell int) (int, int) {
	return cell/sideSize + 1, cell%sideSize + 1
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}
