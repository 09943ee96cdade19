package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// WinLines are the 3 rows, 3 columns and 2 diagonals.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Evaluate reports whether the board is won, drawn or still in progress.
//
// Lines are checked before fullness. Boards built through ApplyMove never hold
// three-in-a-row for both symbols, so the first complete line is the only one.
func Evaluate(board entity.Board) entity.GameStatus {
	for _, line := range WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.Won(a)
		}
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}
