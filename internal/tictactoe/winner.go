package tictactoe

// WinCombos - rows, columns and diagonals, scanned in this order.
var WinCombos = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// EvaluateWinner - returns the mark of the first completed line, or Empty.
// A full board without a line also yields Empty; use Board.IsFull to tell a draw apart.
func EvaluateWinner(board Board) Cell {
	for _, combo := range WinCombos {
		a := board[combo[0].Row][combo[0].Col]
		b := board[combo[1].Row][combo[1].Col]
		c := board[combo[2].Row][combo[2].Col]
		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}

// IsTerminal - checks whether someone has won or no empty cell remains.
func IsTerminal(board Board) bool {
	return EvaluateWinner(board) != Empty || board.IsFull()
}
