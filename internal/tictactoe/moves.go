package tictactoe

// AllowedMoves - lists every empty cell in row-major order.
func AllowedMoves(board Board) []Move {
	moves := make([]Move, 0, boardSize*boardSize)
	for i := range boardSize {
		for j := range boardSize {
			if board[i][j] == Empty {
				moves = append(moves, Move{Row: i, Col: j})
			}
		}
	}

	return moves
}
