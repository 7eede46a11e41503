package tictactoe

import "math"

const (
	WinScore  = 100
	DrawScore = 0
)

// Score - exhaustive minimax value of board for X (positive) versus O (negative).
// figure is the mark placed last; the next ply places its opponent. Non-terminal scores are
// shifted by the occupied-cell count of each child so quicker wins and slower losses rank higher.
func Score(board Board, isMaximizing bool, figure Cell) int {
	return search(board, 0, isMaximizing, figure, nil)
}

func search(board Board, depth int, isMaximizing bool, figure Cell, rec Recorder) int {
	switch EvaluateWinner(board) {
	case X:
		return WinScore
	case O:
		return -WinScore
	}

	if board.IsFull() {
		return DrawScore
	}

	next := figure.Opponent()

	best := math.MaxInt
	if isMaximizing {
		best = math.MinInt
	}

	for _, move := range AllowedMoves(board) {
		child := board.Place(move, next)
		pieces := child.Occupied()

		var score int
		if isMaximizing {
			score = search(child, depth+1, false, next, rec) - pieces
			best = max(best, score)
		} else {
			score = search(child, depth+1, true, next, rec) + pieces
			best = min(best, score)
		}

		if depth < 1 && rec != nil {
			rec.RecordEdge(board, child, score)
		}
	}

	return best
}
