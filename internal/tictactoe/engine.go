package tictactoe

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var (
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrInvalidSide      = errors.New("side must be X or O")
)

// OpeningMove - fixed answer for the first ply of a game.
var OpeningMove = Move{Row: 0, Col: 0}

type Engine struct {
	intn func(n int) int
}

type EngineOption func(*Engine)

// WithIntn - overrides the source of randomness used by the fallback policy.
func WithIntn(intn func(n int) int) EngineOption {
	return func(e *Engine) {
		e.intn = intn
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	engine := &Engine{
		intn: rand.IntN,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// ChooseMove - picks the best move for side. ply is the turn counter of the game and is only
// used for the opening shortcut. rec may be nil.
func (that *Engine) ChooseMove(board Board, side Cell, ply int, rec Recorder) (SearchResult, error) {
	if side != X && side != O {
		return SearchResult{}, fmt.Errorf("%w: got %d", ErrInvalidSide, side)
	}

	if ply == 0 {
		result := SearchResult{Move: OpeningMove, Score: DrawScore}
		if rec != nil {
			rec.RecordBest(board, board.Place(result.Move, side), result.Score)
		}

		return result, nil
	}

	moves := AllowedMoves(board)
	if len(moves) == 0 {
		return SearchResult{}, ErrNoAvailableMoves
	}

	return that.Select(board, side, scoreMoves(board, side, moves, rec), rec)
}

// Candidates - scores every legal move for side in row-major order.
func (that *Engine) Candidates(board Board, side Cell) []SearchResult {
	return scoreMoves(board, side, AllowedMoves(board), nil)
}

// Select - keeps the first candidate that strictly improves on the best score so far and
// falls back to a random candidate when none does. candidates are expected in the order
// Candidates returns them.
func (that *Engine) Select(board Board, side Cell, candidates []SearchResult, rec Recorder) (SearchResult, error) {
	if side != X && side != O {
		return SearchResult{}, fmt.Errorf("%w: got %d", ErrInvalidSide, side)
	}

	if len(candidates) == 0 {
		return SearchResult{}, ErrNoAvailableMoves
	}

	bestScore := initialScore(side)
	var best *SearchResult

	for _, candidate := range candidates {
		if improves(side, candidate.Score, bestScore) {
			bestScore = candidate.Score
			best = &SearchResult{Move: candidate.Move, Score: candidate.Score}
		}
	}

	if best == nil {
		best = &SearchResult{
			Move:     candidates[that.intn(len(candidates))].Move,
			Score:    bestScore,
			Fallback: true,
		}
	}

	if rec != nil {
		rec.RecordBest(board, board.Place(best.Move, side), best.Score)
	}

	return *best, nil
}

func scoreMoves(board Board, side Cell, moves []Move, rec Recorder) []SearchResult {
	results := make([]SearchResult, 0, len(moves))

	for _, move := range moves {
		child := board.Place(move, side)
		score := search(child, 0, side == O, side, rec)

		if rec != nil {
			rec.RecordEdge(board, child, score)
		}

		results = append(results, SearchResult{Move: move, Score: score})
	}

	return results
}

func initialScore(side Cell) int {
	if side == X {
		return math.MinInt
	}
	return math.MaxInt
}

func improves(side Cell, score, best int) bool {
	if side == X {
		return score > best
	}
	return score < best
}
