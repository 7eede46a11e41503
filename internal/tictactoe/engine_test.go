package tictactoe

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_ChooseMove(t *testing.T) {
	engine := NewEngine()

	t.Run("Opening move on an empty board", func(t *testing.T) {
		for _, side := range []Cell{X, O} {
			// When: the first ply is requested
			result, err := engine.ChooseMove(Board{}, side, 0, nil)

			// Then: the fixed corner is returned without a search
			require.NoError(t, err)
			assert.Equal(t, Move{Row: 0, Col: 0}, result.Move)
			assert.False(t, result.Fallback)
		}
	})

	t.Run("Center answers a corner opening", func(t *testing.T) {
		// Given: X took the top-left corner
		board := mustBoard(t, "X__/___/___")

		// When: O chooses its reply
		result, err := engine.ChooseMove(board, O, 1, nil)

		// Then: the center is the only move that does not lose
		require.NoError(t, err)
		assert.Equal(t, Move{Row: 1, Col: 1}, result.Move)
	})

	t.Run("Blocks an open row", func(t *testing.T) {
		// Given: X threatens to complete the top row
		board := mustBoard(t, "XX_/_O_/___")

		// When: O chooses its move
		result, err := engine.ChooseMove(board, O, 3, nil)

		// Then: O takes the blocking cell
		require.NoError(t, err)
		assert.Equal(t, Move{Row: 0, Col: 2}, result.Move)
	})

	t.Run("Takes one of two immediate wins", func(t *testing.T) {
		// Given: X can finish the top row or the left column
		board := mustBoard(t, "XX_/XOO/__O")

		// When: X chooses its move
		result, err := engine.ChooseMove(board, X, 6, nil)

		// Then: one of the winning cells is chosen with the plain win score
		require.NoError(t, err)
		assert.Contains(t, []Move{{0, 2}, {2, 0}}, result.Move)
		assert.Equal(t, WinScore, result.Score)
		assert.Equal(t, X, EvaluateWinner(board.Place(result.Move, X)))
	})

	t.Run("Prefers winning over blocking", func(t *testing.T) {
		// Given: both sides have an open line and O is to move
		board := mustBoard(t, "XX_/OO_/X__")

		// When: O chooses its move
		result, err := engine.ChooseMove(board, O, 5, nil)

		// Then: O wins immediately instead of blocking
		require.NoError(t, err)
		assert.Equal(t, Move{Row: 1, Col: 2}, result.Move)
		assert.Equal(t, -WinScore, result.Score)
	})

	t.Run("No available moves", func(t *testing.T) {
		_, err := engine.ChooseMove(mustBoard(t, "XOX/XOO/OXX"), X, 9, nil)
		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})

	t.Run("Invalid side", func(t *testing.T) {
		_, err := engine.ChooseMove(Board{}, Empty, 1, nil)
		require.ErrorIs(t, err, ErrInvalidSide)
	})
}

func flatCandidates(moves []Move, score int) []SearchResult {
	candidates := make([]SearchResult, 0, len(moves))
	for _, move := range moves {
		candidates = append(candidates, SearchResult{Move: move, Score: score})
	}

	return candidates
}

func TestEngine_Select_Fallback(t *testing.T) {
	// Given: an engine whose randomness always picks the last candidate
	engine := NewEngine(WithIntn(func(n int) int { return n - 1 }))
	board := mustBoard(t, "XO_/___/___")
	moves := AllowedMoves(board)

	// When: no candidate improves on the sentinel
	result, err := engine.Select(board, X, flatCandidates(moves, math.MinInt), nil)

	// Then: the random fallback picks a legal move
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, moves[len(moves)-1], result.Move)
}

func TestEngine_Select_SeededFallback(t *testing.T) {
	// Given: two engines sharing the same seed
	newEngine := func() *Engine {
		return NewEngine(WithIntn(rand.New(rand.NewPCG(7, 11)).IntN))
	}
	board := Board{}
	candidates := flatCandidates(AllowedMoves(board), math.MaxInt)

	// When: both fall back for side O
	first, err := newEngine().Select(board, O, candidates, nil)
	require.NoError(t, err)
	second, err := newEngine().Select(board, O, candidates, nil)
	require.NoError(t, err)

	// Then: the choice is reproducible
	assert.True(t, first.Fallback)
	assert.Equal(t, first.Move, second.Move)
}

func TestEngine_Select_Errors(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Select(Board{}, X, nil, nil)
	require.ErrorIs(t, err, ErrNoAvailableMoves)

	_, err = engine.Select(Board{}, Empty, flatCandidates(AllowedMoves(Board{}), 0), nil)
	require.ErrorIs(t, err, ErrInvalidSide)
}

func TestEngine_Select_FirstBestWins(t *testing.T) {
	// Given: two candidates sharing the best score for O
	engine := NewEngine()
	candidates := []SearchResult{
		{Move: Move{Row: 0, Col: 1}, Score: 5},
		{Move: Move{Row: 0, Col: 2}, Score: -3},
		{Move: Move{Row: 1, Col: 0}, Score: -3},
	}

	// When: O selects
	result, err := engine.Select(Board{}, O, candidates, nil)

	// Then: the earlier of the tied candidates is kept
	require.NoError(t, err)
	assert.Equal(t, Move{Row: 0, Col: 2}, result.Move)
	assert.Equal(t, -3, result.Score)
}

func TestEngine_ChooseMove_RecorderDoesNotChangeResult(t *testing.T) {
	engine := NewEngine()
	board := mustBoard(t, "X__/_O_/__X")

	plain, err := engine.ChooseMove(board, O, 3, nil)
	require.NoError(t, err)

	rec := &edgeRecorder{}
	recorded, err := engine.ChooseMove(board, O, 3, rec)
	require.NoError(t, err)

	assert.Equal(t, plain, recorded)
	assert.Positive(t, rec.edges)
	require.Len(t, rec.best, 1)
	assert.Equal(t, board.Place(plain.Move, O), rec.best[0])
}

func TestEngine_Candidates(t *testing.T) {
	engine := NewEngine()
	board := mustBoard(t, "XX_/_O_/___")

	candidates := engine.Candidates(board, O)
	require.Len(t, candidates, 6)

	result, err := engine.ChooseMove(board, O, 3, nil)
	require.NoError(t, err)

	// selecting from precomputed candidates gives the same answer without a second search
	selected, err := engine.Select(board, O, candidates, nil)
	require.NoError(t, err)
	assert.Equal(t, result, selected)

	for _, candidate := range candidates {
		assert.GreaterOrEqual(t, candidate.Score, result.Score)
		if candidate.Move == result.Move {
			assert.Equal(t, result.Score, candidate.Score)
		}
	}
}

func TestEngine_ChooseMove_Concurrent(t *testing.T) {
	engine := NewEngine()
	board := mustBoard(t, "X__/___/___")

	var wg sync.WaitGroup
	results := make([]SearchResult, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := engine.ChooseMove(board, O, 1, nil)
			assert.NoError(t, err)
			results[i] = result
		}()
	}
	wg.Wait()

	for _, result := range results {
		assert.Equal(t, Move{Row: 1, Col: 1}, result.Move)
	}
}

// reachable - every legal position that can occur in a game, keyed by board.
func reachable() map[Board]Cell {
	states := make(map[Board]Cell)

	var walk func(board Board, toMove Cell)
	walk = func(board Board, toMove Cell) {
		if _, seen := states[board]; seen {
			return
		}
		states[board] = toMove

		if IsTerminal(board) {
			return
		}

		for _, move := range AllowedMoves(board) {
			walk(board.Place(move, toMove), toMove.Opponent())
		}
	}
	walk(Board{}, X)

	return states
}

// gameValue - exact outcome with perfect play from X's point of view: 1, 0 or -1.
func gameValue(board Board, toMove Cell, memo map[Board]int) int {
	if value, ok := memo[board]; ok {
		return value
	}

	var value int
	switch {
	case EvaluateWinner(board) == X:
		value = 1
	case EvaluateWinner(board) == O:
		value = -1
	case board.IsFull():
		value = 0
	default:
		value = -2
		if toMove == O {
			value = 2
		}
		for _, move := range AllowedMoves(board) {
			child := gameValue(board.Place(move, toMove), toMove.Opponent(), memo)
			if toMove == X {
				value = max(value, child)
			} else {
				value = min(value, child)
			}
		}
	}

	memo[board] = value

	return value
}

func TestEngine_ChooseMove_NeverGivesUpValue(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive check over all reachable positions")
	}

	engine := NewEngine()
	memo := make(map[Board]int)
	states := reachable()
	require.Len(t, states, 5478)

	for board, side := range states {
		if IsTerminal(board) || board.Occupied() == 0 {
			continue
		}

		// When: the engine moves in a live position
		result, err := engine.ChooseMove(board, side, board.Occupied(), nil)
		require.NoError(t, err)
		require.Equal(t, Empty, board[result.Move.Row][result.Move.Col])
		require.False(t, result.Fallback)

		// Then: the move keeps the best outcome the side could force
		want := gameValue(board, side, memo)
		got := gameValue(board.Place(result.Move, side), side.Opponent(), memo)
		require.Equal(t, want, got, "board:\n%s\nside %s chose %+v", board, side, result.Move)
	}
}

func rotate(board Board) Board {
	var rotated Board
	for i := range boardSize {
		for j := range boardSize {
			rotated[j][boardSize-1-i] = board[i][j]
		}
	}

	return rotated
}

func rotateMove(move Move) Move {
	return Move{Row: move.Col, Col: boardSize - 1 - move.Row}
}

func TestEngine_ChooseMove_RotationSymmetry(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive check over all reachable positions")
	}

	engine := NewEngine()
	checked := 0

	for board, side := range reachable() {
		if IsTerminal(board) || board.Occupied() == 0 {
			continue
		}

		// Given: a position whose optimum is unique
		candidates := engine.Candidates(board, side)
		best := candidates[0].Score
		for _, candidate := range candidates[1:] {
			if (side == X && candidate.Score > best) || (side == O && candidate.Score < best) {
				best = candidate.Score
			}
		}
		ties := 0
		for _, candidate := range candidates {
			if candidate.Score == best {
				ties++
			}
		}
		if ties != 1 {
			continue
		}

		// When: the same position is rotated by 90 degrees
		result, err := engine.ChooseMove(board, side, board.Occupied(), nil)
		require.NoError(t, err)
		rotated, err := engine.ChooseMove(rotate(board), side, board.Occupied(), nil)
		require.NoError(t, err)

		// Then: the chosen move rotates with it
		require.Equal(t, rotateMove(result.Move), rotated.Move, "board:\n%s", board)
		require.Equal(t, result.Score, rotated.Score)
		checked++
	}

	assert.Positive(t, checked)
}
