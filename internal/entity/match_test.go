package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatch(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// When: a match is registered
	match := NewMatch(MatchID(723), now)

	// Then: it starts without turns
	expected := &Match{
		ID:        "723",
		Status:    StatusStarted,
		UpdatedAt: now,
	}
	require.Equal(t, expected, match)
	assert.False(t, match.IsFinished())
}

func TestMatch_RecordTurn(t *testing.T) {
	t.Run("Move is applied to a copy of the board", func(t *testing.T) {
		// Given: a started match and the board of the request
		now := time.Now()
		match := NewMatch("1", now)
		board := [3][3]int{{CellX, 0, 0}, {0, 0, 0}, {0, 0, 0}}

		// When: the bot answers with the center as O
		match.RecordTurn(FigureO, board, [2]int{1, 1}, now)

		// Then: the stored board contains the answer, the request board does not
		assert.Equal(t, CellO, match.Board[1][1])
		assert.Equal(t, CellEmpty, board[1][1])
		assert.Equal(t, StatusPlaying, match.Status)
		assert.Equal(t, 1, match.Turns)
		require.NotNil(t, match.LastMove)
		assert.Equal(t, [2]int{1, 1}, *match.LastMove)
	})

	t.Run("Turns accumulate", func(t *testing.T) {
		match := NewMatch("1", time.Now())

		match.RecordTurn(FigureX, [3][3]int{}, [2]int{0, 0}, time.Now())
		match.RecordTurn(FigureX, [3][3]int{{CellX, CellO, 0}}, [2]int{2, 2}, time.Now())

		assert.Equal(t, 2, match.Turns)
		assert.Equal(t, CellX, match.Board[2][2])
		assert.Equal(t, FigureX, match.Figure)
	})
}

func TestMatch_Finish(t *testing.T) {
	// Given: a match in progress
	match := NewMatch("1", time.Now())
	match.RecordTurn(FigureX, [3][3]int{}, [2]int{0, 0}, time.Now())

	// When: the game is finished
	finishedAt := time.Now().Add(time.Minute)
	match.Finish(finishedAt)

	// Then: the match is closed and keeps its turn count
	assert.True(t, match.IsFinished())
	assert.Equal(t, 1, match.Turns)
	assert.Equal(t, finishedAt, match.UpdatedAt)
}

func TestFigureValue(t *testing.T) {
	assert.Equal(t, CellX, FigureValue(FigureX))
	assert.Equal(t, CellO, FigureValue(FigureO))
}
