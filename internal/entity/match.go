package entity

import (
	"fmt"
	"strconv"
	"time"
)

const (
	StatusStarted  = "started"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

// Match - registry record of a game the bot takes part in. It is bookkeeping for operators;
// move selection never reads it.
type Match struct {
	ID        string    `json:"id"`
	Figure    string    `json:"figure,omitempty"`
	Status    string    `json:"status"`
	Turns     int       `json:"turns"`
	LastMove  *[2]int   `json:"last_move,omitempty"`
	Board     [3][3]int `json:"board"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MatchID - registry key for a protocol game id.
func MatchID(gameID int) string {
	return strconv.Itoa(gameID)
}

func NewMatch(id string, now time.Time) *Match {
	return &Match{
		ID:        id,
		Status:    StatusStarted,
		UpdatedAt: now,
	}
}

// RecordTurn - stores the bot's move on top of the board it was asked about.
func (that *Match) RecordTurn(figure string, board [3][3]int, move [2]int, now time.Time) {
	that.Figure = figure
	that.Board = board
	that.Board[move[0]][move[1]] = FigureValue(figure)
	that.LastMove = &move
	that.Turns++
	that.Status = StatusPlaying
	that.UpdatedAt = now
}

func (that *Match) Finish(now time.Time) {
	that.Status = StatusFinished
	that.UpdatedAt = now
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Match) String() string {
	return fmt.Sprintf("match %s (%s, %d turns)", that.ID, that.Status, that.Turns)
}
