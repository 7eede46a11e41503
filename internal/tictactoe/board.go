package tictactoe

import (
	"errors"
	"fmt"
	"strings"
)

// Cell - state of a single board square. Values match the bot protocol (0/1/2).
type Cell int8

const (
	Empty Cell = 0
	X     Cell = 1
	O     Cell = 2
)

const boardSize = 3

var ErrMalformedBoard = errors.New("malformed board")

// Opponent - returns the other side's mark.
func (that Cell) Opponent() Cell {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Cell) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "_"
	}
}

// Board - 3x3 grid in row-major order. It is a value type: assigning it copies every cell.
type Board [boardSize][boardSize]Cell

// Move - coordinates of an empty cell, both in [0,3).
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SearchResult - chosen move with its minimax score.
type SearchResult struct {
	Move     Move
	Score    int
	Fallback bool
}

// Place - returns a copy of the board with the given cell set to mark.
func (that Board) Place(move Move, mark Cell) Board {
	that[move.Row][move.Col] = mark
	return that
}

// Occupied - number of non-empty cells.
func (that Board) Occupied() int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell != Empty {
				count++
			}
		}
	}

	return count
}

func (that Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// String - three rows of "_XO" separated by new lines.
func (that Board) String() string {
	var sb strings.Builder
	for i, row := range that {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
	}

	return sb.String()
}

// ParseBoard - reads a board written as three rows separated by '/', e.g. "X__/_O_/___".
// Empty cells may be written as '_', '.', '-' or ' '.
func ParseBoard(raw string) (Board, error) {
	var board Board

	rows := strings.Split(raw, "/")
	if len(rows) != boardSize {
		return board, fmt.Errorf("%w: want %d rows, got %d", ErrMalformedBoard, boardSize, len(rows))
	}

	for i, row := range rows {
		if len(row) != boardSize {
			return board, fmt.Errorf("%w: row %d has %d cells", ErrMalformedBoard, i, len(row))
		}

		for j := range boardSize {
			switch row[j] {
			case 'X', 'x':
				board[i][j] = X
			case 'O', 'o':
				board[i][j] = O
			case '_', '.', '-', ' ':
				board[i][j] = Empty
			default:
				return board, fmt.Errorf("%w: unexpected %q at %d,%d", ErrMalformedBoard, row[j], i, j)
			}
		}
	}

	return board, nil
}
