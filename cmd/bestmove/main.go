// Command bestmove prints the move the bot would play in a given position.
//
//	bestmove -board "X__/_O_/___" -figure X
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

var errUsage = errors.New("figure must be X or O")

func main() {
	raw := flag.String("board", "___/___/___", "board as three rows separated by '/', '_' for empty cells")
	figure := flag.String("figure", "X", "side to move: X or O")
	ply := flag.Int("ply", -1, "turn number, defaults to the number of occupied cells")
	flag.Parse()

	out := termenv.NewOutput(os.Stdout)
	if err := run(out, *raw, *figure, *ply); err != nil {
		fmt.Fprintln(os.Stderr, out.String("error: "+err.Error()).Foreground(out.Color("1")))
		os.Exit(1)
	}
}

func run(out *termenv.Output, raw, figure string, ply int) error {
	board, err := tictactoe.ParseBoard(raw)
	if err != nil {
		return err
	}

	var side tictactoe.Cell
	switch figure {
	case "X", "x":
		side = tictactoe.X
	case "O", "o":
		side = tictactoe.O
	default:
		return fmt.Errorf("%w, got %q", errUsage, figure)
	}

	if ply < 0 {
		ply = board.Occupied()
	}

	engine := tictactoe.NewEngine()

	// the opening is fixed, so there is nothing to score
	if ply == 0 {
		result, err := engine.ChooseMove(board, side, ply, nil)
		if err != nil {
			return err
		}

		renderBoard(out, board, side, result.Move)
		fmt.Fprintln(out)
		renderResult(out, side, result)

		return nil
	}

	candidates := engine.Candidates(board, side)
	result, err := engine.Select(board, side, candidates, nil)
	if err != nil {
		return err
	}

	renderBoard(out, board, side, result.Move)
	fmt.Fprintln(out)
	renderCandidates(out, candidates, result.Move)
	fmt.Fprintln(out)
	renderResult(out, side, result)

	return nil
}

func renderResult(out *termenv.Output, side tictactoe.Cell, result tictactoe.SearchResult) {
	fmt.Fprintf(out, "%s plays %s (score %d)\n",
		side, out.String(fmt.Sprintf("[%d,%d]", result.Move.Row, result.Move.Col)).Bold(), result.Score)
	if result.Fallback {
		fmt.Fprintln(out, out.String("no move improved on the sentinel, picked at random").Faint())
	}
}

// renderBoard - draws the board with the chosen cell highlighted.
func renderBoard(w io.Writer, board tictactoe.Board, side tictactoe.Cell, chosen tictactoe.Move) {
	out, ok := w.(*termenv.Output)
	if !ok {
		out = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}

	for i, row := range board {
		for j, cell := range row {
			if j > 0 {
				fmt.Fprint(out, " ")
			}

			switch {
			case chosen == tictactoe.Move{Row: i, Col: j}:
				fmt.Fprint(out, out.String(side.String()).Foreground(out.Color("2")).Bold().Underline())
			case cell == tictactoe.X:
				fmt.Fprint(out, out.String(cell.String()).Foreground(out.Color("4")))
			case cell == tictactoe.O:
				fmt.Fprint(out, out.String(cell.String()).Foreground(out.Color("5")))
			default:
				fmt.Fprint(out, out.String(".").Faint())
			}
		}
		fmt.Fprintln(out)
	}
}

// renderCandidates - one line per legal move with its minimax score.
func renderCandidates(out *termenv.Output, candidates []tictactoe.SearchResult, chosen tictactoe.Move) {
	for _, candidate := range candidates {
		line := fmt.Sprintf("[%d,%d] %4d", candidate.Move.Row, candidate.Move.Col, candidate.Score)
		if candidate.Move == chosen {
			fmt.Fprintln(out, out.String(line+" *").Foreground(out.Color("2")))
			continue
		}
		fmt.Fprintln(out, line)
	}
}
