package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-bot/internal/trace"
)

type BotService interface {
	MakeTurn(ctx context.Context, req *entity.TurnRequest) (tictactoe.SearchResult, error)
}

type moveEngine interface {
	ChooseMove(board tictactoe.Board, side tictactoe.Cell, ply int, rec tictactoe.Recorder) (tictactoe.SearchResult, error)
}

type botService struct {
	logger *slog.Logger
	engine moveEngine

	debug    bool
	traceDir string
}

func NewBotService(logger *slog.Logger, engine moveEngine, debug bool, traceDir string) BotService {
	return &botService{
		logger:   logger.With("component", "bot"),
		engine:   engine,
		debug:    debug,
		traceDir: traceDir,
	}
}

// MakeTurn - validates the request, runs the search and, in debug mode, saves the search trace.
func (that *botService) MakeTurn(_ context.Context, req *entity.TurnRequest) (tictactoe.SearchResult, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", req.GameID, "turn_number", req.TurnNumber)

	board, side, err := ParseTurn(req)
	if err != nil {
		return tictactoe.SearchResult{}, err
	}

	var rec tictactoe.Recorder
	var dot *trace.DotRecorder
	if that.debug {
		dot = trace.NewDotRecorder()
		rec = dot
	}

	result, err := that.engine.ChooseMove(board, side, req.TurnNumber, rec)
	if err != nil {
		return tictactoe.SearchResult{}, fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	if result.Fallback {
		log.Warn("No best move found, choosing random move", "move", result.Move)
	}

	if dot != nil {
		path, err := dot.Save(that.traceDir, req.GameID, req.TurnNumber)
		if err != nil {
			log.Error("could not save search trace", "error", err)
		} else {
			log.Debug("search trace saved", "path", path, "trace_id", dot.ID())
		}
	}

	log.Debug("move chosen", "move", result.Move, "score", result.Score)

	return result, nil
}

// ParseTurn - converts the wire board and figure into engine values.
func ParseTurn(req *entity.TurnRequest) (tictactoe.Board, tictactoe.Cell, error) {
	var board tictactoe.Board

	if req.TurnNumber < 0 {
		return board, tictactoe.Empty, fmt.Errorf("%w: %d", apperror.ErrInvalidTurnNumber, req.TurnNumber)
	}

	side, err := parseFigure(req.Figure)
	if err != nil {
		return board, tictactoe.Empty, err
	}

	if len(req.Board) != len(board) {
		return board, tictactoe.Empty, fmt.Errorf("%w: %d rows", apperror.ErrInvalidBoard, len(req.Board))
	}

	for i, row := range req.Board {
		if len(row) != len(board[i]) {
			return board, tictactoe.Empty, fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidBoard, i, len(row))
		}

		for j, value := range row {
			switch value {
			case entity.CellEmpty:
				board[i][j] = tictactoe.Empty
			case entity.CellX:
				board[i][j] = tictactoe.X
			case entity.CellO:
				board[i][j] = tictactoe.O
			default:
				return board, tictactoe.Empty, fmt.Errorf("%w: value %d at %d,%d", apperror.ErrInvalidBoard, value, i, j)
			}
		}
	}

	return board, side, nil
}

func parseFigure(figure string) (tictactoe.Cell, error) {
	switch figure {
	case entity.FigureX:
		return tictactoe.X, nil
	case entity.FigureO:
		return tictactoe.O, nil
	default:
		return tictactoe.Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidFigure, figure)
	}
}
