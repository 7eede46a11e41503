package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

type MatchService interface {
	Start(ctx context.Context, gameID int, figure string) (*entity.Match, error)
	RecordTurn(ctx context.Context, req *entity.TurnRequest, move tictactoe.Move) (*entity.Match, error)
	Finish(ctx context.Context, gameID int) (*entity.Match, error)
	Abort(ctx context.Context, gameID int) error
}

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
	Expire(ctx context.Context, id string, ttl time.Duration) error
}

type matchService struct {
	matchRepo matchRepo
	ttl       time.Duration
	now       func() time.Time
}

// NewMatchService - every write pushes the match's expiration ttl ahead, so abandoned and
// finished matches alike are dropped once idle for ttl.
func NewMatchService(matchRepo matchRepo, ttl time.Duration) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (that *matchService) Start(ctx context.Context, gameID int, figure string) (*entity.Match, error) {
	match := entity.NewMatch(entity.MatchID(gameID), that.now())
	match.Figure = figure

	if err := that.save(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to register match: %w", err)
	}

	return match, nil
}

func (that *matchService) RecordTurn(ctx context.Context, req *entity.TurnRequest, move tictactoe.Move) (*entity.Match, error) {
	match, err := that.getOrCreate(ctx, req.GameID)
	if err != nil {
		return nil, err
	}

	// a turn after finish means the game id was reused
	if match.IsFinished() {
		match = entity.NewMatch(match.ID, that.now())
	}

	var board [3][3]int
	for i := range min(len(board), len(req.Board)) {
		copy(board[i][:], req.Board[i])
	}

	match.RecordTurn(req.Figure, board, [2]int{move.Row, move.Col}, that.now())

	if err = that.save(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	return match, nil
}

func (that *matchService) Finish(ctx context.Context, gameID int) (*entity.Match, error) {
	match, err := that.getOrCreate(ctx, gameID)
	if err != nil {
		return nil, err
	}

	match.Finish(that.now())

	if err = that.save(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	return match, nil
}

// Abort - drops the match right away. An unknown game is not an error.
func (that *matchService) Abort(ctx context.Context, gameID int) error {
	err := that.matchRepo.DeleteByID(ctx, entity.MatchID(gameID))
	if err != nil && !errors.Is(err, apperror.ErrMatchNotFound) {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	return nil
}

func (that *matchService) save(ctx context.Context, match *entity.Match) error {
	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return err
	}

	if err := that.matchRepo.Expire(ctx, match.ID, that.ttl); err != nil {
		return fmt.Errorf("failed to expire match: %w", err)
	}

	return nil
}

// getOrCreate - a turn or finish may arrive for a game whose start was never seen.
func (that *matchService) getOrCreate(ctx context.Context, gameID int) (*entity.Match, error) {
	match, err := that.matchRepo.GetByID(ctx, entity.MatchID(gameID))
	if errors.Is(err, apperror.ErrMatchNotFound) {
		return entity.NewMatch(entity.MatchID(gameID), that.now()), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve match from storage: %w", err)
	}

	return match, nil
}
