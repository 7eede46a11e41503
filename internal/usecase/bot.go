package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

const (
	MethodStatus = "status"
	MethodStart  = "start"
	MethodTurn   = "turn"
	MethodFinish = "finish"
	MethodError  = "error"
)

const (
	messageReady    = "I'm ready!"
	messageAccept   = "Let's go!"
	messageFinished = "Game finished!"
	messageInvalid  = "Invalid request!"
)

type BotUseCase interface {
	Status() *entity.StatusResponse
	Start(ctx context.Context, body []byte) (*entity.StartResponse, error)
	Turn(ctx context.Context, body []byte) (*entity.TurnResponse, error)
	Finish(ctx context.Context, body []byte) (*entity.MessageResponse, error)
	Error(ctx context.Context, body []byte) *entity.MessageResponse

	Dispatch(ctx context.Context, method string, body []byte) (any, error)
}

type botService interface {
	MakeTurn(ctx context.Context, req *entity.TurnRequest) (tictactoe.SearchResult, error)
}

type matchService interface {
	Start(ctx context.Context, gameID int, figure string) (*entity.Match, error)
	RecordTurn(ctx context.Context, req *entity.TurnRequest, move tictactoe.Move) (*entity.Match, error)
	Finish(ctx context.Context, gameID int) (*entity.Match, error)
	Abort(ctx context.Context, gameID int) error
}

type botUseCase struct {
	logger *slog.Logger

	bot     botService
	matches matchService

	version string
	secret  string
}

func NewBotUseCase(logger *slog.Logger, bot botService, matches matchService, version, secret string) BotUseCase {
	return &botUseCase{
		logger:  logger.With("component", "usecase"),
		bot:     bot,
		matches: matches,
		version: version,
		secret:  secret,
	}
}

// Dispatch - routes a protocol call by its method name.
func (that *botUseCase) Dispatch(ctx context.Context, method string, body []byte) (any, error) {
	switch method {
	case MethodStatus:
		return that.Status(), nil
	case MethodStart:
		return that.Start(ctx, body)
	case MethodTurn:
		return that.Turn(ctx, body)
	case MethodFinish:
		return that.Finish(ctx, body)
	case MethodError:
		return that.Error(ctx, body), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMethod, method)
	}
}

func (that *botUseCase) Status() *entity.StatusResponse {
	that.logger.Info("Handling status request")

	return &entity.StatusResponse{
		Status:  entity.StatusOK,
		Game:    entity.GameName,
		Version: that.version,
		Secret:  that.secret,
		Message: messageReady,
	}
}

func (that *botUseCase) Start(ctx context.Context, body []byte) (*entity.StartResponse, error) {
	log := that.logger.With("method", "Start")
	log.Info("Handling start request")

	req, err := decodeMatchRequest(body)
	if err != nil {
		return nil, err
	}

	if req.GameID != nil {
		if _, err = that.matches.Start(ctx, *req.GameID, req.Figure); err != nil {
			log.Error("could not register match", "game_id", *req.GameID, "error", err)
		}
	}

	return &entity.StartResponse{
		Status:  entity.StatusOK,
		Game:    entity.GameName,
		Version: that.version,
		Secret:  that.secret,
		Accept:  true,
		Message: messageAccept,
	}, nil
}

func (that *botUseCase) Turn(ctx context.Context, body []byte) (*entity.TurnResponse, error) {
	log := that.logger.With("method", "Turn")
	log.Info("Handling turn request")

	var req entity.TurnRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedRequest, err)
	}

	result, err := that.bot.MakeTurn(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if _, err = that.matches.RecordTurn(ctx, &req, result.Move); err != nil {
		log.Error("could not record turn", "game_id", req.GameID, "error", err)
	}

	return &entity.TurnResponse{
		Status:  entity.StatusOK,
		Game:    entity.GameName,
		Version: that.version,
		Secret:  that.secret,
		Move:    [2]int{result.Move.Row, result.Move.Col},
	}, nil
}

func (that *botUseCase) Finish(ctx context.Context, body []byte) (*entity.MessageResponse, error) {
	log := that.logger.With("method", "Finish")
	log.Info("Handling finish request")

	req, err := decodeMatchRequest(body)
	if err != nil {
		return nil, err
	}

	if req.GameID != nil {
		match, err := that.matches.Finish(ctx, *req.GameID)
		if err != nil {
			log.Error("could not finish match", "game_id", *req.GameID, "error", err)
		} else {
			log.Debug("match finished", "match", match.String())
		}
	}

	return &entity.MessageResponse{
		Status:  entity.StatusOK,
		Message: messageFinished,
	}, nil
}

// Error - the game was aborted on the caller's side, so its match is dropped. The body is free-form
// and a body that cannot be decoded is only logged.
func (that *botUseCase) Error(ctx context.Context, body []byte) *entity.MessageResponse {
	log := that.logger.With("method", "Error")
	log.Info("Handling error request", "body", string(body))

	req, err := decodeMatchRequest(body)
	if err != nil {
		log.Warn("could not decode error body", "error", err)
	}

	if err == nil && req.GameID != nil {
		if err = that.matches.Abort(ctx, *req.GameID); err != nil {
			log.Error("could not drop match", "game_id", *req.GameID, "error", err)
		}
	}

	return InvalidRequest()
}

// InvalidRequest - body sent back for any call the bot could not serve.
func InvalidRequest() *entity.MessageResponse {
	return &entity.MessageResponse{
		Status:  entity.StatusError,
		Message: messageInvalid,
	}
}

// decodeMatchRequest - start and finish bodies are optional, an empty body is not an error.
func decodeMatchRequest(body []byte) (entity.MatchRequest, error) {
	var req entity.MatchRequest
	if len(body) == 0 {
		return req, nil
	}

	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("%w: %w", apperror.ErrMalformedRequest, err)
	}

	return req, nil
}
