package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
)

const (
	greeting    = "Tic Tac Toe Bot!"
	maxBodySize = 1 << 20
)

type botUseCase interface {
	Dispatch(ctx context.Context, method string, body []byte) (any, error)
}

type handlers struct {
	logger *slog.Logger
	bot    botUseCase
}

func (that *handlers) Hello(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(greeting)); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// Protocol - serves POST /?method=... by handing the raw body to the use case.
func (that *handlers) Protocol(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Query().Get("method")
	log := that.logger.With("method", method, "request_id", middleware.GetReqID(r.Context()))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		log.Error("failed to read request body", "error", err)
		that.writeJSON(w, http.StatusBadRequest, usecase.InvalidRequest())
		return
	}

	response, err := that.bot.Dispatch(r.Context(), method, body)
	if err != nil {
		if apperror.IsBadRequest(err) {
			log.Warn("invalid request", "error", err)
			that.writeJSON(w, http.StatusBadRequest, usecase.InvalidRequest())
			return
		}

		log.Error("failed to handle request", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, usecase.InvalidRequest())
		return
	}

	that.writeJSON(w, http.StatusOK, response)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		that.logger.Error("failed to marshal response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(data); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
