package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
)

const (
	actionPing     = "ping"
	maxMessageSize = 1 << 20
)

type botUseCase interface {
	Dispatch(ctx context.Context, method string, body []byte) (any, error)
}

type handlerFunc func(ctx context.Context, message *Message) (any, error)

type Server struct {
	logger   *slog.Logger
	bot      botUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, bot botUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		bot:    bot,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	for _, method := range []string{
		usecase.MethodStatus,
		usecase.MethodStart,
		usecase.MethodTurn,
		usecase.MethodFinish,
		usecase.MethodError,
	} {
		server.handlers[method] = server.handleProtocol
	}
	server.handlers[actionPing] = server.handlePing

	return server
}

// ServeHTTP - upgrades the request and serves messages until the client goes away.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if err = that.handleMessages(r.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client one at a time.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("WebSocket connection closed")
				return nil
			}
			return err
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = conn.WriteJSON(response{Payload: usecase.InvalidRequest()}); err != nil {
				return err
			}
			continue
		}

		payload := that.process(ctx, &message)

		if err = conn.WriteJSON(response{Action: message.Action, Payload: payload}); err != nil {
			return err
		}
	}
}

func (that *Server) process(ctx context.Context, message *Message) any {
	log := that.logger.With("action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action")
		return usecase.InvalidRequest()
	}

	payload, err := handler(ctx, message)
	if err != nil {
		log.Error("error processing message", "error", err)
		return usecase.InvalidRequest()
	}

	return payload
}

func (that *Server) handleProtocol(ctx context.Context, message *Message) (any, error) {
	body := []byte(message.Payload)
	if isNull(body) {
		body = nil
	}

	return that.bot.Dispatch(ctx, message.Action, body)
}

func (that *Server) handlePing(_ context.Context, _ *Message) (any, error) {
	return "pong", nil
}

func isNull(body []byte) bool {
	return len(body) == 0 || string(body) == "null"
}

var _ http.Handler = (*Server)(nil)
