package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	readBufferSize  = 1024
	writeBufferSize = 1024
	readLimit       = 4096
)

type sessionManager interface {
	Open(ctx context.Context) (*entity.Game, error)
	Get(ctx context.Context, id string) (*entity.Game, error)
	Play(ctx context.Context, id string, cell int) (*entity.Game, error)
	JumpTo(ctx context.Context, id string, move int) (*entity.Game, error)
	ToggleSort(ctx context.Context, id string) (*entity.Game, error)
	NewGame(ctx context.Context, id string) (*entity.Game, error)
	End(ctx context.Context, id string) error
}

type handlerFunc func(ctx context.Context, sessionID string, payload *RequestPayload) (*entity.Game, error)

// Server gives every connection its own session, ended when the socket closes.
type Server struct {
	logger   *slog.Logger
	sessions sessionManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, sessions sessionManager) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionState] = server.handleState
	server.handlers[ActionPlay] = server.handlePlay
	server.handlers[ActionJump] = server.handleJump
	server.handlers[ActionSort] = server.handleSort
	server.handlers[ActionNew] = server.handleNewGame

	return server
}

// ServeHTTP - upgrades the connection to WebSocket and runs its session.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(readLimit)

	ctx := req.Context()

	game, err := that.sessions.Open(ctx)
	if err != nil {
		log.Error("failed to start session", "error", err)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "failed to start session"))
		return
	}

	log = log.With("sessionID", game.ID)
	log.Info("WebSocket connection established")

	defer func() {
		if err := that.sessions.End(context.WithoutCancel(ctx), game.ID); err != nil {
			log.Error("failed to end session", "error", err)
		}
	}()

	if err = that.sendGame(conn, ActionState, game); err != nil {
		log.Error("failed to send initial state", "error", err)
		return
	}

	if err = that.handleMessages(ctx, conn, game.ID); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages", "sessionID", sessionID)

	for {
		_, reqBody, err := conn.ReadMessage()
		if err != nil {
			if isExpectedClose(err) {
				log.Info("WebSocket connection closed")
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.sendError(conn, "", "malformed message"); err != nil {
				return err
			}
			continue
		}

		if err = that.dispatch(ctx, conn, sessionID, &message); err != nil {
			return err
		}
	}
}

// isExpectedClose covers normal closes and tabs that were closed or killed without a close frame.
func isExpectedClose(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
		websocket.CloseAbnormalClosure,
	)
}

// dispatch runs one action; only write failures are returned.
func (that *Server) dispatch(ctx context.Context, conn *websocket.Conn, sessionID string, message *Message) error {
	log := that.logger.With("method", "dispatch", "sessionID", sessionID, "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action")
		return that.sendError(conn, message.Action, "unknown action")
	}

	var payload RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			log.Warn("failed to unmarshal payload", "error", err)
			return that.sendError(conn, message.Action, "malformed payload")
		}
	}

	game, err := handler(ctx, sessionID, &payload)
	if err != nil {
		log.Warn("action failed", "error", err)
		return that.sendError(conn, message.Action, err.Error())
	}

	return that.sendGame(conn, message.Action, game)
}
