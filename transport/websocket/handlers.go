package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/presenter"
)

var (
	errCellRequired = errors.New("cell is required")
	errMoveRequired = errors.New("move is required")
)

func (that *Server) handleState(ctx context.Context, sessionID string, _ *RequestPayload) (*entity.Game, error) {
	return that.sessions.Get(ctx, sessionID)
}

func (that *Server) handlePlay(ctx context.Context, sessionID string, payload *RequestPayload) (*entity.Game, error) {
	if payload.Cell == nil {
		return nil, errCellRequired
	}

	return that.sessions.Play(ctx, sessionID, *payload.Cell)
}

func (that *Server) handleJump(ctx context.Context, sessionID string, payload *RequestPayload) (*entity.Game, error) {
	if payload.Move == nil {
		return nil, errMoveRequired
	}

	return that.sessions.JumpTo(ctx, sessionID, *payload.Move)
}

func (that *Server) handleSort(ctx context.Context, sessionID string, _ *RequestPayload) (*entity.Game, error) {
	return that.sessions.ToggleSort(ctx, sessionID)
}

func (that *Server) handleNewGame(ctx context.Context, sessionID string, _ *RequestPayload) (*entity.Game, error) {
	return that.sessions.NewGame(ctx, sessionID)
}

func (that *Server) sendGame(conn *websocket.Conn, action string, game *entity.Game) error {
	screen := presenter.Build(*game)

	return that.send(conn, Response{
		Action: action,
		Payload: ResponsePayload{
			SessionID: game.ID,
			Screen:    &screen,
		},
	})
}

func (that *Server) sendError(conn *websocket.Conn, action, errorMsg string) error {
	return that.send(conn, Response{
		Action:  action,
		Payload: ResponsePayload{Error: errorMsg},
	})
}

func (that *Server) send(conn *websocket.Conn, response Response) error {
	if err := conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write %s response: %w", response.Action, err)
	}

	return nil
}
