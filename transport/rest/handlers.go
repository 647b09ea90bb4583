package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/presenter"
)

var errNotANumber = errors.New("path value is not a number")

type sessionManager interface {
	Start(ctx context.Context) (*entity.Game, error)
	Get(ctx context.Context, id string) (*entity.Game, error)
	Play(ctx context.Context, id string, cell int) (*entity.Game, error)
	JumpTo(ctx context.Context, id string, move int) (*entity.Game, error)
	ToggleSort(ctx context.Context, id string) (*entity.Game, error)
	NewGame(ctx context.Context, id string) (*entity.Game, error)
	End(ctx context.Context, id string) error
}

type SessionResponse struct {
	SessionID string           `json:"session_id"`
	Screen    presenter.Screen `json:"screen"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handlers struct {
	logger   *slog.Logger
	sessions sessionManager
}

func NewHandlers(logger *slog.Logger, sessions sessionManager) *Handlers {
	return &Handlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
	}
}

func PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	game, err := that.sessions.Start(r.Context())
	if err != nil {
		that.writeError(w, "CreateSession", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newSessionResponse(game))
}

func (that *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	game, err := that.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	that.respond(w, "GetSession", game, err)
}

func (that *Handlers) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.End(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		that.writeError(w, "EndSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Handlers) Play(w http.ResponseWriter, r *http.Request) {
	cell, err := intParam(r, "cell")
	if err != nil {
		that.writeError(w, "Play", err)
		return
	}

	game, err := that.sessions.Play(r.Context(), chi.URLParam(r, "sessionID"), cell)
	that.respond(w, "Play", game, err)
}

func (that *Handlers) JumpTo(w http.ResponseWriter, r *http.Request) {
	move, err := intParam(r, "move")
	if err != nil {
		that.writeError(w, "JumpTo", err)
		return
	}

	game, err := that.sessions.JumpTo(r.Context(), chi.URLParam(r, "sessionID"), move)
	that.respond(w, "JumpTo", game, err)
}

func (that *Handlers) ToggleSort(w http.ResponseWriter, r *http.Request) {
	game, err := that.sessions.ToggleSort(r.Context(), chi.URLParam(r, "sessionID"))
	that.respond(w, "ToggleSort", game, err)
}

func (that *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.sessions.NewGame(r.Context(), chi.URLParam(r, "sessionID"))
	that.respond(w, "NewGame", game, err)
}

func (that *Handlers) respond(w http.ResponseWriter, method string, game *entity.Game, err error) {
	if err != nil {
		that.writeError(w, method, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newSessionResponse(game))
}

func (that *Handlers) writeError(w http.ResponseWriter, method string, err error) {
	log := that.logger.With("method", method)

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
		that.writeJSON(w, status, ErrorResponse{Error: http.StatusText(status)})
		return
	}

	log.Debug("request rejected", "error", err)
	that.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, errNotANumber):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func intParam(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, errNotANumber
	}

	return value, nil
}

func newSessionResponse(game *entity.Game) SessionResponse {
	return SessionResponse{
		SessionID: game.ID,
		Screen:    presenter.Build(*game),
	}
}
