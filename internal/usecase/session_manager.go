package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/pkg"
)

type sessionRepo interface {
	Save(ctx context.Context, game *entity.Game, ttl time.Duration) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionManager applies one transition per call to a stored session.
// Sessions from Start expire ttl after their last change; sessions from Open live until End.
type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	ttl         time.Duration
	open        mapset.Set[string]
	newID       func() string
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo, ttl time.Duration) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session_manager"),
		sessionRepo: sessionRepo,
		ttl:         ttl,
		open:        mapset.NewSet[string](),
		newID:       pkg.GenerateSessionID,
	}
}

// Start - creates a session that expires when left idle.
func (that *SessionManager) Start(ctx context.Context) (*entity.Game, error) {
	return that.create(ctx, false)
}

// Open - creates a session owned by a connection; it stays stored until End.
func (that *SessionManager) Open(ctx context.Context) (*entity.Game, error) {
	return that.create(ctx, true)
}

func (that *SessionManager) create(ctx context.Context, owned bool) (*entity.Game, error) {
	game := entity.NewGame(that.newID())

	if owned {
		that.open.Add(game.ID)
	}

	if err := that.sessionRepo.Save(ctx, &game, that.ttlFor(game.ID)); err != nil {
		that.open.Remove(game.ID)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Debug("session started", "sessionID", game.ID, "owned", owned)

	return &game, nil
}

func (that *SessionManager) ttlFor(id string) time.Duration {
	if that.open.Contains(id) {
		return 0
	}

	return that.ttl
}

func (that *SessionManager) Get(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return game, nil
}

// Play - occupied cells and moves after a win are ignored: the stored game is returned unchanged with no error.
func (that *SessionManager) Play(ctx context.Context, id string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "Play", "sessionID", id)

	return that.apply(ctx, id, func(game entity.Game) (entity.Game, error) {
		next, err := game.Play(cell)
		if errors.Is(err, apperror.ErrCellOccupied) || errors.Is(err, apperror.ErrGameFinished) {
			log.Debug("move ignored", "cell", cell, "reason", err)
			return game, errIgnored
		}

		return next, err
	})
}

func (that *SessionManager) JumpTo(ctx context.Context, id string, move int) (*entity.Game, error) {
	return that.apply(ctx, id, func(game entity.Game) (entity.Game, error) {
		return game.JumpTo(move)
	})
}

func (that *SessionManager) ToggleSort(ctx context.Context, id string) (*entity.Game, error) {
	return that.apply(ctx, id, func(game entity.Game) (entity.Game, error) {
		return game.ToggleSort(), nil
	})
}

func (that *SessionManager) NewGame(ctx context.Context, id string) (*entity.Game, error) {
	return that.apply(ctx, id, func(game entity.Game) (entity.Game, error) {
		return game.Reset(), nil
	})
}

func (that *SessionManager) End(ctx context.Context, id string) error {
	that.open.Remove(id)

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	that.logger.Debug("session ended", "sessionID", id)

	return nil
}

// errIgnored tells apply to skip the save and return the loaded game.
var errIgnored = errors.New("transition ignored")

func (that *SessionManager) apply(
	ctx context.Context,
	id string,
	transition func(entity.Game) (entity.Game, error),
) (*entity.Game, error) {
	game, err := that.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := transition(*game)
	if errors.Is(err, errIgnored) {
		return game, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to apply transition: %w", err)
	}

	if err = that.sessionRepo.Save(ctx, &next, that.ttlFor(id)); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return &next, nil
}
