package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type memorySession struct {
	game      entity.Game
	expiresAt time.Time
}

type memSession struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	now      func() time.Time
}

// NewMemorySessionRepository keeps sessions in process memory.
func NewMemorySessionRepository() SessionRepository {
	return newMemorySessionRepository(time.Now)
}

func newMemorySessionRepository(now func() time.Time) *memSession {
	return &memSession{
		sessions: make(map[string]memorySession),
		now:      now,
	}
}

func (that *memSession) Save(_ context.Context, game *entity.Game, ttl time.Duration) error {
	entry := memorySession{game: game.Clone()}
	if ttl > 0 {
		entry.expiresAt = that.now().Add(ttl)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[game.ID] = entry
	that.sweep()

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	entry, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok || that.expired(entry) {
		return nil, apperror.ErrSessionNotFound
	}

	game := entry.game.Clone()

	return &game, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.sessions[id]
	if !ok || that.expired(entry) {
		delete(that.sessions, id)
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

func (that *memSession) expired(entry memorySession) bool {
	return !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt)
}

// sweep drops expired entries; callers hold the write lock.
func (that *memSession) sweep() {
	for id, entry := range that.sessions {
		if that.expired(entry) {
			delete(that.sessions, id)
		}
	}
}
