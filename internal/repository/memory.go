package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type memorySession struct {
	session   entity.Session
	expiresAt time.Time
}

type memSession struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memorySession
}

// NewMemorySessionRepository keeps sessions in process memory with the same ttl rules as redis.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memSession{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memorySession),
	}
}

func (that *memSession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.purgeExpired()

	stored := memorySession{session: *session}
	if that.ttl > 0 {
		stored.expiresAt = that.now().Add(that.ttl)
	}
	that.sessions[session.ID] = stored

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	stored, ok := that.sessions[id]
	if !ok || that.expired(stored) {
		return nil, apperror.ErrSessionNotFound
	}

	session := stored.session
	return &session, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.sessions[id]
	if !ok || that.expired(stored) {
		delete(that.sessions, id)
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)
	return nil
}

func (that *memSession) expired(stored memorySession) bool {
	return !stored.expiresAt.IsZero() && !that.now().Before(stored.expiresAt)
}

// purgeExpired drops expired sessions. Callers hold the write lock.
func (that *memSession) purgeExpired() {
	for id, stored := range that.sessions {
		if that.expired(stored) {
			delete(that.sessions, id)
		}
	}
}
