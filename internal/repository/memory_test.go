package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a copy of the session", func(t *testing.T) {
		// Given: a stored session
		sessionRepo := NewMemorySessionRepository(time.Hour)
		session := newTestSession("abc")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: the caller keeps mutating its pointer
		session.Version = 42

		// Then: the stored session is unaffected
		retrieved, err := sessionRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), retrieved.Version)
	})

	t.Run("Missing session", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(time.Hour)

		_, err := sessionRepo.GetByID(ctx, "nope")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		err = sessionRepo.DeleteByID(ctx, "nope")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Expired sessions behave as missing", func(t *testing.T) {
		// Given: a repository with a controllable clock
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		sessionRepo := NewMemorySessionRepository(time.Minute).(*memSession)
		sessionRepo.now = func() time.Time { return now }

		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, newTestSession("abc")))

		// When: the ttl passes
		now = now.Add(time.Minute)

		// Then: the session is gone
		_, err := sessionRepo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		// Then: the next write purges it
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, newTestSession("def")))
		assert.Len(t, sessionRepo.sessions, 1)
	})

	t.Run("Delete removes the session", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(0)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, newTestSession("abc")))

		require.NoError(t, sessionRepo.DeleteByID(ctx, "abc"))

		_, err := sessionRepo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
