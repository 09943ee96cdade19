package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
)

func newTestSession(id string) *entity.Session {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	state := entity.NewGameState(entity.ModePlayerVsComputer, entity.PlayerO)
	state.Board[4] = entity.PlayerX
	state.Turn = entity.PlayerO

	return entity.NewSession(id, state, created)
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, time.Hour)

	// Given: a session
	session := newTestSession("123")

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned, and the key carries the ttl
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, sessionKeyPrefix+session.ID).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a stored session
		session := newTestSession("123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: GetByID is called with existing ID
		retrieved, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: the retrieved session should match the saved one
		require.NoError(t, err)
		assert.Equal(t, session.ID, retrieved.ID)
		assert.Equal(t, session.Version, retrieved.Version)
		assert.Equal(t, session.State, retrieved.State)
		assert.True(t, session.CreatedAt.Equal(retrieved.CreatedAt))
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// When: GetByID is called with non-existent ID
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// Given: a stored session
		session := newTestSession("123")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session))

		// When: DeleteByID is called with existing ID
		err := sessionRepo.DeleteByID(ctx, session.ID)

		// Then: no error should be returned and the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, session.ID)
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, time.Hour)

		// When: DeleteByID is called with non-existent ID
		err := sessionRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
