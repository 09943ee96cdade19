package entity

import "time"

// Session is one client's live game. Version grows with every stored change and tags
// scheduled computer moves, so a move computed for an older version is never applied.
type Session struct {
	ID        string    `json:"id"`
	Version   uint64    `json:"version"`
	State     GameState `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id string, state GameState, now time.Time) *Session {
	return &Session{
		ID:        id,
		Version:   1,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Replace stores a new state and bumps the version.
func (that *Session) Replace(state GameState, now time.Time) {
	that.State = state
	that.Version++
	that.UpdatedAt = now
}
