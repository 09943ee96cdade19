package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameState(t *testing.T) {
	// When: a new player-vs-computer game is created with the human playing O
	state := NewGameState(ModePlayerVsComputer, PlayerO)

	// Then: the board is empty, X moves first and the game is in progress
	expected := GameState{
		Board:       Board{},
		Turn:        PlayerX,
		Mode:        ModePlayerVsComputer,
		HumanSymbol: PlayerO,
		Status:      GameStatus{Outcome: OutcomeInProgress},
	}
	require.Equal(t, expected, state)
	assert.True(t, state.Board.IsEmpty())
	assert.Len(t, state.Board, BoardSize)
}

func TestSymbol(t *testing.T) {
	t.Run("Opponent flips X and O", func(t *testing.T) {
		assert.Equal(t, PlayerO, PlayerX.Opponent())
		assert.Equal(t, PlayerX, PlayerO.Opponent())
	})

	t.Run("Empty cell has no opponent", func(t *testing.T) {
		assert.Equal(t, EmptyCell, EmptyCell.Opponent())
		assert.False(t, EmptyCell.IsPlayer())
		assert.False(t, Symbol("Z").IsPlayer())
	})
}

func TestMode_IsValid(t *testing.T) {
	assert.True(t, ModePlayerVsPlayer.IsValid())
	assert.True(t, ModePlayerVsComputer.IsValid())
	assert.False(t, Mode("ai").IsValid())
	assert.False(t, Mode("").IsValid())
}

func TestGameStatus_IsTerminal(t *testing.T) {
	assert.False(t, InProgress().IsTerminal())
	assert.True(t, Won(PlayerX).IsTerminal())
	assert.True(t, Draw().IsTerminal())
	assert.Equal(t, PlayerO, Won(PlayerO).Winner)
}

func TestBoard(t *testing.T) {
	t.Run("Empty cells are listed in ascending order", func(t *testing.T) {
		// Given: a board with three played cells
		board := Board{PlayerX, EmptyCell, PlayerO, EmptyCell, PlayerX}

		// Then: the remaining cells come back ascending
		assert.Equal(t, []int{1, 3, 5, 6, 7, 8}, board.EmptyCells())
		assert.Equal(t, 2, board.Count(PlayerX))
		assert.Equal(t, 1, board.Count(PlayerO))
		assert.False(t, board.IsEmpty())
		assert.False(t, board.IsFull())
	})

	t.Run("Full board", func(t *testing.T) {
		board := Board{PlayerX, PlayerO, PlayerX, PlayerX, PlayerO, PlayerO, PlayerO, PlayerX, PlayerX}

		assert.True(t, board.IsFull())
		assert.Empty(t, board.EmptyCells())
	})
}

func TestGameState_IsComputerTurn(t *testing.T) {
	t.Run("Player vs player never has a computer turn", func(t *testing.T) {
		state := NewGameState(ModePlayerVsPlayer, PlayerX)

		assert.Equal(t, EmptyCell, state.ComputerSymbol())
		assert.False(t, state.IsComputerTurn())
	})

	t.Run("Computer opens when the human plays O", func(t *testing.T) {
		state := NewGameState(ModePlayerVsComputer, PlayerO)

		assert.Equal(t, PlayerX, state.ComputerSymbol())
		assert.True(t, state.IsComputerTurn())
	})

	t.Run("Finished game has no pending computer turn", func(t *testing.T) {
		state := NewGameState(ModePlayerVsComputer, PlayerO)
		state.Status = Draw()

		assert.False(t, state.IsComputerTurn())
	})
}

func TestSession_Replace(t *testing.T) {
	// Given: a fresh session
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	session := NewSession("abc", NewGameState(ModePlayerVsPlayer, PlayerX), created)
	require.Equal(t, uint64(1), session.Version)

	// When: the state is replaced
	updated := created.Add(time.Minute)
	next := NewGameState(ModePlayerVsComputer, PlayerO)
	session.Replace(next, updated)

	// Then: the version grows and timestamps move
	assert.Equal(t, uint64(2), session.Version)
	assert.Equal(t, next, session.State)
	assert.Equal(t, created, session.CreatedAt)
	assert.Equal(t, updated, session.UpdatedAt)
}
