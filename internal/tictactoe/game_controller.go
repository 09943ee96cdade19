package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// NewGame starts a game with an empty board and X to move.
func NewGame(mode entity.Mode, humanSymbol entity.Symbol) entity.GameState {
	return entity.NewGameState(mode, humanSymbol)
}

// ApplyMove places the current turn's symbol on cell and returns the resulting state.
// A rejected move returns the given state untouched together with the reason.
func ApplyMove(state entity.GameState, cell int) (entity.GameState, error) {
	if err := validateMove(state, cell); err != nil {
		return state, err
	}

	next := state
	next.Board[cell] = state.Turn
	updateGameStatus(&next)

	return next, nil
}

// Status returns the status of the game.
func Status(state entity.GameState) entity.GameStatus {
	return state.Status
}

// validateMove - checks if the move is valid.
func validateMove(state entity.GameState, cell int) error {
	if state.Status.IsTerminal() {
		return apperror.ErrGameOver
	}

	if cell < 0 || cell >= len(state.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrOutOfRange, cell)
	}

	if state.Board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

// updateGameStatus - evaluates the board after a move; the turn only flips while the game goes on.
func updateGameStatus(state *entity.GameState) {
	state.Status = Evaluate(state.Board)
	if !state.Status.IsTerminal() {
		state.Turn = state.Turn.Opponent()
	}
}
