package apperror

import "errors"

// Rejections of the game engine.
var (
	ErrGameOver     = errors.New("game already over")
	ErrOutOfRange   = errors.New("cell index out of range")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrNoLegalMove  = errors.New("no legal move available")
)

var (
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrSessionNotFound = errors.New("game session not found")
	ErrInvalidMode     = errors.New("invalid game mode")
	ErrInvalidSymbol   = errors.New("invalid player symbol")
)
