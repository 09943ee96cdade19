package rest

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type configRequest struct {
	Mode        entity.Mode   `json:"mode" validate:"required,oneof=pvp pvc"`
	HumanSymbol entity.Symbol `json:"human_symbol" validate:"required,oneof=X O"`
}

type turnRequest struct {
	Cell *int `json:"cell" validate:"required"`
}

type gameResponse struct {
	ID      string           `json:"id"`
	Version uint64           `json:"version"`
	State   entity.GameState `json:"state"`
}

type gameEnvelope struct {
	Game gameResponse `json:"game"`
}

type hintEnvelope struct {
	Cell int `json:"cell"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func newGameEnvelope(session *entity.Session) gameEnvelope {
	return gameEnvelope{Game: gameResponse{
		ID:      session.ID,
		Version: session.Version,
		State:   session.State,
	}}
}
