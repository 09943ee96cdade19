package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const writeWait = 10 * time.Second

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type newGameRequest struct {
	Mode        entity.Mode   `json:"mode" validate:"required,oneof=pvp pvc"`
	HumanSymbol entity.Symbol `json:"human_symbol" validate:"required,oneof=X O"`
}

type gameRequest struct {
	GameID string `json:"game_id" validate:"required"`
}

type turnRequest struct {
	GameID string `json:"game_id" validate:"required"`
	Cell   *int   `json:"cell" validate:"required"`
}

type configRequest struct {
	GameID      string        `json:"game_id" validate:"required"`
	Mode        entity.Mode   `json:"mode" validate:"required,oneof=pvp pvc"`
	HumanSymbol entity.Symbol `json:"human_symbol" validate:"required,oneof=X O"`
}

type GameView struct {
	ID      string           `json:"id"`
	Version uint64           `json:"version"`
	State   entity.GameState `json:"state"`
}

type ResponsePayload struct {
	Game   *GameView `json:"game,omitempty"`
	Cell   *int      `json:"cell,omitempty"`
	Status string    `json:"status,omitempty"`
	Error  string    `json:"error,omitempty"`
}

func newGameView(session entity.Session) *GameView {
	return &GameView{ID: session.ID, Version: session.Version, State: session.State}
}

// connection is one client. It follows at most one session at a time; writes are serialized.
// opMu is held while a request is handled so pushes never overtake the reply.
type connection struct {
	conn *websocket.Conn

	opMu sync.Mutex

	mu          sync.Mutex
	gameID      string
	lastVersion uint64
	sub         *subscription
}

func (that *connection) sendMessage(action string, payload ResponsePayload) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.writeLocked(action, payload)
}

// sendGame writes the session. With onlyNewer set, sessions the connection no longer follows
// and versions it has already seen are skipped.
func (that *connection) sendGame(action string, session entity.Session, onlyNewer bool) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if onlyNewer && (session.ID != that.gameID || session.Version <= that.lastVersion) {
		return nil
	}

	if session.ID == that.gameID {
		that.lastVersion = max(that.lastVersion, session.Version)
	}

	return that.writeLocked(action, ResponsePayload{Game: newGameView(session)})
}

func (that *connection) writeLocked(action string, payload ResponsePayload) error {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: rawPayload})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteMessage(websocket.TextMessage, response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) sendErrorResponse(action, message string) error {
	return that.sendMessage(action, ResponsePayload{Error: message})
}

// subscription is one Subscribe call of a connection.
type subscription struct {
	gameID      string
	unsubscribe func()
}

// follow switches the connection to sub and returns the previous subscription.
func (that *connection) follow(sub *subscription) *subscription {
	that.mu.Lock()
	defer that.mu.Unlock()

	previous := that.sub
	that.gameID = ""
	if sub != nil {
		that.gameID = sub.gameID
	}
	that.lastVersion = 0
	that.sub = sub

	return previous
}

// forget clears the follow state if sub is still the current subscription.
func (that *connection) forget(sub *subscription) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.sub != sub {
		return
	}

	that.gameID = ""
	that.lastVersion = 0
	that.sub = nil
}

func (that *connection) following() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.gameID
}

func (that *connection) stopFollowing() {
	if previous := that.follow(nil); previous != nil {
		previous.unsubscribe()
	}
}
