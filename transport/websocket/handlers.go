package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/validator"
)

const (
	actionGameNew     = "game:new"
	actionGameGet     = "game:get"
	actionGameTurn    = "game:turn"
	actionGameRestart = "game:restart"
	actionGameConfig  = "game:config"
	actionGameHint    = "game:hint"
	actionGameLeave   = "game:leave"
	actionGameUpdate  = "game:update"
	actionError       = "error"

	gameStatusLeave = "leave"
)

var errPayloadRequired = errors.New("payload is required")

var publicErrors = []error{
	apperror.ErrGameOver,
	apperror.ErrOutOfRange,
	apperror.ErrCellOccupied,
	apperror.ErrNoLegalMove,
	apperror.ErrNotYourTurn,
	apperror.ErrSessionNotFound,
	apperror.ErrInvalidMode,
	apperror.ErrInvalidSymbol,
}

func (that *Server) handleNewGame(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	var req newGameRequest
	if err := decodePayload(msg, &req); err != nil {
		return conn.sendErrorResponse(msg.Action, "invalid request: "+err.Error())
	}

	session, err := that.gameUseCase.StartGame(ctx, req.Mode, req.HumanSymbol)
	if err != nil {
		log.Error("failed to start game", "error", err)
		return conn.sendErrorResponse(msg.Action, errorMessage(err))
	}

	return that.replyWithGame(ctx, conn, msg.Action, session)
}

func (that *Server) handleGetGame(ctx context.Context, conn *connection, msg *Message) error {
	var req gameRequest
	if err := decodePayload(msg, &req); err != nil {
		return conn.sendErrorResponse(msg.Action, "invalid request: "+err.Error())
	}

	session, err := that.gameUseCase.GetGame(ctx, req.GameID)
	if err != nil {
		return conn.sendErrorResponse(msg.Action, errorMessage(err))
	}

	return that.replyWithGame(ctx, conn, msg.Action, session)
}

func (that *Server) handleGameTurn(ctx context.Context, conn *connection, msg *Message) error {
	var req turnRequest
	if err := decodePayload(msg, &req); err != nil {
		return conn.sendErrorResponse(msg.Action, "invalid request: "+err.Error())
	}

	session, err := that.gameUseCase.MakeTurn(ctx, req.GameID, *req.Cell)
	if err != nil {
		return conn.sendErrorResponse(msg.Action, errorMessage(err))
	}

	return that.replyWithGame(ctx, conn, msg.Action, session)
}

func (that *Server) handleRestartGame(ctx context.Context, conn *connection, msg *Message) error {
	var req gameRequest
	if err := decodePayload(msg, &req); err != nil {
		return conn.sendErrorResponse(msg.Action, "invalid request: "+err.Error())
	}

	session, err := that.gameUseCase.RestartGame(ctx, req.GameID)
	if err != nil {
		return conn.sendErrorResponse(msg.Action, errorMessage(err))
	}

	return that.replyWithGame(ctx, conn, msg.Action, session)
}

func (that *Server) handleConfigureGame(ctx context.Context, conn *connection, msg *Message) error {
	var req configRequest
	if err := decodePayload(msg, &req); err != nil {
		return conn.sendErrorResponse(msg.Action, "invalid request: "+err.Error())
	}

	session, err := that.gameUseCase.ConfigureGame(ctx, req.GameID, req.Mode, req.HumanSymbol)
	if err != nil {
		return conn.sendErrorResponse(msg.Action, errorMessage(err))
	}

	return that.replyWithGame(ctx, conn, msg.Action, session)
}

func (that *Server) handleHint(ctx context.Context, conn *connection, msg *Message) error {
	var req gameRequest
	if err := decodePayload(msg, &req); err != nil {
		return conn.sendErrorResponse(msg.Action, "invalid request: "+err.Error())
	}

	cell, err := that.gameUseCase.Hint(ctx, req.GameID)
	if err != nil {
		return conn.sendErrorResponse(msg.Action, errorMessage(err))
	}

	return conn.sendMessage(msg.Action, ResponsePayload{Cell: &cell})
}

func (that *Server) handleLeaveGame(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleLeaveGame")

	var req gameRequest
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return conn.sendErrorResponse(msg.Action, "invalid request: "+err.Error())
		}
	}

	if req.GameID == "" {
		req.GameID = conn.following()
	}

	if req.GameID == "" {
		return conn.sendErrorResponse(msg.Action, "no game to leave")
	}

	conn.stopFollowing()

	if err := that.gameUseCase.EndGame(ctx, req.GameID); err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		log.Error("failed to end game", "game", req.GameID, "error", err)
		return conn.sendErrorResponse(msg.Action, errorMessage(err))
	}

	return conn.sendMessage(msg.Action, ResponsePayload{Status: gameStatusLeave})
}

// replyWithGame makes the connection follow the session and answers with its latest version.
func (that *Server) replyWithGame(ctx context.Context, conn *connection, action string, session *entity.Session) error {
	if conn.following() != session.ID {
		updates, unsubscribe := that.gameUseCase.Subscribe(ctx, session.ID)
		sub := &subscription{gameID: session.ID, unsubscribe: unsubscribe}
		if previous := conn.follow(sub); previous != nil {
			previous.unsubscribe()
		}

		go that.pushUpdates(conn, sub, updates)

		// a computer move may have landed before the subscription
		if latest, err := that.gameUseCase.GetGame(ctx, session.ID); err == nil && latest.Version > session.Version {
			session = latest
		}
	}

	return conn.sendGame(action, *session, false)
}

// pushUpdates forwards stored changes of the followed session until the subscription ends.
// A subscription closed from the other side (slow consumer, ended game) is forgotten so the
// next reply subscribes again.
func (that *Server) pushUpdates(conn *connection, sub *subscription, updates <-chan entity.Session) {
	log := that.logger.With("method", "pushUpdates")

	for session := range updates {
		conn.opMu.Lock()
		err := conn.sendGame(actionGameUpdate, session, true)
		conn.opMu.Unlock()

		if err != nil {
			log.Warn("failed to push update", "game", session.ID, "error", err)
		}
	}

	conn.forget(sub)
	sub.unsubscribe()
}

func decodePayload(msg *Message, dst any) error {
	if len(msg.Payload) == 0 {
		return errPayloadRequired
	}

	if err := json.Unmarshal(msg.Payload, dst); err != nil {
		return err
	}

	return validator.Get().Struct(dst)
}

func errorMessage(err error) string {
	for _, public := range publicErrors {
		if errors.Is(err, public) {
			return public.Error()
		}
	}

	return "internal error"
}
