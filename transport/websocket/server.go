package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	shutdownTimeout = 5 * time.Second
	readLimit       = 4096
)

type gameUseCase interface {
	StartGame(ctx context.Context, mode entity.Mode, humanSymbol entity.Symbol) (*entity.Session, error)
	GetGame(ctx context.Context, id string) (*entity.Session, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Session, error)
	RestartGame(ctx context.Context, id string) (*entity.Session, error)
	ConfigureGame(ctx context.Context, id string, mode entity.Mode, humanSymbol entity.Symbol) (*entity.Session, error)
	EndGame(ctx context.Context, id string) error
	Hint(ctx context.Context, id string) (int, error)
	Subscribe(ctx context.Context, id string) (<-chan entity.Session, func())
}

type handlerFunc func(ctx context.Context, conn *connection, message *Message) error

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameGet] = server.handleGetGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameRestart] = server.handleRestartGame
	server.handlers[actionGameConfig] = server.handleConfigureGame
	server.handlers[actionGameHint] = server.handleHint
	server.handlers[actionGameLeave] = server.handleLeaveGame

	return server
}

// Handler returns the WebSocket endpoint mounted at /ws.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	wsConn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer wsConn.Close()

	log.Info("WebSocket connection established")

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn := &connection{conn: wsConn}
	defer conn.stopFollowing()

	if err = that.handleMessages(connCtx, conn); err != nil {
		log.Debug("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	conn.conn.SetReadLimit(readLimit)

	for {
		_, reqBody, err := conn.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = conn.sendErrorResponse(actionError, "malformed message"); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = conn.sendErrorResponse(message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		conn.opMu.Lock()
		err = handler(ctx, conn, &message)
		conn.opMu.Unlock()

		if err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}
