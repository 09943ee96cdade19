package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const subscriberBuffer = 4

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type bot interface {
	MakeTurn(ctx context.Context, state entity.GameState) (entity.GameState, int, error)
	Hint(ctx context.Context, state entity.GameState) (int, error)
}

type pendingTurn struct {
	version uint64
	cancel  context.CancelFunc
}

type subscriber struct {
	ch     chan entity.Session
	closed bool
}

// GameManager owns the live sessions: it applies human moves, paces the computer's
// replies and pushes every stored change to subscribers.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	bot         bot

	computerDelay time.Duration
	now           func() time.Time

	// mu serializes every load-modify-save.
	mu      sync.Mutex
	pending map[string]pendingTurn
	closed  bool
	wg      sync.WaitGroup

	subsMu sync.Mutex
	subs   map[string]map[*subscriber]struct{}
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, bot bot, computerDelay time.Duration) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		sessionRepo: sessionRepo,
		bot:         bot,

		computerDelay: computerDelay,
		now:           time.Now,

		pending: make(map[string]pendingTurn),
		subs:    make(map[string]map[*subscriber]struct{}),
	}
}

// StartGame opens a new session. When the computer plays X its opening move is scheduled.
func (that *GameManager) StartGame(ctx context.Context, mode entity.Mode, humanSymbol entity.Symbol) (*entity.Session, error) {
	log := that.logger.With("method", "StartGame")

	if err := validateConfig(mode, humanSymbol); err != nil {
		return nil, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	session := entity.NewSession(pkg.GenerateSessionID(), tictactoe.NewGame(mode, humanSymbol), that.now())
	if err := that.save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	log.InfoContext(ctx, "game started", "session", session.ID, "mode", mode, "human", humanSymbol)

	return session, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	return session, nil
}

// MakeTurn plays cell for the side to move. In player-vs-computer mode only the human's
// turns are accepted here.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Session, error) {
	log := that.logger.With("method", "MakeTurn")

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	if session.State.IsComputerTurn() {
		return session, apperror.ErrNotYourTurn
	}

	next, err := tictactoe.ApplyMove(session.State, cell)
	if err != nil {
		return session, fmt.Errorf("failed make turn: %w", err)
	}

	session.Replace(next, that.now())
	if err = that.save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	log.DebugContext(ctx, "turn made", "session", id, "cell", cell, "outcome", next.Status.Outcome)

	return session, nil
}

// RestartGame clears the board and keeps the mode and symbol.
func (that *GameManager) RestartGame(ctx context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	session.Replace(tictactoe.NewGame(session.State.Mode, session.State.HumanSymbol), that.now())
	if err = that.save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return session, nil
}

// ConfigureGame switches mode or symbol. Any change starts a fresh board.
func (that *GameManager) ConfigureGame(ctx context.Context, id string, mode entity.Mode, humanSymbol entity.Symbol) (*entity.Session, error) {
	if err := validateConfig(mode, humanSymbol); err != nil {
		return nil, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	session.Replace(tictactoe.NewGame(mode, humanSymbol), that.now())
	if err = that.save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return session, nil
}

// EndGame drops the session together with any pending computer move.
func (that *GameManager) EndGame(ctx context.Context, id string) error {
	log := that.logger.With("method", "EndGame")

	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelPending(id)

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed delete game: %w", err)
	}

	that.closeSubscribers(id)

	log.InfoContext(ctx, "game ended", "session", id)

	return nil
}

// Hint returns the engine's choice for the side to move.
func (that *GameManager) Hint(ctx context.Context, id string) (int, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return tictactoe.NoMove, fmt.Errorf("failed get game: %w", err)
	}

	cell, err := that.bot.Hint(ctx, session.State)
	if err != nil {
		return tictactoe.NoMove, fmt.Errorf("failed get hint: %w", err)
	}

	return cell, nil
}

// Subscribe returns a channel receiving every stored change of the session and an
// unsubscribe func. Slow subscribers are dropped; the channel is closed when the
// subscription ends.
func (that *GameManager) Subscribe(ctx context.Context, id string) (<-chan entity.Session, func()) {
	sub := &subscriber{ch: make(chan entity.Session, subscriberBuffer)}

	that.subsMu.Lock()
	set := that.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		that.subs[id] = set
	}
	set[sub] = struct{}{}
	that.subsMu.Unlock()

	var once sync.Once
	remove := func() {
		once.Do(func() {
			that.subsMu.Lock()
			defer that.subsMu.Unlock()

			if set, ok := that.subs[id]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(that.subs, id)
				}
			}
			sub.close()
		})
	}

	stop := context.AfterFunc(ctx, remove)
	unsubscribe := func() {
		stop()
		remove()
	}

	return sub.ch, unsubscribe
}

// Close cancels every pending computer move and waits for running ones to finish.
// No computer move is scheduled afterwards.
func (that *GameManager) Close() {
	that.mu.Lock()
	that.closed = true
	for id := range that.pending {
		that.cancelPending(id)
	}
	that.mu.Unlock()

	that.wg.Wait()
}

// save stores the session, notifies subscribers and schedules the computer's reply
// when the new state leaves it to move. Callers hold mu.
func (that *GameManager) save(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return err
	}

	that.publish(*session)
	that.scheduleComputerTurn(ctx, session)

	return nil
}

func (that *GameManager) scheduleComputerTurn(ctx context.Context, session *entity.Session) {
	that.cancelPending(session.ID)

	if that.closed || !session.State.IsComputerTurn() {
		return
	}

	turnCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	that.pending[session.ID] = pendingTurn{version: session.Version, cancel: cancel}

	id, version := session.ID, session.Version

	that.wg.Add(1)
	go func() {
		defer that.wg.Done()
		defer cancel()

		timer := time.NewTimer(that.computerDelay)
		defer timer.Stop()

		select {
		case <-turnCtx.Done():
			return
		case <-timer.C:
		}

		that.playComputerTurn(turnCtx, id, version)
	}()
}

// playComputerTurn applies the computer's move if the session is still at version.
func (that *GameManager) playComputerTurn(ctx context.Context, id string, version uint64) {
	log := that.logger.With("method", "playComputerTurn", "session", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	if pending, ok := that.pending[id]; ok && pending.version == version {
		delete(that.pending, id)
	}

	if ctx.Err() != nil {
		return
	}

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperror.ErrSessionNotFound) {
			log.ErrorContext(ctx, "failed get game", "error", err)
		}
		return
	}

	if session.Version != version {
		log.DebugContext(ctx, "discarding stale computer move", "scheduled", version, "current", session.Version)
		return
	}

	next, cell, err := that.bot.MakeTurn(ctx, session.State)
	if err != nil {
		log.ErrorContext(ctx, "computer failed to move", "error", err)
		return
	}

	session.Replace(next, that.now())
	if err = that.save(ctx, session); err != nil {
		log.ErrorContext(ctx, "failed update game", "error", err)
		return
	}

	log.DebugContext(ctx, "computer turn applied", "cell", cell, "outcome", next.Status.Outcome)
}

func (that *GameManager) cancelPending(id string) {
	if pending, ok := that.pending[id]; ok {
		pending.cancel()
		delete(that.pending, id)
	}
}

func (that *GameManager) publish(session entity.Session) {
	log := that.logger.With("method", "publish")

	that.subsMu.Lock()
	defer that.subsMu.Unlock()

	for sub := range that.subs[session.ID] {
		select {
		case sub.ch <- session:
		default:
			log.Warn("dropping slow subscriber", "session", session.ID)
			delete(that.subs[session.ID], sub)
			sub.close()
		}
	}
}

func (that *GameManager) closeSubscribers(id string) {
	that.subsMu.Lock()
	defer that.subsMu.Unlock()

	for sub := range that.subs[id] {
		sub.close()
	}
	delete(that.subs, id)
}

// close must be called with subsMu held.
func (that *subscriber) close() {
	if !that.closed {
		that.closed = true
		close(that.ch)
	}
}

func validateConfig(mode entity.Mode, humanSymbol entity.Symbol) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}

	if !humanSymbol.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, humanSymbol)
	}

	return nil
}
