package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var (
	tracer = otel.Tracer("service.bot")
	meter  = otel.Meter("service.bot")
)

type BotService interface {
	// MakeTurn plays the computer's move and returns the new state and the chosen cell.
	MakeTurn(ctx context.Context, state entity.GameState) (entity.GameState, int, error)
	// Hint returns the cell the engine would play for the side to move.
	Hint(ctx context.Context, state entity.GameState) (int, error)
}

type searcher interface {
	Search(board entity.Board, side entity.Symbol) (tictactoe.SearchResult, error)
}

type botService struct {
	logger   *slog.Logger
	searcher searcher

	searchNodes metric.Int64Histogram
}

func NewBotService(logger *slog.Logger, searcher searcher) (BotService, error) {
	searchNodes, err := meter.Int64Histogram(
		"tictactoe.search.nodes",
		metric.WithDescription("Positions scored by one move search"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create search nodes histogram: %w", err)
	}

	return &botService{
		logger:      logger.With("component", "bot"),
		searcher:    searcher,
		searchNodes: searchNodes,
	}, nil
}

func (that *botService) MakeTurn(ctx context.Context, state entity.GameState) (entity.GameState, int, error) {
	log := that.logger.With("method", "MakeTurn")

	ctx, span := tracer.Start(ctx, "bot.MakeTurn", trace.WithAttributes(
		attribute.String("game.mode", string(state.Mode)),
		attribute.String("game.turn", string(state.Turn)),
	))
	defer span.End()

	if state.Status.IsTerminal() {
		span.SetStatus(codes.Error, apperror.ErrGameOver.Error())
		return state, tictactoe.NoMove, apperror.ErrGameOver
	}

	if !state.IsComputerTurn() {
		span.SetStatus(codes.Error, apperror.ErrNotYourTurn.Error())
		return state, tictactoe.NoMove, apperror.ErrNotYourTurn
	}

	result, err := that.search(ctx, state.Board, state.Turn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return state, tictactoe.NoMove, fmt.Errorf("bot failed to find a move: %w", err)
	}

	span.SetAttributes(
		attribute.Int("search.cell", result.Cell),
		attribute.Int("search.score", result.Score),
		attribute.Int("search.nodes", result.Nodes),
	)

	next, err := tictactoe.ApplyMove(state, result.Cell)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return state, tictactoe.NoMove, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.DebugContext(ctx, "computer moved", "cell", result.Cell, "score", result.Score, "nodes", result.Nodes)

	return next, result.Cell, nil
}

func (that *botService) Hint(ctx context.Context, state entity.GameState) (int, error) {
	ctx, span := tracer.Start(ctx, "bot.Hint")
	defer span.End()

	if state.Status.IsTerminal() {
		return tictactoe.NoMove, apperror.ErrGameOver
	}

	result, err := that.search(ctx, state.Board, state.Turn)
	if err != nil {
		span.RecordError(err)
		return tictactoe.NoMove, fmt.Errorf("failed to find a hint: %w", err)
	}

	span.SetAttributes(attribute.Int("search.cell", result.Cell))

	return result.Cell, nil
}

func (that *botService) search(ctx context.Context, board entity.Board, side entity.Symbol) (tictactoe.SearchResult, error) {
	result, err := that.searcher.Search(board, side)
	if err != nil {
		return result, err
	}

	that.searchNodes.Record(ctx, int64(result.Nodes), metric.WithAttributes(
		attribute.String("side", string(side)),
	))

	return result, nil
}
