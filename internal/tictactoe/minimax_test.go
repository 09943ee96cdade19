package tictactoe

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func TestBestMove(t *testing.T) {
	tests := []struct {
		name  string
		board entity.Board
		side  entity.Symbol
		want  int
	}{
		{name: "Empty board takes the center", board: entity.Board{}, side: x, want: 4},
		{name: "Takes the immediate win", board: entity.Board{x, x, e, o, o, e, e, e, e}, side: x, want: 2},
		{name: "Blocks the opponent", board: entity.Board{o, o, e, x, e, e, e, e, e}, side: x, want: 2},
		{name: "O takes the immediate win", board: entity.Board{x, x, e, o, o, e, x, e, e}, side: o, want: 5},
		{name: "Answers a corner with the center", board: entity.Board{x, e, e, e, e, e, e, e, e}, side: o, want: 4},
		{name: "Single empty cell", board: entity.Board{x, o, x, x, o, o, o, x, e}, side: x, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: the best move is searched
			cell, err := BestMove(tt.board, tt.side)

			// Then: the expected cell is returned
			require.NoError(t, err)
			assert.Equal(t, tt.want, cell)
		})
	}
}

func TestBestMove_PrefersFasterWin(t *testing.T) {
	// Given: X can win now on 2 or later through other lines
	board := entity.Board{x, x, e, e, o, e, o, e, e}

	// When: X searches
	result, err := NewSearcher().Search(board, x)

	// Then: the immediate win scores 10 and is chosen
	require.NoError(t, err)
	assert.Equal(t, 2, result.Cell)
	assert.Equal(t, 10, result.Score)
}

func TestBestMove_Rejections(t *testing.T) {
	t.Run("Full board has no legal move", func(t *testing.T) {
		cell, err := BestMove(entity.Board{x, o, x, x, o, o, o, x, x}, o)

		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
		assert.Equal(t, NoMove, cell)
	})

	t.Run("Side must be X or O", func(t *testing.T) {
		cell, err := BestMove(entity.Board{}, entity.EmptyCell)

		require.ErrorIs(t, err, apperror.ErrInvalidSymbol)
		assert.Equal(t, NoMove, cell)
	})
}

func TestBestMove_DoesNotTouchCallerBoard(t *testing.T) {
	// Given: a mid-game board
	board := entity.Board{x, e, e, e, o, e, e, e, e}
	before := board

	// When: the search runs
	_, err := BestMove(board, x)
	require.NoError(t, err)

	// Then: the caller's board is unchanged
	assert.Equal(t, before, board)
}

func TestBestMove_OptimalPlayEndsInDraw(t *testing.T) {
	for _, searcher := range []*Searcher{NewSearcher(), NewSearcher(WithPruning(true))} {
		// Given: both sides are played by the engine from an empty board
		game := NewGame(entity.ModePlayerVsPlayer, entity.PlayerX)

		for !game.Status.IsTerminal() {
			result, err := searcher.Search(game.Board, game.Turn)
			require.NoError(t, err)

			// Then: the engine never picks an occupied cell
			require.Equal(t, entity.EmptyCell, game.Board[result.Cell])

			game, err = ApplyMove(game, result.Cell)
			require.NoError(t, err)
		}

		// Then: optimal play against optimal play is a draw
		assert.Equal(t, entity.Draw(), game.Status)
	}
}

func TestBestMove_NeverLoses(t *testing.T) {
	searcher := NewSearcher(WithPruning(true))

	// Given: the engine plays one side against every possible opponent line
	for _, engineSide := range []entity.Symbol{x, o} {
		var play func(game entity.GameState)
		play = func(game entity.GameState) {
			if game.Status.IsTerminal() {
				// Then: the opponent never wins
				require.NotEqual(t, entity.Won(engineSide.Opponent()), game.Status, "board %v", game.Board)
				return
			}

			if game.Turn == engineSide {
				result, err := searcher.Search(game.Board, engineSide)
				require.NoError(t, err)

				next, err := ApplyMove(game, result.Cell)
				require.NoError(t, err)
				play(next)
				return
			}

			for _, cell := range game.Board.EmptyCells() {
				next, err := ApplyMove(game, cell)
				require.NoError(t, err)
				play(next)
			}
		}

		play(NewGame(entity.ModePlayerVsComputer, engineSide.Opponent()))
	}
}

func TestSearcher_PruningKeepsTheChoice(t *testing.T) {
	plain := NewSearcher()
	pruned := NewSearcher(WithPruning(true))

	// Given: every reachable in-progress position with at least two marks
	forEachPosition(func(state entity.GameState) {
		if len(state.Board.EmptyCells()) > 7 {
			return
		}

		want, err := plain.Search(state.Board, state.Turn)
		require.NoError(t, err)

		got, err := pruned.Search(state.Board, state.Turn)
		require.NoError(t, err)

		// Then: alpha-beta picks the same cell with the same score, visiting no more nodes
		require.Equal(t, want.Cell, got.Cell, "board %v", state.Board)
		require.Equal(t, want.Score, got.Score, "board %v", state.Board)
		require.LessOrEqual(t, got.Nodes, want.Nodes)
	})
}

func TestSearcher_ConcurrentSearches(t *testing.T) {
	searcher := NewSearcher(WithPruning(true))
	board := entity.Board{x, e, e, e, o, e, e, e, e}

	want, err := searcher.Search(board, x)
	require.NoError(t, err)

	// When: the same searcher is used from several goroutines
	var wg sync.WaitGroup
	results := make([]SearchResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = searcher.Search(board, x)
		}(i)
	}
	wg.Wait()

	// Then: every search returns the same answer
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
