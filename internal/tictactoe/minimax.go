package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// NoMove is returned when no cell can be played.
const NoMove = -1

const (
	centerCell = 4
	winScore   = 10
)

// SearchResult describes the chosen move. Nodes counts the positions scored by the search.
type SearchResult struct {
	Cell  int
	Score int
	Nodes int
}

// Searcher computes optimal moves. It keeps no state between calls and is safe for concurrent use.
type Searcher struct {
	pruning bool
}

type Option func(*Searcher)

// WithPruning turns alpha-beta pruning on or off. Pruning never changes the chosen move.
func WithPruning(enabled bool) Option {
	return func(s *Searcher) {
		s.pruning = enabled
	}
}

func NewSearcher(opts ...Option) *Searcher {
	searcher := &Searcher{}
	for _, opt := range opts {
		opt(searcher)
	}
	return searcher
}

// BestMove returns the optimal cell for side using plain minimax.
func BestMove(board entity.Board, side entity.Symbol) (int, error) {
	result, err := NewSearcher().Search(board, side)
	return result.Cell, err
}

// Search scores every empty cell for side and returns the best one. Ties go to the lowest index.
func (that *Searcher) Search(board entity.Board, side entity.Symbol) (SearchResult, error) {
	if !side.IsPlayer() {
		return SearchResult{Cell: NoMove}, apperror.ErrInvalidSymbol
	}

	if board.IsFull() {
		return SearchResult{Cell: NoMove}, apperror.ErrNoLegalMove
	}

	// the center is optimal on an empty board
	if board.IsEmpty() {
		return SearchResult{Cell: centerCell}, nil
	}

	s := &search{
		board:    board,
		ai:       side,
		opponent: side.Opponent(),
		pruning:  that.pruning,
	}

	best := SearchResult{Cell: NoMove, Score: math.MinInt}
	alpha := math.MinInt
	for cell := range s.board {
		if s.board[cell] != entity.EmptyCell {
			continue
		}

		s.board[cell] = side
		score := s.minimax(0, false, alpha, math.MaxInt)
		s.board[cell] = entity.EmptyCell

		if score > best.Score {
			best.Cell = cell
			best.Score = score
			alpha = score
		}
	}
	best.Nodes = s.nodes

	return best, nil
}

// search is the scratch state of one Search call. board is a private copy that
// minimax mutates with place/undo.
type search struct {
	board    entity.Board
	ai       entity.Symbol
	opponent entity.Symbol
	pruning  bool
	nodes    int
}

func (s *search) minimax(depth int, maximizing bool, alpha, beta int) int {
	s.nodes++

	status := Evaluate(s.board)
	switch status.Outcome {
	case entity.OutcomeWon:
		if status.Winner == s.ai {
			return winScore - depth
		}
		return depth - winScore
	case entity.OutcomeDraw:
		return 0
	}

	if maximizing {
		best := math.MinInt
		for cell := range s.board {
			if s.board[cell] != entity.EmptyCell {
				continue
			}

			s.board[cell] = s.ai
			best = max(best, s.minimax(depth+1, false, alpha, beta))
			s.board[cell] = entity.EmptyCell

			if s.pruning {
				alpha = max(alpha, best)
				if alpha >= beta {
					break
				}
			}
		}
		return best
	}

	best := math.MaxInt
	for cell := range s.board {
		if s.board[cell] != entity.EmptyCell {
			continue
		}

		s.board[cell] = s.opponent
		best = min(best, s.minimax(depth+1, true, alpha, beta))
		s.board[cell] = entity.EmptyCell

		if s.pruning {
			beta = min(beta, best)
			if alpha >= beta {
				break
			}
		}
	}
	return best
}
