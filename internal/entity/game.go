package entity

// Symbol is the mark a player places on the board. EmptyCell marks an unplayed cell.
type Symbol string

const (
	PlayerX   Symbol = "X"
	PlayerO   Symbol = "O"
	EmptyCell Symbol = ""
)

// Mode decides who supplies the moves of the non-human side.
type Mode string

const (
	ModePlayerVsPlayer   Mode = "pvp"
	ModePlayerVsComputer Mode = "pvc"
)

type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWon        Outcome = "won"
	OutcomeDraw       Outcome = "draw"
)

// BoardSize is the number of cells on the 3x3 board.
const BoardSize = 9

// Board holds the cells in row-major order: row = index / 3, col = index % 3.
type Board [BoardSize]Symbol

// GameStatus is InProgress, Won with a winner, or Draw.
type GameStatus struct {
	Outcome Outcome `json:"outcome"`
	Winner  Symbol  `json:"winner,omitempty"`
}

// GameState is the whole game as held by the caller. It is passed and returned by value.
type GameState struct {
	Board       Board      `json:"board"`
	Turn        Symbol     `json:"turn"`
	Mode        Mode       `json:"mode"`
	HumanSymbol Symbol     `json:"human_symbol"`
	Status      GameStatus `json:"status"`
}

func (that Symbol) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's symbol. EmptyCell has no opponent.
func (that Symbol) Opponent() Symbol {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mode) IsValid() bool {
	return that == ModePlayerVsPlayer || that == ModePlayerVsComputer
}

func InProgress() GameStatus {
	return GameStatus{Outcome: OutcomeInProgress}
}

func Won(winner Symbol) GameStatus {
	return GameStatus{Outcome: OutcomeWon, Winner: winner}
}

func Draw() GameStatus {
	return GameStatus{Outcome: OutcomeDraw}
}

// IsTerminal reports whether no further moves are accepted.
func (that GameStatus) IsTerminal() bool {
	return that.Outcome == OutcomeWon || that.Outcome == OutcomeDraw
}

func (that Board) IsEmpty() bool {
	for _, cell := range that {
		if cell != EmptyCell {
			return false
		}
	}
	return true
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// EmptyCells returns the indexes of unplayed cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

// Count returns how many cells hold the given symbol.
func (that Board) Count(symbol Symbol) int {
	count := 0
	for _, cell := range that {
		if cell == symbol {
			count++
		}
	}
	return count
}

// NewGameState returns a fresh game: empty board, X to move, in progress.
func NewGameState(mode Mode, humanSymbol Symbol) GameState {
	return GameState{
		Turn:        PlayerX,
		Mode:        mode,
		HumanSymbol: humanSymbol,
		Status:      InProgress(),
	}
}

// ComputerSymbol returns the computer-controlled symbol, or EmptyCell outside
// player-vs-computer mode.
func (that GameState) ComputerSymbol() Symbol {
	if that.Mode != ModePlayerVsComputer {
		return EmptyCell
	}
	return that.HumanSymbol.Opponent()
}

// IsComputerTurn reports whether the pending move belongs to the computer.
func (that GameState) IsComputerTurn() bool {
	return !that.Status.IsTerminal() &&
		that.Mode == ModePlayerVsComputer &&
		that.Turn == that.ComputerSymbol()
}
