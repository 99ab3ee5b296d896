package tictactoe

import (
	"errors"
	"fmt"
)

const (
	// BoardCells is the number of cells in a sub-board and of sub-boards in a match.
	BoardCells = 9
	// CenterIndex is the center cell of a sub-board and the center sub-board of a match.
	CenterIndex = 4
)

var (
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidMark  = errors.New("invalid mark")

	// WinCombos lists the 8 lines that win a 3x3 grid: rows, columns, diagonals.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// lineWinner - returns the mark holding the first complete line, or MarkNone.
func lineWinner(marks [BoardCells]Mark) Mark {
	for _, combo := range WinCombos {
		a, b, c := marks[combo[0]], marks[combo[1]], marks[combo[2]]
		if a != MarkNone && a == b && b == c {
			return a
		}
	}

	return MarkNone
}

// SubBoard is one of the nine inner 3x3 grids.
type SubBoard struct {
	cells [BoardCells]Mark
}

// SetCell - places a mark. Occupied cells are never overwritten.
func (that *SubBoard) SetCell(cell int, mark Mark) error {
	if cell < 0 || cell >= BoardCells {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %d", ErrInvalidMark, mark)
	}

	if that.cells[cell] != MarkNone {
		return fmt.Errorf("%w: cell %d", ErrCellOccupied, cell)
	}

	that.cells[cell] = mark

	return nil
}

func (that *SubBoard) Cell(cell int) Mark {
	if cell < 0 || cell >= BoardCells {
		return MarkNone
	}
	return that.cells[cell]
}

func (that *SubBoard) Cells() [BoardCells]Mark {
	return that.cells
}

func (that *SubBoard) Winner() Mark {
	return lineWinner(that.cells)
}

func (that *SubBoard) IsFull() bool {
	for _, cell := range that.cells {
		if cell == MarkNone {
			return false
		}
	}

	return true
}

// outcome - derives the meta-board outcome from the cells alone.
func (that *SubBoard) outcome() Outcome {
	if winner := that.Winner(); winner != MarkNone {
		return outcomeFor(winner)
	}

	if that.IsFull() {
		return OutcomeDrawn
	}

	return OutcomeUndecided
}

// MetaBoard holds the outcome of each sub-board and is won like a plain grid.
type MetaBoard struct {
	outcomes [BoardCells]Outcome
}

func (that *MetaBoard) Outcome(board int) Outcome {
	if board < 0 || board >= BoardCells {
		return OutcomeUndecided
	}
	return that.outcomes[board]
}

func (that *MetaBoard) Outcomes() [BoardCells]Outcome {
	return that.outcomes
}

// decide - records an outcome once; decided sub-boards keep their outcome.
func (that *MetaBoard) decide(board int, outcome Outcome) {
	if that.outcomes[board].IsDecided() {
		return
	}
	that.outcomes[board] = outcome
}

// Winner - drawn and undecided sub-boards count as empty for the line check.
func (that *MetaBoard) Winner() Mark {
	var owners [BoardCells]Mark
	for i, outcome := range that.outcomes {
		owners[i] = outcome.Owner()
	}

	return lineWinner(owners)
}

func (that *MetaBoard) AllDecided() bool {
	for _, outcome := range that.outcomes {
		if !outcome.IsDecided() {
			return false
		}
	}

	return true
}
