package bot

import "github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"

// positionRank orders squares of a 3x3 grid: center, then corners, then edges.
var positionRank = [tictactoe.BoardCells]int{
	1, 0, 1,
	0, 2, 0,
	1, 0, 1,
}

// completesLine - reports whether mark placed at cell wins the sub-board.
// The cell only has to be empty: it may be a cell the mark's owner cannot reach this turn.
func completesLine(board tictactoe.SubBoard, cell int, mark tictactoe.Mark) bool {
	if err := board.SetCell(cell, mark); err != nil {
		return false
	}

	return board.Winner() == mark
}

// firstSubBoardWin - first legal move whose cell would complete a line for mark.
// With the opponent's mark it finds the cell that blocks the opponent.
func firstSubBoardWin(match *tictactoe.Match, moves []tictactoe.Move, mark tictactoe.Mark) (tictactoe.Move, bool) {
	for _, move := range moves {
		if completesLine(match.SubBoard(move.SubBoard), move.Cell, mark) {
			return move, true
		}
	}

	return tictactoe.Move{}, false
}

// preferredSubBoardWin - like firstSubBoardWin, preferring the center sub-board, then corners, then edges.
func preferredSubBoardWin(match *tictactoe.Match, moves []tictactoe.Move, mark tictactoe.Mark) (tictactoe.Move, bool) {
	var (
		best  tictactoe.Move
		found bool
	)

	for _, move := range moves {
		if !completesLine(match.SubBoard(move.SubBoard), move.Cell, mark) {
			continue
		}

		if !found || positionRank[move.SubBoard] > positionRank[best.SubBoard] {
			best, found = move, true
		}
	}

	return best, found
}

// positionalMove - best ranked sub-board, then best ranked cell; ties keep enumeration order.
func positionalMove(moves []tictactoe.Move) (tictactoe.Move, bool) {
	if len(moves) == 0 {
		return tictactoe.Move{}, false
	}

	rank := func(move tictactoe.Move) int {
		return positionRank[move.SubBoard]*3 + positionRank[move.Cell]
	}

	best := moves[0]
	for _, move := range moves[1:] {
		if rank(move) > rank(best) {
			best = move
		}
	}

	return best, true
}

// matchWinningMove - first legal move after which the current player wins the meta-board.
func matchWinningMove(match *tictactoe.Match, moves []tictactoe.Move) (tictactoe.Move, bool) {
	player := match.CurrentPlayer()

	for _, move := range moves {
		if !completesLine(match.SubBoard(move.SubBoard), move.Cell, player) {
			continue
		}

		child := match.Clone()
		if child.ApplyMove(move.SubBoard, move.Cell) && child.Winner() == player {
			return move, true
		}
	}

	return tictactoe.Move{}, false
}

// winningCells - empty cells of the sub-board that would complete a line for mark.
func winningCells(board tictactoe.SubBoard, mark tictactoe.Mark) []int {
	var cells []int
	for cell := range tictactoe.BoardCells {
		if completesLine(board, cell, mark) {
			cells = append(cells, cell)
		}
	}

	return cells
}

// metaBlockMove - for every meta line where the opponent owns two sub-boards and the third is
// undecided but winnable by the opponent right away, look for a legal move inside that third
// sub-board after which the opponent has no winning cell left in it.
func metaBlockMove(match *tictactoe.Match, moves []tictactoe.Move) (tictactoe.Move, bool) {
	player := match.CurrentPlayer()
	opponent := player.Opponent()

	for _, combo := range tictactoe.WinCombos {
		target, threatened := openThirdBoard(match, combo, opponent)
		if !threatened {
			continue
		}

		if len(winningCells(match.SubBoard(target), opponent)) == 0 {
			continue
		}

		for _, move := range moves {
			if move.SubBoard != target {
				continue
			}

			board := match.SubBoard(target)
			if err := board.SetCell(move.Cell, player); err != nil {
				continue
			}

			if len(winningCells(board, opponent)) == 0 {
				return move, true
			}
		}
	}

	return tictactoe.Move{}, false
}

// openThirdBoard - returns the undecided sub-board of a meta line whose other two belong to mark.
func openThirdBoard(match *tictactoe.Match, combo [3]int, mark tictactoe.Mark) (int, bool) {
	owned, open := 0, -1

	for _, board := range combo {
		outcome := match.Outcome(board)
		switch {
		case outcome.Owner() == mark:
			owned++
		case !outcome.IsDecided():
			open = board
		}
	}

	return open, owned == 2 && open != -1
}
