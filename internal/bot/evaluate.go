package bot

import (
	"slices"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

const (
	winScore = 10000

	centerCellBonus = 15
)

// boardWeight - the center sub-board counts most, corners next, edges least.
var boardWeight = [tictactoe.BoardCells]int{
	2, 1, 2,
	1, 3, 1,
	2, 1, 2,
}

// evaluate - static score of the position for player; positive favours player.
func evaluate(match *tictactoe.Match, player tictactoe.Mark) int {
	opponent := player.Opponent()

	switch match.Winner() {
	case player:
		return winScore
	case opponent:
		return -winScore
	}

	metaScore, decided := metaLines(match, player)
	if decided {
		return metaScore
	}

	score := metaScore
	for board := range tictactoe.BoardCells {
		score += subBoardScore(match, board, player)
	}

	switch match.Cell(tictactoe.CenterIndex, tictactoe.CenterIndex) {
	case player:
		score += centerCellBonus
	case opponent:
		score -= centerCellBonus
	}

	return score
}

// metaLines - line control on the meta-board. A full line short-circuits the evaluation.
func metaLines(match *tictactoe.Match, player tictactoe.Mark) (int, bool) {
	opponent := player.Opponent()
	score := 0

	for _, combo := range tictactoe.WinCombos {
		mine, theirs := 0, 0
		for _, board := range combo {
			switch match.Outcome(board).Owner() {
			case player:
				mine++
			case opponent:
				theirs++
			}
		}

		center := slices.Contains(combo[:], tictactoe.CenterIndex)

		switch {
		case mine == 3:
			return winScore, true
		case theirs == 3:
			return -winScore, true
		case mine == 2 && theirs == 0:
			score += withCenter(center, 500, 100)
		case theirs == 2 && mine == 0:
			score -= withCenter(center, 700, 200)
		case mine == 1 && theirs == 0:
			score += withCenter(center, 50, 25)
		case theirs == 1 && mine == 0:
			score -= withCenter(center, 40, 20)
		}
	}

	return score, false
}

func withCenter(center bool, base, bonus int) int {
	if center {
		return base + bonus
	}
	return base
}

// subBoardScore - decided boards count as a whole, open boards by their inner lines.
func subBoardScore(match *tictactoe.Match, board int, player tictactoe.Mark) int {
	opponent := player.Opponent()
	weight := boardWeight[board]

	outcome := match.Outcome(board)
	if outcome.IsDecided() {
		switch outcome.Owner() {
		case player:
			return 100 * weight
		case opponent:
			return -100 * weight
		default:
			return 0
		}
	}

	subBoard := match.SubBoard(board)
	cells := subBoard.Cells()
	lines := 0

	for _, combo := range tictactoe.WinCombos {
		mine, theirs := 0, 0
		for _, cell := range combo {
			switch cells[cell] {
			case player:
				mine++
			case opponent:
				theirs++
			}
		}

		switch {
		case mine == 2 && theirs == 0:
			lines += 10
		case theirs == 2 && mine == 0:
			lines -= 12
		case mine == 1 && theirs == 0:
			lines += 3
		case theirs == 1 && mine == 0:
			lines -= 2
		}
	}

	score := lines * weight

	switch cells[tictactoe.CenterIndex] {
	case player:
		score += 5 * weight
	case opponent:
		score -= 5 * weight
	}

	return score
}
