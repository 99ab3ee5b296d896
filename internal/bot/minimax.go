package bot

import (
	"math"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

// bestMinimaxMove - depth-bounded alpha-beta search for the current player.
// The first move reaching the best score wins, in LegalMoves order.
func bestMinimaxMove(match *tictactoe.Match, depth int) (tictactoe.Move, bool) {
	moves := match.LegalMoves()
	if len(moves) == 0 {
		return tictactoe.Move{}, false
	}

	root := match.CurrentPlayer()
	alpha, beta := math.MinInt, math.MaxInt

	var (
		best      tictactoe.Move
		bestScore = math.MinInt
	)

	for _, move := range moves {
		child := match.Clone()
		child.ApplyMove(move.SubBoard, move.Cell)

		score := minimax(child, depth-1, alpha, beta, root)
		if score > bestScore {
			best, bestScore = move, score
		}

		alpha = max(alpha, score)
	}

	return best, true
}

func minimax(match *tictactoe.Match, depth, alpha, beta int, root tictactoe.Mark) int {
	if depth <= 0 || !match.IsInProgress() {
		return evaluate(match, root)
	}

	moves := match.LegalMoves()

	if match.CurrentPlayer() == root {
		value := math.MinInt
		for _, move := range moves {
			child := match.Clone()
			child.ApplyMove(move.SubBoard, move.Cell)

			value = max(value, minimax(child, depth-1, alpha, beta, root))
			alpha = max(alpha, value)
			if alpha >= beta {
				break
			}
		}

		return value
	}

	value := math.MaxInt
	for _, move := range moves {
		child := match.Clone()
		child.ApplyMove(move.SubBoard, move.Cell)

		value = min(value, minimax(child, depth-1, alpha, beta, root))
		beta = min(beta, value)
		if alpha >= beta {
			break
		}
	}

	return value
}
