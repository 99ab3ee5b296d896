// Package bot picks moves for the computer opponent.
package bot

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

const (
	balancedSearchDepth = 2
	strongSearchDepth   = 4
)

// Random is the source of the probabilistic checks and the final random fallback.
type Random interface {
	Float64() float64
	Intn(n int) int
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

func (globalRandom) Intn(n int) int { return rand.Intn(n) }

// Searcher selects moves. It keeps no match state and is safe for concurrent use
// as long as its Random is.
type Searcher struct {
	random Random
}

type Option func(*Searcher)

// WithRandom - replaces the package-level math/rand source.
func WithRandom(random Random) Option {
	return func(s *Searcher) {
		if random != nil {
			s.random = random
		}
	}
}

func New(opts ...Option) *Searcher {
	searcher := &Searcher{random: globalRandom{}}
	for _, opt := range opts {
		opt(searcher)
	}

	return searcher
}

// SelectMove - returns the move the current player of snapshot should make.
// The snapshot is never modified; every simulation runs on a copy.
func (that *Searcher) SelectMove(snapshot tictactoe.Snapshot, strength Strength) (tictactoe.Move, error) {
	match, err := tictactoe.FromSnapshot(snapshot)
	if err != nil {
		return tictactoe.Move{}, fmt.Errorf("failed to restore match: %w", err)
	}

	return that.SelectMatchMove(match, strength)
}

// SelectMatchMove - same as SelectMove for a live match. The match is only read.
func (that *Searcher) SelectMatchMove(match *tictactoe.Match, strength Strength) (tictactoe.Move, error) {
	moves := match.LegalMoves()
	if len(moves) == 0 {
		return tictactoe.Move{}, apperror.ErrNoLegalMoves
	}

	switch strength {
	case StrengthWeak:
		return that.weak(match, moves), nil
	case StrengthBalanced:
		return that.balanced(match, moves), nil
	case StrengthStrong:
		return that.strong(match, moves), nil
	default:
		return tictactoe.Move{}, fmt.Errorf("%w: %d", ErrUnknownStrength, strength)
	}
}

// chance - an independent trial per call; a fired check that finds nothing still falls through.
func (that *Searcher) chance(probability float64) bool {
	return that.random.Float64() < probability
}

func (that *Searcher) randomMove(moves []tictactoe.Move) tictactoe.Move {
	return moves[that.random.Intn(len(moves))]
}

func (that *Searcher) weak(match *tictactoe.Match, moves []tictactoe.Move) tictactoe.Move {
	player := match.CurrentPlayer()

	if that.chance(0.20) {
		if move, ok := firstSubBoardWin(match, moves, player); ok {
			return move
		}
	}

	if that.chance(0.15) {
		if move, ok := firstSubBoardWin(match, moves, player.Opponent()); ok {
			return move
		}
	}

	return that.randomMove(moves)
}

func (that *Searcher) balanced(match *tictactoe.Match, moves []tictactoe.Move) tictactoe.Move {
	player := match.CurrentPlayer()

	if that.chance(0.75) {
		if move, ok := firstSubBoardWin(match, moves, player); ok {
			return move
		}
	}

	if that.chance(0.65) {
		if move, ok := firstSubBoardWin(match, moves, player.Opponent()); ok {
			return move
		}
	}

	if that.chance(0.50) {
		if move, ok := positionalMove(moves); ok {
			return move
		}
	}

	if that.chance(0.25) {
		if move, ok := bestMinimaxMove(match, balancedSearchDepth); ok {
			return move
		}
	}

	return that.randomMove(moves)
}

func (that *Searcher) strong(match *tictactoe.Match, moves []tictactoe.Move) tictactoe.Move {
	player := match.CurrentPlayer()

	if move, ok := matchWinningMove(match, moves); ok {
		return move
	}

	if move, ok := metaBlockMove(match, moves); ok {
		return move
	}

	if move, ok := preferredSubBoardWin(match, moves, player); ok {
		return move
	}

	if move, ok := firstSubBoardWin(match, moves, player.Opponent()); ok {
		return move
	}

	if move, ok := bestMinimaxMove(match, strongSearchDepth); ok {
		return move
	}

	if move, ok := positionalMove(moves); ok {
		return move
	}

	return that.randomMove(moves)
}
