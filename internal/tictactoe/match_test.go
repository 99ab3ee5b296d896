package tictactoe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playMoves(t *testing.T, match *Match, moves ...Move) {
	t.Helper()

	for _, move := range moves {
		require.Truef(t, match.ApplyMove(move.SubBoard, move.Cell), "move (%d, %d) rejected", move.SubBoard, move.Cell)
	}
}

func TestNewMatch(t *testing.T) {
	// When: a fresh standard match is created
	match := NewMatch(RulesStandard)

	// Then: A moves first anywhere, nothing is decided
	assert.Equal(t, MarkA, match.CurrentPlayer())
	assert.Equal(t, AnyBoard, match.ActiveSubBoard())
	assert.Equal(t, StatusInProgress, match.Status())
	assert.Equal(t, MarkNone, match.Winner())
	assert.False(t, match.IsDraw())
	assert.Len(t, match.LegalMoves(), BoardCells*BoardCells)

	_, ok := match.LastMove()
	assert.False(t, ok)
}

func TestMatch_ApplyMove(t *testing.T) {
	t.Run("Center cell routes the opponent to the center sub-board", func(t *testing.T) {
		// Given: an empty standard match
		match := NewMatch(RulesStandard)

		// When: A plays the center cell of sub-board 0
		applied := match.ApplyMove(0, 4)

		// Then: B is held to sub-board 4
		require.True(t, applied)
		assert.Equal(t, 4, match.ActiveSubBoard())
		assert.Equal(t, MarkB, match.CurrentPlayer())
		assert.Equal(t, MarkA, match.Cell(0, 4))

		lastMove, ok := match.LastMove()
		require.True(t, ok)
		assert.Equal(t, LastMove{SubBoard: 0, Cell: 4, Player: MarkA}, lastMove)

		// And: B may not leave sub-board 4
		assert.False(t, match.CheckValidMove(3, 0))
		assert.False(t, match.ApplyMove(3, 0))
		assert.Equal(t, MarkB, match.CurrentPlayer())

		// And: a move inside sub-board 4 is accepted
		assert.True(t, match.ApplyMove(4, 8))
		assert.Equal(t, 8, match.ActiveSubBoard())
	})

	t.Run("Error on cell already occupied is a no-op", func(t *testing.T) {
		// Given: A has played (0, 0) and B is sent back to sub-board 0
		match := NewMatch(RulesStandard)
		playMoves(t, match, Move{0, 0})
		before := match.Snapshot()

		// When: B tries to play the same cell
		applied := match.ApplyMove(0, 0)

		// Then: the move is rejected and the state is untouched
		assert.False(t, applied)
		assert.Equal(t, before, match.Snapshot())
	})

	t.Run("Out of range indices are rejected", func(t *testing.T) {
		match := NewMatch(RulesFreePlay)
		before := match.Snapshot()

		assert.False(t, match.ApplyMove(9, 0))
		assert.False(t, match.ApplyMove(0, 9))
		assert.False(t, match.ApplyMove(-1, 3))
		assert.Equal(t, before, match.Snapshot())
	})

	t.Run("Free play never constrains the next sub-board", func(t *testing.T) {
		match := NewMatch(RulesFreePlay)

		playMoves(t, match, Move{0, 4})

		assert.Equal(t, AnyBoard, match.ActiveSubBoard())
		assert.True(t, match.CheckValidMove(7, 7))
	})

	t.Run("Completing a line wins the sub-board and, on the diagonal, the match", func(t *testing.T) {
		// Given: A owns sub-boards 0 and 8 and holds cells 0 and 1 of sub-board 4
		snapshot := Snapshot{
			CurrentPlayer:  MarkA,
			ActiveSubBoard: 4,
			Rules:          RulesStandard,
		}
		snapshot.Boards[0] = [BoardCells]Mark{MarkA, MarkA, MarkA, MarkB, MarkB}
		snapshot.Boards[8] = [BoardCells]Mark{MarkA, MarkA, MarkA, MarkB, MarkNone, MarkB}
		snapshot.Boards[4] = [BoardCells]Mark{MarkA, MarkA, MarkNone, MarkB, MarkB}
		snapshot.Outcomes[0] = OutcomeWonA
		snapshot.Outcomes[8] = OutcomeWonA

		match, err := FromSnapshot(snapshot)
		require.NoError(t, err)

		// When: A completes the top row of sub-board 4
		applied := match.ApplyMove(4, 2)

		// Then: sub-board 4 is won and the diagonal 0-4-8 wins the match
		require.True(t, applied)
		assert.Equal(t, OutcomeWonA, match.Outcome(4))
		assert.Equal(t, MarkA, match.Winner())
		assert.Equal(t, StatusWon, match.Status())
		assert.False(t, match.IsDraw())

		// And: the turn still flips, but nothing else is accepted
		assert.Equal(t, MarkB, match.CurrentPlayer())
		assert.Empty(t, match.LegalMoves())
		assert.False(t, match.ApplyMove(1, 0))
		assert.False(t, match.PassTurn())
	})

	t.Run("Full sub-board without a line is drawn and excluded from routing", func(t *testing.T) {
		// Given: a free-play match filling sub-board 0 as A,B,A / B,A,B / B,A,B
		match := NewMatch(RulesFreePlay)
		playMoves(t, match,
			Move{0, 0}, Move{0, 1}, Move{0, 2}, Move{0, 3}, Move{0, 4},
			Move{0, 5}, Move{8, 0}, Move{0, 6}, Move{0, 7}, Move{0, 8},
		)

		// Then: sub-board 0 is drawn and owned by nobody
		assert.Equal(t, OutcomeDrawn, match.Outcome(0))
		assert.Equal(t, MarkNone, match.Winner())
		assert.False(t, match.IsDraw())

		for _, move := range match.LegalMoves() {
			assert.NotEqual(t, 0, move.SubBoard)
		}

		// When: under standard rules A plays cell 0 of another sub-board
		match.SetRules(RulesStandard)
		playMoves(t, match, Move{1, 0})

		// Then: routing to the drawn sub-board falls back to any
		assert.Equal(t, AnyBoard, match.ActiveSubBoard())
	})

	t.Run("Routing into a won sub-board frees the opponent", func(t *testing.T) {
		// Given: A wins sub-board 0 with its top row in free play
		match := NewMatch(RulesFreePlay)
		playMoves(t, match, Move{0, 0}, Move{5, 5}, Move{0, 1}, Move{5, 6}, Move{0, 2})
		require.Equal(t, OutcomeWonA, match.Outcome(0))

		// When: standard routing is enabled and B plays cell 0 somewhere
		match.SetRules(RulesStandard)
		playMoves(t, match, Move{3, 0})

		// Then: A may play anywhere undecided
		assert.Equal(t, AnyBoard, match.ActiveSubBoard())
		assert.False(t, match.CheckValidMove(0, 5))
		assert.True(t, match.CheckValidMove(7, 1))
	})
}

func TestMatch_PassTurn(t *testing.T) {
	t.Run("Pass on a fresh match hands the turn to B", func(t *testing.T) {
		// Given: a fresh standard match
		match := NewMatch(RulesStandard)
		boardsBefore := match.Snapshot().Boards

		// When: A's turn timer expires
		passed := match.PassTurn()

		// Then: B is to move anywhere and no board changed
		require.True(t, passed)
		assert.Equal(t, MarkB, match.CurrentPlayer())
		assert.Equal(t, AnyBoard, match.ActiveSubBoard())
		assert.Equal(t, boardsBefore, match.Snapshot().Boards)
		assert.Equal(t, [BoardCells]Outcome{}, match.Snapshot().Outcomes)
	})

	t.Run("Pass sentinel through ApplyMove clears routing", func(t *testing.T) {
		match := NewMatch(RulesStandard)
		playMoves(t, match, Move{2, 6})
		require.Equal(t, 6, match.ActiveSubBoard())

		assert.True(t, match.CheckValidMove(PassIndex, PassIndex))
		assert.True(t, match.ApplyMove(PassIndex, PassIndex))
		assert.Equal(t, AnyBoard, match.ActiveSubBoard())
		assert.Equal(t, MarkA, match.CurrentPlayer())
	})

	t.Run("Pass sentinel is refused once the match is over", func(t *testing.T) {
		// Given: A owns the 0-4-8 diagonal
		snapshot := NewMatch(RulesStandard).Snapshot()
		snapshot.Boards[0] = [BoardCells]Mark{MarkA, MarkA, MarkA, MarkB, MarkB}
		snapshot.Boards[4] = [BoardCells]Mark{MarkA, MarkA, MarkA, MarkB, MarkB}
		snapshot.Boards[8] = [BoardCells]Mark{MarkA, MarkA, MarkA, MarkB, MarkB}
		snapshot.CurrentPlayer = MarkB
		snapshot.Winner = MarkA

		match, err := FromSnapshot(snapshot)
		require.NoError(t, err)

		// Then: neither check nor apply accept the pass
		assert.False(t, match.CheckValidMove(PassIndex, PassIndex))
		assert.False(t, match.ApplyMove(PassIndex, PassIndex))
		assert.Equal(t, MarkB, match.CurrentPlayer())
	})
}

func TestMatch_Reset(t *testing.T) {
	t.Run("Keeps the rules by default", func(t *testing.T) {
		match := NewMatch(RulesFreePlay)
		playMoves(t, match, Move{0, 0}, Move{1, 1})

		match.Reset()

		assert.Equal(t, NewMatch(RulesFreePlay).Snapshot(), match.Snapshot())
	})

	t.Run("Applies new rules and first player", func(t *testing.T) {
		match := NewMatch(RulesFreePlay)
		playMoves(t, match, Move{0, 0})

		match.Reset(WithRules(RulesStandard), WithFirstPlayer(MarkB))

		assert.Equal(t, RulesStandard, match.Rules())
		assert.Equal(t, MarkB, match.CurrentPlayer())
		assert.Equal(t, MarkNone, match.Cell(0, 0))
		assert.True(t, match.IsInProgress())
	})
}

func TestMatch_CloneIsIndependent(t *testing.T) {
	match := NewMatch(RulesStandard)
	playMoves(t, match, Move{4, 4})

	clone := match.Clone()
	playMoves(t, clone, Move{4, 0})

	assert.Equal(t, MarkNone, match.Cell(4, 0))
	assert.Equal(t, MarkB, match.CurrentPlayer())

	lastMove, _ := match.LastMove()
	assert.Equal(t, 4, lastMove.Cell)
}

// TestMatch_RandomPlayouts drives seeded random games and checks the engine invariants after every step.
func TestMatch_RandomPlayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for game := range 200 {
		rules := RulesStandard
		if game%3 == 0 {
			rules = RulesFreePlay
		}
		match := NewMatch(rules)

		for match.IsInProgress() {
			before := match.Snapshot()

			// an illegal attempt is a no-op
			board, cell := rng.Intn(BoardCells), rng.Intn(BoardCells)
			if !match.CheckValidMove(board, cell) {
				require.False(t, match.ApplyMove(board, cell))
				require.Equal(t, before, match.Snapshot())
			}

			// the pass sentinel agrees between check and apply
			require.Equal(t, match.CheckValidMove(PassIndex, PassIndex), match.Clone().ApplyMove(PassIndex, PassIndex))

			moves := match.LegalMoves()
			require.NotEmpty(t, moves)
			for _, move := range moves {
				require.True(t, match.CheckValidMove(move.SubBoard, move.Cell))
			}

			move := moves[rng.Intn(len(moves))]
			require.True(t, match.ApplyMove(move.SubBoard, move.Cell))

			after := match.Snapshot()
			for i, outcome := range before.Outcomes {
				if outcome.IsDecided() {
					require.Equal(t, outcome, after.Outcomes[i], "decided sub-board changed")
				}
			}

			require.False(t, match.Winner() != MarkNone && match.IsDraw(), "won and drawn at once")

			if rules == RulesStandard && match.IsInProgress() {
				if match.Outcome(move.Cell).IsDecided() {
					require.Equal(t, AnyBoard, match.ActiveSubBoard())
				} else {
					require.Equal(t, move.Cell, match.ActiveSubBoard())
				}
			}
		}

		assert.Empty(t, match.LegalMoves())
		assert.False(t, match.CheckValidMove(PassIndex, PassIndex))
		assert.False(t, match.ApplyMove(PassIndex, PassIndex))
	}
}
