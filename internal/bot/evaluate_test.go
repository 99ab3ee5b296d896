package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

func TestEvaluate(t *testing.T) {
	t.Run("Empty board is level", func(t *testing.T) {
		match := tictactoe.NewMatch(tictactoe.RulesStandard)

		assert.Equal(t, 0, evaluate(match, a))
		assert.Equal(t, 0, evaluate(match, b))
	})

	t.Run("Center of the center sub-board", func(t *testing.T) {
		// Given: A holds the center cell of sub-board 4
		match := tictactoe.NewMatch(tictactoe.RulesStandard)
		require.True(t, match.ApplyMove(4, 4))

		// Then: four open lines (4*3), its own center (5) and the flat bonus (15),
		// the first two weighted by the center sub-board (3)
		assert.Equal(t, 12*3+5*3+15, evaluate(match, a))
		assert.Equal(t, -8*3-5*3-15, evaluate(match, b))
	})

	t.Run("Won corner sub-board", func(t *testing.T) {
		// Given: A owns sub-board 0 and nothing else is on the board
		snapshot := newSnapshot(b, tictactoe.AnyBoard)
		snapshot.Boards[0] = [tictactoe.BoardCells]tictactoe.Mark{a, a, a, b, b}

		match, err := tictactoe.FromSnapshot(snapshot)
		require.NoError(t, err)

		// Then: three meta lines with one A board, one of them through the center,
		// plus the decided corner weight
		assert.Equal(t, 50+50+75+100*2, evaluate(match, a))
		assert.Equal(t, -40-40-60-100*2, evaluate(match, b))
	})

	t.Run("Two boards of a meta line", func(t *testing.T) {
		// Given: A owns sub-boards 0 and 1, their cells leaving the center empty
		snapshot := newSnapshot(b, tictactoe.AnyBoard)
		snapshot.Boards[0] = wonBy(a)
		snapshot.Boards[1] = wonBy(a)

		match, err := tictactoe.FromSnapshot(snapshot)
		require.NoError(t, err)

		// Then: the top row (500), one-board lines (50, 75, 75) and the decided weights (2+1)
		assert.Equal(t, 500+50+75+75+100*3, evaluate(match, a))
		assert.Equal(t, -700-40-60-60-100*3, evaluate(match, b))
	})

	t.Run("Two boards of a meta line through the center", func(t *testing.T) {
		snapshot := newSnapshot(b, tictactoe.AnyBoard)
		snapshot.Boards[0] = wonBy(a)
		snapshot.Boards[4] = wonBy(a)

		match, err := tictactoe.FromSnapshot(snapshot)
		require.NoError(t, err)

		// Then: the diagonal (600), one-board lines (50, 50, 75, 75, 75) and the decided weights (2+3)
		assert.Equal(t, 600+50+50+75+75+75+100*5, evaluate(match, a))
		assert.Equal(t, -900-40-40-60-60-60-100*5, evaluate(match, b))
	})

	t.Run("Two in a line inside an open sub-board", func(t *testing.T) {
		// Given: A holds cells 0 and 1 of corner sub-board 0
		snapshot := newSnapshot(b, tictactoe.AnyBoard)
		snapshot.Boards[0] = [tictactoe.BoardCells]tictactoe.Mark{a, a}

		match, err := tictactoe.FromSnapshot(snapshot)
		require.NoError(t, err)

		// Then: the top row (10) and three one-mark lines (3 each), weighted by the corner (2)
		assert.Equal(t, (10+3+3+3)*2, evaluate(match, a))
		assert.Equal(t, (-12-2-2-2)*2, evaluate(match, b))
	})

	t.Run("Drawn match still counts decided boards", func(t *testing.T) {
		// Given: owners A A B / B B A / A A B, no meta line complete
		snapshot := newSnapshot(b, tictactoe.AnyBoard)
		for _, board := range []int{0, 1, 5, 6, 7} {
			snapshot.Boards[board] = wonBy(a)
		}
		for _, board := range []int{2, 3, 4, 8} {
			snapshot.Boards[board] = wonBy(b)
		}
		snapshot.IsDraw = true

		match, err := tictactoe.FromSnapshot(snapshot)
		require.NoError(t, err)
		require.True(t, match.IsDraw())

		// Then: every meta line is mixed; A's boards weigh 7, B's weigh 8
		assert.Equal(t, -100, evaluate(match, a))
		assert.Equal(t, 100, evaluate(match, b))
	})

	t.Run("Finished match scores the win", func(t *testing.T) {
		snapshot := newSnapshot(b, tictactoe.AnyBoard)
		snapshot.Boards[0] = [tictactoe.BoardCells]tictactoe.Mark{a, a, a, b, b}
		snapshot.Boards[4] = [tictactoe.BoardCells]tictactoe.Mark{a, a, a, b, b}
		snapshot.Boards[8] = [tictactoe.BoardCells]tictactoe.Mark{a, a, a, b, b}
		snapshot.Winner = a

		match, err := tictactoe.FromSnapshot(snapshot)
		require.NoError(t, err)

		assert.Equal(t, winScore, evaluate(match, a))
		assert.Equal(t, -winScore, evaluate(match, b))
	})
}

// wonBy - a sub-board won by mark on its top row, with the center cell left empty.
func wonBy(mark tictactoe.Mark) [tictactoe.BoardCells]tictactoe.Mark {
	other := mark.Opponent()
	return [tictactoe.BoardCells]tictactoe.Mark{mark, mark, mark, other, tictactoe.MarkNone, other}
}

func TestPositionalMove(t *testing.T) {
	moves := []tictactoe.Move{{SubBoard: 1, Cell: 4}, {SubBoard: 0, Cell: 1}, {SubBoard: 2, Cell: 0}, {SubBoard: 6, Cell: 8}}

	move, ok := positionalMove(moves)

	// Then: corner sub-board with a corner cell beats an edge sub-board center; first one wins the tie
	require.True(t, ok)
	assert.Equal(t, tictactoe.Move{SubBoard: 2, Cell: 0}, move)

	_, ok = positionalMove(nil)
	assert.False(t, ok)
}
