package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

func newOngoingMatch() *Match {
	match := NewMatch("123", PrivateType, tictactoe.RulesStandard)
	match.Status = StatusOngoing
	match.Players = []*Player{
		{ID: "p1", MatchID: "123", Mark: tictactoe.MarkA},
		{ID: "p2", MatchID: "123", Mark: tictactoe.MarkB},
	}

	return match
}

func TestMatchStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when match status is finished", func(t *testing.T) {
		// Given: a match with StatusFinished
		match := &Match{Status: StatusFinished}

		// When: checking if the match is finished
		isFinished := match.IsFinished()

		// Then: it should return true
		assert.True(t, isFinished)
	})

	t.Run("IsOngoing returns true when match status is ongoing", func(t *testing.T) {
		match := &Match{Status: StatusOngoing}

		assert.True(t, match.IsOngoing())
	})

	t.Run("IsWaiting returns true when match status is waiting", func(t *testing.T) {
		match := &Match{Status: StatusWaiting}

		assert.True(t, match.IsWaiting())
	})
}

func TestMatch_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when match is ongoing", func(t *testing.T) {
		// Given: a match with StatusOngoing
		match := &Match{Status: StatusOngoing}

		// When: checking if the match is active
		err := match.ConfirmOngoingState()

		// Then: it should return nil error
		assert.NoError(t, err)
	})

	t.Run("Returns ErrMatchIsNotStarted when match is waiting", func(t *testing.T) {
		match := &Match{Status: StatusWaiting}

		assert.ErrorIs(t, match.ConfirmOngoingState(), apperror.ErrMatchIsNotStarted)
	})

	t.Run("Returns ErrMatchFinished when match is finished", func(t *testing.T) {
		match := &Match{Status: StatusFinished}

		assert.ErrorIs(t, match.ConfirmOngoingState(), apperror.ErrMatchFinished)
	})

	t.Run("Returns error for unknown match status", func(t *testing.T) {
		// Given: a match with unknown status
		match := &Match{Status: "unknown"}

		// When: checking if the match is active
		err := match.ConfirmOngoingState()

		// Then: it should return an error
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownMatchStatus)
	})
}

func TestMatch_MakeTurn(t *testing.T) {
	t.Run("Successful turn", func(t *testing.T) {
		// Given: an ongoing match
		match := newOngoingMatch()

		// When: A plays the center cell of sub-board 0
		err := match.MakeTurn(tictactoe.MarkA, 0, 4)

		// Then: the snapshot reflects the move and the turn counter moves on
		require.NoError(t, err)
		assert.Equal(t, tictactoe.MarkA, match.State.Boards[0][4])
		assert.Equal(t, tictactoe.MarkB, match.CurrentMark())
		assert.Equal(t, 4, match.State.ActiveSubBoard)
		assert.Equal(t, 1, match.Turn)
		assert.Equal(t, StatusOngoing, match.Status)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a new match where it's A's turn
		match := newOngoingMatch()
		before := *match

		// When: B tries to make a move
		err := match.MakeTurn(tictactoe.MarkB, 0, 0)

		// Then: ErrNotYourTurn is returned and the match is unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, before, *match)
	})

	t.Run("Error on illegal move", func(t *testing.T) {
		// Given: B is held to sub-board 4
		match := newOngoingMatch()
		require.NoError(t, match.MakeTurn(tictactoe.MarkA, 0, 4))
		before := *match

		// When: B plays outside sub-board 4
		err := match.MakeTurn(tictactoe.MarkB, 3, 3)

		// Then: ErrIllegalMove is returned and the match is unchanged
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, before, *match)
	})

	t.Run("Error on pass sent as a move", func(t *testing.T) {
		// Given: an ongoing match
		match := newOngoingMatch()
		before := *match

		// When: A sends the pass coordinates as a move
		err := match.MakeTurn(tictactoe.MarkA, tictactoe.PassIndex, tictactoe.PassIndex)

		// Then: ErrIllegalMove is returned and A still has the turn
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, before, *match)
	})

	t.Run("Error on waiting match", func(t *testing.T) {
		match := NewMatch("123", PublicType, tictactoe.RulesStandard)

		err := match.MakeTurn(tictactoe.MarkA, 0, 0)

		assert.ErrorIs(t, err, apperror.ErrMatchIsNotStarted)
	})

	t.Run("Winning move finishes the match", func(t *testing.T) {
		// Given: A owns sub-boards 0 and 8 and two cells of sub-board 4
		match := newOngoingMatch()
		match.State.Boards[0] = [tictactoe.BoardCells]tictactoe.Mark{1, 1, 1, 2, 2}
		match.State.Boards[8] = [tictactoe.BoardCells]tictactoe.Mark{1, 1, 1, 2, 0, 2}
		match.State.Boards[4] = [tictactoe.BoardCells]tictactoe.Mark{1, 1, 0, 2, 2}
		match.State.Outcomes[0] = tictactoe.OutcomeWonA
		match.State.Outcomes[8] = tictactoe.OutcomeWonA
		match.State.ActiveSubBoard = 4

		// When: A completes sub-board 4
		err := match.MakeTurn(tictactoe.MarkA, 4, 2)

		// Then: the match is over and A is the winner
		require.NoError(t, err)
		assert.Equal(t, StatusFinished, match.Status)
		assert.Equal(t, "A", match.Result())
	})
}

func TestMatch_PassTurn(t *testing.T) {
	t.Run("Hands the turn over", func(t *testing.T) {
		match := newOngoingMatch()

		err := match.PassTurn(0)

		require.NoError(t, err)
		assert.Equal(t, tictactoe.MarkB, match.CurrentMark())
		assert.Equal(t, 1, match.Turn)
	})

	t.Run("Error on stale turn", func(t *testing.T) {
		// Given: a move was made after the timer was armed at turn 0
		match := newOngoingMatch()
		require.NoError(t, match.MakeTurn(tictactoe.MarkA, 0, 0))

		// When: the old timer fires
		err := match.PassTurn(0)

		// Then: the pass is ignored
		require.ErrorIs(t, err, apperror.ErrStaleTurn)
		assert.Equal(t, tictactoe.MarkB, match.CurrentMark())
	})
}

func TestMatch_SetRulesAndReset(t *testing.T) {
	match := newOngoingMatch()
	require.NoError(t, match.MakeTurn(tictactoe.MarkA, 0, 4))

	require.NoError(t, match.SetRules(tictactoe.RulesFreePlay))
	assert.Equal(t, tictactoe.AnyBoard, match.State.ActiveSubBoard)
	assert.Equal(t, tictactoe.RulesFreePlay, match.State.Rules)

	match.Reset(tictactoe.RulesStandard)
	assert.Equal(t, tictactoe.NewMatch(tictactoe.RulesStandard).Snapshot(), match.State)
	assert.Equal(t, StatusOngoing, match.Status)
	assert.Equal(t, 2, match.Turn)
}

func TestMatch_IsBotTurn(t *testing.T) {
	match := NewMatch("m1", WithBotType, tictactoe.RulesStandard)
	match.Status = StatusOngoing
	match.Players = []*Player{
		{ID: "p1", MatchID: "m1", Mark: tictactoe.MarkB},
		NewBotPlayer("m1", tictactoe.MarkA),
	}

	assert.True(t, match.IsBotTurn())
	assert.Equal(t, "bot:m1", match.PlayerByMark(tictactoe.MarkA).ID)

	match.State.CurrentPlayer = tictactoe.MarkB
	assert.False(t, match.IsBotTurn())
}

func TestValidateType(t *testing.T) {
	require.NoError(t, ValidateType(WithBotType))
	assert.ErrorIs(t, ValidateType("ranked"), ErrUnknownMatchType)
}
