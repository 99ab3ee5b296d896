package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/bot"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/testing/suite"
)

func TestMatchRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	matchRepo := NewMatchRepository(st.Storage)

	// Given: a waiting match
	match := entity.NewMatch("123", entity.PublicType, tictactoe.RulesStandard)

	// When: CreateOrUpdate is called
	err := matchRepo.CreateOrUpdate(ctx, match)

	// Then: no error should be returned, and match is stored
	require.NoError(t, err)
}

func TestMatchRepository_Create(t *testing.T) {
	t.Run("Create_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: a waiting match
		match := entity.NewMatch("abc123", entity.PrivateType, tictactoe.RulesStandard)

		// When: Create is called
		err := matchRepo.Create(ctx, match)

		// Then: the match can be read back
		require.NoError(t, err)

		stored, err := matchRepo.GetByID(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, match.ID, stored.ID)
	})

	t.Run("Create_IDTaken", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: an ongoing match stored under abc123
		existing := entity.NewMatch("abc123", entity.PublicType, tictactoe.RulesStandard)
		existing.Status = entity.StatusOngoing
		require.NoError(t, matchRepo.CreateOrUpdate(ctx, existing))

		// When: another match is created with the same id
		err := matchRepo.Create(ctx, entity.NewMatch("abc123", entity.PrivateType, tictactoe.RulesFreePlay))

		// Then: ErrMatchAlreadyExists is returned and the stored match is untouched
		require.ErrorIs(t, err, ErrMatchAlreadyExists)
		assert.ErrorIs(t, err, apperror.ErrAlreadyExists)

		stored, err := matchRepo.GetByID(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, entity.PublicType, stored.Type)
		assert.Equal(t, entity.StatusOngoing, stored.Status)
	})
}

func TestMatchRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: a bot match a couple of moves in
		match := entity.NewMatch("123", entity.WithBotType, tictactoe.RulesFreePlay)
		match.Status = entity.StatusOngoing
		match.Strength = bot.StrengthStrong
		match.Players = []*entity.Player{
			{ID: "p1", MatchID: "123", Mark: tictactoe.MarkA},
			entity.NewBotPlayer("123", tictactoe.MarkB),
		}
		require.NoError(t, match.MakeTurn(tictactoe.MarkA, 4, 4))
		require.NoError(t, match.MakeTurn(tictactoe.MarkB, 0, 0))

		err := matchRepo.CreateOrUpdate(ctx, match)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedMatch, err := matchRepo.GetByID(ctx, match.ID)

		// Then: the retrieved match should match the saved match
		require.NoError(t, err)
		assert.Equal(t, match, retrievedMatch)

		engine, err := retrievedMatch.Engine()
		require.NoError(t, err)
		assert.Equal(t, tictactoe.MarkA, engine.CurrentPlayer())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrievedMatch, err := matchRepo.GetByID(ctx, "9999999")

		// Then: an ErrMatchNotFound error should be returned
		require.ErrorIs(t, err, ErrMatchNotFound)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Empty(t, retrievedMatch.ID)
		assert.Empty(t, retrievedMatch.Status)
	})

	t.Run("GetByID_CorruptRecord", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: a record that no longer decodes
		require.NoError(t, st.Storage.Set(ctx, matchKey("123"), `{"id":"123","state":`, 0).Err())

		// When: GetByID is called
		_, err := matchRepo.GetByID(ctx, "123")

		// Then: the record is reported as an invalid snapshot, not as missing
		require.ErrorIs(t, err, ErrCorruptMatch)
		assert.ErrorIs(t, err, apperror.ErrInvalidSnapshot)
		assert.NotErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestMatchRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: a finished match
		match := &entity.Match{
			ID:     "123",
			Status: entity.StatusFinished,
		}

		err := matchRepo.CreateOrUpdate(ctx, match)
		require.NoError(t, err)

		// When: DeleteByID is called with existing ID
		err = matchRepo.DeleteByID(ctx, match.ID)

		// Then: no error should be returned and the match is gone
		require.NoError(t, err)

		_, err = matchRepo.GetByID(ctx, match.ID)
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// When: DeleteByID is called with non-existent ID
		err := matchRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrMatchNotFound error should be returned
		require.ErrorIs(t, err, ErrMatchNotFound)
	})
}
