package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/testing/suite"
)

func TestPlayerRepository_CreateOrUpdate(t *testing.T) {
	t.Run("Stores the player with a TTL", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// Given: a player seated in a match
		player := &entity.Player{ID: "123", MatchID: "m1", Mark: tictactoe.MarkB}

		// When: CreateOrUpdate is called
		err := playerRepo.CreateOrUpdate(ctx, player)

		// Then: the player is stored and expires eventually
		require.NoError(t, err)

		ttl, err := st.Storage.TTL(ctx, playerKey(player.ID)).Result()
		require.NoError(t, err)
		assert.Positive(t, ttl)
	})

	t.Run("Skips bot players", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		err := playerRepo.CreateOrUpdate(ctx, entity.NewBotPlayer("m1", tictactoe.MarkA))
		require.NoError(t, err)

		_, err = playerRepo.GetByID(ctx, "bot:m1")
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})
}

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// Given: a stored player
		player := &entity.Player{ID: "123", MatchID: "m1", Mark: tictactoe.MarkA}

		err := playerRepo.CreateOrUpdate(ctx, player)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedPlayer, err := playerRepo.GetByID(ctx, player.ID)

		// Then: the retrieved player should match the saved player
		require.NoError(t, err)
		assert.Equal(t, player, retrievedPlayer)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrievedPlayer, err := playerRepo.GetByID(ctx, "9999999")

		// Then: an ErrPlayerNotFound error should be returned
		require.ErrorIs(t, err, ErrPlayerNotFound)
		assert.Empty(t, retrievedPlayer.ID)
	})
}
