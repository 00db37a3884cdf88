package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/domain/user"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("get decodes document", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "school_bot.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: int64(7)},
			{Key: "name", Value: "Ali"},
			{Key: "gender", Value: "male"},
			{Key: "coins", Value: 20},
		}))

		u, err := repo.Get(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), u.ID)
		assert.Equal(t, "Ali", u.Name)
		assert.Equal(t, user.GenderMale, u.Gender)
		assert.Equal(t, 20, u.Coins)
	})

	mt.Run("get missing user is not found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "school_bot.users", mtest.FirstBatch))

		_, err := repo.Get(context.Background(), 8)
		assert.True(t, apperrors.IsNotFound(err))
	})

	mt.Run("command failure is store unavailable", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 91, Message: "shutdown in progress"}))

		err := repo.Upsert(context.Background(), 9, user.Patch{Name: user.Ptr("x")}, true)
		assert.True(t, apperrors.IsUnavailable(err))
	})

	mt.Run("award granted when document modified", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		granted, err := repo.GrantCompletionAward(context.Background(), 7, 50)
		require.NoError(t, err)
		assert.True(t, granted)
	})

	mt.Run("award skipped when filter does not match", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		granted, err := repo.GrantCompletionAward(context.Background(), 7, 50)
		require.NoError(t, err)
		assert.False(t, granted)
	})

	mt.Run("add coins to unknown user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.AddCoins(context.Background(), 404, 10)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestSchoolRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("get returns stored names", func(mt *mtest.T) {
		repo := NewSchoolRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "school_bot.schools", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "تهران/قدس"},
			{Key: "schoolNames", Value: bson.A{"A", "B", "C"}},
		}))

		names, err := repo.Get(context.Background(), "تهران", "قدس")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, names)
	})

	mt.Run("unknown city is empty", func(mt *mtest.T) {
		repo := NewSchoolRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "school_bot.schools", mtest.FirstBatch))

		names, err := repo.Get(context.Background(), "تهران", "ورامین")
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	mt.Run("add with no names is a no-op", func(mt *mtest.T) {
		repo := NewSchoolRepository(mt.DB)
		assert.NoError(t, repo.Add(context.Background(), "تهران", "قدس", nil))
	})
}
