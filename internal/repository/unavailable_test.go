package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/domain/channel"
	"github.com/open-builders/school-bot/internal/domain/user"
)

func TestUnavailableStoreSignalsEveryOperation(t *testing.T) {
	ctx := context.Background()
	s := Unavailable()

	_, err := s.Users.Get(ctx, 1)
	assert.True(t, apperrors.IsUnavailable(err))
	assert.True(t, apperrors.IsUnavailable(s.Users.Upsert(ctx, 1, user.Patch{}, true)))
	assert.True(t, apperrors.IsUnavailable(s.Users.AddCoins(ctx, 1, 10)))
	granted, err := s.Users.GrantCompletionAward(ctx, 1, 50)
	assert.False(t, granted)
	assert.True(t, apperrors.IsUnavailable(err))

	_, err = s.Admin.Get(ctx)
	assert.True(t, apperrors.IsUnavailable(err))
	assert.True(t, apperrors.IsUnavailable(s.Admin.SetAdminID(ctx, 1)))

	assert.True(t, apperrors.IsUnavailable(s.ForcedChannels.Add(ctx, channel.ForcedChannel{ChannelID: -100})))
	_, err = s.ForcedChannels.List(ctx)
	assert.True(t, apperrors.IsUnavailable(err))

	assert.True(t, apperrors.IsUnavailable(s.AdministeredChats.Remove(ctx, -100)))
	_, err = s.AdministeredChats.List(ctx)
	assert.True(t, apperrors.IsUnavailable(err))

	_, err = s.Schools.Get(ctx, "تهران", "قدس")
	assert.True(t, apperrors.IsUnavailable(err))
	assert.True(t, apperrors.IsUnavailable(s.Ping(ctx)))
}
