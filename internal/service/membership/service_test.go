package membership

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-builders/school-bot/internal/chat"
	"github.com/open-builders/school-bot/internal/chat/chattest"
	"github.com/open-builders/school-bot/internal/domain/channel"
	"github.com/open-builders/school-bot/internal/repository"
	"github.com/open-builders/school-bot/internal/repository/memory"
)

func seed(t *testing.T, repo channel.ForcedRepository, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, repo.Add(context.Background(), channel.ForcedChannel{
			ChannelID: id,
			Link:      "https://t.me/+link",
			Text:      "join",
			CreatedAt: time.Now(),
		}))
	}
}

func TestUnjoinedStatuses(t *testing.T) {
	store := memory.NewStore()
	seed(t, store.ForcedChannels, -1, -2, -3, -4)

	m := chattest.New()
	m.SetStatus(-1, 7, chat.StatusMember)
	m.SetStatus(-2, 7, chat.StatusLeft)
	m.SetStatus(-3, 7, chat.StatusCreator)
	// -4 has no status: the check fails

	got, err := NewService(store.ForcedChannels, m).Unjoined(context.Background(), 7)
	require.NoError(t, err)

	var ids []int64
	for _, ch := range got {
		ids = append(ids, ch.ChannelID)
	}
	assert.Equal(t, []int64{-2, -4}, ids)
}

func TestUnjoinedNoChannels(t *testing.T) {
	got, err := NewService(memory.NewStore().ForcedChannels, chattest.New()).Unjoined(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnjoinedListFailure(t *testing.T) {
	_, err := NewService(repository.Unavailable().ForcedChannels, chattest.New()).Unjoined(context.Background(), 7)
	assert.Error(t, err)
}

func TestJoinMarkup(t *testing.T) {
	m := JoinMarkup([]channel.ForcedChannel{
		{ChannelID: -1, Link: "https://t.me/a", Text: "A"},
		{ChannelID: -2},
		{ChannelID: -1001234, Text: "C"},
	})
	require.Len(t, m.Inline, 4)
	assert.Equal(t, "https://t.me/a", m.Inline[0][0].URL)
	assert.Contains(t, m.Inline[1][0].Text, "-2")
	assert.Equal(t, "https://t.me/c/-2", m.Inline[1][0].URL)
	assert.Equal(t, "https://t.me/c/1234", m.Inline[2][0].URL)
	assert.Equal(t, chat.ActRefreshJoin, m.Inline[3][0].Action.Kind)
}
