// Package membership resolves which forced channels a user still has to join.
package membership

import (
	"context"
	"strconv"
	"strings"

	"github.com/open-builders/school-bot/internal/chat"
	"github.com/open-builders/school-bot/internal/common/logger"
	"github.com/open-builders/school-bot/internal/domain/channel"
	"github.com/open-builders/school-bot/internal/messages"
)

// Service checks forced channel membership through the messenger.
type Service struct {
	channels  channel.ForcedRepository
	messenger chat.Messenger
}

func NewService(channels channel.ForcedRepository, messenger chat.Messenger) *Service {
	return &Service{channels: channels, messenger: messenger}
}

// Unjoined returns the forced channels userID is not a member of, in list
// order. A status that cannot be resolved counts as not joined. The error is
// only set when the channel list itself could not be read.
func (s *Service) Unjoined(ctx context.Context, userID int64) ([]channel.ForcedChannel, error) {
	channels, err := s.channels.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []channel.ForcedChannel
	for _, ch := range channels {
		status, err := s.messenger.MemberStatus(ctx, ch.ChannelID, userID)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Int64("channel_id", ch.ChannelID).Msg("membership check failed")
			out = append(out, ch)
			continue
		}
		if !status.Joined() {
			out = append(out, ch)
		}
	}
	return out, nil
}

// JoinMarkup lists one URL button per channel plus the "joined" button.
func JoinMarkup(channels []channel.ForcedChannel) *chat.Markup {
	m := &chat.Markup{}
	for _, ch := range channels {
		label := ch.Text
		if label == "" {
			label = messages.ChannelFallbackLabel(ch.ChannelID)
		}
		m.Append(chat.Row(chat.URLButton(label, channelURL(ch))))
	}
	return m.Append(chat.Row(chat.CallbackButton(messages.BtnJoined, chat.NewAction(chat.ActRefreshJoin))))
}

// channelURL falls back to the private channel address when no invite link
// was stored.
func channelURL(ch channel.ForcedChannel) string {
	if ch.Link != "" {
		return ch.Link
	}
	id := strings.TrimPrefix(strconv.FormatInt(ch.ChannelID, 10), "-100")
	return "https://t.me/c/" + id
}
