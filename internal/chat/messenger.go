package chat

import (
	"context"
	"errors"

	"github.com/open-builders/school-bot/internal/common/logger"
)

// ErrForbidden marks outbound failures caused by the user blocking the bot or
// the bot being removed from the chat.
var ErrForbidden = errors.New("chat: forbidden")

// Messenger is the outbound side of the messaging platform.
type Messenger interface {
	// Send returns the id of the sent message.
	Send(ctx context.Context, chatID int64, text string, markup *Markup) (int, error)
	Edit(ctx context.Context, chatID int64, messageID int, text string, markup *Markup) error
	Delete(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
	MemberStatus(ctx context.Context, chatID, userID int64) (MemberStatus, error)
	InviteLink(ctx context.Context, chatID int64) (string, error)
	BotUsername() string
}

// Reply sends text to the chat the event came from. Failures are logged and
// dropped.
func Reply(ctx context.Context, m Messenger, ev *Event, text string, markup *Markup) {
	SendTo(ctx, m, ev.ChatID, text, markup)
}

// SendTo sends text to an arbitrary chat or user. Failures are logged and
// dropped.
func SendTo(ctx context.Context, m Messenger, chatID int64, text string, markup *Markup) {
	if _, err := m.Send(ctx, chatID, text, markup); err != nil {
		logFailure(ctx, "send", chatID, err)
	}
}

// Render edits the message carrying the pressed button, and falls back to a
// new message when the event is not a callback or the edit fails.
func Render(ctx context.Context, m Messenger, ev *Event, text string, markup *Markup) {
	if ev.Kind == KindCallback && ev.MessageID != 0 {
		err := m.Edit(ctx, ev.ChatID, ev.MessageID, text, markup)
		if err == nil {
			return
		}
		logger.Ctx(ctx).Debug().Err(err).Int("message_id", ev.MessageID).Msg("edit failed, sending instead")
	}
	Reply(ctx, m, ev, text, markup)
}

// Answer acknowledges a button press once. Later calls for the same event
// are ignored.
func Answer(ctx context.Context, m Messenger, ev *Event, text string, alert bool) {
	if ev.Kind != KindCallback || ev.CallbackID == "" || ev.answered {
		return
	}
	ev.answered = true
	if err := m.AnswerCallback(ctx, ev.CallbackID, text, alert); err != nil {
		logFailure(ctx, "answer callback", ev.ChatID, err)
	}
}

// DeleteSource removes the message carrying the pressed button.
func DeleteSource(ctx context.Context, m Messenger, ev *Event) {
	if ev.Kind != KindCallback || ev.MessageID == 0 {
		return
	}
	if err := m.Delete(ctx, ev.ChatID, ev.MessageID); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Int("message_id", ev.MessageID).Msg("could not delete message")
	}
}

func logFailure(ctx context.Context, op string, chatID int64, err error) {
	l := logger.Ctx(ctx)
	if errors.Is(err, ErrForbidden) {
		l.Warn().Err(err).Int64("target", chatID).Msgf("%s: bot blocked or removed", op)
		return
	}
	l.Error().Err(err).Int64("target", chatID).Msgf("%s failed", op)
}
