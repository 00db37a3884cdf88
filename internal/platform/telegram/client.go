// Package telegram adapts the Bot API, through telebot, to the chat package.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/open-builders/school-bot/internal/chat"
	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/common/logger"
)

// Client is the chat.Messenger backed by a telebot bot. Bot API calls are
// not cancellable, so the contexts only carry logging fields.
type Client struct {
	bot *tele.Bot
}

// NewBot creates a long-polling bot. It calls getMe, so a bad token fails
// here.
func NewBot(token string, pollTimeout time.Duration) (*tele.Bot, error) {
	b, err := tele.NewBot(tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: pollTimeout,
			AllowedUpdates: []string{
				"message", "callback_query", "channel_post", "my_chat_member",
			},
		},
		OnError: func(err error, c tele.Context) {
			logger.Error().Err(err).Msg("telegram handler failed")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return b, nil
}

func NewClient(b *tele.Bot) *Client {
	return &Client{bot: b}
}

func (c *Client) Send(_ context.Context, chatID int64, text string, markup *chat.Markup) (int, error) {
	msg, err := c.bot.Send(tele.ChatID(chatID), text, sendOptions(markup))
	if err != nil {
		return 0, wrap("send message", err)
	}
	return msg.ID, nil
}

func (c *Client) Edit(_ context.Context, chatID int64, messageID int, text string, markup *chat.Markup) error {
	opts := &tele.SendOptions{}
	if rm := replyMarkup(markup); rm != nil && len(rm.InlineKeyboard) > 0 {
		// only inline keyboards can be attached to an edit
		opts.ReplyMarkup = rm
	}
	_, err := c.bot.Edit(stored(chatID, messageID), text, opts)
	return wrap("edit message", err)
}

func (c *Client) Delete(_ context.Context, chatID int64, messageID int) error {
	return wrap("delete message", c.bot.Delete(stored(chatID, messageID)))
}

func (c *Client) AnswerCallback(_ context.Context, callbackID, text string, alert bool) error {
	err := c.bot.Respond(&tele.Callback{ID: callbackID}, &tele.CallbackResponse{
		Text:      text,
		ShowAlert: alert,
	})
	return wrap("answer callback", err)
}

func (c *Client) MemberStatus(_ context.Context, chatID, userID int64) (chat.MemberStatus, error) {
	m, err := c.bot.ChatMemberOf(tele.ChatID(chatID), tele.ChatID(userID))
	if err != nil {
		return "", wrap("get chat member", err)
	}
	return chat.MemberStatus(m.Role), nil
}

func (c *Client) InviteLink(_ context.Context, chatID int64) (string, error) {
	link, err := c.bot.InviteLink(&tele.Chat{ID: chatID})
	if err != nil {
		return "", wrap("export invite link", err)
	}
	return link, nil
}

func (c *Client) BotUsername() string {
	if c.bot.Me == nil {
		return ""
	}
	return c.bot.Me.Username
}

func stored(chatID int64, messageID int) tele.StoredMessage {
	return tele.StoredMessage{ChatID: chatID, MessageID: strconv.Itoa(messageID)}
}

func sendOptions(markup *chat.Markup) *tele.SendOptions {
	return &tele.SendOptions{ReplyMarkup: replyMarkup(markup)}
}

// replyMarkup converts a chat keyboard. Buttons carry raw callback data so
// every press reaches the OnCallback endpoint.
func replyMarkup(m *chat.Markup) *tele.ReplyMarkup {
	switch {
	case m == nil:
		return nil
	case m.RemoveKeyboard:
		return &tele.ReplyMarkup{RemoveKeyboard: true}
	case m.RequestContact != "":
		return &tele.ReplyMarkup{
			ReplyKeyboard:   [][]tele.ReplyButton{{{Text: m.RequestContact, Contact: true}}},
			ResizeKeyboard:  true,
			OneTimeKeyboard: true,
		}
	}

	rows := make([][]tele.InlineButton, 0, len(m.Inline))
	for _, row := range m.Inline {
		buttons := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, tele.InlineButton{Text: b.Text, URL: b.URL})
				continue
			}
			buttons = append(buttons, tele.InlineButton{Text: b.Text, Data: b.Action.Data()})
		}
		rows = append(rows, buttons)
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

// wrap tags 403 responses with chat.ErrForbidden.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *tele.Error
	if errors.As(err, &apiErr) && apiErr.Code == 403 {
		return apperrors.NewTelegramAPIError(op, fmt.Errorf("%w: %v", chat.ErrForbidden, err)).
			WithDetail("status", apiErr.Code)
	}
	return apperrors.NewTelegramAPIError(op, err)
}

var _ chat.Messenger = (*Client)(nil)
