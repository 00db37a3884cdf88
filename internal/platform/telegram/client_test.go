package telegram

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"github.com/open-builders/school-bot/internal/chat"
	apperrors "github.com/open-builders/school-bot/internal/common/errors"
)

func offlineBot(t *testing.T) *tele.Bot {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true, Synchronous: true})
	require.NoError(t, err)
	return b
}

type recorder struct {
	events []*chat.Event
}

func (r *recorder) Submit(ev *chat.Event) bool {
	r.events = append(r.events, ev)
	return true
}

func TestReplyMarkup(t *testing.T) {
	assert.Nil(t, replyMarkup(nil))
	assert.True(t, replyMarkup(chat.RemoveKeyboard()).RemoveKeyboard)

	contact := replyMarkup(chat.ContactRequest("share"))
	require.Len(t, contact.ReplyKeyboard, 1)
	assert.True(t, contact.ReplyKeyboard[0][0].Contact)
	assert.Equal(t, "share", contact.ReplyKeyboard[0][0].Text)
	assert.True(t, contact.OneTimeKeyboard)

	inline := replyMarkup(chat.Inline(
		chat.Row(
			chat.CallbackButton("Tehran", chat.NewAction(chat.ActProvince, "تهران")),
			chat.URLButton("Join", "https://t.me/+x"),
		),
		chat.Row(chat.CallbackButton("Back", chat.NewAction(chat.ActShowMainMenu))),
	))
	require.Len(t, inline.InlineKeyboard, 2)
	assert.Equal(t, "province:تهران", inline.InlineKeyboard[0][0].Data)
	assert.Empty(t, inline.InlineKeyboard[0][0].Unique)
	assert.Equal(t, "https://t.me/+x", inline.InlineKeyboard[0][1].URL)
	assert.Empty(t, inline.InlineKeyboard[0][1].Data)
	assert.Equal(t, "show_main_menu", inline.InlineKeyboard[1][0].Data)
}

func TestWrapForbidden(t *testing.T) {
	assert.NoError(t, wrap("send message", nil))

	err := wrap("send message", tele.ErrBlockedByUser)
	assert.ErrorIs(t, err, chat.ErrForbidden)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeTelegramAPI))

	err = wrap("send message", fmt.Errorf("telegram: chat not found (400)"))
	assert.False(t, errors.Is(err, chat.ErrForbidden))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeTelegramAPI))

	appErr, ok := apperrors.AsAppError(wrap("send message", errors.New("boom")))
	require.True(t, ok)
	assert.Equal(t, "send message", appErr.Details["operation"])
	assert.Contains(t, appErr.Error(), "boom")
}

func TestToEventMessages(t *testing.T) {
	b := offlineBot(t)
	private := &tele.Chat{ID: 42, Type: tele.ChatPrivate}
	sender := &tele.User{ID: 42, FirstName: "Sara", Username: "sara"}

	tests := []struct {
		name string
		msg  *tele.Message
		want chat.Event
	}{
		{
			name: "text",
			msg:  &tele.Message{ID: 7, Chat: private, Sender: sender, Text: "Sara Ahmadi"},
			want: chat.Event{
				Kind: chat.KindText, UserID: 42, FirstName: "Sara", Username: "sara",
				ChatID: 42, ChatType: chat.ChatPrivate, MessageID: 7, Text: "Sara Ahmadi",
			},
		},
		{
			name: "command with payload",
			msg:  &tele.Message{ID: 8, Chat: private, Sender: sender, Text: "/start 1001"},
			want: chat.Event{
				Kind: chat.KindCommand, UserID: 42, FirstName: "Sara", Username: "sara",
				ChatID: 42, ChatType: chat.ChatPrivate, MessageID: 8, Text: "/start 1001",
				Command: "start", Payload: "1001",
			},
		},
		{
			name: "contact",
			msg: &tele.Message{ID: 9, Chat: private, Sender: sender,
				Contact: &tele.Contact{PhoneNumber: "+989121234567", UserID: 42}},
			want: chat.Event{
				Kind: chat.KindContact, UserID: 42, FirstName: "Sara", Username: "sara",
				ChatID: 42, ChatType: chat.ChatPrivate, MessageID: 9,
				Contact: &chat.Contact{PhoneNumber: "+989121234567", UserID: 42},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := ToEvent(b.NewContext(tele.Update{Message: tt.msg}))
			require.NotNil(t, ev)
			assert.Equal(t, tt.want, *ev)
		})
	}

	photo := &tele.Message{ID: 10, Chat: private, Sender: sender, Photo: &tele.Photo{}}
	assert.Nil(t, ToEvent(b.NewContext(tele.Update{Message: photo})))
}

func TestToEventChannelPost(t *testing.T) {
	b := offlineBot(t)
	post := &tele.Message{
		ID:   3,
		Chat: &tele.Chat{ID: -100123, Type: tele.ChatChannel, Title: "News", Username: "news"},
		Text: "/promote_channel@school_bot",
	}

	ev := ToEvent(b.NewContext(tele.Update{ChannelPost: post}))
	require.NotNil(t, ev)
	assert.Equal(t, chat.KindCommand, ev.Kind)
	assert.Equal(t, "promote_channel", ev.Command)
	assert.Zero(t, ev.UserID)
	assert.Equal(t, int64(-100123), ev.Key())
	assert.Equal(t, "News", ev.ChatTitle)
	assert.Equal(t, "news", ev.ChatUsername)
}

func TestToEventCallback(t *testing.T) {
	b := offlineBot(t)
	cb := &tele.Callback{
		ID:      "cb1",
		Sender:  &tele.User{ID: 42},
		Data:    "promo_chat:-100123",
		Message: &tele.Message{ID: 55, Chat: &tele.Chat{ID: 42, Type: tele.ChatPrivate}},
	}

	ev := ToEvent(b.NewContext(tele.Update{Callback: cb}))
	require.NotNil(t, ev)
	assert.Equal(t, chat.KindCallback, ev.Kind)
	assert.Equal(t, "cb1", ev.CallbackID)
	assert.Equal(t, 55, ev.MessageID)
	assert.True(t, ev.IsAction(chat.ActPromoteChat))
	id, ok := ev.Action.Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(-100123), id)

	// no message: falls back to the sender's private chat
	ev = ToEvent(b.NewContext(tele.Update{Callback: &tele.Callback{ID: "cb2", Sender: &tele.User{ID: 42}, Data: "show_coins"}}))
	require.NotNil(t, ev)
	assert.Equal(t, int64(42), ev.ChatID)
	assert.True(t, ev.Private())
}

func TestToEventMyChatMember(t *testing.T) {
	b := offlineBot(t)
	upd := &tele.ChatMemberUpdate{
		Chat:          &tele.Chat{ID: -100123, Type: tele.ChatChannel, Title: "News"},
		Sender:        &tele.User{ID: 1},
		OldChatMember: &tele.ChatMember{Role: tele.Left},
		NewChatMember: &tele.ChatMember{Role: tele.Administrator, Rights: tele.Rights{CanInviteUsers: true}},
	}

	ev := ToEvent(b.NewContext(tele.Update{MyChatMember: upd}))
	require.NotNil(t, ev)
	assert.Equal(t, chat.KindChatMember, ev.Kind)
	assert.Equal(t, chat.ChatChannel, ev.ChatType)
	require.NotNil(t, ev.Membership)
	assert.Equal(t, chat.StatusLeft, ev.Membership.Old)
	assert.Equal(t, chat.StatusAdministrator, ev.Membership.New)
	assert.True(t, ev.Membership.CanInviteUsers)
}

func TestBindSubmitsUpdates(t *testing.T) {
	b := offlineBot(t)
	rec := &recorder{}
	Bind(b, rec)

	private := &tele.Chat{ID: 42, Type: tele.ChatPrivate}
	sender := &tele.User{ID: 42}
	b.ProcessUpdate(tele.Update{Message: &tele.Message{ID: 1, Chat: private, Sender: sender, Text: "/menu"}})
	b.ProcessUpdate(tele.Update{Message: &tele.Message{ID: 2, Chat: private, Sender: sender, Text: "hello"}})
	b.ProcessUpdate(tele.Update{Callback: &tele.Callback{ID: "cb", Sender: sender, Data: "show_profile",
		Message: &tele.Message{ID: 3, Chat: private}}})

	require.Len(t, rec.events, 3)
	assert.True(t, rec.events[0].IsCommand("menu"))
	assert.Equal(t, chat.KindText, rec.events[1].Kind)
	assert.True(t, rec.events[2].IsAction(chat.ActShowProfile))
}

func TestBotUsernameOffline(t *testing.T) {
	b := offlineBot(t)
	b.Me.Username = "school_bot"
	assert.Equal(t, "school_bot", NewClient(b).BotUsername())
}
