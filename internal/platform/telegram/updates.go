package telegram

import (
	tele "gopkg.in/telebot.v3"

	"github.com/open-builders/school-bot/internal/chat"
	"github.com/open-builders/school-bot/internal/common/logger"
)

// Submitter queues an event for processing.
type Submitter interface {
	Submit(ev *chat.Event) bool
}

// Bind routes every relevant update to s. Handlers only convert and queue,
// so the poller is never blocked by event processing.
func Bind(b *tele.Bot, s Submitter) {
	submit := func(c tele.Context) error {
		ev := ToEvent(c)
		if ev == nil {
			return nil
		}
		if !s.Submit(ev) {
			logger.Warn().Int64("user_id", ev.UserID).Msg("update dropped")
		}
		return nil
	}

	for _, endpoint := range []string{
		tele.OnText,
		tele.OnCallback,
		tele.OnContact,
		tele.OnChannelPost,
		tele.OnMyChatMember,
	} {
		b.Handle(endpoint, submit)
	}
}

// ToEvent converts an update. It returns nil for updates the bot ignores.
func ToEvent(c tele.Context) *chat.Event {
	u := c.Update()
	switch {
	case u.Callback != nil:
		return callbackEvent(u.Callback)
	case u.MyChatMember != nil:
		return memberEvent(u.MyChatMember)
	case u.ChannelPost != nil:
		return messageEvent(u.ChannelPost)
	case u.Message != nil:
		return messageEvent(u.Message)
	}
	return nil
}

func messageEvent(m *tele.Message) *chat.Event {
	if m.Chat == nil {
		return nil
	}
	ev := &chat.Event{MessageID: m.ID}
	setChat(ev, m.Chat)
	setSender(ev, m.Sender)

	switch {
	case m.Contact != nil:
		ev.Kind = chat.KindContact
		ev.Contact = &chat.Contact{PhoneNumber: m.Contact.PhoneNumber, UserID: m.Contact.UserID}
	case m.Text != "":
		ev.Text = m.Text
		if cmd, payload, ok := chat.ParseCommand(m.Text); ok {
			ev.Kind = chat.KindCommand
			ev.Command = cmd
			ev.Payload = payload
		} else {
			ev.Kind = chat.KindText
		}
	default:
		return nil
	}
	return ev
}

func callbackEvent(cb *tele.Callback) *chat.Event {
	ev := &chat.Event{
		Kind:       chat.KindCallback,
		CallbackID: cb.ID,
		Action:     chat.ParseAction(cb.Data),
	}
	setSender(ev, cb.Sender)
	if cb.Message != nil {
		ev.MessageID = cb.Message.ID
		if cb.Message.Chat != nil {
			setChat(ev, cb.Message.Chat)
		}
	}
	if ev.ChatID == 0 {
		// inline-mode buttons have no message; answer in private
		ev.ChatID = ev.UserID
		ev.ChatType = chat.ChatPrivate
	}
	return ev
}

func memberEvent(upd *tele.ChatMemberUpdate) *chat.Event {
	if upd.Chat == nil || upd.NewChatMember == nil {
		return nil
	}
	change := &chat.MembershipChange{
		New:            chat.MemberStatus(upd.NewChatMember.Role),
		CanInviteUsers: upd.NewChatMember.CanInviteUsers,
	}
	if upd.OldChatMember != nil {
		change.Old = chat.MemberStatus(upd.OldChatMember.Role)
	}

	ev := &chat.Event{Kind: chat.KindChatMember, Membership: change}
	setChat(ev, upd.Chat)
	setSender(ev, upd.Sender)
	return ev
}

func setChat(ev *chat.Event, c *tele.Chat) {
	ev.ChatID = c.ID
	ev.ChatType = chat.ChatType(c.Type)
	ev.ChatTitle = c.Title
	ev.ChatUsername = c.Username
}

func setSender(ev *chat.Event, u *tele.User) {
	if u == nil {
		return
	}
	ev.UserID = u.ID
	ev.FirstName = u.FirstName
	ev.Username = u.Username
}
