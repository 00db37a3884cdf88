// Package chat holds the transport-neutral view of the messaging platform:
// inbound events, button actions, keyboards and the outbound Messenger.
package chat

import "strings"

type Kind int

const (
	KindText Kind = iota + 1
	KindCommand
	KindCallback
	KindContact
	KindChatMember
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCommand:
		return "command"
	case KindCallback:
		return "callback"
	case KindContact:
		return "contact"
	case KindChatMember:
		return "chat_member"
	}
	return "unknown"
}

type ChatType string

const (
	ChatPrivate    ChatType = "private"
	ChatGroup      ChatType = "group"
	ChatSupergroup ChatType = "supergroup"
	ChatChannel    ChatType = "channel"
)

// MemberStatus is a chat member status as reported by the platform.
type MemberStatus string

const (
	StatusCreator       MemberStatus = "creator"
	StatusAdministrator MemberStatus = "administrator"
	StatusMember        MemberStatus = "member"
	StatusRestricted    MemberStatus = "restricted"
	StatusLeft          MemberStatus = "left"
	StatusKicked        MemberStatus = "kicked"
)

// Joined reports whether the status counts as channel membership.
func (s MemberStatus) Joined() bool {
	return s == StatusMember || s == StatusAdministrator || s == StatusCreator
}

type Contact struct {
	PhoneNumber string
	UserID      int64
}

// MembershipChange is the bot's own status change in a chat.
type MembershipChange struct {
	Old            MemberStatus
	New            MemberStatus
	CanInviteUsers bool
}

// Event is one inbound update. Fields not relevant to Kind are zero.
type Event struct {
	Kind Kind

	// UserID is zero for channel posts.
	UserID    int64
	FirstName string
	Username  string

	ChatID       int64
	ChatType     ChatType
	ChatTitle    string
	ChatUsername string

	// MessageID is the message carrying the pressed button for callbacks.
	MessageID  int
	CallbackID string

	Text    string
	Command string
	Payload string

	Action     Action
	Contact    *Contact
	Membership *MembershipChange

	answered bool
}

// Key is the serialization key of the event: the sender, or the chat for
// events without a sender.
func (e *Event) Key() int64 {
	if e.UserID != 0 {
		return e.UserID
	}
	return e.ChatID
}

// Private reports whether the event comes from a one-to-one chat.
func (e *Event) Private() bool {
	return e.ChatType == ChatPrivate
}

// IsCommand reports whether the event is the given command.
func (e *Event) IsCommand(name string) bool {
	return e.Kind == KindCommand && e.Command == name
}

// IsAction reports whether the event is a button press of the given kind.
func (e *Event) IsAction(kind ActionKind) bool {
	return e.Kind == KindCallback && e.Action.Kind == kind
}

// Answered reports whether the callback was already acknowledged.
func (e *Event) Answered() bool {
	return e.answered
}

// ParseCommand splits "/start@bot payload" into command and payload. ok is
// false when text is not a command.
func ParseCommand(text string) (command, payload string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") || len(text) == 1 {
		return "", "", false
	}

	head, rest, _ := strings.Cut(text[1:], " ")
	if i := strings.IndexByte(head, '@'); i >= 0 {
		head = head[:i]
	}
	if head == "" {
		return "", "", false
	}
	return strings.ToLower(head), strings.TrimSpace(rest), true
}
