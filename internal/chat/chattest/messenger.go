// Package chattest provides an in-memory Messenger for tests.
package chattest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/open-builders/school-bot/internal/chat"
)

// Message is a recorded outbound message or edit.
type Message struct {
	ChatID    int64
	MessageID int
	Text      string
	Markup    *chat.Markup
	Edited    bool
}

// Answer is a recorded callback acknowledgement.
type Answer struct {
	CallbackID string
	Text       string
	Alert      bool
}

// Messenger records every outbound call.
type Messenger struct {
	mu sync.Mutex

	Username string
	// Statuses maps "chatID/userID" to the membership status returned by
	// MemberStatus. Missing entries fail with an error.
	Statuses map[string]chat.MemberStatus
	Links    map[int64]string

	// FailEdits makes Edit fail so Render falls back to Send.
	FailEdits bool

	nextID   int
	messages []Message
	answers  []Answer
	deleted  []int
}

func New() *Messenger {
	return &Messenger{
		Username: "school_bot",
		Statuses: make(map[string]chat.MemberStatus),
		Links:    make(map[int64]string),
	}
}

// SetStatus sets the membership status of user in chat.
func (m *Messenger) SetStatus(chatID, userID int64, s chat.MemberStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Statuses[statusKey(chatID, userID)] = s
}

func (m *Messenger) Send(_ context.Context, chatID int64, text string, markup *chat.Markup) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.messages = append(m.messages, Message{ChatID: chatID, MessageID: m.nextID, Text: text, Markup: markup})
	return m.nextID, nil
}

func (m *Messenger) Edit(_ context.Context, chatID int64, messageID int, text string, markup *chat.Markup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailEdits {
		return fmt.Errorf("message to edit not found")
	}
	m.messages = append(m.messages, Message{ChatID: chatID, MessageID: messageID, Text: text, Markup: markup, Edited: true})
	return nil
}

func (m *Messenger) Delete(_ context.Context, _ int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, messageID)
	return nil
}

func (m *Messenger) AnswerCallback(_ context.Context, callbackID, text string, alert bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, Answer{CallbackID: callbackID, Text: text, Alert: alert})
	return nil
}

func (m *Messenger) MemberStatus(_ context.Context, chatID, userID int64) (chat.MemberStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Statuses[statusKey(chatID, userID)]
	if !ok {
		return "", fmt.Errorf("chat not found")
	}
	return s, nil
}

func (m *Messenger) InviteLink(_ context.Context, chatID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	link, ok := m.Links[chatID]
	if !ok {
		return "", fmt.Errorf("not enough rights to export chat invite link")
	}
	return link, nil
}

func (m *Messenger) BotUsername() string {
	return m.Username
}

// Messages returns everything sent or edited so far.
func (m *Messenger) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// To returns the messages addressed to chatID.
func (m *Messenger) To(chatID int64) []Message {
	var out []Message
	for _, msg := range m.Messages() {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out
}

// Last returns the latest message, or an empty one.
func (m *Messenger) Last() Message {
	msgs := m.Messages()
	if len(msgs) == 0 {
		return Message{}
	}
	return msgs[len(msgs)-1]
}

// Texts returns the text of every message in order.
func (m *Messenger) Texts() []string {
	var out []string
	for _, msg := range m.Messages() {
		out = append(out, msg.Text)
	}
	return out
}

// Contains reports whether any message contains substr.
func (m *Messenger) Contains(substr string) bool {
	for _, t := range m.Texts() {
		if strings.Contains(t, substr) {
			return true
		}
	}
	return false
}

func (m *Messenger) Answers() []Answer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Answer, len(m.answers))
	copy(out, m.answers)
	return out
}

func (m *Messenger) Deleted() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.deleted))
	copy(out, m.deleted)
	return out
}

// Reset forgets recorded calls.
func (m *Messenger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
	m.answers = nil
	m.deleted = nil
}

// Buttons flattens the inline keyboard of msg.
func Buttons(msg Message) []chat.Button {
	if msg.Markup == nil {
		return nil
	}
	var out []chat.Button
	for _, row := range msg.Markup.Inline {
		out = append(out, row...)
	}
	return out
}

// HasAction reports whether msg carries a button of the given kind.
func HasAction(msg Message, kind chat.ActionKind) bool {
	for _, b := range Buttons(msg) {
		if b.URL == "" && b.Action.Kind == kind {
			return true
		}
	}
	return false
}

func statusKey(chatID, userID int64) string {
	return fmt.Sprintf("%d/%d", chatID, userID)
}

var _ chat.Messenger = (*Messenger)(nil)
