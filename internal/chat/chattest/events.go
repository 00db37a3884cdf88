package chattest

import "github.com/open-builders/school-bot/internal/chat"

// Text is a private text message from userID.
func Text(userID int64, text string) *chat.Event {
	if cmd, payload, ok := chat.ParseCommand(text); ok {
		return Command(userID, cmd, payload)
	}
	return &chat.Event{
		Kind:      chat.KindText,
		UserID:    userID,
		FirstName: "Test",
		ChatID:    userID,
		ChatType:  chat.ChatPrivate,
		Text:      text,
	}
}

// Command is a private command from userID.
func Command(userID int64, command, payload string) *chat.Event {
	text := "/" + command
	if payload != "" {
		text += " " + payload
	}
	return &chat.Event{
		Kind:      chat.KindCommand,
		UserID:    userID,
		FirstName: "Test",
		ChatID:    userID,
		ChatType:  chat.ChatPrivate,
		Text:      text,
		Command:   command,
		Payload:   payload,
	}
}

// Press is a button press from userID on message 100.
func Press(userID int64, a chat.Action) *chat.Event {
	return &chat.Event{
		Kind:       chat.KindCallback,
		UserID:     userID,
		FirstName:  "Test",
		ChatID:     userID,
		ChatType:   chat.ChatPrivate,
		MessageID:  100,
		CallbackID: "cb-" + a.Data(),
		Action:     a,
	}
}

// SharedContact is a contact shared by userID that belongs to owner.
func SharedContact(userID, owner int64, phone string) *chat.Event {
	return &chat.Event{
		Kind:     chat.KindContact,
		UserID:   userID,
		ChatID:   userID,
		ChatType: chat.ChatPrivate,
		Contact:  &chat.Contact{PhoneNumber: phone, UserID: owner},
	}
}
