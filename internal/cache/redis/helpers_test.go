package redis

import "github.com/open-builders/school-bot/internal/chat"

func textEvent(userID int64, text string) *chat.Event {
	return &chat.Event{Kind: chat.KindText, UserID: userID, ChatID: userID, ChatType: chat.ChatPrivate, Text: text}
}
