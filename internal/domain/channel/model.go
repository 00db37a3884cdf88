package channel

import "time"

type ChatType string

const (
	ChatTypeChannel    ChatType = "channel"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
)

// ForcedChannel is a chat every non-admin user must join before using the bot.
type ForcedChannel struct {
	ChannelID int64     `bson:"_id" json:"channelId"`
	Link      string    `bson:"link" json:"link"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// AdministeredChat is a chat where the bot currently holds admin rights.
type AdministeredChat struct {
	ChatID      int64     `bson:"_id" json:"chatId"`
	Title       string    `bson:"title" json:"title"`
	Type        ChatType  `bson:"type" json:"type"`
	InviteLink  string    `bson:"inviteLink,omitempty" json:"inviteLink,omitempty"`
	LastUpdated time.Time `bson:"lastUpdated" json:"lastUpdated"`
}
