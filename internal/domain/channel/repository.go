package channel

import "context"

// ForcedRepository stores forced channels. Add replaces an existing entry
// with the same id.
type ForcedRepository interface {
	Add(ctx context.Context, ch ForcedChannel) error
	List(ctx context.Context) ([]ForcedChannel, error)
}

// AdministeredRepository tracks chats where the bot is an administrator.
// List is ordered by title.
type AdministeredRepository interface {
	Upsert(ctx context.Context, c AdministeredChat) error
	Remove(ctx context.Context, chatID int64) error
	List(ctx context.Context) ([]AdministeredChat, error)
}
