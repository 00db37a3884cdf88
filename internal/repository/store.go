package repository

import (
	"context"

	"github.com/open-builders/school-bot/internal/domain/admin"
	"github.com/open-builders/school-bot/internal/domain/channel"
	"github.com/open-builders/school-bot/internal/domain/school"
	"github.com/open-builders/school-bot/internal/domain/user"
)

// Store groups the repositories of the profile store.
type Store struct {
	Users             user.Repository
	Admin             admin.Repository
	ForcedChannels    channel.ForcedRepository
	AdministeredChats channel.AdministeredRepository
	Schools           school.Repository

	// Ping checks the backend; nil for stores without a connection.
	Ping func(ctx context.Context) error
}
