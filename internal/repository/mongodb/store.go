// Package mongodb implements the profile store on MongoDB. Each keyed
// collection maps onto one Mongo collection; school directories use
// "{province}/{city}" document ids.
package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	platform "github.com/open-builders/school-bot/internal/platform/mongo"
	"github.com/open-builders/school-bot/internal/repository"
)

const (
	usersCollection             = "users"
	configCollection            = "config"
	channelsCollection          = "channels"
	administeredChatsCollection = "bot_administered_chats"
	schoolsCollection           = "schools"
)

// NewStore builds the store on top of an open client.
func NewStore(c *platform.Client) *repository.Store {
	db := c.Database()
	return &repository.Store{
		Users:             NewUserRepository(db),
		Admin:             NewAdminRepository(db),
		ForcedChannels:    NewForcedChannelRepository(db),
		AdministeredChats: NewAdministeredChatRepository(db),
		Schools:           NewSchoolRepository(db),
		Ping:              c.Ping,
	}
}

// storeError maps driver errors onto store error codes.
func storeError(op string, resource string, id interface{}, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NewNotFoundError(resource, id)
	}
	return apperrors.NewStoreUnavailableError(op, err)
}
