package repository

import (
	"context"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/domain/admin"
	"github.com/open-builders/school-bot/internal/domain/channel"
	"github.com/open-builders/school-bot/internal/domain/user"
)

// Unavailable returns a store whose every operation fails with
// STORE_UNAVAILABLE. It backs the bot when no store is configured or the
// connection could not be established.
func Unavailable() *Store {
	u := unavailable{}
	return &Store{
		Users:             u,
		Admin:             unavailableAdmin{},
		ForcedChannels:    unavailableForced{},
		AdministeredChats: unavailableChats{},
		Schools:           unavailableSchools{},
		Ping: func(context.Context) error {
			return apperrors.NewStoreUnavailableError("ping", nil)
		},
	}
}

func errUnavailable(op string) error {
	return apperrors.NewStoreUnavailableError(op, nil)
}

type unavailable struct{}

func (unavailable) Get(context.Context, int64) (*user.User, error) {
	return nil, errUnavailable("get user")
}

func (unavailable) Upsert(context.Context, int64, user.Patch, bool) error {
	return errUnavailable("upsert user")
}

func (unavailable) AddCoins(context.Context, int64, int) error {
	return errUnavailable("add coins")
}

func (unavailable) GrantCompletionAward(context.Context, int64, int) (bool, error) {
	return false, errUnavailable("grant completion award")
}

type unavailableAdmin struct{}

func (unavailableAdmin) Get(context.Context) (*admin.Config, error) {
	return nil, errUnavailable("get admin config")
}

func (unavailableAdmin) SetAdminID(context.Context, int64) error {
	return errUnavailable("set admin id")
}

type unavailableForced struct{}

func (unavailableForced) Add(context.Context, channel.ForcedChannel) error {
	return errUnavailable("add forced channel")
}

func (unavailableForced) List(context.Context) ([]channel.ForcedChannel, error) {
	return nil, errUnavailable("list forced channels")
}

type unavailableChats struct{}

func (unavailableChats) Upsert(context.Context, channel.AdministeredChat) error {
	return errUnavailable("upsert administered chat")
}

func (unavailableChats) Remove(context.Context, int64) error {
	return errUnavailable("remove administered chat")
}

func (unavailableChats) List(context.Context) ([]channel.AdministeredChat, error) {
	return nil, errUnavailable("list administered chats")
}

type unavailableSchools struct{}

func (unavailableSchools) Add(context.Context, string, string, []string) error {
	return errUnavailable("add schools")
}

func (unavailableSchools) Get(context.Context, string, string) ([]string, error) {
	return nil, errUnavailable("get schools")
}
