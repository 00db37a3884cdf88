// Package memory is an in-process profile store used with STORE_DRIVER=memory
// and in tests. It follows the semantics of the Mongo store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/domain/admin"
	"github.com/open-builders/school-bot/internal/domain/channel"
	"github.com/open-builders/school-bot/internal/domain/school"
	"github.com/open-builders/school-bot/internal/domain/user"
	"github.com/open-builders/school-bot/internal/repository"
)

// NewStore returns an empty in-memory store.
func NewStore() *repository.Store {
	return &repository.Store{
		Users:             NewUsers(),
		Admin:             &Admin{},
		ForcedChannels:    NewForcedChannels(),
		AdministeredChats: NewAdministeredChats(),
		Schools:           NewSchools(),
	}
}

type Users struct {
	mu    sync.Mutex
	users map[int64]user.User
}

func NewUsers() *Users {
	return &Users{users: make(map[int64]user.User)}
}

func (r *Users) Get(_ context.Context, id int64) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user", id)
	}
	return &u, nil
}

func (r *Users) Upsert(_ context.Context, id int64, p user.Patch, merge bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || !merge {
		u = user.User{ID: id}
	}
	p.Apply(&u)
	r.users[id] = u
	return nil
}

func (r *Users) AddCoins(_ context.Context, id int64, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return apperrors.NewNotFoundError("user", id)
	}
	u.Coins += delta
	r.users[id] = u
	return nil
}

func (r *Users) GrantCompletionAward(_ context.Context, id int64, bonus int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || !u.EligibleForAward() {
		return false, nil
	}
	u.Coins += bonus
	u.ProfileCompletionAwarded = true
	r.users[id] = u
	return true, nil
}

type Admin struct {
	mu  sync.Mutex
	cfg *admin.Config
}

func (r *Admin) Get(context.Context) (*admin.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg == nil {
		return nil, apperrors.NewNotFoundError("admin config", "admin")
	}
	c := *r.cfg
	return &c, nil
}

func (r *Admin) SetAdminID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cfg = &admin.Config{AdminID: id, UpdatedAt: time.Now().UTC()}
	return nil
}

type ForcedChannels struct {
	mu       sync.Mutex
	order    []int64
	channels map[int64]channel.ForcedChannel
}

func NewForcedChannels() *ForcedChannels {
	return &ForcedChannels{channels: make(map[int64]channel.ForcedChannel)}
}

func (r *ForcedChannels) Add(_ context.Context, ch channel.ForcedChannel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.channels[ch.ChannelID]; !ok {
		r.order = append(r.order, ch.ChannelID)
	}
	if ch.CreatedAt.IsZero() {
		ch.CreatedAt = time.Now().UTC()
	}
	r.channels[ch.ChannelID] = ch
	return nil
}

func (r *ForcedChannels) List(context.Context) ([]channel.ForcedChannel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]channel.ForcedChannel, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.channels[id])
	}
	return out, nil
}

type AdministeredChats struct {
	mu    sync.Mutex
	chats map[int64]channel.AdministeredChat
}

func NewAdministeredChats() *AdministeredChats {
	return &AdministeredChats{chats: make(map[int64]channel.AdministeredChat)}
}

func (r *AdministeredChats) Upsert(_ context.Context, c channel.AdministeredChat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.LastUpdated = time.Now().UTC()
	r.chats[c.ChatID] = c
	return nil
}

func (r *AdministeredChats) Remove(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.chats, chatID)
	return nil
}

func (r *AdministeredChats) List(context.Context) ([]channel.AdministeredChat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]channel.AdministeredChat, 0, len(r.chats))
	for _, c := range r.chats {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title == out[j].Title {
			return out[i].ChatID < out[j].ChatID
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

type Schools struct {
	mu   sync.Mutex
	dirs map[string]*school.Directory
}

func NewSchools() *Schools {
	return &Schools{dirs: make(map[string]*school.Directory)}
}

func (r *Schools) Add(_ context.Context, province, city string, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := province + "/" + city
	dir, ok := r.dirs[key]
	if !ok {
		dir = &school.Directory{Province: province, City: city}
		r.dirs[key] = dir
	}
	for _, n := range names {
		if !contains(dir.SchoolNames, n) {
			dir.SchoolNames = append(dir.SchoolNames, n)
		}
	}
	dir.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *Schools) Get(_ context.Context, province, city string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir, ok := r.dirs[province+"/"+city]
	if !ok {
		return []string{}, nil
	}
	out := make([]string, len(dir.SchoolNames))
	copy(out, dir.SchoolNames)
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
