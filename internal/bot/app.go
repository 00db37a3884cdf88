// Package bot wires the gating chain, the dialog engine and the router into
// one event handler.
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/open-builders/school-bot/internal/chat"
	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/common/logger"
	"github.com/open-builders/school-bot/internal/flows"
	"github.com/open-builders/school-bot/internal/messages"
	"github.com/open-builders/school-bot/internal/repository"
	"github.com/open-builders/school-bot/internal/scene"
	"github.com/open-builders/school-bot/internal/service/membership"
	"github.com/open-builders/school-bot/internal/service/profile"
)

// Options configure an App.
type Options struct {
	Messenger chat.Messenger
	Store     *repository.Store
	Sessions  scene.Store
	Rewards   profile.Rewards
}

// App handles inbound events.
type App struct {
	messenger  chat.Messenger
	store      *repository.Store
	profile    *profile.Service
	membership *membership.Service
	engine     *scene.Engine
	dispatcher *Dispatcher
}

func New(opts Options) *App {
	a := &App{
		messenger:  opts.Messenger,
		store:      opts.Store,
		profile:    profile.NewService(opts.Store, opts.Rewards),
		membership: membership.NewService(opts.Store.ForcedChannels, opts.Messenger),
	}
	a.engine = scene.NewEngine(opts.Sessions, flows.Scenes(flows.Deps{
		Messenger: opts.Messenger,
		Store:     opts.Store,
		Profile:   a.profile,
		MainMenu:  a.sendMainMenu,
	})...)
	a.dispatcher = NewDispatcher(a.Handle)
	return a
}

// Start enables Submit with ctx as the parent of every event context.
func (a *App) Start(ctx context.Context) {
	a.dispatcher.Start(ctx)
}

// Submit queues ev for processing in per-user order.
func (a *App) Submit(ev *chat.Event) bool {
	return a.dispatcher.Submit(ev)
}

// Close waits for queued events.
func (a *App) Close() {
	a.dispatcher.Close()
}

// Handle processes one event synchronously. It never fails: errors and
// panics end up as a generic reply and a cleared dialog.
func (a *App) Handle(ctx context.Context, ev *chat.Event) {
	ctx, log := logger.ForEvent(ctx, uuid.NewString(), ev.UserID, ev.ChatID)
	log.Debug().
		Str("kind", ev.Kind.String()).
		Str("command", ev.Command).
		Str("action", ev.Action.Data()).
		Msg("event received")

	defer func() {
		if r := recover(); r != nil {
			a.fail(ctx, ev, fmt.Errorf("panic: %v", r))
		}
		chat.Answer(ctx, a.messenger, ev, "", false)
	}()

	if err := a.process(ctx, ev); err != nil {
		a.fail(ctx, ev, err)
	}
}

func (a *App) process(ctx context.Context, ev *chat.Event) error {
	if ev.Kind == chat.KindChatMember {
		return a.handleBotMembership(ctx, ev)
	}
	if ev.UserID == 0 {
		// channel posts
		if ev.IsCommand(cmdPromoteChannel) {
			return a.promoteFromChat(ctx, ev)
		}
		return nil
	}

	isAdmin := a.profile.IsAdmin(ctx, ev.UserID)
	pass, err := a.gate(ctx, ev, isAdmin)
	if err != nil || !pass {
		return err
	}
	return a.route(ctx, ev, isAdmin)
}

// fail is the top-level recovery: log, clear the dialog, tell the user.
func (a *App) fail(ctx context.Context, ev *chat.Event, err error) {
	log := logger.Ctx(ctx)
	if errors.Is(err, chat.ErrForbidden) {
		log.Warn().Err(err).Msg("bot blocked or removed")
		return
	}
	log.Error().Err(err).Msg("event handling failed")

	if ev.UserID != 0 {
		if leaveErr := a.engine.Leave(ctx, ev.UserID); leaveErr != nil {
			log.Error().Err(leaveErr).Msg("failed to clear dialog")
		}
	}
	if !ev.Private() {
		return
	}

	text := messages.ErrorGeneralInFlow()
	if apperrors.IsUnavailable(err) {
		text = messages.ErrorStoreOffline
	}
	chat.Answer(ctx, a.messenger, ev, "", false)
	chat.Reply(ctx, a.messenger, ev, text, chat.RemoveKeyboard())
}
