// Package flows defines the dialogs of the bot on top of the scene engine.
package flows

import (
	"context"

	"github.com/open-builders/school-bot/internal/chat"
	"github.com/open-builders/school-bot/internal/messages"
	"github.com/open-builders/school-bot/internal/repository"
	"github.com/open-builders/school-bot/internal/scene"
	"github.com/open-builders/school-bot/internal/service/profile"
)

// Scene names.
const (
	InitialRegistration = "initial_registration"
	EnterName           = "enter_name"
	EnterAge            = "enter_age"
	SelectSchool        = "select_school"
	EnterPhone          = "enter_phone"
	ChannelButtonText   = "channel_button_text"
	ManageSchools       = "manage_schools"
)

// State keys shared with the code that enters the scenes.
const (
	KeyChannelID    = "channelId"
	KeyChannelTitle = "channelTitle"
	KeyChannelLink  = "channelLink"
)

// Deps are the collaborators of the flows.
type Deps struct {
	Messenger chat.Messenger
	Store     *repository.Store
	Profile   *profile.Service
	// MainMenu renders the main menu to the sender of ev.
	MainMenu func(ctx context.Context, ev *chat.Event) error
}

// Scenes returns every flow, ready to be registered with an engine.
func Scenes(d Deps) []*scene.Scene {
	f := &flows{Deps: d}
	return []*scene.Scene{
		f.registration(),
		f.enterName(),
		f.enterAge(),
		f.selectSchool(),
		f.enterPhone(),
		f.channelButtonText(),
		f.manageSchools(),
	}
}

type flows struct {
	Deps
}

func (f *flows) reply(ctx context.Context, s *scene.Scope, text string, markup *chat.Markup) {
	chat.Reply(ctx, f.Messenger, s.Event, text, markup)
}

func (f *flows) render(ctx context.Context, s *scene.Scope, text string, markup *chat.Markup) {
	chat.Answer(ctx, f.Messenger, s.Event, "", false)
	chat.Render(ctx, f.Messenger, s.Event, text, markup)
}

// invalidStage answers an out-of-step button press and keeps waiting.
func (f *flows) invalidStage(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
	chat.Answer(ctx, f.Messenger, s.Event, messages.InvalidStage, true)
	return scene.Await, nil
}

// replyAwait answers with text and keeps the scene waiting.
func (f *flows) replyAwait(text string) scene.Handler {
	return func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
		chat.Answer(ctx, f.Messenger, s.Event, "", false)
		f.reply(ctx, s, text, nil)
		return scene.Await, nil
	}
}

// notifyAward tells the user about a freshly granted completion award.
func (f *flows) notifyAward(ctx context.Context, s *scene.Scope, awarded bool) {
	if awarded {
		f.reply(ctx, s, messages.CompletionAward(f.Profile.Rewards().CompletionBonus), nil)
	}
}
