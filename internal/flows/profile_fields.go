package flows

import (
	"context"
	"sort"
	"strconv"

	"github.com/open-builders/school-bot/internal/chat"
	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/common/logger"
	"github.com/open-builders/school-bot/internal/common/validation"
	"github.com/open-builders/school-bot/internal/domain/user"
	"github.com/open-builders/school-bot/internal/messages"
	"github.com/open-builders/school-bot/internal/scene"
)

func (f *flows) prompt(text string, markup func() *chat.Markup) scene.Handler {
	return func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
		var m *chat.Markup
		if markup != nil {
			m = markup()
		}
		f.reply(ctx, s, text, m)
		return scene.Await, nil
	}
}

func (f *flows) enterName() *scene.Scene {
	return &scene.Scene{
		Name:  EnterName,
		Enter: f.prompt(messages.NamePrompt, nil),
		OnText: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
			name, err := validation.ValidateName(s.Event.Text)
			if err != nil {
				f.reply(ctx, s, messages.NameInvalid, nil)
				f.reply(ctx, s, messages.NamePrompt, nil)
				return scene.Await, nil
			}
			awarded, err := f.Profile.Update(ctx, s.UserID(), user.Patch{Name: &name})
			if err != nil {
				return scene.Leave, err
			}
			f.reply(ctx, s, messages.NameSuccess(name), nil)
			f.notifyAward(ctx, s, awarded)
			return scene.Leave, nil
		},
		Fallback: f.replyAwait(messages.NameTextOnly),
	}
}

func (f *flows) enterAge() *scene.Scene {
	return &scene.Scene{
		Name:  EnterAge,
		Enter: f.prompt(messages.AgePrompt, nil),
		OnText: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
			age, err := validation.ValidateAge(s.Event.Text)
			if err != nil {
				f.reply(ctx, s, messages.AgeInvalid, nil)
				f.reply(ctx, s, messages.AgePrompt, nil)
				return scene.Await, nil
			}
			awarded, err := f.Profile.Update(ctx, s.UserID(), user.Patch{Age: &age})
			if err != nil {
				return scene.Leave, err
			}
			f.reply(ctx, s, messages.AgeSuccess(age), nil)
			f.notifyAward(ctx, s, awarded)
			return scene.Leave, nil
		},
		Fallback: f.replyAwait(messages.AgeTextOnly),
	}
}

// selectSchool offers the schools of the user's city. Buttons carry the list
// index; the sorted list is kept in the scene state.
func (f *flows) selectSchool() *scene.Scene {
	return &scene.Scene{
		Name: SelectSchool,
		Enter: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
			u, err := f.Profile.Get(ctx, s.UserID())
			if err != nil {
				if apperrors.IsNotFound(err) {
					f.reply(ctx, s, messages.UserInfoNotFound, nil)
					return scene.Leave, nil
				}
				return scene.Leave, err
			}
			if u.Province == "" || u.City == "" {
				f.reply(ctx, s, messages.SchoolLocationUnset, nil)
				return scene.Leave, nil
			}

			schools, err := f.Store.Schools.Get(ctx, u.Province, u.City)
			if err != nil {
				return scene.Leave, err
			}
			if len(schools) == 0 {
				logger.Ctx(ctx).Warn().Str("province", u.Province).Str("city", u.City).Msg("no schools for city")
				f.reply(ctx, s, messages.NoSchoolsForCity(u.City, u.Province), nil)
				return scene.Leave, nil
			}
			sort.Strings(schools)
			s.State["schools"] = schools

			buttons := make([]chat.Button, 0, len(schools))
			for i, name := range schools {
				buttons = append(buttons, chat.CallbackButton(name, chat.IntAction(chat.ActSchool, int64(i))))
			}
			f.reply(ctx, s, messages.SchoolPrompt, chat.Columns(1, buttons...))
			return scene.Await, nil
		},
		Actions: map[chat.ActionKind]scene.Handler{
			chat.ActSchool: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
				schools := s.State.Strings("schools")
				i, ok := s.Event.Action.Int64()
				if !ok || i < 0 || int(i) >= len(schools) {
					chat.Answer(ctx, f.Messenger, s.Event, messages.SchoolNotFound, true)
					return scene.Await, nil
				}
				name := schools[i]
				awarded, err := f.Profile.Update(ctx, s.UserID(), user.Patch{School: &name})
				if err != nil {
					return scene.Leave, err
				}
				f.render(ctx, s, messages.SchoolSuccess(name), nil)
				f.notifyAward(ctx, s, awarded)
				return scene.Leave, nil
			},
		},
		Fallback: f.replyAwait(messages.ChooseOption),
	}
}

func contactMarkup() *chat.Markup {
	return chat.ContactRequest(messages.PhoneButton)
}

func (f *flows) enterPhone() *scene.Scene {
	return &scene.Scene{
		Name:  EnterPhone,
		Enter: f.prompt(messages.PhonePrompt, contactMarkup),
		OnContact: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
			c := s.Event.Contact
			if c == nil || c.UserID != s.UserID() {
				logger.Ctx(ctx).Warn().Str("owner", ownerID(c)).Msg("foreign contact shared")
				f.reply(ctx, s, messages.PhoneNotOwn, chat.RemoveKeyboard())
				f.reply(ctx, s, messages.PhonePrompt, contactMarkup())
				return scene.Await, nil
			}
			phone := c.PhoneNumber
			awarded, err := f.Profile.Update(ctx, s.UserID(), user.Patch{PhoneNumber: &phone})
			if err != nil {
				return scene.Leave, err
			}
			f.reply(ctx, s, messages.PhoneSuccess(phone), chat.RemoveKeyboard())
			f.notifyAward(ctx, s, awarded)
			return scene.Leave, nil
		},
		Fallback: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
			chat.Answer(ctx, f.Messenger, s.Event, "", false)
			f.reply(ctx, s, messages.PhoneUseButton, contactMarkup())
			return scene.Await, nil
		},
	}
}

func ownerID(c *chat.Contact) string {
	if c == nil {
		return ""
	}
	return strconv.FormatInt(c.UserID, 10)
}
