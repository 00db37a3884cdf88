package flows

import (
	"context"

	"github.com/open-builders/school-bot/internal/chat"
	"github.com/open-builders/school-bot/internal/common/logger"
	"github.com/open-builders/school-bot/internal/domain/school"
	"github.com/open-builders/school-bot/internal/domain/user"
	"github.com/open-builders/school-bot/internal/messages"
	"github.com/open-builders/school-bot/internal/scene"
)

const (
	regStepGender = iota
	regStepProvince
	regStepCity
)

func genderMarkup() *chat.Markup {
	return chat.Inline(chat.Row(
		chat.CallbackButton(messages.BtnMale, chat.NewAction(chat.ActGender, string(user.GenderMale))),
		chat.CallbackButton(messages.BtnFemale, chat.NewAction(chat.ActGender, string(user.GenderFemale))),
	))
}

// ProvinceMarkup lists the provinces as buttons of the given action kind.
func ProvinceMarkup(kind chat.ActionKind) *chat.Markup {
	var buttons []chat.Button
	for _, p := range school.Provinces() {
		buttons = append(buttons, chat.CallbackButton(p, chat.NewAction(kind, p)))
	}
	return chat.Columns(2, buttons...)
}

// CityMarkup lists the sorted cities of province as buttons of the given
// action kind.
func CityMarkup(kind chat.ActionKind, province string) *chat.Markup {
	var buttons []chat.Button
	for _, c := range school.Cities(province) {
		buttons = append(buttons, chat.CallbackButton(c, chat.NewAction(kind, c)))
	}
	return chat.Columns(2, buttons...)
}

// registration collects gender, province and city.
func (f *flows) registration() *scene.Scene {
	return &scene.Scene{
		Name: InitialRegistration,
		Enter: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
			f.reply(ctx, s, messages.InitialRegistrationGuide, genderMarkup())
			return scene.Await, nil
		},
		Actions: map[chat.ActionKind]scene.Handler{
			chat.ActGender:   f.registrationGender,
			chat.ActProvince: f.registrationProvince,
			chat.ActCity:     f.registrationCity,
		},
		Fallback: f.replyAwait(messages.ChooseOption),
	}
}

func (f *flows) registrationGender(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
	g := user.Gender(s.Event.Action.Value)
	if s.Step() != regStepGender || (g != user.GenderMale && g != user.GenderFemale) {
		return f.invalidStage(ctx, s)
	}
	s.State["gender"] = string(g)
	s.Goto(regStepProvince)
	f.render(ctx, s, messages.GenderChosen(string(g)), ProvinceMarkup(chat.ActProvince))
	return scene.Await, nil
}

func (f *flows) registrationProvince(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
	province := s.Event.Action.Value
	if s.Step() != regStepProvince || !school.ValidProvince(province) {
		return f.invalidStage(ctx, s)
	}
	s.State["province"] = province
	s.Goto(regStepCity)
	f.render(ctx, s, messages.ProvinceChosen(province), CityMarkup(chat.ActCity, province))
	return scene.Await, nil
}

func (f *flows) registrationCity(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
	gender := user.Gender(s.State.String("gender"))
	province := s.State.String("province")
	city := s.Event.Action.Value
	if s.Step() != regStepCity || !school.ValidCity(province, city) {
		return f.invalidStage(ctx, s)
	}
	if gender == user.GenderUnset || province == "" {
		chat.Answer(ctx, f.Messenger, s.Event, "", false)
		f.reply(ctx, s, messages.RegistrationIncomplete, nil)
		return scene.Leave, nil
	}

	if _, err := f.Profile.Update(ctx, s.UserID(), user.Patch{
		Gender:   &gender,
		Province: &province,
		City:     &city,
	}); err != nil {
		return scene.Leave, err
	}
	logger.Ctx(ctx).Info().Str("province", province).Str("city", city).Msg("initial registration completed")

	f.render(ctx, s, messages.RegistrationSuccess(string(gender), province, city), nil)
	f.reply(ctx, s, messages.RegistrationGuideMainMenu, nil)
	s.MarkJustRegistered()
	s.Then(func(ctx context.Context) error {
		return f.MainMenu(ctx, s.Event)
	})
	return scene.Leave, nil
}
