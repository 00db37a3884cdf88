package flows

import (
	"context"
	"time"

	"github.com/open-builders/school-bot/internal/chat"
	"github.com/open-builders/school-bot/internal/common/logger"
	"github.com/open-builders/school-bot/internal/common/validation"
	"github.com/open-builders/school-bot/internal/domain/channel"
	"github.com/open-builders/school-bot/internal/domain/school"
	"github.com/open-builders/school-bot/internal/messages"
	"github.com/open-builders/school-bot/internal/scene"
)

const (
	channelStepText = iota
	channelStepConfirm
)

type channelDraft struct {
	id    int64
	title string
	link  string
}

func draftFrom(st scene.State) channelDraft {
	return channelDraft{
		id:    st.Int64(KeyChannelID),
		title: st.String(KeyChannelTitle),
		link:  st.String(KeyChannelLink),
	}
}

func (d channelDraft) shownLink() string {
	if d.link == "" {
		return messages.AdminLinkUnavailable
	}
	return d.link
}

// channelButtonText asks the admin for the label of a new forced channel.
// The entering code seeds the channel id, title and invite link.
func (f *flows) channelButtonText() *scene.Scene {
	return &scene.Scene{
		Name: ChannelButtonText,
		Enter: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
			d := draftFrom(s.State)
			if d.id == 0 {
				f.reply(ctx, s, messages.AdminChannelInfoMissing, nil)
				return scene.Leave, nil
			}
			f.reply(ctx, s, messages.AdminButtonTextPrompt(d.title, d.id, d.shownLink()), nil)
			return scene.Await, nil
		},
		// text in the confirm step replaces the label and asks again
		OnText: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
			text, err := validation.ValidateButtonText(s.Event.Text)
			if err != nil {
				f.reply(ctx, s, messages.AdminButtonTextInvalid, nil)
				return scene.Await, nil
			}
			s.State["buttonText"] = text
			s.Goto(channelStepConfirm)

			d := draftFrom(s.State)
			f.reply(ctx, s, messages.AdminConfirmAdd(d.title, d.id, d.shownLink(), text), chat.Inline(chat.Row(
				chat.CallbackButton(messages.BtnConfirmChannel, chat.NewAction(chat.ActConfirmChannel)),
				chat.CallbackButton(messages.BtnCancel, chat.NewAction(chat.ActCancelChannel)),
			)))
			return scene.Await, nil
		},
		Actions: map[chat.ActionKind]scene.Handler{
			chat.ActConfirmChannel: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
				if s.Step() != channelStepConfirm {
					return f.invalidStage(ctx, s)
				}
				d := draftFrom(s.State)
				ch := channel.ForcedChannel{
					ChannelID: d.id,
					Link:      d.link,
					Text:      s.State.String("buttonText"),
					CreatedAt: time.Now().UTC(),
				}
				if err := f.Store.ForcedChannels.Add(ctx, ch); err != nil {
					return scene.Leave, err
				}
				logger.Ctx(ctx).Info().Int64("channel_id", ch.ChannelID).Msg("forced channel added")
				f.render(ctx, s, messages.AdminChannelAdded(d.title, d.id), nil)
				return scene.Leave, nil
			},
			chat.ActCancelChannel: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
				f.render(ctx, s, messages.AdminChannelAddCancel, nil)
				return scene.Leave, nil
			},
		},
		Fallback: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
			chat.Answer(ctx, f.Messenger, s.Event, "", false)
			if s.Step() == channelStepConfirm {
				f.reply(ctx, s, messages.AdminConfirmOrCancel, nil)
			} else {
				f.reply(ctx, s, messages.AdminButtonTextAsText, nil)
			}
			return scene.Await, nil
		},
	}
}

const (
	schoolStepProvince = iota
	schoolStepCity
	schoolStepNames
)

func schoolControls() []chat.Button {
	return chat.Row(
		chat.CallbackButton(messages.BtnFinishSchools, chat.NewAction(chat.ActFinishSchools)),
		chat.CallbackButton(messages.BtnCancelSchools, chat.NewAction(chat.ActCancelSchools)),
	)
}

// manageSchools lets the admin add a batch of schools to one city.
func (f *flows) manageSchools() *scene.Scene {
	return &scene.Scene{
		Name: ManageSchools,
		Enter: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
			f.render(ctx, s, messages.AdminSchoolMgmtTitle+messages.AdminSchoolProvincePrompt, ProvinceMarkup(chat.ActProvince))
			return scene.Await, nil
		},
		Actions: map[chat.ActionKind]scene.Handler{
			chat.ActProvince:      f.schoolsProvince,
			chat.ActCity:          f.schoolsCity,
			chat.ActFinishSchools: f.schoolsFinish,
			chat.ActCancelSchools: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
				f.render(ctx, s, messages.AdminSchoolMgmtCancel, nil)
				return scene.Leave, nil
			},
		},
		OnText: f.schoolsName,
		Fallback: func(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
			chat.Answer(ctx, f.Messenger, s.Event, "", false)
			if s.Step() == schoolStepNames {
				f.reply(ctx, s, messages.AdminSchoolFallbackAdd, nil)
			} else {
				f.reply(ctx, s, messages.AdminSchoolFallbackChoose, nil)
			}
			return scene.Await, nil
		},
	}
}

func (f *flows) schoolsProvince(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
	province := s.Event.Action.Value
	if s.Step() != schoolStepProvince || !school.ValidProvince(province) {
		return f.invalidStage(ctx, s)
	}
	s.State["province"] = province
	s.Goto(schoolStepCity)
	f.render(ctx, s, messages.AdminSchoolCityPrompt(province), CityMarkup(chat.ActCity, province))
	return scene.Await, nil
}

func (f *flows) schoolsCity(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
	province := s.State.String("province")
	city := s.Event.Action.Value
	if s.Step() != schoolStepCity || !school.ValidCity(province, city) {
		return f.invalidStage(ctx, s)
	}
	existing, err := f.Store.Schools.Get(ctx, province, city)
	if err != nil {
		return scene.Leave, err
	}
	s.State["city"] = city
	s.State["newSchools"] = []string{}
	s.Goto(schoolStepNames)
	f.render(ctx, s, messages.AdminSchoolAddPrompt(province, city, existing), chat.Inline(schoolControls()))
	return scene.Await, nil
}

func (f *flows) schoolsName(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
	if s.Step() != schoolStepNames {
		f.reply(ctx, s, messages.AdminSchoolFallbackChoose, nil)
		return scene.Await, nil
	}
	name, err := validation.ValidateSchoolName(s.Event.Text)
	if err != nil {
		f.reply(ctx, s, messages.AdminSchoolNameInvalid, nil)
		return scene.Await, nil
	}
	queued := s.State.Strings("newSchools")
	for _, q := range queued {
		if q == name {
			f.reply(ctx, s, messages.AdminSchoolAlreadyQueued(name), nil)
			return scene.Await, nil
		}
	}
	queued = append(queued, name)
	s.State["newSchools"] = queued
	f.reply(ctx, s, messages.AdminSchoolQueued(name, queued), chat.Inline(schoolControls()))
	return scene.Await, nil
}

func (f *flows) schoolsFinish(ctx context.Context, s *scene.Scope) (scene.Outcome, error) {
	if s.Step() != schoolStepNames {
		return f.invalidStage(ctx, s)
	}
	province, city := s.State.String("province"), s.State.String("city")
	if province == "" || city == "" {
		f.render(ctx, s, messages.AdminSchoolNoProvinceCity, nil)
		return scene.Leave, nil
	}
	queued := s.State.Strings("newSchools")
	if len(queued) == 0 {
		f.render(ctx, s, messages.AdminSchoolSaveNoNew, nil)
		return scene.Leave, nil
	}
	if err := f.Store.Schools.Add(ctx, province, city, queued); err != nil {
		return scene.Leave, err
	}
	logger.Ctx(ctx).Info().Str("province", province).Str("city", city).Int("count", len(queued)).Msg("schools saved")
	f.render(ctx, s, messages.AdminSchoolsSaved(city, province, queued), nil)
	return scene.Leave, nil
}
