package bot

import (
	"context"
	"fmt"

	"github.com/open-builders/school-bot/internal/chat"
	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/common/logger"
	"github.com/open-builders/school-bot/internal/flows"
	"github.com/open-builders/school-bot/internal/messages"
	"github.com/open-builders/school-bot/internal/service/membership"
	"github.com/open-builders/school-bot/internal/service/profile"
)

func backToMenu() *chat.Markup {
	return chat.Inline(chat.Row(chat.CallbackButton(messages.BackToMainMenuButton, chat.NewAction(chat.ActShowMainMenu))))
}

func mainMenuMarkup(isAdmin bool) *chat.Markup {
	m := chat.Inline(
		chat.Row(
			chat.CallbackButton(messages.BtnProfile, chat.NewAction(chat.ActShowProfile)),
			chat.CallbackButton(messages.BtnCoins, chat.NewAction(chat.ActShowCoins)),
		),
		chat.Row(chat.CallbackButton(messages.BtnAnonymousChat, chat.NewAction(chat.ActAnonymousChat))),
		chat.Row(chat.CallbackButton(messages.BtnSubmitReview, chat.NewAction(chat.ActSubmitReview))),
		chat.Row(chat.CallbackButton(messages.BtnNearbyReviews, chat.NewAction(chat.ActNearbyReviews))),
	)
	if isAdmin {
		m.Append(chat.Row(chat.CallbackButton(messages.BtnAdminPanel, chat.NewAction(chat.ActAdminPanel))))
	}
	return m
}

// renderMainMenu shows the main menu, editing the pressed message when
// inPlace is set.
func (a *App) renderMainMenu(ctx context.Context, ev *chat.Event, isAdmin bool, text string, inPlace bool) error {
	if text == "" {
		text = messages.WelcomeBack
	}
	chat.Answer(ctx, a.messenger, ev, "", false)
	if inPlace {
		chat.Render(ctx, a.messenger, ev, text, mainMenuMarkup(isAdmin))
	} else {
		chat.Reply(ctx, a.messenger, ev, text, mainMenuMarkup(isAdmin))
	}
	return nil
}

// sendMainMenu is the post-registration handoff used by the dialogs.
func (a *App) sendMainMenu(ctx context.Context, ev *chat.Event) error {
	return a.renderMainMenu(ctx, ev, a.profile.IsAdmin(ctx, ev.UserID), "", false)
}

// start is first contact: bootstrap, then registration or the main menu.
func (a *App) start(ctx context.Context, ev *chat.Event) error {
	res, err := a.profile.Bootstrap(ctx, profile.Newcomer{
		UserID:    ev.UserID,
		FirstName: ev.FirstName,
		Username:  ev.Username,
		Payload:   ev.Payload,
	})
	if err != nil {
		if apperrors.IsUnavailable(err) {
			chat.Reply(ctx, a.messenger, ev, messages.ErrorStoreOffline, nil)
			return nil
		}
		return err
	}

	if res.BecameAdmin {
		chat.Reply(ctx, a.messenger, ev, messages.FirstAdmin, nil)
	}
	if res.Created {
		chat.Reply(ctx, a.messenger, ev, messages.WelcomeNewUser(res.User.Coins), nil)
	}
	if res.Inviter != nil {
		chat.SendTo(ctx, a.messenger, res.Inviter.ID, messages.InviterAward(ev.FirstName, a.profile.Rewards().ReferralBonus), nil)
	}

	if !res.User.InitialRegistrationComplete() {
		chat.Reply(ctx, a.messenger, ev, messages.CompleteInitialRegistration, nil)
		return a.engine.Enter(ctx, ev, flows.InitialRegistration, nil)
	}

	var text string
	justRegistered, err := a.engine.ConsumeJustRegistered(ctx, ev.UserID)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("failed to clear registration flag")
	}
	if justRegistered {
		text = messages.MenuAfterRegistration()
	}
	isAdmin := res.BecameAdmin || a.profile.IsAdmin(ctx, ev.UserID)
	return a.renderMainMenu(ctx, ev, isAdmin, text, false)
}

func (a *App) showProfile(ctx context.Context, ev *chat.Event) error {
	chat.Answer(ctx, a.messenger, ev, "", false)
	u, err := a.profile.Get(ctx, ev.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			chat.Reply(ctx, a.messenger, ev, messages.UserInfoNotFound, nil)
			return nil
		}
		return err
	}

	card := messages.ProfileCard{
		Name:     u.Name,
		Age:      u.Age,
		Gender:   string(u.Gender),
		Province: u.Province,
		City:     u.City,
		School:   u.School,
		Phone:    u.PhoneNumber,
		Coins:    u.Coins,
	}

	var buttons []chat.Button
	if u.Name == "" {
		buttons = append(buttons, chat.CallbackButton(messages.BtnEnterName, chat.NewAction(chat.ActEnterName)))
	}
	if u.Age == 0 {
		buttons = append(buttons, chat.CallbackButton(messages.BtnEnterAge, chat.NewAction(chat.ActEnterAge)))
	}
	if u.School == "" {
		buttons = append(buttons, chat.CallbackButton(messages.BtnSelectSchool, chat.NewAction(chat.ActSelectSchool)))
	}
	if u.PhoneNumber == "" {
		buttons = append(buttons, chat.CallbackButton(messages.BtnEnterPhone, chat.NewAction(chat.ActEnterPhone)))
	}
	buttons = append(buttons, chat.CallbackButton(messages.BackToMainMenuButton, chat.NewAction(chat.ActShowMainMenu)))

	chat.Render(ctx, a.messenger, ev, card.String(), chat.Columns(2, buttons...))
	return nil
}

// ReferralLink is the deep link that credits userID when followed.
func ReferralLink(botUsername string, userID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%d", botUsername, userID)
}

func (a *App) showCoins(ctx context.Context, ev *chat.Event) error {
	chat.Answer(ctx, a.messenger, ev, "", false)
	u, err := a.profile.Get(ctx, ev.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			chat.Reply(ctx, a.messenger, ev, messages.UserInfoNotFound, nil)
			return nil
		}
		return err
	}
	link := ReferralLink(a.messenger.BotUsername(), ev.UserID)
	text := messages.CoinsBalance(u.Coins) + "\n\n" + messages.ReferralLink(link)
	chat.Render(ctx, a.messenger, ev, text, backToMenu())
	return nil
}

// refreshJoin re-checks forced membership after the user says they joined.
func (a *App) refreshJoin(ctx context.Context, ev *chat.Event) error {
	chat.Answer(ctx, a.messenger, ev, messages.ForcedJoinRefreshing, false)
	chat.DeleteSource(ctx, a.messenger, ev)

	unjoined, err := a.membership.Unjoined(ctx, ev.UserID)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("forced channels unavailable, skipping membership check")
	}
	if len(unjoined) > 0 {
		chat.Reply(ctx, a.messenger, ev, messages.ForcedJoinStillUnjoined, membership.JoinMarkup(unjoined))
		return nil
	}

	u, err := a.profile.Get(ctx, ev.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			chat.Reply(ctx, a.messenger, ev, messages.ForcedJoinRegisterStart, nil)
			return nil
		}
		return err
	}
	if !u.InitialRegistrationComplete() {
		chat.Reply(ctx, a.messenger, ev, messages.ForcedJoinCompleteInfo, nil)
		return a.engine.Enter(ctx, ev, flows.InitialRegistration, nil)
	}
	return a.renderMainMenu(ctx, ev, a.profile.IsAdmin(ctx, ev.UserID), messages.ForcedJoinAllDone, false)
}
