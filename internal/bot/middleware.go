package bot

import (
	"context"

	"github.com/open-builders/school-bot/internal/chat"
	apperrors "github.com/open-builders/school-bot/internal/common/errors"
	"github.com/open-builders/school-bot/internal/common/logger"
	"github.com/open-builders/school-bot/internal/flows"
	"github.com/open-builders/school-bot/internal/messages"
	"github.com/open-builders/school-bot/internal/service/membership"
)

// bypassesGate lists the commands and buttons that always reach the router.
func bypassesGate(ev *chat.Event) bool {
	switch ev.Kind {
	case chat.KindCommand:
		return ev.Command == cmdStart || ev.Command == cmdMenu
	case chat.KindCallback:
		switch ev.Action.Kind {
		case chat.ActShowMainMenu, chat.ActRefreshJoin, chat.ActAdminPanel:
			return true
		}
	}
	return false
}

// gate runs the pre-routing checks. It reports false when the event was
// answered here and must not reach the router.
//
// Admins, and everything outside private chats, skip the membership and
// profile checks.
func (a *App) gate(ctx context.Context, ev *chat.Event, isAdmin bool) (bool, error) {
	if bypassesGate(ev) {
		return true, nil
	}
	active, err := a.engine.Active(ctx, ev.UserID)
	if err != nil {
		return false, err
	}
	if active != "" || isAdmin || !ev.Private() {
		return true, nil
	}

	unjoined, err := a.membership.Unjoined(ctx, ev.UserID)
	switch {
	case err != nil:
		logger.Ctx(ctx).Warn().Err(err).Msg("forced channels unavailable, skipping membership check")
	case len(unjoined) > 0:
		chat.Answer(ctx, a.messenger, ev, "", false)
		chat.Reply(ctx, a.messenger, ev, messages.ForcedJoinPrompt, membership.JoinMarkup(unjoined))
		return false, nil
	}

	u, err := a.profile.Get(ctx, ev.UserID)
	if err != nil {
		switch {
		case apperrors.IsNotFound(err):
			chat.Reply(ctx, a.messenger, ev, messages.PleaseStart, nil)
			return false, nil
		case apperrors.IsUnavailable(err):
			chat.Reply(ctx, a.messenger, ev, messages.ErrorStoreOffline, nil)
			return false, nil
		}
		return false, err
	}
	if !u.InitialRegistrationComplete() {
		chat.Answer(ctx, a.messenger, ev, "", false)
		chat.Reply(ctx, a.messenger, ev, messages.CompleteInitialRegistration, nil)
		return false, a.engine.Enter(ctx, ev, flows.InitialRegistration, nil)
	}
	return true, nil
}
