package bot

import (
	"context"

	"github.com/open-builders/school-bot/internal/chat"
	"github.com/open-builders/school-bot/internal/common/logger"
	"github.com/open-builders/school-bot/internal/flows"
	"github.com/open-builders/school-bot/internal/messages"
)

const (
	cmdStart          = "start"
	cmdMenu           = "menu"
	cmdAdmin          = "admin"
	cmdCancel         = "cancel"
	cmdPromoteChannel = "promote_channel"
)

// fieldScenes maps the profile edit buttons to their dialogs.
var fieldScenes = map[chat.ActionKind]string{
	chat.ActEnterName:    flows.EnterName,
	chat.ActEnterAge:     flows.EnterAge,
	chat.ActSelectSchool: flows.SelectSchool,
	chat.ActEnterPhone:   flows.EnterPhone,
}

// leavesFlow reports whether ev abandons an active dialog before routing.
func leavesFlow(ev *chat.Event) bool {
	switch ev.Kind {
	case chat.KindCommand:
		switch ev.Command {
		case cmdStart, cmdMenu, cmdAdmin:
			return true
		}
	case chat.KindCallback:
		return ev.Action.Kind == chat.ActShowMainMenu || ev.Action.Kind == chat.ActAdminPanel
	}
	return false
}

func (a *App) route(ctx context.Context, ev *chat.Event, isAdmin bool) error {
	if !ev.Private() {
		if ev.IsCommand(cmdPromoteChannel) {
			return a.promoteFromChat(ctx, ev)
		}
		return nil
	}

	switch {
	case ev.IsCommand(cmdCancel):
		if err := a.engine.Leave(ctx, ev.UserID); err != nil {
			return err
		}
		chat.Reply(ctx, a.messenger, ev, messages.CommandCancelled, chat.RemoveKeyboard())
		return nil
	case leavesFlow(ev):
		if err := a.engine.Leave(ctx, ev.UserID); err != nil {
			return err
		}
	default:
		handled, err := a.engine.Dispatch(ctx, ev)
		if handled || err != nil {
			return err
		}
	}

	switch ev.Kind {
	case chat.KindCommand:
		return a.routeCommand(ctx, ev, isAdmin)
	case chat.KindCallback:
		return a.routeAction(ctx, ev, isAdmin)
	}
	logger.Ctx(ctx).Debug().Str("kind", ev.Kind.String()).Msg("unrouted event")
	return nil
}

func (a *App) routeCommand(ctx context.Context, ev *chat.Event, isAdmin bool) error {
	switch ev.Command {
	case cmdStart:
		return a.start(ctx, ev)
	case cmdMenu:
		return a.renderMainMenu(ctx, ev, isAdmin, "", true)
	case cmdAdmin:
		return a.adminPanel(ctx, ev, isAdmin)
	case cmdPromoteChannel:
		chat.Reply(ctx, a.messenger, ev, messages.AdminPromoteInChannelOnly, nil)
		return nil
	}
	logger.Ctx(ctx).Debug().Str("command", ev.Command).Msg("unknown command")
	return nil
}

func (a *App) routeAction(ctx context.Context, ev *chat.Event, isAdmin bool) error {
	kind := ev.Action.Kind
	if name, ok := fieldScenes[kind]; ok {
		chat.Answer(ctx, a.messenger, ev, "", false)
		return a.engine.Enter(ctx, ev, name, nil)
	}

	switch kind {
	case chat.ActShowMainMenu:
		return a.renderMainMenu(ctx, ev, isAdmin, "", true)
	case chat.ActShowProfile:
		return a.showProfile(ctx, ev)
	case chat.ActShowCoins:
		return a.showCoins(ctx, ev)
	case chat.ActAnonymousChat, chat.ActSubmitReview, chat.ActNearbyReviews:
		chat.Answer(ctx, a.messenger, ev, messages.SectionSoonShort, false)
		chat.Render(ctx, a.messenger, ev, messages.SectionSoon, backToMenu())
		return nil
	case chat.ActRefreshJoin:
		return a.refreshJoin(ctx, ev)
	case chat.ActAdminPanel:
		return a.adminPanel(ctx, ev, isAdmin)
	case chat.ActManageChannels:
		return a.manageChannels(ctx, ev, isAdmin)
	case chat.ActManageSchools:
		if !a.requireAdmin(ctx, ev, isAdmin) {
			return nil
		}
		chat.Answer(ctx, a.messenger, ev, "", false)
		return a.engine.Enter(ctx, ev, flows.ManageSchools, nil)
	case chat.ActPromoteChat:
		return a.pickChat(ctx, ev, isAdmin)
	}
	logger.Ctx(ctx).Debug().Str("action", ev.Action.Data()).Msg("stale or unknown button")
	return nil
}
