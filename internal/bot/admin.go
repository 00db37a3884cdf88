package bot

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/open-builders/school-bot/internal/chat"
	"github.com/open-builders/school-bot/internal/common/logger"
	"github.com/open-builders/school-bot/internal/domain/channel"
	"github.com/open-builders/school-bot/internal/flows"
	"github.com/open-builders/school-bot/internal/messages"
	"github.com/open-builders/school-bot/internal/scene"
)

const maxChatButtonTitle = 30

// requireAdmin answers non-admins and reports whether to continue.
func (a *App) requireAdmin(ctx context.Context, ev *chat.Event, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	if ev.Kind == chat.KindCallback {
		chat.Answer(ctx, a.messenger, ev, messages.AccessDenied, true)
	} else {
		chat.Reply(ctx, a.messenger, ev, messages.AccessDenied, nil)
	}
	return false
}

func (a *App) adminPanel(ctx context.Context, ev *chat.Event, isAdmin bool) error {
	if !a.requireAdmin(ctx, ev, isAdmin) {
		return nil
	}
	chat.Answer(ctx, a.messenger, ev, "", false)
	chat.Render(ctx, a.messenger, ev, messages.AdminWelcome, chat.Inline(
		chat.Row(chat.CallbackButton(messages.BtnManageChannels, chat.NewAction(chat.ActManageChannels))),
		chat.Row(chat.CallbackButton(messages.BtnManageSchools, chat.NewAction(chat.ActManageSchools))),
		chat.Row(chat.CallbackButton(messages.BackToMainMenuButton, chat.NewAction(chat.ActShowMainMenu))),
	))
	return nil
}

func backToAdmin() []chat.Button {
	return chat.Row(chat.CallbackButton(messages.BtnBackToAdmin, chat.NewAction(chat.ActAdminPanel)))
}

func chatButtonLabel(c channel.AdministeredChat) string {
	title := c.Title
	if utf8.RuneCountInString(title) > maxChatButtonTitle {
		title = string([]rune(title)[:maxChatButtonTitle-3]) + "..."
	}
	return fmt.Sprintf("%s (%s)", title, c.Type)
}

// manageChannels is the picker over chats where the bot is an admin.
func (a *App) manageChannels(ctx context.Context, ev *chat.Event, isAdmin bool) error {
	if !a.requireAdmin(ctx, ev, isAdmin) {
		return nil
	}
	chat.Answer(ctx, a.messenger, ev, "", false)

	chats, err := a.store.AdministeredChats.List(ctx)
	if err != nil {
		return err
	}
	if len(chats) == 0 {
		chat.Render(ctx, a.messenger, ev, messages.AdminNoAdministeredChat, chat.Inline(chat.Row(
			chat.CallbackButton(messages.BtnRetryChats, chat.NewAction(chat.ActManageChannels)),
			chat.CallbackButton(messages.BtnBackToAdmin, chat.NewAction(chat.ActAdminPanel)),
		)))
		return nil
	}

	buttons := make([]chat.Button, 0, len(chats))
	for _, c := range chats {
		buttons = append(buttons, chat.CallbackButton(chatButtonLabel(c), chat.IntAction(chat.ActPromoteChat, c.ChatID)))
	}

	var text strings.Builder
	text.WriteString(messages.AdminPickChat)
	forced, err := a.store.ForcedChannels.List(ctx)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("failed to list forced channels")
	}
	if len(forced) > 0 {
		text.WriteString(messages.AdminCurrentForcedHeader)
		for _, fc := range forced {
			label := fc.Text
			if label == "" {
				label = fmt.Sprintf("%d", fc.ChannelID)
			}
			text.WriteString(messages.AdminForcedChannelLine(label, fc.ChannelID))
		}
	}

	chat.Render(ctx, a.messenger, ev, text.String(), chat.Columns(1, buttons...).Append(backToAdmin()))
	return nil
}

// pickChat starts the button text dialog for a chat chosen in the picker.
func (a *App) pickChat(ctx context.Context, ev *chat.Event, isAdmin bool) error {
	if !a.requireAdmin(ctx, ev, isAdmin) {
		return nil
	}
	chatID, ok := ev.Action.Int64()
	var selected *channel.AdministeredChat
	if ok {
		chats, err := a.store.AdministeredChats.List(ctx)
		if err != nil {
			return err
		}
		for i := range chats {
			if chats[i].ChatID == chatID {
				selected = &chats[i]
				break
			}
		}
	}
	if selected == nil {
		chat.Answer(ctx, a.messenger, ev, messages.AdminChatNotFoundAlert, true)
		chat.Render(ctx, a.messenger, ev, messages.AdminChatNotFound, chat.Inline(chat.Row(
			chat.CallbackButton(messages.BtnBackToChannels, chat.NewAction(chat.ActManageChannels)),
		)))
		return nil
	}

	link := selected.InviteLink
	if link == "" {
		if fresh, err := a.messenger.InviteLink(ctx, selected.ChatID); err == nil {
			link = fresh
		} else {
			logger.Ctx(ctx).Warn().Err(err).Int64("chat_id", selected.ChatID).Msg("no invite link")
		}
	}

	chat.Answer(ctx, a.messenger, ev, messages.AdminChatSelected(selected.Title), false)
	return a.engine.Enter(ctx, ev, flows.ChannelButtonText, scene.State{
		flows.KeyChannelID:    selected.ChatID,
		flows.KeyChannelTitle: selected.Title,
		flows.KeyChannelLink:  link,
	})
}

// promoteFromChat handles /promote_channel sent inside a group or channel.
// The chat is recorded and the admin continues in private.
func (a *App) promoteFromChat(ctx context.Context, ev *chat.Event) error {
	adminID := a.profile.AdminID(ctx)
	if adminID == 0 {
		logger.Ctx(ctx).Warn().Msg("promote_channel without a configured admin")
		return nil
	}
	// in groups the sender is known and must be the admin; channel posts
	// can only come from the channel's own admins
	if ev.UserID != 0 && ev.UserID != adminID {
		logger.Ctx(ctx).Warn().Msg("promote_channel from non-admin")
		return nil
	}

	title := ev.ChatTitle
	if title == "" {
		title = fmt.Sprintf("Chat %d", ev.ChatID)
	}
	link, err := a.messenger.InviteLink(ctx, ev.ChatID)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("could not export invite link")
		link = publicLink(ev.ChatUsername)
	}

	if err := a.store.AdministeredChats.Upsert(ctx, channel.AdministeredChat{
		ChatID:     ev.ChatID,
		Title:      title,
		Type:       channel.ChatType(ev.ChatType),
		InviteLink: link,
	}); err != nil {
		return err
	}

	if link == "" {
		chat.SendTo(ctx, a.messenger, adminID, messages.AdminPromoteChannelNoLink(title, ev.ChatID), nil)
	} else {
		chat.SendTo(ctx, a.messenger, adminID, messages.AdminPromoteChannelInfo(title, ev.ChatID), nil)
	}

	// continue as if the admin picked the chat in the private picker
	a.Submit(&chat.Event{
		Kind:     chat.KindCallback,
		UserID:   adminID,
		ChatID:   adminID,
		ChatType: chat.ChatPrivate,
		Action:   chat.IntAction(chat.ActPromoteChat, ev.ChatID),
	})
	return nil
}

func publicLink(username string) string {
	if username == "" {
		return ""
	}
	return "https://t.me/" + username
}

// handleBotMembership keeps the administered chat list in sync with the
// bot's own status changes.
func (a *App) handleBotMembership(ctx context.Context, ev *chat.Event) error {
	change := ev.Membership
	if change == nil || ev.Private() {
		return nil
	}
	log := logger.Ctx(ctx).With().
		Str("old_status", string(change.Old)).
		Str("new_status", string(change.New)).
		Logger()
	title := ev.ChatTitle
	if title == "" {
		title = fmt.Sprintf("Chat %d", ev.ChatID)
	}

	if change.New == chat.StatusAdministrator {
		var link string
		if change.CanInviteUsers {
			l, err := a.messenger.InviteLink(ctx, ev.ChatID)
			if err != nil {
				log.Warn().Err(err).Msg("could not export invite link")
			}
			link = l
		}
		if link == "" {
			link = publicLink(ev.ChatUsername)
		}
		log.Info().Msg("bot promoted to administrator")
		return a.store.AdministeredChats.Upsert(ctx, channel.AdministeredChat{
			ChatID:     ev.ChatID,
			Title:      title,
			Type:       channel.ChatType(ev.ChatType),
			InviteLink: link,
		})
	}

	lost := change.New == chat.StatusLeft || change.New == chat.StatusKicked || change.Old == chat.StatusAdministrator
	if !lost {
		return nil
	}
	log.Info().Msg("bot lost administrator rights")
	if err := a.store.AdministeredChats.Remove(ctx, ev.ChatID); err != nil {
		return err
	}

	forced, err := a.store.ForcedChannels.List(ctx)
	if err != nil {
		return err
	}
	for _, fc := range forced {
		if fc.ChannelID != ev.ChatID {
			continue
		}
		log.Warn().Msg("forced channel lost the bot")
		if adminID := a.profile.AdminID(ctx); adminID != 0 {
			chat.SendTo(ctx, a.messenger, adminID, messages.AdminForcedChannelLost(ev.ChatTitle, ev.ChatID), nil)
		}
		break
	}
	return nil
}
