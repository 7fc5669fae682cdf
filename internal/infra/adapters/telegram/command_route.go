package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-video-bridge/internal/infra/logging"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message) error

// commandRoutes defines all available bot commands and their handlers.
func (r *RealTelegramBotAdapter) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start": r.handleStartCommand,
		"help":  r.handleHelpCommand,
	}
}

// handleStartCommand delivers a pending video, or greets the user when nothing is pending.
func (r *RealTelegramBotAdapter) handleStartCommand(ctx context.Context, message *tgbotapi.Message) error {
	reply, err := r.facade.HandleStart(ctx, message.From.ID)
	return r.replyAfterClaim(ctx, message, reply, err)
}

func (r *RealTelegramBotAdapter) handleHelpCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.SendMessage(ctx, message.Chat.ID, r.facade.HandleHelp(ctx))
}

// handleContact runs the /start flow for users who share their contact card.
func (r *RealTelegramBotAdapter) handleContact(ctx context.Context, message *tgbotapi.Message) error {
	reply, err := r.facade.HandleContact(ctx, message.From.ID)
	return r.replyAfterClaim(ctx, message, reply, err)
}

func (r *RealTelegramBotAdapter) replyAfterClaim(ctx context.Context, message *tgbotapi.Message, reply string, err error) error {
	if err != nil {
		// the delivery path already told the user; only log here
		logging.With(ctx, r.log).Warn().Err(err).Msg("pending video not delivered")
	}
	if reply == "" {
		return nil
	}
	return r.SendMessage(ctx, message.Chat.ID, reply)
}
