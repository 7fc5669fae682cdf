// File: internal/domain/ports/adapter/telegram.go
package adapter

import (
	"context"

	"telegram-video-bridge/internal/domain/model"
)

type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, telegramID int64, text string) error
	// ForwardMessage republishes the referenced channel post into the direct chat telegramID.
	ForwardMessage(ctx context.Context, telegramID int64, ref model.VideoReference) error
}

// BotProvider hands out the connected bot once it is ready.
// Await returns false if ctx ends before the bot becomes available.
type BotProvider interface {
	Await(ctx context.Context) (TelegramBotAdapter, bool)
}
