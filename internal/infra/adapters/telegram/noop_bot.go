package telegram

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-video-bridge/internal/domain/model"
	"telegram-video-bridge/internal/domain/ports/adapter"
	"telegram-video-bridge/internal/infra/logging"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements adapter.TelegramBotAdapter for local/dev runs.
// It logs instead of calling Telegram.
type NoopBotAdapter struct {
	log *zerolog.Logger
}

func NewNoopBotAdapter(logger *zerolog.Logger) *NoopBotAdapter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &NoopBotAdapter{log: logger}
}

func (b *NoopBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	if err := b.simulate(ctx); err != nil {
		return err
	}
	b.log.Info().Int64("tg_id", tgID).Str("text", text).Msg("[noop-telegram] send message")
	return nil
}

func (b *NoopBotAdapter) ForwardMessage(ctx context.Context, tgID int64, ref model.VideoReference) error {
	if err := b.simulate(ctx); err != nil {
		return err
	}
	b.log.Info().Int64("tg_id", tgID).Str("from_chat", ref.Channel.String()).Int("message_id", ref.MessageID).Msg("[noop-telegram] forward message")
	return nil
}

// simulate a small network delay while respecting ctx
func (b *NoopBotAdapter) simulate(ctx context.Context) error {
	select {
	case <-time.After(50 * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
