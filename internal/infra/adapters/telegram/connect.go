package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-video-bridge/internal/application"
	"telegram-video-bridge/internal/config"
	"telegram-video-bridge/internal/infra/metrics"
)

const (
	connectMinDelay = time.Second
	connectMaxDelay = time.Minute
)

// Connect builds the real adapter, retrying transient failures until ctx ends.
func Connect(ctx context.Context, cfg *config.BotConfig, facade *application.BotFacade, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	return connectWithRetry(ctx, func() (*RealTelegramBotAdapter, error) {
		return NewRealTelegramBotAdapter(cfg, facade, logger)
	}, connectMinDelay, connectMaxDelay, logger)
}

// connectWithRetry doubles the wait after each failure, from minDelay up to maxDelay.
// A rejected token ends it at once.
func connectWithRetry(ctx context.Context, connect func() (*RealTelegramBotAdapter, error), minDelay, maxDelay time.Duration, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	delay := minDelay
	for attempt := 1; ; attempt++ {
		bot, err := connect()
		if err == nil {
			if attempt > 1 {
				logger.Info().Int("attempt", attempt).Msg("telegram connected")
			}
			return bot, nil
		}
		metrics.IncConnectFailure()
		if IsTokenRejected(err) {
			return nil, fmt.Errorf("bot token rejected: %w", err)
		}
		logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("telegram connect failed")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		if delay *= 2; delay > maxDelay {
			delay = maxDelay
		}
	}
}

// IsTokenRejected reports whether Telegram refused the bot token itself.
// getMe answers 401 for a revoked token and 404 for a malformed one.
func IsTokenRejected(err error) bool {
	var tgErr *tgbotapi.Error
	if !errors.As(err, &tgErr) {
		return false
	}
	return tgErr.Code == http.StatusUnauthorized || tgErr.Code == http.StatusNotFound
}
