package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"telegram-video-bridge/internal/domain"
	"telegram-video-bridge/internal/domain/model"
	"telegram-video-bridge/internal/domain/ports/adapter"
	"telegram-video-bridge/internal/infra/logging"
	"telegram-video-bridge/internal/infra/metrics"
)

// Messages resolves user-facing text by key.
type Messages interface {
	T(key string, args ...interface{}) string
}

// Deliverer forwards a channel post to a user.
type Deliverer interface {
	Deliver(ctx context.Context, userID, videoID string) error
}

var _ Deliverer = (*DeliveryUseCase)(nil)

// Delivery sources, reported on the deliveries metric.
const (
	SourceRequest = "request" // inline from the website endpoint
	SourceClaim   = "claim"   // on /start or a shared contact
	SourceOther   = "other"
)

type sourceKey struct{}

// WithSource tags ctx with the path that triggered a delivery.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

func sourceOf(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey{}).(string); ok && s != "" {
		return s
	}
	return SourceOther
}

// DeliveryUseCase forwards channel posts into users' direct chats.
type DeliveryUseCase struct {
	bots      adapter.BotProvider
	channel   string
	timeout   time.Duration
	msgs      Messages
	log       *zerolog.Logger
}

// NewDeliveryUseCase forwards from channel, given as a numeric chat id or an @username.
func NewDeliveryUseCase(bots adapter.BotProvider, channel string, timeout time.Duration, msgs Messages, logger *zerolog.Logger) *DeliveryUseCase {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DeliveryUseCase{
		bots:      bots,
		channel:   channel,
		timeout:   timeout,
		msgs:      msgs,
		log:       logger,
	}
}

// Deliver forwards post videoID of the source channel to userID. Any failure is answered with an
// apology to the user and reported as ErrDeliveryFailed. Nothing is retried.
func (uc *DeliveryUseCase) Deliver(ctx context.Context, userID, videoID string) error {
	source := sourceOf(ctx)
	tgID, err := model.ParseTelegramID(userID)
	if err != nil {
		// nobody to apologise to
		metrics.ObserveDelivery(source, "failed", 0)
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}
	ctx = logging.WithTgID(ctx, tgID)
	l := logging.With(ctx, uc.log).With().
		Str("delivery_id", ulid.Make().String()).
		Str("video_id", videoID).
		Str("source", source).
		Logger()
	defer logging.TraceDuration(&l, "DeliveryUseCase.Deliver")()

	start := time.Now()
	bot, err := uc.forward(ctx, tgID, videoID)
	if err == nil {
		metrics.ObserveDelivery(source, "succeeded", time.Since(start))
		l.Info().Msg("video delivered")
		return nil
	}

	metrics.ObserveDelivery(source, "failed", time.Since(start))
	l.Error().Err(err).Msg("video delivery failed")
	if bot != nil {
		uc.apologize(ctx, bot, tgID, videoID, &l)
	}
	return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
}

// forward returns the bot it used so the caller can still reach the user after a failed forward.
func (uc *DeliveryUseCase) forward(ctx context.Context, tgID int64, videoID string) (adapter.TelegramBotAdapter, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	bot, ok := uc.bots.Await(ctx)
	if !ok {
		return nil, domain.ErrBotNotReady
	}
	ref, err := model.ParseVideoReference(uc.channel, videoID)
	if err != nil {
		return bot, err
	}
	if err := bot.ForwardMessage(ctx, tgID, ref); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return bot, fmt.Errorf("forward timed out after %s: %w", uc.timeout, err)
		}
		return bot, fmt.Errorf("forward message: %w", err)
	}
	return bot, nil
}

// apologize is best effort; it runs on its own deadline so a timed-out forward still gets a reply.
func (uc *DeliveryUseCase) apologize(ctx context.Context, bot adapter.TelegramBotAdapter, tgID int64, videoID string, l *zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.timeout)
	defer cancel()
	if err := bot.SendMessage(ctx, tgID, uc.msgs.T("video_not_found", videoID)); err != nil {
		l.Warn().Err(err).Msg("apology not sent")
	}
}
