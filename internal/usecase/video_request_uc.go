package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"telegram-video-bridge/internal/domain/ports/adapter"
	"telegram-video-bridge/internal/domain/ports/repository"
	"telegram-video-bridge/internal/infra/metrics"
)

// RequestOutcome says what happened to a website request after it was recorded.
type RequestOutcome string

const (
	// OutcomeQueued: the bot was not ready; the user gets the video on first contact.
	OutcomeQueued RequestOutcome = "queued"
	// OutcomeDelivered: forwarded inline and cleared from the store.
	OutcomeDelivered RequestOutcome = "delivered"
	// OutcomeFailed: the forward failed; the entry is back in the store for the next contact.
	OutcomeFailed RequestOutcome = "failed"
	// OutcomeSuperseded: before the inline forward started, a contact claimed the entry or a newer
	// request replaced it. That path delivers instead.
	OutcomeSuperseded RequestOutcome = "superseded"
)

// VideoRequestUseCase correlates website requests with deliveries to the user's chat.
type VideoRequestUseCase struct {
	store     repository.PendingRequestStore
	delivery  Deliverer
	bots      adapter.BotProvider
	readyWait time.Duration
	log       *zerolog.Logger
}

func NewVideoRequestUseCase(store repository.PendingRequestStore, delivery Deliverer, bots adapter.BotProvider, readyWait time.Duration, logger *zerolog.Logger) *VideoRequestUseCase {
	return &VideoRequestUseCase{
		store:     store,
		delivery:  delivery,
		bots:      bots,
		readyWait: readyWait,
		log:       logger,
	}
}

// Request records videoID as pending for userID and, when the bot is ready, delivers it inline.
// The entry leaves the store before the forward starts, so a concurrent Claim cannot send it
// a second time. After a failed forward it goes back unless a newer request took its place.
func (uc *VideoRequestUseCase) Request(ctx context.Context, videoID, userID string) (RequestOutcome, error) {
	if err := uc.store.Put(ctx, userID, videoID); err != nil {
		return "", fmt.Errorf("store pending request: %w", err)
	}
	defer func() { metrics.SetPendingRequests(uc.store.Len()) }()
	l := uc.log.With().Str("user_id", userID).Str("video_id", videoID).Logger()

	if !uc.botReady(ctx) {
		l.Info().Msg("bot not ready; request queued for first contact")
		metrics.IncVideoRequest(string(OutcomeQueued))
		return OutcomeQueued, nil
	}

	mine, err := uc.store.Discard(ctx, userID, videoID)
	if err != nil {
		return "", fmt.Errorf("take pending request: %w", err)
	}
	if !mine {
		l.Debug().Msg("request claimed or replaced before inline delivery")
		metrics.IncVideoRequest(string(OutcomeSuperseded))
		return OutcomeSuperseded, nil
	}

	if err := uc.delivery.Deliver(WithSource(ctx, SourceRequest), userID, videoID); err != nil {
		restored, perr := uc.store.PutIfAbsent(context.WithoutCancel(ctx), userID, videoID)
		if perr != nil {
			return OutcomeFailed, fmt.Errorf("restore pending request: %w", perr)
		}
		l.Warn().Err(err).Bool("kept", restored).Msg("direct delivery failed")
		metrics.IncVideoRequest(string(OutcomeFailed))
		return OutcomeFailed, nil
	}
	metrics.IncVideoRequest(string(OutcomeDelivered))
	return OutcomeDelivered, nil
}

// Claim delivers the pending video of userID, if any. It reports whether one was pending;
// err is the delivery error, after which the user has already been sent an apology.
func (uc *VideoRequestUseCase) Claim(ctx context.Context, userID string) (bool, error) {
	videoID, ok, err := uc.store.Take(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("take pending request: %w", err)
	}
	if !ok {
		metrics.IncVideoClaim("empty")
		return false, nil
	}
	metrics.SetPendingRequests(uc.store.Len())

	if err := uc.delivery.Deliver(WithSource(ctx, SourceClaim), userID, videoID); err != nil {
		metrics.IncVideoClaim("failed")
		return true, err
	}
	metrics.IncVideoClaim("delivered")
	return true, nil
}

func (uc *VideoRequestUseCase) botReady(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, uc.readyWait)
	defer cancel()
	_, ok := uc.bots.Await(ctx)
	return ok
}
