package application

import (
	"context"
	"fmt"
	"strconv"
)

// BotFacade turns bot contacts into reply text.
// An empty reply means the contact was answered with a delivery (or its apology) instead.
type BotFacade struct {
	Videos VideoClaimer
	msgs   Messages
}

func NewBotFacade(videos VideoClaimer, msgs Messages) *BotFacade {
	return &BotFacade{Videos: videos, msgs: msgs}
}

// HandleStart delivers a pending video or returns the welcome text.
func (b *BotFacade) HandleStart(ctx context.Context, tgID int64) (string, error) {
	return b.claimOr(ctx, tgID, "welcome")
}

// HandleContact runs when a user shares their contact; same flow as /start.
func (b *BotFacade) HandleContact(ctx context.Context, tgID int64) (string, error) {
	return b.claimOr(ctx, tgID, "contact_thanks")
}

func (b *BotFacade) HandleHelp(ctx context.Context) string {
	return b.msgs.T("help")
}

func (b *BotFacade) claimOr(ctx context.Context, tgID int64, fallbackKey string) (string, error) {
	if b.Videos == nil {
		return "", fmt.Errorf("video usecase not available")
	}
	found, err := b.Videos.Claim(ctx, strconv.FormatInt(tgID, 10))
	if found {
		// the user already got the video or an apology
		return "", err
	}
	if err != nil {
		return "", err
	}
	return b.msgs.T(fallbackKey), nil
}
