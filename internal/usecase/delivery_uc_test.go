//go:build !integration

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"telegram-video-bridge/internal/domain"
	"telegram-video-bridge/internal/infra/logging"
)

const testChannel = "-1001234"

func newDelivery(bot *fakeBot, timeout time.Duration) *DeliveryUseCase {
	var p staticProvider
	if bot != nil {
		p.bot = bot
	}
	return NewDeliveryUseCase(p, testChannel, timeout, fakeMessages{}, logging.Nop())
}

func TestDeliver_Success(t *testing.T) {
	bot := &fakeBot{}
	uc := newDelivery(bot, time.Second)

	if err := uc.Deliver(context.Background(), "1001", "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := bot.forwards()
	if len(got) != 1 || got[0] != (forwardCall{To: 1001, From: testChannel, MessageID: 42}) {
		t.Fatalf("unexpected forwards: %+v", got)
	}
	if len(bot.sent()) != 0 {
		t.Fatalf("no text expected on success, got %+v", bot.sent())
	}
}

func TestDeliver_MissingVideoApologizes(t *testing.T) {
	bot := &fakeBot{missing: map[int]bool{999: true}}
	uc := newDelivery(bot, time.Second)

	err := uc.Deliver(context.Background(), "1001", "999")
	if !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
	msgs := bot.sent()
	if len(msgs) != 1 || msgs[0].To != 1001 || !strings.Contains(msgs[0].Text, "(ID: 999)") {
		t.Fatalf("expected apology with id, got %+v", msgs)
	}
}

func TestDeliver_NonNumericVideoApologizes(t *testing.T) {
	bot := &fakeBot{}
	uc := newDelivery(bot, time.Second)

	err := uc.Deliver(context.Background(), "1001", "intro")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if len(bot.forwards()) != 0 {
		t.Fatalf("nothing should be forwarded")
	}
	if msgs := bot.sent(); len(msgs) != 1 || !strings.Contains(msgs[0].Text, "(ID: intro)") {
		t.Fatalf("expected apology, got %+v", msgs)
	}
}

func TestDeliver_InvalidUserSkipsApology(t *testing.T) {
	bot := &fakeBot{}
	uc := newDelivery(bot, time.Second)

	err := uc.Deliver(context.Background(), "not-a-user", "42")
	if !errors.Is(err, domain.ErrDeliveryFailed) || !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected wrapped ErrInvalidArgument, got %v", err)
	}
	if len(bot.forwards()) != 0 || len(bot.sent()) != 0 {
		t.Fatalf("no calls expected")
	}
}

func TestDeliver_TimeoutIsFailure(t *testing.T) {
	bot := &fakeBot{block: make(chan struct{})}
	uc := newDelivery(bot, 20*time.Millisecond)

	err := uc.Deliver(context.Background(), "1001", "42")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if len(bot.sent()) != 1 {
		t.Fatalf("timeout must still produce an apology, got %+v", bot.sent())
	}
}

func TestDeliver_ApologyFailureSwallowed(t *testing.T) {
	bot := &fakeBot{forwardErr: errors.New("Forbidden: bot was blocked by the user"), sendErr: errors.New("blocked")}
	uc := newDelivery(bot, time.Second)

	err := uc.Deliver(context.Background(), "1001", "42")
	if !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
}

func TestDeliver_BotNotReady(t *testing.T) {
	uc := newDelivery(nil, 20*time.Millisecond)

	err := uc.Deliver(context.Background(), "1001", "42")
	if !errors.Is(err, domain.ErrBotNotReady) {
		t.Fatalf("expected ErrBotNotReady, got %v", err)
	}
}

func TestDeliver_ChannelUsername(t *testing.T) {
	bot := &fakeBot{}
	uc := NewDeliveryUseCase(staticProvider{bot: bot}, "@my_channel", time.Second, fakeMessages{}, logging.Nop())

	if err := uc.Deliver(context.Background(), "1001", "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := bot.forwards(); len(got) != 1 || got[0].From != "@my_channel" {
		t.Fatalf("expected forward from @my_channel, got %+v", got)
	}
}

func TestWithSource(t *testing.T) {
	ctx := context.Background()
	if got := sourceOf(ctx); got != SourceOther {
		t.Fatalf("untagged context = %q", got)
	}
	if got := sourceOf(WithSource(ctx, SourceClaim)); got != SourceClaim {
		t.Fatalf("tagged context = %q", got)
	}
}
