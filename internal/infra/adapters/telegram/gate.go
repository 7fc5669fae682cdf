package telegram

import (
	"context"
	"sync"

	"telegram-video-bridge/internal/domain/ports/adapter"
)

var _ adapter.BotProvider = (*Gate)(nil)

// Gate publishes the bot once it has connected. It opens at most once and never closes again.
type Gate struct {
	once  sync.Once
	ready chan struct{}
	bot   adapter.TelegramBotAdapter
}

func NewGate() *Gate {
	return &Gate{ready: make(chan struct{})}
}

// Open makes bot available to waiters. Calls after the first are ignored.
func (g *Gate) Open(bot adapter.TelegramBotAdapter) {
	g.once.Do(func() {
		g.bot = bot
		close(g.ready)
	})
}

// Ready is closed once the bot is available.
func (g *Gate) Ready() <-chan struct{} { return g.ready }

func (g *Gate) IsReady() bool {
	select {
	case <-g.ready:
		return true
	default:
		return false
	}
}

// Await blocks until the bot is available or ctx ends.
func (g *Gate) Await(ctx context.Context) (adapter.TelegramBotAdapter, bool) {
	if g.IsReady() {
		return g.bot, true
	}
	select {
	case <-g.ready:
		return g.bot, true
	case <-ctx.Done():
		return nil, false
	}
}
