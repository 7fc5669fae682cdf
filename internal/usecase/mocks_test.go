// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"fmt"
	"sync"

	"telegram-video-bridge/internal/domain/model"
	"telegram-video-bridge/internal/domain/ports/adapter"
)

// fakeBot records forwards and messages. Forwards of ids listed in missing fail.
type fakeBot struct {
	mu         sync.Mutex
	forwarded  []forwardCall
	messages   []sentMessage
	missing    map[int]bool
	forwardErr error
	sendErr    error
	block      chan struct{} // when non-nil, ForwardMessage waits on it or ctx
	started    chan struct{} // when non-nil, receives once per ForwardMessage call
}

type forwardCall struct {
	To        int64
	From      string
	MessageID int
}

type sentMessage struct {
	To   int64
	Text string
}

func (b *fakeBot) ForwardMessage(ctx context.Context, to int64, ref model.VideoReference) error {
	if b.started != nil {
		b.started <- struct{}{}
	}
	if b.block != nil {
		select {
		case <-b.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if b.forwardErr != nil {
		return b.forwardErr
	}
	if b.missing[ref.MessageID] {
		return fmt.Errorf("Bad Request: message to forward not found")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forwarded = append(b.forwarded, forwardCall{To: to, From: ref.Channel.String(), MessageID: ref.MessageID})
	return nil
}

func (b *fakeBot) SendMessage(ctx context.Context, to int64, text string) error {
	if b.sendErr != nil {
		return b.sendErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, sentMessage{To: to, Text: text})
	return nil
}

func (b *fakeBot) forwards() []forwardCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]forwardCall(nil), b.forwarded...)
}

func (b *fakeBot) sent() []sentMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]sentMessage(nil), b.messages...)
}

// staticProvider is ready with bot, or never ready when bot is nil.
type staticProvider struct {
	bot adapter.TelegramBotAdapter
}

func (p staticProvider) Await(ctx context.Context) (adapter.TelegramBotAdapter, bool) {
	if p.bot == nil {
		<-ctx.Done()
		return nil, false
	}
	return p.bot, true
}

type fakeMessages struct{}

func (fakeMessages) T(key string, args ...interface{}) string {
	if key == "video_not_found" {
		return fmt.Sprintf("Sorry, I couldn't find that video (ID: %s). Please try again later.", args...)
	}
	return key
}

// recordingDeliverer wraps a Deliverer and counts calls.
type recordingDeliverer struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (d *recordingDeliverer) Deliver(ctx context.Context, userID, videoID string) error {
	d.mu.Lock()
	d.calls = append(d.calls, userID+":"+videoID)
	d.mu.Unlock()
	return d.err
}
