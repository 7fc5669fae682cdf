package telegram

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-video-bridge/internal/application"
	"telegram-video-bridge/internal/config"
	"telegram-video-bridge/internal/domain/model"
	"telegram-video-bridge/internal/domain/ports/adapter"
	"telegram-video-bridge/internal/infra/logging"
	"telegram-video-bridge/internal/infra/metrics"
	"telegram-video-bridge/internal/infra/worker"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

// long polling holds requests for up to 60s, so the transport timeout sits above that
const httpClientTimeout = 90 * time.Second

// sender is the part of *tgbotapi.BotAPI used for outbound calls.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
}

// RealTelegramBotAdapter uses tgbotapi to poll updates and delegates contacts to BotFacade.
type RealTelegramBotAdapter struct {
	api    *tgbotapi.BotAPI
	client sender
	cfg    *config.BotConfig
	facade *application.BotFacade
	log    *zerolog.Logger
}

// NewRealTelegramBotAdapter connects to Telegram; it fails if the token is rejected.
func NewRealTelegramBotAdapter(cfg *config.BotConfig, facade *application.BotFacade, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, &http.Client{Timeout: httpClientTimeout})
	if err != nil {
		return nil, err
	}
	if cfg.Username != "" && !strings.EqualFold(strings.TrimPrefix(cfg.Username, "@"), api.Self.UserName) {
		logger.Warn().Str("configured", cfg.Username).Str("actual", api.Self.UserName).Msg("bot username mismatch; chat links may be wrong")
	}

	return &RealTelegramBotAdapter{
		api:    api,
		client: api,
		cfg:    cfg,
		facade: facade,
		log:    logger,
	}, nil
}

// StartPolling receives updates until ctx is cancelled and hands each to the worker pool.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	if err := r.SetMenuCommands(ctx); err != nil {
		r.log.Warn().Err(err).Msg("failed to set menu commands")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.api.GetUpdatesChan(u)

	pool := worker.NewPool(r.cfg.Workers, r.log)
	pool.Start(ctx)
	defer pool.Stop()

	r.log.Info().Str("bot", r.api.Self.UserName).Int("workers", r.cfg.Workers).Msg("telegram polling started")
	for {
		select {
		case <-ctx.Done():
			r.api.StopReceivingUpdates()
			return ctx.Err()
		case up, ok := <-updates:
			if !ok {
				return nil
			}
			err := pool.Submit(ctx, worker.Job{
				Key: "update:" + strconv.Itoa(up.UpdateID),
				Run: func(ctx context.Context) error { return r.handleUpdate(ctx, up) },
			})
			if err != nil {
				metrics.IncUpdateDropped()
				r.log.Warn().Err(err).Int("update_id", up.UpdateID).Msg("update dropped")
			}
		}
	}
}

// SendMessage sends plain text to a chat.
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	_, err := r.send(ctx, tgbotapi.NewMessage(tgID, text))
	return err
}

// ForwardMessage forwards an existing post into tgID's chat without re-uploading it.
func (r *RealTelegramBotAdapter) ForwardMessage(ctx context.Context, tgID int64, ref model.VideoReference) error {
	if ref.Channel.Username == "" {
		_, err := r.send(ctx, tgbotapi.NewForward(tgID, ref.Channel.ID, ref.MessageID))
		return err
	}
	// ForwardConfig drops FromChannelUsername when encoding, so the @username form goes out raw.
	params := tgbotapi.Params{"from_chat_id": ref.Channel.Username}
	params.AddNonZero64("chat_id", tgID)
	params.AddNonZero("message_id", ref.MessageID)
	return r.call(ctx, func() error {
		_, err := r.client.MakeRequest("forwardMessage", params)
		return err
	})
}

// SetMenuCommands publishes the command list shown in the Telegram client.
func (r *RealTelegramBotAdapter) SetMenuCommands(ctx context.Context) error {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Receive your requested video"},
		tgbotapi.BotCommand{Command: "help", Description: "How to request videos"},
	)
	return r.request(ctx, cmds)
}

// send runs the call on the shared client and stops waiting once ctx ends.
// tgbotapi has no context support, so an abandoned call finishes in the background.
func (r *RealTelegramBotAdapter) send(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := ctx.Err(); err != nil {
		return tgbotapi.Message{}, err
	}
	type result struct {
		msg tgbotapi.Message
		err error
	}
	done := make(chan result, 1)
	go func() {
		msg, err := r.client.Send(c)
		done <- result{msg: msg, err: err}
	}()
	select {
	case res := <-done:
		return res.msg, res.err
	case <-ctx.Done():
		return tgbotapi.Message{}, ctx.Err()
	}
}

func (r *RealTelegramBotAdapter) request(ctx context.Context, c tgbotapi.Chattable) error {
	return r.call(ctx, func() error {
		_, err := r.client.Request(c)
		return err
	})
}

func (r *RealTelegramBotAdapter) call(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil
	}
	ctx = logging.WithTgID(ctx, msg.From.ID)

	if msg.IsCommand() {
		fn, ok := r.commandRoutes()[msg.Command()]
		if !ok {
			// free-form commands would give the metric unbounded label values
			metrics.IncTelegramCommand("unknown")
			return nil
		}
		metrics.IncTelegramCommand("/" + msg.Command())
		return fn(ctx, msg)
	}
	if msg.Contact != nil {
		metrics.IncTelegramCommand("contact")
		return r.handleContact(ctx, msg)
	}
	metrics.IncTelegramCommand("message")
	return nil
}
