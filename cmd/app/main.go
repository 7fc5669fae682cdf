// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-video-bridge/internal/application"
	"telegram-video-bridge/internal/config"
	tele "telegram-video-bridge/internal/infra/adapters/telegram"
	"telegram-video-bridge/internal/infra/api"
	"telegram-video-bridge/internal/infra/i18n"
	"telegram-video-bridge/internal/infra/logging"
	"telegram-video-bridge/internal/infra/memory"
	"telegram-video-bridge/internal/infra/metrics"
	"telegram-video-bridge/internal/infra/security"
	"telegram-video-bridge/internal/usecase"
)

// set with -ldflags "-X main.version=... -X main.commit=..."
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to optional YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, noop bot without a token)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}
	for _, w := range cfg.Warnings() {
		logger.Warn().Msg(w)
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	secrets := security.NewSecretValidator(cfg.Web.Secret)
	if !secrets.Configured() {
		logger.Warn().Msg("web.secret (WEBHOOK_SECRET) not set; every video request will be rejected")
	}

	translator, err := i18n.NewTranslator(i18n.LocalesFS, cfg.Bot.Lang)
	if err != nil {
		logger.Fatal().Err(err).Msg("translations")
	}

	// ---- Use cases ----
	gate := tele.NewGate()
	store := memory.NewPendingStore()
	deliveryUC := usecase.NewDeliveryUseCase(gate, cfg.Channel.ID, cfg.Delivery.Timeout, translator, logger)
	videoUC := usecase.NewVideoRequestUseCase(store, deliveryUC, gate, cfg.Bot.ReadyWait, logger)
	facade := application.NewBotFacade(videoUC, translator)

	// ---- Telegram ----
	// Connecting can be slow or fail; the web side keeps queuing requests until the gate opens.
	go func() {
		if cfg.Bot.Token == "" {
			logger.Warn().Msg("no bot token; using noop telegram adapter")
			gate.Open(tele.NewNoopBotAdapter(logger))
			return
		}
		bot, err := tele.Connect(ctx, &cfg.Bot, facade, logger)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("telegram unavailable; requests stay queued until restart")
			}
			return
		}
		gate.Open(bot)
		if err := bot.StartPolling(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- HTTP server ----
	srv := api.NewServer(videoUC, secrets, gate, api.Options{
		ChatURL: cfg.Bot.ChatURL(),
		BaseURL: cfg.Web.BaseURL,
		Secret:  cfg.Web.Secret,
		Timeout: cfg.Web.Timeout,
	}, logger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Web.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Str("chat_url", cfg.Bot.ChatURL()).
			Str("secret", logging.Redact(cfg.Web.Secret, cfg.Runtime.Dev)).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
		logger.Info().Msg("shutdown requested")
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
