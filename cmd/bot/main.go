package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"homework_bot/internal/bot"
	"homework_bot/internal/config"
	"homework_bot/internal/logger"
)

var version = "dev"

func main() {
	cfg, envErr := config.New()
	l := logger.New(cfg.LogLevel)
	if envErr != nil {
		l.WithError(envErr).Warn("Warning: .env file not found")
	}

	if err := cfg.Validate(); err != nil {
		l.WithError(err).Fatal("Ошибка переменных окружения, работа прекращена")
	}

	hub, err := logger.InitSentry(cfg.SentryDSN, version)
	switch {
	case errors.Is(err, logger.ErrNoDSN):
		l.Debug("Sentry disabled")
	case err != nil:
		l.WithError(err).Warn("Failed to init Sentry")
	default:
		defer hub.Flush(2 * time.Second)
	}

	b, err := bot.New(cfg, l, hub)
	if err != nil {
		logger.LogAndCapture(l, hub, err, "Failed to create bot")
		flush(hub)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l.Info("Starting bot...")
	if err := b.Start(ctx); err != nil {
		l.WithError(err).Error("Bot stopped with error")
	}
}

func flush(hub *sentry.Hub) {
	if hub != nil {
		hub.Flush(2 * time.Second)
	}
}
