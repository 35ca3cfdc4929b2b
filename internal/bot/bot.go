package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"homework_bot/internal/config"
	"homework_bot/internal/logger"
	"homework_bot/internal/practicum"
)

const (
	failurePrefix   = "Сбой в работе программы: "
	telegramTimeout = 60 * time.Second
)

// Fetcher returns homework updates since a unix timestamp.
type Fetcher interface {
	FetchUpdates(ctx context.Context, since int64) (*practicum.Response, error)
}

// MessageNotifier delivers a text to the operator.
type MessageNotifier interface {
	Notify(message string)
}

// Bot polls the homework API and reports status changes.
type Bot struct {
	fetcher  Fetcher
	notifier MessageNotifier
	schedule cron.Schedule
	state    *State
	log      log.FieldLogger
	hub      *sentry.Hub
	now      func() time.Time
}

// New builds the bot from cfg. Only an incomplete config is an error:
// Telegram is not contacted beyond a best-effort getMe.
func New(cfg *config.Config, l *log.Logger, hub *sentry.Hub) (*Bot, error) {
	return newWithEndpoint(cfg, l, hub, tgbotapi.APIEndpoint)
}

func newWithEndpoint(cfg *config.Config, l *log.Logger, hub *sentry.Hub, endpoint string) (*Bot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// tgbotapi only has a package-level logger
	if err := tgbotapi.SetLogger(l); err != nil {
		return nil, fmt.Errorf("failed to set bot logger: %w", err)
	}

	// tgbotapi.NewBotAPI fails without network, so the handle is built directly
	api := &tgbotapi.BotAPI{
		Token:  cfg.TelegramToken,
		Client: &http.Client{Timeout: telegramTimeout},
		Buffer: 100,
		Debug:  cfg.Debug,
	}
	api.SetAPIEndpoint(endpoint)

	if self, err := api.GetMe(); err != nil {
		logger.LogAndCapture(l, hub, err, "Telegram getMe failed, continuing")
	} else {
		api.Self = self
		l.Infof("Authorized on account %s", self.UserName)
	}

	client := practicum.NewClient(practicum.ClientConfig{
		Token:  cfg.PracticumToken,
		Logger: l,
	})

	return newBot(client, NewNotifier(api, cfg.TelegramChatID, l, hub), cfg.RetryTime, l, hub), nil
}

func newBot(fetcher Fetcher, notifier MessageNotifier, retryTime time.Duration, l log.FieldLogger, hub *sentry.Hub) *Bot {
	return &Bot{
		fetcher:  fetcher,
		notifier: notifier,
		schedule: cron.Every(retryTime),
		state:    newState(time.Now().Unix()),
		log:      l,
		hub:      hub,
		now:      time.Now,
	}
}

// State returns the loop state. It must not be read while Start is running.
func (b *Bot) State() *State {
	return b.state
}

// Start runs poll cycles until ctx is cancelled. Cycle failures are reported
// and never stop the loop.
func (b *Bot) Start(ctx context.Context) error {
	b.log.Info("Запуск опроса API")

	for {
		if ctx.Err() != nil {
			break
		}

		b.poll(ctx)

		if !b.sleep(ctx) {
			break
		}
	}

	b.log.Info("Опрос API остановлен")
	return nil
}

func (b *Bot) poll(ctx context.Context) {
	err := b.cycle(ctx)
	if err == nil {
		return
	}

	// shutdown while fetching is not a failure
	if ctx.Err() != nil {
		b.log.WithError(err).Debug("Цикл опроса прерван")
		return
	}

	message := failurePrefix + err.Error()

	fields := map[string]interface{}{}
	var apiErr *practicum.Error
	if errors.As(err, &apiErr) {
		fields["kind"] = apiErr.Kind.String()
		if apiErr.StatusCode != 0 {
			fields["status_code"] = apiErr.StatusCode
		}
		if apiErr.Header != nil {
			fields["headers"] = apiErr.Header
		}
	}
	logger.LogAndCapture(b.log, b.hub, err, message, fields)

	if b.state.rememberError(message) {
		b.notifier.Notify(message)
	}
}

func (b *Bot) cycle(ctx context.Context) error {
	resp, err := b.fetcher.FetchUpdates(ctx, b.state.CurrentTimestamp)
	if err != nil {
		return err
	}

	homeworks, err := practicum.ExtractHomeworks(resp)
	switch {
	case errors.Is(err, practicum.ErrEmptyHomeworkList):
		b.log.Debug("Список домашних заданий пуст")
	case err != nil:
		return err
	default:
		message, err := practicum.FormatStatus(homeworks[0])
		if err != nil {
			return err
		}
		b.notifier.Notify(message)
	}

	timestamp, err := resp.Timestamp()
	if err != nil {
		return err
	}
	b.state.CurrentTimestamp = timestamp

	return nil
}

// sleep waits until the next scheduled poll. It returns false if ctx was
// cancelled first.
func (b *Bot) sleep(ctx context.Context) bool {
	now := b.now()
	timer := time.NewTimer(b.schedule.Next(now).Sub(now))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
