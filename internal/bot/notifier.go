package bot

import (
	"errors"
	"strconv"

	"github.com/getsentry/sentry-go"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"homework_bot/internal/logger"
)

// ErrNotify marks a failed Telegram send in logs. It is never returned.
var ErrNotify = errors.New("сбой при отправке сообщения в Telegram")

// Sender is the part of *tgbotapi.BotAPI used for notifications.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier delivers texts to a single chat on a best-effort basis.
type Notifier struct {
	sender Sender
	chat   string
	// chatID is set when chat is numeric, otherwise chat is a channel username
	chatID int64
	log    log.FieldLogger
	hub    *sentry.Hub
}

// NewNotifier accepts either a numeric chat id or a channel username like "@name".
func NewNotifier(sender Sender, chat string, l log.FieldLogger, hub *sentry.Hub) *Notifier {
	n := &Notifier{
		sender: sender,
		chat:   chat,
		log:    l,
		hub:    hub,
	}
	if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
		n.chatID = id
	}
	return n
}

func (n *Notifier) newMessage(text string) tgbotapi.MessageConfig {
	if n.chatID != 0 {
		return tgbotapi.NewMessage(n.chatID, text)
	}
	return tgbotapi.NewMessageToChannel(n.chat, text)
}

// Notify sends message to the chat. Failures are logged and swallowed.
func (n *Notifier) Notify(message string) {
	msg := n.newMessage(message)

	if _, err := n.sender.Send(msg); err != nil {
		logger.LogAndCapture(n.log, n.hub, errors.Join(ErrNotify, err), "Сбой при отправке сообщения в Telegram", map[string]interface{}{
			"chat_id": n.chat,
		})
		return
	}

	n.log.WithField("chat_id", n.chat).Infof("Бот отправил сообщение: \"%s\"", message)
}
