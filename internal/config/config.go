package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrToken is returned when one of the required secrets is not set.
var ErrToken = errors.New("ошибка переменных окружения: PRACTICUM_TOKEN, TELEGRAM_TOKEN и TELEGRAM_CHAT_ID обязательны")

const defaultRetryTime = 600 * time.Second

type Config struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string
	Debug          bool
	LogLevel       string
	RetryTime      time.Duration
	SentryDSN      string
}

// New loads .env (if any) and then reads the environment. The config is
// always usable; the error only reports that .env could not be loaded.
func New() (*Config, error) {
	// Загружаем .env файл
	err := godotenv.Load()
	if err != nil {
		err = fmt.Errorf(".env file not loaded: %w", err)
	}

	return FromEnv(), err
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() *Config {
	debug := false
	if debugStr := os.Getenv("BOT_DEBUG"); debugStr != "" {
		debug, _ = strconv.ParseBool(debugStr)
	}

	// Интервал опроса API (в секундах)
	retryTime := defaultRetryTime
	if retryStr := os.Getenv("RETRY_TIME"); retryStr != "" {
		if seconds, err := strconv.Atoi(retryStr); err == nil && seconds > 0 {
			retryTime = time.Duration(seconds) * time.Second
		}
	}

	logLevel := "info"
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		logLevel = lvl
	}

	return &Config{
		PracticumToken: os.Getenv("PRACTICUM_TOKEN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		Debug:          debug,
		LogLevel:       logLevel,
		RetryTime:      retryTime,
		SentryDSN:      os.Getenv("SENTRY_DSN"),
	}
}

// IsComplete reports whether all three secrets are present.
func (c *Config) IsComplete() bool {
	return c.PracticumToken != "" && c.TelegramToken != "" && c.TelegramChatID != ""
}

// Validate returns ErrToken when the config is incomplete.
func (c *Config) Validate() error {
	if !c.IsComplete() {
		return ErrToken
	}
	return nil
}
