package logger

import (
	"errors"
	"os"

	"github.com/getsentry/sentry-go"
)

const moduleName = "homework_bot"

// ErrNoDSN is returned by InitSentry when no DSN is configured.
var ErrNoDSN = errors.New("sentry DSN is not set")

// InitSentry initialises Sentry and returns a hub tagged with the module name.
func InitSentry(dsn, release string) (*sentry.Hub, error) {
	if dsn == "" {
		return nil, ErrNoDSN
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		AttachStacktrace: true,
		Release:          release,
		Debug:            os.Getenv("SENTRY_DEBUG") == "true",
	})
	if err != nil {
		return nil, err
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("module", moduleName)
	})

	return hub, nil
}
