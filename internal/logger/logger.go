package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// New builds a logger writing to stdout at the given level.
// An unknown level falls back to info.
func New(level string) *log.Logger {
	l := log.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&log.TextFormatter{
		DisableQuote:    true,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	})

	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		l.SetLevel(log.InfoLevel)
		l.Errorf("Invalid LOG_LEVEL '%s', defaulting to INFO", level)
		return l
	}
	l.SetLevel(lvl)

	return l
}

// LogError logs err with the caller's location attached.
func LogError(l log.FieldLogger, err error, context string, additionalFields ...map[string]interface{}) {
	if err == nil {
		return
	}

	fields := log.Fields{
		"error":   err.Error(),
		"context": context,
	}

	if _, file, line, ok := runtime.Caller(2); ok {
		fields["file"] = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	if len(additionalFields) > 0 {
		for k, v := range additionalFields[0] {
			fields[k] = v
		}
	}

	l.WithFields(fields).Error(context)
}

// LogAndCapture logs err and, if hub is set, sends it to Sentry.
func LogAndCapture(l log.FieldLogger, hub *sentry.Hub, err error, context string, additionalFields ...map[string]interface{}) {
	LogError(l, err, context, additionalFields...)

	if hub != nil && err != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("context", context)
			hub.CaptureException(err)
		})
	}
}
