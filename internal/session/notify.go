package session

import (
	"github.com/sirupsen/logrus"

	"github.com/deskbot/goexch/pkg/logger"
)

func slog() *logrus.Entry {
	return logger.WithField("component", "session")
}

// logNotifier is the fallback user-notification channel: the message
// still lands somewhere visible.
type logNotifier struct{}

func (logNotifier) Notify(message string) {
	slog().Warnf("notice: %s", message)
}
