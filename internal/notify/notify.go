package notify

import (
	"context"

	"github.com/vasstra/vasstra-storefront/pkg/enums"
	"github.com/vasstra/vasstra-storefront/pkg/logger"
)

// Notifier receives the toast-style feedback every mutating store action
// emits. Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, level enums.NotificationLevel, message string)
}

// Log forwards notifications to the structured logger. It is the default
// sink in headless deployments where no UI is attached.
type Log struct {
	logg *logger.Logger
}

func NewLog(logg *logger.Logger) *Log {
	return &Log{logg: logg}
}

func (l *Log) Notify(ctx context.Context, level enums.NotificationLevel, message string) {
	if l == nil || l.logg == nil {
		return
	}
	ctx = l.logg.WithField(ctx, "notification_level", level.String())
	if level == enums.NotificationLevelError {
		l.logg.Warn(ctx, message)
		return
	}
	l.logg.Info(ctx, message)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(context.Context, enums.NotificationLevel, string) {}
