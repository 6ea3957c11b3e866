package notify

import (
	"context"
	"log/slog"
)

// LogPublisher writes notifications to a slog.Logger. It is the default when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *slog.Logger) LogPublisher {
	return LogPublisher{logger: logger}
}

func (p LogPublisher) Publish(ctx context.Context, notification Notification) error {
	attrs := make([]any, 0, 2*len(notification.Payload)+2)
	attrs = append(attrs, "topic", notification.Topic)
	for key, value := range notification.Payload {
		attrs = append(attrs, key, value)
	}

	p.logger.InfoContext(ctx, "notification", attrs...)

	return nil
}
