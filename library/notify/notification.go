package notify

import (
	"context"
	"errors"
	"time"
)

// Topics.
const (
	TopicCartChanged    = "cart.changed"
	TopicHoldNextInLine = "hold.next_in_line"
)

var (
	ErrPublishingFailed  = errors.New("publishing notification failed")
	ErrPublisherClosed   = errors.New("publisher is closed")
	ErrConnectingFailed  = errors.New("connecting to the message broker failed")
	ErrEmptyExchangeName = errors.New("exchange name must not be empty")
	ErrEncodingFailed    = errors.New("encoding notification failed")
)

// Notification is one message. Topic doubles as the AMQP routing key.
type Notification struct {
	Topic      string         `json:"topic"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload"`
}

// Publisher sends notifications.
type Publisher interface {
	Publish(ctx context.Context, notification Notification) error
}

// CartChanged builds the notification fired on every cart mutation.
func CartChanged(sessionID string, entryCount int, at time.Time) Notification {
	return Notification{
		Topic:      TopicCartChanged,
		OccurredAt: at,
		Payload: map[string]any{
			"sessionId":  sessionID,
			"entryCount": entryCount,
		},
	}
}

// HoldNextInLine builds the notification for a member whose hold was fulfilled.
func HoldNextInLine(holdID string, itemID string, memberID string, at time.Time) Notification {
	return Notification{
		Topic:      TopicHoldNextInLine,
		OccurredAt: at,
		Payload: map[string]any{
			"holdId":   holdID,
			"itemId":   itemID,
			"memberId": memberID,
		},
	}
}
