package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel the AMQPPublisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes notifications as persistent JSON messages to a topic exchange,
// the routing key is the notification topic.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       Channel
	exchange string
	closed   bool
}

// DialAMQP connects to url and declares exchange as a durable topic exchange.
func DialAMQP(url string, exchange string) (*AMQPPublisher, error) {
	if exchange == "" {
		return nil, ErrEmptyExchangeName
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errors.Join(ErrConnectingFailed, err)
	}

	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// NewAMQPPublisher creates an AMQPPublisher on an open channel.
func NewAMQPPublisher(ch Channel, exchange string) (*AMQPPublisher, error) {
	if exchange == "" {
		return nil, ErrEmptyExchangeName
	}

	return &AMQPPublisher{ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, notification Notification) error {
	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(notification)
	if err != nil {
		return errors.Join(ErrEncodingFailed, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, notification.Topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    notification.OccurredAt,
		Type:         notification.Topic,
		Body:         body,
	})
	if err != nil {
		return errors.Join(ErrPublishingFailed, err)
	}

	return nil
}

// Close closes the channel, and the connection if DialAMQP opened it.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}

	return err
}
