package activity

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"hrdash/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes each entry to a topic exchange with the action as
// routing key, so consumers can bind on patterns such as "leave.*".
type RabbitPublisher struct {
	conn     *amqp.Connection
	exchange string

	mu      sync.Mutex
	channel amqpChannel
}

func NewRabbitPublisher(amqpURL, exchange string) (*RabbitPublisher, error) {
	if exchange == "" {
		return nil, errors.New("activity exchange is required")
	}
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &RabbitPublisher{conn: conn, exchange: exchange, channel: ch}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, entry models.ActivityLog) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(ctx, p.exchange, entry.Action, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    entry.ActivityID,
		Timestamp:    entry.CreatedAt,
		Type:         entry.Action,
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (p *RabbitPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
