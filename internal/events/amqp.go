package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/rezvirumon/user-billing-server/internal/logger"
)

// publishChannel là phần của *amqp091.Channel mà Publisher sử dụng
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher publish sự kiện dạng JSON lên direct exchange, routing key là tên sự kiện
type Publisher struct {
	conn     *amqp091.Connection
	channel  publishChannel
	exchange string
	timeout  time.Duration
}

// NewPublisher kết nối AMQP và khai báo exchange durable
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, channel: ch, exchange: exchange, timeout: 5 * time.Second}, nil
}

// Publish gửi một sự kiện
func (p *Publisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		e.Name,     // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    e.OccurredAt,
			Type:         e.Name,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Name, err)
	}
	return nil
}

// Handler trả về handler để đăng ký vào Bus. Lỗi publish chỉ được log.
func (p *Publisher) Handler() Handler {
	return func(ctx context.Context, e Event) {
		if err := p.Publish(ctx, e); err != nil {
			logger.WithModule("events").WithError(err).WithField("event", e.Name).Warn("Failed to publish event")
		}
	}
}

// Close đóng channel và connection
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
