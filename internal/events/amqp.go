package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/metinatakli/movie-booking-service/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type AMQPPublisher struct {
	conn    *amqp.Connection
	channel amqpChannel
	queue   string
}

// NewAMQPPublisher dials the broker and declares a durable queue that receives booking events.
func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel open failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare failed: %w", err)
	}

	return &AMQPPublisher{
		conn:    conn,
		channel: ch,
		queue:   queue,
	}, nil
}

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, event domain.BookingConfirmedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.BookingID,
		Type:         BookingConfirmedEventType,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	// default exchange, routed by queue name
	return p.channel.PublishWithContext(ctx, "", p.queue, false, false, msg)
}

func (p *AMQPPublisher) Close() error {
	err := p.channel.Close()

	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}

	return err
}
