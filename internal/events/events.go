// Package events publishes booking domain events to a message broker.
// Publishing is best effort: callers log failures and never fail the request because of them.
package events

import (
	"fmt"
	"strings"

	"github.com/metinatakli/movie-booking-service/internal/domain"
)

const BookingConfirmedEventType = "booking.confirmed"

const (
	DriverNone  = "none"
	DriverKafka = "kafka"
	DriverAMQP  = "amqp"
)

type Config struct {
	Driver       string
	KafkaBrokers string
	KafkaTopic   string
	AMQPURL      string
	AMQPQueue    string
}

// NewPublisher builds the publisher selected by cfg.Driver. It returns nil without error when
// publishing is disabled.
func NewPublisher(cfg Config) (domain.BookingEventPublisher, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverNone:
		return nil, nil
	case DriverKafka:
		brokers := splitList(cfg.KafkaBrokers)
		if len(brokers) == 0 {
			return nil, fmt.Errorf("kafka driver requires at least one broker")
		}

		return NewKafkaPublisher(brokers, cfg.KafkaTopic), nil
	case DriverAMQP:
		publisher, err := NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			return nil, err
		}

		return publisher, nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}

func splitList(s string) []string {
	var items []string

	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}

	return items
}
