package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/metinatakli/movie-booking-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return &KafkaPublisher{writer: writer}
}

// PublishBookingConfirmed streams the booking to Kafka keyed by movie so that all events of a
// movie land on the same partition.
func (p *KafkaPublisher) PublishBookingConfirmed(ctx context.Context, event domain.BookingConfirmedEvent) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	return p.writer.WriteMessages(ctx,
		kafka.Message{
			Key:   []byte(event.MovieID),
			Value: msgBytes,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(BookingConfirmedEventType)},
			},
		},
	)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
