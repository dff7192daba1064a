package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// DomainEvent is the payload published for every public submission and
// archive transition. Consumers treat it as notification input only.
type DomainEvent struct {
	Type       string    `json:"type"`
	Entity     string    `json:"entity"`
	EntityID   int64     `json:"entity_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventApplicationSubmitted = "application_submitted"
	EventContactMessageSent   = "contact_message_received"
)

// Counter is the slice of a prometheus counter the producer needs.
type Counter interface {
	Inc()
}

type Producer struct {
	brokers   []string
	writer    *kafka.Writer
	published Counter
}

type ProducerOption func(*Producer)

// WithPublishedCounter counts successfully written messages.
func WithPublishedCounter(c Counter) ProducerOption {
	return func(p *Producer) { p.published = c }
}

func NewProducer(brokers []string, opts ...ProducerOption) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	p := &Producer{
		brokers: brokers,
		writer:  writer,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	if p.published != nil {
		p.published.Inc()
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
