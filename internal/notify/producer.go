package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer publishes notification events to Kafka, where the external
// mail/notification system consumes them.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(address []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(address...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 5 * time.Second,
	}
	return &Producer{writer: w}
}

func (p *Producer) PublishEvent(ctx context.Context, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Deliver(ctx context.Context, job Job) error {
	event := map[string]interface{}{
		"id":      job.ID.String(),
		"type":    string(job.Kind),
		"payload": job.Payload,
	}
	return p.PublishEvent(ctx, job.ID.String(), event)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
