// Package kafka publishes order status change events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"

	"orderflow/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// StatusChangedPublisher implements ports.EventPublisher on a Kafka
// writer. Messages are keyed by order id so all events of one order land
// on the same partition in order.
type StatusChangedPublisher struct {
	w *kafka.Writer
}

// NewStatusChangedPublisher creates a publisher writing to the given
// brokers and topic.
func NewStatusChangedPublisher(brokers []string, topic string) *StatusChangedPublisher {
	return &StatusChangedPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// PublishStatusChanged writes one status change event. The caller treats
// failures as non-fatal; they are logged upstream, never rolled back into
// the transition.
func (p *StatusChangedPublisher) PublishStatusChanged(
	ctx context.Context,
	event ports.OrderStatusChangedEvent,
) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Time:  event.OccurredAt,
	})
}

// Close flushes and closes the underlying writer.
func (p *StatusChangedPublisher) Close() error {
	return p.w.Close()
}
