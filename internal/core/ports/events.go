package ports

import (
	"context"
	"time"
)

// OrderStatusChangedEvent is the integration event emitted after a status
// transition commits. Field values are wire-level strings so downstream
// consumers need no knowledge of the domain enums.
type OrderStatusChangedEvent struct {
	OrderID    string    `json:"order_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	Channel    string    `json:"channel"`
	ActorID    string    `json:"actor_id"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher pushes order status changes to interested consumers.
// Publishing is best-effort from the workflow's point of view: a publish
// failure is logged, never rolled back into the transition.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}
