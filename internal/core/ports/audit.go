package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// TransitionAuditEntry records one completed status transition.
type TransitionAuditEntry struct {
	OrderID     kernel.UUID
	OldStatus   order.Status
	NewStatus   order.Status
	Channel     order.FulfillmentType
	ActorID     kernel.UUID
	ActorRole   actor.Role
	Description string
	Warnings    []string
	OccurredAt  time.Time
}

// TriggerAuditEntry records the outcome of one inventory trigger.
type TriggerAuditEntry struct {
	OrderID    kernel.UUID
	Action     string
	Applied    bool
	Failure    string
	OccurredAt time.Time
}

// AuditSink receives one structured event per completed transition and per
// inventory-trigger outcome. Sinks are fire-and-forget: audit emission
// never fails a committed transition.
type AuditSink interface {
	RecordTransition(ctx context.Context, entry TransitionAuditEntry)
	RecordTriggerOutcome(ctx context.Context, entry TriggerAuditEntry)
}
