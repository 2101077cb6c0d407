// Package audit writes the transition audit trail as structured log
// events.
package audit

import (
	"context"

	"orderflow/internal/core/ports"

	"go.uber.org/zap"
)

// ZapSink implements ports.AuditSink on a zap logger. One event is
// emitted per completed transition and per inventory trigger outcome.
// Emission is fire-and-forget; a sink problem never fails a committed
// transition.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a sink writing through the given logger.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger.Named("audit")}
}

// RecordTransition logs one completed status transition.
func (s *ZapSink) RecordTransition(_ context.Context, entry ports.TransitionAuditEntry) {
	s.logger.Info("order status changed",
		zap.String("order_id", entry.OrderID.String()),
		zap.String("old_status", entry.OldStatus.String()),
		zap.String("new_status", entry.NewStatus.String()),
		zap.String("channel", entry.Channel.String()),
		zap.String("actor_id", entry.ActorID.String()),
		zap.String("actor_role", entry.ActorRole.String()),
		zap.String("description", entry.Description),
		zap.Strings("warnings", entry.Warnings),
		zap.Time("occurred_at", entry.OccurredAt),
	)
}

// RecordTriggerOutcome logs the result of one inventory trigger. Failed
// triggers are logged at error level so reconciliation can find them.
func (s *ZapSink) RecordTriggerOutcome(_ context.Context, entry ports.TriggerAuditEntry) {
	fields := []zap.Field{
		zap.String("order_id", entry.OrderID.String()),
		zap.String("action", entry.Action),
		zap.Bool("applied", entry.Applied),
		zap.Time("occurred_at", entry.OccurredAt),
	}

	if entry.Failure != "" {
		fields = append(fields, zap.String("failure", entry.Failure))
		s.logger.Error("inventory trigger failed", fields...)
		return
	}

	s.logger.Info("inventory trigger applied", fields...)
}
