package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// TransitionResult is returned by every successful workflow operation: the
// refreshed order, any non-blocking validation warnings, and the inventory
// trigger outcome. Trigger.Err being non-nil means the status change
// succeeded but the inventory side effect did not; callers must check it
// explicitly, it is never raised as an error.
type TransitionResult struct {
	Order    *order.Order
	Warnings []services.Warning
	Trigger  services.TriggerOutcome
}

// TransitionWorkflow runs one status transition end to end:
//
//	load projection -> validate -> status write (committed) ->
//	inventory trigger -> audit -> event
//
// The status write and the inventory trigger are deliberately two separate
// commits. When the trigger fails the transition is not rolled back; the
// failure is logged, audited, and surfaced on the result, leaving manual
// reconciliation as the recovery path. Status always wins over stock.
type TransitionWorkflow struct {
	uowFactory OrderUoWFactory
	validator  services.TransitionValidator
	triggers   services.InventoryTriggerExecutor
	audit      ports.AuditSink
	events     ports.EventPublisher
	logger     *slog.Logger
}

// NewTransitionWorkflow wires the shared transition executor.
func NewTransitionWorkflow(
	uowFactory OrderUoWFactory,
	validator services.TransitionValidator,
	triggers services.InventoryTriggerExecutor,
	audit ports.AuditSink,
	events ports.EventPublisher,
	logger *slog.Logger,
) TransitionWorkflow {
	return TransitionWorkflow{
		uowFactory: uowFactory,
		validator:  validator,
		triggers:   triggers,
		audit:      audit,
		events:     events,
		logger:     logger.With("component", "transition_workflow"),
	}
}

// Execute moves one order to the target status on behalf of the actor.
// Rejections from the validator are returned unmodified, before any write
// occurs.
func (w TransitionWorkflow) Execute(
	ctx context.Context,
	orderID kernel.UUID,
	target order.Status,
	a actor.Context,
	fields order.TransitionFields,
	description string,
) (*TransitionResult, error) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	prior := o.Status()

	result, err := w.validator.Validate(ctx, o, target, a, fields)
	if err != nil {
		return nil, err
	}

	if err = o.Transition(target, fields); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The status write is committed; everything below is post-commit and
	// must not fail the transition.
	outcome := w.triggers.Execute(ctx, o, prior, a)

	w.emitAudit(ctx, o, prior, a, description, result.Warnings, outcome)
	w.publishEvent(ctx, o, prior, a, fields.Reason)

	return &TransitionResult{
		Order:    o,
		Warnings: result.Warnings,
		Trigger:  outcome,
	}, nil
}

func (w TransitionWorkflow) emitAudit(
	ctx context.Context,
	o *order.Order,
	prior order.Status,
	a actor.Context,
	description string,
	warnings []services.Warning,
	outcome services.TriggerOutcome,
) {
	warningTexts := make([]string, len(warnings))
	for i, warning := range warnings {
		warningTexts[i] = warning.Message
	}

	w.audit.RecordTransition(ctx, ports.TransitionAuditEntry{
		OrderID:     o.ID(),
		OldStatus:   prior,
		NewStatus:   o.Status(),
		Channel:     o.FulfillmentType(),
		ActorID:     a.UserID(),
		ActorRole:   a.Role(),
		Description: description,
		Warnings:    warningTexts,
		OccurredAt:  time.Now().UTC(),
	})

	failure := ""
	if outcome.Err != nil {
		failure = outcome.Err.Error()
	}
	w.audit.RecordTriggerOutcome(ctx, ports.TriggerAuditEntry{
		OrderID:    o.ID(),
		Action:     outcome.Action.String(),
		Applied:    outcome.Applied,
		Failure:    failure,
		OccurredAt: time.Now().UTC(),
	})
}

func (w TransitionWorkflow) publishEvent(
	ctx context.Context,
	o *order.Order,
	prior order.Status,
	a actor.Context,
	reason string,
) {
	event := ports.OrderStatusChangedEvent{
		OrderID:    o.ID().String(),
		OldStatus:  prior.String(),
		NewStatus:  o.Status().String(),
		Channel:    o.FulfillmentType().String(),
		ActorID:    a.UserID().String(),
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}

	if err := w.events.PublishStatusChanged(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "failed to publish status changed event",
			"order_id", o.ID().String(),
			"error", fmt.Errorf("publish: %w", err),
		)
	}
}
