package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// CreateOrderCommandHandler handles order registration for all channels.
//
// Delivery channels create the order in intake status with no stock check;
// stock is only committed later, when the order converts. In-store orders
// are counter sales: they are created directly in delivered status, checked
// against availability in soft mode (warn, never block a sale already made
// at the counter), and deducted immediately.
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	stockReader services.StockReader
	triggers    services.InventoryTriggerExecutor
	audit       ports.AuditSink
	events      ports.EventPublisher
	logger      *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	stockReader services.StockReader,
	triggers services.InventoryTriggerExecutor,
	audit ports.AuditSink,
	events ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		stockReader: stockReader,
		triggers:    triggers,
		audit:       audit,
		events:      events,
		logger:      logger.With("component", "create_order"),
	}
}

// Handle processes the order creation command and returns the created order
// together with any stock warnings and, for in-store orders, the counter
// sale deduction outcome.
func (h *CreateOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderCommand,
) (*TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var (
		o   *order.Order
		err error
	)
	if cmd.FulfillmentType() == order.InStore {
		o, err = order.NewStoreSaleOrder(cmd.OrderID(), cmd.Lines())
	} else {
		o, err = order.NewOrder(cmd.OrderID(), cmd.FulfillmentType(), cmd.Lines())
	}
	if err != nil {
		return nil, err
	}

	warnings := h.checkStock(ctx, o)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	result := &TransitionResult{Order: o, Warnings: warnings}

	if cmd.FulfillmentType() == order.InStore {
		result.Trigger = h.triggers.ExecuteCounterSale(ctx, o, cmd.Actor())
	}

	h.emitCreated(ctx, o, cmd, result)

	return result, nil
}

// checkStock applies the creation-time stock policy. Only soft mode ever
// fires here: delivery channels create in intake, where the mode is none.
func (h *CreateOrderCommandHandler) checkStock(ctx context.Context, o *order.Order) []services.Warning {
	mode := services.StockValidationMode(o.FulfillmentType(), o.Status())
	if mode == services.ModeNone {
		return nil
	}

	lines := o.Lines()
	variantIDs := make([]kernel.UUID, len(lines))
	for i, l := range lines {
		variantIDs[i] = l.VariantID()
	}

	levels, err := h.stockReader.ReadAvailable(ctx, variantIDs)
	if err != nil {
		return []services.Warning{{
			Code:    services.WarningStockUnverified,
			Message: fmt.Sprintf("could not verify stock, proceeding: %s", err),
		}}
	}

	var warnings []services.Warning
	for _, s := range services.ComputeShortfalls(lines, levels) {
		warnings = append(warnings, services.Warning{
			Code: services.WarningStockShortfall,
			Message: fmt.Sprintf("variant %s short by %d (requested %d, available %d)",
				s.VariantID, s.Shortfall, s.Requested, s.Available),
		})
	}
	return warnings
}

func (h *CreateOrderCommandHandler) emitCreated(
	ctx context.Context,
	o *order.Order,
	cmd CreateOrderCommand,
	result *TransitionResult,
) {
	warningTexts := make([]string, len(result.Warnings))
	for i, w := range result.Warnings {
		warningTexts[i] = w.Message
	}

	h.audit.RecordTransition(ctx, ports.TransitionAuditEntry{
		OrderID:     o.ID(),
		OldStatus:   order.Unknown,
		NewStatus:   o.Status(),
		Channel:     o.FulfillmentType(),
		ActorID:     cmd.Actor().UserID(),
		ActorRole:   cmd.Actor().Role(),
		Description: "order created",
		Warnings:    warningTexts,
		OccurredAt:  time.Now().UTC(),
	})

	event := ports.OrderStatusChangedEvent{
		OrderID:    o.ID().String(),
		NewStatus:  o.Status().String(),
		Channel:    o.FulfillmentType().String(),
		ActorID:    cmd.Actor().UserID().String(),
		OccurredAt: time.Now().UTC(),
	}
	if err := h.events.PublishStatusChanged(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish order created event",
			"order_id", o.ID().String(),
			"error", err,
		)
	}
}
