package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels an order and releases any outstanding
// reservation.
type CancelOrderCommandHandler struct {
	workflow TransitionWorkflow
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(workflow TransitionWorkflow) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{workflow: workflow}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CancelOrderCommand,
) (*TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.workflow.Execute(ctx,
		cmd.OrderID(),
		order.Cancelled,
		cmd.Actor(),
		order.TransitionFields{Reason: cmd.Reason()},
		"cancelled",
	)
}
