package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// MarkOutForDeliveryCommandHandler moves an assigned order out for
// delivery.
type MarkOutForDeliveryCommandHandler struct {
	workflow TransitionWorkflow
}

// NewMarkOutForDeliveryCommandHandler creates a handler for the
// out-for-delivery step.
func NewMarkOutForDeliveryCommandHandler(workflow TransitionWorkflow) MarkOutForDeliveryCommandHandler {
	return MarkOutForDeliveryCommandHandler{workflow: workflow}
}

// Handle processes the out-for-delivery command.
func (h *MarkOutForDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd MarkOutForDeliveryCommand,
) (*TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.workflow.Execute(ctx,
		cmd.OrderID(),
		order.OutForDelivery,
		cmd.Actor(),
		order.TransitionFields{},
		"out for delivery",
	)
}
