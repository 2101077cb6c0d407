package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// MarkDeliveredCommandHandler completes delivery of an order.
type MarkDeliveredCommandHandler struct {
	workflow TransitionWorkflow
}

// NewMarkDeliveredCommandHandler creates a handler for the delivered step.
func NewMarkDeliveredCommandHandler(workflow TransitionWorkflow) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{workflow: workflow}
}

// Handle processes the delivered command.
func (h *MarkDeliveredCommandHandler) Handle(
	ctx context.Context,
	cmd MarkDeliveredCommand,
) (*TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.workflow.Execute(ctx,
		cmd.OrderID(),
		order.Delivered,
		cmd.Actor(),
		order.TransitionFields{},
		"delivered",
	)
}
