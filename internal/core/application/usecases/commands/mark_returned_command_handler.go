package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// MarkReturnedCommandHandler completes a return and restores stock.
type MarkReturnedCommandHandler struct {
	workflow TransitionWorkflow
}

// NewMarkReturnedCommandHandler creates a handler for the returned step.
func NewMarkReturnedCommandHandler(workflow TransitionWorkflow) MarkReturnedCommandHandler {
	return MarkReturnedCommandHandler{workflow: workflow}
}

// Handle processes the returned command.
func (h *MarkReturnedCommandHandler) Handle(
	ctx context.Context,
	cmd MarkReturnedCommand,
) (*TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.workflow.Execute(ctx,
		cmd.OrderID(),
		order.Returned,
		cmd.Actor(),
		order.TransitionFields{Reason: cmd.Reason()},
		"return completed",
	)
}
