package commands

import (
	"context"
	"fmt"

	"orderflow/internal/core/domain/model/order"
)

// UpdateStatusCommandHandler moves a single order to an explicit target
// status through the shared transition workflow.
type UpdateStatusCommandHandler struct {
	workflow TransitionWorkflow
}

// NewUpdateStatusCommandHandler creates a handler for generic status
// updates.
func NewUpdateStatusCommandHandler(workflow TransitionWorkflow) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{workflow: workflow}
}

// Handle processes the status update. Rejections from the transition
// validator are returned unmodified.
func (h *UpdateStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateStatusCommand,
) (*TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.workflow.Execute(ctx,
		cmd.OrderID(),
		cmd.Target(),
		cmd.Actor(),
		order.TransitionFields{Reason: cmd.Reason()},
		fmt.Sprintf("status updated to %s", cmd.Target()),
	)
}
