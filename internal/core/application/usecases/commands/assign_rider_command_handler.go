package commands

import (
	"context"
	"fmt"

	"orderflow/internal/core/domain/model/order"
)

// AssignRiderCommandHandler assigns a packed order to a rider.
type AssignRiderCommandHandler struct {
	workflow TransitionWorkflow
}

// NewAssignRiderCommandHandler creates a handler for rider assignment.
func NewAssignRiderCommandHandler(workflow TransitionWorkflow) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{workflow: workflow}
}

// Handle processes the rider assignment command.
func (h *AssignRiderCommandHandler) Handle(
	ctx context.Context,
	cmd AssignRiderCommand,
) (*TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	riderID := cmd.RiderID()

	return h.workflow.Execute(ctx,
		cmd.OrderID(),
		order.Assigned,
		cmd.Actor(),
		order.TransitionFields{RiderID: &riderID},
		fmt.Sprintf("assigned to rider %s", riderID),
	)
}
