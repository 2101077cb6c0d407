package commands

import (
	"context"
	"fmt"

	"orderflow/internal/core/domain/model/order"
)

// HandoverToCourierCommandHandler hands a packed order over to its courier
// partner.
type HandoverToCourierCommandHandler struct {
	workflow TransitionWorkflow
}

// NewHandoverToCourierCommandHandler creates a handler for courier
// handover.
func NewHandoverToCourierCommandHandler(workflow TransitionWorkflow) HandoverToCourierCommandHandler {
	return HandoverToCourierCommandHandler{workflow: workflow}
}

// Handle processes the courier handover command.
func (h *HandoverToCourierCommandHandler) Handle(
	ctx context.Context,
	cmd HandoverToCourierCommand,
) (*TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.workflow.Execute(ctx,
		cmd.OrderID(),
		order.HandoverToCourier,
		cmd.Actor(),
		order.TransitionFields{
			CourierPartner:    cmd.CourierPartner(),
			TrackingCode:      cmd.TrackingCode(),
			DestinationBranch: cmd.DestinationBranch(),
			DeliveryVariant:   cmd.DeliveryVariant(),
		},
		fmt.Sprintf("handed over to %s (%s)", cmd.CourierPartner(), cmd.TrackingCode()),
	)
}
