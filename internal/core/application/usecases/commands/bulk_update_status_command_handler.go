package commands

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// BulkFailure reports why one order of a bulk update did not transition.
type BulkFailure struct {
	OrderID kernel.UUID
	Reason  string
}

// BulkUpdateResult partitions a bulk update into orders that transitioned
// and orders that were rejected.
type BulkUpdateResult struct {
	Succeeded []kernel.UUID
	Failed    []BulkFailure
}

// BulkUpdateStatusCommandHandler applies one target status to many orders.
// Every order runs through the full single-order path; one rejection never
// aborts the rest of the batch.
type BulkUpdateStatusCommandHandler struct {
	workflow TransitionWorkflow
	logger   *slog.Logger
}

// NewBulkUpdateStatusCommandHandler creates a handler for bulk status
// updates.
func NewBulkUpdateStatusCommandHandler(
	workflow TransitionWorkflow,
	logger *slog.Logger,
) BulkUpdateStatusCommandHandler {
	return BulkUpdateStatusCommandHandler{
		workflow: workflow,
		logger:   logger.With("component", "bulk_update_status"),
	}
}

// Handle processes the bulk update command. The returned partition always
// accounts for every requested id.
func (h *BulkUpdateStatusCommandHandler) Handle(
	ctx context.Context,
	cmd BulkUpdateStatusCommand,
) (*BulkUpdateResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result := &BulkUpdateResult{}
	for _, orderID := range cmd.OrderIDs() {
		_, err := h.workflow.Execute(ctx,
			orderID,
			cmd.Target(),
			cmd.Actor(),
			order.TransitionFields{Reason: cmd.Reason()},
			fmt.Sprintf("bulk status update to %s", cmd.Target()),
		)
		if err != nil {
			h.logger.WarnContext(ctx, "bulk update skipped order",
				"order_id", orderID.String(),
				"target", cmd.Target().String(),
				"error", err,
			)
			result.Failed = append(result.Failed, BulkFailure{
				OrderID: orderID,
				Reason:  err.Error(),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, orderID)
	}

	return result, nil
}
